package handlers

import (
	"fmt"
	"strings"

	"giftscout/internal/core"

	"github.com/charmbracelet/lipgloss"
)

var (
	ideaTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	ideaBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			Width(72)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	notesStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)
)

// renderBatch renders a gift batch as styled terminal cards, highest score
// first.
func renderBatch(batch *core.GiftBatch) string {
	var sections []string

	for i, idea := range batch.Ideas {
		var b strings.Builder

		b.WriteString(ideaTitleStyle.Render(fmt.Sprintf("%d. %s", i+1, idea.Name)))
		b.WriteString("\n")
		b.WriteString(idea.WhyItFits)

		if idea.EstimatedPrice != "" {
			b.WriteString("\n")
			b.WriteString(metaStyle.Render("Estimated price: " + idea.EstimatedPrice))
		}
		if idea.BuyLink != "" {
			b.WriteString("\n")
			b.WriteString(metaStyle.Render("Buy: " + idea.BuyLink))
		}
		b.WriteString("\n")
		b.WriteString(metaStyle.Render(fmt.Sprintf("Score: %.2f", idea.Score)))

		sections = append(sections, ideaBoxStyle.Render(b.String()))
	}

	if batch.SearchNotes != "" {
		sections = append(sections, notesStyle.Render(batch.SearchNotes))
	}

	return strings.Join(sections, "\n")
}
