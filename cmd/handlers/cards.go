package handlers

import (
	"context"
	"fmt"
	"time"

	"giftscout/internal/config"
	"giftscout/internal/core"
	"giftscout/internal/llm"

	"github.com/spf13/cobra"
)

// NewCardsCmd creates the cards command
func NewCardsCmd() *cobra.Command {
	var (
		flags profileFlags
		names []string
	)

	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Draft gift messages for selected ideas",
		Long: `Draft a one-line note, a short heartfelt card, and a professional
writeup for the selected gift ideas.

Example:
  giftscout cards --recipient "my sister" --occasion birthday --idea "Leather Journal" --idea "Desk Plant"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCards(flags, names)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringSliceVar(&names, "idea", nil, "Selected idea name (repeatable)")
	_ = cmd.MarkFlagRequired("idea")

	return cmd
}

func runCards(flags profileFlags, names []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg := config.Get()

	client, err := llm.NewClient(cfg.Gemini.Model)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}

	selected := make([]core.GiftIdea, 0, len(names))
	for _, name := range names {
		selected = append(selected, core.GiftIdea{Name: name})
	}

	engine := newEngine(client, cfg)
	text, err := engine.GenerateCards(ctx, flags.toProfile(), selected)
	if err != nil {
		return fmt.Errorf("failed to generate cards: %w", err)
	}

	fmt.Println(text)
	return nil
}
