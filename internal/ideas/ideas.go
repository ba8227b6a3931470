// Package ideas extracts structured gift ideas from a profile and condensed
// web search evidence.
package ideas

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"giftscout/internal/core"
	"giftscout/internal/profile"
	"giftscout/internal/prompts"
	"giftscout/internal/search"

	"github.com/google/uuid"
)

// maxCondensedResults bounds how many search results feed the extraction
// prompt, keeping prompt size predictable.
const maxCondensedResults = 40

// rawIdea mirrors the per-item JSON shape the extractor prompt describes.
// Loose types let a single malformed item be skipped without failing the
// whole extraction.
type rawIdea struct {
	Name           string `json:"name"`
	WhyItFits      string `json:"why_it_fits"`
	EstimatedPrice any    `json:"estimated_price"`
	EvidenceURLs   []any  `json:"evidence_urls"`
}

// Extract asks the language model for up to k gift ideas grounded in the
// given search results. Malformed top-level JSON is a hard failure; items
// with an empty name, an excluded name (case-insensitive), or other
// per-item noise are filtered silently.
func Extract(ctx context.Context, completer profile.JSONCompleter, p core.GiftProfile, results []search.Result, k int, excludeNames []string) ([]core.GiftIdea, error) {
	condensed := make([]string, 0, maxCondensedResults)
	for _, r := range results {
		if len(condensed) == maxCondensedResults {
			break
		}
		condensed = append(condensed, fmt.Sprintf("- %s\n  %s\n  %s", r.Title, r.URL, r.Snippet))
	}

	excluded := make(map[string]bool, len(excludeNames))
	for _, name := range excludeNames {
		excluded[strings.ToLower(name)] = true
	}

	user := fmt.Sprintf(`
PROFILE:
%s

EXCLUDE IDEAS (do not repeat):
%s

WEB SNIPPETS:
%s

Return JSON with key 'ideas' as array of objects:
name (string), why_it_fits (string), estimated_price (string|null), evidence_urls (array of strings).
`, profile.Text(p), excludeText(excludeNames), strings.Join(condensed, "\n"))

	instruction := fmt.Sprintf(prompts.IdeaExtractor, k)
	raw, err := completer.CompleteJSON(ctx, prompts.SystemGiftBot, instruction+"\n\n"+user)
	if err != nil {
		return nil, fmt.Errorf("idea extraction failed: %w", err)
	}

	var parsed struct {
		Ideas []json.RawMessage `json:"ideas"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("idea extractor returned malformed JSON: %w", err)
	}

	var extracted []core.GiftIdea
	for _, item := range parsed.Ideas {
		var ri rawIdea
		if err := json.Unmarshal(item, &ri); err != nil {
			continue
		}

		name := strings.TrimSpace(ri.Name)
		if name == "" {
			continue
		}
		if excluded[strings.ToLower(name)] {
			continue
		}

		var evidenceURLs []string
		for _, entry := range ri.EvidenceURLs {
			if u, ok := entry.(string); ok {
				evidenceURLs = append(evidenceURLs, u)
			}
		}

		estimatedPrice := ""
		if price, ok := ri.EstimatedPrice.(string); ok {
			estimatedPrice = price
		}

		extracted = append(extracted, core.GiftIdea{
			ID:             uuid.NewString(),
			Name:           name,
			WhyItFits:      strings.TrimSpace(ri.WhyItFits),
			EstimatedPrice: estimatedPrice,
			EvidenceURLs:   evidenceURLs,
		})
		if len(extracted) == k {
			break
		}
	}

	return extracted, nil
}

// excludeText renders the exclude list for the prompt, sorted for stable
// prompt content.
func excludeText(excludeNames []string) string {
	if len(excludeNames) == 0 {
		return "(none)"
	}
	sorted := make([]string, len(excludeNames))
	copy(sorted, excludeNames)
	sort.Strings(sorted)
	return strings.Join(sorted, "\n")
}
