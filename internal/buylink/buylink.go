// Package buylink resolves a best-effort purchase URL for a ranked gift
// idea. Links come from search results, not live inventory, so absence is
// a valid outcome.
package buylink

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"giftscout/internal/core"
	"giftscout/internal/logger"
	"giftscout/internal/profile"
	"giftscout/internal/prompts"
	"giftscout/internal/scoring"
	"giftscout/internal/search"
)

// maxQueries caps the purchase-query list the model may propose.
const maxQueries = 5

// Resolver finds buy links by generating purchase-oriented queries with the
// LLM and scanning search results for the most trusted domain.
type Resolver struct {
	completer     profile.JSONCompleter
	searcher      search.Provider
	maxResults    int // results requested per search query
	linksPerQuery int // results examined per query
}

// NewResolver creates a buy-link resolver.
func NewResolver(completer profile.JSONCompleter, searcher search.Provider, maxResults, linksPerQuery int) *Resolver {
	return &Resolver{
		completer:     completer,
		searcher:      searcher,
		maxResults:    maxResults,
		linksPerQuery: linksPerQuery,
	}
}

// Resolve returns the best purchase URL found for the idea, or "" when
// nothing qualifies. The model proposes 3-5 queries; across all of them the
// single URL with the strictly highest domain weight wins, so earlier
// queries are preferred on exact ties. With no positive hit the idea's
// first evidence URL is the fallback.
func (r *Resolver) Resolve(ctx context.Context, idea core.GiftIdea) (string, error) {
	evidenceHint := ""
	for _, u := range idea.EvidenceURLs {
		if strings.Contains(u, "etsy.com") {
			evidenceHint = "If an Etsy listing URL is present in evidence, prefer that as a buy link."
			break
		}
	}

	user := fmt.Sprintf("%s\n\nIDEA: %s\n%s\nReturn JSON array of strings.", prompts.BuyLinkFinder, idea.Name, evidenceHint)
	raw, err := r.completer.CompleteJSON(ctx, prompts.SystemGiftBot, user)
	if err != nil {
		return "", fmt.Errorf("buy-link query generation failed: %w", err)
	}

	var entries []any
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return "", fmt.Errorf("buy-link finder returned malformed JSON: %w", err)
	}

	var queries []string
	for _, entry := range entries {
		q, ok := entry.(string)
		if !ok || strings.TrimSpace(q) == "" {
			continue
		}
		queries = append(queries, q)
		if len(queries) == maxQueries {
			break
		}
	}

	best := ""
	bestWeight := 0.0

	for _, q := range queries {
		results, err := r.searcher.Search(ctx, q, search.Config{MaxResults: r.maxResults})
		if err != nil {
			return "", fmt.Errorf("buy-link search failed for %q: %w", q, err)
		}

		examined := results
		if len(examined) > r.linksPerQuery {
			examined = examined[:r.linksPerQuery]
		}
		for _, result := range examined {
			if w := scoring.DomainWeight(result.URL); w > bestWeight {
				bestWeight = w
				best = result.URL
			}
		}
	}

	if best != "" {
		return best, nil
	}

	if len(idea.EvidenceURLs) > 0 {
		logger.Debug("buy link fell back to evidence URL", "idea", idea.Name)
		return idea.EvidenceURLs[0], nil
	}

	return "", nil
}
