// Package recommend orchestrates the gift recommendation pipeline: plan
// queries, gather and select evidence, extract ideas, rank them, and
// resolve buy links.
package recommend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"giftscout/internal/buylink"
	"giftscout/internal/core"
	"giftscout/internal/evidence"
	"giftscout/internal/ideas"
	"giftscout/internal/logger"
	"giftscout/internal/planner"
	"giftscout/internal/profile"
	"giftscout/internal/prompts"
	"giftscout/internal/scoring"
	"giftscout/internal/search"

	"github.com/google/uuid"
)

// LanguageModel is the completion capability the pipeline consumes.
type LanguageModel interface {
	CompleteJSON(ctx context.Context, system, user string) (string, error)
	CompleteText(ctx context.Context, system, user string) (string, error)
}

// Config holds pipeline tuning knobs.
type Config struct {
	IdeasPerBatch      int // K: maximum ideas returned per batch
	EvidenceTopK       int // Documents kept after similarity selection
	BuyLinksPerIdea    int // Results examined per buy-link query
	MaxResultsPerQuery int // Results requested per search query
}

// DefaultConfig returns the pipeline defaults.
func DefaultConfig() Config {
	return Config{
		IdeasPerBatch:      5,
		EvidenceTopK:       18,
		BuyLinksPerIdea:    6,
		MaxResultsPerQuery: 8,
	}
}

// Engine sequences the recommendation pipeline for one request. Engines
// hold no per-request state and are safe to reuse across requests.
type Engine struct {
	model    LanguageModel
	embedder evidence.Embedder
	searcher search.Provider
	config   Config
}

// NewEngine creates a recommendation engine with the provided collaborators.
func NewEngine(model LanguageModel, embedder evidence.Embedder, searcher search.Provider, config Config) *Engine {
	if config.IdeasPerBatch <= 0 {
		config = DefaultConfig()
	}
	return &Engine{
		model:    model,
		embedder: embedder,
		searcher: searcher,
		config:   config,
	}
}

// GenerateBatch runs one full generation cycle for the profile and returns
// at most k ranked ideas. Names in excludeNames never appear in the result
// (case-insensitive). A failure in any stage aborts the whole cycle; no
// partial batch is returned.
func (e *Engine) GenerateBatch(ctx context.Context, p core.GiftProfile, excludeNames []string, k int) (*core.GiftBatch, error) {
	if k <= 0 {
		k = e.config.IdeasPerBatch
	}

	queries, err := planner.PlanQueries(ctx, e.model, p)
	if err != nil {
		return nil, fmt.Errorf("failed to plan queries: %w", err)
	}

	results, err := e.gatherResults(ctx, queries)
	if err != nil {
		return nil, err
	}

	// Evidence selection: keep only the documents most similar to the
	// profile so idea extraction sees a bounded, relevant subset.
	profileText := profile.Text(p)
	docs := evidence.BuildDocs(results)
	topDocs, err := evidence.TopKBySimilarity(ctx, e.embedder, profileText, docs, e.config.EvidenceTopK)
	if err != nil {
		return nil, fmt.Errorf("failed to select evidence: %w", err)
	}

	topURLs := make(map[string]bool, len(topDocs))
	for _, d := range topDocs {
		topURLs[d.URL] = true
	}
	var reduced []search.Result
	for _, r := range results {
		if topURLs[r.URL] {
			reduced = append(reduced, r)
		}
	}

	extracted, err := ideas.Extract(ctx, e.model, p, reduced, k, excludeNames)
	if err != nil {
		return nil, fmt.Errorf("failed to extract ideas: %w", err)
	}

	fit, err := scoring.FitScores(ctx, e.embedder, profileText, extracted)
	if err != nil {
		return nil, fmt.Errorf("failed to score ideas: %w", err)
	}
	ranked := scoring.Rank(extracted, fit, reduced)

	if len(ranked) > k {
		ranked = ranked[:k]
	}

	// Link resolution is the most expensive step per idea, so it runs only
	// on the ranked short list.
	resolver := buylink.NewResolver(e.model, e.searcher, e.config.MaxResultsPerQuery, e.config.BuyLinksPerIdea)
	for i := range ranked {
		link, err := resolver.Resolve(ctx, ranked[i])
		if err != nil {
			return nil, fmt.Errorf("failed to resolve buy link for %q: %w", ranked[i].Name, err)
		}
		ranked[i].BuyLink = link
	}

	notes := "Search queries used:\n"
	for _, q := range queries {
		notes += "- " + q + "\n"
	}

	return &core.GiftBatch{
		ID:          uuid.NewString(),
		Ideas:       ranked,
		SearchNotes: strings.TrimRight(notes, "\n"),
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// gatherResults runs every query through the search gateway and merges the
// results, deduplicated by URL. A failing query is logged and skipped;
// gathering fails only when every query fails.
func (e *Engine) gatherResults(ctx context.Context, queries []string) ([]search.Result, error) {
	seen := make(map[string]bool)
	var all []search.Result
	var failures int
	var lastErr error

	for _, q := range queries {
		results, err := e.searcher.Search(ctx, q, search.Config{MaxResults: e.config.MaxResultsPerQuery})
		if err != nil {
			logger.Warn("search query failed", "query", q, "error", err.Error())
			failures++
			lastErr = err
			continue
		}
		for _, r := range results {
			if r.URL == "" || seen[r.URL] {
				continue
			}
			seen[r.URL] = true
			all = append(all, r)
		}
	}

	if len(queries) > 0 && failures == len(queries) {
		return nil, fmt.Errorf("all %d search queries failed: %w", len(queries), lastErr)
	}

	return all, nil
}

// GenerateCards renders the selected idea names into a bulleted block and
// asks the model for a one-line note, a short card, and a professional
// writeup. The output is raw text; even unlabeled output is returned as-is
// since it is still useful to a human reader.
func (e *Engine) GenerateCards(ctx context.Context, p core.GiftProfile, selected []core.GiftIdea) (string, error) {
	var ideaLines []string
	for _, idea := range selected {
		ideaLines = append(ideaLines, "- "+idea.Name)
	}

	user := fmt.Sprintf("PROFILE:\n%s\n\nSELECTED IDEAS:\n%s\n\n%s",
		profile.Text(p), strings.Join(ideaLines, "\n"), prompts.CardWriter)

	text, err := e.model.CompleteText(ctx, prompts.SystemGiftBot, user)
	if err != nil {
		return "", fmt.Errorf("failed to generate cards: %w", err)
	}

	return text, nil
}
