package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"giftscout/internal/config"
	"giftscout/internal/search"

	"github.com/spf13/cobra"
)

// NewSearchCmd creates the search command, a debugging surface for the
// search gateway.
func NewSearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Run one query through the search gateway",
		Long: `Run a single query through the configured search provider and print
the normalized results. Useful for checking provider configuration.

Example:
  giftscout search "pottery gifts under $50"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(strings.Join(args, " "), limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of results (default from config)")

	return cmd
}

func runSearch(query string, limit int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	cfg := config.Get()
	if limit <= 0 {
		limit = cfg.Search.MaxResults
	}

	provider := search.NewDefaultProvider(cfg.Search.Providers.SerpAPI.APIKey)
	fmt.Printf("Searching via %s...\n\n", provider.GetName())

	results, err := provider.Search(ctx, query, search.Config{MaxResults: limit})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	for _, r := range results {
		fmt.Printf("%d. %s\n   %s\n   %s\n\n", r.Rank, r.Title, r.URL, r.Snippet)
	}

	return nil
}
