package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"giftscout/internal/config"
	"giftscout/internal/core"
	"giftscout/internal/llm"
	"giftscout/internal/profile"
	"giftscout/internal/recommend"
	"giftscout/internal/search"

	"github.com/spf13/cobra"
)

// profileFlags collects the recipient profile fields shared by the
// recommend and cards commands.
type profileFlags struct {
	recipient    string
	age          string
	relationship string
	personality  string
	interests    string
	occasion     string
	budget       float64
	noGo         string
	notes        string
}

func (f *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.recipient, "recipient", "", "Who the gift is for (e.g., 'my sister')")
	cmd.Flags().StringVar(&f.age, "age", "", "Age or age range (e.g., '29', '30s')")
	cmd.Flags().StringVar(&f.relationship, "relationship", "", "Relationship to you (friend, partner, coworker)")
	cmd.Flags().StringVar(&f.personality, "personality", "", "Traits like minimalist, sentimental, practical")
	cmd.Flags().StringVar(&f.interests, "interests", "", "Hobbies and interests")
	cmd.Flags().StringVar(&f.occasion, "occasion", "", "Birthday, Christmas, graduation, etc.")
	cmd.Flags().Float64Var(&f.budget, "budget", 0, "Budget in USD")
	cmd.Flags().StringVar(&f.noGo, "no-go", "", "Free-text no-go notes (e.g., 'no perfumes')")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Anything else worth knowing")
}

func (f *profileFlags) toProfile() core.GiftProfile {
	return core.GiftProfile{
		Recipient:    f.recipient,
		Age:          f.age,
		Relationship: f.relationship,
		Personality:  f.personality,
		Interests:    f.interests,
		Occasion:     f.occasion,
		BudgetUSD:    f.budget,
		NoGo:         f.noGo,
		ExtraNotes:   f.notes,
	}
}

// NewRecommendCmd creates the recommend command
func NewRecommendCmd() *cobra.Command {
	var (
		flags   profileFlags
		prompt  string
		exclude []string
		count   int
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Generate ranked gift ideas for a recipient profile",
		Long: `Generate gift ideas by searching the web for the described recipient
and ranking the results.

Examples:
  # Structured profile
  giftscout recommend --recipient "my sister" --age 29 --interests "pottery, hiking" --budget 60

  # Free-text request
  giftscout recommend --prompt "birthday gift for my coworker who loves coffee, $40 max, no mugs"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecommend(flags, prompt, exclude, count, asJSON)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&prompt, "prompt", "", "Free-text gifting request (parsed into a profile)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Idea names to exclude (repeatable)")
	cmd.Flags().IntVarP(&count, "count", "k", 0, "Maximum ideas to return (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the batch as JSON instead of rendered cards")

	return cmd
}

func runRecommend(flags profileFlags, prompt string, exclude []string, count int, asJSON bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cfg := config.Get()

	client, err := llm.NewClient(cfg.Gemini.Model)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}

	giftProfile := flags.toProfile()
	if strings.TrimSpace(prompt) != "" {
		parsed, parsedExclude, err := profile.FromPrompt(ctx, client, prompt)
		if err != nil {
			return fmt.Errorf("failed to parse prompt into a profile: %w", err)
		}
		giftProfile = parsed
		exclude = append(exclude, parsedExclude...)
	}

	engine := newEngine(client, cfg)
	if count <= 0 {
		count = cfg.Recommend.IdeasPerBatch
	}

	batch, err := engine.GenerateBatch(ctx, giftProfile, exclude, count)
	if err != nil {
		return fmt.Errorf("failed to generate recommendations: %w", err)
	}

	if asJSON {
		encoded, err := json.MarshalIndent(batch, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode batch: %w", err)
		}
		fmt.Println(string(encoded))
		return nil
	}

	fmt.Println(renderBatch(batch))
	return nil
}

// newEngine wires the recommendation engine from configuration. The search
// provider is chosen once per process: SerpAPI when its key is configured,
// DuckDuckGo otherwise.
func newEngine(client *llm.Client, cfg *config.Config) *recommend.Engine {
	var provider search.Provider
	if cfg.Search.Provider != "" {
		factory := search.NewProviderFactory()
		created, err := factory.CreateProvider(search.ProviderType(cfg.Search.Provider), map[string]string{
			"api_key": cfg.Search.Providers.SerpAPI.APIKey,
		})
		if err == nil {
			provider = created
		}
	}
	if provider == nil {
		provider = search.NewDefaultProvider(cfg.Search.Providers.SerpAPI.APIKey)
	}

	return recommend.NewEngine(client, client, provider, recommend.Config{
		IdeasPerBatch:      cfg.Recommend.IdeasPerBatch,
		EvidenceTopK:       cfg.Recommend.EvidenceTopK,
		BuyLinksPerIdea:    cfg.Recommend.BuyLinksPerIdea,
		MaxResultsPerQuery: cfg.Search.MaxResults,
	})
}
