package search

import (
	"context"
	"regexp"
	"strings"
)

// maxSnippetLen caps snippet length so prompt size stays predictable.
const maxSnippetLen = 500

// Provider defines the unified interface for search providers
type Provider interface {
	// Search performs a search with configuration
	Search(ctx context.Context, query string, config Config) ([]Result, error)

	// GetName returns the name of the search provider
	GetName() string
}

// Config holds configuration for search requests
type Config struct {
	MaxResults int // Maximum number of results to return per query
}

// Result represents a unified search result
type Result struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Domain  string `json:"domain"`
	Source  string `json:"source"` // Provider-specific source identifier
	Rank    int    `json:"rank"`   // Position in search results
}

// ProviderType represents the type of search provider
type ProviderType string

const (
	ProviderTypeSerpAPI    ProviderType = "serpapi"
	ProviderTypeDuckDuckGo ProviderType = "duckduckgo"
	ProviderTypeMock       ProviderType = "mock"
)

// ProviderFactory creates search providers based on type and configuration
type ProviderFactory struct{}

// NewProviderFactory creates a new provider factory
func NewProviderFactory() *ProviderFactory {
	return &ProviderFactory{}
}

// CreateProvider creates a search provider of the specified type
func (f *ProviderFactory) CreateProvider(providerType ProviderType, config map[string]string) (Provider, error) {
	switch providerType {
	case ProviderTypeSerpAPI:
		apiKey, exists := config["api_key"]
		if !exists || apiKey == "" {
			return nil, ErrMissingAPIKey
		}
		return NewSerpAPIProvider(apiKey), nil
	case ProviderTypeDuckDuckGo:
		return NewDuckDuckGoProvider(), nil
	case ProviderTypeMock:
		return NewMockProvider(), nil
	default:
		return nil, ErrUnsupportedProvider
	}
}

// GetAvailableProviders returns a list of available provider types
func (f *ProviderFactory) GetAvailableProviders() []ProviderType {
	return []ProviderType{
		ProviderTypeSerpAPI,
		ProviderTypeDuckDuckGo,
		ProviderTypeMock,
	}
}

// NewDefaultProvider selects the provider for this process: SerpAPI when its
// API key is configured, DuckDuckGo otherwise. The choice is made once per
// process; there is no per-call failover between providers.
func NewDefaultProvider(serpAPIKey string) Provider {
	if strings.TrimSpace(serpAPIKey) != "" {
		return NewSerpAPIProvider(serpAPIKey)
	}
	return NewDuckDuckGoProvider()
}

var whitespaceRegex = regexp.MustCompile(`\s+`)

// cleanSnippet normalizes whitespace in a snippet and caps its length.
func cleanSnippet(s string) string {
	s = whitespaceRegex.ReplaceAllString(strings.TrimSpace(s), " ")
	if len(s) > maxSnippetLen {
		s = s[:maxSnippetLen]
	}
	return s
}
