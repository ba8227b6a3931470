package search

import (
	"context"
)

// MockProvider implements Provider for testing purposes
type MockProvider struct {
	name    string
	results []Result
	err     error
	calls   []string
}

// NewMockProvider creates a new mock search provider with gift-flavored results
func NewMockProvider() *MockProvider {
	return &MockProvider{
		name: "Mock",
		results: []Result{
			{
				URL:     "https://www.etsy.com/listing/100/ceramic-mug-set",
				Title:   "Handmade Ceramic Mug Set",
				Snippet: "Hand-thrown stoneware mugs. Rated 4.8 out of 5 stars by 1,200 buyers.",
				Domain:  "etsy.com",
				Source:  "mock",
				Rank:    1,
			},
			{
				URL:     "https://www.pinterest.com/pin/200/leather-journal-gifts",
				Title:   "Leather Journal Gift Ideas",
				Snippet: "Personalized leather journals for writers and planners.",
				Domain:  "pinterest.com",
				Source:  "mock",
				Rank:    2,
			},
			{
				URL:     "https://www.amazon.com/desk-plant-kit",
				Title:   "Low-Maintenance Desk Plant Kit",
				Snippet: "Succulent starter kit for the office. 4.5 stars across reviews.",
				Domain:  "amazon.com",
				Source:  "mock",
				Rank:    3,
			},
		},
	}
}

// GetName returns the name of this provider
func (m *MockProvider) GetName() string {
	return m.name
}

// Search returns the configured mock results, recording the query.
func (m *MockProvider) Search(ctx context.Context, query string, config Config) ([]Result, error) {
	m.calls = append(m.calls, query)
	if m.err != nil {
		return nil, m.err
	}

	maxResults := config.MaxResults
	if maxResults <= 0 || maxResults > len(m.results) {
		maxResults = len(m.results)
	}

	results := make([]Result, maxResults)
	copy(results, m.results[:maxResults])

	return results, nil
}

// SetResults allows customization of mock results for testing
func (m *MockProvider) SetResults(results []Result) {
	m.results = results
}

// SetError makes every subsequent Search call fail with err
func (m *MockProvider) SetError(err error) {
	m.err = err
}

// SetName allows customization of provider name for testing
func (m *MockProvider) SetName(name string) {
	m.name = name
}

// Calls returns the queries issued so far, in order
func (m *MockProvider) Calls() []string {
	return m.calls
}
