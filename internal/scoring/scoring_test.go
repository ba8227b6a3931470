package scoring

import (
	"context"
	"fmt"
	"math"
	"testing"

	"giftscout/internal/core"
	"giftscout/internal/search"
)

func TestDomainWeight(t *testing.T) {
	cases := []struct {
		url      string
		expected float64
	}{
		{"https://www.pinterest.com/x", 1.35},
		{"https://pinterest.co.uk/boards", 1.35},
		{"https://shop.etsy.com/y", 1.35},
		{"https://www.etsy.com/listing/123", 1.35},
		{"https://www.amazon.com/z", 1.15},
		{"https://www.target.com/p/item", 1.15},
		{"https://randomsite.io/z", 1.0},
		{"not-a-url", 1.0},
		{"", 1.0},
		{"://bad", 1.0},
	}

	for _, tc := range cases {
		if got := DomainWeight(tc.url); got != tc.expected {
			t.Errorf("DomainWeight(%q) = %v, expected %v", tc.url, got, tc.expected)
		}
	}
}

func TestRatingSignal(t *testing.T) {
	cases := []struct {
		snippet  string
		expected float64
	}{
		{"Rated 4.5 out of 5 stars", 0.9},
		{"customers gave it 4.0 stars", 0.8},
		{"3.5 star rating", 0.7},
		{"2.5 out of  5", 0.5},
		{"a lovely gift with no rating", 0.0},
		{"", 0.0},
		{"rated 5 stars", 0.0}, // integer ratings are not matched
	}

	for _, tc := range cases {
		got := RatingSignal(tc.snippet)
		if math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("RatingSignal(%q) = %v, expected %v", tc.snippet, got, tc.expected)
		}
	}
}

func TestRankFormula(t *testing.T) {
	backing := []search.Result{
		{URL: "https://www.etsy.com/listing/1", Title: "Gift", Snippet: "Rated 4.0 out of 5"},
	}
	ideas := []core.GiftIdea{
		{Name: "Test Idea", EvidenceURLs: []string{"https://www.etsy.com/listing/1"}},
	}

	ranked := Rank(ideas, []float64{1.0}, backing)

	// 0.55*1.0 + 0.25*(1.35/1.35) + 0.20*0.8 = 0.96
	expected := 0.96
	if math.Abs(ranked[0].Score-expected) > 1e-9 {
		t.Errorf("Expected score %v, got %v", expected, ranked[0].Score)
	}
}

func TestRankNoEvidenceGetsZeroDomainScore(t *testing.T) {
	ideas := []core.GiftIdea{{Name: "Bare Idea"}}

	ranked := Rank(ideas, []float64{0.0}, nil)

	// fit (0+1)/2 = 0.5, domain 0, rating 0 -> 0.275
	expected := 0.55 * 0.5
	if math.Abs(ranked[0].Score-expected) > 1e-9 {
		t.Errorf("Expected score %v, got %v", expected, ranked[0].Score)
	}
}

func TestRankEvidenceURLCap(t *testing.T) {
	// The strong domain sits at position 5, past the 4-URL cap, so it must
	// not contribute.
	urls := []string{
		"https://a.example/1",
		"https://b.example/2",
		"https://c.example/3",
		"https://d.example/4",
		"https://www.etsy.com/listing/5",
	}
	ideas := []core.GiftIdea{{Name: "Capped", EvidenceURLs: urls}}

	ranked := Rank(ideas, []float64{0.0}, nil)

	// All counted URLs have default weight 1.0 -> domain score 1.0/1.35
	expected := 0.25 * (1.0 / 1.35)
	if math.Abs(ranked[0].Score-expected) > 1e-9 {
		t.Errorf("Expected score %v, got %v", expected, ranked[0].Score)
	}
}

func TestRankSortsDescendingStable(t *testing.T) {
	ideas := []core.GiftIdea{
		{Name: "Low"},
		{Name: "High", EvidenceURLs: []string{"https://www.etsy.com/x"}},
		{Name: "AlsoLow"},
	}

	ranked := Rank(ideas, []float64{0.0, 0.0, 0.0}, nil)

	if ranked[0].Name != "High" {
		t.Errorf("Expected 'High' first, got %q", ranked[0].Name)
	}
	// Equal scores keep their prior relative order
	if ranked[1].Name != "Low" || ranked[2].Name != "AlsoLow" {
		t.Errorf("Expected stable tie order [Low AlsoLow], got [%s %s]", ranked[1].Name, ranked[2].Name)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Errorf("Scores not non-increasing at index %d: %v > %v", i, ranked[i].Score, ranked[i-1].Score)
		}
	}
}

// countingEmbedder returns a fixed vector per text and counts calls.
type countingEmbedder struct {
	calls int
}

func (c *countingEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float64, error) {
	c.calls++
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = []float64{1, 0, 0}
	}
	return out, nil
}

func TestFitScoresEmptyIdeasSkipsEmbedding(t *testing.T) {
	embedder := &countingEmbedder{}

	scores, err := FitScores(context.Background(), embedder, "profile text", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("Expected empty scores, got %v", scores)
	}
	if embedder.calls != 0 {
		t.Errorf("Expected no embedding calls, got %d", embedder.calls)
	}
}

func TestFitScoresAlignedByIndex(t *testing.T) {
	embedder := &countingEmbedder{}
	ideas := []core.GiftIdea{
		{Name: "A", WhyItFits: "fits"},
		{Name: "B", WhyItFits: "fits too"},
	}

	scores, err := FitScores(context.Background(), embedder, "profile", ideas)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("Expected 2 scores, got %d", len(scores))
	}
	if embedder.calls != 1 {
		t.Errorf("Expected one batched embedding call, got %d", embedder.calls)
	}
	for i, s := range scores {
		if math.Abs(s-1.0) > 1e-6 {
			t.Errorf("Expected similarity ~1.0 at index %d, got %v", i, s)
		}
		if math.IsNaN(s) || math.IsInf(s, 0) {
			t.Errorf("Expected finite score at index %d, got %v", i, s)
		}
	}
}

func ExampleDomainWeight() {
	fmt.Println(DomainWeight("https://www.pinterest.com/gift-boards"))
	fmt.Println(DomainWeight("https://randomsite.io/page"))
	// Output:
	// 1.35
	// 1
}
