package evidence

import (
	"context"
	"errors"
	"math"
	"testing"

	"giftscout/internal/search"
)

func TestBuildDocsProjection(t *testing.T) {
	results := []search.Result{
		{URL: "https://a.example/1", Title: "First", Snippet: "one"},
		{URL: "https://b.example/2", Title: "Second", Snippet: "two"},
	}

	docs := BuildDocs(results)

	if len(docs) != len(results) {
		t.Fatalf("Expected %d docs, got %d", len(results), len(docs))
	}
	for i, d := range docs {
		if d.URL != results[i].URL {
			t.Errorf("Doc %d URL = %q, expected %q", i, d.URL, results[i].URL)
		}
		if d.Title != results[i].Title {
			t.Errorf("Doc %d Title = %q, expected %q", i, d.Title, results[i].Title)
		}
	}
	if docs[0].Text != "TITLE: First\nURL: https://a.example/1\nSNIPPET: one" {
		t.Errorf("Unexpected doc text: %q", docs[0].Text)
	}
}

func TestBuildDocsEmpty(t *testing.T) {
	docs := BuildDocs(nil)
	if len(docs) != 0 {
		t.Errorf("Expected no docs for empty input, got %d", len(docs))
	}
}

// fakeEmbedder maps texts to fixed vectors and counts calls.
type fakeEmbedder struct {
	vectors map[string][]float64
	fallback []float64
	calls    int
	err      error
}

func (f *fakeEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float64, len(texts))
	for i, text := range texts {
		if vec, ok := f.vectors[text]; ok {
			out[i] = vec
		} else {
			out[i] = f.fallback
		}
	}
	return out, nil
}

func TestTopKBySimilarityEmptyInputSkipsEmbedding(t *testing.T) {
	embedder := &fakeEmbedder{}

	docs, err := TopKBySimilarity(context.Background(), embedder, "reference", nil, 5)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("Expected empty output, got %d docs", len(docs))
	}
	if embedder.calls != 0 {
		t.Errorf("Expected zero embedding calls, got %d", embedder.calls)
	}
}

func TestTopKBySimilaritySelectsHighest(t *testing.T) {
	docs := []Document{
		{Text: "far", URL: "https://far.example"},
		{Text: "near", URL: "https://near.example"},
		{Text: "middle", URL: "https://middle.example"},
	}
	embedder := &fakeEmbedder{
		vectors: map[string][]float64{
			"reference": {1, 0},
			"far":       {0, 1},
			"near":      {1, 0},
			"middle":    {1, 1},
		},
	}

	top, err := TopKBySimilarity(context.Background(), embedder, "reference", docs, 2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("Expected 2 docs, got %d", len(top))
	}
	if top[0].URL != "https://near.example" {
		t.Errorf("Expected nearest doc first, got %q", top[0].URL)
	}
	if top[1].URL != "https://middle.example" {
		t.Errorf("Expected middle doc second, got %q", top[1].URL)
	}
	if embedder.calls != 1 {
		t.Errorf("Expected one batched embedding call, got %d", embedder.calls)
	}
}

func TestTopKBySimilarityStableTies(t *testing.T) {
	docs := []Document{
		{Text: "a", URL: "https://a.example"},
		{Text: "b", URL: "https://b.example"},
		{Text: "c", URL: "https://c.example"},
	}
	embedder := &fakeEmbedder{fallback: []float64{1, 0}, vectors: map[string][]float64{}}

	top, err := TopKBySimilarity(context.Background(), embedder, "reference", docs, 2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	// All similarities equal, so original order wins
	if top[0].URL != "https://a.example" || top[1].URL != "https://b.example" {
		t.Errorf("Expected original order on ties, got [%s %s]", top[0].URL, top[1].URL)
	}
}

func TestTopKBySimilarityKLargerThanInput(t *testing.T) {
	docs := []Document{{Text: "only", URL: "https://only.example"}}
	embedder := &fakeEmbedder{fallback: []float64{1, 0}}

	top, err := TopKBySimilarity(context.Background(), embedder, "reference", docs, 18)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(top) != 1 {
		t.Errorf("Expected 1 doc, got %d", len(top))
	}
}

func TestTopKBySimilarityPropagatesEmbedderError(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("backend unreachable")}
	docs := []Document{{Text: "a", URL: "https://a.example"}}

	_, err := TopKBySimilarity(context.Background(), embedder, "reference", docs, 1)
	if err == nil {
		t.Error("Expected error from failing embedder")
	}
}

func TestCosineHandlesZeroVectors(t *testing.T) {
	got := Cosine([]float64{0, 0}, []float64{1, 0})
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Errorf("Expected finite similarity for zero vector, got %v", got)
	}
	if got != 0 {
		t.Errorf("Expected 0 similarity for zero vector, got %v", got)
	}
}

func TestCosineIdenticalVectors(t *testing.T) {
	got := Cosine([]float64{3, 4}, []float64{3, 4})
	if math.Abs(got-1.0) > 1e-6 {
		t.Errorf("Expected similarity ~1.0, got %v", got)
	}
}
