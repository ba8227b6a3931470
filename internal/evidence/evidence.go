// Package evidence turns search results into embeddable documents and
// selects the subset most similar to a reference text. The selection step
// bounds the volume of unstructured text handed to idea extraction.
package evidence

import (
	"context"
	"fmt"
	"math"
	"sort"

	"giftscout/internal/search"
)

// Embedder is the batched text-embedding capability the selector consumes.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float64, error)
}

// Document is a read-only projection of a search result into a single
// embeddable text blob, keeping the originating URL and title for
// traceability.
type Document struct {
	Text  string `json:"text"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

// BuildDocs projects search results into documents, order-preserving 1:1.
func BuildDocs(results []search.Result) []Document {
	docs := make([]Document, 0, len(results))
	for _, r := range results {
		text := fmt.Sprintf("TITLE: %s\nURL: %s\nSNIPPET: %s", r.Title, r.URL, r.Snippet)
		docs = append(docs, Document{Text: text, URL: r.URL, Title: r.Title})
	}
	return docs
}

// TopKBySimilarity ranks documents against the reference text by cosine
// similarity in embedding space and returns the k highest. Ties keep the
// original document order. Empty input returns empty output without
// invoking the embedder.
func TopKBySimilarity(ctx context.Context, embedder Embedder, referenceText string, docs []Document, k int) ([]Document, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	texts := make([]string, 0, len(docs)+1)
	texts = append(texts, referenceText)
	for _, d := range docs {
		texts = append(texts, d.Text)
	}

	embeddings, err := embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed evidence documents: %w", err)
	}
	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(embeddings), len(texts))
	}

	ref := normalizeL2(embeddings[0])
	sims := make([]float64, len(docs))
	for i, emb := range embeddings[1:] {
		sims[i] = dot(normalizeL2(emb), ref)
	}

	indices := make([]int, len(docs))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return sims[indices[a]] > sims[indices[b]]
	})

	if k > len(indices) {
		k = len(indices)
	}
	top := make([]Document, 0, k)
	for _, idx := range indices[:k] {
		top = append(top, docs[idx])
	}

	return top, nil
}

// normalizeL2 scales a vector to unit length. The epsilon keeps zero
// vectors from dividing by zero.
func normalizeL2(vec []float64) []float64 {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	norm := math.Sqrt(sum) + 1e-9

	out := make([]float64, len(vec))
	for i, v := range vec {
		out[i] = v / norm
	}
	return out
}

func dot(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Cosine computes the cosine similarity of two raw vectors using the same
// epsilon-guarded normalization as the selector.
func Cosine(a, b []float64) float64 {
	return dot(normalizeL2(a), normalizeL2(b))
}
