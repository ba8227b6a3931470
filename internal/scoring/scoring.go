// Package scoring ranks gift ideas by combining semantic fit, source-domain
// trust, and rating mentions extracted from snippets.
package scoring

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"giftscout/internal/core"
	"giftscout/internal/evidence"
	"giftscout/internal/search"
)

// Domain trust weights. Pinterest and Etsy results carry the strongest
// purchase-intent signal for gifting, reputable US retailers a smaller one.
const (
	PinterestWeight = 1.35
	EtsyWeight      = 1.35
	RetailWeight    = 1.15
	DefaultWeight   = 1.0

	// MaxDomainWeight normalizes domain boosts to [0,1] during ranking.
	MaxDomainWeight = 1.35
)

// Score combination weights. Fit dominates, domain trust is secondary, and
// the rating signal is a tertiary tie-breaker since it is frequently absent.
const (
	fitWeight    = 0.55
	domainWeight = 0.25
	ratingWeight = 0.20
)

// evidenceURLCap bounds how many of an idea's evidence URLs contribute to
// its domain and rating boosts.
const evidenceURLCap = 4

// retailDomains is the allow-list of reputable US retail domains.
var retailDomains = []string{
	"amazon.com", "target.com", "walmart.com", "bestbuy.com", "nike.com", "adidas.com",
	"crateandbarrel.com", "potterybarn.com", "sephora.com", "ulta.com", "barnesandnoble.com",
	"etsy.com",
}

// ratingRegex matches a decimal rating mention like "4.5 out of 5" or
// "4.5 stars" in lowercased snippet text.
var ratingRegex = regexp.MustCompile(`(\d\.\d)\s*(?:out of\s*5|stars?)`)

// DomainWeight returns the trust weight for a URL's hostname. Malformed
// URLs resolve to the default weight rather than failing.
func DomainWeight(rawURL string) float64 {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return DefaultWeight
	}
	host := strings.ToLower(parsed.Hostname())

	if strings.Contains(host, "pinterest.") {
		return PinterestWeight
	}
	if strings.HasSuffix(host, "etsy.com") {
		return EtsyWeight
	}
	for _, domain := range retailDomains {
		if strings.HasSuffix(host, domain) {
			return RetailWeight
		}
	}
	return DefaultWeight
}

// RatingSignal extracts a rating mention from snippet text and maps it to
// [0,1]. Absence yields exactly 0. This is a lexical heuristic over search
// snippets only, never fetched page content, and must not be presented as
// a verified rating downstream.
func RatingSignal(text string) float64 {
	match := ratingRegex.FindStringSubmatch(strings.ToLower(text))
	if match == nil {
		return 0
	}
	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}
	return value / 5.0
}

// FitScores embeds the profile text and each idea's name+rationale in one
// batched call and returns cosine similarities aligned by index to the
// idea list. An empty idea list returns empty without any embedding call.
func FitScores(ctx context.Context, embedder evidence.Embedder, profileText string, ideas []core.GiftIdea) ([]float64, error) {
	if len(ideas) == 0 {
		return nil, nil
	}

	texts := make([]string, 0, len(ideas)+1)
	texts = append(texts, profileText)
	for _, idea := range ideas {
		texts = append(texts, idea.Name+"\n"+idea.WhyItFits)
	}

	embeddings, err := embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed ideas for fit scoring: %w", err)
	}
	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(embeddings), len(texts))
	}

	scores := make([]float64, len(ideas))
	for i, emb := range embeddings[1:] {
		scores[i] = evidence.Cosine(emb, embeddings[0])
	}
	return scores, nil
}

// Rank fills in each idea's score from its fit similarity, the strongest
// domain weight across its first evidence URLs, and the strongest rating
// mention in the backing snippets, then sorts descending. Ties keep their
// prior relative order.
func Rank(ideas []core.GiftIdea, fit []float64, backing []search.Result) []core.GiftIdea {
	urlToText := make(map[string]string, len(backing))
	for _, r := range backing {
		urlToText[r.URL] = r.Title + "\n" + r.Snippet
	}

	for i := range ideas {
		var domainBoost, ratingBoost float64

		urls := ideas[i].EvidenceURLs
		if len(urls) > evidenceURLCap {
			urls = urls[:evidenceURLCap]
		}
		for _, u := range urls {
			if w := DomainWeight(u); w > domainBoost {
				domainBoost = w
			}
			if r := RatingSignal(urlToText[u]); r > ratingBoost {
				ratingBoost = r
			}
		}

		fitScore := (fit[i] + 1.0) / 2.0 // normalize cosine from [-1,1] to [0,1]
		domainScore := 0.0
		if domainBoost > 0 {
			domainScore = domainBoost / MaxDomainWeight
			if domainScore > 1.0 {
				domainScore = 1.0
			}
		}

		ideas[i].Score = fitWeight*fitScore + domainWeight*domainScore + ratingWeight*ratingBoost
	}

	sort.SliceStable(ideas, func(a, b int) bool {
		return ideas[a].Score > ideas[b].Score
	})

	return ideas
}
