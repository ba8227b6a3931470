package core

import "time"

// GiftProfile describes the gift recipient and the giver's constraints.
// A profile is built once per request and is not mutated while a batch is
// being generated. Every field is optional; empty fields are omitted when
// the profile is serialized for prompts.
type GiftProfile struct {
	Recipient    string  `json:"recipient"`    // Who the gift is for (e.g., "my sister")
	Age          string  `json:"age"`          // Age or age range (e.g., "29", "30s")
	Relationship string  `json:"relationship"` // Relationship to the giver (friend, partner, coworker)
	Personality  string  `json:"personality"`  // Traits like minimalist, sentimental, practical
	Interests    string  `json:"interests"`    // Hobbies and interests
	Occasion     string  `json:"occasion"`     // Birthday, Christmas, graduation, housewarming, etc.
	BudgetUSD    float64 `json:"budget_usd"`   // Budget in USD (0 means unspecified)
	NoGo         string  `json:"no_go"`        // Free-text no-go notes (e.g., "no perfumes, no alcohol")
	LocationUS   string  `json:"location_us"`  // US location context if relevant
	ExtraNotes   string  `json:"extra_notes"`  // Anything else the giver mentioned
}

// GiftIdea is a single recommendation produced by the idea extractor.
// Score is filled in by the ranker and BuyLink by the buy-link resolver;
// after a batch is returned the idea is never mutated again.
type GiftIdea struct {
	ID             string   `json:"id"`              // Unique identifier for the idea
	Name           string   `json:"name"`            // Product category or concrete product concept
	WhyItFits      string   `json:"why_it_fits"`     // Rationale tying the idea to the profile
	EstimatedPrice string   `json:"estimated_price"` // Opaque display string (e.g., "$20-$40"), never parsed
	BuyLink        string   `json:"buy_link"`        // Best purchase URL found (empty when none resolved)
	Score          float64  `json:"score"`           // Weighted fit/domain/rating score
	EvidenceURLs   []string `json:"evidence_urls"`   // Search-result URLs that inspired the idea
}

// GiftBatch is the ranked, size-capped idea list returned for one
// generation cycle, highest score first.
type GiftBatch struct {
	ID          string     `json:"id"`           // Unique identifier for the batch
	Ideas       []GiftIdea `json:"ideas"`        // At most the requested K ideas, score-descending
	SearchNotes string     `json:"search_notes"` // Human-readable log of the queries used
	GeneratedAt time.Time  `json:"generated_at"` // Timestamp when the batch was generated
}
