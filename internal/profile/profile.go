// Package profile serializes gift profiles for prompts and builds them
// from free-text requests.
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"giftscout/internal/core"
	"giftscout/internal/prompts"
)

// JSONCompleter is the JSON-constrained completion capability consumed by
// FromPrompt.
type JSONCompleter interface {
	CompleteJSON(ctx context.Context, system, user string) (string, error)
}

// Text serializes the present fields of a profile into a compact prompt
// block. Absent fields are omitted entirely rather than serialized as
// empty values, which keeps prompts short and avoids biasing the model
// with "none" entries. The field order is fixed.
func Text(p core.GiftProfile) string {
	type field struct {
		label string
		value string
	}

	budget := ""
	if p.BudgetUSD > 0 {
		budget = strconv.FormatFloat(p.BudgetUSD, 'f', -1, 64)
	}

	fields := []field{
		{"recipient", p.Recipient},
		{"age", p.Age},
		{"relationship", p.Relationship},
		{"personality", p.Personality},
		{"interests", p.Interests},
		{"occasion", p.Occasion},
		{"budget_usd", budget},
		{"no_go", p.NoGo},
		{"extra_notes", p.ExtraNotes},
	}

	var lines []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", f.label, f.value))
	}

	return strings.Join(lines, "\n")
}

// extractedProfile mirrors the JSON shape the profile-extractor prompt
// describes. Age and budget arrive as numbers or null.
type extractedProfile struct {
	Relationship string      `json:"relationship"`
	Age          json.Number `json:"age"`
	Personality  string      `json:"personality"`
	Interests    string      `json:"interests"`
	Occasion     string      `json:"occasion"`
	BudgetUSD    json.Number `json:"budget_usd"`
	ExcludeIdeas []string    `json:"exclude_ideas"`
	Extra        string      `json:"extra"`
}

// FromPrompt converts a free-text gifting request into a structured profile
// plus a normalized exclude list via the LLM. Malformed JSON from the model
// degrades to an empty profile rather than failing; only transport errors
// are returned.
func FromPrompt(ctx context.Context, completer JSONCompleter, request string) (core.GiftProfile, []string, error) {
	raw, err := completer.CompleteJSON(ctx, prompts.ProfileExtractor, request)
	if err != nil {
		return core.GiftProfile{}, nil, fmt.Errorf("profile extraction failed: %w", err)
	}

	var extracted extractedProfile
	if err := json.Unmarshal([]byte(raw), &extracted); err != nil {
		extracted = extractedProfile{}
	}

	profile := core.GiftProfile{
		Relationship: extracted.Relationship,
		Age:          extracted.Age.String(),
		Personality:  extracted.Personality,
		Interests:    extracted.Interests,
		Occasion:     extracted.Occasion,
		ExtraNotes:   extracted.Extra,
	}
	if profile.Age == "" || profile.Age == "null" {
		profile.Age = ""
	}
	if budget, err := extracted.BudgetUSD.Float64(); err == nil {
		profile.BudgetUSD = budget
	}

	var exclude []string
	for _, idea := range extracted.ExcludeIdeas {
		if trimmed := strings.TrimSpace(idea); trimmed != "" {
			exclude = append(exclude, trimmed)
		}
	}
	if len(exclude) > 0 {
		profile.NoGo = strings.Join(exclude, ", ")
	}

	return profile, exclude, nil
}
