// Package planner turns a gift profile into a small diversified set of web
// search queries via the LLM.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"giftscout/internal/core"
	"giftscout/internal/profile"
	"giftscout/internal/prompts"
)

// maxQueries caps the planned query set.
const maxQueries = 6

// PlanQueries asks the language model for search queries covering the
// profile. Non-string and blank entries are dropped and the list is
// truncated to six. Malformed JSON from the model is a hard failure.
func PlanQueries(ctx context.Context, completer profile.JSONCompleter, p core.GiftProfile) ([]string, error) {
	user := fmt.Sprintf("PROFILE:\n%s\n\nReturn JSON with key 'queries' as an array.", profile.Text(p))

	raw, err := completer.CompleteJSON(ctx, prompts.SystemGiftBot, prompts.QueryPlanner+"\n\n"+user)
	if err != nil {
		return nil, fmt.Errorf("query planning failed: %w", err)
	}

	var parsed struct {
		Queries []any `json:"queries"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("query planner returned malformed JSON: %w", err)
	}

	var queries []string
	for _, entry := range parsed.Queries {
		q, ok := entry.(string)
		if !ok || strings.TrimSpace(q) == "" {
			continue
		}
		queries = append(queries, q)
		if len(queries) == maxQueries {
			break
		}
	}

	return queries, nil
}
