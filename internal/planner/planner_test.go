package planner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"giftscout/internal/core"
)

type fakeCompleter struct {
	response string
	err      error
	lastUser string
}

func (f *fakeCompleter) CompleteJSON(ctx context.Context, system, user string) (string, error) {
	f.lastUser = user
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestPlanQueriesParsesQueries(t *testing.T) {
	completer := &fakeCompleter{response: `{"queries": ["gift ideas for potters", "site:etsy.com pottery gifts"]}`}

	queries, err := PlanQueries(context.Background(), completer, core.GiftProfile{Interests: "pottery"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(queries) != 2 {
		t.Fatalf("Expected 2 queries, got %d", len(queries))
	}
	if queries[0] != "gift ideas for potters" {
		t.Errorf("Unexpected first query: %q", queries[0])
	}
}

func TestPlanQueriesDropsNonStringAndBlankEntries(t *testing.T) {
	completer := &fakeCompleter{response: `{"queries": ["valid", 42, "", "   ", null, "also valid"]}`}

	queries, err := PlanQueries(context.Background(), completer, core.GiftProfile{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(queries) != 2 {
		t.Errorf("Expected 2 queries after filtering, got %v", queries)
	}
}

func TestPlanQueriesTruncatesToSix(t *testing.T) {
	completer := &fakeCompleter{response: `{"queries": ["a", "b", "c", "d", "e", "f", "g", "h"]}`}

	queries, err := PlanQueries(context.Background(), completer, core.GiftProfile{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(queries) != 6 {
		t.Errorf("Expected 6 queries, got %d", len(queries))
	}
}

func TestPlanQueriesMalformedJSONIsHardFailure(t *testing.T) {
	completer := &fakeCompleter{response: `["not", "an", "object"`}

	_, err := PlanQueries(context.Background(), completer, core.GiftProfile{})
	if err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

func TestPlanQueriesPropagatesCompleterError(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("model unreachable")}

	_, err := PlanQueries(context.Background(), completer, core.GiftProfile{})
	if err == nil {
		t.Error("Expected error from failing completer")
	}
}

func TestPlanQueriesSerializesPresentProfileFieldsOnly(t *testing.T) {
	completer := &fakeCompleter{response: `{"queries": ["q"]}`}

	_, err := PlanQueries(context.Background(), completer, core.GiftProfile{
		Recipient: "my sister",
		Interests: "pottery",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(completer.lastUser, "recipient: my sister") {
		t.Errorf("Expected recipient line in prompt, got %q", completer.lastUser)
	}
	if strings.Contains(completer.lastUser, "occasion:") {
		t.Errorf("Did not expect absent occasion field in prompt, got %q", completer.lastUser)
	}
}
