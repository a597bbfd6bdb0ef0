package extractor

import (
	"context"
	"errors"
	"testing"

	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/types"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/vocab"
)

// mockClient returns canned responses for testing
type mockClient struct {
	response string
	err      error
	calls    int
}

func (m *mockClient) Chat(ctx context.Context, messages []types.Message) (*types.Response, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &types.Response{Content: m.response}, nil
}

func (m *mockClient) Close() error { return nil }

func TestLLMExtractorParsesModelOutput(t *testing.T) {
	client := &mockClient{response: `{
		"constraints": [
			{"kind": "date_range", "start": "2022-01-01", "end": "2022-06-30", "surface": "between 2022-01-01 and 2022-06-30"}
		],
		"entities": [
			{"ticker": "AAPL", "surface": "Apple"}
		],
		"fact_types": ["10-Q"]
	}`}

	e := NewLLMExtractor(client, vocab.Default(), nil)
	got := e.Extract(context.Background(), "What did Apple file between 2022-01-01 and 2022-06-30?")

	if got.Degraded {
		t.Error("expected non-degraded extraction")
	}
	if len(got.Constraints) != 1 || got.Constraints[0].Kind != types.DateRangeKind {
		t.Fatalf("expected one date_range constraint, got %+v", got.Constraints)
	}
	if len(got.Entities) != 1 || got.Entities[0].Ticker != "AAPL" {
		t.Errorf("expected AAPL, got %+v", got.Entities)
	}
	if len(got.FactTypes) != 1 || got.FactTypes[0] != "10-Q" {
		t.Errorf("expected [10-Q], got %v", got.FactTypes)
	}
}

func TestLLMExtractorFallsBackOnError(t *testing.T) {
	client := &mockClient{err: errors.New("connection refused")}

	e := NewLLMExtractor(client, vocab.Default(), nil)
	got := e.Extract(context.Background(), "What did Apple file in 2023?")

	if !got.Degraded {
		t.Error("expected degraded extraction after model failure")
	}
	// The deterministic grammar still resolves the question.
	if len(got.Constraints) != 1 || got.Constraints[0].Kind != types.DateRangeKind {
		t.Errorf("expected fallback date_range for bare year, got %+v", got.Constraints)
	}
	if len(got.Entities) != 1 || got.Entities[0].Ticker != "AAPL" {
		t.Errorf("expected AAPL from fallback, got %+v", got.Entities)
	}
}

func TestLLMExtractorFallsBackOnGarbage(t *testing.T) {
	client := &mockClient{response: "I could not determine any constraints, sorry!"}

	e := NewLLMExtractor(client, vocab.Default(), nil)
	got := e.Extract(context.Background(), "Show Tesla's first 10-K")

	if !got.Degraded {
		t.Error("expected degraded extraction for unparseable output")
	}
	if len(got.Constraints) != 1 || got.Constraints[0].Kind != types.OrdinalKind {
		t.Errorf("expected fallback ordinal, got %+v", got.Constraints)
	}
}

func TestLLMExtractorDropsUnknownVocabulary(t *testing.T) {
	client := &mockClient{response: `{
		"constraints": [],
		"entities": [
			{"ticker": "AAPL", "surface": "Apple"},
			{"ticker": "ZZZZ", "surface": "Zeta Corp"}
		],
		"fact_types": ["10-K", "99-Z"]
	}`}

	e := NewLLMExtractor(client, vocab.Default(), nil)
	got := e.Extract(context.Background(), "Compare Apple and Zeta Corp 10-K filings")

	if len(got.Entities) != 1 || got.Entities[0].Ticker != "AAPL" {
		t.Errorf("expected unknown ticker dropped, got %+v", got.Entities)
	}
	if len(got.FactTypes) != 1 || got.FactTypes[0] != "10-K" {
		t.Errorf("expected unknown fact type dropped, got %v", got.FactTypes)
	}
}

func TestLLMExtractorDropsInvalidDates(t *testing.T) {
	client := &mockClient{response: `{
		"constraints": [
			{"kind": "date_range", "start": "2022-06-30", "end": "2022-01-01"},
			{"kind": "exact_date", "date": "not-a-date"},
			{"kind": "exact_date", "date": "2024-03-15"}
		],
		"entities": [],
		"fact_types": []
	}`}

	e := NewLLMExtractor(client, vocab.Default(), nil)
	got := e.Extract(context.Background(), "anything")

	if len(got.Constraints) != 1 {
		t.Fatalf("expected inverted range and bad date dropped, got %+v", got.Constraints)
	}
	if got.Constraints[0].Kind != types.ExactDateKind {
		t.Errorf("kind = %s, want exact_date", got.Constraints[0].Kind)
	}
}

func TestLLMExtractorNilClientUsesRules(t *testing.T) {
	e := NewLLMExtractor(nil, vocab.Default(), nil)
	got := e.Extract(context.Background(), "What did Apple file in 2023?")

	if got.Degraded {
		t.Error("rule-only extraction is the configured path, not a degradation")
	}
	if len(got.Constraints) != 1 {
		t.Errorf("expected one constraint, got %+v", got.Constraints)
	}
}
