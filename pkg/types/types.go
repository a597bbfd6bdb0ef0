package types

import (
	"errors"
	"time"
)

// ErrEmptyQuestion is returned for questions that are empty or whitespace.
var ErrEmptyQuestion = errors.New("question cannot be empty")

// ConstraintKind identifies the shape of a temporal constraint.
type ConstraintKind string

const (
	// ExactDateKind restricts results to a single calendar date.
	ExactDateKind ConstraintKind = "exact_date"
	// DateRangeKind restricts results to an inclusive date interval.
	DateRangeKind ConstraintKind = "date_range"
	// RelativeOffsetKind is an offset from the reference time ("last month").
	RelativeOffsetKind ConstraintKind = "relative_offset"
	// OrdinalKind selects by position in time ("first", "most recent").
	OrdinalKind ConstraintKind = "ordinal"
	// EventSequenceKind orders one event relative to another ("after the merger").
	EventSequenceKind ConstraintKind = "event_sequence"
)

// OrdinalPosition is the position selected by an ordinal constraint.
type OrdinalPosition string

const (
	// OrdinalFirst selects the earliest matching fact.
	OrdinalFirst OrdinalPosition = "first"
	// OrdinalLatest selects the most recent matching fact.
	OrdinalLatest OrdinalPosition = "latest"
)

// TemporalConstraint is a single time-related restriction extracted from a
// question. Exactly one kind applies per instance; only the fields for that
// kind are meaningful. Constraints are immutable once extracted.
type TemporalConstraint struct {
	Kind ConstraintKind `json:"kind"`

	// ExactDateKind
	Date time.Time `json:"date,omitempty"`

	// DateRangeKind (inclusive bounds)
	Start time.Time `json:"start,omitempty"`
	End   time.Time `json:"end,omitempty"`

	// RelativeOffsetKind
	Amount int    `json:"amount,omitempty"`
	Unit   string `json:"unit,omitempty"` // day, week, month, quarter, year

	// OrdinalKind
	Position OrdinalPosition `json:"position,omitempty"`

	// EventSequenceKind
	Anchor    string `json:"anchor,omitempty"`    // surface text of the anchoring event
	Direction string `json:"direction,omitempty"` // before, after

	// Surface is the raw question text the constraint was derived from.
	Surface string `json:"surface,omitempty"`
}

// EntityReference is a normalized entity identifier plus the raw surface
// text it was matched from. A question may carry several, e.g. comparisons.
type EntityReference struct {
	Ticker  string `json:"ticker"`
	Name    string `json:"name,omitempty"`
	Surface string `json:"surface,omitempty"`
}

// QueryIntent is the classified answer shape a question expects.
type QueryIntent string

const (
	// IntentSingleFact looks up one fact (the default intent).
	IntentSingleFact QueryIntent = "single_fact"
	// IntentTimeline renders a full chronological listing.
	IntentTimeline QueryIntent = "timeline"
	// IntentComparison renders side-by-side per-entity sections.
	IntentComparison QueryIntent = "comparison"
	// IntentAggregation reduces results to counts per group.
	IntentAggregation QueryIntent = "aggregation"
	// IntentPatternAnalysis surfaces irregular filing behavior.
	IntentPatternAnalysis QueryIntent = "pattern_analysis"
)

// QuerySource records which generation path produced a query.
type QuerySource string

const (
	// SourceLLM marks a model-generated query.
	SourceLLM QuerySource = "llm"
	// SourceTemplate marks a query built from the deterministic templates.
	SourceTemplate QuerySource = "template"
)

// GeneratedQuery is an executable graph query plus the structural metadata
// the validator enforces. After validation, Limit is always in [1, 50] and
// ReturnFields is a non-empty superset of the intent's minimum field set.
type GeneratedQuery struct {
	Text         string      `json:"text"`
	ReturnFields []string    `json:"return_fields"`
	Limit        int         `json:"limit"`
	Source       QuerySource `json:"source"`
	Intent       QueryIntent `json:"intent"`

	// Warnings carries non-fatal findings from validation, e.g. literals
	// outside the vocabulary table snapshot.
	Warnings []string `json:"warnings,omitempty"`
}

// ResultRecord is one row returned by the graph store. Dates are normalized
// to UTC before formatting. Ordering is not guaranteed by the store; the
// formatter imposes it when the intent requires chronology.
type ResultRecord struct {
	Entity      string         `json:"entity"`
	FactType    string         `json:"fact_type"`
	Date        time.Time      `json:"date"`
	Description string         `json:"description,omitempty"`
	Fields      map[string]any `json:"fields,omitempty"`
}

// FormattedAnswer is the final rendering of a question. Empty distinguishes
// "valid query, zero rows" from answers carrying data, so callers never
// conflate no-data with store failures.
type FormattedAnswer struct {
	Text     string      `json:"text"`
	Intent   QueryIntent `json:"intent"`
	Source   QuerySource `json:"source,omitempty"`
	Empty    bool        `json:"empty"`
	Degraded bool        `json:"degraded,omitempty"`
	Warnings []string    `json:"warnings,omitempty"`
}

// Message represents a single chat message exchanged with a language model.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Role is the role of a chat message author.
type Role string

// Response is a language model completion.
type Response struct {
	Content      string      `json:"content"`
	FinishReason string      `json:"finish_reason,omitempty"`
	Model        string      `json:"model,omitempty"`
	TokensUsed   *TokenUsage `json:"tokens_used,omitempty"`
}

// TokenUsage reports token accounting for a completion, when available.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ContextKey is the type for context values set by the server middleware.
type ContextKey string

const (
	// ContextKeyRequestID carries the per-request UUID.
	ContextKeyRequestID ContextKey = "request_id"
	// ContextKeyRequestSource identifies the inbound surface (cli, server).
	ContextKeyRequestSource ContextKey = "request_source"
)
