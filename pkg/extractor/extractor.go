package extractor

import (
	"context"
	"log/slog"
	"time"

	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/nlp"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/prompts"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/types"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/vocab"
)

// Extraction is the structured reading of one question. An empty constraint
// set is a valid result; downstream stages handle it.
type Extraction struct {
	Constraints []types.TemporalConstraint
	Entities    []types.EntityReference
	FactTypes   []string

	// Degraded is set when the LLM path failed and the deterministic
	// fallback produced this result.
	Degraded bool
}

// Extractor converts a question into temporal constraints and entities.
type Extractor interface {
	Extract(ctx context.Context, question string) *Extraction
}

// LLMExtractor asks a language model for the structured reading and falls
// back to the rule extractor on any failure: call error, timeout, or
// unparseable output.
type LLMExtractor struct {
	client   nlp.Client
	fallback *RuleExtractor
	vocab    *vocab.Table
	logger   *slog.Logger
	now      func() time.Time
}

// NewLLMExtractor creates an extractor backed by client with the
// deterministic rule extractor as fallback.
func NewLLMExtractor(client nlp.Client, table *vocab.Table, logger *slog.Logger) *LLMExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LLMExtractor{
		client:   client,
		fallback: NewRuleExtractor(table),
		vocab:    table,
		logger:   logger,
		now:      time.Now,
	}
}

// Extract implements Extractor. It never returns an error; the worst case
// is a degraded deterministic extraction.
func (e *LLMExtractor) Extract(ctx context.Context, question string) *Extraction {
	if e.client == nil {
		return e.fallback.Extract(ctx, question)
	}

	messages := prompts.ExtractConstraints(question, tickers(e.vocab), e.vocab.FactTypes(), e.now())

	resp, err := e.client.Chat(ctx, messages)
	if err != nil {
		e.logger.Warn("constraint extraction degraded to rule extractor", "error", err)
		return degraded(e.fallback.Extract(ctx, question))
	}

	var out prompts.ExtractionOutput
	if err := nlp.UnmarshalLLMJSON(resp.Content, &out); err != nil {
		e.logger.Warn("constraint extraction returned unparseable output", "error", err)
		return degraded(e.fallback.Extract(ctx, question))
	}

	extraction, err := e.convert(&out)
	if err != nil {
		e.logger.Warn("constraint extraction returned invalid fields", "error", err)
		return degraded(e.fallback.Extract(ctx, question))
	}
	return extraction
}

// convert maps the model's JSON into domain constraints, dropping entries
// that reference unknown vocabulary or unparseable dates. A fully empty
// model result is still valid.
func (e *LLMExtractor) convert(out *prompts.ExtractionOutput) (*Extraction, error) {
	extraction := &Extraction{}

	for _, c := range out.Constraints {
		tc, ok := convertConstraint(c)
		if !ok {
			continue
		}
		extraction.Constraints = append(extraction.Constraints, tc)
	}

	for _, ent := range out.Entities {
		known, ok := e.vocab.LookupTicker(ent.Ticker)
		if !ok {
			continue
		}
		extraction.Entities = append(extraction.Entities, types.EntityReference{
			Ticker:  known.Ticker,
			Name:    known.Name,
			Surface: ent.Surface,
		})
	}

	for _, ft := range out.FactTypes {
		if e.vocab.KnownFactType(ft) {
			extraction.FactTypes = append(extraction.FactTypes, ft)
		}
	}

	return extraction, nil
}

func convertConstraint(c prompts.ExtractedConstraint) (types.TemporalConstraint, bool) {
	switch types.ConstraintKind(c.Kind) {
	case types.ExactDateKind:
		d, err := time.Parse("2006-01-02", c.Date)
		if err != nil {
			return types.TemporalConstraint{}, false
		}
		return types.TemporalConstraint{Kind: types.ExactDateKind, Date: d, Surface: c.Surface}, true
	case types.DateRangeKind:
		start, err := time.Parse("2006-01-02", c.Start)
		if err != nil {
			return types.TemporalConstraint{}, false
		}
		end, err := time.Parse("2006-01-02", c.End)
		if err != nil || end.Before(start) {
			return types.TemporalConstraint{}, false
		}
		return types.TemporalConstraint{Kind: types.DateRangeKind, Start: start, End: end, Surface: c.Surface}, true
	case types.RelativeOffsetKind:
		if c.Amount <= 0 || !validUnit(c.Unit) {
			return types.TemporalConstraint{}, false
		}
		return types.TemporalConstraint{Kind: types.RelativeOffsetKind, Amount: c.Amount, Unit: c.Unit, Surface: c.Surface}, true
	case types.OrdinalKind:
		pos := types.OrdinalPosition(c.Position)
		if pos != types.OrdinalFirst && pos != types.OrdinalLatest {
			return types.TemporalConstraint{}, false
		}
		return types.TemporalConstraint{Kind: types.OrdinalKind, Position: pos, Surface: c.Surface}, true
	case types.EventSequenceKind:
		if c.Anchor == "" || (c.Direction != "before" && c.Direction != "after") {
			return types.TemporalConstraint{}, false
		}
		return types.TemporalConstraint{Kind: types.EventSequenceKind, Anchor: c.Anchor, Direction: c.Direction, Surface: c.Surface}, true
	default:
		return types.TemporalConstraint{}, false
	}
}

func validUnit(unit string) bool {
	switch unit {
	case "day", "week", "month", "quarter", "year":
		return true
	}
	return false
}

func degraded(e *Extraction) *Extraction {
	e.Degraded = true
	return e
}

func tickers(t *vocab.Table) []string {
	ents := t.Entities()
	out := make([]string, len(ents))
	for i, e := range ents {
		out[i] = e.Ticker
	}
	return out
}
