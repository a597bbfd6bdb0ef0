package extractor

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/types"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/vocab"
)

// Deterministic temporal grammar. Each pattern maps a phrase shape to one
// constraint kind; the scan is total and terminates with a possibly-empty
// result, which is why this path can serve as the contractual fallback.
var (
	rangeRe     = regexp.MustCompile(`(?i)\b(?:between|from)\s+(\S+(?:\s+\d{1,2},?\s+\d{4})?)\s+(?:and|to|until)\s+(\S+(?:\s+\d{1,2},?\s+\d{4})?)`)
	quarterRe   = regexp.MustCompile(`(?i)\bq([1-4])\s+(\d{4})\b`)
	yearRe      = regexp.MustCompile(`(?i)\b(?:in|during|for|of)\s+(\d{4})\b`)
	isoDateRe   = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	relativeRe  = regexp.MustCompile(`(?i)\b(?:last|past|previous)\s+(\d+)?\s*(day|week|month|quarter|year)s?\b`)
	firstRe     = regexp.MustCompile(`(?i)\b(first|earliest|initial)\b`)
	latestRe    = regexp.MustCompile(`(?i)\b(most recent|latest|newest|last filing|last \d{2,}-\w+)\b`)
	sequenceRe  = regexp.MustCompile(`(?i)\b(before|after)\s+(?:the\s+)?([a-z][a-z0-9 \-]{2,40}?)(?:[,.?]|$)`)
	dateLayouts = []string{"2006-01-02", "January 2, 2006", "January 2 2006", "Jan 2, 2006", "Jan 2 2006", "01/02/2006", "2006"}
)

// RuleExtractor is the deterministic phrase-to-kind extractor. It scans the
// lower-cased question against a fixed grammar and resolves entities by
// exact and fuzzy match against the vocabulary table.
type RuleExtractor struct {
	vocab *vocab.Table
}

// NewRuleExtractor creates a deterministic extractor over table.
func NewRuleExtractor(table *vocab.Table) *RuleExtractor {
	return &RuleExtractor{vocab: table}
}

// Extract implements Extractor. It always terminates with a result.
func (r *RuleExtractor) Extract(_ context.Context, question string) *Extraction {
	extraction := &Extraction{
		Constraints: r.constraints(question),
	}

	for _, e := range r.vocab.FindEntities(question) {
		extraction.Entities = append(extraction.Entities, types.EntityReference{
			Ticker:  e.Ticker,
			Name:    e.Name,
			Surface: e.Name,
		})
	}
	extraction.FactTypes = r.vocab.FindFactTypes(question)

	return extraction
}

func (r *RuleExtractor) constraints(question string) []types.TemporalConstraint {
	var out []types.TemporalConstraint
	consumed := "" // surfaces already claimed by a stronger pattern

	// Two-sided ranges bind tightest: "between X and Y", "from X to Y".
	if m := rangeRe.FindStringSubmatch(question); m != nil {
		start, okS := parseDate(m[1])
		end, okE := parseDate(m[2])
		if okS && okE && !end.Before(start) {
			out = append(out, types.TemporalConstraint{
				Kind:    types.DateRangeKind,
				Start:   start,
				End:     endOfImplicitPeriod(m[2], end),
				Surface: m[0],
			})
			consumed = m[0]
		}
	}

	// Fiscal quarter: "Q1 2024".
	if m := quarterRe.FindStringSubmatch(question); m != nil && !strings.Contains(consumed, m[0]) {
		q, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		start := time.Date(year, time.Month((q-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
		out = append(out, types.TemporalConstraint{
			Kind:    types.DateRangeKind,
			Start:   start,
			End:     start.AddDate(0, 3, -1),
			Surface: m[0],
		})
		consumed += " " + m[0]
	}

	// Bare year: "in 2024", "for 2024".
	if m := yearRe.FindStringSubmatch(question); m != nil && !strings.Contains(consumed, m[1]) {
		year, _ := strconv.Atoi(m[1])
		out = append(out, types.TemporalConstraint{
			Kind:    types.DateRangeKind,
			Start:   time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC),
			End:     time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC),
			Surface: m[0],
		})
		consumed += " " + m[0]
	}

	// Relative offsets: "last month", "past 6 months".
	if m := relativeRe.FindStringSubmatch(question); m != nil {
		amount := 1
		if m[1] != "" {
			amount, _ = strconv.Atoi(m[1])
		}
		out = append(out, types.TemporalConstraint{
			Kind:    types.RelativeOffsetKind,
			Amount:  amount,
			Unit:    strings.ToLower(m[2]),
			Surface: m[0],
		})
	}

	// Ordinals. "latest" patterns are checked before "first" so "the last
	// 10-K filed first" stays deterministic, and the relative-offset match
	// above already claimed phrases like "last month".
	if m := latestRe.FindStringSubmatch(question); m != nil {
		out = append(out, types.TemporalConstraint{
			Kind:     types.OrdinalKind,
			Position: types.OrdinalLatest,
			Surface:  m[0],
		})
	} else if m := firstRe.FindStringSubmatch(question); m != nil {
		out = append(out, types.TemporalConstraint{
			Kind:     types.OrdinalKind,
			Position: types.OrdinalFirst,
			Surface:  m[0],
		})
	}

	// Event sequences: "after the acquisition", "before the merger". Skip
	// matches whose anchor is just a date already captured above.
	if m := sequenceRe.FindStringSubmatch(question); m != nil {
		if _, isDate := parseDate(strings.TrimSpace(m[2])); !isDate {
			out = append(out, types.TemporalConstraint{
				Kind:      types.EventSequenceKind,
				Direction: strings.ToLower(m[1]),
				Anchor:    strings.TrimSpace(m[2]),
				Surface:   m[0],
			})
		}
	}

	// A lone explicit date with no range around it is an exact-date
	// constraint.
	if len(out) == 0 {
		if m := isoDateRe.FindStringSubmatch(question); m != nil {
			if d, ok := parseDate(m[1]); ok {
				out = append(out, types.TemporalConstraint{
					Kind:    types.ExactDateKind,
					Date:    d,
					Surface: m[1],
				})
			}
		}
	}

	return out
}

// parseDate tries the supported date layouts, trimming trailing punctuation.
func parseDate(s string) (time.Time, bool) {
	s = strings.Trim(strings.TrimSpace(s), ",.?")
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// endOfImplicitPeriod widens a bare-year range bound to the end of that
// year, so "from 2022 to 2024" includes all of 2024.
func endOfImplicitPeriod(raw string, parsed time.Time) time.Time {
	raw = strings.Trim(strings.TrimSpace(raw), ",.?")
	if len(raw) == 4 {
		if _, err := strconv.Atoi(raw); err == nil {
			return time.Date(parsed.Year(), 12, 31, 0, 0, 0, 0, time.UTC)
		}
	}
	return parsed
}
