package generator

import (
	"fmt"
	"strings"

	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/extractor"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/types"
)

// Pre-written parameterized templates, one per intent, so the system can
// always produce a runnable query with the model fully unavailable. Total
// fallback coverage is a reliability property, not an afterthought.

const templateLimit = 30

// FromTemplate builds a query deterministically from the extraction. It is
// total: every intent has a template and missing entities or constraints
// simply widen the match.
func FromTemplate(queryIntent types.QueryIntent, extraction *extractor.Extraction) *types.GeneratedQuery {
	where, order, limit := buildFilters(queryIntent, extraction)

	var text string
	switch queryIntent {
	case types.IntentAggregation:
		text = fmt.Sprintf(`MATCH (c:Company)-[:FILED]->(f:Filing)%s
RETURN c.ticker AS entity, f.type AS fact_type, count(f) AS count
ORDER BY count DESC LIMIT %d`, where, limit)
	default:
		// SingleFact, Timeline, Comparison, and PatternAnalysis share the
		// row shape; ordering and limit differ per intent.
		text = fmt.Sprintf(`MATCH (c:Company)-[:FILED]->(f:Filing)%s
RETURN c.ticker AS entity, f.type AS fact_type, f.date AS date, f.description AS description
%s LIMIT %d`, where, order, limit)
	}

	return &types.GeneratedQuery{
		Text:         text,
		ReturnFields: templateFields(queryIntent),
		Limit:        limit,
		Source:       types.SourceTemplate,
		Intent:       queryIntent,
	}
}

func templateFields(queryIntent types.QueryIntent) []string {
	if queryIntent == types.IntentAggregation {
		return []string{"entity", "fact_type", "count"}
	}
	return []string{"entity", "fact_type", "date", "description"}
}

// buildFilters renders the WHERE clause from entities, fact types, and
// temporal constraints, plus the intent's ordering and limit.
func buildFilters(queryIntent types.QueryIntent, extraction *extractor.Extraction) (where, order string, limit int) {
	var conds []string

	if extraction != nil {
		if len(extraction.Entities) > 0 {
			tickers := make([]string, 0, len(extraction.Entities))
			for _, e := range extraction.Entities {
				tickers = append(tickers, fmt.Sprintf("'%s'", e.Ticker))
			}
			conds = append(conds, fmt.Sprintf("c.ticker IN [%s]", strings.Join(tickers, ", ")))
		}
		if len(extraction.FactTypes) > 0 {
			labels := make([]string, 0, len(extraction.FactTypes))
			for _, ft := range extraction.FactTypes {
				labels = append(labels, fmt.Sprintf("'%s'", ft))
			}
			conds = append(conds, fmt.Sprintf("f.type IN [%s]", strings.Join(labels, ", ")))
		}
		conds = append(conds, temporalConds(extraction.Constraints)...)
	}

	if len(conds) > 0 {
		where = "\nWHERE " + strings.Join(conds, " AND ")
	}

	limit = templateLimit
	switch queryIntent {
	case types.IntentSingleFact:
		order = "ORDER BY f.date DESC"
		if pos, ok := ordinalPosition(extraction); ok && pos == types.OrdinalFirst {
			order = "ORDER BY f.date ASC"
		}
		limit = singleFactLimit(extraction)
	case types.IntentTimeline:
		order = "ORDER BY f.date ASC"
	case types.IntentComparison, types.IntentPatternAnalysis:
		order = "ORDER BY c.ticker, f.date ASC"
		limit = 50
	case types.IntentAggregation:
		order = ""
	}
	return where, order, limit
}

// temporalConds maps constraints onto date predicates. EventSequence
// anchors cannot be resolved without a second lookup, so the template path
// leaves them unfiltered rather than guessing.
func temporalConds(constraints []types.TemporalConstraint) []string {
	var conds []string
	for _, c := range constraints {
		switch c.Kind {
		case types.ExactDateKind:
			conds = append(conds, fmt.Sprintf("f.date = date('%s')", c.Date.Format("2006-01-02")))
		case types.DateRangeKind:
			conds = append(conds,
				fmt.Sprintf("f.date >= date('%s')", c.Start.Format("2006-01-02")),
				fmt.Sprintf("f.date <= date('%s')", c.End.Format("2006-01-02")))
		case types.RelativeOffsetKind:
			conds = append(conds, fmt.Sprintf("f.date >= date() - duration('%s')", offsetDuration(c)))
		}
	}
	return conds
}

// offsetDuration renders a relative offset as an ISO 8601 duration.
func offsetDuration(c types.TemporalConstraint) string {
	switch c.Unit {
	case "day":
		return fmt.Sprintf("P%dD", c.Amount)
	case "week":
		return fmt.Sprintf("P%dW", c.Amount)
	case "quarter":
		return fmt.Sprintf("P%dM", c.Amount*3)
	case "year":
		return fmt.Sprintf("P%dY", c.Amount)
	default:
		return fmt.Sprintf("P%dM", c.Amount)
	}
}

func ordinalPosition(extraction *extractor.Extraction) (types.OrdinalPosition, bool) {
	if extraction == nil {
		return "", false
	}
	for _, c := range extraction.Constraints {
		if c.Kind == types.OrdinalKind {
			return c.Position, true
		}
	}
	return "", false
}

// singleFactLimit keeps ordinal lookups to one row but leaves room for
// listing questions classified as single facts ("Apple's 10-Q dates").
func singleFactLimit(extraction *extractor.Extraction) int {
	if _, ok := ordinalPosition(extraction); ok {
		return 1
	}
	return templateLimit
}
