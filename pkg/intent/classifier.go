// Package intent classifies a question into the answer shape it expects.
package intent

import (
	"strings"

	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/extractor"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/types"
)

// Cue word lists. Matching is case-insensitive substring over the question.
var (
	comparisonCues = []string{"compare", "comparison", "versus", " vs ", " vs.", "side by side"}
	aggregationCues = []string{"how many", "count", "number of", "total number"}
	patternCues     = []string{"irregular", "pattern", "anomal", "unusual", "trend", "deviat"}
	timelineCues    = []string{"timeline", "history", "all events", "chronolog", "all filings", "every filing", "filing dates", "over time"}
)

// Classify determines the QueryIntent for a question. The predicates are
// evaluated as an ordered list, first match wins, so exactly one intent
// results. Comparison and aggregation are checked before timeline because
// a comparison question may also contain chronological language ("compare
// filing history of A and B") and must not degrade to a plain timeline.
// SingleFact is the explicit default when no stronger signal is found.
func Classify(question string, extraction *extractor.Extraction) types.QueryIntent {
	q := strings.ToLower(question)

	if len(distinctEntities(extraction)) >= 2 && (hasAny(q, comparisonCues) || betweenEntities(q, extraction)) {
		return types.IntentComparison
	}
	if hasAny(q, aggregationCues) {
		return types.IntentAggregation
	}
	if hasAny(q, patternCues) {
		return types.IntentPatternAnalysis
	}
	if hasAny(q, timelineCues) {
		return types.IntentTimeline
	}
	return types.IntentSingleFact
}

// RequiredFields returns the minimum return-field set a validated query
// must declare for the intent.
func RequiredFields(intent types.QueryIntent) []string {
	switch intent {
	case types.IntentAggregation:
		return []string{"entity", "count"}
	case types.IntentComparison:
		return []string{"entity", "date"}
	case types.IntentPatternAnalysis:
		return []string{"entity", "date"}
	case types.IntentTimeline:
		return []string{"entity", "fact_type", "date"}
	default:
		return []string{"entity", "fact_type", "date"}
	}
}

func distinctEntities(extraction *extractor.Extraction) []string {
	if extraction == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, e := range extraction.Entities {
		if _, dup := seen[e.Ticker]; dup {
			continue
		}
		seen[e.Ticker] = struct{}{}
		out = append(out, e.Ticker)
	}
	return out
}

// betweenEntities reports whether the question uses "between X and Y" with
// an entity immediately after the "between", which is a comparison cue;
// "between 2022-01-01 and 2022-06-30" is a date range and must not match.
func betweenEntities(q string, extraction *extractor.Extraction) bool {
	idx := strings.Index(q, "between ")
	if idx < 0 {
		return false
	}
	rest := q[idx+len("between "):]
	andIdx := strings.Index(rest, " and ")
	if andIdx < 0 {
		return false
	}
	left := rest[:andIdx]
	for _, e := range extraction.Entities {
		if strings.Contains(left, strings.ToLower(e.Ticker)) {
			return true
		}
		// Company names match on their leading word ("apple" for
		// "Apple Inc.") so possessives and suffixes don't block the cue.
		for _, word := range strings.Fields(strings.ToLower(e.Name)) {
			if len(word) >= 3 && strings.Contains(left, strings.TrimRight(word, ".,")) {
				return true
			}
		}
	}
	return false
}

func hasAny(q string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(q, cue) {
			return true
		}
	}
	return false
}
