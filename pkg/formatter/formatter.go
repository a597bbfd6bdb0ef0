// Package formatter renders graph store rows into the answer shape the
// classified intent requires. Formatting is pure: the same (intent,
// records, question) input always yields byte-identical output, and an
// empty record set always renders an explicit no-data answer rather than
// an empty string.
package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/extractor"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/types"
)

// Formatter renders result records per intent.
type Formatter struct {
	// AnomalyDeviationFactor is the multiple of the median inter-filing
	// gap beyond which an entity's spacing counts as irregular. Tunable;
	// 2.0 by default.
	AnomalyDeviationFactor float64
}

// New creates a formatter with the default anomaly threshold.
func New() *Formatter {
	return &Formatter{AnomalyDeviationFactor: 2.0}
}

// Format renders records for the intent. The question supplies entity
// mention order for comparison sections.
func (f *Formatter) Format(intent types.QueryIntent, records []types.ResultRecord, extraction *extractor.Extraction) *types.FormattedAnswer {
	answer := &types.FormattedAnswer{
		Intent: intent,
		Empty:  len(records) == 0,
	}

	switch intent {
	case types.IntentTimeline:
		answer.Text = f.timeline(records)
	case types.IntentComparison:
		answer.Text = f.comparison(records, extraction)
	case types.IntentAggregation:
		answer.Text = f.aggregation(records)
	case types.IntentPatternAnalysis:
		answer.Text = f.patternAnalysis(records)
	default:
		answer.Text = f.singleFact(records)
	}
	return answer
}

const noDataAnswer = "No data found for this question."

// singleFact renders the first record's fact, date, and description.
func (f *Formatter) singleFact(records []types.ResultRecord) string {
	if len(records) == 0 {
		return noDataAnswer
	}
	// Listing questions land here too; render every row, deduplicated.
	var b strings.Builder
	for i, rec := range dedupe(records) {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderRecord(rec))
	}
	return b.String()
}

// timeline sorts ascending by normalized date (ties keep store order) and
// renders a numbered chronological list.
func (f *Formatter) timeline(records []types.ResultRecord) string {
	if len(records) == 0 {
		return noDataAnswer
	}
	ordered := chronological(dedupe(records))
	var b strings.Builder
	b.WriteString("Timeline:\n")
	for i, rec := range ordered {
		fmt.Fprintf(&b, "%d. %s\n", i+1, renderRecord(rec))
	}
	return strings.TrimRight(b.String(), "\n")
}

// comparison groups records by entity, one section per entity in question
// mention order. Entities with zero records still get a section with an
// explicit marker so comparisons are never silently one-sided.
func (f *Formatter) comparison(records []types.ResultRecord, extraction *extractor.Extraction) string {
	groups := groupByEntity(records)

	order := mentionOrder(extraction, records)
	if len(order) == 0 {
		return noDataAnswer
	}

	var b strings.Builder
	for i, entity := range order {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%s:", entity)
		recs := groups[entity]
		if len(recs) == 0 {
			b.WriteString("\n  no records found")
			continue
		}
		for _, rec := range chronological(dedupe(recs)) {
			fmt.Fprintf(&b, "\n  - %s", renderRecord(rec))
		}
	}
	return b.String()
}

// aggregation reduces to counts per group and renders a small table.
func (f *Formatter) aggregation(records []types.ResultRecord) string {
	if len(records) == 0 {
		return noDataAnswer
	}

	type row struct {
		entity string
		count  int64
	}
	var rows []row
	counts := make(map[string]int64)
	var order []string

	for _, rec := range records {
		key := rec.Entity
		if rec.FactType != "" {
			key = rec.Entity + " " + rec.FactType
		}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		// Rows from aggregation queries carry an explicit count column;
		// raw rows are tallied one each.
		if c, ok := countField(rec); ok {
			counts[key] += c
		} else {
			counts[key]++
		}
	}

	for _, key := range order {
		rows = append(rows, row{entity: key, count: counts[key]})
	}

	var b strings.Builder
	b.WriteString("Counts:\n")
	width := 0
	for _, r := range rows {
		if len(r.entity) > width {
			width = len(r.entity)
		}
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "  %-*s  %d\n", width, r.entity, r.count)
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderRecord formats one row as "TICKER 10-Q 2024-05-03: description".
func renderRecord(rec types.ResultRecord) string {
	parts := make([]string, 0, 3)
	if rec.Entity != "" {
		parts = append(parts, rec.Entity)
	}
	if rec.FactType != "" {
		parts = append(parts, rec.FactType)
	}
	if !rec.Date.IsZero() {
		parts = append(parts, rec.Date.Format("2006-01-02"))
	}
	line := strings.Join(parts, " ")
	if rec.Description != "" {
		line += ": " + rec.Description
	}
	if line == "" {
		line = "(empty record)"
	}
	return line
}

// chronological sorts ascending by date with a stable sort, so ties keep
// the store's original order.
func chronological(records []types.ResultRecord) []types.ResultRecord {
	out := append([]types.ResultRecord(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// dedupe removes exact duplicate (entity, fact_type, date) rows, keeping
// first occurrence.
func dedupe(records []types.ResultRecord) []types.ResultRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]types.ResultRecord, 0, len(records))
	for _, rec := range records {
		key := rec.Entity + "\x00" + rec.FactType + "\x00" + rec.Date.Format("2006-01-02")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, rec)
	}
	return out
}

func groupByEntity(records []types.ResultRecord) map[string][]types.ResultRecord {
	groups := make(map[string][]types.ResultRecord)
	for _, rec := range records {
		groups[rec.Entity] = append(groups[rec.Entity], rec)
	}
	return groups
}

// mentionOrder returns the comparison group order: entities in the order
// they were first mentioned in the question, then any entities present in
// the data but absent from the question.
func mentionOrder(extraction *extractor.Extraction, records []types.ResultRecord) []string {
	var order []string
	seen := make(map[string]struct{})
	if extraction != nil {
		for _, e := range extraction.Entities {
			if _, dup := seen[e.Ticker]; dup {
				continue
			}
			seen[e.Ticker] = struct{}{}
			order = append(order, e.Ticker)
		}
	}
	for _, rec := range records {
		if rec.Entity == "" {
			continue
		}
		if _, dup := seen[rec.Entity]; dup {
			continue
		}
		seen[rec.Entity] = struct{}{}
		order = append(order, rec.Entity)
	}
	return order
}

func countField(rec types.ResultRecord) (int64, bool) {
	v, ok := rec.Fields["count"]
	if !ok {
		return 0, false
	}
	switch c := v.(type) {
	case int64:
		return c, true
	case int:
		return int64(c), true
	case float64:
		return int64(c), true
	}
	return 0, false
}
