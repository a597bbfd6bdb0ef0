package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/types"
)

// patternAnalysis groups by entity and surfaces only entities whose filing
// cadence deviates from the rest: a median inter-filing gap more than
// AnomalyDeviationFactor times the cross-entity median (or under its
// inverse), or a record count similarly far from the median count. When no
// entity qualifies, that is stated explicitly rather than omitted.
func (f *Formatter) patternAnalysis(records []types.ResultRecord) string {
	if len(records) == 0 {
		return noDataAnswer
	}

	factor := f.AnomalyDeviationFactor
	if factor <= 1 {
		factor = 2.0
	}

	groups := groupByEntity(dedupe(records))
	entities := make([]string, 0, len(groups))
	for entity := range groups {
		entities = append(entities, entity)
	}
	sort.Strings(entities)

	gaps := make(map[string]float64, len(entities))
	counts := make(map[string]float64, len(entities))
	var allGaps, allCounts []float64
	for _, entity := range entities {
		recs := chronological(groups[entity])
		g := medianGapDays(recs)
		gaps[entity] = g
		counts[entity] = float64(len(recs))
		if g > 0 {
			allGaps = append(allGaps, g)
		}
		allCounts = append(allCounts, float64(len(recs)))
	}

	medGap := median(allGaps)
	medCount := median(allCounts)

	var findings []string
	for _, entity := range entities {
		switch {
		case medGap > 0 && gaps[entity] > medGap*factor:
			findings = append(findings, fmt.Sprintf("%s: filing gaps are unusually wide (median %.0f days vs. overall %.0f)", entity, gaps[entity], medGap))
		case medGap > 0 && gaps[entity] > 0 && gaps[entity]*factor < medGap:
			findings = append(findings, fmt.Sprintf("%s: filings are unusually frequent (median gap %.0f days vs. overall %.0f)", entity, gaps[entity], medGap))
		case medCount > 0 && counts[entity] > medCount*factor:
			findings = append(findings, fmt.Sprintf("%s: unusually many records (%.0f vs. median %.0f)", entity, counts[entity], medCount))
		case medCount > 0 && counts[entity]*factor < medCount:
			findings = append(findings, fmt.Sprintf("%s: unusually few records (%.0f vs. median %.0f)", entity, counts[entity], medCount))
		}
	}

	if len(findings) == 0 {
		return "No irregularities found: filing cadence is consistent across entities."
	}

	var b strings.Builder
	b.WriteString("Irregularities detected:\n")
	for _, finding := range findings {
		fmt.Fprintf(&b, "  - %s\n", finding)
	}
	return strings.TrimRight(b.String(), "\n")
}

// medianGapDays is the median spacing in days between consecutive dated
// records; zero when fewer than two dated records exist.
func medianGapDays(records []types.ResultRecord) float64 {
	var gaps []float64
	var prev time.Time
	for _, rec := range records {
		if rec.Date.IsZero() {
			continue
		}
		if !prev.IsZero() {
			gaps = append(gaps, rec.Date.Sub(prev).Hours()/24)
		}
		prev = rec.Date
	}
	return median(gaps)
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
