package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/extractor"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/types"
)

func rec(entity, factType, day, desc string) types.ResultRecord {
	d, _ := time.Parse("2006-01-02", day)
	return types.ResultRecord{Entity: entity, FactType: factType, Date: d, Description: desc}
}

func TestFormatEmptyIsExplicit(t *testing.T) {
	f := New()

	intents := []types.QueryIntent{
		types.IntentSingleFact,
		types.IntentTimeline,
		types.IntentComparison,
		types.IntentAggregation,
		types.IntentPatternAnalysis,
	}

	for _, intent := range intents {
		t.Run(string(intent), func(t *testing.T) {
			got := f.Format(intent, nil, nil)
			if !got.Empty {
				t.Error("expected Empty to be set")
			}
			if got.Text == "" {
				t.Error("empty result must render an explicit no-data answer, not an empty string")
			}
		})
	}
}

func TestFormatIsIdempotent(t *testing.T) {
	f := New()
	records := []types.ResultRecord{
		rec("AAPL", "10-Q", "2024-05-03", "Quarterly report"),
		rec("AAPL", "10-Q", "2024-02-02", "Quarterly report"),
	}

	first := f.Format(types.IntentTimeline, records, nil)
	second := f.Format(types.IntentTimeline, records, nil)
	if first.Text != second.Text {
		t.Errorf("formatting is not idempotent:\n%q\n%q", first.Text, second.Text)
	}
}

func TestTimelineChronological(t *testing.T) {
	f := New()
	records := []types.ResultRecord{
		rec("AAPL", "10-Q", "2024-05-03", "Q2"),
		rec("AAPL", "10-K", "2023-11-03", "Annual"),
		rec("AAPL", "10-Q", "2024-02-02", "Q1"),
	}

	got := f.Format(types.IntentTimeline, records, nil)

	lines := strings.Split(got.Text, "\n")
	if lines[0] != "Timeline:" {
		t.Fatalf("expected Timeline header, got %q", lines[0])
	}
	var prev time.Time
	for _, line := range lines[1:] {
		for _, r := range records {
			if strings.Contains(line, r.Date.Format("2006-01-02")) {
				if r.Date.Before(prev) {
					t.Errorf("timeline out of order at %q", line)
				}
				prev = r.Date
			}
		}
	}
	if !strings.HasPrefix(lines[1], "1. ") {
		t.Errorf("expected numbered entries, got %q", lines[1])
	}
}

func TestSingleFactDedupes(t *testing.T) {
	f := New()
	records := []types.ResultRecord{
		rec("AAPL", "10-Q", "2024-05-03", "Quarterly report"),
		rec("AAPL", "10-Q", "2024-05-03", "Quarterly report"),
	}

	got := f.Format(types.IntentSingleFact, records, nil)
	if strings.Count(got.Text, "2024-05-03") != 1 {
		t.Errorf("expected duplicate rows collapsed, got %q", got.Text)
	}
}

func TestComparisonGroupsInMentionOrder(t *testing.T) {
	f := New()
	records := []types.ResultRecord{
		rec("AAPL", "10-K", "2023-11-03", "Annual"),
		rec("MSFT", "10-K", "2023-07-27", "Annual"),
	}
	extraction := &extractor.Extraction{
		Entities: []types.EntityReference{
			{Ticker: "MSFT", Name: "Microsoft Corporation"},
			{Ticker: "AAPL", Name: "Apple Inc."},
		},
	}

	got := f.Format(types.IntentComparison, records, extraction)

	msftIdx := strings.Index(got.Text, "MSFT:")
	aaplIdx := strings.Index(got.Text, "AAPL:")
	if msftIdx < 0 || aaplIdx < 0 {
		t.Fatalf("expected one section per entity, got %q", got.Text)
	}
	if msftIdx > aaplIdx {
		t.Errorf("sections should follow question mention order, got %q", got.Text)
	}
}

func TestComparisonMarksMissingEntity(t *testing.T) {
	f := New()
	records := []types.ResultRecord{
		rec("AAPL", "10-K", "2023-11-03", "Annual"),
	}
	extraction := &extractor.Extraction{
		Entities: []types.EntityReference{
			{Ticker: "AAPL", Name: "Apple Inc."},
			{Ticker: "MSFT", Name: "Microsoft Corporation"},
		},
	}

	got := f.Format(types.IntentComparison, records, extraction)

	if !strings.Contains(got.Text, "MSFT:") {
		t.Fatalf("entity with no records still needs a section: %q", got.Text)
	}
	if !strings.Contains(got.Text, "no records found") {
		t.Errorf("missing data must be explicit, got %q", got.Text)
	}
}

func TestAggregationUsesCountField(t *testing.T) {
	f := New()
	records := []types.ResultRecord{
		{Entity: "AAPL", FactType: "10-Q", Fields: map[string]any{"count": int64(12)}},
		{Entity: "MSFT", FactType: "10-Q", Fields: map[string]any{"count": int64(9)}},
	}

	got := f.Format(types.IntentAggregation, records, nil)

	if !strings.Contains(got.Text, "12") || !strings.Contains(got.Text, "9") {
		t.Errorf("expected explicit counts rendered, got %q", got.Text)
	}
	if !strings.HasPrefix(got.Text, "Counts:") {
		t.Errorf("expected Counts header, got %q", got.Text)
	}
}

func TestAggregationTalliesRawRows(t *testing.T) {
	f := New()
	records := []types.ResultRecord{
		rec("AAPL", "8-K", "2024-01-10", ""),
		rec("AAPL", "8-K", "2024-02-11", ""),
		rec("AAPL", "8-K", "2024-03-12", ""),
	}

	got := f.Format(types.IntentAggregation, records, nil)
	if !strings.Contains(got.Text, "3") {
		t.Errorf("expected tally of 3, got %q", got.Text)
	}
}

func TestApplQuarterlyScenario(t *testing.T) {
	// Three quarterly filings in a half-year window: all dates render in
	// ascending order with no duplicates.
	f := New()
	records := []types.ResultRecord{
		rec("AAPL", "10-Q", "2022-04-29", "Q2 FY22"),
		rec("AAPL", "10-Q", "2022-01-28", "Q1 FY22"),
		rec("AAPL", "10-Q", "2022-04-29", "Q2 FY22"),
	}

	got := f.Format(types.IntentTimeline, records, nil)

	if strings.Count(got.Text, "2022-04-29") != 1 {
		t.Errorf("expected duplicates removed, got %q", got.Text)
	}
	first := strings.Index(got.Text, "2022-01-28")
	second := strings.Index(got.Text, "2022-04-29")
	if first < 0 || second < 0 || first > second {
		t.Errorf("expected ascending dates, got %q", got.Text)
	}
}
