package formatter

import (
	"strings"
	"testing"

	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/types"
)

func quarterly(entity string, dates ...string) []types.ResultRecord {
	records := make([]types.ResultRecord, 0, len(dates))
	for _, d := range dates {
		records = append(records, rec(entity, "10-Q", d, ""))
	}
	return records
}

func TestPatternAnalysisConsistentCadence(t *testing.T) {
	f := New()
	var records []types.ResultRecord
	records = append(records, quarterly("AAPL", "2023-01-28", "2023-04-29", "2023-07-29", "2023-10-28")...)
	records = append(records, quarterly("MSFT", "2023-01-24", "2023-04-25", "2023-07-25", "2023-10-24")...)

	got := f.Format(types.IntentPatternAnalysis, records, nil)

	if !strings.Contains(got.Text, "No irregularities found") {
		t.Errorf("regular cadence should report no findings, got %q", got.Text)
	}
}

func TestPatternAnalysisWideGaps(t *testing.T) {
	f := New()
	var records []types.ResultRecord
	// Quarterly cadence for three entities, yearly gaps for the outlier.
	records = append(records, quarterly("AAPL", "2023-01-28", "2023-04-29", "2023-07-29", "2023-10-28")...)
	records = append(records, quarterly("MSFT", "2023-01-24", "2023-04-25", "2023-07-25", "2023-10-24")...)
	records = append(records, quarterly("NVDA", "2023-02-22", "2023-05-24", "2023-08-23", "2023-11-21")...)
	records = append(records, quarterly("TSLA", "2021-02-08", "2022-02-07", "2023-01-31", "2024-01-29")...)

	got := f.Format(types.IntentPatternAnalysis, records, nil)

	if !strings.Contains(got.Text, "Irregularities detected") {
		t.Fatalf("expected findings, got %q", got.Text)
	}
	if !strings.Contains(got.Text, "TSLA") {
		t.Errorf("expected TSLA flagged, got %q", got.Text)
	}
	if strings.Contains(got.Text, "AAPL:") {
		t.Errorf("AAPL cadence is normal and must not be flagged, got %q", got.Text)
	}
}

func TestPatternAnalysisFactorTunable(t *testing.T) {
	f := New()
	f.AnomalyDeviationFactor = 100 // effectively disables gap findings

	var records []types.ResultRecord
	records = append(records, quarterly("AAPL", "2023-01-28", "2023-04-29", "2023-07-29", "2023-10-28")...)
	records = append(records, quarterly("TSLA", "2021-02-08", "2022-02-07", "2023-01-31", "2024-01-29")...)

	got := f.Format(types.IntentPatternAnalysis, records, nil)
	if !strings.Contains(got.Text, "No irregularities found") {
		t.Errorf("factor 100 should suppress findings, got %q", got.Text)
	}
}

func TestMedianGapDays(t *testing.T) {
	records := quarterly("AAPL", "2023-01-01", "2023-01-31", "2023-03-02")
	got := medianGapDays(chronological(records))
	if got != 30 {
		t.Errorf("medianGapDays = %v, want 30", got)
	}

	if medianGapDays(quarterly("AAPL", "2023-01-01")) != 0 {
		t.Error("single record has no gaps")
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		values []float64
		want   float64
	}{
		{nil, 0},
		{[]float64{5}, 5},
		{[]float64{1, 3}, 2},
		{[]float64{1, 2, 9}, 2},
	}
	for _, tt := range tests {
		if got := median(tt.values); got != tt.want {
			t.Errorf("median(%v) = %v, want %v", tt.values, got, tt.want)
		}
	}
}
