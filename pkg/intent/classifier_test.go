package intent

import (
	"context"
	"testing"

	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/extractor"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/types"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/vocab"
)

func extract(t *testing.T, question string) *extractor.Extraction {
	t.Helper()
	return extractor.NewRuleExtractor(vocab.Default()).Extract(context.Background(), question)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     types.QueryIntent
	}{
		{
			name:     "explicit comparison",
			question: "Compare the filing patterns of Apple and Microsoft",
			want:     types.IntentComparison,
		},
		{
			name:     "versus comparison",
			question: "Apple vs Microsoft 10-K filings",
			want:     types.IntentComparison,
		},
		{
			name:     "between entities is comparison",
			question: "What's the difference between Apple and Microsoft filings?",
			want:     types.IntentComparison,
		},
		{
			name:     "between dates is not comparison",
			question: "What did Apple file between 2022-01-01 and 2022-06-30?",
			want:     types.IntentSingleFact,
		},
		{
			name:     "aggregation how many",
			question: "How many 8-K filings did Tesla make in 2023?",
			want:     types.IntentAggregation,
		},
		{
			name:     "aggregation beats comparison without two entities",
			question: "How many filings did Apple make between 2022 and 2023?",
			want:     types.IntentAggregation,
		},
		{
			name:     "comparison beats aggregation with two entities",
			question: "Compare how many filings Apple and Microsoft made",
			want:     types.IntentComparison,
		},
		{
			name:     "pattern analysis",
			question: "Are there any irregular filing patterns for Netflix?",
			want:     types.IntentPatternAnalysis,
		},
		{
			name:     "anomaly wording",
			question: "Detect anomalies in Intel's filing dates", // "anomal" cue wins over "filing dates"
			want:     types.IntentPatternAnalysis,
		},
		{
			name:     "timeline",
			question: "Show me the timeline of Amazon filings",
			want:     types.IntentTimeline,
		},
		{
			name:     "history is timeline",
			question: "Show the filing history of Oracle",
			want:     types.IntentTimeline,
		},
		{
			name:     "comparison beats timeline",
			question: "Compare the filing history of Apple and Microsoft",
			want:     types.IntentComparison,
		},
		{
			name:     "default single fact",
			question: "When did Apple file its latest 10-Q?",
			want:     types.IntentSingleFact,
		},
		{
			name:     "empty extraction defaults",
			question: "What happened?",
			want:     types.IntentSingleFact,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.question, extract(t, tt.question))
			if got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.question, got, tt.want)
			}
		})
	}
}

func TestRequiredFields(t *testing.T) {
	tests := []struct {
		intent types.QueryIntent
		want   []string
	}{
		{types.IntentSingleFact, []string{"entity", "fact_type", "date"}},
		{types.IntentTimeline, []string{"entity", "fact_type", "date"}},
		{types.IntentComparison, []string{"entity", "date"}},
		{types.IntentAggregation, []string{"entity", "count"}},
		{types.IntentPatternAnalysis, []string{"entity", "date"}},
	}

	for _, tt := range tests {
		got := RequiredFields(tt.intent)
		if len(got) != len(tt.want) {
			t.Errorf("RequiredFields(%s) = %v, want %v", tt.intent, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("RequiredFields(%s) = %v, want %v", tt.intent, got, tt.want)
				break
			}
		}
	}
}
