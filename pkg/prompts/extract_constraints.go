package prompts

import (
	"fmt"
	"strings"
	"time"

	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/nlp"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/types"
)

// ExtractedConstraint mirrors one temporal constraint in the model's JSON
// output. Dates are ISO 8601 (YYYY-MM-DD).
type ExtractedConstraint struct {
	Kind      string `json:"kind"` // exact_date, date_range, relative_offset, ordinal, event_sequence
	Date      string `json:"date,omitempty"`
	Start     string `json:"start,omitempty"`
	End       string `json:"end,omitempty"`
	Amount    int    `json:"amount,omitempty"`
	Unit      string `json:"unit,omitempty"`
	Position  string `json:"position,omitempty"`
	Anchor    string `json:"anchor,omitempty"`
	Direction string `json:"direction,omitempty"`
	Surface   string `json:"surface,omitempty"`
}

// ExtractedEntity mirrors one entity reference in the model's JSON output.
type ExtractedEntity struct {
	Ticker  string `json:"ticker"`
	Surface string `json:"surface,omitempty"`
}

// ExtractionOutput is the full JSON object the extraction prompt requests.
type ExtractionOutput struct {
	Constraints []ExtractedConstraint `json:"constraints"`
	Entities    []ExtractedEntity     `json:"entities"`
	FactTypes   []string              `json:"fact_types"`
}

// ExtractConstraints builds the messages asking the model to pull temporal
// constraints, entity references, and fact-type mentions out of a question.
// knownTickers and knownFactTypes anchor the model to vocabulary tokens.
func ExtractConstraints(question string, knownTickers, knownFactTypes []string, referenceTime time.Time) []types.Message {
	sysPrompt := `You are an expert temporal information extractor for questions about timestamped business events such as SEC filings. You identify date constraints, entity references, and fact-type mentions.`

	userPrompt := fmt.Sprintf(`
<QUESTION>
%s
</QUESTION>
<REFERENCE TIME>
%s
</REFERENCE TIME>
<KNOWN TICKERS>
%s
</KNOWN TICKERS>
<KNOWN FACT TYPES>
%s
</KNOWN FACT TYPES>

Extract every temporal constraint, entity reference, and fact-type mention from the question.

Guidelines:
1. Constraint kinds: exact_date, date_range, relative_offset, ordinal, event_sequence
2. Dates use ISO 8601 (YYYY-MM-DD); resolve relative expressions against the reference time
3. date_range bounds are inclusive; "in 2024" is the range 2024-01-01 to 2024-12-31
4. ordinal positions are "first" or "latest" ("most recent" means "latest")
5. relative_offset units are day, week, month, quarter, year ("last month" is amount 1, unit month)
6. Only use tickers from KNOWN TICKERS; if a company is not listed, omit it
7. Only use fact types from KNOWN FACT TYPES
8. Include the surface text each constraint or entity was matched from

Return ONLY a JSON object with this structure:
{"constraints": [{"kind": "date_range", "start": "2022-01-01", "end": "2022-06-30", "surface": "between 2022-01-01 and 2022-06-30"}], "entities": [{"ticker": "AAPL", "surface": "Apple"}], "fact_types": ["10-Q"]}

Use empty arrays for sections with no matches. Do not add commentary.
`, question, referenceTime.UTC().Format("2006-01-02"), strings.Join(knownTickers, ", "), strings.Join(knownFactTypes, ", "))

	return []types.Message{
		nlp.NewSystemMessage(sysPrompt),
		nlp.NewUserMessage(userPrompt),
	}
}
