package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/nlp"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/types"
)

// intentExamples gives the model one example query shape per intent.
var intentExamples = map[types.QueryIntent]string{
	types.IntentSingleFact: `MATCH (c:Company {ticker: 'AAPL'})-[:FILED]->(f:Filing {type: '10-K'})
RETURN c.ticker AS entity, f.type AS fact_type, f.date AS date, f.description AS description
ORDER BY f.date DESC LIMIT 1`,
	types.IntentTimeline: `MATCH (c:Company {ticker: 'AAPL'})-[:FILED]->(f:Filing)
WHERE f.date >= date('2024-01-01') AND f.date <= date('2024-12-31')
RETURN c.ticker AS entity, f.type AS fact_type, f.date AS date, f.description AS description
ORDER BY f.date ASC LIMIT 30`,
	types.IntentComparison: `MATCH (c:Company)-[:FILED]->(f:Filing)
WHERE c.ticker IN ['AAPL', 'MSFT']
RETURN c.ticker AS entity, f.type AS fact_type, f.date AS date, f.description AS description
ORDER BY c.ticker, f.date ASC LIMIT 50`,
	types.IntentAggregation: `MATCH (c:Company {ticker: 'AAPL'})-[:FILED]->(f:Filing)
RETURN c.ticker AS entity, f.type AS fact_type, count(f) AS count
ORDER BY count DESC LIMIT 30`,
	types.IntentPatternAnalysis: `MATCH (c:Company)-[:FILED]->(f:Filing {type: '8-K'})
WHERE c.ticker IN ['AAPL', 'MSFT']
RETURN c.ticker AS entity, f.type AS fact_type, f.date AS date, f.description AS description
ORDER BY c.ticker, f.date ASC LIMIT 50`,
}

// GenerateQuery builds the messages asking the model for an executable
// Cypher query. The mandatory rule list mirrors what the validator enforces
// afterwards; requiredFields is the minimum return set for the intent.
func GenerateQuery(question string, intent types.QueryIntent, constraints []types.TemporalConstraint, entities []types.EntityReference, factTypes []string, schema string, requiredFields []string, maxLimit int) []types.Message {
	sysPrompt := `You are an expert Cypher query generator for a graph database of companies and their timestamped filings. You translate structured question analyses into a single executable query.`

	constraintsJSON, _ := json.Marshal(constraints)
	entitiesJSON, _ := json.Marshal(entities)

	userPrompt := fmt.Sprintf(`
<QUESTION>
%s
</QUESTION>
<INTENT>
%s
</INTENT>
<SCHEMA>
%s
</SCHEMA>
<CONSTRAINTS>
%s
</CONSTRAINTS>
<ENTITIES>
%s
</ENTITIES>
<FACT TYPES>
%s
</FACT TYPES>

Generate one Cypher query answering the question.

Mandatory rules:
1. RETURN must alias at least these fields: %s
2. Always end with a LIMIT clause; the limit must be between 1 and %d
3. Entity literals must be ticker symbols from ENTITIES; fact-type literals must come from FACT TYPES
4. Date filters must use the date('YYYY-MM-DD') literal syntax
5. Apply every constraint in CONSTRAINTS
6. Output ONLY the query text, no markdown fences, no commentary

Example shape for this intent:
%s
`, question, intent, schema, constraintsJSON, entitiesJSON, strings.Join(factTypes, ", "), strings.Join(requiredFields, ", "), maxLimit, intentExamples[intent])

	return []types.Message{
		nlp.NewSystemMessage(sysPrompt),
		nlp.NewUserMessage(userPrompt),
	}
}
