// Package generator produces executable Cypher queries from a classified
// question. The primary path asks a language model under a mandatory rule
// set; pre-written templates keyed by intent are the fallback when the
// model is unavailable or its output fails validation twice in a row.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/extractor"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/intent"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/nlp"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/prompts"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/types"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/validator"
)

// llmAttempts bounds model-path generation: two rejected outputs in a row
// trigger the template fallback.
const llmAttempts = 2

// Generator builds validated graph queries for a question.
type Generator struct {
	client    nlp.Client
	validator *validator.Validator
	logger    *slog.Logger
}

// New creates a generator. client may be nil, in which case only the
// template path is used.
func New(client nlp.Client, v *validator.Validator, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		client:    client,
		validator: v,
		logger:    logger,
	}
}

// Generate returns a validated query for the question. The result always
// carries its provenance in Source so callers can distinguish best-path
// from fallback-path outcomes. A *types.ValidationError is returned only
// when the template fallback itself fails validation, which is terminal.
func (g *Generator) Generate(ctx context.Context, question string, queryIntent types.QueryIntent, extraction *extractor.Extraction) (*types.GeneratedQuery, error) {
	required := intent.RequiredFields(queryIntent)

	if g.client != nil {
		messages := prompts.GenerateQuery(question, queryIntent, extraction.Constraints, extraction.Entities, extraction.FactTypes, Schema, required, 50)

		for attempt := 0; attempt < llmAttempts; attempt++ {
			resp, err := g.client.Chat(ctx, messages)
			if err != nil {
				g.logger.Warn("query generation model call failed, using template fallback", "error", err)
				break
			}

			candidate := &types.GeneratedQuery{
				Text:   cleanQueryText(resp.Content),
				Source: types.SourceLLM,
				Intent: queryIntent,
			}
			validated, err := g.validator.Validate(candidate)
			if err == nil {
				return validated, nil
			}
			g.logger.Warn("model query rejected by validator", "attempt", attempt+1, "error", err)
		}
	}

	// Template fallback. Still validated so the limit and field invariants
	// hold regardless of path.
	validated, err := g.validator.Validate(FromTemplate(queryIntent, extraction))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrValidationFailed, err)
	}
	return validated, nil
}

// cleanQueryText strips markdown fences and trailing semicolons from model
// output.
func cleanQueryText(raw string) string {
	s := strings.TrimSpace(nlp.RemoveThinkTags(raw))
	if strings.HasPrefix(s, "```") {
		lines := strings.Split(s, "\n")
		if len(lines) > 2 {
			s = strings.Join(lines[1:len(lines)-1], "\n")
		}
	}
	s = strings.TrimPrefix(strings.TrimSpace(s), "cypher")
	return strings.TrimRight(strings.TrimSpace(s), ";")
}
