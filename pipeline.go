package temporal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/intent"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/types"
)

// Answer implements Agent. The stages run in a fixed order: extract,
// classify, generate and validate, execute, format. Only two failures are
// terminal: a template query rejected by the validator, and a store error
// that survives the retry budget. Everything else degrades and the answer
// records that it did.
func (c *Client) Answer(ctx context.Context, question string) (*types.FormattedAnswer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, types.ErrEmptyQuestion
	}

	start := time.Now()

	extraction := c.extractor.Extract(ctx, question)

	queryIntent := intent.Classify(question, extraction)
	c.logger.Info("question classified",
		"intent", queryIntent,
		"constraints", len(extraction.Constraints),
		"entities", len(extraction.Entities),
		"degraded_extraction", extraction.Degraded,
	)

	query, err := c.generator.Generate(ctx, question, queryIntent, extraction)
	if err != nil {
		return nil, fmt.Errorf("query generation failed: %w", err)
	}

	records, err := c.execute(ctx, query)
	if err != nil {
		return nil, err
	}

	answer := c.formatter.Format(queryIntent, records, extraction)
	answer.Source = query.Source
	answer.Warnings = query.Warnings
	answer.Degraded = extraction.Degraded || query.Source == types.SourceTemplate

	c.logger.Info("question answered",
		"intent", queryIntent,
		"source", query.Source,
		"records", len(records),
		"empty", answer.Empty,
		"duration", time.Since(start),
	)
	return answer, nil
}

// execute runs the query against the store with bounded retries. Backoff
// doubles from RetryBaseDelay. Syntax errors are never retried: the query
// text will not change between attempts.
func (c *Client) execute(ctx context.Context, query *types.GeneratedQuery) ([]types.ResultRecord, error) {
	delay := c.config.RetryBaseDelay
	var lastErr error

	for attempt := 0; attempt <= c.config.StoreRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("retrying store execution", "attempt", attempt, "delay", delay, "error", lastErr)
			if err := c.sleep(ctx, delay); err != nil {
				return nil, fmt.Errorf("store execution aborted: %w", err)
			}
			delay *= 2
		}

		records, err := c.store.Execute(ctx, query)
		if err == nil {
			return records, nil
		}
		lastErr = err

		var storeErr *types.StoreError
		if errors.As(err, &storeErr) && !storeErr.Retryable() {
			break
		}
	}

	return nil, fmt.Errorf("store execution failed after retries: %w", lastErr)
}
