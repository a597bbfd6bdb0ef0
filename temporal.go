package temporal

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/extractor"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/formatter"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/generator"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/nlp"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/store"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/types"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/validator"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/vocab"
)

// Agent is the main interface for resolving natural-language questions
// about timestamped events into formatted answers.
type Agent interface {
	// Answer resolves one question through the full pipeline. An empty
	// result set yields a normal answer with Empty set, not an error.
	Answer(ctx context.Context, question string) (*types.FormattedAnswer, error)

	// Close releases the underlying store and model connections.
	Close(ctx context.Context) error
}

// Config holds pipeline tunables.
type Config struct {
	// DefaultLimit is appended to generated queries missing a limit clause.
	DefaultLimit int

	// MaxLimit caps the row limit of any validated query.
	MaxLimit int

	// StoreRetries bounds retries after a failed store execution.
	StoreRetries int

	// RetryBaseDelay is the first retry backoff; each retry doubles it.
	RetryBaseDelay time.Duration

	// AnomalyDeviationFactor tunes the pattern-analysis threshold.
	AnomalyDeviationFactor float64
}

// DefaultConfig returns the standard pipeline tunables.
func DefaultConfig() *Config {
	return &Config{
		DefaultLimit:           30,
		MaxLimit:               50,
		StoreRetries:           3,
		RetryBaseDelay:         500 * time.Millisecond,
		AnomalyDeviationFactor: 2.0,
	}
}

// Client is the main implementation of the Agent interface.
type Client struct {
	store     store.Client
	nlp       nlp.Client
	extractor extractor.Extractor
	generator *generator.Generator
	formatter *formatter.Formatter
	config    *Config
	logger    *slog.Logger

	// injectable for tests
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates a pipeline client. nlpClient may be nil, in which case
// extraction uses the deterministic grammar and generation uses templates
// only. table may be nil to use the built-in vocabulary.
func NewClient(storeClient store.Client, nlpClient nlp.Client, table *vocab.Table, cfg *Config, logger *slog.Logger) (*Client, error) {
	if storeClient == nil {
		return nil, errors.New("store client is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.StoreRetries < 0 {
		cfg.StoreRetries = 0
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = 500 * time.Millisecond
	}
	if table == nil {
		table = vocab.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	v := validator.New(table, validator.Config{
		DefaultLimit: cfg.DefaultLimit,
		MaxLimit:     cfg.MaxLimit,
	})

	f := formatter.New()
	if cfg.AnomalyDeviationFactor > 1 {
		f.AnomalyDeviationFactor = cfg.AnomalyDeviationFactor
	}

	return &Client{
		store:     storeClient,
		nlp:       nlpClient,
		extractor: extractor.NewLLMExtractor(nlpClient, table, logger),
		generator: generator.New(nlpClient, v, logger),
		formatter: f,
		config:    cfg,
		logger:    logger,
		sleep:     sleepContext,
	}, nil
}

// Close implements Agent.
func (c *Client) Close(ctx context.Context) error {
	var errs []error
	if c.nlp != nil {
		if err := c.nlp.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := c.store.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
