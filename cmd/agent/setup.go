package agent

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	temporal "github.com/yatender-oktalk/OpenDeepSearch-sub000"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/alert"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/config"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/logger"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/nlp"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/store"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/telemetry"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/vocab"
)

// runtime bundles everything a command needs after initialization.
type runtime struct {
	agent     *temporal.Client
	store     store.Client
	logger    *slog.Logger
	telemetry *telemetry.AnswerWriter
}

// initializeAgent wires the full pipeline from configuration: logger,
// vocabulary, model client stack, graph store, and the pipeline client.
func initializeAgent(cfg *config.Config) (*runtime, error) {
	log := buildLogger(cfg)

	table, err := buildVocabulary(cfg)
	if err != nil {
		return nil, err
	}

	nlpClient, err := buildNLPClient(cfg, log)
	if err != nil {
		return nil, err
	}
	if nlpClient == nil {
		log.Warn("no model API key configured, running with deterministic extraction and template queries only")
	}

	storeClient, err := store.NewNeo4jClient(
		cfg.Database.URI,
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Database,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create store client: %w", err)
	}

	agentClient, err := temporal.NewClient(storeClient, nlpClient, table, &temporal.Config{
		DefaultLimit:           cfg.Pipeline.DefaultLimit,
		MaxLimit:               cfg.Pipeline.MaxLimit,
		StoreRetries:           cfg.Pipeline.StoreRetries,
		AnomalyDeviationFactor: cfg.Pipeline.AnomalyDeviationFactor,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline client: %w", err)
	}

	rt := &runtime{
		agent:  agentClient,
		store:  storeClient,
		logger: log,
	}

	if cfg.Telemetry.ParquetPath != "" {
		writer, err := telemetry.NewAnswerWriter(cfg.Telemetry.ParquetPath)
		if err != nil {
			log.Warn("answer telemetry disabled", "error", err)
		} else {
			rt.telemetry = writer
		}
	}

	return rt, nil
}

// buildLogger creates the colored logger, routing errors to Parquet when a
// telemetry path is configured.
func buildLogger(cfg *config.Config) *slog.Logger {
	var base slog.Handler = logger.NewColorHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.Log.Level),
	})

	if cfg.Telemetry.ParquetPath != "" {
		parquetHandler, err := telemetry.NewParquetHandler(base, cfg.Telemetry.ParquetPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize error tracking: %v\n", err)
		} else {
			base = parquetHandler
		}
	}

	return slog.New(base)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildVocabulary(cfg *config.Config) (*vocab.Table, error) {
	if cfg.Pipeline.VocabularyPath == "" {
		return vocab.Default(), nil
	}
	table, err := vocab.LoadFile(cfg.Pipeline.VocabularyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary file: %w", err)
	}
	return table, nil
}

// buildNLPClient assembles the outbound model stack: OpenAI-compatible
// client, rate gate, retry wrapper, and circuit breaker. Returns nil when
// no API key is configured; the pipeline runs degraded without it.
func buildNLPClient(cfg *config.Config, log *slog.Logger) (nlp.Client, error) {
	if cfg.NLP.APIKey == "" {
		return nil, nil
	}

	switch cfg.NLP.Provider {
	case "", "openai":
	case "openai_compatible":
		if cfg.NLP.BaseURL == "" {
			return nil, fmt.Errorf("nlp provider %q requires a base URL", cfg.NLP.Provider)
		}
	default:
		return nil, fmt.Errorf("unsupported nlp provider: %q", cfg.NLP.Provider)
	}

	temperature := cfg.NLP.Temperature
	maxTokens := cfg.NLP.MaxTokens
	nlpConfig := nlp.Config{
		Model:       cfg.NLP.Model,
		Temperature: &temperature,
		BaseURL:     cfg.NLP.BaseURL,
	}
	if maxTokens > 0 {
		nlpConfig.MaxTokens = &maxTokens
	}

	base, err := nlp.NewOpenAIClient(cfg.NLP.APIKey, nlpConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}

	var client nlp.Client = base
	if cfg.NLP.MinCallDelayMS > 0 {
		gate := nlp.NewGate(time.Duration(cfg.NLP.MinCallDelayMS) * time.Millisecond)
		client = nlp.NewGatedClient(client, gate)
	}
	client = nlp.NewRetryClient(client, nlp.DefaultRetryConfig())

	if cfg.CircuitBreaker.Enabled {
		var alerter alert.Alerter = &alert.NoOpAlerter{}
		if cfg.Alert.Enabled {
			alerter = alert.NewEmailAlerter(cfg.Alert)
		}
		client = nlp.NewCircuitBreakerClient(client, cfg.CircuitBreaker, alerter, log, "llm")
	}

	return client, nil
}
