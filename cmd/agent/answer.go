package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/config"
)

var answerCmd = &cobra.Command{
	Use:   "answer [question]",
	Short: "Resolve a single question and print the answer",
	Long: `Resolve one natural-language question against the graph store and print
the formatted answer to stdout.

Examples:
  temporal-agent answer "When did Apple file its first 10-K?"
  temporal-agent answer "Compare filing activity between Apple and Microsoft"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnswer,
}

var answerTimeout time.Duration

func init() {
	rootCmd.AddCommand(answerCmd)

	answerCmd.Flags().DurationVar(&answerTimeout, "timeout", 60*time.Second, "Overall deadline for resolving the question")
	answerCmd.Flags().Bool("show-meta", false, "Print intent, source, and warnings alongside the answer")

	// Database flags
	answerCmd.Flags().String("db-uri", "", "Graph store URI (bolt://...)")
	answerCmd.Flags().String("db-username", "", "Graph store username")
	answerCmd.Flags().String("db-password", "", "Graph store password")
	answerCmd.Flags().String("db-database", "", "Graph store database name")

	// NLP flags
	answerCmd.Flags().String("nlp-model", "", "Model name")
	answerCmd.Flags().String("nlp-api-key", "", "Model API key")
	answerCmd.Flags().String("nlp-base-url", "", "Model base URL (OpenAI-compatible)")
}

func runAnswer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	overrideConfigWithFlags(cmd, cfg)

	rt, err := initializeAgent(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), answerTimeout)
	defer cancel()
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := rt.agent.Close(closeCtx); err != nil {
			rt.logger.Warn("failed to close pipeline client", "error", err)
		}
		if rt.telemetry != nil {
			_ = rt.telemetry.Flush()
		}
	}()

	question := strings.Join(args, " ")
	start := time.Now()
	answer, err := rt.agent.Answer(ctx, question)
	if rt.telemetry != nil {
		rt.telemetry.Record(question, answer, time.Since(start), err)
	}
	if err != nil {
		return err
	}

	fmt.Println(answer.Text)

	if showMeta, _ := cmd.Flags().GetBool("show-meta"); showMeta {
		fmt.Printf("\nintent: %s\nsource: %s\ndegraded: %v\n", answer.Intent, answer.Source, answer.Degraded)
		for _, w := range answer.Warnings {
			fmt.Printf("warning: %s\n", w)
		}
	}
	return nil
}

// overrideConfigWithFlags applies command-line flags over loaded config.
func overrideConfigWithFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("db-uri") {
		cfg.Database.URI, _ = cmd.Flags().GetString("db-uri")
	}
	if cmd.Flags().Changed("db-username") {
		cfg.Database.Username, _ = cmd.Flags().GetString("db-username")
	}
	if cmd.Flags().Changed("db-password") {
		cfg.Database.Password, _ = cmd.Flags().GetString("db-password")
	}
	if cmd.Flags().Changed("db-database") {
		cfg.Database.Database, _ = cmd.Flags().GetString("db-database")
	}

	if cmd.Flags().Changed("nlp-model") {
		cfg.NLP.Model, _ = cmd.Flags().GetString("nlp-model")
	}
	if cmd.Flags().Changed("nlp-api-key") {
		cfg.NLP.APIKey, _ = cmd.Flags().GetString("nlp-api-key")
	}
	if cmd.Flags().Changed("nlp-base-url") {
		cfg.NLP.BaseURL, _ = cmd.Flags().GetString("nlp-base-url")
	}
}
