package dataspace

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/iot-data-space/dataspace/pkg/bench"
	"github.com/iot-data-space/dataspace/pkg/config"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark a language model against the data space tools",
	Long: `Run a prompt set against a language model that answers through the
data space tools and write per-prompt results as CSV.

Each prompt is handed to the model together with the get_types and read
tool declarations. Tool calls are executed against the data space and
the final answer is compared with the expected one. Results include
token usage, tool call counts, and timings; token usage is also
persisted to parquet files for offline analysis.`,
	RunE: runBench,
}

var (
	benchPrompts  string
	benchOutput   string
	benchMaxTurns int
)

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().StringVar(&benchPrompts, "prompts", "", "Path to the prompts file (JSON)")
	benchCmd.Flags().StringVarP(&benchOutput, "output", "o", "", "CSV output path (default stdout)")
	benchCmd.Flags().IntVar(&benchMaxTurns, "max-turns", 0, "Maximum model round trips per prompt")

	// LLM flags
	benchCmd.Flags().String("model", "", "Model name")
	benchCmd.Flags().String("llm-base-url", "", "Base URL of an OpenAI-compatible service")
}

func runBench(cmd *cobra.Command, args []string) error {
	// .env keeps API keys out of the shell for local runs.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if benchPrompts == "" {
		benchPrompts = cfg.Bench.PromptsPath
	}
	if benchMaxTurns <= 0 {
		benchMaxTurns = cfg.Bench.MaxTurns
	}
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		cfg.LLM.Model = model
	}
	if baseURL, _ := cmd.Flags().GetString("llm-base-url"); baseURL != "" {
		cfg.LLM.BaseURL = baseURL
	}

	log, closeTelemetry := newLogger(cfg)
	defer closeTelemetry()

	ds, _, err := openDataSpace(cfg, log)
	if err != nil {
		return err
	}

	client, err := newLLMClient(cfg, log)
	if err != nil {
		return err
	}
	defer client.Close()

	prompts, err := bench.LoadPrompts(benchPrompts)
	if err != nil {
		return err
	}

	tracker, err := bench.NewTracker(cfg.Bench.OutputDir)
	if err != nil {
		log.Warn("token tracking disabled", "error", err)
		tracker = nil
	}

	runner, err := bench.NewRunner(client, ds, tracker, bench.Config{MaxTurns: benchMaxTurns}, log)
	if err != nil {
		return err
	}

	log.Info("starting benchmark run",
		"prompts", len(prompts),
		"model", cfg.LLM.Model,
		"max_turns", benchMaxTurns,
	)

	records, runErr := runner.Run(cmd.Context(), prompts)

	if tracker != nil {
		if err := tracker.Close(); err != nil {
			log.Warn("failed to flush token usage", "error", err)
		}
	}

	if len(records) > 0 {
		out := os.Stdout
		if benchOutput != "" {
			f, err := os.Create(benchOutput)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer f.Close()
			out = f
		}
		if err := bench.WriteCSV(out, records); err != nil {
			return fmt.Errorf("write results: %w", err)
		}

		matched := 0
		for _, r := range records {
			if r.MatchesExpected {
				matched++
			}
		}
		log.Info("benchmark finished", "prompts", len(records), "matched", matched)
	}

	return runErr
}
