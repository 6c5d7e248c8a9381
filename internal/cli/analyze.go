package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deckaudit/deckaudit/internal/model"
	"github.com/deckaudit/deckaudit/internal/pipeline"
	"github.com/deckaudit/deckaudit/internal/slides"
)

var (
	outJSON          string
	outMD            string
	runTimeout       time.Duration
	llmProvider      string
	llmModel         string
	llmBaseURL       string
	requestTimeout   time.Duration
	rps              float64
	extractWorkers   int
	normalizeWorkers int
	noCache          bool
	noFooter         bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <slide-folder>",
	Short: "Analyze a folder of slide images for factual inconsistencies",
	Long: `Analyze reads every .jpg/.jpeg/.png in the given folder (in filename
order, one image per slide), extracts the factual claims from each slide,
normalizes comparable claims into common units, and reports contradictions,
incorrect summations, logical conflicts, and omissions across the deck.

Example:
  deckaudit analyze ./deck_images
  deckaudit analyze ./deck_images --json report.json --md report.md
  deckaudit analyze ./deck_images --provider anthropic --model claude-3-5-sonnet-20241022`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON report path (optional)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown report path (optional)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Run flags
	analyzeCmd.Flags().DurationVar(&runTimeout, "timeout", 15*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().DurationVar(&requestTimeout, "request-timeout", 2*time.Minute, "timeout per reasoning call")
	analyzeCmd.Flags().IntVar(&extractWorkers, "extract-workers", 4, "concurrent extraction calls (pass 1)")
	analyzeCmd.Flags().IntVar(&normalizeWorkers, "normalize-workers", 4, "concurrent normalization calls (pass 2)")
	analyzeCmd.Flags().Float64Var(&rps, "rps", 1.0, "requests per second to the reasoning service")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable completion cache (force fresh calls)")

	// Provider flags
	analyzeCmd.Flags().StringVar(&llmProvider, "provider", "openai", "reasoning provider (openai, anthropic)")
	analyzeCmd.Flags().StringVar(&llmModel, "model", "gpt-4o-mini", "model name (must support image input)")
	analyzeCmd.Flags().StringVar(&llmBaseURL, "base-url", "", "custom API endpoint (OpenAI-compatible servers)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	src, err := slides.NewSource(path)
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	report, err := p.Run(ctx, src)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}
	renderer.RenderSummary(report)

	return nil
}

// buildConfig assembles the run configuration. Precedence, highest first:
// explicitly set flags, config file values (already loaded into viper),
// built-in defaults. API keys come from the environment only.
func buildConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := model.DefaultConfig()
	applyFileConfig(cfg)

	flags := cmd.Flags()
	if flags.Changed("provider") {
		cfg.LLM.Provider = llmProvider
	}
	if flags.Changed("model") {
		cfg.LLM.Model = llmModel
	}
	if flags.Changed("base-url") {
		cfg.LLM.BaseURL = llmBaseURL
	}
	if flags.Changed("request-timeout") {
		cfg.LLM.Timeout = int(requestTimeout.Seconds())
	}
	if flags.Changed("rps") {
		cfg.LLM.RequestsPerSecond = rps
	}
	if flags.Changed("extract-workers") {
		cfg.Concurrency.ExtractWorkers = extractWorkers
	}
	if flags.Changed("normalize-workers") {
		cfg.Concurrency.NormalizeWorkers = normalizeWorkers
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	cfg.Output.Verbose = verbose

	// API credential is injected from the environment, never from flags
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	}

	if cfg.Cache.Enabled && cfg.Cache.Dir == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			cfg.Cache.Dir = filepath.Join(home, ".deckaudit", "cache")
		} else {
			cfg.Cache.Enabled = false
		}
	}

	return cfg, nil
}

// applyFileConfig overlays config file values (and DECKAUDIT_* env variables
// bound by viper) onto the defaults. Keys mirror the yaml written by
// `deckaudit config init`.
func applyFileConfig(cfg *model.Config) {
	if viper.IsSet("llm.provider") {
		cfg.LLM.Provider = viper.GetString("llm.provider")
	}
	if viper.IsSet("llm.model") {
		cfg.LLM.Model = viper.GetString("llm.model")
	}
	if viper.IsSet("llm.base_url") {
		cfg.LLM.BaseURL = viper.GetString("llm.base_url")
	}
	if viper.IsSet("llm.timeout") {
		cfg.LLM.Timeout = viper.GetInt("llm.timeout")
	}
	if viper.IsSet("llm.max_tokens") {
		cfg.LLM.MaxTokens = viper.GetInt("llm.max_tokens")
	}
	if viper.IsSet("llm.analysis_max_tokens") {
		cfg.LLM.AnalysisMaxTokens = viper.GetInt("llm.analysis_max_tokens")
	}
	if viper.IsSet("llm.requests_per_second") {
		cfg.LLM.RequestsPerSecond = viper.GetFloat64("llm.requests_per_second")
	}
	if viper.IsSet("concurrency.extract_workers") {
		cfg.Concurrency.ExtractWorkers = viper.GetInt("concurrency.extract_workers")
	}
	if viper.IsSet("concurrency.normalize_workers") {
		cfg.Concurrency.NormalizeWorkers = viper.GetInt("concurrency.normalize_workers")
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if viper.IsSet("cache.dir") {
		cfg.Cache.Dir = viper.GetString("cache.dir")
	}
	if viper.IsSet("cache.memory_ttl") {
		cfg.Cache.MemoryTTL = viper.GetDuration("cache.memory_ttl")
	}
	if viper.IsSet("cache.disk_ttl") {
		cfg.Cache.DiskTTL = viper.GetDuration("cache.disk_ttl")
	}
	if viper.IsSet("output.include_footer") {
		cfg.Output.IncludeFooter = viper.GetBool("output.include_footer")
	}
}
