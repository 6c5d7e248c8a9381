package model

import "time"

// Config holds the full runtime configuration
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Cache       CacheConfig       `yaml:"cache"`
	Output      OutputConfig      `yaml:"output"`
}

// LLMConfig configures the reasoning service
type LLMConfig struct {
	Provider          string  `yaml:"provider"`            // "openai" or "anthropic"
	Model             string  `yaml:"model"`               // Provider-specific model name
	APIKey            string  `yaml:"-"`                   // Injected from env, never written to disk
	BaseURL           string  `yaml:"base_url"`            // Custom endpoint (OpenAI-compatible servers)
	Timeout           int     `yaml:"timeout"`             // Seconds per request
	MaxTokens         int     `yaml:"max_tokens"`          // Response cap for extraction/normalization
	AnalysisMaxTokens int     `yaml:"analysis_max_tokens"` // Larger cap for the final analysis call
	RequestsPerSecond float64 `yaml:"requests_per_second"` // Client-side rate limit per model
}

// ConcurrencyConfig bounds the fan-out of the extraction and normalization
// passes. The final analysis is a single call and has no fan-out.
type ConcurrencyConfig struct {
	ExtractWorkers   int `yaml:"extract_workers"`
	NormalizeWorkers int `yaml:"normalize_workers"`
}

// CacheConfig configures completion caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// OutputConfig configures report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:          "openai",
			Model:             "gpt-4o-mini",
			Timeout:           120,
			MaxTokens:         2000,
			AnalysisMaxTokens: 4000,
			RequestsPerSecond: 1.0,
		},
		Concurrency: ConcurrencyConfig{
			ExtractWorkers:   4,
			NormalizeWorkers: 4,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // Resolved to ~/.deckaudit/cache by the CLI
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
