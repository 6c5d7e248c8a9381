package llm

import "context"

// Provider defines the interface for reasoning-service backends. The service
// is a black box: callers hand it a prompt (optionally with an image) and get
// text back. Any structured-data contract on the response is enforced by the
// caller, never trusted.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends one prompt (with optional image content) and returns the
	// raw response text. Generation temperature is pinned to zero by every
	// implementation to reduce run-to-run variance.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for one completion call
type CompletionRequest struct {
	// Prompt is the full instruction text
	Prompt string

	// Image is optional raw image content attached to the prompt
	Image []byte

	// ImageMIME is the media type of Image ("image/png", "image/jpeg")
	ImageMIME string

	// Model overrides the configured model for this call (optional)
	Model string

	// MaxTokens limits the response length (0 uses the configured default)
	MaxTokens int
}

// CompletionResponse contains the raw completion output
type CompletionResponse struct {
	// Text is the response body as returned by the service
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds provider configuration
type Config struct {
	// Provider name: "openai" or "anthropic"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the provider
	APIKey string

	// BaseURL for custom endpoints (OpenAI-compatible servers)
	BaseURL string

	// Timeout per API request, in seconds
	Timeout int

	// MaxTokens default for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "openai",
		Model:     "",
		Timeout:   120,
		MaxTokens: 2000,
	}
}
