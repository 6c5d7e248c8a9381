package extract

import (
	"context"
	"fmt"

	"github.com/deckaudit/deckaudit/internal/llm"
	"github.com/deckaudit/deckaudit/internal/model"
)

// extractionPrompt asks for raw claims only. Normalization and analysis are
// deliberately excluded: small, single-purpose prompts extract more reliably
// and keep failures isolated to one slide.
const extractionPrompt = `You are an expert data analyst. Analyze the provided presentation slide and extract every factual claim (textual and numerical) into structured JSON.

Semantically categorize each claim so that data from different slides can be compared even when the wording differs. Do NOT normalize or change any values, and do NOT analyze or compare anything.

Your output MUST be a JSON object containing a list called "facts". For each claim, emit an object with this schema:
- "metric_category": a standardized snake_case name for the claim's category (e.g. "total_productivity_savings_usd", "time_saved_per_slide", "total_time_savings_claim", "feature_time_savings_breakdown", "qualitative_claim").
- "feature_name": if the claim is a breakdown item, the feature's name (e.g. "Automated Formatting"); otherwise null.
- "text_content": the raw extracted text.
- "numerical_value": the stated number if one exists (for "$2M" this is 2000000); null if none.
- "unit": the stated unit if one exists (e.g. "USD", "hours", "minutes"); null if none.

Generate ONLY the JSON object.`

// slideResponse is the structured-data contract for one extraction call
type slideResponse struct {
	Facts []slideFact `json:"facts"`
}

type slideFact struct {
	MetricCategory string   `json:"metric_category"`
	FeatureName    string   `json:"feature_name"`
	TextContent    string   `json:"text_content"`
	NumericalValue *float64 `json:"numerical_value"`
	Unit           string   `json:"unit"`
}

// FactExtractor reads factual claims off individual slides. One reasoning
// call per slide; it never compares facts across slides.
type FactExtractor struct {
	provider llm.Provider
	model    string
}

// NewFactExtractor creates a new fact extractor
func NewFactExtractor(provider llm.Provider, modelName string) *FactExtractor {
	return &FactExtractor{
		provider: provider,
		model:    modelName,
	}
}

// Extract pulls all factual claims from one slide image. The returned facts
// carry slideIndex so downstream findings can cite the originating slide.
// Errors are per-slide: the caller skips the slide and continues.
func (e *FactExtractor) Extract(ctx context.Context, slideIndex int, image []byte, imageMIME string) ([]model.ExtractedFact, error) {
	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Prompt:    extractionPrompt,
		Image:     image,
		ImageMIME: imageMIME,
		Model:     e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("slide %d: %w", slideIndex, err)
	}

	var parsed slideResponse
	if err := llm.DecodeJSON("extraction", resp.Text, &parsed); err != nil {
		return nil, fmt.Errorf("slide %d: %w", slideIndex, err)
	}

	facts := make([]model.ExtractedFact, 0, len(parsed.Facts))
	for _, f := range parsed.Facts {
		if f.MetricCategory == "" {
			// Uncategorized claims cannot be grouped or compared
			continue
		}
		facts = append(facts, model.ExtractedFact{
			SlideIndex:     slideIndex,
			MetricCategory: f.MetricCategory,
			FeatureName:    f.FeatureName,
			ContextText:    f.TextContent,
			NumericValue:   f.NumericalValue,
			Unit:           f.Unit,
		})
	}

	return facts, nil
}
