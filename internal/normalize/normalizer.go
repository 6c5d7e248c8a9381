package normalize

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deckaudit/deckaudit/internal/llm"
	"github.com/deckaudit/deckaudit/internal/model"
)

// normalizePrompt instructs the service to re-express one category's facts in
// a single common unit. Batched per category so unit decisions are made with
// the full group in view: converting "minutes" only makes sense relative to
// what the sibling claims use.
const normalizePrompt = `You are a precise data normalization engine. Below is a JSON list of claims that all belong to the SAME semantic category but were extracted from different presentation slides.

Normalize every item to a single, consistent unit. Rules:
1. Examine all the units present in the list (e.g. "hours", "minutes").
2. Choose the most logical common base unit for comparison (for time, "hours" is usually best).
3. Return the list as a JSON array with one object PER INPUT ITEM, IN THE SAME ORDER, each containing exactly two keys: "normalized_value" and "normalized_unit".
4. Perform the conversions accurately. 60 minutes = 1 hour. "$2M" = 2000000.
5. Items without a numerical value get "normalized_value": null and the chosen unit.

Return ONLY the JSON array, nothing else.

Here is the list of claims to normalize:
%s`

// normalizedItem is the per-fact contract for one normalization call
type normalizedItem struct {
	NormalizedValue *float64 `json:"normalized_value"`
	NormalizedUnit  string   `json:"normalized_unit"`
}

// Normalizer converts heterogeneous units within one category into a common
// representation. One reasoning call per category group, fail-open: a group
// that cannot be normalized passes through with its raw values.
type Normalizer struct {
	provider llm.Provider
	model    string
}

// NewNormalizer creates a new normalizer
func NewNormalizer(provider llm.Provider, modelName string) *Normalizer {
	return &Normalizer{
		provider: provider,
		model:    modelName,
	}
}

// Normalize re-expresses a category group in one common unit. The returned
// slice always has one entry per input fact in input order. A non-nil error
// means the group passed through unnormalized; the facts are still usable.
func (n *Normalizer) Normalize(ctx context.Context, category string, facts []model.ExtractedFact) ([]model.NormalizedFact, error) {
	// Singleton groups and purely qualitative groups have nothing to
	// reconcile; skip the call entirely.
	if !needsNormalization(facts) {
		return passthrough(facts), nil
	}

	payload, err := json.MarshalIndent(facts, "", "  ")
	if err != nil {
		return passthrough(facts), fmt.Errorf("category %q: marshal group: %w", category, err)
	}

	resp, err := n.provider.Complete(ctx, llm.CompletionRequest{
		Prompt: fmt.Sprintf(normalizePrompt, string(payload)),
		Model:  n.model,
	})
	if err != nil {
		return passthrough(facts), fmt.Errorf("category %q: %w", category, err)
	}

	var items []normalizedItem
	if err := llm.DecodeJSON("normalization", resp.Text, &items); err != nil {
		return passthrough(facts), fmt.Errorf("category %q: %w", category, err)
	}

	// The contract requires exactly one output entry per input fact, in
	// order. Anything else and the mapping back to source facts is
	// unreliable, so the whole group passes through.
	if len(items) != len(facts) {
		return passthrough(facts), fmt.Errorf(
			"category %q: normalization returned %d items for %d facts", category, len(items), len(facts))
	}

	normalized := make([]model.NormalizedFact, len(facts))
	for i, f := range facts {
		normalized[i] = model.NormalizedFact{
			Source:          f,
			NormalizedValue: items[i].NormalizedValue,
			NormalizedUnit:  items[i].NormalizedUnit,
		}
	}

	return normalized, nil
}

// needsNormalization reports whether a group is worth a reasoning call:
// at least two members and at least one numeric value.
func needsNormalization(facts []model.ExtractedFact) bool {
	if len(facts) < 2 {
		return false
	}
	for _, f := range facts {
		if f.IsNumeric() {
			return true
		}
	}
	return false
}

func passthrough(facts []model.ExtractedFact) []model.NormalizedFact {
	out := make([]model.NormalizedFact, len(facts))
	for i, f := range facts {
		out[i] = model.Passthrough(f)
	}
	return out
}
