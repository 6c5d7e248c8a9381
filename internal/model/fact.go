package model

// ExtractedFact is one atomic claim read off one slide, exactly as stated.
// Facts are never mutated after extraction; normalization copies them into
// NormalizedFact instead.
type ExtractedFact struct {
	SlideIndex     int      `json:"slide_index"`               // Position in the input deck (0-based)
	MetricCategory string   `json:"metric_category"`           // Semantic tag, e.g. "total_productivity_savings_usd"
	FeatureName    string   `json:"feature_name,omitempty"`    // Set when the fact is a breakdown item
	ContextText    string   `json:"text_content"`              // Verbatim or lightly paraphrased slide text
	NumericValue   *float64 `json:"numerical_value,omitempty"` // Nil for qualitative claims
	Unit           string   `json:"unit,omitempty"`            // Unit as literally stated ("minutes", "USD")
}

// IsNumeric reports whether the fact carries a numeric value.
func (f ExtractedFact) IsNumeric() bool {
	return f.NumericValue != nil
}

// NormalizedFact pairs an extracted fact with its category-consistent value.
// All normalized facts in one category share a single NormalizedUnit for a
// given run.
type NormalizedFact struct {
	Source          ExtractedFact `json:"source"`
	NormalizedValue *float64      `json:"normalized_value,omitempty"`
	NormalizedUnit  string        `json:"normalized_unit,omitempty"`
}

// Passthrough wraps a fact without converting it. Used when a category could
// not be normalized: the raw value and unit carry through unchanged.
func Passthrough(f ExtractedFact) NormalizedFact {
	return NormalizedFact{
		Source:          f,
		NormalizedValue: f.NumericValue,
		NormalizedUnit:  f.Unit,
	}
}
