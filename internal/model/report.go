package model

import "time"

// Report represents the complete deck analysis result
type Report struct {
	DeckPath   string    `json:"deck_path"`   // Folder that was analyzed
	AnalyzedAt time.Time `json:"analyzed_at"` // When the analysis ran

	Provider string `json:"provider,omitempty"` // Reasoning service used
	Model    string `json:"model,omitempty"`    // Model name

	SlideCount  int      `json:"slide_count"`
	SlideLabels []string `json:"slide_labels,omitempty"` // Human-readable label per slide index

	Coverage Coverage `json:"coverage"` // How much of the deck survived extraction

	CaseFile CaseFile  `json:"case_file"` // Full normalized dataset
	Findings []Finding `json:"findings"`
}

// Coverage records how many input slides contributed at least one kept fact.
// A gap between the two counts means the run completed degraded: some slides
// failed extraction or yielded nothing.
type Coverage struct {
	SlidesWithFacts int `json:"slides_with_facts"`
	TotalSlides     int `json:"total_slides"`
}

// Partial reports whether coverage is incomplete.
func (c Coverage) Partial() bool {
	return c.SlidesWithFacts < c.TotalSlides
}

// CoverageFor computes coverage from a case file and the input slide count.
func CoverageFor(cf CaseFile, totalSlides int) Coverage {
	return Coverage{
		SlidesWithFacts: len(cf.SlideSet()),
		TotalSlides:     totalSlides,
	}
}
