package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/deckaudit/deckaudit/internal/llm"
	"github.com/deckaudit/deckaudit/internal/logger"
	"github.com/deckaudit/deckaudit/internal/model"
)

// analysisPrompt hands the whole case file to the service in one call and
// enumerates the four finding kinds. The reasoning itself is delegated; this
// component only defines and enforces the response contract.
const analysisPrompt = `You are a world-class logical and factual analyst. Below is a complete, grouped, and normalized dataset extracted from a multi-slide presentation. Slide indices are 0-based.

Meticulously analyze the ENTIRE dataset and report ALL factual and logical inconsistencies. Look for exactly these kinds of problems:
1. "numerical_contradiction": the same metric has different values across slides.
2. "summation_error": a claimed total does not equal the sum of its component parts.
3. "logical_contradiction": a qualitative claim (e.g. "Tool X is superior") is contradicted by quantitative data.
4. "omission": a list of features or benefits on one slide differs from a list on another, indicating an incomplete picture.

Your output MUST be a single JSON object containing a list called "findings". Each finding must have this schema:
- "kind": one of "numerical_contradiction", "summation_error", "logical_contradiction", "omission".
- "involved_slides": the list of 0-based slide indices that prove the inconsistency (at least one).
- "explanation": a clear, human-readable paragraph explaining the inconsistency, citing the specific values.
- "severity": "info", "warning", or "critical".

If the dataset is fully consistent, return {"findings": []}. Generate ONLY the JSON object.

Here is the dataset:
%s`

// findingsResponse is the structured-data contract for the analysis call
type findingsResponse struct {
	Findings []rawFinding `json:"findings"`
}

type rawFinding struct {
	Kind           string `json:"kind"`
	InvolvedSlides []int  `json:"involved_slides"`
	Explanation    string `json:"explanation"`
	Severity       string `json:"severity"`
}

// Analyzer performs the final whole-dataset reasoning pass. Exactly one
// reasoning call per run.
type Analyzer struct {
	provider  llm.Provider
	model     string
	maxTokens int
}

// NewAnalyzer creates a new inconsistency analyzer
func NewAnalyzer(provider llm.Provider, modelName string, maxTokens int) *Analyzer {
	return &Analyzer{
		provider:  provider,
		model:     modelName,
		maxTokens: maxTokens,
	}
}

// Analyze sends the full case file to the reasoning service and parses the
// response into findings. Findings citing slides that do not exist in the
// case file are dropped: the service occasionally invents citations, and a
// finding that cannot point at real slides is worthless.
func (a *Analyzer) Analyze(ctx context.Context, cf model.CaseFile) ([]model.Finding, error) {
	payload, err := json.MarshalIndent(cf, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal case file: %w", err)
	}

	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
		Prompt:    fmt.Sprintf(analysisPrompt, string(payload)),
		Model:     a.model,
		MaxTokens: a.maxTokens,
	})
	if err != nil {
		return nil, err
	}

	var parsed findingsResponse
	if err := llm.DecodeJSON("analysis", resp.Text, &parsed); err != nil {
		return nil, err
	}

	known := cf.SlideSet()
	findings := make([]model.Finding, 0, len(parsed.Findings))
	for _, raw := range parsed.Findings {
		kind, ok := normalizeKind(raw.Kind)
		if !ok {
			logger.Log.WithField("kind", raw.Kind).Debug("dropping finding with unrecognized kind")
			continue
		}
		if !citesKnownSlides(raw.InvolvedSlides, known) {
			logger.Log.WithField("slides", raw.InvolvedSlides).Debug("dropping finding with invalid slide citations")
			continue
		}
		findings = append(findings, model.Finding{
			Kind:           kind,
			InvolvedSlides: raw.InvolvedSlides,
			Explanation:    raw.Explanation,
			Severity:       normalizeSeverity(raw.Severity),
		})
	}

	return findings, nil
}

// normalizeKind maps the service's kind string, including common free-form
// phrasings, onto the finding taxonomy.
func normalizeKind(s string) (model.FindingKind, bool) {
	k := strings.ToLower(strings.TrimSpace(s))
	k = strings.NewReplacer(" ", "_", "-", "_").Replace(k)

	switch model.FindingKind(k) {
	case model.KindNumericalContradiction, model.KindSummationError,
		model.KindLogicalContradiction, model.KindOmission:
		return model.FindingKind(k), true
	}

	switch {
	case strings.Contains(k, "summation") || strings.Contains(k, "sum"):
		return model.KindSummationError, true
	case strings.Contains(k, "numerical"):
		return model.KindNumericalContradiction, true
	case strings.Contains(k, "logical"):
		return model.KindLogicalContradiction, true
	case strings.Contains(k, "omission") || strings.Contains(k, "incomplete"):
		return model.KindOmission, true
	}

	return "", false
}

func normalizeSeverity(s string) model.Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return model.SeverityInfo
	case "warning":
		return model.SeverityWarning
	case "critical":
		return model.SeverityCritical
	default:
		return ""
	}
}

// citesKnownSlides verifies a finding's citations: non-empty and every index
// present in the case file.
func citesKnownSlides(slides []int, known map[int]bool) bool {
	if len(slides) == 0 {
		return false
	}
	for _, idx := range slides {
		if !known[idx] {
			return false
		}
	}
	return true
}
