package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/deckaudit/deckaudit/internal/model"
)

func sampleReport() *model.Report {
	v := 120000.0
	return &model.Report{
		DeckPath:    "/decks/q3",
		AnalyzedAt:  time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
		Provider:    "openai",
		Model:       "gpt-4o-mini",
		SlideCount:  2,
		SlideLabels: []string{"intro.png", "totals.png"},
		Coverage:    model.Coverage{SlidesWithFacts: 2, TotalSlides: 2},
		CaseFile: model.CaseFile{
			Groups: []model.CategoryGroup{{
				Category: "total_savings_usd",
				Facts: []model.NormalizedFact{{
					Source: model.ExtractedFact{
						SlideIndex:     0,
						MetricCategory: "total_savings_usd",
						ContextText:    "Total savings: $120,000",
						NumericValue:   &v,
						Unit:           "USD",
					},
					NormalizedValue: &v,
					NormalizedUnit:  "USD",
				}},
			}},
		},
		Findings: []model.Finding{{
			Kind:           model.KindNumericalContradiction,
			InvolvedSlides: []int{0, 1},
			Explanation:    "Totals disagree across slides.",
			Severity:       model.SeverityCritical,
		}},
	}
}

func TestRenderer_JSONRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	r := NewRenderer(true)

	if err := r.RenderJSON(sampleReport(), path); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}

	var restored model.Report
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if restored.DeckPath != "/decks/q3" || len(restored.Findings) != 1 {
		t.Errorf("roundtrip lost data: %+v", restored)
	}
	if restored.Findings[0].Kind != model.KindNumericalContradiction {
		t.Errorf("unexpected kind after roundtrip: %s", restored.Findings[0].Kind)
	}
}

func TestRenderer_Markdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	r := NewRenderer(true)

	if err := r.RenderMarkdown(sampleReport(), path); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	text := string(data)

	for _, want := range []string{
		"# Deck Consistency Report",
		"Numerical Contradiction",
		"critical",
		"0 (intro.png), 1 (totals.png)",
		"Generated by deckaudit (openai/gpt-4o-mini)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("markdown report missing %q", want)
		}
	}
}

func TestRenderer_MarkdownNoFooter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	r := NewRenderer(false)

	if err := r.RenderMarkdown(sampleReport(), path); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if strings.Contains(string(data), "Generated by") {
		t.Error("footer rendered despite being disabled")
	}
}

func TestRenderer_MarkdownCleanDeck(t *testing.T) {
	report := sampleReport()
	report.Findings = nil

	path := filepath.Join(t.TempDir(), "report.md")
	if err := NewRenderer(false).RenderMarkdown(report, path); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(data), "No inconsistencies were found.") {
		t.Error("expected clean-deck message")
	}
}
