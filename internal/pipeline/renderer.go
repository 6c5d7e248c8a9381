package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/deckaudit/deckaudit/internal/model"
)

// Renderer turns a report into its output forms. Findings are plain data;
// all formatting decisions live here.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes the findings as a Markdown report
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	b.WriteString("# Deck Consistency Report\n\n")
	fmt.Fprintf(&b, "- **Deck:** %s\n", report.DeckPath)
	fmt.Fprintf(&b, "- **Analyzed:** %s\n", report.AnalyzedAt.Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(&b, "- **Slides:** %d\n", report.SlideCount)
	fmt.Fprintf(&b, "- **Coverage:** %d/%d slides contributed facts\n\n",
		report.Coverage.SlidesWithFacts, report.Coverage.TotalSlides)

	if len(report.Findings) == 0 {
		b.WriteString("No inconsistencies were found.\n")
	} else {
		fmt.Fprintf(&b, "## Findings (%d)\n\n", len(report.Findings))
		for i, f := range report.Findings {
			fmt.Fprintf(&b, "### %d. %s\n\n", i+1, kindTitle(f.Kind))
			if f.Severity != "" {
				fmt.Fprintf(&b, "**Severity:** %s\n\n", f.Severity)
			}
			fmt.Fprintf(&b, "%s\n\n", f.Explanation)
			b.WriteString("**Slides involved:** ")
			b.WriteString(slideList(f.InvolvedSlides, report.SlideLabels))
			b.WriteString("\n\n")
		}
	}

	if r.includeFooter {
		fmt.Fprintf(&b, "---\n\nGenerated by deckaudit (%s/%s)\n", report.Provider, report.Model)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}
	return nil
}

// RenderSummary prints the findings report to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Println()
	fmt.Println("══════════════════════════════════════")
	fmt.Println("  DECK CONSISTENCY REPORT")
	fmt.Println("══════════════════════════════════════")
	fmt.Println()

	if report.Coverage.Partial() {
		fmt.Printf("⚠ Partial coverage: %d of %d slides contributed facts\n\n",
			report.Coverage.SlidesWithFacts, report.Coverage.TotalSlides)
	}

	if len(report.Findings) == 0 {
		fmt.Println("✓ No inconsistencies were found.")
		return
	}

	for i, f := range report.Findings {
		fmt.Printf("%d. %s", i+1, kindTitle(f.Kind))
		if f.Severity != "" {
			fmt.Printf(" [%s]", f.Severity)
		}
		fmt.Println()
		fmt.Printf("   %s\n", f.Explanation)
		fmt.Printf("   Slides: %s\n\n", slideList(f.InvolvedSlides, report.SlideLabels))
	}

	fmt.Println("--- END OF REPORT ---")
}

func kindTitle(kind model.FindingKind) string {
	switch kind {
	case model.KindNumericalContradiction:
		return "Numerical Contradiction"
	case model.KindSummationError:
		return "Summation Error"
	case model.KindLogicalContradiction:
		return "Logical Contradiction"
	case model.KindOmission:
		return "Omission / Incompleteness"
	default:
		return string(kind)
	}
}

// slideList renders cited slide indices with their labels when available
func slideList(indices []int, labels []string) string {
	parts := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(labels) {
			parts = append(parts, fmt.Sprintf("%d (%s)", idx, labels[idx]))
		} else {
			parts = append(parts, fmt.Sprintf("%d", idx))
		}
	}
	return strings.Join(parts, ", ")
}
