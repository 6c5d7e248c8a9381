package normalize

import (
	"testing"

	"github.com/deckaudit/deckaudit/internal/model"
)

func TestAssembleCaseFile_FirstSeenOrder(t *testing.T) {
	facts := []model.ExtractedFact{
		fact(0, "b_category", "x"),
		fact(0, "a_category", "y"),
		fact(1, "b_category", "z"),
	}
	grouped := GroupByCategory(facts)

	normalized := map[string][]model.NormalizedFact{
		"a_category": passthrough(grouped.Groups["a_category"]),
		"b_category": passthrough(grouped.Groups["b_category"]),
	}

	cf := AssembleCaseFile(grouped, normalized)

	if len(cf.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(cf.Groups))
	}
	if cf.Groups[0].Category != "b_category" || cf.Groups[1].Category != "a_category" {
		t.Errorf("expected first-seen order [b_category a_category], got [%s %s]",
			cf.Groups[0].Category, cf.Groups[1].Category)
	}
	if len(cf.Groups[0].Facts) != 2 {
		t.Errorf("expected 2 facts in b_category, got %d", len(cf.Groups[0].Facts))
	}
}

func TestAssembleCaseFile_MissingCategoryFallsBack(t *testing.T) {
	facts := []model.ExtractedFact{
		fact(0, "present", "a"),
		fact(1, "missing", "b"),
	}
	grouped := GroupByCategory(facts)

	// "missing" never made it through normalization
	normalized := map[string][]model.NormalizedFact{
		"present": passthrough(grouped.Groups["present"]),
	}

	cf := AssembleCaseFile(grouped, normalized)

	if len(cf.Groups) != 2 {
		t.Fatalf("expected every observed category in the case file, got %d groups", len(cf.Groups))
	}
	if cf.Groups[1].Category != "missing" || len(cf.Groups[1].Facts) != 1 {
		t.Errorf("expected missing category to pass through raw, got %+v", cf.Groups[1])
	}
}

func TestCaseFile_SlideSet(t *testing.T) {
	facts := []model.ExtractedFact{
		fact(0, "c", "a"),
		fact(2, "c", "b"),
		fact(2, "d", "c"),
	}
	grouped := GroupByCategory(facts)
	cf := AssembleCaseFile(grouped, map[string][]model.NormalizedFact{})

	set := cf.SlideSet()
	if len(set) != 2 || !set[0] || !set[2] {
		t.Errorf("unexpected slide set: %v", set)
	}
	if cf.FactCount() != 3 {
		t.Errorf("expected 3 facts, got %d", cf.FactCount())
	}
}
