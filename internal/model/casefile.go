package model

// CategoryGroup is one metric category with its normalized facts in slide
// order.
type CategoryGroup struct {
	Category string           `json:"category"`
	Facts    []NormalizedFact `json:"facts"`
}

// CaseFile is the complete normalized dataset handed to final analysis.
// Groups appear in first-seen category order and the structure is never
// mutated after assembly.
type CaseFile struct {
	Groups []CategoryGroup `json:"groups"`
}

// SlideSet returns the set of slide indices cited by any fact in the case
// file. Used to validate finding citations.
func (c CaseFile) SlideSet() map[int]bool {
	set := make(map[int]bool)
	for _, g := range c.Groups {
		for _, f := range g.Facts {
			set[f.Source.SlideIndex] = true
		}
	}
	return set
}

// FactCount returns the total number of facts across all groups.
func (c CaseFile) FactCount() int {
	n := 0
	for _, g := range c.Groups {
		n += len(g.Facts)
	}
	return n
}
