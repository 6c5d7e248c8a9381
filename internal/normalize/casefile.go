package normalize

import "github.com/deckaudit/deckaudit/internal/model"

// AssembleCaseFile builds the case file from normalized groups, ordered by
// first-seen category order from the grouping step. Pure and deterministic.
// A category missing from normalized (a pass that never completed) falls
// back to passing its raw facts through, so the case file always covers
// every observed category.
func AssembleCaseFile(grouped Grouped, normalized map[string][]model.NormalizedFact) model.CaseFile {
	cf := model.CaseFile{
		Groups: make([]model.CategoryGroup, 0, len(grouped.Order)),
	}

	for _, category := range grouped.Order {
		facts, ok := normalized[category]
		if !ok {
			facts = passthrough(grouped.Groups[category])
		}
		cf.Groups = append(cf.Groups, model.CategoryGroup{
			Category: category,
			Facts:    facts,
		})
	}

	return cf
}
