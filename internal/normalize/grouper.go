package normalize

import "github.com/deckaudit/deckaudit/internal/model"

// Grouped holds facts keyed by metric category, remembering first-seen
// category order for deterministic case file assembly.
type Grouped struct {
	Order  []string
	Groups map[string][]model.ExtractedFact
}

// GroupByCategory groups facts by exact metric_category string. Pure and
// deterministic: within each group the input order (stable by slide index)
// is preserved, and every input fact lands in exactly one group.
//
// Known limitation: near-duplicate category spellings from the extractor
// ("total_savings" vs "total_savings_usd") stay separate groups. No fuzzy
// merging is attempted here.
func GroupByCategory(facts []model.ExtractedFact) Grouped {
	g := Grouped{
		Groups: make(map[string][]model.ExtractedFact),
	}

	for _, f := range facts {
		if f.MetricCategory == "" {
			continue
		}
		if _, seen := g.Groups[f.MetricCategory]; !seen {
			g.Order = append(g.Order, f.MetricCategory)
		}
		g.Groups[f.MetricCategory] = append(g.Groups[f.MetricCategory], f)
	}

	return g
}
