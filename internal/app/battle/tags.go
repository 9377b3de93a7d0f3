// Package battle turns a committed food log into combat: tag inference,
// weakness and resistance, combo bookkeeping, multiplier stacking, damage,
// retaliation and the reward grant. One call to Resolve is one atomic tick;
// everything it applied is recorded on the entry for exact reversal.
package battle

import (
	"strings"

	"github.com/nutriquest-app/nutriquest/internal/domain"
)

// Absolute macro thresholds for normal portions.
const (
	carbHighG    = 30
	proteinHighG = 20
	fatHighG     = 20
	sugarHighG   = 15
	sodiumHighMg = 800
)

// Per-100g density thresholds, applied whenever a portion weight is known.
const (
	carbDense    = 20
	proteinDense = 12
	fatDense     = 10
	sugarDense   = 8
	sodiumDense  = 400
)

var sugarKeywords = []string{
	"cake", "candy", "chocolate", "cola", "soda", "cookie", "donut", "ice cream",
}

// InferTags derives classification tags from an entry's macros, portion
// size and name, appending to whatever tags the caller already set (a
// curated preset may arrive pre-tagged clean). Large meals are judged by
// per-100g density rather than absolute grams, so a big clean bowl is not
// punished for its size; smaller weighed items trip on whichever of the
// absolute or density thresholds comes first. High-carb + high-protein +
// clean synthesizes the balanced tag.
func InferTags(e *domain.LogEntry) {
	if e.Kind != domain.LogFood {
		return
	}
	m := e.Macros
	tags := e.Tags

	if e.Grams >= domain.LargeMealGrams && e.Grams > 0 {
		per := 100 / e.Grams
		if m.Carbs*per >= carbDense {
			tags = tags.Add(domain.TagHighCarb)
		}
		if m.Protein*per >= proteinDense {
			tags = tags.Add(domain.TagHighProtein)
		}
		if m.Fat*per >= fatDense {
			tags = tags.Add(domain.TagHighFat)
		}
		if m.Sugar*per >= sugarDense {
			tags = tags.Add(domain.TagHighSugar)
		}
		if m.SodiumMg*per >= sodiumDense {
			tags = tags.Add(domain.TagHighSodium)
		}
	} else {
		// Small items tag on absolute grams or on per-100g density when a
		// portion weight is known: a 50g candy is dense long before it
		// crosses the absolute thresholds.
		per := 0.0
		if e.Grams > 0 {
			per = 100 / e.Grams
		}
		if m.Carbs >= carbHighG || (per > 0 && m.Carbs*per >= carbDense) {
			tags = tags.Add(domain.TagHighCarb)
		}
		if m.Protein >= proteinHighG || (per > 0 && m.Protein*per >= proteinDense) {
			tags = tags.Add(domain.TagHighProtein)
		}
		if m.Fat >= fatHighG || (per > 0 && m.Fat*per >= fatDense) {
			tags = tags.Add(domain.TagHighFat)
		}
		if m.Sugar >= sugarHighG || (per > 0 && m.Sugar*per >= sugarDense) {
			tags = tags.Add(domain.TagHighSugar)
		}
		if m.SodiumMg >= sodiumHighMg || (per > 0 && m.SodiumMg*per >= sodiumDense) {
			tags = tags.Add(domain.TagHighSodium)
		}
	}

	name := strings.ToLower(e.Name)
	for _, kw := range sugarKeywords {
		if strings.Contains(name, kw) {
			tags = tags.Add(domain.TagHighSugar)
			break
		}
	}

	if e.Category == "vegetable" {
		tags = tags.Add(domain.TagVegetable)
	}

	if tags.Has(domain.TagHighCarb) && tags.Has(domain.TagHighProtein) && tags.Has(domain.TagClean) {
		tags = tags.Add(domain.TagBalanced)
	}
	e.Tags = tags
}
