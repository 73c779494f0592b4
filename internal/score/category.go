package score

import (
	"math"

	"github.com/lexiscan/lexiscan/internal/model"
)

// categoryNames are display names for the scored categories.
var categoryNames = map[string]string{
	model.CategoryLexical:    "Lexical Diversity",
	model.CategorySyntactic:  "Syntactic Complexity",
	model.CategoryFluency:    "Fluency & Coherence",
	model.CategoryPOS:        "Word Usage Patterns",
	model.CategoryAdditional: "Additional Language Patterns",
}

// categoryDescriptions explain what each category measures.
var categoryDescriptions = map[string]string{
	model.CategoryLexical:    "Vocabulary richness and word variety",
	model.CategorySyntactic:  "Sentence structure and grammatical complexity",
	model.CategoryFluency:    "Speech flow, hesitations, and self-corrections",
	model.CategoryPOS:        "Distribution of word types in speech",
	model.CategoryAdditional: "Repetition patterns and sentence variation",
}

// adequacyNames label the derived balance factor that represents the
// preserved-function side of each category. Without it, the offset
// formula could never read below its 0.5 baseline for healthy speech.
var adequacyNames = map[string]string{
	model.CategoryLexical:    "Preserved Vocabulary Range",
	model.CategorySyntactic:  "Preserved Sentence Structure",
	model.CategoryFluency:    "Preserved Speech Flow",
	model.CategoryPOS:        "Balanced Word-Class Usage",
	model.CategoryAdditional: "Stable Expression Patterns",
}

// Combine folds contributing factors into a category score:
//
//	score = clamp(0.5 - sum(sub_risk*weight) / sum(|weight|), 0, 1)
//
// An empty or zero-weight factor list yields the neutral 0.5.
func Combine(factors []model.ContributingFactor) float64 {
	var signed, total float64
	for _, f := range factors {
		signed += f.SubRisk * f.Weight
		total += math.Abs(f.Weight)
	}
	if total == 0 {
		return 0.5
	}
	return clamp01(0.5 - signed/total)
}

// scoreCategory scores one feature category from the raw metrics.
// Metrics that are missing, unweighted, or below their sample floor
// are skipped; an all-missing category scores the neutral 0.5.
func scoreCategory(cat string, fs *model.FeatureSet, cfg *model.ModelConfig) model.RiskCategory {
	var factors []model.ContributingFactor
	var negWeight, negRisk float64

	for _, key := range model.MetricOrder {
		if model.MetricCategory(key) != cat {
			continue
		}
		weight, ok := cfg.FeatureWeights[key]
		if !ok {
			continue
		}
		rule, ok := subRiskRules[key]
		if !ok {
			continue
		}
		raw, ok := fs.Get(key)
		if !ok || !judgeable(key, fs) {
			continue
		}

		risk, desc := rule(raw)
		factors = append(factors, model.ContributingFactor{
			Name:        factorNames[key],
			Metric:      key,
			RawValue:    raw,
			SubRisk:     risk,
			Weight:      weight,
			Impact:      risk * weight,
			Description: desc,
		})
		if weight < 0 {
			w := -weight
			negWeight += w
			negRisk += risk * w
		}
	}

	// The adequacy factor mirrors the weighted risk mass of the
	// negative-weighted metrics, so a clean sample scores near 0 and a
	// fully impaired one near 1 instead of everything pinning at 0.5.
	if negWeight > 0 {
		preserved := 1 - negRisk/negWeight
		factors = append(factors, model.ContributingFactor{
			Name:        adequacyNames[cat],
			SubRisk:     preserved,
			Weight:      negWeight,
			Impact:      preserved * negWeight,
			Description: "Weighted balance of intact ability in this category",
		})
	}

	return model.RiskCategory{
		Name:        categoryNames[cat],
		Key:         cat,
		Score:       Combine(factors),
		Weight:      cfg.CategoryWeights[cat],
		Description: categoryDescriptions[cat],
		Factors:     factors,
	}
}
