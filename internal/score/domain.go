package score

import (
	"github.com/lexiscan/lexiscan/internal/model"
	"github.com/lexiscan/lexiscan/internal/normalize"
)

// scoreDomains computes cognitive-domain risk scores as weighted
// averages of normalized metrics. A missing metric contributes the
// neutral normalized value, never an implicit zero, so sparse input
// cannot read as low risk.
func scoreDomains(fs *model.FeatureSet, cfg *model.ModelConfig, norm *normalize.Normalizer) []model.DomainScore {
	var out []model.DomainScore
	for _, domain := range model.DomainOrder {
		weights, ok := cfg.DomainMappings[domain]
		if !ok || len(weights) == 0 {
			continue
		}

		inputs := make(map[string]float64, len(weights))
		var sum, total float64
		for _, dw := range weights {
			v := norm.Metric(fs, dw.Metric)
			inputs[dw.Metric] = v
			sum += v * dw.Weight
			total += dw.Weight
		}
		score := 0.5
		if total > 0 {
			score = clamp01(sum / total)
		}
		out = append(out, model.DomainScore{
			Domain: domain,
			Score:  score,
			Inputs: inputs,
		})
	}
	return out
}
