package extract

import (
	"github.com/lexiscan/lexiscan/internal/model"
)

// extractPOS computes part-of-speech distribution ratios over word
// tokens. Proper nouns count as nouns.
func extractPOS(fs *model.FeatureSet, sentences []model.Sentence) {
	counts := make(map[string]int)
	total := 0
	for _, s := range sentences {
		for _, t := range s.Words() {
			counts[t.POS]++
			total++
		}
	}
	if total == 0 {
		return
	}

	ratio := func(n int) float64 { return float64(n) / float64(total) }
	fs.Set(model.MetricNounRatio, ratio(counts[model.POSNoun]+counts[model.POSProperN]))
	fs.Set(model.MetricVerbRatio, ratio(counts[model.POSVerb]))
	fs.Set(model.MetricAdjectiveRatio, ratio(counts[model.POSAdjective]))
	fs.Set(model.MetricAdverbRatio, ratio(counts[model.POSAdverb]))
	fs.Set(model.MetricPronounRatio, ratio(counts[model.POSPronoun]))
}
