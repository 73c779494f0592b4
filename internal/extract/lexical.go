package extract

import (
	"strings"

	"github.com/lexiscan/lexiscan/internal/model"
)

// extractLexical computes vocabulary-diversity metrics. The
// type-token ratio and vocabulary size use all word tokens; the hapax
// and lemma ratios use content words only, so function-word churn does
// not mask vocabulary shrinkage.
func extractLexical(fs *model.FeatureSet, sentences []model.Sentence) {
	var words, content []string
	var lemmas []string
	for _, s := range sentences {
		for _, t := range s.Words() {
			words = append(words, strings.ToLower(t.Text))
		}
		for _, t := range s.ContentWords() {
			content = append(content, strings.ToLower(t.Text))
			lemma := strings.ToLower(t.Lemma)
			if lemma == "" {
				lemma = strings.ToLower(t.Text)
			}
			lemmas = append(lemmas, lemma)
		}
	}

	if len(words) > 0 {
		unique := distinct(words)
		fs.Set(model.MetricTypeTokenRatio, float64(unique)/float64(len(words)))
		fs.Set(model.MetricVocabularySize, float64(unique))
	}

	if len(content) > 0 {
		counts := make(map[string]int, len(content))
		for _, w := range content {
			counts[w]++
		}
		hapax := 0
		for _, c := range counts {
			if c == 1 {
				hapax++
			}
		}
		fs.Set(model.MetricHapaxRatio, float64(hapax)/float64(len(content)))
	}

	if len(lemmas) > 0 {
		fs.Set(model.MetricUniqueLemmaRatio, float64(distinct(lemmas))/float64(len(lemmas)))
	}
}

func distinct(items []string) int {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		seen[it] = struct{}{}
	}
	return len(seen)
}
