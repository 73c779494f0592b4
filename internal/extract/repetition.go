package extract

import (
	"strings"

	"github.com/lexiscan/lexiscan/internal/model"
)

// extractRepetition computes lexical and structural repetition rates.
// Word repetition works on content-word lemmas; n-gram repetition on
// the raw word sequence; structural repetition on per-sentence POS
// signatures.
func extractRepetition(fs *model.FeatureSet, sentences []model.Sentence) {
	var words []string
	lemmaCounts := make(map[string]int)
	for _, s := range sentences {
		for _, t := range s.Words() {
			words = append(words, strings.ToLower(t.Text))
		}
		for _, t := range s.ContentWords() {
			lemma := strings.ToLower(t.Lemma)
			if lemma == "" {
				lemma = strings.ToLower(t.Text)
			}
			lemmaCounts[lemma]++
		}
	}
	if len(words) == 0 {
		return
	}

	wordRate := 0.0
	if len(lemmaCounts) > 0 {
		repeated := 0
		for _, c := range lemmaCounts {
			if c > 1 {
				repeated++
			}
		}
		wordRate = float64(repeated) / float64(len(lemmaCounts))
	}

	bigramRate := ngramRepetitionRate(words, 2)
	trigramRate := ngramRepetitionRate(words, 3)

	structRate := 0.0
	if len(sentences) >= 2 {
		sigCounts := make(map[string]int, len(sentences))
		for _, s := range sentences {
			var tags []string
			for _, t := range s.Words() {
				tags = append(tags, t.POS)
			}
			sigCounts[strings.Join(tags, " ")]++
		}
		repeated := 0
		for _, c := range sigCounts {
			if c > 1 {
				repeated++
			}
		}
		structRate = float64(repeated) / float64(len(sigCounts))
	}

	combined := 0.4*wordRate + 0.3*bigramRate + 0.2*trigramRate + 0.1*structRate

	fs.Set(model.MetricWordRepetition, wordRate)
	fs.Set(model.MetricBigramRepetition, bigramRate)
	fs.Set(model.MetricTrigramRepetition, trigramRate)
	fs.Set(model.MetricStructRepetition, structRate)
	fs.Set(model.MetricCombinedRepetition, combined)
}

// ngramRepetitionRate returns the fraction of distinct n-grams that
// occur more than once.
func ngramRepetitionRate(words []string, n int) float64 {
	if len(words) < n {
		return 0
	}
	counts := make(map[string]int, len(words))
	for i := 0; i+n <= len(words); i++ {
		counts[strings.Join(words[i:i+n], " ")]++
	}
	if len(counts) == 0 {
		return 0
	}
	repeated := 0
	for _, c := range counts {
		if c > 1 {
			repeated++
		}
	}
	return float64(repeated) / float64(len(counts))
}
