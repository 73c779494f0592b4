package extract

import (
	"strings"

	"github.com/lexiscan/lexiscan/internal/model"
)

// Filler terms associated with hesitation in spontaneous speech.
var (
	fillerWords = map[string]bool{
		"um": true, "uh": true, "er": true, "ah": true, "like": true,
	}
	fillerPhrases = []string{"you know", "sort of", "kind of"}
)

// hesitationBridges are tokens allowed between a word and its repeat
// in a revision pattern ("the um the").
var hesitationBridges = map[string]bool{"um": true, "uh": true}

// extractFluency computes hesitation metrics: filler usage, immediate
// word repeats, and revision patterns where a speaker restarts a word
// after a hesitation.
func extractFluency(fs *model.FeatureSet, sentences []model.Sentence, text string) {
	var words []string
	for _, s := range sentences {
		for _, t := range s.Words() {
			words = append(words, strings.ToLower(t.Text))
		}
	}
	if len(words) == 0 {
		return
	}
	total := float64(len(words))

	fillers := 0
	for _, w := range words {
		if fillerWords[w] {
			fillers++
		}
	}
	lower := strings.ToLower(text)
	for _, phrase := range fillerPhrases {
		fillers += strings.Count(lower, phrase)
	}
	fillerRatio := float64(fillers) / total

	repeats := 0
	for i := 1; i < len(words); i++ {
		if words[i] == words[i-1] {
			repeats++
		}
	}
	repetitionRatio := float64(repeats) / total

	// Revision: same word with a single punctuation or filler token in
	// between, e.g. "the, the" or "went um went".
	revisions := 0
	for _, s := range sentences {
		toks := s.Tokens
		for i := 0; i+2 < len(toks); i++ {
			if toks[i].IsPunct || toks[i].IsSpace {
				continue
			}
			mid := toks[i+1]
			bridged := mid.IsPunct || hesitationBridges[strings.ToLower(mid.Text)]
			if bridged && strings.EqualFold(toks[i].Text, toks[i+2].Text) {
				revisions++
			}
		}
	}
	revisionRatio := float64(revisions) / total

	fs.Set(model.MetricFillerRatio, fillerRatio)
	fs.Set(model.MetricRepetitionRatio, repetitionRatio)
	fs.Set(model.MetricRevisionRatio, revisionRatio)
	fs.Set(model.MetricHesitationScore, 0.3*fillerRatio+0.3*repetitionRatio+0.4*revisionRatio)
}
