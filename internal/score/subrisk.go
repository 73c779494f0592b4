package score

import (
	"github.com/lexiscan/lexiscan/internal/model"
)

// Sample floors below which volume-sensitive metrics are not judged.
// A single short utterance says nothing about total vocabulary size or
// sentence-to-sentence variation.
const (
	minWordsForVocabulary = 50
	minSentencesForSpread = 3
)

// subRisk maps one raw metric value to a risk contribution in [0,1]
// with a human-readable bucket description. The thresholds are hand
// specified from the clinical literature on linguistic markers of
// cognitive decline.
type subRisk func(raw float64) (risk float64, description string)

// subRiskRules maps qualified metric keys to their threshold rules.
var subRiskRules = map[string]subRisk{
	model.MetricVocabularySize: func(v float64) (float64, string) {
		risk := clamp01(1 - v/200)
		if risk > 0.5 {
			return risk, "Limited vocabulary size"
		}
		return risk, "Normal vocabulary size"
	},
	model.MetricTypeTokenRatio: func(v float64) (float64, string) {
		risk := 1 - min1(v/0.5)
		if risk > 0.5 {
			return risk, "Limited vocabulary diversity"
		}
		return risk, "Normal vocabulary diversity"
	},
	model.MetricHapaxRatio: func(v float64) (float64, string) {
		risk := 1 - min1(v/0.5)
		if risk > 0.5 {
			return risk, "Low proportion of unique words"
		}
		return risk, "Normal proportion of unique words"
	},
	model.MetricUniqueLemmaRatio: func(v float64) (float64, string) {
		risk := 1 - min1(v/0.7)
		if risk > 0.5 {
			return risk, "Narrow range of word forms"
		}
		return risk, "Normal range of word forms"
	},
	model.MetricMeanSentenceLength: func(v float64) (float64, string) {
		switch {
		case v < 5:
			return 1.0, "Very short sentences"
		case v < 10:
			return 0.5, "Short sentences"
		case v > 30:
			return 0.3, "Overly long sentences"
		default:
			return 0, "Normal sentence length"
		}
	},
	model.MetricMeanWordLength: func(v float64) (float64, string) {
		switch {
		case v < 3:
			return 0.7, "Very short words"
		case v < 4:
			return 0.3, "Short words"
		default:
			return 0, "Normal word length"
		}
	},
	model.MetricMeanTreeDepth: func(v float64) (float64, string) {
		switch {
		case v < 2:
			return 1.0, "Very simple sentence structure"
		case v < 3:
			return 0.5, "Simple sentence structure"
		default:
			return 0, "Normal sentence structure"
		}
	},
	model.MetricComplexRatio: func(v float64) (float64, string) {
		switch {
		case v < 0.1:
			return 0.8, "Few complex sentences"
		case v < 0.3:
			return 0.4, "Limited clause embedding"
		default:
			return 0, "Normal clause structure"
		}
	},
	model.MetricHesitationScore: func(v float64) (float64, string) {
		risk := min1(v * 10)
		if risk > 0.5 {
			return risk, "Frequent hesitations and fillers"
		}
		return risk, "Normal speech flow"
	},
	model.MetricRepetitionRatio: func(v float64) (float64, string) {
		risk := min1(v * 5)
		if risk > 0.5 {
			return risk, "Frequent immediate word repetitions"
		}
		return risk, "Normal repetition level"
	},
	model.MetricRevisionRatio: func(v float64) (float64, string) {
		risk := min1(v * 20)
		if risk > 0.5 {
			return risk, "Frequent self-corrections"
		}
		return risk, "Few self-corrections"
	},
	model.MetricNounRatio: func(v float64) (float64, string) {
		switch {
		case v < 0.20:
			return 0.8, "Low noun usage"
		case v < 0.25:
			return 0.4, "Reduced noun usage"
		default:
			return 0, "Normal noun usage"
		}
	},
	model.MetricVerbRatio: func(v float64) (float64, string) {
		switch {
		case v < 0.12:
			return 0.7, "Low verb usage"
		case v < 0.15:
			return 0.3, "Reduced verb usage"
		default:
			return 0, "Normal verb usage"
		}
	},
	model.MetricAdjectiveRatio: func(v float64) (float64, string) {
		if v < 0.02 {
			return 0.5, "Sparse descriptive language"
		}
		return 0, "Normal descriptive language"
	},
	model.MetricAdverbRatio: func(v float64) (float64, string) {
		return 0, "Normal adverb usage"
	},
	model.MetricPronounRatio: func(v float64) (float64, string) {
		switch {
		case v > 0.20:
			return 0.8, "Heavy pronoun reliance"
		case v > 0.15:
			return 0.4, "Elevated pronoun usage"
		default:
			return 0, "Normal pronoun usage"
		}
	},
	model.MetricCombinedRepetition: func(v float64) (float64, string) {
		risk := min1(v * 8)
		if risk > 0.5 {
			return risk, "Repetitive word and phrase patterns"
		}
		return risk, "Normal variation in expression"
	},
	model.MetricWordRepetition: func(v float64) (float64, string) {
		risk := min1(v * 10)
		if risk > 0.5 {
			return risk, "Frequently repeated words"
		}
		return risk, "Normal word variety"
	},
	model.MetricComplexityVariance: func(v float64) (float64, string) {
		switch {
		case v < 1.0:
			return 0.8, "Uniform sentence complexity"
		case v < 3.0:
			return 0.4, "Low variation in sentence complexity"
		default:
			return 0, "Normal variation in sentence complexity"
		}
	},
}

// factorNames are display names for metrics appearing as factors.
var factorNames = map[string]string{
	model.MetricVocabularySize:     "Vocabulary Size",
	model.MetricTypeTokenRatio:     "Type-Token Ratio",
	model.MetricHapaxRatio:         "Hapax Legomena Ratio",
	model.MetricUniqueLemmaRatio:   "Unique Lemma Ratio",
	model.MetricMeanSentenceLength: "Sentence Length",
	model.MetricMeanWordLength:     "Word Length",
	model.MetricMeanTreeDepth:      "Dependency Tree Depth",
	model.MetricMaxTreeDepth:       "Maximum Tree Depth",
	model.MetricClausesPerSentence: "Clauses Per Sentence",
	model.MetricComplexRatio:       "Complex Sentence Ratio",
	model.MetricFillerRatio:        "Filler Word Usage",
	model.MetricRepetitionRatio:    "Immediate Repetitions",
	model.MetricRevisionRatio:      "Self-Corrections",
	model.MetricHesitationScore:    "Hesitation Score",
	model.MetricNounRatio:          "Noun Usage",
	model.MetricVerbRatio:          "Verb Usage",
	model.MetricAdjectiveRatio:     "Adjective Usage",
	model.MetricAdverbRatio:        "Adverb Usage",
	model.MetricPronounRatio:       "Pronoun Usage",
	model.MetricWordRepetition:     "Word Repetition Rate",
	model.MetricBigramRepetition:   "Phrase Repetition Rate",
	model.MetricTrigramRepetition:  "Long Phrase Repetition Rate",
	model.MetricStructRepetition:   "Sentence Structure Repetition",
	model.MetricCombinedRepetition: "Combined Repetition Score",
	model.MetricComplexityVariance: "Sentence Complexity Variance",
}

// judgeable reports whether a volume-sensitive metric has enough
// sample behind it to be scored at all.
func judgeable(key string, fs *model.FeatureSet) bool {
	switch key {
	case model.MetricVocabularySize:
		return fs.WordCount >= minWordsForVocabulary
	case model.MetricComplexRatio, model.MetricComplexityVariance:
		return fs.SentenceCount >= minSentencesForSpread
	default:
		return true
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func min1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
