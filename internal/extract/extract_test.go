package extract

import (
	"math"
	"testing"

	"github.com/lexiscan/lexiscan/internal/model"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func metric(t *testing.T, fs *model.FeatureSet, key string) float64 {
	t.Helper()
	v, ok := fs.Get(key)
	if !ok {
		t.Fatalf("Expected metric %s to be present", key)
	}
	return v
}

// catSentence is "the cat saw the cat" with "the" as a stop word.
func catSentence() model.Sentence {
	return model.Sentence{
		Tokens: []model.Token{
			{Text: "the", Lemma: "the", POS: "DET", Dep: "det", Head: 1, IsStop: true},
			{Text: "cat", Lemma: "cat", POS: model.POSNoun, Dep: "nsubj", Head: 2},
			{Text: "saw", Lemma: "see", POS: model.POSVerb, Dep: "ROOT", Head: 2},
			{Text: "the", Lemma: "the", POS: "DET", Dep: "det", Head: 4, IsStop: true},
			{Text: "cat", Lemma: "cat", POS: model.POSNoun, Dep: "dobj", Head: 2},
		},
		Root: 2,
	}
}

func TestExtractLexical(t *testing.T) {
	fs := model.NewFeatureSet()
	extractLexical(fs, []model.Sentence{catSentence()})

	// 5 word tokens, 3 distinct forms
	if got := metric(t, fs, model.MetricTypeTokenRatio); !almostEqual(got, 0.6) {
		t.Errorf("TTR: expected 0.6, got %v", got)
	}
	if got := metric(t, fs, model.MetricVocabularySize); got != 3 {
		t.Errorf("Vocabulary size: expected 3, got %v", got)
	}
	// Content words: cat, saw, cat; only "saw" occurs once
	if got := metric(t, fs, model.MetricHapaxRatio); !almostEqual(got, 1.0/3.0) {
		t.Errorf("Hapax ratio: expected 1/3, got %v", got)
	}
	// Content lemmas: cat, see, cat -> 2 distinct of 3
	if got := metric(t, fs, model.MetricUniqueLemmaRatio); !almostEqual(got, 2.0/3.0) {
		t.Errorf("Unique lemma ratio: expected 2/3, got %v", got)
	}
}

func TestExtractLexical_Empty(t *testing.T) {
	fs := model.NewFeatureSet()
	extractLexical(fs, nil)
	if fs.Len() != 0 {
		t.Errorf("Expected no metrics for empty input, got %d", fs.Len())
	}
}

func TestExtractSyntactic(t *testing.T) {
	simple := model.Sentence{
		Tokens: []model.Token{
			{Text: "the", POS: "DET", Dep: "det", Head: 1, IsStop: true},
			{Text: "dog", POS: model.POSNoun, Dep: "nsubj", Head: 2},
			{Text: "ran", POS: model.POSVerb, Dep: "ROOT", Head: 2},
			{Text: ".", POS: "PUNCT", Dep: "punct", Head: 2, IsPunct: true},
		},
		Root: 2,
	}
	embedded := model.Sentence{
		Tokens: []model.Token{
			{Text: "he", POS: model.POSPronoun, Dep: "nsubj", Head: 1},
			{Text: "said", POS: model.POSVerb, Dep: "ROOT", Head: 1},
			{Text: "that", POS: "SCONJ", Dep: "mark", Head: 4},
			{Text: "she", POS: model.POSPronoun, Dep: "nsubj", Head: 4},
			{Text: "left", POS: model.POSVerb, Dep: "ccomp", Head: 1},
		},
		Root: 1,
	}

	fs := model.NewFeatureSet()
	extractSyntactic(fs, []model.Sentence{simple, embedded})

	if got := metric(t, fs, model.MetricMeanSentenceLength); !almostEqual(got, 4) {
		t.Errorf("Mean sentence length: expected 4, got %v", got)
	}
	// 9 chars in sentence one, 17 in sentence two, 8 words
	if got := metric(t, fs, model.MetricMeanWordLength); !almostEqual(got, 26.0/8.0) {
		t.Errorf("Mean word length: expected 3.25, got %v", got)
	}
	// Both trees have two edges on their longest path
	if got := metric(t, fs, model.MetricMeanTreeDepth); !almostEqual(got, 2) {
		t.Errorf("Mean tree depth: expected 2, got %v", got)
	}
	if got := metric(t, fs, model.MetricMaxTreeDepth); got != 2 {
		t.Errorf("Max tree depth: expected 2, got %v", got)
	}
	// ROOT in each sentence plus one ccomp
	if got := metric(t, fs, model.MetricClausesPerSentence); !almostEqual(got, 1.5) {
		t.Errorf("Clauses per sentence: expected 1.5, got %v", got)
	}
	if got := metric(t, fs, model.MetricComplexRatio); !almostEqual(got, 0.5) {
		t.Errorf("Complex ratio: expected 0.5, got %v", got)
	}
	// Lengths 3 and 5: sample variance 2
	if got := metric(t, fs, model.MetricComplexityVariance); !almostEqual(got, 2) {
		t.Errorf("Complexity variance: expected 2, got %v", got)
	}
}

func TestExtractSyntactic_RelativeClauseIsNotAnAnchor(t *testing.T) {
	// "the man who left smiled": relcl is not in the clause-anchor set,
	// so the only clause is ROOT and the sentence is not complex.
	relative := model.Sentence{
		Tokens: []model.Token{
			{Text: "the", POS: "DET", Dep: "det", Head: 1, IsStop: true},
			{Text: "man", POS: model.POSNoun, Dep: "nsubj", Head: 4},
			{Text: "who", POS: model.POSPronoun, Dep: "nsubj", Head: 3},
			{Text: "left", POS: model.POSVerb, Dep: "relcl", Head: 1},
			{Text: "smiled", POS: model.POSVerb, Dep: "ROOT", Head: 4},
		},
		Root: 4,
	}

	fs := model.NewFeatureSet()
	extractSyntactic(fs, []model.Sentence{relative})

	if got := metric(t, fs, model.MetricClausesPerSentence); !almostEqual(got, 1) {
		t.Errorf("Clauses per sentence: expected 1, got %v", got)
	}
	if got := metric(t, fs, model.MetricComplexRatio); got != 0 {
		t.Errorf("Complex ratio: expected 0, got %v", got)
	}
}

func TestExtractSyntactic_SingleSentenceNoVariance(t *testing.T) {
	fs := model.NewFeatureSet()
	extractSyntactic(fs, []model.Sentence{catSentence()})
	if _, ok := fs.Get(model.MetricComplexityVariance); ok {
		t.Error("Expected no variance metric for a single sentence")
	}
}

func TestExtractFluency(t *testing.T) {
	s := model.Sentence{
		Tokens: []model.Token{
			{Text: "I", POS: model.POSPronoun, Dep: "nsubj", Head: 3},
			{Text: "um", POS: "INTJ", Dep: "intj", Head: 3},
			{Text: "I", POS: model.POSPronoun, Dep: "nsubj", Head: 3},
			{Text: "went", POS: model.POSVerb, Dep: "ROOT", Head: 3},
			{Text: "went", POS: model.POSVerb, Dep: "conj", Head: 3},
			{Text: "to", POS: "ADP", Dep: "prep", Head: 4},
			{Text: "the", POS: "DET", Dep: "det", Head: 7, IsStop: true},
			{Text: "store", POS: model.POSNoun, Dep: "pobj", Head: 5},
		},
		Root: 3,
	}

	fs := model.NewFeatureSet()
	extractFluency(fs, []model.Sentence{s}, "I um I went went to the store")

	// 8 words, one filler
	if got := metric(t, fs, model.MetricFillerRatio); !almostEqual(got, 0.125) {
		t.Errorf("Filler ratio: expected 0.125, got %v", got)
	}
	// One immediate repeat: went went
	if got := metric(t, fs, model.MetricRepetitionRatio); !almostEqual(got, 0.125) {
		t.Errorf("Repetition ratio: expected 0.125, got %v", got)
	}
	// One revision: "I um I"
	if got := metric(t, fs, model.MetricRevisionRatio); !almostEqual(got, 0.125) {
		t.Errorf("Revision ratio: expected 0.125, got %v", got)
	}
	if got := metric(t, fs, model.MetricHesitationScore); !almostEqual(got, 0.125) {
		t.Errorf("Hesitation score: expected 0.125, got %v", got)
	}
}

func TestExtractFluency_Phrases(t *testing.T) {
	s := model.Sentence{
		Tokens: []model.Token{
			{Text: "it", POS: model.POSPronoun, Dep: "nsubj", Head: 2},
			{Text: "was", POS: "AUX", Dep: "cop", Head: 2},
			{Text: "you", POS: model.POSPronoun, Dep: "npadvmod", Head: 2},
			{Text: "know", POS: model.POSVerb, Dep: "parataxis", Head: 2},
			{Text: "good", POS: model.POSAdjective, Dep: "ROOT", Head: 4},
		},
		Root: 4,
	}

	fs := model.NewFeatureSet()
	extractFluency(fs, []model.Sentence{s}, "it was you know good")

	// "you know" counts as one filler among 5 words
	if got := metric(t, fs, model.MetricFillerRatio); !almostEqual(got, 0.2) {
		t.Errorf("Filler ratio: expected 0.2, got %v", got)
	}
}

func TestExtractPOS(t *testing.T) {
	s := model.Sentence{
		Tokens: []model.Token{
			{Text: "Mary", POS: model.POSProperN, Dep: "nsubj", Head: 2},
			{Text: "quickly", POS: model.POSAdverb, Dep: "advmod", Head: 2},
			{Text: "ate", POS: model.POSVerb, Dep: "ROOT", Head: 2},
			{Text: "fresh", POS: model.POSAdjective, Dep: "amod", Head: 4},
			{Text: "bread", POS: model.POSNoun, Dep: "dobj", Head: 2},
			{Text: ".", POS: "PUNCT", Dep: "punct", Head: 2, IsPunct: true},
		},
		Root: 2,
	}

	fs := model.NewFeatureSet()
	extractPOS(fs, []model.Sentence{s})

	// Proper nouns count as nouns: 2 of 5 words
	if got := metric(t, fs, model.MetricNounRatio); !almostEqual(got, 0.4) {
		t.Errorf("Noun ratio: expected 0.4, got %v", got)
	}
	if got := metric(t, fs, model.MetricVerbRatio); !almostEqual(got, 0.2) {
		t.Errorf("Verb ratio: expected 0.2, got %v", got)
	}
	if got := metric(t, fs, model.MetricAdjectiveRatio); !almostEqual(got, 0.2) {
		t.Errorf("Adjective ratio: expected 0.2, got %v", got)
	}
	if got := metric(t, fs, model.MetricAdverbRatio); !almostEqual(got, 0.2) {
		t.Errorf("Adverb ratio: expected 0.2, got %v", got)
	}
	if got := metric(t, fs, model.MetricPronounRatio); !almostEqual(got, 0) {
		t.Errorf("Pronoun ratio: expected 0, got %v", got)
	}
}

func TestExtractRepetition(t *testing.T) {
	fs := model.NewFeatureSet()
	extractRepetition(fs, []model.Sentence{catSentence()})

	// Content lemmas cat:2 see:1 -> 1 of 2 distinct repeated
	if got := metric(t, fs, model.MetricWordRepetition); !almostEqual(got, 0.5) {
		t.Errorf("Word repetition: expected 0.5, got %v", got)
	}
	// Bigrams: "the cat" x2, "cat saw", "saw the" -> 1 of 3 repeated
	if got := metric(t, fs, model.MetricBigramRepetition); !almostEqual(got, 1.0/3.0) {
		t.Errorf("Bigram repetition: expected 1/3, got %v", got)
	}
	if got := metric(t, fs, model.MetricTrigramRepetition); !almostEqual(got, 0) {
		t.Errorf("Trigram repetition: expected 0, got %v", got)
	}
	// Structural repetition needs two sentences
	if got := metric(t, fs, model.MetricStructRepetition); !almostEqual(got, 0) {
		t.Errorf("Structure repetition: expected 0, got %v", got)
	}
	want := 0.4*0.5 + 0.3*(1.0/3.0)
	if got := metric(t, fs, model.MetricCombinedRepetition); !almostEqual(got, want) {
		t.Errorf("Combined repetition: expected %v, got %v", want, got)
	}
}

func TestExtractRepetition_StructuralSignatures(t *testing.T) {
	a := catSentence()
	b := catSentence() // Identical POS signature
	c := model.Sentence{
		Tokens: []model.Token{
			{Text: "go", POS: model.POSVerb, Dep: "ROOT", Head: 0},
		},
		Root: 0,
	}

	fs := model.NewFeatureSet()
	extractRepetition(fs, []model.Sentence{a, b, c})

	// Two distinct signatures, one repeated
	if got := metric(t, fs, model.MetricStructRepetition); !almostEqual(got, 0.5) {
		t.Errorf("Structure repetition: expected 0.5, got %v", got)
	}
}

func TestExtractor_Extract(t *testing.T) {
	e := New(nil)
	text := "the cat saw the cat"
	fs := e.Extract([]model.Sentence{catSentence()}, text)

	if fs.SentenceCount != 1 {
		t.Errorf("Expected 1 sentence, got %d", fs.SentenceCount)
	}
	if fs.TokenCount != 5 || fs.WordCount != 5 {
		t.Errorf("Expected 5 tokens and 5 words, got %d/%d", fs.TokenCount, fs.WordCount)
	}
	if fs.ProcessedLength != len([]rune(text)) {
		t.Errorf("Expected processed length %d, got %d", len([]rune(text)), fs.ProcessedLength)
	}
	if fs.Len() == 0 {
		t.Error("Expected extracted metrics")
	}
}

func TestExtractor_Extract_Empty(t *testing.T) {
	e := New(nil)
	fs := e.Extract(nil, "")
	if fs.Len() != 0 {
		t.Errorf("Expected no metrics for empty transcript, got %d", fs.Len())
	}
}
