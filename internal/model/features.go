package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Feature categories, in report order. The order is fixed so that
// rendered output and tie-breaking are deterministic.
const (
	CategoryLexical    = "lexical_diversity"
	CategorySyntactic  = "syntactic_complexity"
	CategoryFluency    = "fluency"
	CategoryPOS        = "pos_distribution"
	CategoryAdditional = "additional"
)

// CategoryOrder is the canonical ordering of feature categories.
var CategoryOrder = []string{
	CategoryLexical,
	CategorySyntactic,
	CategoryFluency,
	CategoryPOS,
	CategoryAdditional,
}

// Metric keys, qualified as "category.metric". Configuration files,
// normalization profiles and domain mappings all refer to metrics by
// these keys.
const (
	MetricTypeTokenRatio     = "lexical_diversity.type_token_ratio"
	MetricHapaxRatio         = "lexical_diversity.hapax_legomena_ratio"
	MetricUniqueLemmaRatio   = "lexical_diversity.unique_lemma_ratio"
	MetricVocabularySize     = "lexical_diversity.vocabulary_size"
	MetricMeanSentenceLength = "syntactic_complexity.mean_sentence_length"
	MetricMeanWordLength     = "syntactic_complexity.mean_word_length"
	MetricMeanTreeDepth      = "syntactic_complexity.mean_tree_depth"
	MetricMaxTreeDepth       = "syntactic_complexity.max_tree_depth"
	MetricClausesPerSentence = "syntactic_complexity.clauses_per_sentence"
	MetricComplexRatio       = "syntactic_complexity.complex_sentence_ratio"
	MetricFillerRatio        = "fluency.filler_ratio"
	MetricRepetitionRatio    = "fluency.repetition_ratio"
	MetricRevisionRatio      = "fluency.revision_ratio"
	MetricHesitationScore    = "fluency.hesitation_score"
	MetricNounRatio          = "pos_distribution.noun_ratio"
	MetricVerbRatio          = "pos_distribution.verb_ratio"
	MetricAdjectiveRatio     = "pos_distribution.adjective_ratio"
	MetricAdverbRatio        = "pos_distribution.adverb_ratio"
	MetricPronounRatio       = "pos_distribution.pronoun_ratio"
	MetricWordRepetition     = "additional.word_repetition_rate"
	MetricBigramRepetition   = "additional.bigram_repetition_rate"
	MetricTrigramRepetition  = "additional.trigram_repetition_rate"
	MetricStructRepetition   = "additional.structure_repetition_rate"
	MetricCombinedRepetition = "additional.combined_repetition_score"
	MetricComplexityVariance = "additional.sentence_complexity_variance"
)

// MetricOrder lists every known metric key in canonical order.
var MetricOrder = []string{
	MetricTypeTokenRatio,
	MetricHapaxRatio,
	MetricUniqueLemmaRatio,
	MetricVocabularySize,
	MetricMeanSentenceLength,
	MetricMeanWordLength,
	MetricMeanTreeDepth,
	MetricMaxTreeDepth,
	MetricClausesPerSentence,
	MetricComplexRatio,
	MetricFillerRatio,
	MetricRepetitionRatio,
	MetricRevisionRatio,
	MetricHesitationScore,
	MetricNounRatio,
	MetricVerbRatio,
	MetricAdjectiveRatio,
	MetricAdverbRatio,
	MetricPronounRatio,
	MetricWordRepetition,
	MetricBigramRepetition,
	MetricTrigramRepetition,
	MetricStructRepetition,
	MetricCombinedRepetition,
	MetricComplexityVariance,
}

// KnownMetric reports whether key names a metric the extractors can
// produce. Configuration validation rejects unknown keys.
func KnownMetric(key string) bool {
	for _, k := range MetricOrder {
		if k == key {
			return true
		}
	}
	return false
}

// MetricCategory returns the category portion of a qualified metric key.
func MetricCategory(key string) string {
	if i := strings.IndexByte(key, '.'); i > 0 {
		return key[:i]
	}
	return key
}

// FeatureSet holds the raw linguistic metrics extracted from one
// transcript, keyed by qualified metric name. A metric that could not
// be computed is simply absent; downstream consumers decide how to
// treat missing values.
type FeatureSet struct {
	values map[string]float64

	TokenCount      int // All tokens including punctuation
	WordCount       int // Non-punctuation, non-whitespace tokens
	SentenceCount   int
	ProcessedLength int // Characters of preprocessed text
}

// NewFeatureSet returns an empty FeatureSet.
func NewFeatureSet() *FeatureSet {
	return &FeatureSet{values: make(map[string]float64)}
}

// Set records a metric value under a qualified key.
func (f *FeatureSet) Set(key string, v float64) {
	f.values[key] = v
}

// Get returns the metric value and whether it was extracted.
func (f *FeatureSet) Get(key string) (float64, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Len returns the number of extracted metrics.
func (f *FeatureSet) Len() int {
	return len(f.values)
}

// Keys returns the extracted metric keys in sorted order.
func (f *FeatureSet) Keys() []string {
	keys := make([]string, 0, len(f.values))
	for k := range f.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Completeness returns the fraction of expected metrics that were
// extracted. Expected keys that are not known metric names are ignored.
func (f *FeatureSet) Completeness(expected []string) float64 {
	if len(expected) == 0 {
		return 0
	}
	present := 0
	for _, k := range expected {
		if _, ok := f.values[k]; ok {
			present++
		}
	}
	return float64(present) / float64(len(expected))
}

// featureSetJSON is the wire form of a FeatureSet: metrics grouped by
// category, plus the corpus counts.
type featureSetJSON struct {
	Metrics         map[string]map[string]float64 `json:"metrics"`
	TokenCount      int                           `json:"token_count"`
	WordCount       int                           `json:"word_count"`
	SentenceCount   int                           `json:"sentence_count"`
	ProcessedLength int                           `json:"processed_length"`
}

// MarshalJSON renders metrics grouped by category. Go sorts map keys
// during JSON encoding, so output is deterministic.
func (f *FeatureSet) MarshalJSON() ([]byte, error) {
	grouped := make(map[string]map[string]float64)
	for k, v := range f.values {
		cat := MetricCategory(k)
		name := strings.TrimPrefix(k, cat+".")
		if grouped[cat] == nil {
			grouped[cat] = make(map[string]float64)
		}
		grouped[cat][name] = v
	}
	return json.Marshal(featureSetJSON{
		Metrics:         grouped,
		TokenCount:      f.TokenCount,
		WordCount:       f.WordCount,
		SentenceCount:   f.SentenceCount,
		ProcessedLength: f.ProcessedLength,
	})
}

// UnmarshalJSON restores a FeatureSet from its wire form.
func (f *FeatureSet) UnmarshalJSON(data []byte) error {
	var wire featureSetJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	f.values = make(map[string]float64)
	for cat, metrics := range wire.Metrics {
		for name, v := range metrics {
			f.values[fmt.Sprintf("%s.%s", cat, name)] = v
		}
	}
	f.TokenCount = wire.TokenCount
	f.WordCount = wire.WordCount
	f.SentenceCount = wire.SentenceCount
	f.ProcessedLength = wire.ProcessedLength
	return nil
}
