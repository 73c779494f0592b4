package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
)

// Polarity states whether higher raw values of a metric indicate
// better or worse cognitive function.
type Polarity string

const (
	HigherIsBetter Polarity = "higher_is_better"
	LowerIsBetter  Polarity = "lower_is_better"
)

// NormalizationParams describe the expected population distribution of
// one metric. Values are clamped to [Min,Max], rescaled linearly, and
// oriented so 1.0 always means most risk-associated.
type NormalizationParams struct {
	Mean     float64  `json:"mean"`
	Std      float64  `json:"std" validate:"gt=0"`
	Min      float64  `json:"min"`
	Max      float64  `json:"max"`
	Polarity Polarity `json:"polarity" validate:"oneof=higher_is_better lower_is_better"`
}

// DomainWeight maps one normalized metric into a cognitive domain.
type DomainWeight struct {
	Metric string  `json:"metric" validate:"required"`
	Weight float64 `json:"weight" validate:"gt=0"`
}

// Thresholds bucket the overall score into risk levels.
type Thresholds struct {
	Low      float64 `json:"low" validate:"gt=0,lt=1"`
	Moderate float64 `json:"moderate" validate:"gt=0,lt=1"`
}

// ModelConfig is the complete scoring configuration. It is immutable
// once loaded; live reloads swap in a fresh copy via ConfigStore.
type ModelConfig struct {
	Version string `json:"version" validate:"required"`

	// FeatureWeights are signed per-metric weights, keyed by qualified
	// metric name. Negative weights mark risk-indicating sub-scores;
	// positive weights pull the category score down as the sub-score
	// rises.
	FeatureWeights map[string]float64 `json:"feature_weights" validate:"required,min=1"`

	// CategoryWeights combine category scores into the overall score,
	// keyed by category name. They must sum to 1.
	CategoryWeights map[string]float64 `json:"category_weights" validate:"required,min=1"`

	Thresholds Thresholds `json:"thresholds"`

	// DomainMappings assign normalized metrics to cognitive domains.
	DomainMappings map[string][]DomainWeight `json:"domain_mappings" validate:"required,min=1,dive,min=1"`

	// Normalization holds per-metric population parameters, keyed by
	// qualified metric name.
	Normalization map[string]NormalizationParams `json:"normalization" validate:"required,min=1"`
}

// DefaultModelConfig returns the built-in scoring configuration.
func DefaultModelConfig() *ModelConfig {
	return &ModelConfig{
		Version: "default-v1",
		FeatureWeights: map[string]float64{
			MetricTypeTokenRatio:     -0.25,
			MetricHapaxRatio:         -0.10,
			MetricUniqueLemmaRatio:   -0.10,
			MetricVocabularySize:     -0.20,
			MetricMeanSentenceLength: -0.10,
			MetricMeanWordLength:     -0.05,
			MetricMeanTreeDepth:      -0.10,
			MetricComplexRatio:       -0.15,
			MetricHesitationScore:    0.30,
			MetricRepetitionRatio:    0.25,
			MetricRevisionRatio:      0.20,
			MetricNounRatio:          -0.10,
			MetricVerbRatio:          -0.05,
			MetricAdjectiveRatio:     -0.05,
			MetricAdverbRatio:        0.00,
			MetricPronounRatio:       -0.15,
			MetricCombinedRepetition: -0.15,
			MetricWordRepetition:     -0.10,
			MetricComplexityVariance: -0.10,
		},
		CategoryWeights: map[string]float64{
			CategoryLexical:    0.25,
			CategorySyntactic:  0.20,
			CategoryFluency:    0.30,
			CategoryPOS:        0.10,
			CategoryAdditional: 0.15,
		},
		Thresholds: Thresholds{Low: 0.3, Moderate: 0.6},
		DomainMappings: map[string][]DomainWeight{
			DomainLanguage: {
				{Metric: MetricTypeTokenRatio, Weight: 0.4},
				{Metric: MetricHapaxRatio, Weight: 0.3},
				{Metric: MetricComplexRatio, Weight: 0.3},
			},
			DomainMemory: {
				{Metric: MetricWordRepetition, Weight: 0.3},
				{Metric: MetricBigramRepetition, Weight: 0.3},
				{Metric: MetricCombinedRepetition, Weight: 0.4},
			},
			DomainExecutive: {
				{Metric: MetricMeanSentenceLength, Weight: 0.3},
				{Metric: MetricMaxTreeDepth, Weight: 0.3},
				{Metric: MetricClausesPerSentence, Weight: 0.4},
			},
			DomainAttention: {
				{Metric: MetricHesitationScore, Weight: 0.5},
				{Metric: MetricRevisionRatio, Weight: 0.5},
			},
		},
		Normalization: map[string]NormalizationParams{
			MetricTypeTokenRatio:     {Mean: 0.65, Std: 0.10, Min: 0.30, Max: 0.90, Polarity: HigherIsBetter},
			MetricHapaxRatio:         {Mean: 0.50, Std: 0.10, Min: 0.20, Max: 0.80, Polarity: HigherIsBetter},
			MetricUniqueLemmaRatio:   {Mean: 0.70, Std: 0.10, Min: 0.40, Max: 0.95, Polarity: HigherIsBetter},
			MetricVocabularySize:     {Mean: 150, Std: 50, Min: 20, Max: 300, Polarity: HigherIsBetter},
			MetricMeanSentenceLength: {Mean: 15, Std: 5, Min: 5, Max: 30, Polarity: HigherIsBetter},
			MetricMeanWordLength:     {Mean: 4.5, Std: 0.5, Min: 3, Max: 7, Polarity: HigherIsBetter},
			MetricMeanTreeDepth:      {Mean: 4, Std: 1, Min: 2, Max: 8, Polarity: HigherIsBetter},
			MetricMaxTreeDepth:       {Mean: 7, Std: 2, Min: 3, Max: 15, Polarity: HigherIsBetter},
			MetricClausesPerSentence: {Mean: 1.8, Std: 0.6, Min: 1, Max: 4, Polarity: HigherIsBetter},
			MetricComplexRatio:       {Mean: 0.50, Std: 0.15, Min: 0.10, Max: 0.90, Polarity: HigherIsBetter},
			MetricFillerRatio:        {Mean: 0.02, Std: 0.01, Min: 0, Max: 0.10, Polarity: LowerIsBetter},
			MetricRepetitionRatio:    {Mean: 0.01, Std: 0.01, Min: 0, Max: 0.08, Polarity: LowerIsBetter},
			MetricRevisionRatio:      {Mean: 0.005, Std: 0.005, Min: 0, Max: 0.05, Polarity: LowerIsBetter},
			MetricHesitationScore:    {Mean: 0.03, Std: 0.02, Min: 0, Max: 0.15, Polarity: LowerIsBetter},
			MetricNounRatio:          {Mean: 0.25, Std: 0.05, Min: 0.10, Max: 0.40, Polarity: HigherIsBetter},
			MetricVerbRatio:          {Mean: 0.15, Std: 0.04, Min: 0.05, Max: 0.30, Polarity: HigherIsBetter},
			MetricAdjectiveRatio:     {Mean: 0.08, Std: 0.03, Min: 0.01, Max: 0.20, Polarity: HigherIsBetter},
			MetricAdverbRatio:        {Mean: 0.06, Std: 0.03, Min: 0.01, Max: 0.20, Polarity: HigherIsBetter},
			MetricPronounRatio:       {Mean: 0.12, Std: 0.04, Min: 0.02, Max: 0.30, Polarity: LowerIsBetter},
			MetricWordRepetition:     {Mean: 0.02, Std: 0.015, Min: 0, Max: 0.10, Polarity: LowerIsBetter},
			MetricBigramRepetition:   {Mean: 0.01, Std: 0.01, Min: 0, Max: 0.08, Polarity: LowerIsBetter},
			MetricTrigramRepetition:  {Mean: 0.005, Std: 0.005, Min: 0, Max: 0.05, Polarity: LowerIsBetter},
			MetricStructRepetition:   {Mean: 0.05, Std: 0.03, Min: 0, Max: 0.20, Polarity: LowerIsBetter},
			MetricCombinedRepetition: {Mean: 0.02, Std: 0.015, Min: 0, Max: 0.12, Polarity: LowerIsBetter},
			MetricComplexityVariance: {Mean: 5, Std: 3, Min: 0, Max: 20, Polarity: HigherIsBetter},
		},
	}
}

var configValidate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks structural constraints eagerly so a bad config fails
// at load time instead of producing silent scoring drift at runtime.
func (c *ModelConfig) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("model config: %w", err)
	}
	if c.Thresholds.Low >= c.Thresholds.Moderate {
		return fmt.Errorf("model config: thresholds: low (%.2f) must be below moderate (%.2f)",
			c.Thresholds.Low, c.Thresholds.Moderate)
	}
	for key := range c.FeatureWeights {
		if !KnownMetric(key) {
			return fmt.Errorf("model config: feature_weights: unknown metric %q", key)
		}
	}
	sum := 0.0
	for cat, w := range c.CategoryWeights {
		if !knownCategory(cat) {
			return fmt.Errorf("model config: category_weights: unknown category %q", cat)
		}
		if w < 0 {
			return fmt.Errorf("model config: category_weights: %s is negative", cat)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 0.001 {
		return fmt.Errorf("model config: category_weights must sum to 1.0, got %.3f", sum)
	}
	for domain, weights := range c.DomainMappings {
		if !knownDomain(domain) {
			return fmt.Errorf("model config: domain_mappings: unknown domain %q", domain)
		}
		for _, dw := range weights {
			if !KnownMetric(dw.Metric) {
				return fmt.Errorf("model config: domain_mappings: %s: unknown metric %q", domain, dw.Metric)
			}
		}
	}
	for key, p := range c.Normalization {
		if !KnownMetric(key) {
			return fmt.Errorf("model config: normalization: unknown metric %q", key)
		}
		if p.Min >= p.Max {
			return fmt.Errorf("model config: normalization: %s: min (%g) must be below max (%g)", key, p.Min, p.Max)
		}
	}
	// Every category with a weight needs at least one weighted metric,
	// otherwise its score would divide by zero.
	for cat, w := range c.CategoryWeights {
		if w == 0 {
			continue
		}
		found := false
		for key, fw := range c.FeatureWeights {
			if MetricCategory(key) == cat && fw != 0 {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("model config: category %q is weighted but has no weighted metrics", cat)
		}
	}
	return nil
}

func knownCategory(name string) bool {
	for _, c := range CategoryOrder {
		if c == name {
			return true
		}
	}
	return false
}

func knownDomain(name string) bool {
	for _, d := range DomainOrder {
		if d == name {
			return true
		}
	}
	return false
}

// ParseModelConfig decodes a scoring configuration from strict JSON.
// Unknown fields are rejected rather than ignored.
func ParseModelConfig(data []byte) (*ModelConfig, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var cfg ModelConfig
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse model config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadModelConfig reads and validates a scoring configuration file.
func LoadModelConfig(path string) (*ModelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model config: %w", err)
	}
	return ParseModelConfig(data)
}

// ConfigStore holds the active scoring configuration and supports
// atomic replacement, so long-running batch processes can pick up a
// new version without a restart and without tearing mid-assessment.
type ConfigStore struct {
	current atomic.Pointer[ModelConfig]
}

// NewConfigStore returns a store seeded with the given config.
func NewConfigStore(cfg *ModelConfig) *ConfigStore {
	s := &ConfigStore{}
	s.current.Store(cfg)
	return s
}

// Current returns the active configuration.
func (s *ConfigStore) Current() *ModelConfig {
	return s.current.Load()
}

// Reload loads, validates and atomically swaps in a new configuration.
// On any error the previous configuration stays active.
func (s *ConfigStore) Reload(path string) (*ModelConfig, error) {
	cfg, err := LoadModelConfig(path)
	if err != nil {
		return nil, err
	}
	s.current.Store(cfg)
	return cfg, nil
}
