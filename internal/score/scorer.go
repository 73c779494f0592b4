// Package score turns a raw feature set into a risk assessment: five
// transparent category scores, cognitive-domain scores, and a weighted
// overall score with a confidence estimate. Every number is traceable
// back to a raw metric through the contributing factors.
package score

import (
	"fmt"
	"math"
	"sort"

	"github.com/lexiscan/lexiscan/internal/model"
	"github.com/lexiscan/lexiscan/internal/normalize"
)

// confidenceLength is the processed-text length, in characters, at
// which the length factor of the confidence estimate saturates.
const confidenceLength = 500

// ComputationError reports that scoring itself failed. The pipeline
// converts it into a terminal "unknown" assessment.
type ComputationError struct {
	Stage string
	Cause error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("computation failed in %s: %v", e.Stage, e.Cause)
}

func (e *ComputationError) Unwrap() error { return e.Cause }

// Scorer computes risk assessments from feature sets using one fixed
// scoring configuration. It is stateless and safe for concurrent use.
type Scorer struct {
	cfg  *model.ModelConfig
	norm *normalize.Normalizer
}

// New creates a Scorer for the given configuration.
func New(cfg *model.ModelConfig) *Scorer {
	return &Scorer{
		cfg:  cfg,
		norm: normalize.New(cfg.Normalization),
	}
}

// Calculate scores one transcript's feature set. The returned
// assessment carries category scores, domain scores, the overall
// score, risk level and confidence; recommendations and the
// explanation are attached separately by the report layer.
func (s *Scorer) Calculate(fs *model.FeatureSet) (*model.RiskAssessment, error) {
	if fs == nil {
		return nil, &ComputationError{Stage: "scoring", Cause: fmt.Errorf("nil feature set")}
	}

	// 1. Score each category from raw metrics via threshold rules
	categories := make([]model.RiskCategory, 0, len(model.CategoryOrder))
	for _, cat := range model.CategoryOrder {
		if _, ok := s.cfg.CategoryWeights[cat]; !ok {
			continue
		}
		categories = append(categories, scoreCategory(cat, fs, s.cfg))
	}

	// 2. Combine into the overall weighted score
	var overall, weightTotal float64
	for _, c := range categories {
		overall += c.Score * c.Weight
		weightTotal += c.Weight
	}
	if weightTotal > 0 {
		overall /= weightTotal
	} else {
		overall = 0.5
	}
	overall = clamp01(overall)
	if math.IsNaN(overall) || math.IsInf(overall, 0) {
		return nil, &ComputationError{Stage: "aggregation", Cause: fmt.Errorf("overall score is not finite")}
	}

	// 3. Domain scores from normalized metrics
	domains := scoreDomains(fs, s.cfg, s.norm)

	// 4. Confidence from sample length and feature completeness
	confidence := s.confidence(fs)

	return &model.RiskAssessment{
		OverallScore: overall,
		RiskLevel:    model.LevelForScore(overall, s.cfg.Thresholds.Low, s.cfg.Thresholds.Moderate),
		Confidence:   confidence,
		Categories:   categories,
		Domains:      domains,
		Features:     fs,
	}, nil
}

// confidence blends a length factor with feature completeness:
// 0.7*min(1, length/500) + 0.3*completeness.
func (s *Scorer) confidence(fs *model.FeatureSet) float64 {
	lengthFactor := min1(float64(fs.ProcessedLength) / confidenceLength)
	completeness := fs.Completeness(s.expectedMetrics())
	return clamp01(0.7*lengthFactor + 0.3*completeness)
}

// expectedMetrics returns the weighted metric keys in sorted order.
func (s *Scorer) expectedMetrics() []string {
	keys := make([]string, 0, len(s.cfg.FeatureWeights))
	for k := range s.cfg.FeatureWeights {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TopCategories returns the n highest-scoring categories above the
// given floor, ordered by score descending with declaration order
// breaking ties.
func TopCategories(categories []model.RiskCategory, n int, floor float64) []model.RiskCategory {
	ranked := make([]model.RiskCategory, len(categories))
	copy(ranked, categories)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	var out []model.RiskCategory
	for _, c := range ranked {
		if len(out) == n {
			break
		}
		if c.Score > floor {
			out = append(out, c)
		}
	}
	return out
}
