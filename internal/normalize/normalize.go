// Package normalize rescales raw linguistic metrics onto a common
// risk-oriented [0,1] scale using per-metric population parameters.
package normalize

import (
	"github.com/lexiscan/lexiscan/internal/model"
)

// Neutral is the value reported when a metric is missing or has no
// normalization profile. It is deliberately mid-scale: an absent
// measurement must never read as evidence of low risk.
const Neutral = 0.5

// Normalizer maps raw metric values to risk-oriented scores where 1.0
// always means most risk-associated, regardless of the metric's
// natural direction.
type Normalizer struct {
	params map[string]model.NormalizationParams
}

// New creates a Normalizer from a metric parameter table.
func New(params map[string]model.NormalizationParams) *Normalizer {
	return &Normalizer{params: params}
}

// Value normalizes one raw metric value. present is false when the
// metric was not extracted, in which case Neutral is returned.
func (n *Normalizer) Value(key string, raw float64, present bool) float64 {
	if !present {
		return Neutral
	}
	p, ok := n.params[key]
	if !ok || p.Max <= p.Min {
		return Neutral
	}

	v := raw
	if v < p.Min {
		v = p.Min
	}
	if v > p.Max {
		v = p.Max
	}
	scaled := (v - p.Min) / (p.Max - p.Min)

	// Orient toward risk: for metrics where higher raw values mean
	// better function, a high scaled value must read as low risk.
	if p.Polarity == model.HigherIsBetter {
		return 1 - scaled
	}
	return scaled
}

// Metric normalizes one metric straight out of a FeatureSet.
func (n *Normalizer) Metric(fs *model.FeatureSet, key string) float64 {
	if fs == nil {
		return Neutral
	}
	raw, ok := fs.Get(key)
	return n.Value(key, raw, ok)
}
