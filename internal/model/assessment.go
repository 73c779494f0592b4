package model

import "time"

// RiskLevel buckets an overall risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskUnknown  RiskLevel = "unknown" // Scoring failed; no judgement made
)

// ContributingFactor is one metric's contribution to a category score,
// kept transparent so every number in a report can be traced back to a
// raw measurement.
type ContributingFactor struct {
	Name        string  `json:"name"`                  // Human-readable factor name
	Metric      string  `json:"metric,omitempty"`      // Qualified metric key, empty for derived factors
	RawValue    float64 `json:"raw_value"`             // Extracted metric value
	SubRisk     float64 `json:"sub_risk"`              // Piecewise-mapped risk in [0,1]
	Weight      float64 `json:"weight"`                // Signed weight applied
	Impact      float64 `json:"impact"`                // SubRisk * Weight
	Description string  `json:"description,omitempty"` // Threshold-bucket description
}

// RiskCategory is one scored feature category.
type RiskCategory struct {
	Name        string               `json:"name"`        // e.g. "Lexical Diversity"
	Key         string               `json:"key"`         // e.g. "lexical_diversity"
	Score       float64              `json:"score"`       // Clamped to [0,1]
	Weight      float64              `json:"weight"`      // Contribution to overall score
	Description string               `json:"description"` // What the category measures
	Factors     []ContributingFactor `json:"factors"`
}

// DomainScore is a cognitive-domain risk score derived from normalized
// metrics, reported alongside the category scores.
type DomainScore struct {
	Domain string             `json:"domain"`           // language, memory, executive_function, attention
	Score  float64            `json:"score"`            // Clamped to [0,1]; 1.0 is most risk-associated
	Inputs map[string]float64 `json:"inputs,omitempty"` // Normalized metric values used
}

// Cognitive domains, in report order.
const (
	DomainLanguage  = "language"
	DomainMemory    = "memory"
	DomainExecutive = "executive_function"
	DomainAttention = "attention"
)

// DomainOrder is the canonical ordering of cognitive domains.
var DomainOrder = []string{DomainLanguage, DomainMemory, DomainExecutive, DomainAttention}

// AssessmentMeta carries identifying fields that sit outside the
// scored payload. Two runs over the same text differ only here.
type AssessmentMeta struct {
	ID            string    `json:"id"`             // Assessment UUID
	CreatedAt     time.Time `json:"created_at"`     // When the assessment ran
	ConfigVersion string    `json:"config_version"` // Scoring config version used
}

// RiskAssessment is the complete result of analyzing one transcript.
// Everything outside Meta and Narrative is a pure function of the
// input text and the scoring configuration.
type RiskAssessment struct {
	Meta AssessmentMeta `json:"meta"`

	OverallScore float64   `json:"overall_score"` // Weighted category combination in [0,1]
	RiskLevel    RiskLevel `json:"risk_level"`
	Confidence   float64   `json:"confidence"` // Length and completeness based, in [0,1]

	Categories []RiskCategory `json:"categories"`
	Domains    []DomainScore  `json:"domains,omitempty"`

	Features *FeatureSet `json:"features,omitempty"`

	Recommendations []string `json:"recommendations"`
	Explanation     string   `json:"explanation"`

	Warnings []string `json:"warnings,omitempty"` // Non-fatal processing notes (e.g. truncation)

	// Narrative is an optional LLM-written summary. It is generated
	// after scoring completes and never feeds back into any score.
	Narrative string `json:"narrative,omitempty"`
}

// LevelForScore buckets an overall score using the given thresholds.
func LevelForScore(score, low, moderate float64) RiskLevel {
	switch {
	case score <= low:
		return RiskLow
	case score <= moderate:
		return RiskModerate
	default:
		return RiskHigh
	}
}

// Category returns the named category, or nil if absent.
func (a *RiskAssessment) Category(key string) *RiskCategory {
	for i := range a.Categories {
		if a.Categories[i].Key == key {
			return &a.Categories[i]
		}
	}
	return nil
}

// Domain returns the named domain score, or nil if absent.
func (a *RiskAssessment) Domain(name string) *DomainScore {
	for i := range a.Domains {
		if a.Domains[i].Domain == name {
			return &a.Domains[i]
		}
	}
	return nil
}
