// Package report turns a scored assessment into human-facing output:
// recommendations, an explanation, and rendered JSON or Markdown
// reports. Everything here is template-driven and deterministic.
package report

import (
	"fmt"
	"strings"

	"github.com/lexiscan/lexiscan/internal/model"
	"github.com/lexiscan/lexiscan/internal/score"
)

const (
	// categoryFloor is the minimum category score that triggers a
	// category-specific recommendation.
	categoryFloor = 0.4

	// domainFloor is the minimum domain score that triggers a
	// domain-specific recommendation.
	domainFloor = 0.5
)

var levelRecommendations = map[model.RiskLevel]string{
	model.RiskLow:      "Continue regular cognitive activities and mentally stimulating hobbies.",
	model.RiskModerate: "Regular cognitive monitoring is recommended, with repeat assessments to track change over time.",
	model.RiskHigh:     "Consider consulting a healthcare professional for a comprehensive cognitive assessment.",
	model.RiskUnknown:  "The assessment could not be completed. Consider retrying with a longer speech sample.",
}

var categoryRecommendations = map[string]string{
	model.CategoryLexical:    "Engage in vocabulary-building activities such as reading diverse materials, word games, or learning about new topics.",
	model.CategorySyntactic:  "Practice constructing longer, more complex sentences through writing exercises or structured conversation.",
	model.CategoryFluency:    "Practice verbal fluency with conversation partners, storytelling exercises, or reading aloud to improve flow and reduce hesitations.",
	model.CategoryPOS:        "Describe pictures or recent events in detail to exercise a varied mix of word types.",
	model.CategoryAdditional: "Vary daily conversation topics and practice paraphrasing to reduce repetitive expression.",
}

var domainRecommendations = map[string]string{
	model.DomainLanguage:  "Word-retrieval exercises and reading aloud may support language ability.",
	model.DomainMemory:    "Memory exercises such as recalling recent events in detail may help reduce repetition.",
	model.DomainExecutive: "Structured planning tasks and sentence-combination practice may support executive function.",
	model.DomainAttention: "Speech fluency practice and attention-focusing exercises could help reduce hesitations.",
}

var wellnessRecommendations = []string{
	"Maintain regular physical exercise, which supports overall cognitive health.",
	"Stay socially engaged through regular conversations and group activities.",
}

var levelIntros = map[model.RiskLevel]string{
	model.RiskLow:      "The linguistic analysis shows patterns generally consistent with normal cognitive function.",
	model.RiskModerate: "The linguistic analysis shows some patterns that may warrant attention.",
	model.RiskHigh:     "The linguistic analysis shows several patterns associated with cognitive changes.",
	model.RiskUnknown:  "The analysis could not be completed, so no judgement about cognitive patterns was made.",
}

const closingNote = "This screening is not a medical diagnosis; results reflect linguistic patterns only and should be interpreted by a qualified professional."

// Recommendations builds the ordered recommendation list for an
// assessment: one level-keyed entry, up to two category entries, any
// triggered domain entries, two general wellness entries, and a
// follow-up cadence.
func Recommendations(a *model.RiskAssessment) []string {
	var recs []string
	recs = append(recs, levelRecommendations[a.RiskLevel])

	if a.RiskLevel != model.RiskUnknown {
		for _, cat := range score.TopCategories(a.Categories, 2, categoryFloor) {
			if r, ok := categoryRecommendations[cat.Key]; ok {
				recs = append(recs, r)
			}
		}
		for _, domain := range model.DomainOrder {
			d := a.Domain(domain)
			if d != nil && d.Score > domainFloor {
				recs = append(recs, domainRecommendations[domain])
			}
		}
		recs = append(recs, wellnessRecommendations...)
		recs = append(recs, followUp(a.OverallScore))
	}
	return recs
}

// followUp maps the overall score to a re-assessment cadence.
func followUp(overall float64) string {
	switch {
	case overall > 0.7:
		return "Consider a follow-up assessment in 1 month."
	case overall > 0.4:
		return "Consider a follow-up assessment in 3 months."
	default:
		return "Consider a follow-up assessment in 6 months."
	}
}

// Explanation writes a short plain-language narrative: a level-keyed
// intro, the dominant factor of each of the top two categories, and a
// fixed non-diagnostic closing note.
func Explanation(a *model.RiskAssessment) string {
	var b strings.Builder
	b.WriteString(levelIntros[a.RiskLevel])

	if a.RiskLevel != model.RiskUnknown {
		for _, cat := range score.TopCategories(a.Categories, 2, categoryFloor) {
			if f := dominantFactor(cat); f != nil && f.Description != "" {
				b.WriteString(fmt.Sprintf(" %s: %s.", cat.Name, strings.TrimSuffix(f.Description, ".")))
			}
		}
	}

	b.WriteString(" ")
	b.WriteString(closingNote)
	return b.String()
}

// dominantFactor returns the metric factor with the largest absolute
// impact, ignoring derived balance factors.
func dominantFactor(cat model.RiskCategory) *model.ContributingFactor {
	var best *model.ContributingFactor
	for i := range cat.Factors {
		f := &cat.Factors[i]
		if f.Metric == "" {
			continue
		}
		if best == nil || abs(f.Impact) > abs(best.Impact) {
			best = f
		}
	}
	return best
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
