package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lexiscan/lexiscan/internal/model"
)

// RenderJSON renders an assessment as indented JSON. Map keys are
// sorted by the encoder, so output is byte-stable for identical input.
func RenderJSON(a *model.RiskAssessment) ([]byte, error) {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render json: %w", err)
	}
	return append(data, '\n'), nil
}

// RenderMarkdown renders an assessment as a Markdown report.
func RenderMarkdown(a *model.RiskAssessment) []byte {
	var b strings.Builder

	b.WriteString("# Cognitive Risk Screening Report\n\n")
	fmt.Fprintf(&b, "- **Assessment ID**: %s\n", a.Meta.ID)
	fmt.Fprintf(&b, "- **Date**: %s\n", a.Meta.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "- **Scoring config**: %s\n\n", a.Meta.ConfigVersion)

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "| Overall Score | Risk Level | Confidence |\n")
	fmt.Fprintf(&b, "|---|---|---|\n")
	fmt.Fprintf(&b, "| %.3f | %s | %.2f |\n\n", a.OverallScore, a.RiskLevel, a.Confidence)

	if len(a.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range a.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}

	if len(a.Categories) > 0 {
		b.WriteString("## Category Scores\n\n")
		b.WriteString("| Category | Score | Weight |\n|---|---|---|\n")
		for _, c := range a.Categories {
			fmt.Fprintf(&b, "| %s | %.3f | %.2f |\n", c.Name, c.Score, c.Weight)
		}
		b.WriteString("\n")

		for _, c := range a.Categories {
			if len(c.Factors) == 0 {
				continue
			}
			fmt.Fprintf(&b, "### %s\n\n", c.Name)
			fmt.Fprintf(&b, "%s\n\n", c.Description)
			b.WriteString("| Factor | Raw | Sub-Risk | Weight | Impact | Note |\n|---|---|---|---|---|---|\n")
			for _, f := range c.Factors {
				fmt.Fprintf(&b, "| %s | %.3f | %.3f | %+.2f | %+.3f | %s |\n",
					f.Name, f.RawValue, f.SubRisk, f.Weight, f.Impact, f.Description)
			}
			b.WriteString("\n")
		}
	}

	if len(a.Domains) > 0 {
		b.WriteString("## Cognitive Domains\n\n")
		b.WriteString("| Domain | Score |\n|---|---|\n")
		for _, d := range a.Domains {
			fmt.Fprintf(&b, "| %s | %.3f |\n", strings.ReplaceAll(d.Domain, "_", " "), d.Score)
		}
		b.WriteString("\n")
	}

	if len(a.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		for _, r := range a.Recommendations {
			fmt.Fprintf(&b, "- %s\n", r)
		}
		b.WriteString("\n")
	}

	if a.Explanation != "" {
		b.WriteString("## Explanation\n\n")
		b.WriteString(a.Explanation)
		b.WriteString("\n")
	}

	if a.Narrative != "" {
		b.WriteString("\n## Narrative Summary\n\n")
		b.WriteString("*Generated by a language model after scoring; it has no influence on any score.*\n\n")
		b.WriteString(a.Narrative)
		b.WriteString("\n")
	}

	return []byte(b.String())
}

// Summary renders a short terminal summary of an assessment.
func Summary(a *model.RiskAssessment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Risk level:  %s\n", a.RiskLevel)
	fmt.Fprintf(&b, "Score:       %.3f\n", a.OverallScore)
	fmt.Fprintf(&b, "Confidence:  %.2f\n", a.Confidence)
	for _, c := range a.Categories {
		fmt.Fprintf(&b, "  %-30s %.3f\n", c.Name, c.Score)
	}
	return b.String()
}
