// Package llm generates optional narrative summaries of completed
// assessments. Summaries are produced strictly after scoring and are
// attached to the report only; no LLM output ever feeds back into a
// score. Prompts carry aggregate metrics and category scores, never
// transcript text, so no speech content leaves the machine unless the
// user opts into a remote provider deliberately.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/lexiscan/lexiscan/internal/model"
)

// Provider defines the interface for LLM providers.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Summarize generates a narrative summary of the assessment.
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for narrative generation.
type SummarizeRequest struct {
	// Assessment is the completed, scored assessment to narrate.
	Assessment *model.RiskAssessment

	// Prompt is an optional custom prompt (if empty, use default).
	Prompt string

	// Model is the specific model to use (provider-specific).
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// SummarizeResponse contains the generated narrative.
type SummarizeResponse struct {
	Summary    string // Generated narrative text
	Model      string // Model that produced it
	TokensUsed int
}

// Config holds LLM provider configuration.
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for hosted providers
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults. The narrative feature is
// disabled unless a provider is named explicitly.
func DefaultConfig() Config {
	return Config{
		Provider:  "",
		Model:     "",
		Timeout:   30,
		MaxTokens: 600,
	}
}

const systemPrompt = "You are writing a plain-language summary of a linguistic screening " +
	"report. The screening is not a diagnosis and you must never present it as one."

// BuildPrompt constructs the default narrative prompt from a scored
// assessment. It includes scores and factor notes only.
func BuildPrompt(a *model.RiskAssessment) string {
	var b strings.Builder

	b.WriteString(`Summarize the following linguistic screening result for a non-specialist reader.

RULES:
1. Do not diagnose, name diseases, or predict outcomes.
2. Describe only the linguistic patterns the numbers reflect.
3. Mention that results should be discussed with a professional.
4. Keep it to 4-5 sentences.

Result:
`)
	fmt.Fprintf(&b, "- Overall score: %.3f (risk level: %s, confidence %.2f)\n",
		a.OverallScore, a.RiskLevel, a.Confidence)
	for _, c := range a.Categories {
		fmt.Fprintf(&b, "- %s: %.3f", c.Name, c.Score)
		if notes := factorNotes(c); notes != "" {
			fmt.Fprintf(&b, " (%s)", notes)
		}
		b.WriteString("\n")
	}
	for _, d := range a.Domains {
		fmt.Fprintf(&b, "- Domain %s: %.3f\n", strings.ReplaceAll(d.Domain, "_", " "), d.Score)
	}
	return b.String()
}

// factorNotes joins the notable (non-zero-risk) factor descriptions of
// a category, capped to keep the prompt small.
func factorNotes(c model.RiskCategory) string {
	var notes []string
	for _, f := range c.Factors {
		if f.Metric == "" || f.SubRisk == 0 {
			continue
		}
		notes = append(notes, f.Description)
		if len(notes) == 3 {
			break
		}
	}
	return strings.Join(notes, "; ")
}
