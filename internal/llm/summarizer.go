package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lexiscan/lexiscan/internal/model"
)

// Summarizer attaches narrative summaries to scored assessments. A
// nil provider makes it a no-op, so callers need no feature flag.
type Summarizer struct {
	provider Provider
	logger   *slog.Logger
}

// NewSummarizer creates a Summarizer. provider may be nil.
func NewSummarizer(provider Provider, logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{provider: provider, logger: logger}
}

// Enabled reports whether a provider is configured.
func (s *Summarizer) Enabled() bool {
	return s.provider != nil
}

// Attach generates a narrative for the assessment and stores it in
// Narrative. Scoring is already complete when this runs; a failure
// here degrades the report, never the assessment, so errors are
// returned for logging but leave the assessment intact.
func (s *Summarizer) Attach(ctx context.Context, a *model.RiskAssessment) error {
	if s.provider == nil || a == nil {
		return nil
	}
	if a.RiskLevel == model.RiskUnknown {
		return nil // Nothing meaningful to narrate
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{Assessment: a})
	if err != nil {
		return fmt.Errorf("%s narrative: %w", s.provider.Name(), err)
	}

	a.Narrative = resp.Summary
	s.logger.Debug("narrative attached",
		"provider", s.provider.Name(),
		"model", resp.Model,
		"tokens", resp.TokensUsed)
	return nil
}
