// Package pipeline orchestrates the full assessment flow: text
// validation, parsing, feature extraction, scoring, reporting, and
// the optional LLM narrative. Stage failures are classified at this
// boundary: invalid input aborts before any work, parse failures fail
// closed, and scoring failures degrade to a terminal "unknown"
// assessment instead of fabricating a risk judgement.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lexiscan/lexiscan/internal/cache"
	"github.com/lexiscan/lexiscan/internal/extract"
	"github.com/lexiscan/lexiscan/internal/llm"
	"github.com/lexiscan/lexiscan/internal/model"
	"github.com/lexiscan/lexiscan/internal/parser"
	"github.com/lexiscan/lexiscan/internal/report"
	"github.com/lexiscan/lexiscan/internal/score"
	"github.com/lexiscan/lexiscan/internal/textproc"
)

// Pipeline runs assessments with a fixed set of components. It is
// safe for concurrent use; the scoring config is read through the
// store on every assessment so live reloads take effect between runs.
type Pipeline struct {
	parser     parser.Parser
	extractor  *extract.Extractor
	store      *model.ConfigStore
	cache      *cache.Assessments // nil when caching is disabled
	summarizer *llm.Summarizer
	logger     *slog.Logger
}

// Options configure optional pipeline components.
type Options struct {
	Cache      *cache.Assessments
	Summarizer *llm.Summarizer
	Logger     *slog.Logger
}

// New creates a Pipeline around a parser and a scoring config store.
func New(p parser.Parser, store *model.ConfigStore, opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	summarizer := opts.Summarizer
	if summarizer == nil {
		summarizer = llm.NewSummarizer(nil, logger)
	}
	return &Pipeline{
		parser:     p,
		extractor:  extract.New(logger),
		store:      store,
		cache:      opts.Cache,
		summarizer: summarizer,
		logger:     logger,
	}
}

// Assess runs the complete pipeline over one raw transcript.
//
// Error contract: a textproc.ValidationError or parser.ParseError is
// returned with a nil assessment; the input produced no judgement. A
// scoring failure returns a non-nil "unknown" assessment along with
// the underlying error, so callers can still render a well-formed
// report.
func (p *Pipeline) Assess(ctx context.Context, raw string) (*model.RiskAssessment, error) {
	cfg := p.store.Current()

	// 1. Validate and preprocess
	prep, err := textproc.Prepare(raw)
	if err != nil {
		return nil, err
	}

	// 2. Cache lookup; hits skip parsing and scoring entirely
	if p.cache != nil {
		if cached, ok := p.cache.Get(prep.Text, cfg.Version); ok {
			p.logger.Debug("cache hit", "config_version", cfg.Version)
			return cached, nil
		}
	}

	// 3. Parse into dependency trees
	sentences, err := p.parser.Parse(ctx, prep.Text)
	if err != nil {
		var perr *parser.ParseError
		if errors.As(err, &perr) {
			return nil, err
		}
		return nil, &parser.ParseError{Cause: err}
	}
	if len(sentences) == 0 {
		return nil, &parser.ParseError{Cause: fmt.Errorf("parser returned no sentences")}
	}

	// 4. Extract raw linguistic metrics
	features := p.extractor.Extract(sentences, prep.Text)

	// 5. Score
	assessment, err := score.New(cfg).Calculate(features)
	if err != nil {
		p.logger.Error("scoring failed", "error", err)
		return p.unknownAssessment(cfg, prep.Warnings), err
	}

	p.finalize(assessment, cfg, prep.Warnings)

	// 6. Optional narrative, strictly after scoring
	if p.summarizer.Enabled() {
		if err := p.summarizer.Attach(ctx, assessment); err != nil {
			p.logger.Warn("narrative generation failed", "error", err)
		}
	}

	// 7. Store in cache, keyed on preprocessed text and config version
	if p.cache != nil {
		if err := p.cache.Put(prep.Text, cfg.Version, assessment); err != nil {
			p.logger.Warn("cache write failed", "error", err)
		}
	}

	return assessment, nil
}

// finalize stamps identity fields and attaches recommendations and
// the explanation.
func (p *Pipeline) finalize(a *model.RiskAssessment, cfg *model.ModelConfig, warnings []string) {
	a.Meta = model.AssessmentMeta{
		ID:            uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		ConfigVersion: cfg.Version,
	}
	a.Warnings = warnings
	a.Recommendations = report.Recommendations(a)
	a.Explanation = report.Explanation(a)
}

// unknownAssessment builds the terminal assessment for scoring
// failures: zero score, unknown level, no category judgements.
func (p *Pipeline) unknownAssessment(cfg *model.ModelConfig, warnings []string) *model.RiskAssessment {
	a := &model.RiskAssessment{
		OverallScore: 0,
		RiskLevel:    model.RiskUnknown,
		Confidence:   0,
	}
	p.finalize(a, cfg, warnings)
	return a
}

// Ping verifies the parser backend is reachable.
func (p *Pipeline) Ping(ctx context.Context) error {
	return p.parser.Ping(ctx)
}
