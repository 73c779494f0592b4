// Package extract computes raw linguistic metrics from parsed
// transcripts. Each sub-extractor covers one feature category and is a
// pure function of the parsed sentences; a metric that cannot be
// computed from the available data is left out of the result rather
// than reported as a fake zero.
package extract

import (
	"log/slog"

	"github.com/lexiscan/lexiscan/internal/model"
)

// Extractor runs all feature sub-extractors over a parsed transcript.
type Extractor struct {
	logger *slog.Logger
}

// New creates an Extractor.
func New(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Extract computes the full feature set for a transcript. text is the
// preprocessed input the sentences were parsed from; it is needed for
// multi-word filler detection and the length-based confidence factor.
func (e *Extractor) Extract(sentences []model.Sentence, text string) *model.FeatureSet {
	fs := model.NewFeatureSet()
	fs.SentenceCount = len(sentences)
	fs.ProcessedLength = len([]rune(text))
	for _, s := range sentences {
		fs.TokenCount += len(s.Tokens)
		fs.WordCount += s.WordCount()
	}

	extractLexical(fs, sentences)
	extractSyntactic(fs, sentences)
	extractFluency(fs, sentences, text)
	extractPOS(fs, sentences)
	extractRepetition(fs, sentences)

	if fs.Len() < len(model.MetricOrder) {
		e.logger.Debug("some metrics unavailable",
			"extracted", fs.Len(), "known", len(model.MetricOrder))
	}
	return fs
}
