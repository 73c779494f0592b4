// Package parser turns preprocessed transcript text into dependency-
// parsed sentences. Parsing itself is delegated to an external NLP
// service; this package owns the transport, retries and error
// classification around it.
package parser

import (
	"context"
	"fmt"

	"github.com/lexiscan/lexiscan/internal/model"
)

// Parser produces parsed sentences from preprocessed text.
type Parser interface {
	// Parse returns the dependency-parsed sentences of text. An empty
	// sentence list from a non-empty input is treated as a parse
	// failure by the caller.
	Parse(ctx context.Context, text string) ([]model.Sentence, error)

	// Ping reports whether the parser backend is reachable.
	Ping(ctx context.Context) error
}

// ParseError reports that the parser backend failed or returned an
// unusable result. The pipeline fails closed on it: no assessment is
// fabricated from a partial parse.
type ParseError struct {
	StatusCode int // HTTP status, 0 for transport errors
	Cause      error
}

func (e *ParseError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("parse failed: status %d: %v", e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("parse failed: %v", e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }
