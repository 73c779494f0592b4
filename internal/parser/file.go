package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lexiscan/lexiscan/internal/model"
)

// Document is an offline, pre-parsed transcript: the preprocessed text
// together with the sentences a parser service produced for it. It
// lets assessments run with no parser service available rather than
// re-parsing on every invocation.
type Document struct {
	Text      string           `json:"text"`
	Sentences []model.Sentence `json:"sentences"`
}

// ReadDocument loads a pre-parsed transcript from a JSON file.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", path, err)
	}
	return &doc, nil
}

// Static is a Parser that always returns a fixed set of sentences,
// used for pre-parsed documents and in tests.
type Static struct {
	Sentences []model.Sentence
	Err       error
}

// Parse returns the fixed sentences regardless of input text.
func (s *Static) Parse(ctx context.Context, text string) ([]model.Sentence, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Sentences, nil
}

// Ping reports the fixed error, if any.
func (s *Static) Ping(ctx context.Context) error { return s.Err }
