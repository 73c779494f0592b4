package parser

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadDocument(t *testing.T) {
	doc := Document{Text: "Hello there.", Sentences: sampleSentences()}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.Text != "Hello there." || len(got.Sentences) != 1 {
		t.Errorf("Unexpected document: %+v", got)
	}

	if _, err := ReadDocument(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestStatic(t *testing.T) {
	s := &Static{Sentences: sampleSentences()}
	sentences, err := s.Parse(context.Background(), "ignored")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(sentences) != 1 {
		t.Errorf("Expected 1 sentence, got %d", len(sentences))
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Expected healthy ping, got %v", err)
	}

	failing := &Static{Err: errors.New("down")}
	if _, err := failing.Parse(context.Background(), "x"); err == nil {
		t.Error("Expected fixed error from Parse")
	}
	if err := failing.Ping(context.Background()); err == nil {
		t.Error("Expected fixed error from Ping")
	}
}
