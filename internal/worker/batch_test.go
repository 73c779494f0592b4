package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/lexiscan/lexiscan/internal/model"
)

// fakeAssessor returns a canned assessment, failing on texts that
// contain "fail".
type fakeAssessor struct{}

func (fakeAssessor) Assess(ctx context.Context, raw string) (*model.RiskAssessment, error) {
	if strings.Contains(raw, "fail") {
		return nil, fmt.Errorf("assessment failed")
	}
	return &model.RiskAssessment{
		OverallScore: 0.2,
		RiskLevel:    model.RiskLow,
	}, nil
}

func writeTranscripts(t *testing.T, texts map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, text := range texts {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestBatchProcessor_ProcessDir(t *testing.T) {
	dir := writeTranscripts(t, map[string]string{
		"a.txt":    "The garden looked lovely this morning.",
		"b.txt":    "this one will fail on purpose",
		"skip.pdf": "not a transcript",
	})

	b := NewBatchProcessor(fakeAssessor{}, 2, nil, "")
	results, err := b.ProcessDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("ProcessDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	if results[0].Error != nil {
		t.Errorf("a.txt: unexpected error %v", results[0].Error)
	}
	if results[0].Assessment == nil || results[0].Assessment.RiskLevel != model.RiskLow {
		t.Errorf("a.txt: unexpected assessment %+v", results[0].Assessment)
	}
	if results[1].Error == nil {
		t.Error("b.txt: expected error")
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	dir := writeTranscripts(t, map[string]string{
		"one.txt": "A perfectly ordinary sentence for testing.",
		"two.txt": "Another perfectly ordinary sentence.",
	})

	list := filepath.Join(dir, "list.txt")
	content := strings.Join([]string{
		"# transcripts to process",
		filepath.Join(dir, "one.txt"),
		"",
		filepath.Join(dir, "two.txt"),
		filepath.Join(dir, "one.txt"), // Duplicate, dropped
	}, "\n")
	if err := os.WriteFile(list, []byte(content), 0644); err != nil {
		t.Fatalf("write list: %v", err)
	}

	b := NewBatchProcessor(fakeAssessor{}, 2, nil, "")
	results, err := b.ProcessFile(context.Background(), list)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results after dedupe, got %d", len(results))
	}
}

func TestBatchProcessor_MissingFile(t *testing.T) {
	b := NewBatchProcessor(fakeAssessor{}, 1, nil, "")
	results := b.ProcessPaths(context.Background(), []string{"/nonexistent/transcript.txt"})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Error == nil {
		t.Error("expected error for missing file")
	}
}

func TestBatchProcessor_EmptyInput(t *testing.T) {
	b := NewBatchProcessor(fakeAssessor{}, 2, nil, "")
	results := b.ProcessPaths(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestReadPathsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	content := "# comment\n/a.txt\n\n/b.txt\n/a.txt\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	paths, err := ReadPathsFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 2 || paths[0] != "/a.txt" || paths[1] != "/b.txt" {
		t.Errorf("unexpected paths: %v", paths)
	}
}

func TestCollectTranscripts(t *testing.T) {
	dir := writeTranscripts(t, map[string]string{
		"b.txt":  "text",
		"a.html": "<p>text</p>",
		"c.json": "{}",
	})

	paths, err := CollectTranscripts(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 transcripts, got %d: %v", len(paths), paths)
	}
	// Sorted: a.html before b.txt
	if filepath.Base(paths[0]) != "a.html" || filepath.Base(paths[1]) != "b.txt" {
		t.Errorf("unexpected order: %v", paths)
	}
}
