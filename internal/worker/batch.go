package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lexiscan/lexiscan/internal/ingest"
	"github.com/lexiscan/lexiscan/internal/model"
)

// Assessor runs one transcript through the analysis pipeline.
type Assessor interface {
	Assess(ctx context.Context, raw string) (*model.RiskAssessment, error)
}

// AssessJob reads one transcript file and assesses it.
type AssessJob struct {
	Path     string
	Assessor Assessor
	Limiter  *Limiter // Optional; throttles dispatch against the parser endpoint
	Endpoint string
}

// Execute runs the job.
func (j *AssessJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil && j.Endpoint != "" {
		if err := j.Limiter.Wait(ctx, j.Endpoint); err != nil {
			return &AssessResult{Path: j.Path, Error: err}
		}
	}

	raw, err := ingest.ReadFile(j.Path)
	if err != nil {
		return &AssessResult{Path: j.Path, Error: err}
	}

	assessment, err := j.Assessor.Assess(ctx, raw)
	return &AssessResult{Path: j.Path, Assessment: assessment, Error: err}
}

// AssessResult is the outcome of one transcript assessment.
type AssessResult struct {
	Path       string
	Assessment *model.RiskAssessment // May be non-nil even when Error is set
	Error      error
}

// GetError returns the job error.
func (r *AssessResult) GetError() error {
	return r.Error
}

// BatchProcessor assesses many transcript files concurrently.
type BatchProcessor struct {
	assessor    Assessor
	concurrency int
	limiter     *Limiter
	endpoint    string
}

// NewBatchProcessor creates a batch processor. limiter and endpoint
// may be zero values when no dispatch throttling is wanted.
func NewBatchProcessor(assessor Assessor, concurrency int, limiter *Limiter, endpoint string) *BatchProcessor {
	return &BatchProcessor{
		assessor:    assessor,
		concurrency: concurrency,
		limiter:     limiter,
		endpoint:    endpoint,
	}
}

// ProcessPaths assesses the given transcript files concurrently.
// Results arrive in completion order; callers needing stable output
// sort by path.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*AssessResult {
	if len(paths) == 0 {
		return []*AssessResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&AssessJob{
			Path:     path,
			Assessor: b.assessor,
			Limiter:  b.limiter,
			Endpoint: b.endpoint,
		})
	}

	results := pool.Wait()

	out := make([]*AssessResult, len(results))
	for i, r := range results {
		out[i] = r.(*AssessResult)
	}
	return out
}

// ProcessFile reads transcript paths from a list file and assesses
// them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*AssessResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read path list: %w", err)
	}
	return b.ProcessPaths(ctx, paths), nil
}

// ProcessDir assesses every supported transcript file in a directory.
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string) ([]*AssessResult, error) {
	paths, err := CollectTranscripts(dir)
	if err != nil {
		return nil, err
	}
	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads transcript paths from a file, one per line.
// Blank lines and #-comments are skipped; duplicates are dropped.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return paths, nil
}

// transcriptExts are the file extensions treated as transcripts when
// scanning a directory.
var transcriptExts = map[string]bool{
	".txt":  true,
	".html": true,
	".htm":  true,
}

// CollectTranscripts returns the transcript files directly inside dir,
// sorted for deterministic ordering.
func CollectTranscripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if transcriptExts[strings.ToLower(filepath.Ext(e.Name()))] {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
