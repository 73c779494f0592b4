package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/lexiscan/lexiscan/internal/report"
	"github.com/lexiscan/lexiscan/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	// noCache, llm flags and parser flags are defined in analyze.go and shared here
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir-or-list>",
	Short: "Analyze multiple transcripts in parallel",
	Long: `Batch processes multiple transcripts concurrently:
- Accept a directory of transcripts or a list file (one path per line)
- Analyze transcripts in parallel with configurable worker count
- Rate-limit parser service requests across all workers
- Generate individual JSON and Markdown reports per transcript

Example:
  lexiscan batch ./transcripts
  lexiscan batch transcripts.txt --concurrency 8 --output-dir ./reports
  lexiscan batch ./transcripts --concurrency 4 --timeout 10m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Inherit flags from analyze command
	batchCmd.Flags().StringVar(&parserURL, "parser", "", "parser service URL (default: http://localhost:8090)")
	batchCmd.Flags().DurationVar(&parserTimeout, "parser-timeout", 0, "timeout per parser request")
	batchCmd.Flags().StringVar(&proxyURL, "proxy", "", "HTTP proxy URL for outbound requests")
	batchCmd.Flags().StringVar(&modelConfigPath, "model-config", "", "scoring model config file (default: built-in norms)")
	batchCmd.Flags().BoolVar(&includeFeatures, "include-features", false, "embed raw feature values in reports")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh analysis)")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM narrative generation")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := applyAnalyzeFlags(loadConfig())
	cfg.Workers = concurrency
	cfg.OutputDir = outputDir

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  LexiScan Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input:        %s\n", input)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", cfg.OutputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	if cfg.LLMProvider != "" {
		fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", cfg.LLMProvider, cfg.LLMModel)
	}
	fmt.Fprintf(os.Stderr, "\n")

	// Create output directory
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// Create pipeline
	p, err := buildPipeline(cfg, nil)
	if err != nil {
		return err
	}

	// Create batch processor
	limiter := worker.NewLimiter(cfg.RateLimit, cfg.RateBurst)
	processor := worker.NewBatchProcessor(p, cfg.Workers, limiter, cfg.ParserURL)

	// Process transcripts
	var results []*worker.AssessResult
	info, statErr := os.Stat(input)
	if statErr == nil && info.IsDir() {
		fmt.Fprintf(os.Stderr, "⚙️  Collecting transcripts from directory...\n")
		results, err = processor.ProcessDir(ctx, input)
	} else {
		fmt.Fprintf(os.Stderr, "⚙️  Reading transcript paths from file...\n")
		results, err = processor.ProcessFile(ctx, input)
	}
	if err != nil {
		return fmt.Errorf("process input: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Loaded %d transcripts\n", len(results))
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "⚙️  Processing transcripts with %d workers...\n", cfg.Workers)
	fmt.Fprintf(os.Stderr, "\n")

	// Process results
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		successCount++

		if !cfg.IncludeFeatures {
			result.Assessment.Features = nil
		}

		// Generate output file names
		slug := sanitizeFilename(result.Path)
		jsonPath := filepath.Join(cfg.OutputDir, slug+".json")
		mdPath := filepath.Join(cfg.OutputDir, slug+".md")

		// Render reports
		data, rerr := report.RenderJSON(result.Assessment)
		if rerr != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to render JSON: %v\n", result.Path, rerr)
			continue
		}
		if werr := os.WriteFile(jsonPath, data, 0644); werr != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Path, werr)
			continue
		}
		if werr := os.WriteFile(mdPath, report.RenderMarkdown(result.Assessment), 0644); werr != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.Path, werr)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s (%s, score %.3f)\n", result.Path, result.Assessment.RiskLevel, result.Assessment.OverallScore)
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d transcripts\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", cfg.OutputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// sanitizeFilename derives a safe report name from a transcript path.
func sanitizeFilename(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "_",
	)
	base = replacer.Replace(base)
	if base == "" || base == "." {
		base = "report"
	}
	return base
}
