package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lexiscan/lexiscan/internal/ingest"
	"github.com/lexiscan/lexiscan/internal/model"
	"github.com/lexiscan/lexiscan/internal/parser"
	"github.com/lexiscan/lexiscan/internal/report"
	"github.com/spf13/cobra"
)

var (
	parserURL       string
	parserTimeout   time.Duration
	analyzeTimeout  time.Duration
	modelConfigPath string
	outJSON         string
	outMD           string
	format          string
	noCache         bool
	includeFeatures bool
	proxyURL        string
	llmEnabled      bool
	llmProvider     string
	llmModel        string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <transcript>",
	Short: "Analyze a single transcript and generate a risk report",
	Long: `Analyze reads a speech transcript to:
- Extract lexical, syntactic, fluency and word-usage features
- Normalize each measurement against population norms
- Score five linguistic risk categories and four cognitive domains
- Generate a transparent, explainable report

Accepts plain text (.txt), HTML (.html) or a pre-parsed document
(.json with text and sentences). Pass "-" to read plain text from
stdin.

Example:
  lexiscan analyze transcript.txt
  lexiscan analyze interview.html --json report.json --md report.md
  lexiscan analyze transcript.txt --llm openai --llm-model gpt-4o-mini
  cat transcript.txt | lexiscan analyze -`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Parser flags
	analyzeCmd.Flags().StringVar(&parserURL, "parser", "", "parser service URL (default: http://localhost:8090)")
	analyzeCmd.Flags().DurationVar(&parserTimeout, "parser-timeout", 0, "timeout per parser request")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", defaultAnalyzeTimeout, "overall analysis timeout")
	analyzeCmd.Flags().StringVar(&proxyURL, "proxy", "", "HTTP proxy URL for outbound requests")

	// Scoring flags
	analyzeCmd.Flags().StringVar(&modelConfigPath, "model-config", "", "scoring model config file (default: built-in norms)")

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (default: stdout)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().StringVar(&format, "format", "", "stdout format: json or markdown")
	analyzeCmd.Flags().BoolVar(&includeFeatures, "include-features", false, "embed raw feature values in the report")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh analysis)")

	// LLM flags
	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM narrative generation")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	cfg := applyAnalyzeFlags(loadConfig())

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", path)
		fmt.Fprintf(os.Stderr, "Parser: %s\n", cfg.ParserURL)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !cfg.NoCache)
		fmt.Fprintln(os.Stderr)
	}

	text, preparsed, err := readTranscript(path)
	if err != nil {
		return err
	}

	// Pre-parsed documents skip the parser service entirely
	var parse parser.Parser
	if preparsed != nil {
		parse = &parser.Static{Sentences: preparsed}
	}

	p, err := buildPipeline(cfg, parse)
	if err != nil {
		return err
	}

	assessment, err := p.Assess(ctx, text)
	if err != nil {
		if assessment == nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
		// Scoring failed but a terminal report exists
		fmt.Fprintf(os.Stderr, "✗ Scoring incomplete: %v\n", err)
	}

	if !cfg.IncludeFeatures {
		assessment.Features = nil
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Risk level: %s (score %.3f, confidence %.2f)\n",
			assessment.RiskLevel, assessment.OverallScore, assessment.Confidence)
		if assessment.Narrative != "" {
			fmt.Fprintf(os.Stderr, "✓ Generated narrative using %s/%s\n", cfg.LLMProvider, cfg.LLMModel)
		}
		fmt.Fprintln(os.Stderr)
	}

	return writeReport(assessment, cfg)
}

// applyAnalyzeFlags layers analyze command flags over the loaded config.
func applyAnalyzeFlags(cfg model.Config) model.Config {
	if parserURL != "" {
		cfg.ParserURL = parserURL
	}
	if parserTimeout > 0 {
		cfg.ParserTimeout = parserTimeout
	}
	if proxyURL != "" {
		cfg.Proxy = proxyURL
	}
	if modelConfigPath != "" {
		cfg.ModelConfigPath = modelConfigPath
	}
	if format != "" {
		cfg.Format = format
	}
	if noCache {
		cfg.NoCache = true
	}
	if includeFeatures {
		cfg.IncludeFeatures = true
	}
	if llmEnabled {
		cfg.LLMProvider = llmProvider
		if llmModel != "" {
			cfg.LLMModel = llmModel
		}
	} else {
		cfg.LLMProvider = ""
	}
	return cfg
}

// readTranscript loads transcript text from a file or stdin. For
// pre-parsed JSON documents it also returns the parsed sentences.
func readTranscript(path string) (string, []model.Sentence, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", nil, fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil, nil
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		doc, err := parser.ReadDocument(path)
		if err != nil {
			return "", nil, fmt.Errorf("read document: %w", err)
		}
		return doc.Text, doc.Sentences, nil
	}

	text, err := ingest.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("read transcript: %w", err)
	}
	return text, nil, nil
}

// writeReport renders the assessment to the requested outputs. With no
// output paths the report goes to stdout in the configured format.
func writeReport(a *model.RiskAssessment, cfg model.Config) error {
	if outJSON == "" && outMD == "" {
		var data []byte
		switch cfg.Format {
		case "markdown", "md":
			data = report.RenderMarkdown(a)
		default:
			jsonData, err := report.RenderJSON(a)
			if err != nil {
				return fmt.Errorf("render JSON: %w", err)
			}
			data = jsonData
		}
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, report.Summary(a))
		return nil
	}

	if outJSON != "" {
		data, err := report.RenderJSON(a)
		if err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if err := os.WriteFile(outJSON, data, 0644); err != nil {
			return fmt.Errorf("write JSON report: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := os.WriteFile(outMD, report.RenderMarkdown(a), 0644); err != nil {
			return fmt.Errorf("write Markdown report: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", outMD)
		}
	}

	fmt.Fprintln(os.Stderr, report.Summary(a))
	return nil
}
