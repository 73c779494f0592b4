package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lexiscan/lexiscan/internal/cache"
	"github.com/lexiscan/lexiscan/internal/llm"
	"github.com/lexiscan/lexiscan/internal/logging"
	"github.com/lexiscan/lexiscan/internal/model"
	"github.com/lexiscan/lexiscan/internal/parser"
	"github.com/lexiscan/lexiscan/internal/pipeline"
)

// buildPipeline assembles the full analysis pipeline from runtime
// configuration: parser client, scoring model, cache and optional
// LLM narrative provider. A non-nil parse overrides the HTTP parser
// client, used for pre-parsed transcript documents.
func buildPipeline(cfg model.Config, parse parser.Parser) (*pipeline.Pipeline, error) {
	level := "info"
	if cfg.Verbose {
		level = "debug"
	}
	logger := logging.Setup(level, "text")

	// Scoring model: built-in norms unless a config file is given
	mc := model.DefaultModelConfig()
	if cfg.ModelConfigPath != "" {
		loaded, err := model.LoadModelConfig(cfg.ModelConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load model config: %w", err)
		}
		mc = loaded
	}
	store := model.NewConfigStore(mc)

	// Parser client
	if parse == nil {
		opts := []parser.Option{
			parser.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
		}
		if cfg.Proxy != "" {
			opts = append(opts, parser.WithProxy(cfg.Proxy))
		}
		parse = parser.NewHTTPClient(cfg.ParserURL, cfg.ParserTimeout, opts...)
	}

	popts := pipeline.Options{Logger: logger}

	// Cache: memory always, disk layer when a directory is available
	if !cfg.NoCache {
		dir := cfg.CacheDir
		if dir == "" {
			dir = defaultCacheDir()
		}
		var backing cache.Cache
		if dir != "" {
			backing = cache.NewLayered(cfg.CacheTTL, dir, cfg.CacheTTL)
		} else {
			backing = cache.NewMemory(cfg.CacheTTL, 10*time.Minute)
		}
		popts.Cache = cache.NewAssessments(backing, cfg.CacheTTL)
	}

	// Optional narrative provider
	if cfg.LLMProvider != "" {
		summarizer, err := buildSummarizer(cfg, logger)
		if err != nil {
			return nil, err
		}
		popts.Summarizer = summarizer
	}

	return pipeline.New(parse, store, popts), nil
}

func buildSummarizer(cfg model.Config, logger *slog.Logger) (*llm.Summarizer, error) {
	key, err := resolveAPIKey(cfg.LLMProvider)
	if err != nil {
		return nil, err
	}

	lcfg := llm.DefaultConfig()
	lcfg.Provider = cfg.LLMProvider
	lcfg.APIKey = key
	if cfg.LLMModel != "" {
		lcfg.Model = cfg.LLMModel
	}
	if cfg.LLMProvider == "ollama" {
		lcfg.BaseURL = cfg.OllamaURL
		if env := os.Getenv("OLLAMA_BASE_URL"); env != "" {
			lcfg.BaseURL = env
		}
	}

	provider, err := llm.NewProvider(lcfg)
	if err != nil {
		return nil, fmt.Errorf("configure LLM provider: %w", err)
	}
	return llm.NewSummarizer(provider, logger), nil
}
