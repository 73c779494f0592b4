package model

import "time"

// Config holds runtime configuration for the analysis pipeline,
// assembled by the CLI from flags, environment and the config file.
type Config struct {
	// Parser service
	ParserURL     string        `yaml:"parser_url" json:"parser_url"`
	ParserTimeout time.Duration `yaml:"parser_timeout" json:"parser_timeout"`
	ParserRetries int           `yaml:"parser_retries" json:"parser_retries"`
	RateLimit     float64       `yaml:"rate_limit" json:"rate_limit"` // Requests per second to outbound services
	RateBurst     int           `yaml:"rate_burst" json:"rate_burst"`
	Proxy         string        `yaml:"proxy,omitempty" json:"proxy,omitempty"`

	// Scoring
	ModelConfigPath string `yaml:"model_config,omitempty" json:"model_config,omitempty"` // Empty means built-in defaults

	// Cache
	CacheDir string        `yaml:"cache_dir" json:"cache_dir"`
	CacheTTL time.Duration `yaml:"cache_ttl" json:"cache_ttl"`
	NoCache  bool          `yaml:"no_cache" json:"no_cache"`

	// Output
	Format          string `yaml:"format" json:"format"` // json or markdown
	OutputDir       string `yaml:"output_dir" json:"output_dir"`
	IncludeFeatures bool   `yaml:"include_features" json:"include_features"` // Embed raw metrics in reports

	// Batch
	Workers int `yaml:"workers" json:"workers"`

	// Optional LLM narrative (never affects scoring)
	LLMProvider string `yaml:"llm_provider,omitempty" json:"llm_provider,omitempty"`
	LLMModel    string `yaml:"llm_model,omitempty" json:"llm_model,omitempty"`
	LLMAPIKey   string `yaml:"-" json:"-"` // From environment only, never persisted
	OllamaURL   string `yaml:"ollama_url,omitempty" json:"ollama_url,omitempty"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// DefaultConfig returns the built-in runtime defaults.
func DefaultConfig() Config {
	return Config{
		ParserURL:     "http://localhost:8090",
		ParserTimeout: 30 * time.Second,
		ParserRetries: 3,
		RateLimit:     5,
		RateBurst:     10,
		CacheDir:      "",
		CacheTTL:      24 * time.Hour,
		Format:        "json",
		OutputDir:     "reports",
		Workers:       4,
		OllamaURL:     "http://localhost:11434",
	}
}
