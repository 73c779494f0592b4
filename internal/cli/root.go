package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lexiscan/lexiscan/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "lexiscan",
	Short: "LexiScan - Linguistic screening signals from speech transcripts (non-diagnostic)",
	Long: `LexiScan extracts linguistic features from speech transcripts and scores
them against population norms to surface patterns associated with
cognitive decline.

It does not diagnose any condition.

LexiScan measures lexical diversity, syntactic complexity, fluency,
part-of-speech distribution and repetition, explains every score it
produces, and flags where a clinical follow-up may be worthwhile.

LexiScan is a screen, not a clinician.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for LexiScan.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("lexiscan v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.lexiscan/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.lexiscan")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match LEXISCAN_*
	viper.SetEnvPrefix("LEXISCAN")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig builds the runtime configuration from defaults overlaid
// with whatever the config file and environment provide. CLI flags are
// applied on top by each command.
func loadConfig() model.Config {
	cfg := model.DefaultConfig()

	if viper.IsSet("parser_url") {
		cfg.ParserURL = viper.GetString("parser_url")
	}
	if viper.IsSet("parser_timeout") {
		cfg.ParserTimeout = viper.GetDuration("parser_timeout")
	}
	if viper.IsSet("parser_retries") {
		cfg.ParserRetries = viper.GetInt("parser_retries")
	}
	if viper.IsSet("rate_limit") {
		cfg.RateLimit = viper.GetFloat64("rate_limit")
	}
	if viper.IsSet("rate_burst") {
		cfg.RateBurst = viper.GetInt("rate_burst")
	}
	if viper.IsSet("proxy") {
		cfg.Proxy = viper.GetString("proxy")
	}
	if viper.IsSet("model_config") {
		cfg.ModelConfigPath = viper.GetString("model_config")
	}
	if viper.IsSet("cache_dir") {
		cfg.CacheDir = viper.GetString("cache_dir")
	}
	if viper.IsSet("cache_ttl") {
		cfg.CacheTTL = viper.GetDuration("cache_ttl")
	}
	if viper.IsSet("no_cache") {
		cfg.NoCache = viper.GetBool("no_cache")
	}
	if viper.IsSet("format") {
		cfg.Format = viper.GetString("format")
	}
	if viper.IsSet("output_dir") {
		cfg.OutputDir = viper.GetString("output_dir")
	}
	if viper.IsSet("include_features") {
		cfg.IncludeFeatures = viper.GetBool("include_features")
	}
	if viper.IsSet("workers") {
		cfg.Workers = viper.GetInt("workers")
	}
	if viper.IsSet("llm_provider") {
		cfg.LLMProvider = viper.GetString("llm_provider")
	}
	if viper.IsSet("llm_model") {
		cfg.LLMModel = viper.GetString("llm_model")
	}
	if viper.IsSet("ollama_url") {
		cfg.OllamaURL = viper.GetString("ollama_url")
	}
	cfg.Verbose = verbose

	return cfg
}

// defaultCacheDir returns the on-disk cache location when none is
// configured. Empty string means memory-only caching.
func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lexiscan", "cache")
}

// resolveAPIKey pulls the provider API key from the environment.
// Keys are never read from the config file.
func resolveAPIKey(provider string) (string, error) {
	switch provider {
	case "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return "", fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		return key, nil
	case "anthropic", "claude":
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			return "", fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
		return key, nil
	case "ollama":
		// Ollama doesn't need an API key
		return "", nil
	default:
		return "", fmt.Errorf("unknown LLM provider: %s", provider)
	}
}

// parseTimeoutFor bounds a single analysis run. Batch runs set their
// own overall deadline on top of this.
const defaultAnalyzeTimeout = 2 * time.Minute
