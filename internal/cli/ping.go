package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/lexiscan/lexiscan/internal/parser"
	"github.com/spf13/cobra"
)

// pingCmd represents the ping command
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the parser service is reachable",
	Long: `Ping probes the parser service health endpoint and reports whether
the service is up. Analysis requires a running parser service unless
transcripts are supplied pre-parsed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if parserURL != "" {
			cfg.ParserURL = parserURL
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client := parser.NewHTTPClient(cfg.ParserURL, 10*time.Second)
		if err := client.Ping(ctx); err != nil {
			return fmt.Errorf("parser service unreachable at %s: %w", cfg.ParserURL, err)
		}

		fmt.Printf("✓ Parser service healthy: %s\n", cfg.ParserURL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
	pingCmd.Flags().StringVar(&parserURL, "parser", "", "parser service URL (default: http://localhost:8090)")
}
