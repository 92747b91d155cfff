package main

import (
	"fmt"
	"os"

	"farmgenius/gateway/pkg/cli"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	output  string
)

var rootCmd = &cobra.Command{
	Use:   "farmgenius",
	Short: "Farmer Genius - static site and AI gateway for farmers",
	Long: `Farmer Genius serves the Farmer Genius website and proxies its AI features.

It provides:
  - Static file serving with single-page-app fallback
  - POST /api/chat, a farming assistant backed by an OpenAI-compatible model
  - POST /api/translate, page translation
  - Per-client rate limiting and request size limits
  - Prometheus metrics, health probes and OpenTelemetry tracing

Configuration comes from a YAML file, FARMGENIUS_* environment variables and
the PORT, HOST, TRUST_PROXY, ALLOWED_ORIGINS and OPENAI_API_KEY variables.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with a code derived from the
// returned error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "farmgenius.yaml", "config file path (optional)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "output format: text, json")
}

// formatter returns the formatter selected with --output.
func formatter() (cli.Formatter, error) {
	format, err := cli.ParseFormat(output)
	if err != nil {
		return nil, err
	}
	return cli.NewFormatter(format), nil
}
