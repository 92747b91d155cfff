package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"farmgenius/gateway/pkg/cli"
	"farmgenius/gateway/pkg/config"
	"farmgenius/gateway/pkg/server"
	"farmgenius/gateway/pkg/telemetry/logging"

	"github.com/spf13/cobra"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	siteRoot      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Farmer Genius gateway",
	Long: `Start the gateway with the specified configuration.

The server serves the static site and proxies /api/chat and /api/translate.
A missing config file is fine: defaults and environment variables are used.

Examples:
  # Start with defaults
  farmgenius run

  # Start with custom config
  farmgenius run --config /etc/farmgenius/farmgenius.yaml

  # Override listen address and site root
  farmgenius run --listen 127.0.0.1:8080 --site-root ./dist

  # Validate config and wiring without starting the server
  farmgenius run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&runFlags.siteRoot, "site-root", "", "override static site root")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config and build components without serving")
}

// applyRunFlags overrides cfg with command-line flags and revalidates.
func applyRunFlags(cfg *config.Config) error {
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if runFlags.siteRoot != "" {
		cfg.Site.Root = runFlags.siteRoot
	}
	return config.Validate(cfg)
}

func runServer(cmd *cobra.Command, args []string) error {
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError(cfgFile, err)
	}
	cfg := config.GetConfig()
	if err := applyRunFlags(cfg); err != nil {
		return cli.NewConfigError(cfgFile, err)
	}

	logger, err := logging.Setup(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
	})
	if err != nil {
		return cli.NewConfigError(cfgFile, err)
	}

	ctx, stop := cli.SignalContext(cmd.Context())
	defer stop()

	a, err := buildApp(ctx, cfg, config.MustGetConfig, logger)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			logger.Error("error releasing resources", "error", err)
		}
	}()

	f, err := formatter()
	if err != nil {
		return err
	}
	banner := cli.Banner{
		Version:        Version,
		Address:        cfg.Server.ListenAddress,
		ChatConfigured: a.chat.IsConfigured(),
		ChatModel:      a.banner.chatModel,
		Translator:     a.banner.translator,
		Origins:        cfg.CORS.AllowedOrigins,
		TrustProxy:     cfg.Server.TrustProxy,
		RateLimit:      cfg.Limits.RequestsPerWindow,
		RateWindow:     cfg.Limits.Window,
		LimitStore:     a.banner.store,
		SiteRoot:       cfg.Site.Root,
	}
	if err := f.FormatTo(cmd.OutOrStdout(), banner); err != nil {
		return err
	}

	if runFlags.dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration valid (dry run, not serving)")
		return nil
	}

	if err := a.sweeper.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}
	defer a.sweeper.Stop()

	if _, err := os.Stat(cfgFile); err == nil {
		watcher := config.NewWatcher(cfgFile, logger)
		go func() {
			if err := watcher.Watch(ctx, logReloadScope(logger)); err != nil {
				logger.Warn("config watcher stopped", "error", err)
			}
		}()
	} else if !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("config file not watched", "path", cfgFile, "error", err)
	}

	srv := server.NewServer(&cfg.Server, a.handler, logger)
	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "✓ Server stopped")
	return nil
}

// logReloadScope reports which reloaded settings apply immediately.
func logReloadScope(logger *slog.Logger) func(*config.Config) {
	return func(cfg *config.Config) {
		logger.Info("reloaded settings applied",
			"allowed_origins", cfg.CORS.AllowedOrigins,
			"trust_proxy", cfg.Server.TrustProxy,
		)
		logger.Warn("other configuration changes take effect after restart")
	}
}
