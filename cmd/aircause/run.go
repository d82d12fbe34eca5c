package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"aircause/backend/pkg/cli"
	"aircause/backend/pkg/config"
	"aircause/backend/pkg/telemetry/logging"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the AirCause backend",
	Long: `Start the AirCause backend with the specified configuration.

The server listens on the configured address (PORT, default 3002) and answers
POST /api/chat by forwarding a prompt to the Groq chat-completions API.

Examples:
  # Start with defaults and environment
  aircause run

  # Start with a config file
  aircause run --config /etc/aircause/config.yaml

  # Override listen address
  aircause run --listen 0.0.0.0:8080

  # Validate config without starting server
  aircause run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)
	addRunFlags(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	cmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.ConfigFrom(cfg.Telemetry.Logging, os.Stdout))
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger.Slog())

	if runFlags.dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration valid")
		return nil
	}

	if cfg.Provider.APIKey == "" {
		logger.Warn("GROQ_API_KEY is not set, chat requests will be rejected by the provider")
	}

	ctx, stop := cli.SetupSignalHandler(logger.Slog())
	defer stop()

	a, err := newApp(cfg, logger, buildInfo())
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	if _, statErr := os.Stat(cfgFile); statErr == nil {
		a.watchConfig(ctx, cfgFile, runFlags.logLevel == "")
	}

	if err := a.run(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}
	return nil
}

// loadRunConfig loads .env, the optional config file and environment
// overrides, then applies command-line flags.
func loadRunConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, cli.NewConfigError("", err.Error())
	}

	if err := config.Initialize(cfgFile); err != nil {
		return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return nil, cli.NewConfigError("", err.Error())
	}

	return cfg, nil
}
