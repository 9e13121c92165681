package cmd

import (
	"os"

	"github.com/mj1618/axbridge/internal/config"
	"github.com/mj1618/axbridge/internal/logging"
	"github.com/mj1618/axbridge/internal/output"
	"github.com/mj1618/axbridge/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "axbridge",
	Short: "Bridge Android accessibility snapshots into a host accessibility tree",
	Long: `axbridge turns Android accessibility events, each carrying a snapshot of the
task's windows and nodes, into incremental host accessibility tree updates.

Recorded event streams can be replayed and inspected offline, and a live bridge
can be served to agents as MCP tools.`,
	SilenceUsage: true,
}

// Process-wide state set up by the root command before any subcommand runs.
var (
	configPath string
	appConfig  = config.DefaultConfig()
	appLogger  *logging.Logger
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version.String()
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to a TOML config file")
	pf.String("format", "", "Output format: yaml, json")
	pf.Bool("pretty", false, "Pretty-print JSON")
	pf.Bool("full-focus", false, "Use full focus mode (overrides config and recordings)")
	pf.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.PersistentPreRunE = setup
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if appLogger != nil {
			_ = appLogger.Sync()
		}
	}
}

// setup loads config, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	pf := rootCmd.PersistentFlags()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if pf.Changed("full-focus") {
		cfg.Bridge.FullFocusMode, _ = pf.GetBool("full-focus")
	}
	if lvl, _ := pf.GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	format, _ := pf.GetString("format")
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	output.OutputFormat = f
	output.PrettyOutput, _ = pf.GetBool("pretty")

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	appConfig, appLogger = cfg, logger
	logger.Debug("configured", zap.String("config", configPath), zap.Bool("full_focus", cfg.Bridge.FullFocusMode))
	return nil
}

// currentLogger returns the process logger, or a no-op one before setup.
func currentLogger() *zap.Logger {
	if appLogger == nil {
		return zap.NewNop()
	}
	return appLogger.Logger
}
