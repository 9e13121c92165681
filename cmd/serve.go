package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/mj1618/axbridge/internal/config"
	"github.com/mj1618/axbridge/internal/metrics"
	"github.com/mj1618/axbridge/internal/output"
	"github.com/mj1618/axbridge/internal/server"
	"github.com/mj1618/axbridge/internal/version"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a live bridge as MCP tools",
	Long: `Start a Model Context Protocol (MCP) server around one bridge. Agents feed
Android events in with dispatch_event, read the host tree with read_tree, and
drive actions with perform_action and action_result.

Supported transports:
  stdio   Standard I/O (default)
  http    Streamable HTTP transport

With a --config file, edits to [bridge] full_focus_mode and [logging] level
take effect without a restart.

Examples:
  axbridge serve
  axbridge serve --transport http --port 8765
  axbridge serve --config axbridge.toml --metrics-addr 127.0.0.1:9464`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "", "Transport: stdio, http (overrides config)")
	serveCmd.Flags().Int("port", 0, "HTTP port for the http transport (overrides config)")
	serveCmd.Flags().String("metrics-addr", "", "Serve prometheus /metrics on this address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := *appConfig
	if t, _ := cmd.Flags().GetString("transport"); t != "" {
		cfg.Serve.Transport = t
	}
	if p, _ := cmd.Flags().GetInt("port"); p != 0 {
		cfg.Serve.Port = p
	}
	if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := currentLogger()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Bridge
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.New(reg)
		stopMetrics := serveMetrics(cfg.Metrics.Addr, reg, logger)
		defer stopMetrics()
	}

	srv := server.New(server.Options{
		FullFocusMode: cfg.Bridge.FullFocusMode,
		TreeID:        cfg.Bridge.TreeID,
		Format:        output.OutputFormat,
		Version:       version.Version,
		Logger:        logger,
		Metrics:       m,
	})

	if configPath != "" {
		loader, err := watchConfig(ctx, srv, logger)
		if err != nil {
			return err
		}
		defer loader.Close()
	}

	logger.Info("serving bridge", zap.String("tree", srv.TreeID()), zap.String("transport", cfg.Serve.Transport))
	return srv.Serve(ctx, cfg.Serve.Transport, cfg.Serve.Port)
}

// serveMetrics exposes reg on addr and returns a function that stops it.
func serveMetrics(addr string, reg *prometheus.Registry, logger *zap.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	hs := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()
	logger.Info("serving metrics", zap.String("addr", addr))
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = hs.Shutdown(ctx)
	}
}

// watchConfig hot-reloads the config file, applying focus mode and log level.
// Flag overrides are not reapplied on reload.
func watchConfig(ctx context.Context, srv *server.Server, logger *zap.Logger) (*config.Loader, error) {
	loader := config.NewLoader(configPath)
	if _, err := loader.Load(); err != nil {
		return nil, err
	}
	loader.OnChange(func(_, next *config.Config) {
		logger.Info("config reloaded", zap.String("path", configPath))
		srv.SetFullFocusMode(next.Bridge.FullFocusMode)
		if appLogger != nil {
			if err := appLogger.Apply(next.Logging); err != nil {
				logger.Warn("ignoring log level", zap.Error(err))
			}
		}
	})
	if err := loader.Watch(); err != nil {
		_ = loader.Close()
		return nil, err
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case err := <-loader.Errors():
				logger.Warn("config reload failed", zap.Error(err))
			}
		}
	}()
	return loader, nil
}
