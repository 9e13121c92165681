// Package server exposes a bridge as a set of MCP tools, so an agent can feed
// Android snapshots in and read the host tree back.
package server

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/axbridge/internal/automation"
	"github.com/mj1618/axbridge/internal/bridge"
	"github.com/mj1618/axbridge/internal/metrics"
	"github.com/mj1618/axbridge/internal/output"
	"go.uber.org/zap"
)

// Options configures a Server.
type Options struct {
	FullFocusMode bool
	TreeID        string
	Format        output.Format
	Version       string
	Logger        *zap.Logger
	Metrics       *metrics.Bridge
}

// Server serializes every tool call onto one bridge.
type Server struct {
	// mu guards the bridge, which is not safe for concurrent use.
	mu       sync.Mutex
	bridge   *bridge.Bridge
	recorder *automation.Recorder
	delegate *automation.ModeDelegate
	events   int

	format output.Format
	logger *zap.Logger
	mcp    *mcpserver.MCPServer
}

// New creates a server with a fresh bridge and registers its tools.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	format := opts.Format
	if format == "" {
		format = output.FormatYAML
	}
	version := opts.Version
	if version == "" {
		version = "dev"
	}

	s := &Server{
		recorder: automation.NewRecorder(logger),
		delegate: automation.NewModeDelegate(opts.FullFocusMode),
		format:   format,
		logger:   logger.Named("mcp"),
	}
	bopts := []bridge.Option{bridge.WithLogger(logger), bridge.WithMetrics(opts.Metrics)}
	if opts.TreeID != "" {
		bopts = append(bopts, bridge.WithTreeID(opts.TreeID))
	}
	s.bridge = bridge.New(s.delegate, s.recorder, bopts...)

	s.mcp = mcpserver.NewMCPServer("axbridge", version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)
	s.registerTools()
	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpserver.MCPServer { return s.mcp }

// TreeID returns the id of the served tree.
func (s *Server) TreeID() string { return s.bridge.TreeID() }

// SetFullFocusMode switches focus mode for subsequent events.
func (s *Server) SetFullFocusMode(on bool) {
	if s.delegate.UseFullFocusMode() != on {
		s.logger.Info("full focus mode changed", zap.Bool("enabled", on))
	}
	s.delegate.SetFullFocusMode(on)
}

// Serve runs the MCP server on transport until ctx is cancelled or the
// transport fails.
func (s *Server) Serve(ctx context.Context, transport string, port int) error {
	switch transport {
	case "stdio":
		s.logger.Info("serving MCP over stdio")
		return mcpserver.NewStdioServer(s.mcp).Listen(ctx, os.Stdin, os.Stdout)
	case "http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		addr := fmt.Sprintf(":%d", port)
		errc := make(chan error, 1)
		go func() { errc <- httpServer.Start(addr) }()
		s.logger.Info("serving MCP over streamable HTTP", zap.String("addr", addr))

		select {
		case err := <-errc:
			return errors.Wrap(err, "mcp http server")
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		}
	default:
		return errors.Newf("unsupported transport: %s (use stdio or http)", transport)
	}
}
