// Package mcpserver assembles the display backend, grid store, and tool
// service into an MCP server over stdio or HTTP.
package mcpserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	mcp_golang "github.com/metoro-io/mcp-golang"
	mcphttp "github.com/metoro-io/mcp-golang/transport/http"
	"github.com/metoro-io/mcp-golang/transport/stdio"
	"go.uber.org/zap"

	config "github.com/uioperator/uictl/config"
	display "github.com/uioperator/uictl/internal/display"
	grid "github.com/uioperator/uictl/internal/grid"
	logger "github.com/uioperator/uictl/internal/logger"
	screen "github.com/uioperator/uictl/internal/screen"
	tools "github.com/uioperator/uictl/internal/tools"
)

// Server hosts the uictl tool set over an MCP transport.
type Server struct {
	cfg     *config.Config
	ctrl    display.Controller
	store   *grid.Store
	buffer  *screen.Buffer
	service *tools.Service
}

// New wires up a server from configuration: detects (or selects) the
// display backend, seeds the grid store, and builds the tool service.
func New(cfg *config.Config) (*Server, error) {
	provider, err := selectProvider(cfg.Display.Backend)
	if err != nil {
		return nil, err
	}
	info := provider.Info()
	logger.Info("Using display backend", "backend", info.Name)

	ctrl, err := provider.Controller(cfg.Display.Name)
	if err != nil {
		return nil, fmt.Errorf("connect to %s display: %w", info.Name, err)
	}

	store, err := newStore(cfg, ctrl)
	if err != nil {
		_ = ctrl.Close()
		return nil, err
	}

	var buffer *screen.Buffer
	if cfg.Screenshot.BufferSize > 0 {
		buffer, err = screen.NewBuffer(cfg.Screenshot.BufferSize, filepath.Join(os.TempDir(), "uictl"))
		if err != nil {
			_ = ctrl.Close()
			return nil, fmt.Errorf("create screenshot buffer: %w", err)
		}
	}

	return &Server{
		cfg:     cfg,
		ctrl:    ctrl,
		store:   store,
		buffer:  buffer,
		service: tools.NewService(cfg, store, ctrl, buffer),
	}, nil
}

// Serve runs the MCP server until the context is cancelled or the
// transport fails.
func (s *Server) Serve(ctx context.Context) error {
	var server *mcp_golang.Server

	switch s.cfg.Server.Transport {
	case "", "stdio":
		server = mcp_golang.NewServer(stdio.NewStdioServerTransport())
	case "http":
		transport := mcphttp.NewHTTPTransport(s.cfg.Server.Path)
		transport.WithAddr(s.cfg.Server.Addr())
		server = mcp_golang.NewServer(transport)
	default:
		return fmt.Errorf("unknown transport %q: expected stdio or http", s.cfg.Server.Transport)
	}

	if err := s.service.Register(server); err != nil {
		return fmt.Errorf("register tools: %w", err)
	}

	ctx = logger.With(ctx, zap.String("transport", s.cfg.Server.Transport))
	logger.L(ctx).Info("MCP server starting", zap.Int("tools", len(s.service.ToolNames())))

	if s.cfg.Server.Transport == "http" {
		// The HTTP transport blocks inside Serve.
		return server.Serve()
	}

	if err := server.Serve(); err != nil {
		return err
	}
	<-ctx.Done()
	logger.L(ctx).Info("MCP server stopping")
	return nil
}

// Close releases the display connection and screenshot temp files.
func (s *Server) Close() error {
	if s.buffer != nil {
		if err := s.buffer.Cleanup(); err != nil {
			logger.Warn("Failed to clean up screenshot buffer", "error", err)
		}
	}
	return s.ctrl.Close()
}

// Service exposes the tool service, used by CLI commands that invoke
// tools directly.
func (s *Server) Service() *tools.Service {
	return s.service
}

func selectProvider(backend string) (display.Provider, error) {
	if backend == "" {
		provider, err := display.Detect()
		if err != nil {
			return nil, fmt.Errorf("detect display server: %w", err)
		}
		return provider, nil
	}

	for _, p := range display.Providers() {
		if p.Info().Name == backend {
			return p, nil
		}
	}
	return nil, fmt.Errorf("unknown display backend %q", backend)
}

// newStore builds the grid store, pinned to fixed bounds when configured
// and otherwise following the primary display.
func newStore(cfg *config.Config, ctrl display.Controller) (*grid.Store, error) {
	var bounds grid.BoundsProvider
	if b := cfg.Grid.Bounds; b != nil {
		fixed := grid.Rectangle{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
		bounds = grid.BoundsProviderFunc(func() (grid.Rectangle, error) {
			return fixed, nil
		})
	} else {
		bounds = grid.BoundsProviderFunc(func() (grid.Rectangle, error) {
			return ctrl.PrimaryBounds(context.Background())
		})
	}

	store, err := grid.NewStore(bounds)
	if err != nil {
		return nil, fmt.Errorf("initialize grid: %w", err)
	}

	scheme, err := grid.ParseScheme(cfg.Grid.Scheme)
	if err != nil {
		return nil, fmt.Errorf("grid scheme: %w", err)
	}
	if _, err := store.Configure(cfg.Grid.Rows, cfg.Grid.Columns, scheme); err != nil {
		return nil, fmt.Errorf("apply grid configuration: %w", err)
	}
	return store, nil
}
