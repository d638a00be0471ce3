package mcp

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kvernstuen/vesound/internal/solver"
)

// Server wraps the MCP SDK server around the forward modeller.
type Server struct {
	server *sdk.Server
	solver solver.Solver
}

// Config holds server configuration.
type Config struct {
	Name    string // Server name (e.g., "vesound")
	Version string // Server version
}

// NewServer creates an MCP server exposing the sounding tools.
func NewServer(cfg *Config) *Server {
	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	s := &Server{
		server: mcpServer,
		solver: solver.NewLayeredSolver(),
	}
	s.registerTools()
	return s
}

// registerTools registers the sounding tools with the server.
func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "ves_forward",
		Description: "Forward-model apparent resistivity of a layered earth over a symmetric-spread sounding survey",
	}, s.handleForward)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "ves_compare",
		Description: "Forward-model two layered models over the same survey and report their pointwise agreement",
	}, s.handleCompare)
}

// Run starts the MCP server over stdio transport.
// This blocks until the client disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		cancel()
	}()

	return s.server.Run(ctx, &sdk.StdioTransport{})
}
