package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/emmett/conlang/internal/config"
	"github.com/emmett/conlang/internal/logging"
)

// MCPServer is the part of the MCP server the handler drives
type MCPServer interface {
	Start(ctx context.Context) error
}

// MCPHandler handles MCP server operations
type MCPHandler struct {
	cfg        *config.Config
	configPath string
	version    string
	gitCommit  string
	log        *logging.Logger
}

// NewMCPHandler creates a new MCP handler
func NewMCPHandler(cfg *config.Config, configPath, version, gitCommit string, log *logging.Logger) *MCPHandler {
	return &MCPHandler{
		cfg:        cfg,
		configPath: configPath,
		version:    version,
		gitCommit:  gitCommit,
		log:        log,
	}
}

// ClientConfig returns the JSON an MCP client needs to launch this binary
func (h *MCPHandler) ClientConfig(execPath string) ([]byte, error) {
	type MCPServerConfig struct {
		Command string   `json:"command"`
		Args    []string `json:"args"`
	}
	type MCPClientConfig struct {
		MCPServers map[string]MCPServerConfig `json:"mcpServers"`
	}

	var args []string
	if h.configPath != "" {
		args = []string{"-config", h.configPath}
	} else {
		args = []string{}
	}

	return json.MarshalIndent(MCPClientConfig{
		MCPServers: map[string]MCPServerConfig{
			"conlang": {Command: execPath, Args: args},
		},
	}, "", "  ")
}

// Run serves MCP on stdin/stdout until a signal arrives or the client
// disconnects. newServer builds the server around the shared service.
func (h *MCPHandler) Run(newServer func(*Service) MCPServer) error {
	fmt.Fprintf(os.Stderr, "Starting MCP server...\n")
	fmt.Fprintf(os.Stderr, "Protocol: Model Context Protocol (stdio transport)\n")
	fmt.Fprintf(os.Stderr, "Version: %s (commit: %s)\n\n", h.version, h.gitCommit)

	execPath, err := os.Executable()
	if err != nil {
		execPath = "./build/conlang-mcp"
	}
	if configJSON, err := h.ClientConfig(execPath); err == nil {
		fmt.Fprintf(os.Stderr, "MCP Client Configuration:\n%s\n\n", string(configJSON))
	}

	service, err := NewService(h.cfg, h.log)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	defer service.Close()

	server := newServer(service)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "MCP server ready. Listening on stdin/stdout...\n")
	fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop.\n\n")

	if err := server.Start(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("server error: %w", err)
	}
	fmt.Fprintf(os.Stderr, "\nShutting down MCP server...\n")
	return nil
}
