package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/emmett/conlang/internal/app"
	"github.com/emmett/conlang/internal/config"
	"github.com/emmett/conlang/internal/logging"
	"github.com/emmett/conlang/internal/server/mcp"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
	GitBranch = "unknown"
)

var (
	configFile  = flag.String("config", "", "Path to configuration file (default: ~/.conlangrc or /etc/conlang/config.yaml)")
	logFile     = flag.String("log-file", "", "Write logs to this file (stdout is reserved for the protocol)")
	logLevel    = flag.String("log-level", "", "Log level: debug, info, warn, error")
	showVersion = flag.Bool("version", false, "Show version information")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("Conlang MCP v%s\n", Version)
		fmt.Printf("  Commit:  %s\n", GitCommit)
		fmt.Printf("  Branch:  %s\n", GitBranch)
		fmt.Printf("  Built:   %s\n", BuildTime)
		os.Exit(0)
	}

	cfg, err := config.LoadWithFallback(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	// Open falls back to stderr, which MCP leaves free for diagnostics
	log, err := logging.Open(cfg.Log.File, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	handler := app.NewMCPHandler(cfg, *configFile, Version, GitCommit, log)
	err = handler.Run(func(service *app.Service) app.MCPServer {
		return mcp.NewServer(mcp.Config{
			ServerName:    "conlang-mcp",
			ServerVersion: Version,
		}, service, log)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
		log.Close()
		os.Exit(1)
	}
}
