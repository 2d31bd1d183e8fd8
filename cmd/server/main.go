package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/emmett/conlang/internal/app"
	"github.com/emmett/conlang/internal/config"
	"github.com/emmett/conlang/internal/logging"
	grpcserver "github.com/emmett/conlang/internal/server/grpc"
	httpserver "github.com/emmett/conlang/internal/server/http"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
	GitBranch = "unknown"
)

var (
	configFile  = flag.String("config", "", "Path to configuration file (default: ~/.conlangrc or /etc/conlang/config.yaml)")
	host        = flag.String("host", "127.0.0.1", "HTTP listen host")
	port        = flag.Int("port", 9000, "HTTP server port")
	grpcPort    = flag.Int("grpc-port", 0, "gRPC server port (0 disables gRPC)")
	logLevel    = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	showVersion = flag.Bool("version", false, "Show version information")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("Conlang Server v%s\n", Version)
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
	applyFlags(cfg)

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// applyFlags overrides config values with flags given on the command line
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			cfg.Server.Host = *host
		case "port":
			cfg.Server.Port = *port
		case "grpc-port":
			cfg.Server.GRPCPort = *grpcPort
		case "log-level":
			cfg.Log.Level = *logLevel
		}
	})
}

func run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	log, err := logging.Open(cfg.Log.File, level)
	if err != nil {
		return err
	}
	defer log.Close()

	fmt.Printf("Conlang Server v%s (commit: %s)\n", Version, GitCommit)

	service, err := app.NewService(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	defer service.Close()

	httpSrv := httpserver.NewServer(httpserver.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	}, service, log)

	errChan := make(chan error, 2)
	go func() {
		errChan <- httpSrv.Start()
	}()
	fmt.Printf("HTTP API listening on %s\n", httpSrv.Addr())

	var grpcSrv *grpcserver.Server
	if cfg.Server.GRPCPort > 0 {
		grpcSrv = grpcserver.NewServer(grpcserver.Config{
			Host: cfg.Server.Host,
			Port: cfg.Server.GRPCPort,
		}, service, log)
		go func() {
			errChan <- grpcSrv.Start()
		}()
		fmt.Printf("gRPC listening on port %d\n", cfg.Server.GRPCPort)
	}

	// Handle shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		fmt.Println("\nShutting down...")
	case err := <-errChan:
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if grpcSrv != nil {
		grpcSrv.Stop()
	}
	if err := httpSrv.Shutdown(ctx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
