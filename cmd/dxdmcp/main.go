// Package main implements the dxdmcp entry point. dxdmcp is an MCP
// server that exposes Tridion Docs Dynamic Experience Delivery content
// (tables of contents, topics, search, recommendations) as tools over
// stdin/stdout.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/c360/dxdmcp/config"
	"github.com/c360/dxdmcp/dxd"
	"github.com/c360/dxdmcp/graphql"
	"github.com/c360/dxdmcp/metric"
	"github.com/c360/dxdmcp/server"
)

const appName = "dxdmcp"

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	// Best-effort .env load for local development
	_ = godotenv.Load()

	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, server.Version)
		return nil
	}

	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	cfg, err := config.Load(cliCfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cliCfg.DiagnosticsAddr != "" {
		cfg.Diagnostics.BindAddress = cliCfg.DiagnosticsAddr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cliCfg.Validate {
		slog.Info("Configuration is valid")
		return nil
	}

	slog.Info("Starting dxdmcp",
		"version", server.Version,
		"endpoint", cfg.Endpoint,
		"request_timeout", cfg.RequestTimeout())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	metrics := metric.New()
	client := graphql.NewClient(ctx, cfg, logger)
	svc := dxd.NewService(client, logger, metrics)

	// Diagnostics server is optional; empty bind address disables it
	var diag *server.Diagnostics
	if cfg.Diagnostics.BindAddress != "" {
		diag, err = server.NewDiagnostics(cfg.Diagnostics.BindAddress, metrics, logger)
		if err != nil {
			return fmt.Errorf("create diagnostics server: %w", err)
		}
		if err := diag.Setup(); err != nil {
			return fmt.Errorf("setup diagnostics server: %w", err)
		}

		ready := make(chan struct{})
		diagErr := make(chan error, 1)
		go func() {
			diagErr <- diag.Start(ctx, ready)
		}()

		select {
		case <-ready:
		case err := <-diagErr:
			return fmt.Errorf("start diagnostics server: %w", err)
		case <-time.After(10 * time.Second):
			return fmt.Errorf("diagnostics server did not become ready")
		}
	}

	mcpServer := server.New(svc)
	slog.Info("MCP server listening on stdio")

	serveErr := server.ServeStdio(ctx, mcpServer)

	if diag != nil {
		if err := diag.Stop(cliCfg.ShutdownTimeout); err != nil {
			slog.Error("Diagnostics shutdown failed", "error", err)
		}
	}

	if serveErr != nil && ctx.Err() == nil {
		return fmt.Errorf("serve stdio: %w", serveErr)
	}

	slog.Info("dxdmcp shutdown complete")
	return nil
}
