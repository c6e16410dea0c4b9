package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/c360/dxdmcp/server"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath      string
	LogLevel        string
	LogFormat       string
	DiagnosticsAddr string
	ShutdownTimeout time.Duration
	ShowVersion     bool
	ShowHelp        bool
	Validate        bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	// Define flags with environment variable fallback
	flag.StringVar(&cfg.ConfigPath, "config",
		getEnv("DXDMCP_CONFIG", ""),
		"Path to configuration file, optional (env: DXDMCP_CONFIG)")

	flag.StringVar(&cfg.ConfigPath, "c",
		getEnv("DXDMCP_CONFIG", ""),
		"Path to configuration file, optional (env: DXDMCP_CONFIG)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("DXDMCP_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: DXDMCP_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("DXDMCP_LOG_FORMAT", "json"),
		"Log format: json, text (env: DXDMCP_LOG_FORMAT)")

	flag.StringVar(&cfg.DiagnosticsAddr, "diagnostics-addr",
		getEnv("DXDMCP_DIAGNOSTICS_ADDR", ""),
		"Health/metrics listen address, empty to disable (env: DXDMCP_DIAGNOSTICS_ADDR)")

	flag.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout",
		getEnvDuration("DXDMCP_SHUTDOWN_TIMEOUT", 30*time.Second),
		"Graceful shutdown timeout (env: DXDMCP_SHUTDOWN_TIMEOUT)")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")
	flag.BoolVar(&cfg.Validate, "validate", false, "Validate configuration and exit")

	flag.Usage = func() {
		printDetailedHelp()
	}

	flag.Parse()

	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	// Skip validation for special flags
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	// Config file is optional; when given it must exist
	if cfg.ConfigPath != "" {
		if _, err := os.Stat(cfg.ConfigPath); err != nil {
			return fmt.Errorf("config file not found: %s", cfg.ConfigPath)
		}
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	validFormats := []string{"json", "text"}
	if !contains(validFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	return nil
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - MCP server for Tridion Docs Dynamic Experience Delivery

Usage: %s [options]

The server speaks the Model Context Protocol over stdin/stdout. All
logging goes to stderr. Connection settings come from a JSON config
file, environment variables, or both (environment wins).

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Environment:
  DXDMCP_ENDPOINT          GraphQL content service endpoint (required)
  DXDMCP_TOKEN_URL         OAuth2 token endpoint (required)
  DXDMCP_CLIENT_ID         OAuth2 client ID (required)
  DXDMCP_CLIENT_SECRET     OAuth2 client secret (required)
  DXDMCP_SCOPES            OAuth2 scopes, comma separated
  DXDMCP_REQUEST_TIMEOUT   Per-request timeout, e.g. 30s
  DXDMCP_DIAGNOSTICS_ADDR  Health/metrics listen address, empty to disable

Examples:
  # Run with environment configuration
  export DXDMCP_ENDPOINT=https://dxd.example.com/cd/api
  export DXDMCP_TOKEN_URL=https://dxd.example.com/token.svc
  %s

  # Run with a config file and text logs
  %s --config=/etc/dxdmcp/config.json --log-format=text

  # Validate configuration only
  %s --validate

Version: %s
`, os.Args[0], os.Args[0], os.Args[0], server.Version)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Utility function to check if slice contains string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
