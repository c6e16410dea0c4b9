// Package config loads and validates the dxdmcp configuration. Values come
// from an optional JSON file merged with DXDMCP_* environment variables;
// the environment always wins so containerized deployments can run without
// a config file at all.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/c360/dxdmcp/errors"
)

// Config represents the complete adapter configuration
type Config struct {
	// Endpoint is the DXD content service GraphQL endpoint URL (required)
	Endpoint string `json:"endpoint"`

	// Auth configures the client-credentials token exchange for outbound calls
	Auth AuthConfig `json:"auth"`

	// RequestTimeoutStr bounds a single GraphQL request (default: "30s").
	// The adapter never retries; this is the only timeout in play.
	RequestTimeoutStr string `json:"request_timeout,omitempty"`

	// Diagnostics configures the optional HTTP endpoint for health and metrics
	Diagnostics DiagnosticsConfig `json:"diagnostics"`

	// requestTimeout is the parsed duration (internal use)
	requestTimeout time.Duration
}

// AuthConfig holds OAuth2 client-credentials settings. Token acquisition
// and refresh are handled entirely by the transport; the core never sees
// a credential.
type AuthConfig struct {
	// TokenURL is the OAuth2 token endpoint (required)
	TokenURL string `json:"token_url"`

	// ClientID identifies this adapter to the token endpoint (required)
	ClientID string `json:"client_id"`

	// ClientSecret authenticates this adapter (required, env-only in practice)
	ClientSecret string `json:"client_secret"`

	// Scopes lists the requested OAuth2 scopes (optional)
	Scopes []string `json:"scopes,omitempty"`
}

// DiagnosticsConfig configures the health/metrics HTTP server
type DiagnosticsConfig struct {
	// BindAddress is the diagnostics listen address, e.g. ":8083".
	// Empty disables the diagnostics server entirely; pure-stdio
	// deployments need no open port.
	BindAddress string `json:"bind_address,omitempty"`
}

// Load reads configuration from the given JSON file (path may be empty)
// and applies environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WrapInvalid(err, "Config", "Load", "read config file")
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.WrapInvalid(err, "Config", "Load", "parse config file")
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overlays DXDMCP_* environment variables onto the config
func (c *Config) applyEnv() {
	if v := os.Getenv("DXDMCP_ENDPOINT"); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv("DXDMCP_TOKEN_URL"); v != "" {
		c.Auth.TokenURL = v
	}
	if v := os.Getenv("DXDMCP_CLIENT_ID"); v != "" {
		c.Auth.ClientID = v
	}
	if v := os.Getenv("DXDMCP_CLIENT_SECRET"); v != "" {
		c.Auth.ClientSecret = v
	}
	if v := os.Getenv("DXDMCP_SCOPES"); v != "" {
		parts := strings.Split(v, ",")
		scopes := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				scopes = append(scopes, p)
			}
		}
		c.Auth.Scopes = scopes
	}
	if v := os.Getenv("DXDMCP_REQUEST_TIMEOUT"); v != "" {
		c.RequestTimeoutStr = v
	}
	if v := os.Getenv("DXDMCP_DIAGNOSTICS_ADDR"); v != "" {
		c.Diagnostics.BindAddress = v
	}
}

// Validate ensures the configuration is complete and applies defaults in place
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "Config", "Validate",
			"endpoint is required (DXDMCP_ENDPOINT)")
	}
	if !strings.HasPrefix(c.Endpoint, "http://") && !strings.HasPrefix(c.Endpoint, "https://") {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			fmt.Sprintf("endpoint must be an http(s) URL, got %q", c.Endpoint))
	}

	if c.Auth.TokenURL == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "Config", "Validate",
			"auth token_url is required (DXDMCP_TOKEN_URL)")
	}
	if c.Auth.ClientID == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "Config", "Validate",
			"auth client_id is required (DXDMCP_CLIENT_ID)")
	}
	if c.Auth.ClientSecret == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "Config", "Validate",
			"auth client_secret is required (DXDMCP_CLIENT_SECRET)")
	}

	if c.RequestTimeoutStr == "" {
		c.requestTimeout = 30 * time.Second
	} else {
		timeout, err := time.ParseDuration(c.RequestTimeoutStr)
		if err != nil {
			return errors.WrapInvalid(err, "Config", "Validate",
				fmt.Sprintf("invalid request_timeout format: %s", c.RequestTimeoutStr))
		}
		if timeout < 100*time.Millisecond || timeout > 5*time.Minute {
			return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
				"request_timeout must be between 100ms and 5m")
		}
		c.requestTimeout = timeout
	}

	return nil
}

// RequestTimeout returns the parsed request timeout
func (c *Config) RequestTimeout() time.Duration {
	if c.requestTimeout == 0 {
		return 30 * time.Second
	}
	return c.requestTimeout
}
