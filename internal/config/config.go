package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all configuration for the dronemcp server.
// Precedence: environment variables > config file > defaults.
type Config struct {
	Backend   BackendConfig   `toml:"backend"`
	Server    ServerConfig    `toml:"server"`
	Transport TransportConfig `toml:"transport"`
	Log       LogConfig       `toml:"log"`
	Watch     ConfigWatch     `toml:"config_watch"`
}

// BackendConfig holds connection details for the drone backend API and
// the domain thresholds that gate natural-language dispatch.
type BackendConfig struct {
	URL                          string  `toml:"url"`
	TimeoutMs                    int     `toml:"timeout_ms"`
	StatusCacheTTLMs             int     `toml:"status_cache_ttl_ms"`
	NLPConfidenceThreshold       float64 `toml:"nlp_confidence_threshold"`
	DangerousConfidenceThreshold float64 `toml:"dangerous_confidence_threshold"`
	BatchDefaultMode             string  `toml:"batch_default_mode"`
}

// ServerConfig holds MCP server metadata.
type ServerConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// TransportConfig holds transport-related settings.
type TransportConfig struct {
	// Mode is "stdio" (default) or "http". serve always speaks MCP over
	// stdio; "http" adds the periodic backend health poll and starts no
	// HTTP listener.
	Mode string `toml:"mode"`
	// Port is the HTTP listen port (default: 21453). Only used when Mode is "http".
	Port string `toml:"port"`
	// Host is the HTTP listen address (default: "0.0.0.0"). Only used when Mode is "http".
	Host string `toml:"host"`
	// CORSOrigins is a comma-separated list of allowed CORS origins (default: "*").
	CORSOrigins string `toml:"cors_origins"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// ConfigWatch controls whether the config file is watched for edits.
// dronemcp never hot-swaps a running server's wiring from a file change
// (the backend client, cache TTL, and thresholds are all fixed at
// construction) — on a detected edit it only logs that a restart is
// needed to pick the new values up.
type ConfigWatch struct {
	Enabled bool `toml:"enabled"`
}

// Load creates a Config by reading from a TOML config file and environment
// variables. Precedence: environment variables > config file > defaults.
//
// Config file search order (first found wins):
//  1. Path passed via configPath parameter (from --config flag)
//  2. DRONEMCP_CONFIG environment variable
//  3. ./dronemcp.toml (current directory)
//  4. ~/.config/dronemcp/dronemcp.toml (XDG-style)
//
// All fields are optional in the config file. Environment variables always
// override file values.
func Load(configPath string) (*Config, error) {
	cfg := &Config{
		Backend: BackendConfig{
			URL:                          "http://localhost:8000",
			TimeoutMs:                    10_000,
			StatusCacheTTLMs:             30_000,
			NLPConfidenceThreshold:       0.7,
			DangerousConfidenceThreshold: 0.85,
			BatchDefaultMode:             "sequential",
		},
		Server: ServerConfig{
			Name:    "dronemcp",
			Version: "0.1.0",
		},
		Transport: TransportConfig{
			Mode:        "stdio",
			Port:        "21453",
			Host:        "0.0.0.0",
			CORSOrigins: "*",
		},
		Log: LogConfig{
			Level: "info",
		},
		Watch: ConfigWatch{
			Enabled: false,
		},
	}

	if err := cfg.loadFile(configPath); err != nil {
		return nil, err
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile finds and parses the TOML config file. If no file is found,
// this is a no-op (config file is optional).
func (c *Config) loadFile(configPath string) error {
	path := resolveConfigPath(configPath)
	if path == "" {
		return nil
	}

	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	return nil
}

// resolveConfigPath determines which config file to use. Returns empty string
// if no config file is found (config file is optional).
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}

	if p := os.Getenv("DRONEMCP_CONFIG"); p != "" {
		return p
	}

	if _, err := os.Stat("dronemcp.toml"); err == nil {
		return "dronemcp.toml"
	}

	if home, err := os.UserHomeDir(); err == nil {
		p := home + "/.config/dronemcp/dronemcp.toml"
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnv overlays environment variables on top of existing config values.
// An env var only takes effect if it is non-empty (or, for booleans and
// numbers, parses cleanly).
func (c *Config) applyEnv() {
	envOverride("DRONEMCP_BACKEND_URL", &c.Backend.URL)
	envOverrideInt("DRONEMCP_BACKEND_TIMEOUT_MS", &c.Backend.TimeoutMs)
	envOverrideInt("DRONEMCP_STATUS_CACHE_TTL_MS", &c.Backend.StatusCacheTTLMs)
	envOverrideFloat("DRONEMCP_NLP_CONFIDENCE_THRESHOLD", &c.Backend.NLPConfidenceThreshold)
	envOverrideFloat("DRONEMCP_DANGEROUS_CONFIDENCE_THRESHOLD", &c.Backend.DangerousConfidenceThreshold)
	envOverride("DRONEMCP_BATCH_DEFAULT_MODE", &c.Backend.BatchDefaultMode)

	envOverride("DRONEMCP_TRANSPORT", &c.Transport.Mode)
	envOverride("DRONEMCP_PORT", &c.Transport.Port)
	envOverride("DRONEMCP_HOST", &c.Transport.Host)
	envOverride("DRONEMCP_CORS_ORIGINS", &c.Transport.CORSOrigins)

	envOverride("DRONEMCP_LOG_LEVEL", &c.Log.Level)

	if v := os.Getenv("DRONEMCP_CONFIG_WATCH_ENABLED"); v != "" {
		c.Watch.Enabled = v == "true" || v == "1"
	}
}

// Validate checks that required fields hold values the server can
// actually run with. Unlike the teacher's config, dronemcp carries no
// auth token: talking to the drone backend is out of scope for
// credential management here.
func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return fmt.Errorf("backend.url must not be empty")
	}
	if !strings.HasPrefix(c.Backend.URL, "http://") && !strings.HasPrefix(c.Backend.URL, "https://") {
		return fmt.Errorf("backend.url must be an http(s) URL, got %q", c.Backend.URL)
	}

	switch c.Backend.BatchDefaultMode {
	case "sequential", "parallel", "optimized":
	default:
		return fmt.Errorf("invalid batch_default_mode: %q (must be sequential, parallel, or optimized)", c.Backend.BatchDefaultMode)
	}

	switch c.Transport.Mode {
	case "stdio", "http":
	default:
		return fmt.Errorf("invalid transport mode: %q (must be \"stdio\" or \"http\")", c.Transport.Mode)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q (must be debug, info, warn, or error)", c.Log.Level)
	}

	if c.Backend.NLPConfidenceThreshold < 0 || c.Backend.NLPConfidenceThreshold > 1 {
		return fmt.Errorf("nlp_confidence_threshold must be in [0, 1], got %v", c.Backend.NLPConfidenceThreshold)
	}
	if c.Backend.DangerousConfidenceThreshold < 0 || c.Backend.DangerousConfidenceThreshold > 1 {
		return fmt.Errorf("dangerous_confidence_threshold must be in [0, 1], got %v", c.Backend.DangerousConfidenceThreshold)
	}

	return nil
}

func envOverride(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			*dst = n
		}
	}
}

func envOverrideFloat(key string, dst *float64) {
	if v := os.Getenv(key); v != "" {
		var f float64
		if _, err := fmt.Sscanf(v, "%f", &f); err == nil {
			*dst = f
		}
	}
}
