package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/dronemcp.toml")
	require.Error(t, err, "explicit missing path should surface the read error")
	_ = cfg
}

func TestLoadAppliesDefaultsWithNoFile(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.Backend.URL)
	assert.Equal(t, "sequential", cfg.Backend.BatchDefaultMode)
	assert.Equal(t, "stdio", cfg.Transport.Mode)
}

func TestValidateRejectsBadBackendURL(t *testing.T) {
	cfg := &Config{
		Backend: BackendConfig{URL: "not-a-url", BatchDefaultMode: "sequential"},
		Log:     LogConfig{Level: "info"},
		Transport: TransportConfig{Mode: "stdio"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http(s)")
}

func TestValidateRejectsBadBatchMode(t *testing.T) {
	cfg := &Config{
		Backend: BackendConfig{URL: "http://localhost", BatchDefaultMode: "turbo"},
		Log:     LogConfig{Level: "info"},
		Transport: TransportConfig{Mode: "stdio"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch_default_mode")
}

func TestApplyEnvOverridesBackendURL(t *testing.T) {
	os.Setenv("DRONEMCP_BACKEND_URL", "http://example.test:9000")
	defer os.Unsetenv("DRONEMCP_BACKEND_URL")

	cfg := &Config{Backend: BackendConfig{URL: "http://localhost:8000"}}
	cfg.applyEnv()
	assert.Equal(t, "http://example.test:9000", cfg.Backend.URL)
}
