package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/pitwall/openf1"
)

func validConfig() *Config {
	return &Config{
		OpenF1: OpenF1Config{
			BaseURL: openf1.DefaultBaseURL,
			Timeout: 30 * time.Second,
		},
		Server: ServerConfig{Addr: ":8080"},
		Output: OutputConfig{Format: "table"},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pitwall.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, openf1.DefaultBaseURL, cfg.OpenF1.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.OpenF1.Timeout)
	assert.Zero(t, cfg.OpenF1.MaxConcurrency)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "table", cfg.Output.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.Logging.Color)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
openf1:
  base_url: http://localhost:9000/v1
  timeout: 5s
  max_concurrency: 4
  user_agent: pitwall-test
server:
  addr: 127.0.0.1:9090
  allowed_origins:
    - https://pitwall.example
filter:
  presets:
    push: withinPercent(1)
output:
  format: json
logging:
  level: debug
  format: json
  color: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/v1", cfg.OpenF1.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.OpenF1.Timeout)
	assert.Equal(t, 4, cfg.OpenF1.MaxConcurrency)
	assert.Equal(t, "pitwall-test", cfg.OpenF1.UserAgent)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, []string{"https://pitwall.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, map[string]string{"push": "withinPercent(1)"}, cfg.Filter.Presets)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Color)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OPENF1_BASE_URL", "http://127.0.0.1:7000")
	t.Setenv("PITWALL_SERVER_ADDR", ":9999")
	t.Setenv("PITWALL_OPENF1_MAX_CONCURRENCY", "8")
	t.Setenv("PITWALL_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:7000", cfg.OpenF1.BaseURL)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, 8, cfg.OpenF1.MaxConcurrency)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadInvalid(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: loud\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "relative base url", mutate: func(c *Config) { c.OpenF1.BaseURL = "api.openf1.org" }, wantErr: "openf1.base_url"},
		{name: "ftp base url", mutate: func(c *Config) { c.OpenF1.BaseURL = "ftp://example.com" }, wantErr: "openf1.base_url"},
		{name: "zero timeout", mutate: func(c *Config) { c.OpenF1.Timeout = 0 }, wantErr: "openf1.timeout"},
		{name: "negative concurrency", mutate: func(c *Config) { c.OpenF1.MaxConcurrency = -1 }, wantErr: "openf1.max_concurrency"},
		{name: "missing addr", mutate: func(c *Config) { c.Server.Addr = "" }, wantErr: "server.addr"},
		{name: "empty preset", mutate: func(c *Config) { c.Filter.Presets = map[string]string{"x": " "} }, wantErr: "filter preset 'x'"},
		{name: "output format", mutate: func(c *Config) { c.Output.Format = "csv" }, wantErr: "invalid output format"},
		{name: "logging level", mutate: func(c *Config) { c.Logging.Level = "verbose" }, wantErr: "invalid logging level"},
		{name: "logging format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "invalid logging format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
