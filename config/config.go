package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/pitwall/openf1"
)

// EnvPrefix prefixes every environment override, e.g. PITWALL_SERVER_ADDR
const EnvPrefix = "PITWALL"

// Load loads the configuration. An explicit configPath must exist; without
// one the standard locations are searched and defaults apply when no file
// is found.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)
	bindEnv(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("pitwall")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".pitwall"))
		}
		v.AddConfigPath("/etc/pitwall/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// OpenF1 defaults
	v.SetDefault("openf1.base_url", openf1.DefaultBaseURL)
	v.SetDefault("openf1.timeout", openf1.DefaultTimeout)
	v.SetDefault("openf1.max_concurrency", 0)
	v.SetDefault("openf1.user_agent", "")

	// Server defaults
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("filter.presets", map[string]string{})
	v.SetDefault("output.format", "table")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// bindEnv maps PITWALL_SECTION_KEY variables onto every key. The upstream
// base URL also honours the bare OPENF1_BASE_URL.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("openf1.base_url", EnvPrefix+"_OPENF1_BASE_URL", "OPENF1_BASE_URL")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	u, err := url.Parse(cfg.OpenF1.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("openf1.base_url must be an http(s) URL: %q", cfg.OpenF1.BaseURL)
	}

	if cfg.OpenF1.Timeout <= 0 {
		return fmt.Errorf("openf1.timeout must be positive: %s", cfg.OpenF1.Timeout)
	}

	if cfg.OpenF1.MaxConcurrency < 0 {
		return fmt.Errorf("openf1.max_concurrency must not be negative: %d", cfg.OpenF1.MaxConcurrency)
	}

	if cfg.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}

	for name, expression := range cfg.Filter.Presets {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter preset '%s' has an empty expression", name)
		}
	}

	validOutputs := map[string]bool{
		"table": true,
		"json":  true,
	}
	if !validOutputs[cfg.Output.Format] {
		return fmt.Errorf("invalid output format: %s", cfg.Output.Format)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
