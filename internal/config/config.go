package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all bodai configuration.
type Config struct {
	// Chat backend
	Server ServerConfig `yaml:"server"`

	// Local preference and session storage
	Storage StorageConfig `yaml:"storage"`

	// Terminal UI behaviour
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig points the client at the chat backend.
type ServerConfig struct {
	BaseURL    string `yaml:"base_url" validate:"required,url"`
	ChatPath   string `yaml:"chat_path" validate:"required,startswith=/"`
	HealthPath string `yaml:"health_path" validate:"required,startswith=/"`
	// Timeout of "0s" means requests never time out.
	Timeout string `yaml:"timeout"`
}

// StorageConfig configures where preferences are persisted.
type StorageConfig struct {
	DataDir string `yaml:"data_dir" validate:"required"`
}

// envOverrides lists the environment variables that take precedence over
// the config file. Empty values are ignored.
type envOverrides struct {
	URL     string `env:"BODAI_URL"`
	DataDir string `env:"BODAI_DATA_DIR"`
	Timeout string `env:"BODAI_TIMEOUT"`
	Debug   string `env:"BODAI_DEBUG"`
}

var validate = validator.New()

// DefaultDataDir returns ~/.bodai, or .bodai when the home directory is unknown.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bodai"
	}
	return filepath.Join(home, ".bodai")
}

// DefaultConfigPath returns the config file inside the default data dir.
func DefaultConfigPath() string {
	return filepath.Join(DefaultDataDir(), "config.yaml")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:    "http://localhost:8000",
			ChatPath:   "/chat",
			HealthPath: "/health",
			Timeout:    "0s",
		},
		Storage: StorageConfig{
			DataDir: DefaultDataDir(),
		},
		UI: *DefaultUIConfig(),
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "text",
			DebugMode: false,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	var o envOverrides
	if _, err := env.UnmarshalFromEnviron(&o); err != nil {
		return
	}

	if o.URL != "" {
		c.Server.BaseURL = strings.TrimRight(o.URL, "/")
	}
	if o.DataDir != "" {
		c.Storage.DataDir = o.DataDir
	}
	if o.Timeout != "" {
		c.Server.Timeout = o.Timeout
	}
	if o.Debug != "" {
		if on, err := strconv.ParseBool(o.Debug); err == nil {
			c.Logging.DebugMode = on
		}
	}
}

// Validate checks the configuration for values the client cannot work with.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := time.ParseDuration(c.Server.Timeout); err != nil {
		return fmt.Errorf("invalid server.timeout %q: %w", c.Server.Timeout, err)
	}
	if _, err := time.ParseDuration(c.UI.ToastDuration); err != nil {
		return fmt.Errorf("invalid ui.toast_duration %q: %w", c.UI.ToastDuration, err)
	}
	return nil
}

// GetTimeout returns the HTTP timeout; unparsable values mean no timeout.
func (s ServerConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(s.Timeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// ChatURL returns the full URL of the chat endpoint.
func (s ServerConfig) ChatURL() string {
	return strings.TrimRight(s.BaseURL, "/") + s.ChatPath
}

// HealthURL returns the full URL of the health endpoint.
func (s ServerConfig) HealthURL() string {
	return strings.TrimRight(s.BaseURL, "/") + s.HealthPath
}
