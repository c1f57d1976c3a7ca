// Package config loads the service configuration from an optional file, a
// .env file and LINKSTATION_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment overrides. Nested keys are separated by a
// double underscore: LINKSTATION_SERVER__PORT sets server.port.
const EnvPrefix = "LINKSTATION_"

type Config struct {
	Server   ServerConfig   `json:"server"`
	Stations StationsConfig `json:"stations"`
	Log      LogConfig      `json:"log"`
	Metrics  MetricsConfig  `json:"metrics"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	BasePath string `json:"base_path"`
	// CORSOrigin is sent as Access-Control-Allow-Origin.
	CORSOrigin             string `json:"cors_origin"`
	ShutdownTimeoutSeconds int    `json:"shutdown_timeout_seconds"`
}

// StationsConfig points at the static link station list used by the legacy
// find endpoint. Empty disables it.
type StationsConfig struct {
	File string `json:"file"`
}

type LogConfig struct {
	Level string `json:"level"`
}

type MetricsConfig struct {
	Disabled bool `json:"disabled"`
}

// SetDefaults fills unset server fields.
func (c *ServerConfig) SetDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 5000
	}
	if c.BasePath == "" {
		c.BasePath = "/api/v1"
	}
	c.BasePath = "/" + strings.Trim(c.BasePath, "/")
	if c.CORSOrigin == "" {
		c.CORSOrigin = "*"
	}
	if c.ShutdownTimeoutSeconds == 0 {
		c.ShutdownTimeoutSeconds = 5
	}
}

// Validate checks the listener settings.
func (c ServerConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Port)
	}
	if c.BasePath == "/" {
		return fmt.Errorf("server.base_path is required")
	}
	if c.ShutdownTimeoutSeconds < 0 {
		return fmt.Errorf("server.shutdown_timeout_seconds must not be negative")
	}
	return nil
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *LogConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	c.Level = strings.ToLower(c.Level)
}

func (c LogConfig) Validate() error {
	switch c.Level {
	case "trace", "debug", "info", "warn", "error", "disabled":
		return nil
	}
	return fmt.Errorf("unknown log level %s", c.Level)
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.SetDefaults()
	return &cfg
}

func (c *Config) SetDefaults() {
	c.Server.SetDefaults()
	c.Log.SetDefaults()
}

func (c Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	return c.Log.Validate()
}

// Load reads envFile (missing files are ignored), then the optional
// configuration file at path, then environment overrides. APP_PORT, when
// set, takes precedence over every other port setting.
func Load(path, envFile string) (*Config, error) {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}

	k := koanf.New(".")
	if path != "" {
		var parser koanf.Parser
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	if p := os.Getenv("APP_PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("APP_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
