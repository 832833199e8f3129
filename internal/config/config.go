package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are tried in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

const ConfigPathEnvVar = "CONFIG_PATH"

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	CORS     CORSConfig     `koanf:"cors"`
	Logging  LoggingConfig  `koanf:"logging"`
	Metrics  ToggleConfig   `koanf:"metrics"`
	Docs     ToggleConfig   `koanf:"docs"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"min=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"min=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"min=0"`
}

// Addr is the listen address, e.g. "0.0.0.0:50000".
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string        `koanf:"driver" validate:"oneof=sqlite postgres"`
	Path            string        `koanf:"path" validate:"required_if=Driver sqlite"`
	DSN             string        `koanf:"dsn" validate:"required_if=Driver postgres"`
	ReadOnly        bool          `koanf:"read_only"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"min=1,max=256"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"min=0"`
}

type CORSConfig struct {
	AllowOrigins string `koanf:"allow_origins"`
}

type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal disabled off"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

type ToggleConfig struct {
	Enabled bool `koanf:"enabled"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            50000,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:          "sqlite",
			Path:            "database/app.db",
			ReadOnly:        true,
			MaxOpenConns:    4,
			ConnMaxLifetime: 30 * time.Minute,
		},
		CORS: CORSConfig{
			AllowOrigins: "*",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: ToggleConfig{Enabled: true},
		Docs:    ToggleConfig{Enabled: true},
	}
}

// Load layers defaults, an optional YAML file and environment variables, in
// that order. An explicit path must exist; otherwise CONFIG_PATH and
// DefaultConfigPaths are searched and a missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envMappings lists the environment variables read by the service. Anything
// else in the environment is ignored.
var envMappings = map[string]string{
	"server_host":             "server.host",
	"port":                    "server.port",
	"server_port":             "server.port",
	"server_read_timeout":     "server.read_timeout",
	"server_write_timeout":    "server.write_timeout",
	"server_shutdown_timeout": "server.shutdown_timeout",
	"db_driver":               "database.driver",
	"db_path":                 "database.path",
	"database_path":           "database.path",
	"database_url":            "database.dsn",
	"postgres_dsn":            "database.dsn",
	"db_read_only":            "database.read_only",
	"db_max_open_conns":       "database.max_open_conns",
	"db_conn_max_lifetime":    "database.conn_max_lifetime",
	"cors_allow_origins":      "cors.allow_origins",
	"log_level":               "logging.level",
	"log_format":              "logging.format",
	"metrics_enabled":         "metrics.enabled",
	"docs_enabled":            "docs.enabled",
}

func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and reports every failing field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// ApplyArgs applies the positional CLI arguments `[db-path] [port]` on top of
// the loaded configuration and validates the result.
func (c *Config) ApplyArgs(args []string) error {
	if len(args) > 0 && args[0] != "" {
		c.Database.Path = args[0]
	}
	if len(args) > 1 {
		port, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid port %q: %w", args[1], err)
		}
		c.Server.Port = port
	}
	return c.Validate()
}
