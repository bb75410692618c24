// Package config provides service configuration loading.
package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dhruvd-1/semtok/pkg/errors"
	stringpool "github.com/dhruvd-1/semtok/pkg/strings"
)

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Codec    CodecConfig    `yaml:"codec"`
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
	Ontology OntologyConfig `yaml:"ontology"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec"`
	ShutdownSec     int    `yaml:"shutdown_sec"`
}

// CodecConfig configures compression defaults.
type CodecConfig struct {
	UseDictionary bool   `yaml:"use_dictionary"`
	Archive       string `yaml:"archive"`
}

// StorageConfig configures the Postgres envelope store. Empty DSN fields
// fall back to the DB_* environment variables.
type StorageConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
	Encoding    string `yaml:"encoding"`
}

// OntologyConfig points at the ontology snapshot. An empty path means the
// bundled default ontology.
type OntologyConfig struct {
	Path string `yaml:"path"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeoutSec:  30,
			WriteTimeoutSec: 30,
			ShutdownSec:     10,
		},
		Codec: CodecConfig{
			UseDictionary: true,
			Archive:       "none",
		},
		Storage: StorageConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "semtok",
			User:     "postgres",
			SSLMode:  "disable",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "json",
		},
	}
}

// Load reads a YAML configuration file, substitutes ${VAR} references from
// the environment, and fills unset fields from defaults.
func Load(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath) //nolint:gosec // G304: path is operator-supplied
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "cannot read config file").
			WithDetail("path", filePath)
	}

	cfg := DefaultConfig()
	content := substituteEnvVars(string(data))
	if err := yaml.Unmarshal(stringpool.StringToBytes(content), cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "cannot parse config file").
			WithDetail("path", filePath)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func Save(filePath string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "cannot marshal config")
	}
	if err := os.WriteFile(filePath, data, 0o644); err != nil { //nolint:gosec
		return errors.Wrap(err, errors.ErrorTypeConfig, "cannot write config file").
			WithDetail("path", filePath)
	}
	return nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New(errors.ErrorTypeConfig, "server port out of range").
			WithDetail("port", c.Server.Port)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.New(errors.ErrorTypeConfig, "unknown log level").
			WithDetail("level", c.Logging.Level)
	}
	switch c.Codec.Archive {
	case "", "none", "gzip", "zstd", "s2", "lz4":
	default:
		return errors.New(errors.ErrorTypeConfig, "unknown archive codec").
			WithDetail("archive", c.Codec.Archive)
	}
	return nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
func substituteEnvVars(content string) string {
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		varName := content[start+2 : end]
		content = content[:start] + os.Getenv(varName) + content[end+1:]
	}
	return content
}
