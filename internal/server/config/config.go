// Package config handles configuration for the server component,
// including defaults, the JSON config file, environment overlay, and
// command-line flags.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/nasomail/internal/flagx"
)

const (
	// DefaultConfigFile is used when neither -c nor -config is given.
	DefaultConfigFile = "config.json"
	// DefaultDotEnvFile is loaded into the environment when present.
	DefaultDotEnvFile = ".env"
	// EnvPrefix namespaces environment overrides, e.g. NASOMAIL_PUB_ADDR.
	EnvPrefix = "NASOMAIL_"
)

// Config holds runtime settings for the nasomail server.
//
// Fields:
//   - DBPath: SQLite file path, or a postgres:// DSN to use PostgreSQL (pgx).
//   - SchemaPath: SQL script executed on every start.
//   - Addr: local bind address of the HTTP listener.
//   - PubAddr: externally advertised address the self-test probes.
//   - SelfTestDelay: optional pause between bind and self-test.
//   - ProbeTimeout: bound for every outbound reachability request.
//   - ShutdownTimeout: grace period for in-flight requests on stop.
type Config struct {
	DBPath          string        `env:"DB_PATH"`
	SchemaPath      string        `env:"SCHEMA_PATH"`
	Addr            string        `env:"ADDR"`
	PubAddr         string        `env:"PUB_ADDR"`
	SelfTestDelay   time.Duration `env:"SELF_TEST_DELAY"`
	ProbeTimeout    time.Duration `env:"PROBE_TIMEOUT"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// LoadDefaults populates Config with the documented defaults.
func (c *Config) LoadDefaults() {
	c.DBPath = "database.sqlite"
	c.SchemaPath = "schema.sql"
	c.Addr = "0.0.0.0:8080"
	c.PubAddr = "mail.example.com:8080"
	c.SelfTestDelay = 0
	c.ProbeTimeout = 5 * time.Second
	c.ShutdownTimeout = 10 * time.Second
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("db_path is empty"))
	}
	if strings.TrimSpace(c.SchemaPath) == "" {
		errs = append(errs, errors.New("schema_path is empty"))
	}
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("addr is empty"))
	}
	if strings.TrimSpace(c.PubAddr) == "" {
		errs = append(errs, errors.New("pub_addr is empty"))
	}
	if c.SelfTestDelay < 0 {
		errs = append(errs, errors.New("self_test_delay is negative"))
	}
	if c.ProbeTimeout <= 0 {
		errs = append(errs, errors.New("probe_timeout must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown_timeout must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying the JSON
// config file (written with defaults when absent), then the environment
// (after loading .env) and finally command-line flags.
func LoadConfig(ctx context.Context) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(ctx, cfg, flagx.ConfigPath(DefaultConfigFile)); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, DefaultDotEnvFile); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, os.Args[1:]); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
