package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"
)

const (
	dataDirName     = "nasomail_client"
	credentialsFile = "credentials.json"
	connectionFile  = "connection.txt"
)

// Config holds runtime settings for the nasomail CLI.
type Config struct {
	DataDir      string
	ProbeTimeout time.Duration
}

// LoadDefaults places data under the user's configuration directory, falling
// back to the working directory when the platform has none.
func (c *Config) LoadDefaults() {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	c.DataDir = filepath.Join(base, dataDirName)
	c.ProbeTimeout = 5 * time.Second
}

// CredentialsPath is where login stores {name, passphrase}.
func (c *Config) CredentialsPath() string {
	return filepath.Join(c.DataDir, credentialsFile)
}

// ConnectionPath is where the registered server address lives.
func (c *Config) ConnectionPath() string {
	return filepath.Join(c.DataDir, connectionFile)
}

// LoadConfig builds a Config from defaults, the JSON file named by -c/-config
// in args (if any) and finally the flags in args.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if cfg.DataDir == "" {
		return nil, errors.New("data dir is empty")
	}
	if cfg.ProbeTimeout <= 0 {
		return nil, errors.New("probe timeout must be positive")
	}
	return cfg, nil
}
