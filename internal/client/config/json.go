package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/nasomail/internal/flagx"
	"github.com/dmitrijs2005/nasomail/internal/timex"
)

// JsonConfig is the on-disk shape of the CLI config file.
type JsonConfig struct {
	DataDir      string         `json:"data_dir"`
	ProbeTimeout timex.Duration `json:"probe_timeout"`
}

// parseJSON overlays the file named by -c/-config. Without the flag nothing
// is loaded; empty fields in the file keep the current values.
func parseJSON(config *Config, args []string) error {
	path := flagx.ConfigPathFrom(args, "")
	if path == "" {
		return nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(b, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if c.DataDir != "" {
		config.DataDir = c.DataDir
	}
	if c.ProbeTimeout.Duration != 0 {
		config.ProbeTimeout = c.ProbeTimeout.Duration
	}
	return nil
}
