package config

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/nasomail/internal/records"
	"github.com/dmitrijs2005/nasomail/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Durations use
// timex.Duration so both "5s" and integer nanoseconds are accepted.
type JsonConfig struct {
	DBPath          string         `json:"db_path"`
	SchemaPath      string         `json:"schema_path"`
	Addr            string         `json:"addr"`
	PubAddr         string         `json:"pub_addr"`
	SelfTestDelay   timex.Duration `json:"self_test_delay"`
	ProbeTimeout    timex.Duration `json:"probe_timeout"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout"`
}

func toJSON(c *Config) JsonConfig {
	return JsonConfig{
		DBPath:          c.DBPath,
		SchemaPath:      c.SchemaPath,
		Addr:            c.Addr,
		PubAddr:         c.PubAddr,
		SelfTestDelay:   timex.D(c.SelfTestDelay),
		ProbeTimeout:    timex.D(c.ProbeTimeout),
		ShutdownTimeout: timex.D(c.ShutdownTimeout),
	}
}

func (j JsonConfig) apply(c *Config) {
	c.DBPath = j.DBPath
	c.SchemaPath = j.SchemaPath
	c.Addr = j.Addr
	c.PubAddr = j.PubAddr
	c.SelfTestDelay = j.SelfTestDelay.Duration
	c.ProbeTimeout = j.ProbeTimeout.Duration
	c.ShutdownTimeout = j.ShutdownTimeout.Duration
}

// parseJSON loads the config file at path into config. Keys missing from the
// file keep their current values. When the file does not exist it is created
// from the current values so operators have something to edit.
func parseJSON(ctx context.Context, config *Config, path string) error {
	store := records.New(path, records.JSON[JsonConfig]())

	current := toJSON(config)
	stored, ok, err := store.Read(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}

	if !ok {
		if err := store.Write(ctx, current); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		return nil
	}

	stored.mergeMissing(current)
	stored.apply(config)
	return nil
}

// mergeMissing fills zero-valued string fields from def. Durations are kept
// as read because zero is a legitimate self_test_delay.
func (j *JsonConfig) mergeMissing(def JsonConfig) {
	if j.DBPath == "" {
		j.DBPath = def.DBPath
	}
	if j.SchemaPath == "" {
		j.SchemaPath = def.SchemaPath
	}
	if j.Addr == "" {
		j.Addr = def.Addr
	}
	if j.PubAddr == "" {
		j.PubAddr = def.PubAddr
	}
	if j.ProbeTimeout.Duration == 0 {
		j.ProbeTimeout = def.ProbeTimeout
	}
	if j.ShutdownTimeout.Duration == 0 {
		j.ShutdownTimeout = def.ShutdownTimeout
	}
}
