package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "database.sqlite", c.DBPath)
	assert.Equal(t, "schema.sql", c.SchemaPath)
	assert.Equal(t, "0.0.0.0:8080", c.Addr)
	assert.Equal(t, "mail.example.com:8080", c.PubAddr)
	assert.Equal(t, time.Duration(0), c.SelfTestDelay)
	assert.Equal(t, 5*time.Second, c.ProbeTimeout)
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout)
	assert.NoError(t, c.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{name: "empty db path", mutate: func(c *Config) { c.DBPath = " " }, want: "db_path"},
		{name: "empty schema", mutate: func(c *Config) { c.SchemaPath = "" }, want: "schema_path"},
		{name: "empty addr", mutate: func(c *Config) { c.Addr = "" }, want: "addr"},
		{name: "empty pub addr", mutate: func(c *Config) { c.PubAddr = "" }, want: "pub_addr"},
		{name: "negative delay", mutate: func(c *Config) { c.SelfTestDelay = -time.Second }, want: "self_test_delay"},
		{name: "zero probe timeout", mutate: func(c *Config) { c.ProbeTimeout = 0 }, want: "probe_timeout"},
		{name: "zero shutdown timeout", mutate: func(c *Config) { c.ShutdownTimeout = 0 }, want: "shutdown_timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "server.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{
		"db_path": "from-json.sqlite",
		"addr": "127.0.0.1:7000",
		"pub_addr": "json.example.com:7000",
		"probe_timeout": "3s"
	}`), 0o600))

	t.Setenv("NASOMAIL_ADDR", "127.0.0.1:7100")
	t.Setenv("NASOMAIL_SHUTDOWN_TIMEOUT", "2s")

	os.Args = []string{"server", "-c", cfgPath, "-p", "flag.example.com:7200"}

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "from-json.sqlite", cfg.DBPath)
	assert.Equal(t, "schema.sql", cfg.SchemaPath)
	assert.Equal(t, "127.0.0.1:7100", cfg.Addr)
	assert.Equal(t, "flag.example.com:7200", cfg.PubAddr)
	assert.Equal(t, 3*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_InvalidFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"server", "-c", filepath.Join(t.TempDir(), "c.json"), "-t", "soon"}

	_, err := LoadConfig(context.Background())
	require.Error(t, err)
}
