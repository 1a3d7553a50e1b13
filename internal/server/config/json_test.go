package config

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/nasomail/internal/records"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("loads from json", func(t *testing.T) {
		path := writeTempJSON(t, dir, "full.json", map[string]any{
			"db_path":          "vault.sqlite",
			"schema_path":      "db/schema.sql",
			"addr":             "127.0.0.1:9000",
			"pub_addr":         "www.example:9000",
			"self_test_delay":  "1s",
			"probe_timeout":    "7s",
			"shutdown_timeout": 3000000000,
		})

		cfg := defaults()
		require.NoError(t, parseJSON(ctx, &cfg, path))

		want := Config{
			DBPath:          "vault.sqlite",
			SchemaPath:      "db/schema.sql",
			Addr:            "127.0.0.1:9000",
			PubAddr:         "www.example:9000",
			SelfTestDelay:   time.Second,
			ProbeTimeout:    7 * time.Second,
			ShutdownTimeout: 3 * time.Second,
		}
		assert.Empty(t, cmp.Diff(want, cfg))
	})

	t.Run("missing keys keep current values", func(t *testing.T) {
		path := writeTempJSON(t, dir, "partial.json", map[string]any{
			"pub_addr": "partial.example:80",
		})

		cfg := defaults()
		require.NoError(t, parseJSON(ctx, &cfg, path))

		want := defaults()
		want.PubAddr = "partial.example:80"
		assert.Empty(t, cmp.Diff(want, cfg))
	})

	t.Run("absent file is created with current values", func(t *testing.T) {
		path := filepath.Join(dir, "nested", "created.json")

		cfg := defaults()
		require.NoError(t, parseJSON(ctx, &cfg, path))
		assert.Empty(t, cmp.Diff(defaults(), cfg))

		stored, ok, err := records.New(path, records.JSON[JsonConfig]()).Read(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "database.sqlite", stored.DBPath)
		assert.Equal(t, "mail.example.com:8080", stored.PubAddr)
		assert.Equal(t, 5*time.Second, stored.ProbeTimeout.Duration)

		// second load reads what the first one wrote
		again := Config{}
		require.NoError(t, parseJSON(ctx, &again, path))
		assert.Equal(t, "0.0.0.0:8080", again.Addr)
	})

	t.Run("invalid JSON is an error", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		cfg := defaults()
		err := parseJSON(ctx, &cfg, bad)
		require.Error(t, err)
		assert.True(t, errors.Is(err, records.ErrCodec))
	})
}
