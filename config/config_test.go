package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// go test -v --run TestLoadFromDefaults
func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "crypto_alerts", cfg.Storage.Key)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, 10, cfg.Feed.Limit)
	assert.Equal(t, 5*time.Second, cfg.Feed.Timeout)
	assert.Equal(t, "@every 30s", cfg.Feed.Poll)
	assert.Equal(t, "@every 5s", cfg.OrderBook.Poll)
	assert.Equal(t, 5, cfg.OrderBook.Levels)
	assert.Equal(t, "/alert-beep.mp3", cfg.Notifier.SoundURL)
	assert.Equal(t, "info", cfg.Log.Level)
}

// go test -v --run TestLoadFromFileAndEnv
func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := strings.Join([]string{
		"feed:",
		"  limit: 25",
		"  poll: \"@every 10s\"",
		"storage:",
		"  driver: sqlite",
		"  path: /tmp/alerts.db",
		"server:",
		"  addr: \":9090\"",
	}, "\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	t.Setenv("FEED_API_KEY", "secret")
	t.Setenv("STORAGE_KEY", "my_alerts")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Feed.Limit)
	assert.Equal(t, "@every 10s", cfg.Feed.Poll)
	assert.Equal(t, "secret", cfg.Feed.APIKey)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/alerts.db", cfg.Storage.Path)
	assert.Equal(t, "my_alerts", cfg.Storage.Key)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

// go test -v --run TestLoadFromInvalidYAML
func TestLoadFromInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("feed: [unclosed"), 0o644))

	_, err := LoadFrom(dir)
	assert.Error(t, err)
}

// go test -v --run TestPostgresDSN
func TestPostgresDSN(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "pw",
		DBName:   "pricealert",
		SSLMode:  "disable",
		TimeZone: "UTC",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=pw dbname=pricealert sslmode=disable TimeZone=UTC",
		cfg.DSN("dev"))
	assert.Contains(t, cfg.AdminDSN("dev"), "dbname=postgres")
	assert.Equal(t, "pricealert", cfg.DBName, "AdminDSN must not mutate the receiver")
}
