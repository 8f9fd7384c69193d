package logger

import (
	"os"
	"path/filepath"
	"testing"

	"pricealert/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// go test -v --run TestNewInvalidLevel
func TestNewInvalidLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}

// go test -v --run TestNewWithFileOutput
func TestNewWithFileOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "logs", "alertmonitor.log")

	log, err := New(config.LogConfig{
		Level:       "debug",
		Format:      "json",
		OutputFile:  out,
		Environment: "prod",
	})
	require.NoError(t, err)

	log.Info("hello")
	_ = log.Sync()

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}
