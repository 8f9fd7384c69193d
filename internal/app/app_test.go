package app

import (
	"context"
	"testing"
	"time"

	"pricealert/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(t.TempDir())
	require.NoError(t, err)

	cfg.Storage.Driver = "memory"
	cfg.Server.Addr = "127.0.0.1:0"
	// unroutable feeds fail fast and leave the snapshot empty
	cfg.Feed.BaseURL = "http://127.0.0.1:1"
	cfg.OrderBook.BaseURL = "http://127.0.0.1:1"
	cfg.Feed.Timeout = 200 * time.Millisecond
	cfg.OrderBook.Timeout = 200 * time.Millisecond
	return cfg
}

// go test -v --run TestNewRejectsBadSchedule
func TestNewRejectsBadSchedule(t *testing.T) {
	cfg := testConfig(t)
	cfg.Feed.Poll = "whenever"

	_, err := New(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

// go test -v --run TestRunStopsOnCancel
func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)

	a, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(300 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Empty(t, a.monitor.Alerts())
}
