package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"pricealert/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// go test -v --run TestSQLiteStore
func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "alerts.db")

	s, err := New(path)
	require.NoError(t, err)

	_, err = s.Get(ctx, "crypto_alerts")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Put(ctx, "crypto_alerts", []byte(`[{"id":1}]`)))
	require.NoError(t, s.Put(ctx, "crypto_alerts", []byte(`[]`)))
	require.NoError(t, s.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "crypto_alerts")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}
