package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"pricealert/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// go test -v --run TestFileStore
func TestFileStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := New(dir)
	require.NoError(t, err)

	_, err = s.Get(ctx, "crypto_alerts")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Put(ctx, "crypto_alerts", []byte(`[1]`)))
	require.NoError(t, s.Put(ctx, "crypto_alerts", []byte(`[1,2]`)))

	got, err := s.Get(ctx, "crypto_alerts")
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
	assert.Equal(t, "crypto_alerts.json", entries[0].Name())
}

// go test -v --run TestFileStoreKeyIsSanitized
func TestFileStoreKeyIsSanitized(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, s.Put(context.Background(), "../escape/me", []byte(`x`)))

	_, err = os.Stat(filepath.Join(dir, ".._escape_me.json"))
	assert.NoError(t, err)
}
