package storage

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()

	fs, err := NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return fs
}

func TestFileStoreWriteAndPath(t *testing.T) {
	fs := newTestFileStore(t)
	appID := uuid.New()

	path, size, err := fs.Write(appID, "CURP", 1, strings.NewReader("contenido"))
	require.NoError(t, err)
	assert.Equal(t, int64(9), size)
	assert.Equal(t, fs.DocPath(appID, "CURP", 1), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "contenido", string(data))
}

func TestFileStoreVersionsDoNotCollide(t *testing.T) {
	fs := newTestFileStore(t)
	appID := uuid.New()

	p1, _, err := fs.Write(appID, "CURP", 1, strings.NewReader("v1"))
	require.NoError(t, err)
	p2, _, err := fs.Write(appID, "CURP", 2, strings.NewReader("v2"))
	require.NoError(t, err)

	assert.NotEqual(t, p1, p2)

	data, err := os.ReadFile(p1)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(data))
}

func TestFileStorePromote(t *testing.T) {
	fs := newTestFileStore(t)
	appID := uuid.New()
	uploadID := uuid.NewString()

	size, err := fs.WritePending(uploadID, strings.NewReader("despues"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), size)

	statSize, err := fs.StatPending(uploadID)
	require.NoError(t, err)
	assert.Equal(t, size, statSize)

	dst, err := fs.Promote(uploadID, appID, "NSS", 3)
	require.NoError(t, err)
	assert.Equal(t, fs.DocPath(appID, "NSS", 3), dst)

	// El área temporal queda vacía después de promover
	_, err = fs.StatPending(uploadID)
	assert.True(t, os.IsNotExist(err))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "despues", string(data))
}

func TestFileStoreRemoveDocs(t *testing.T) {
	fs := newTestFileStore(t)
	appID := uuid.New()

	path, _, err := fs.Write(appID, "CURP", 1, strings.NewReader("contenido"))
	require.NoError(t, err)

	require.NoError(t, fs.RemoveDocs(appID))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Idempotente cuando el directorio no existe
	assert.NoError(t, fs.RemoveDocs(appID))
}

func TestFileStoreRemovePendingMissingIsNoop(t *testing.T) {
	fs := newTestFileStore(t)
	assert.NoError(t, fs.RemovePending("no-such-upload"))
}

func TestFileStoreSweepPending(t *testing.T) {
	fs := newTestFileStore(t)

	stale := "stale-upload"
	live := "live-upload"
	fresh := "fresh-upload"

	_, err := fs.WritePending(stale, strings.NewReader("x"))
	require.NoError(t, err)
	_, err = fs.WritePending(live, strings.NewReader("x"))
	require.NoError(t, err)
	_, err = fs.WritePending(fresh, strings.NewReader("x"))
	require.NoError(t, err)

	// Envejecemos dos archivos; fresh se queda con mtime reciente
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(fs.PendingPath(stale), old, old))
	require.NoError(t, os.Chtimes(fs.PendingPath(live), old, old))

	removed, err := fs.SweepPending(time.Hour, func(uploadID string) bool {
		return uploadID == live
	})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = fs.StatPending(stale)
	assert.True(t, os.IsNotExist(err))
	_, err = fs.StatPending(live)
	assert.NoError(t, err)
	_, err = fs.StatPending(fresh)
	assert.NoError(t, err)

	// Con la sesión aún viva, un segundo barrido no quita nada más
	removed, err = fs.SweepPending(time.Hour, func(uploadID string) bool {
		return uploadID == live
	})
	require.NoError(t, err)
	assert.Zero(t, removed)
}
