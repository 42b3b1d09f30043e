package storage_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lordsmint/portal-api/internal/config"
	"github.com/lordsmint/portal-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStorageInterfaceCompliance(t *testing.T) {
	var _ storage.Storage = (*storage.LocalStorage)(nil)
	var _ storage.Storage = (*storage.AzureBlobStorage)(nil)
}

// ============================================================================
// LocalStorage
// ============================================================================

func TestLocalStorage_PutGetDelete(t *testing.T) {
	base := filepath.Join(t.TempDir(), "archive")
	ls, err := storage.NewLocalStorage(base)
	require.NoError(t, err)
	ctx := context.Background()

	key := storage.ArchiveKey("Sales Invoice", "ACC-SINV-2025-00001", "Sales Invoice")
	size, err := ls.Put(ctx, key, "application/pdf", bytes.NewReader([]byte("%PDF-1.4 test")))
	require.NoError(t, err)
	assert.Equal(t, int64(13), size)

	_, err = os.Stat(filepath.Join(base, key))
	require.NoError(t, err)

	rc, err := ls.Get(ctx, key)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(data))

	require.NoError(t, ls.Delete(ctx, key))
	_, err = ls.Get(ctx, key)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.NoError(t, ls.Delete(ctx, key), "deleting twice is not an error")
}

func TestLocalStorage_PutOverwrites(t *testing.T) {
	ls, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = ls.Put(ctx, "a/b.pdf", "application/pdf", strings.NewReader("one"))
	require.NoError(t, err)
	_, err = ls.Put(ctx, "a/b.pdf", "application/pdf", strings.NewReader("two"))
	require.NoError(t, err)

	rc, err := ls.Get(ctx, "a/b.pdf")
	require.NoError(t, err)
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "two", string(data))
}

func TestLocalStorage_KeysStayInsideBase(t *testing.T) {
	base := t.TempDir()
	ls, err := storage.NewLocalStorage(filepath.Join(base, "root"))
	require.NoError(t, err)

	_, err = ls.Put(context.Background(), "../../escape.pdf", "application/pdf", strings.NewReader("x"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(base, "escape.pdf"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(base, "root", "escape.pdf"))
	assert.NoError(t, err)

	_, err = ls.Put(context.Background(), "", "application/pdf", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestArchiveKey(t *testing.T) {
	tests := []struct {
		doctype, name, format string
		prefix, suffix        string
	}{
		{"Delivery Note", "MAT-DN-2025-00012", "Waybill.", "delivery-note/mat-dn-2025-00012-", "/waybill.pdf"},
		{"Sales Invoice", "ACC-SINV-2025-00001", "Sales Invoice", "sales-invoice/acc-sinv-2025-00001-", "/sales-invoice.pdf"},
		{"Payment Entry", "../../etc/passwd", "Receipts", "payment-entry/etc-passwd-", "/receipts.pdf"},
		{"Payment Entry", "", "Receipts", "payment-entry/_-", "/receipts.pdf"},
	}
	for _, tt := range tests {
		key := storage.ArchiveKey(tt.doctype, tt.name, tt.format)
		assert.True(t, strings.HasPrefix(key, tt.prefix), key)
		assert.True(t, strings.HasSuffix(key, tt.suffix), key)
		assert.Len(t, strings.Split(key, "/"), 3, key)
		assert.Equal(t, key, storage.ArchiveKey(tt.doctype, tt.name, tt.format))
	}
}

func TestArchiveKey_DistinctNamesNeverShareAnObject(t *testing.T) {
	names := []string{"ACC-SINV-0001", "acc sinv 0001", "acc-sinv-0001", "ACC/SINV/0001", "ACC-SINV-0001 "}
	seen := make(map[string]string, len(names))
	for _, name := range names {
		key := storage.ArchiveKey("Sales Invoice", name, "Standard")
		prev, dup := seen[key]
		assert.False(t, dup, "%q and %q share key %s", prev, name, key)
		seen[key] = name
	}

	assert.NotEqual(t,
		storage.ArchiveKey("Sales Invoice", "X-1", "Standard"),
		storage.ArchiveKey("Sales Invoice", "X-1", "standard"))
}

func TestLocalStorage_CollidingSlugsKeepTheirOwnBytes(t *testing.T) {
	ls, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	first := storage.ArchiveKey("Sales Invoice", "ACC-SINV-0001", "Standard")
	second := storage.ArchiveKey("Sales Invoice", "acc sinv 0001", "Standard")
	_, err = ls.Put(ctx, first, "application/pdf", strings.NewReader("%PDF body of ACC-SINV-0001"))
	require.NoError(t, err)
	_, err = ls.Put(ctx, second, "application/pdf", strings.NewReader("%PDF body of acc sinv 0001"))
	require.NoError(t, err)

	rc, err := ls.Get(ctx, first)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF body of ACC-SINV-0001", string(data))
}

func TestNewStorage_Modes(t *testing.T) {
	s, err := storage.NewStorage(&config.StorageConfig{Mode: "local", LocalBasePath: t.TempDir()}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &storage.LocalStorage{}, s)

	_, err = storage.NewStorage(&config.StorageConfig{Mode: "azure"}, zap.NewNop())
	assert.Error(t, err)

	_, err = storage.NewStorage(&config.StorageConfig{Mode: "ftp"}, zap.NewNop())
	assert.Error(t, err)
}
