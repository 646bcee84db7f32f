package storage

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndRead(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	relPath, err := store.Save([]byte("archived document"), "invoice_INV-1.pdf", "invoices")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(relPath, "invoices"+string(filepath.Separator)))
	assert.Equal(t, ".pdf", filepath.Ext(relPath))

	data, err := store.Read(relPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("archived document"), data)
}

func TestReadMissingFile(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Read("invoices/2026/08/missing.pdf")
	assert.Error(t, err)
}

func TestReadRejectsEscapingPaths(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, p := range []string{"../secret", "/etc/passwd", "invoices/../../secret"} {
		_, err := store.Read(p)
		assert.Error(t, err, p)
	}
}
