package message

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndcoders/commitcraft/internal/domain"
)

func TestFileStore_ReadWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
	require.NoError(t, os.WriteFile(path, []byte("Fix bug\n"), 0o644))

	store := NewFileStore()

	contents, err := store.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "Fix bug\n", contents)

	require.NoError(t, store.Write(path, "NDC-123 Fix bug\n"))

	contents, err = store.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "NDC-123 Fix bug\n", contents)
}

func TestFileStore_ReadMissing(t *testing.T) {
	store := NewFileStore()

	_, err := store.Read(filepath.Join(t.TempDir(), "does-not-exist"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMessageRead)
}

func TestFileStore_WriteToMissingDir(t *testing.T) {
	store := NewFileStore()

	err := store.Write(filepath.Join(t.TempDir(), "no", "such", "dir", "msg"), "x")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMessageWrite)
}
