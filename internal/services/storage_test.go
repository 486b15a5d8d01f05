package services

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := NewStorageService(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, storage.EnsureUploadDir())

	key := NewStorageKey("resume", "Jane Doe CV.PDF")
	assert.True(t, strings.HasPrefix(key, "resume_"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	require.NoError(t, storage.SaveFile(ctx, key, []byte("%PDF-1.4"), "application/pdf"))

	data, err := storage.ReadFile(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)

	require.NoError(t, storage.DeleteFile(ctx, key))
	_, err = storage.ReadFile(ctx, key)
	assert.ErrorIs(t, err, ErrFileNotFound)

	// deleting twice is not an error
	assert.NoError(t, storage.DeleteFile(ctx, key))
}

func TestLocalStorageIgnoresDirectoriesInKey(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	storage := NewStorageService(dir)

	require.NoError(t, storage.SaveFile(ctx, "../escape.pdf", []byte("x"), "application/pdf"))
	data, err := storage.ReadFile(ctx, "escape.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), data)
}
