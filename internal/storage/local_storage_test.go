package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teammatch/internal/config"
)

func TestLocalStorage_UploadFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	svc, err := NewLocalStorageService(config.StorageConfig{LocalPath: dir, BaseURL: "/static/uploads/"})
	require.NoError(t, err)

	body := "png-bytes"
	info, err := svc.UploadFile(context.Background(), strings.NewReader(body), int64(len(body)), "Me.PNG", "image/png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(info.URL, "/static/uploads/"))
	assert.True(t, strings.HasSuffix(info.URL, ".png"))
	assert.Equal(t, "Me.PNG", info.FileName)
	assert.EqualValues(t, len(body), info.Size)

	data, err := os.ReadFile(info.Path)
	require.NoError(t, err)
	assert.Equal(t, body, string(data))
}

func TestLocalStorage_SizeMismatchRemovesFile(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewLocalStorageService(config.StorageConfig{LocalPath: dir, BaseURL: "/static/uploads"})
	require.NoError(t, err)

	_, err = svc.UploadFile(context.Background(), strings.NewReader("abc"), 10, "a.jpg", "image/jpeg")
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
