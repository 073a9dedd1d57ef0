package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUploadRootDefault(t *testing.T) {
	t.Setenv("UPLOAD_DIR", "")
	require.Equal(t, "uploads", UploadRoot())
	require.Equal(t, filepath.Join("uploads", "shot.png"), GetUploadPath("shot.png"))
}

func TestUploadRootFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UPLOAD_DIR", dir)

	require.Equal(t, dir, UploadRoot())
	require.Equal(t, filepath.Join(dir, "shot.png"), GetUploadPath("shot.png"))

	require.NoError(t, EnsureUploadDir())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestGetUploadPathStripsDirectories(t *testing.T) {
	t.Setenv("UPLOAD_DIR", "")
	require.Equal(t, filepath.Join("uploads", "shot.png"), GetUploadPath("../../etc/shot.png"))
}
