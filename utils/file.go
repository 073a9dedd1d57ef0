package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

const defaultUploadRoot = "uploads"

// UploadRoot is the directory screenshots land in when S3 is not
// configured. Overridable via UPLOAD_DIR.
func UploadRoot() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return defaultUploadRoot
}

// EnsureUploadDir creates the upload root if it doesn't exist.
func EnsureUploadDir() error {
	return os.MkdirAll(UploadRoot(), 0o755)
}

// GetUploadPath returns the path under the upload root for a stored file.
func GetUploadPath(filename string) string {
	return filepath.Join(UploadRoot(), filepath.Base(filename))
}

// SaveFile writes an uploaded multipart file to destPath, creating parent
// directories as needed.
func SaveFile(fileHeader *multipart.FileHeader, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
