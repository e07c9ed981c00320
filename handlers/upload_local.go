package handlers

import (
	"os"
	"path/filepath"
)

func uploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}

// storeLocal writes the bytes under the upload directory, creating the
// date-based subdirectories as needed.
func storeLocal(storageKey string, data []byte) error {
	fullPath := filepath.Join(uploadDir(), filepath.FromSlash(storageKey))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, data, 0644)
}

// readLocal loads stored bytes back from the upload directory.
func readLocal(storageKey string) ([]byte, error) {
	return os.ReadFile(filepath.Join(uploadDir(), filepath.FromSlash(storageKey)))
}
