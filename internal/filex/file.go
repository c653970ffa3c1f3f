package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates the directory containing path (including parents) if it
// does not exist yet, and returns that directory. Used to make sure the
// credentials database has somewhere to live on first run.
func EnsureDir(path string) (string, error) {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return dir, nil
	}
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}
