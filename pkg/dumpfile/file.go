package dumpfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// SaveRaw writes data to path, creating parent directories as needed.
func SaveRaw(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Remove deletes path recursively. It is best-effort: failures are
// swallowed so cleanup of stale dump directories never aborts the
// caller.
func Remove(path string) {
	_ = os.RemoveAll(path)
}
