package process

import (
	"fmt"
	"os"
	"path/filepath"
)

// persist writes the edited content over the original file safely:
// a backup copy first, then the new content to a temp file in the same
// directory, then an atomic rename. A crash at any point leaves either the
// original or the fully written new content on disk, never a truncated
// file. Returns the backup path.
func persist(path string, doc *document, newText, backupSuffix string) (string, error) {
	original, err := doc.encode(doc.Text)
	if err != nil {
		return "", err
	}
	edited, err := doc.encode(newText)
	if err != nil {
		return "", err
	}

	backupPath := path + backupSuffix
	if err := os.WriteFile(backupPath, original, doc.Mode); err != nil {
		return "", fmt.Errorf("cannot write backup: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".adfix-*")
	if err != nil {
		return "", fmt.Errorf("cannot create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(edited); err != nil {
		tmp.Close()
		cleanup()
		return "", fmt.Errorf("cannot write temp file: %w", err)
	}
	if err := tmp.Chmod(doc.Mode); err != nil {
		tmp.Close()
		cleanup()
		return "", fmt.Errorf("cannot set temp file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", fmt.Errorf("cannot close temp file: %w", err)
	}

	// The rename is the commit point.
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return "", fmt.Errorf("cannot replace original: %w", err)
	}
	return backupPath, nil
}
