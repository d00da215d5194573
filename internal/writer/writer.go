// Package writer persists generated migrations.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adyam-logistics/trackseed/pkg/trackseed"
)

// Render joins lines with newlines. The result has no trailing newline.
func Render(lines []string) []byte {
	return []byte(strings.Join(lines, "\n"))
}

// WriteContent replaces the file at path with content. Missing parent
// directories are created. The content is staged in a temporary file beside
// path and renamed into place, so readers never observe a partial migration.
func WriteContent(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create directory %s: %w", trackseed.ErrWriteFailed, dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", trackseed.ErrWriteFailed, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %s: %w", trackseed.ErrWriteFailed, tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: sync %s: %w", trackseed.ErrWriteFailed, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", trackseed.ErrWriteFailed, tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("%w: chmod %s: %w", trackseed.ErrWriteFailed, tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: %w", trackseed.ErrWriteFailed, err)
	}
	committed = true
	return nil
}

var _ trackseed.ContentWriter = WriteContent
