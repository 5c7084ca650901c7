// Package gmadio writes rendered GMAD text to disk, transparently
// compressing when the destination name asks for it.
package gmadio

import (
	"compress/gzip"
	"fmt"
	"os"
	"strings"
)

// Write stores content at path. A ".gz" suffix selects a gzip-compressed
// write; anything else is written as plain text. The content is written
// as-is, with no terminator forced beyond the statements' own separators.
func Write(path, content string) error {
	if strings.HasSuffix(path, ".gz") {
		return writeGzip(path, content)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeGzip(path, content string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte(content)); err != nil {
		zw.Close()
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("closing gzip stream for %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
