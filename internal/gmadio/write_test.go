package gmadio

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	t.Run("plain text", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "machine.gmad")
		require.NoError(t, Write(path, "d1: drift, l=1;"))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "d1: drift, l=1;", string(raw))
	})

	t.Run("gz suffix compresses", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "machine.gmad.gz")
		require.NoError(t, Write(path, "d1: drift, l=1;"))

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()
		zr, err := gzip.NewReader(f)
		require.NoError(t, err)
		raw, err := io.ReadAll(zr)
		require.NoError(t, err)
		assert.Equal(t, "d1: drift, l=1;", string(raw))
	})

	t.Run("unwritable destination errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "machine.gmad")
		assert.Error(t, Write(path, "x"))
	})
}
