package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		var out bytes.Buffer
		logger := newLogger("info", "json", &out)
		logger.Info("machine built", "elements", 3)
		assert.Contains(t, out.String(), `"msg":"machine built"`)
		assert.Contains(t, out.String(), `"elements":3`)
	})

	t.Run("text format", func(t *testing.T) {
		var out bytes.Buffer
		logger := newLogger("info", "text", &out)
		logger.Info("machine built")
		assert.Contains(t, out.String(), "msg=")
	})

	t.Run("level filters lower records", func(t *testing.T) {
		var out bytes.Buffer
		logger := newLogger("error", "text", &out)
		logger.Info("suppressed")
		assert.Empty(t, out.String())
		logger.Error("kept")
		assert.Contains(t, out.String(), "kept")
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		var out bytes.Buffer
		logger := newLogger("chatty", "text", &out)
		logger.Debug("suppressed")
		assert.Empty(t, out.String())
		logger.Info("kept")
		assert.Contains(t, out.String(), "kept")
	})
}
