package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("text output includes service attribute", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(Options{Output: &buf})
		log.Info("hello", "key", "value")

		out := buf.String()
		assert.Contains(t, out, "hello")
		assert.Contains(t, out, "service=gymsched")
		assert.Contains(t, out, "key=value")
	})

	t.Run("json output is valid json", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(Options{JSON: true, Output: &buf})
		log.Info("hello")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "hello", entry["msg"])
		assert.Equal(t, "gymsched", entry["service"])
	})

	t.Run("respects level", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(Options{Level: "error", Output: &buf})
		log.Info("quiet")
		log.Error("loud")

		assert.NotContains(t, buf.String(), "quiet")
		assert.Contains(t, buf.String(), "loud")
	})
}

func TestWithRunID(t *testing.T) {
	var buf bytes.Buffer
	log := WithRunID(New(Options{Output: &buf}))
	log.Info("run started")
	assert.Contains(t, buf.String(), "run_id=")
}
