package zerolog

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	entry := map[string]interface{}{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, "filmdb")
	l.SetLevel("DEBUG")

	l.Info("film created", "func", "CreateFilm", "id", 3, 42, "dropped", "error", errors.New("boom"))

	entry := lastEntry(t, &buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "film created", entry["message"])
	assert.Equal(t, "filmdb", entry["service"])
	assert.Equal(t, "CreateFilm", entry["func"])
	assert.Equal(t, float64(3), entry["id"])
	assert.Equal(t, "boom", entry["error"])
	assert.NotContains(t, entry, "42")
}

func TestLogger_SetLevel(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		log       func(l *Logger)
		wantEntry bool
	}{
		{name: "debug shown at debug", level: "debug", log: func(l *Logger) { l.Debug("x") }, wantEntry: true},
		{name: "debug hidden at info", level: "INFO", log: func(l *Logger) { l.Debug("x") }, wantEntry: false},
		{name: "warn shown at warn", level: "warn", log: func(l *Logger) { l.Warn("x") }, wantEntry: true},
		{name: "info hidden at error", level: "error", log: func(l *Logger) { l.Info("x") }, wantEntry: false},
		{name: "unknown falls back to info", level: "verbose", log: func(l *Logger) { l.Info("x") }, wantEntry: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewLogger(&buf, "filmdb")
			l.SetLevel(tt.level)
			tt.log(l)
			assert.Equal(t, tt.wantEntry, buf.Len() > 0)
		})
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, "filmdb")

	child := l.With("request_id", "abc")
	child.Error("lookup failed")

	entry := lastEntry(t, &buf)
	assert.Equal(t, "abc", entry["request_id"])
	assert.Equal(t, "error", entry["level"])
}
