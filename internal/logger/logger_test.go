package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want zerolog.Level
	}{
		{"default", Options{}, zerolog.InfoLevel},
		{"explicit", Options{Level: "warn"}, zerolog.WarnLevel},
		{"invalid falls back", Options{Level: "loud"}, zerolog.InfoLevel},
		{"verbose wins", Options{Level: "error", Verbose: true}, zerolog.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Out = &bytes.Buffer{}
			l := New(tt.opts)
			assert.Equal(t, tt.want, l.GetLevel())
		})
	}
}

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Out: &buf})

	l.Info().Str("table", "categories").Msg("query successful")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "categories", entry["table"])
	assert.Equal(t, "query successful", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNop(t *testing.T) {
	l := Nop()
	require.NotNil(t, l)
	assert.Equal(t, zerolog.Disabled, l.GetLevel())
}
