package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerCarriesContextFields(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "lumarise-api", Level: zerolog.DebugLevel, Output: &buf})

	ctx := logg.WithRequestID(context.Background(), "req-1")
	ctx = logg.WithFields(ctx, map[string]any{"room_id": 7})
	logg.Warn(ctx, "image.normalize.fallback", errors.New("bad header"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "lumarise-api", entry["service"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.EqualValues(t, 7, entry["room_id"])
	assert.Equal(t, "bad header", entry["error"])
	assert.Equal(t, "warn", entry["level"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{Level: zerolog.WarnLevel, Output: &buf})

	logg.Info(context.Background(), "ignored")
	assert.Zero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}
