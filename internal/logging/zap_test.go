package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZapLogger_WritesFieldsAndLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewZapLogger(newZap(&buf, slog.LevelDebug))
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.With("module", "moderation").Warn(ctx, "wrn", "status", 503)

	out := buf.String()
	assert.Contains(t, out, "dbg")
	assert.Contains(t, out, "debug")
	assert.Contains(t, out, "warn")
	assert.Contains(t, out, `"module": "moderation"`)
	assert.Contains(t, out, `"status": 503`)
}

func TestZapLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewZapLogger(newZap(&buf, slog.LevelWarn))

	log.Info(context.Background(), "hidden")
	log.Error(context.Background(), "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_Formats(t *testing.T) {
	tests := []struct {
		format string
		level  string
		want   string
	}{
		{format: "json", level: "info", want: `"msg":"hello"`},
		{format: "text", level: "debug", want: "msg=hello"},
		{format: "console", level: "warn", want: "hello"},
		{format: "", level: "", want: `"msg":"hello"`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			log, err := New(&buf, tt.format, tt.level)
			require.NoError(t, err)

			log.Error(context.Background(), "hello")
			assert.True(t, strings.Contains(buf.String(), tt.want), buf.String())
		})
	}
}

func TestNew_Rejects(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "xml", "info")
	assert.Error(t, err)

	_, err = New(&bytes.Buffer{}, "json", "loud")
	assert.Error(t, err)
}

func TestZapLogger_RequestID(t *testing.T) {
	var buf bytes.Buffer
	log := NewZapLogger(newZap(&buf, slog.LevelInfo))

	log.Info(WithRequestID(context.Background(), "req-7"), "served")

	assert.Contains(t, buf.String(), `"request_id": "req-7"`)
}
