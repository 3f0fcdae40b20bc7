package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		level     string
		format    string
		debugSeen bool
		check     func(t *testing.T, out string)
	}{
		{
			name:   "json by default",
			level:  "info",
			format: "",
			check: func(t *testing.T, out string) {
				var m map[string]any
				require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &m))
				require.Equal(t, "hello", m["msg"])
				require.Equal(t, "v", m["k"])
			},
		},
		{
			name:   "text",
			level:  "INFO",
			format: "text",
			check: func(t *testing.T, out string) {
				require.Contains(t, out, "msg=hello")
				require.Contains(t, out, "k=v")
			},
		},
		{
			name:      "debug level",
			level:     "debug",
			format:    "text",
			debugSeen: true,
			check:     func(t *testing.T, out string) { require.Contains(t, out, "msg=hello") },
		},
		{
			name:   "unknown level falls back to info",
			level:  "loud",
			format: "text",
			check:  func(t *testing.T, out string) { require.Contains(t, out, "level=INFO") },
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			l := New(tt.level, tt.format, &buf)

			l.Debug("dbg")
			require.Equal(t, tt.debugSeen, strings.Contains(buf.String(), "dbg"))
			buf.Reset()

			l.Info("hello", "k", "v")
			tt.check(t, buf.String())
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	require.Same(t, slog.Default(), FromContext(context.Background()))

	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := WithLogger(context.Background(), l)
	require.Same(t, l, FromContext(ctx))
}
