package logger

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lastEntry decodes the single JSON entry written to buf.
func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	return entry
}

func TestNewLogger_EntryShape(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger("clinic-server", &buf)

	l.Info().Int64("phn", 9798884444).Msg("patient created")

	entry := lastEntry(t, &buf)
	assert.Equal(t, "clinic-server", entry["role"])
	assert.Equal(t, "patient created", entry["message"])
	assert.Equal(t, float64(9798884444), entry["phn"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "func")
}

func TestNewLogger_GlobalSettings(t *testing.T) {
	require.NotNil(t, NewLogger("clinic-server"))

	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNewLogger_BecomesDefaultContextLogger(t *testing.T) {
	var buf bytes.Buffer
	newLogger("clinic-client", &buf)

	FromContext(context.Background()).Info().Msg("fallback")

	assert.Equal(t, "clinic-client", lastEntry(t, &buf)["role"])
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("dropped")
	assert.Empty(t, buf.String())
}

func TestChildLoggers(t *testing.T) {
	tests := []struct {
		name   string
		child  func(l *Logger) *Logger
		fields map[string]any
	}{
		{
			name:   "child keeps parent fields",
			child:  (*Logger).GetChildLogger,
			fields: map[string]any{"role": "clinic-server"},
		},
		{
			name:   "trace id is added",
			child:  func(l *Logger) *Logger { return l.WithTraceID("0190b6d2-trace") },
			fields: map[string]any{"role": "clinic-server", "trace_id": "0190b6d2-trace"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			parent := newLogger("clinic-server", &buf)

			child := tt.child(parent)
			require.NotSame(t, parent, child)
			child.Info().Msg("child")

			entry := lastEntry(t, &buf)
			for k, v := range tt.fields {
				assert.Equal(t, v, entry[k], k)
			}
		})
	}
}

func TestFromRequest_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "req-1").Logger()

	req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	req = req.WithContext(zl.WithContext(req.Context()))

	FromRequest(req).Info().Msg("listing patients")

	entry := lastEntry(t, &buf)
	assert.Equal(t, "req-1", entry["trace_id"])
	assert.Equal(t, "listing patients", entry["message"])
}

func TestNewFileLogger_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clinic.log")
	require.NoError(t, os.WriteFile(path, []byte("{\"message\":\"earlier\"}\n"), 0o644))

	NewFileLogger("clinic-client", path).Info().Msg("logged in")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &entry))
	assert.Equal(t, "clinic-client", entry["role"])
	assert.Equal(t, "logged in", entry["message"])
}
