package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/publication-admin/internal/config"
)

func TestHandler_Levels(t *testing.T) {
	tests := []struct {
		env       string
		debugOn   bool
		wantJSON  bool
	}{
		{env: "local", debugOn: true, wantJSON: false},
		{env: "dev", debugOn: true, wantJSON: true},
		{env: "prod", debugOn: false, wantJSON: true},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			var buf bytes.Buffer
			h := handler(tt.env, &buf)

			assert.Equal(t, tt.debugOn, h.Enabled(context.Background(), slog.LevelDebug))

			slog.New(h).Info("started", slog.String("env", tt.env))
			if tt.wantJSON {
				var rec map[string]any
				require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
				assert.Equal(t, "started", rec["msg"])
			} else {
				assert.Contains(t, buf.String(), "msg=started")
			}
		})
	}
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin.log")

	log, closeFn := New("prod", config.Log{File: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1})
	log.Info("import finished", slog.Int("rows", 42))
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rows":42`)
}
