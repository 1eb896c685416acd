package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.log")
	log, err := New(Config{Level: "debug", Encoding: "json", File: path})
	require.NoError(t, err)

	log.Info("hello", zap.String("k", "v"))
	require.NoError(t, log.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"msg":"hello"`)
}

func TestWithRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	ctx := ContextWithUsername(ContextWithRequestID(context.Background(), "req-1"), "alice")
	WithRequestID(ctx, base).Info("served")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "alice", fields["username"])
}
