package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerDefaultsToSilent(t *testing.T) {
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}

func TestSetLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))

	r := NewRegistry(spreadLayout(2), newRecordingHost())
	r.Connect([]Handle{1}, []Handle{2}, ArrowConfig{ID: "dup"})
	r.Connect([]Handle{2}, []Handle{1}, ArrowConfig{ID: "dup"})

	assert.Contains(t, buf.String(), `msg="arrow id already in use" id=dup`)
	assert.NotContains(t, buf.String(), "arrow created")

	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}
