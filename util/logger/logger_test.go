package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestHandleWritesToFileAlways(t *testing.T) {
	var file bytes.Buffer
	h := NewHandler(&file, &slog.HandlerOptions{Level: slog.LevelInfo}, false)
	log := slog.New(h)
	log.Info("hello", "key", "value")

	if !strings.Contains(file.String(), "hello") {
		t.Errorf("expected file output to contain the message, got %q", file.String())
	}
}

func TestSetDebugIgnoresNilPointer(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, nil, false)
	h.SetDebug(nil) // must not panic
	if h.debug {
		t.Errorf("debug should remain false after a nil SetDebug call")
	}
}

func TestEnabledDelegatesToUnderlyingHandler(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn}, false)
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected Debug to be disabled under a Warn-level handler")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("expected Error to be enabled under a Warn-level handler")
	}
}

func TestDiscardProducesAUsableLogger(t *testing.T) {
	log := Discard()
	log.Info("should not panic")
}
