package orrery

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/agiangrant/orrery/backend"
	"github.com/agiangrant/orrery/backend/headless"
)

func TestLoggerDefaultIsSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() = nil")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger is enabled, want silent")
	}
}

func TestSetLoggerReceivesLifecycle(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	b := headless.New()
	r := New(b, WithFrameDelay(0))
	t.Cleanup(r.Close)
	b.Push(
		backend.Event{Kind: backend.KindKeyDown, Code: 60000},
		backend.Event{Kind: backend.KindQuit},
	)
	if err := r.Start(nil); err != nil {
		t.Fatalf("Start() = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"orrery: running", "orrery: quit requested", "orrery: stopped", "unknown key code"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) did not restore the silent logger")
	}
}
