package garden

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// captureLogs routes the package logger into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

func TestDebugLogReportsLayers(t *testing.T) {
	buf := captureLogs(t)
	s := NewSurface(0.25)
	s.SetDebugMode(true)
	if err := s.Paint(2); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "msg=frame") {
		t.Fatalf("no frame record in %q", out)
	}
	for _, name := range LayerNames() {
		if !strings.Contains(out, " "+name+"=") {
			t.Errorf("frame record missing layer %q", name)
		}
	}
	if !strings.Contains(out, "t=2") {
		t.Errorf("frame record missing time: %q", out)
	}
}

func TestDebugLogSilentWhenDisabled(t *testing.T) {
	buf := captureLogs(t)
	s := NewSurface(0.25)
	if err := s.Paint(0); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "msg=frame") {
		t.Error("frame timings logged without debug mode")
	}
}

func TestDebugLogSlowFrameWarns(t *testing.T) {
	tests := []struct {
		name  string
		stats frameStats
		level string
	}{
		{"fast", frameStats{paint: time.Millisecond}, "level=DEBUG"},
		{"slow", frameStats{paint: 30 * time.Millisecond, notify: 10 * time.Millisecond}, "level=WARN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)
			s := NewSurface(0.25)
			s.SetDebugMode(true)
			s.debugLog(1, tt.stats)
			if !strings.Contains(buf.String(), tt.level) {
				t.Errorf("log %q, want %s", buf.String(), tt.level)
			}
		})
	}
}

func TestFrameStatsTotal(t *testing.T) {
	s := frameStats{paint: 3 * time.Millisecond, notify: 2 * time.Millisecond}
	if s.total() != 5*time.Millisecond {
		t.Errorf("total = %v, want 5ms", s.total())
	}
}
