package garden

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-record", "after-record"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotDirDefault(t *testing.T) {
	s := NewSurface(0.25)
	if s.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", s.ScreenshotDir, "screenshots")
	}
}

func TestSnapshotWritesPNG(t *testing.T) {
	s := NewSurface(0.25)
	s.ScreenshotDir = filepath.Join(t.TempDir(), "shots")
	s.Snapshot("monkey swing")
	if err := s.Paint(2); err != nil {
		t.Fatal(err)
	}
	if len(s.screenshotQueue) != 0 {
		t.Errorf("queue len after paint = %d, want 0", len(s.screenshotQueue))
	}

	matches, err := filepath.Glob(filepath.Join(s.ScreenshotDir, "*_monkey_swing.png"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("found %d snapshot files, want 1", len(matches))
	}
	f, err := os.Open(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 240 || b.Dy() != 135 {
		t.Errorf("snapshot size = %dx%d, want 240x135", b.Dx(), b.Dy())
	}
}

func TestSnapshotNamesDoNotCollide(t *testing.T) {
	s := NewSurface(0.125)
	s.ScreenshotDir = filepath.Join(t.TempDir(), "shots")
	s.Snapshot("same")
	s.Snapshot("same")
	if err := s.Paint(0); err != nil {
		t.Fatal(err)
	}
	s.Snapshot("same")
	if err := s.Paint(1.0 / FPS); err != nil {
		t.Fatal(err)
	}

	matches, err := filepath.Glob(filepath.Join(s.ScreenshotDir, "*.png"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 3 {
		t.Fatalf("found %d snapshot files, want 3: %v", len(matches), matches)
	}
	for _, suffix := range []string{"_f000001_same.png", "_f000001_same_2.png", "_f000002_same.png"} {
		found := false
		for _, m := range matches {
			if strings.HasSuffix(m, suffix) {
				found = true
			}
		}
		if !found {
			t.Errorf("no file ending in %s among %v", suffix, matches)
		}
	}
}
