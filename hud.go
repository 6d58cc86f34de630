package garden

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween/ease"
)

const (
	// StripHeight is the height of the control strip under the scene.
	StripHeight = 64
	// ReadoutStep is the smallest change in elapsed time the readout shows.
	ReadoutStep = 0.1
	// RecommendedHint tells the user how long a good recording is.
	RecommendedHint = "Recommended: record 10-15 s for the best scene"
)

// Readout is the elapsed-time display. It only moves when the session time
// has drifted at least ReadoutStep from the shown value, so it changes far
// less often than the scene repaints.
type Readout struct {
	shown float64
}

// Update offers the current elapsed time and reports whether the shown
// value changed.
func (r *Readout) Update(t float64) bool {
	if math.Abs(t-r.shown) < ReadoutStep {
		return false
	}
	r.shown = t
	return true
}

// Reset shows zero again.
func (r *Readout) Reset() { r.shown = 0 }

// Value returns the shown elapsed time in seconds.
func (r *Readout) Value() float64 { return r.shown }

// Text formats the shown value with one decimal.
func (r *Readout) Text() string {
	return fmt.Sprintf("Elapsed: %.1f s", r.shown)
}

// ButtonLabel returns the record button label for state.
func ButtonLabel(s RecordingState) string {
	switch s {
	case StateRecording:
		return "Stop & download"
	case StateProcessing:
		return "Processing..."
	}
	return "Record"
}

// ButtonEnabled reports whether the record button accepts clicks.
func ButtonEnabled(s RecordingState) bool { return s != StateProcessing }

// ButtonRect is the record button's area in window coordinates.
func ButtonRect() Rect {
	return Rect{X: 16, Y: Height + 14, Width: 156, Height: 36}
}

var (
	stripColor      = color.RGBA{0x1e, 0x2b, 0x1a, 0xff}
	borderColor     = color.RGBA{0xe4, 0xff, 0xd9, 0xff}
	buttonIdle      = color.RGBA{0x2f, 0x6b, 0x2f, 0xff}
	buttonRecording = color.RGBA{0xb7, 0x3a, 0x2a, 0xff}
	buttonDisabled  = color.RGBA{0x5c, 0x5c, 0x5c, 0xff}
)

// ControlStrip draws the button, readout and status under the scene.
type ControlStrip struct {
	pulse *Oscillator
}

// NewControlStrip returns a strip whose recording indicator pulses once per
// second.
func NewControlStrip() *ControlStrip {
	return &ControlStrip{pulse: NewOscillator(1, ease.InOutSine)}
}

// Update advances the indicator animation by dt seconds.
func (h *ControlStrip) Update(dt float64) {
	h.pulse.Update(float32(dt))
}

// Draw renders the strip for the studio's current state onto dst.
func (h *ControlStrip) Draw(dst *ebiten.Image, s *Studio) {
	vector.DrawFilledRect(dst, 0, Height, Width, StripHeight, stripColor, false)

	state := s.Capture.State()
	b := ButtonRect()
	fill := buttonIdle
	switch state {
	case StateRecording:
		fill = buttonRecording
	case StateProcessing:
		fill = buttonDisabled
	}
	vector.DrawFilledRect(dst, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), fill, false)
	vector.StrokeRect(dst, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), 1, borderColor, false)
	ebitenutil.DebugPrintAt(dst, ButtonLabel(state), int(b.X)+12, int(b.Y)+11)

	if state == StateRecording {
		a := uint8(80 + 175*h.pulse.Value())
		vector.DrawFilledCircle(dst, float32(b.X+b.Width+14), float32(b.Y+b.Height/2), 6,
			color.NRGBA{0xe5, 0x39, 0x35, a}, true)
	}

	lines := s.Status()
	x := int(b.X+b.Width) + 32
	for i, line := range lines[1:] {
		ebitenutil.DebugPrintAt(dst, line, x, int(b.Y)+2+18*i)
	}
}

// Status returns the control strip text: the button label, the readout with
// the recommended duration, and the last error or saved file if any.
func (s *Studio) Status() []string {
	lines := []string{
		ButtonLabel(s.Capture.State()),
		s.Readout.Text() + " - " + RecommendedHint,
	}
	switch {
	case s.Capture.Err() != nil:
		lines = append(lines, "Error: "+s.Capture.Err().Error())
	case s.Capture.LastPath() != "":
		lines = append(lines, "Saved "+s.Capture.LastPath())
	}
	return lines
}
