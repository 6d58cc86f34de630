package garden

import "github.com/gogpu/gg"

// Logical scene size and capture cadence. Layers draw in this coordinate
// space; the surface applies the pixel density scale on top.
const (
	Width  = 960
	Height = 540
	FPS    = 30
)

// Filename is the fixed name of the assembled recording.
const Filename = "chu-khi-trong-vuon-chuoi.webm"

// MimeType describes the container and codec of the recording.
const MimeType = "video/webm;codecs=vp9"

// Vec2 is a 2D point in logical scene units.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// rgba builds a colour from 0-255 channel values and a 0-1 alpha, matching
// the way the palette below is written.
func rgba(r, g, b, a float64) gg.RGBA {
	return gg.RGBA2(r/255, g/255, b/255, a)
}

// withAlpha returns c with its alpha replaced.
func withAlpha(c gg.RGBA, a float64) gg.RGBA {
	c.A = a
	return c
}
