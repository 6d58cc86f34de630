package garden

import (
	"math"

	"github.com/gogpu/gg"
)

// Canvas is the drawing context the scene paints onto. Coordinates passed to
// path and shape methods are transformed by the current matrix at call time,
// so transforms must be set before a path is built. *gg.Context satisfies it.
type Canvas interface {
	Push()
	Pop()
	Translate(x, y float64)
	Rotate(angle float64)
	Scale(x, y float64)
	TransformPoint(x, y float64) (float64, float64)

	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	ClosePath()
	DrawRectangle(x, y, w, h float64)
	DrawCircle(x, y, r float64)
	DrawEllipse(x, y, rx, ry float64)

	SetLineWidth(width float64)
	SetLineCap(lineCap gg.LineCap)
	SetFillBrush(b gg.Brush)
	SetStrokeBrush(b gg.Brush)
	Fill() error
	Stroke() error
}

var _ Canvas = (*gg.Context)(nil)

// pen wraps a Canvas with paint helpers and keeps the first paint error so
// layers can draw without checking every call.
type pen struct {
	cv  Canvas
	err error
}

func (p *pen) keep(err error) {
	if err != nil && p.err == nil {
		p.err = err
	}
}

// fill paints the current path with b.
func (p *pen) fill(b gg.Brush) {
	p.cv.SetFillBrush(b)
	p.keep(p.cv.Fill())
}

// fillColor paints the current path with a solid colour.
func (p *pen) fillColor(c gg.RGBA) {
	p.fill(gg.Solid(c))
}

// stroke outlines the current path. width is in the current user space.
func (p *pen) stroke(c gg.RGBA, width float64, lineCap gg.LineCap) {
	p.cv.SetStrokeBrush(gg.Solid(c))
	p.cv.SetLineWidth(width)
	p.cv.SetLineCap(lineCap)
	p.keep(p.cv.Stroke())
}

// gradientStop is one colour stop of a linear gradient.
type gradientStop struct {
	offset float64
	color  gg.RGBA
}

// linearGradient builds a gradient along (x0, y0)-(x1, y1) in the current
// user space. Brushes are sampled in device space, so the axis is mapped
// through the current transform first.
func (p *pen) linearGradient(x0, y0, x1, y1 float64, stops ...gradientStop) *gg.LinearGradientBrush {
	dx0, dy0 := p.cv.TransformPoint(x0, y0)
	dx1, dy1 := p.cv.TransformPoint(x1, y1)
	g := gg.NewLinearGradientBrush(dx0, dy0, dx1, dy1)
	for _, s := range stops {
		g.AddColorStop(s.offset, s.color)
	}
	return g
}

// arc appends a circular arc from angle a1 to a2 (radians, clockwise in
// screen space) to the current path. Each quarter turn is one cubic segment
// built from user-space points, so the radius follows the transform.
func (p *pen) arc(cx, cy, r, a1, a2 float64) {
	for a2 < a1 {
		a2 += 2 * math.Pi
	}
	n := int(math.Ceil((a2 - a1) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	step := (a2 - a1) / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)

	p.cv.MoveTo(cx+r*math.Cos(a1), cy+r*math.Sin(a1))
	for i := 0; i < n; i++ {
		s := a1 + float64(i)*step
		e := s + step
		cs, ss := math.Cos(s), math.Sin(s)
		ce, se := math.Cos(e), math.Sin(e)
		p.cv.CubicTo(
			cx+r*(cs-k*ss), cy+r*(ss+k*cs),
			cx+r*(ce+k*se), cy+r*(se-k*ce),
			cx+r*ce, cy+r*se,
		)
	}
}

// rotatedEllipse appends an ellipse centred at (cx, cy) rotated by rot.
func (p *pen) rotatedEllipse(cx, cy, rx, ry, rot float64) {
	p.cv.Push()
	p.cv.Translate(cx, cy)
	p.cv.Rotate(rot)
	p.cv.DrawEllipse(0, 0, rx, ry)
	p.cv.Pop()
}
