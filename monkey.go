package garden

import (
	"math"

	"github.com/gogpu/gg"
)

var (
	monkeyBody  = gg.Hex("#a26a3d")
	monkeyHead  = gg.Hex("#c78a56")
	monkeyFace  = gg.Hex("#f4caaa")
	monkeyEar   = gg.Hex("#f7d0a5")
	monkeyLimb  = gg.Hex("#7b4624")
	vineBrown   = darkBrown
	monkeyEyes  = darkBrown
)

const (
	swingSpan   = 130
	anchorSpan  = 60
	headOffsetY = 64
)

// MonkeyPose is the monkey's skeleton at an instant. Swing is sin(1.5t) and
// Ease is the eased swing mapped into [0, 1].
type MonkeyPose struct {
	Swing  float64
	Ease   float64
	Anchor Vec2
	Body   Vec2
	Head   Vec2
}

// MonkeyPoseAt returns the pose at time t. The body swings horizontally
// within ±130 of 0.45·W with period 2π/1.5.
func MonkeyPoseAt(t float64) MonkeyPose {
	swing := math.Sin(t * 1.5)
	body := Vec2{
		X: Width*0.45 + swing*swingSpan,
		Y: Height*0.35 + math.Cos(t*1.5)*25,
	}
	return MonkeyPose{
		Swing: swing,
		Ease:  EaseInOutSine((swing + 1) / 2),
		Anchor: Vec2{
			X: Width*0.45 + swing*anchorSpan,
			Y: Height*0.2 + math.Sin(t*1.2)*8,
		},
		Body: body,
		Head: Vec2{X: body.X + swing*12, Y: body.Y - headOffsetY},
	}
}

// limb describes one arm or leg relative to its pivot on the body.
type limb struct {
	pivotDY, offX, offY, angle float64
	leg                        bool
}

var limbs = [...]limb{
	{0, -26, 40, -0.8, true},
	{0, 26, 40, 0.9, true},
	{-20, -24, 20, -1.3, false},
	{-20, 24, 20, 1.2, false},
}

func drawMonkey(p *pen, t float64) {
	cv := p.cv
	pose := MonkeyPoseAt(t)
	a, b, h := pose.Anchor, pose.Body, pose.Head

	cv.MoveTo(a.X, a.Y)
	cv.QuadraticTo(a.X+pose.Swing*20, Height*0.28, b.X, b.Y-20*pose.Ease)
	p.stroke(vineBrown, 4, gg.LineCapButt)

	cv.DrawEllipse(b.X, b.Y, 38, 48)
	p.fillColor(monkeyBody)

	cv.DrawEllipse(h.X, h.Y, 30, 26)
	p.fillColor(monkeyHead)
	cv.DrawEllipse(h.X, h.Y+4, 26, 18)
	p.fillColor(monkeyFace)

	cv.DrawCircle(h.X-10, h.Y-4, 4)
	cv.DrawCircle(h.X+10, h.Y-4, 4)
	p.fillColor(monkeyEyes)

	p.arc(h.X, h.Y+10, 6, 0, math.Pi)
	p.stroke(monkeyLimb, 2, gg.LineCapButt)

	cv.DrawCircle(h.X-22, h.Y-2, 10)
	cv.DrawCircle(h.X+22, h.Y-2, 10)
	p.fillColor(monkeyHead)
	cv.DrawCircle(h.X-22, h.Y-2, 6)
	cv.DrawCircle(h.X+22, h.Y-2, 6)
	p.fillColor(monkeyEar)

	ls := pose.Swing * 0.6
	for _, l := range limbs {
		drawLimb(p, b.X, b.Y+l.pivotDY, l.offX, l.offY, l.angle+ls, l.leg)
	}

	wave := math.Sin(t * 2.4)
	cv.MoveTo(b.X-10, b.Y+38)
	cv.QuadraticTo(b.X-60, b.Y+50+wave*15, b.X-80+wave*20, b.Y+100)
	p.stroke(monkeyLimb, 8, gg.LineCapButt)
}

func drawLimb(p *pen, pivotX, pivotY, offX, offY, angle float64, leg bool) {
	cv := p.cv
	length, width := 50.0, 10.0
	if leg {
		length, width = 72, 12
	}
	cv.Push()
	cv.Translate(pivotX+offX*0.6, pivotY+offY*0.3)
	cv.Rotate(angle)
	cv.MoveTo(0, 0)
	cv.QuadraticTo(length*0.4, length*0.1, length, length)
	p.stroke(monkeyLimb, width, gg.LineCapRound)
	cv.Pop()
}
