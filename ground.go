package garden

import (
	"math"

	"github.com/gogpu/gg"
)

var (
	groundSand  = gg.Hex("#f5f2bf")
	grassTop    = rgba(110, 186, 60, 0.7)
	grassBottom = rgba(90, 140, 52, 0.9)
	bladeGreen  = rgba(64, 120, 44, 0.4)
	sparkle     = rgba(255, 255, 255, 0.35)
)

const (
	bladeCount   = 120
	sparkleCount = 3
	groundLine   = Height * 0.68
)

func drawGround(p *pen, t float64) {
	cv := p.cv
	cv.DrawRectangle(0, groundLine, Width, Height*0.32)
	p.fillColor(groundSand)

	grass := p.linearGradient(0, Height*0.65, 0, Height,
		gradientStop{0, grassTop},
		gradientStop{1, grassBottom},
	)
	cv.DrawRectangle(0, Height*0.6, Width, Height*0.4)
	p.fill(grass)

	for i := 0; i < bladeCount; i++ {
		fi := float64(i)
		x := float64((i * 37) % Width)
		h := 40 + float64(i%5)*8
		cv.MoveTo(x, groundLine)
		cv.QuadraticTo(x+math.Sin(t*1.5+fi)*6, groundLine-h, x+math.Cos(t*1.3+fi)*4, groundLine)
		p.stroke(bladeGreen, 1.5, gg.LineCapButt)
	}

	for i := 0; i < sparkleCount; i++ {
		fi := float64(i)
		x := Width/4*(fi+1) + math.Sin(t*1.3+fi)*30
		y := Height*0.58 + math.Cos(t*2+fi)*12
		cv.DrawCircle(x, y, 6+math.Sin(t*4+fi)*2)
		p.fillColor(sparkle)
	}
}
