package garden

import (
	"math"

	"github.com/gogpu/gg"
)

var (
	skyTop     = gg.Hex("#b9f7ff")
	skyMiddle  = gg.Hex("#e4ffd9")
	skyHorizon = gg.Hex("#fffbe1")
	sunDisk    = rgba(255, 243, 150, 0.95)
	sunRay     = rgba(255, 235, 120, 0.5)
	cloudWhite = rgba(255, 255, 255, 0.85)
)

const (
	sunInset     = 120
	sunRadius    = 45
	sunRayCount  = 10
	sunRayLength = 80
	cloudRadius  = 30
	cloudSpeed   = 20
)

type cloud struct {
	y, scale float64
}

var clouds = [...]cloud{
	{y: 90, scale: 1},
	{y: 70, scale: 1.3},
	{y: 110, scale: 0.9},
}

// SunCenter returns the sun's centre at time t. It bobs vertically by ±10
// around y=80 and sits 120 units in from the right edge.
func SunCenter(t float64) Vec2 {
	return Vec2{X: Width - sunInset, Y: 80 + math.Sin(t*0.2)*10}
}

// CloudOffset returns the horizontal offset of cloud index at time t. Clouds
// drift right at 20 units per second and wrap over W+200 units, starting 100
// units left of the frame.
func CloudOffset(t float64, index int) float64 {
	return wrap(t*cloudSpeed+float64(index)*200, Width+200) - 100
}

func drawSky(p *pen, t float64) {
	cv := p.cv
	cv.DrawRectangle(0, 0, Width, Height)
	p.fill(p.linearGradient(0, 0, 0, Height,
		gradientStop{0, skyTop},
		gradientStop{0.5, skyMiddle},
		gradientStop{1, skyHorizon},
	))

	cv.DrawRectangle(0, Height*0.45, Width, Height*0.55)
	p.fillColor(rgba(120+math.Sin(t*0.05)*8, 230, 160, 0.12))
}

func drawSun(p *pen, t float64) {
	cv := p.cv
	c := SunCenter(t)

	cv.DrawCircle(c.X, c.Y, sunRadius)
	p.fillColor(sunDisk)

	for i := 0; i < sunRayCount; i++ {
		fi := float64(i)
		cv.Push()
		cv.Translate(c.X, c.Y)
		cv.Rotate(2*math.Pi/sunRayCount*fi + t*0.5)
		cv.MoveTo(0, 0)
		cv.LineTo(0, -sunRayLength-math.Sin(t*0.8+fi)*4)
		p.stroke(sunRay, 3, gg.LineCapButt)
		cv.Pop()
	}
}

func drawClouds(p *pen, t float64) {
	cv := p.cv
	for idx, c := range clouds {
		cv.Push()
		cv.Translate(CloudOffset(t, idx), c.y)
		cv.Scale(c.scale, c.scale)
		for i := 0; i < 3; i++ {
			fi := float64(i)
			cv.DrawCircle(fi*40, math.Sin(t*0.8+fi)*8, cloudRadius)
			p.fillColor(cloudWhite)
		}
		cv.Pop()
	}
}
