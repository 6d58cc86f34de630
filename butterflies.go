package garden

import (
	"math"

	"github.com/gogpu/gg"
)

var (
	wingCoral  = gg.Hex("#ff9a76")
	wingYellow = gg.Hex("#ffd166")
	darkBrown  = gg.Hex("#3e2a14")
)

const butterflyCount = 6

// Butterfly is the pose of one butterfly at an instant.
type Butterfly struct {
	Pos  Vec2
	Flap float64
}

// ButterflyAt returns the pose of butterfly i at time t. Each follows a
// Lissajous-like path seeded by its index.
func ButterflyAt(t float64, i int) Butterfly {
	fi := float64(i)
	path := (t + fi) * 0.6
	return Butterfly{
		Pos: Vec2{
			X: Width*(float64((i*37)%100)*0.01) + math.Sin(path*1.5)*60,
			Y: Height*0.35 + math.Sin(path*2+fi)*40 + math.Cos(path*1.1)*20,
		},
		Flap: math.Sin(path*8) * 0.6,
	}
}

func drawButterflies(p *pen, t float64) {
	cv := p.cv
	for i := 0; i < butterflyCount; i++ {
		b := ButterflyAt(t, i)
		wing := wingCoral
		if i%2 == 1 {
			wing = wingYellow
		}

		cv.Push()
		cv.Translate(b.Pos.X, b.Pos.Y)
		cv.Scale(0.8, 0.8)

		f := b.Flap
		cv.MoveTo(0, 0)
		cv.QuadraticTo(-26, -12*f, -48, -4)
		cv.QuadraticTo(-20, 10*f, 0, 0)
		p.fillColor(wing)

		cv.MoveTo(0, 0)
		cv.QuadraticTo(26, 12*f, 48, 4)
		cv.QuadraticTo(20, -10*f, 0, 0)
		p.fillColor(wing)

		cv.DrawCircle(0, 0, 4)
		p.fillColor(darkBrown)
		cv.Pop()
	}
}
