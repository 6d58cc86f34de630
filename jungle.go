package garden

import (
	"math"

	"github.com/gogpu/gg"
)

var (
	canopyGreen = withAlpha(gg.Hex("#5ba14d"), 0.4)
	trunkBrown  = gg.Hex("#7c4e25")
	leafDark    = gg.Hex("#2f6b2f")
	leafLight   = gg.Hex("#82da5a")
	leafVein    = rgba(255, 255, 255, 0.2)
	bananaGold  = gg.Hex("#ffd74f")
)

const (
	canopyBands   = 7
	canopyStep    = 30
	treeCount     = 6
	treeLeaves    = 5
	treeClusters  = 6
	trunkWidth    = 18
	leafVeinWidth = 2
)

// canopyY is the height of canopy band i at column x and time t.
func canopyY(x float64, i int, t float64) float64 {
	fi := float64(i)
	base := Height*0.55 + fi*20
	return base + math.Sin((x+t*60+fi*50)*0.01)*(12+fi*5) + math.Cos((x+t*40)*0.015)*6
}

func drawJungle(p *pen, t float64) {
	cv := p.cv
	for i := 0; i < canopyBands; i++ {
		cv.MoveTo(0, canopyY(0, i, t))
		for x := float64(canopyStep); x <= Width; x += canopyStep {
			cv.LineTo(x, canopyY(x, i, t))
		}
		cv.LineTo(Width, Height)
		cv.LineTo(0, Height)
		cv.ClosePath()
		p.fillColor(canopyGreen)
	}
}

// treeBase returns the foot of tree i.
func treeBase(i int) Vec2 {
	return Vec2{X: 80 + float64(i)/treeCount*(Width-160), Y: Height * 0.55}
}

// treeHeight alternates between tall and short trees.
func treeHeight(i int) float64 {
	if i%2 == 0 {
		return 250
	}
	return 220
}

func drawTrees(p *pen, t float64) {
	for i := 0; i < treeCount; i++ {
		sway := math.Sin(t*0.8+float64(i)) * 12
		drawBananaTree(p, treeBase(i), treeHeight(i), sway, i)
	}
}

func drawBananaTree(p *pen, base Vec2, h, sway float64, seed int) {
	cv := p.cv
	cv.Push()
	defer cv.Pop()

	cv.Translate(base.X, base.Y)
	cv.Rotate(sway * math.Pi / 18000)

	cv.MoveTo(0, 0)
	cv.QuadraticTo(10, -h*0.3, 0, -h)
	p.stroke(trunkBrown, trunkWidth, gg.LineCapRound)

	for i := 0; i < treeLeaves; i++ {
		angle := float64(i)/treeLeaves*math.Pi/1.2 - math.Pi/2.5
		cv.Push()
		cv.Translate(0, -h)
		cv.Rotate(angle + sway*0.005)
		drawLeaf(p)
		cv.Pop()
	}

	cv.Push()
	cv.Translate(0, -h+30)
	for b := 0; b < treeClusters; b++ {
		tilt := -0.2
		if seed%2 == 0 {
			tilt = 0.3
		}
		radius := 18.0
		if b%2 == 0 {
			radius = 26
		}
		cv.Push()
		cv.Rotate(math.Pi/3*float64(b) + tilt + sway*0.0015)
		p.rotatedEllipse(45, 0, 14, radius*0.6, 0.4)
		p.fillColor(bananaGold)
		cv.Pop()
	}
	cv.Pop()
}

// drawLeaf paints one frond along the +x axis of the current frame.
func drawLeaf(p *pen) {
	cv := p.cv
	grad := p.linearGradient(0, 0, 120, 0,
		gradientStop{0, leafDark},
		gradientStop{1, leafLight},
	)
	cv.MoveTo(0, 0)
	cv.QuadraticTo(120, -20, 160, 0)
	cv.QuadraticTo(120, 20, 0, 0)
	p.fill(grad)

	cv.MoveTo(0, 0)
	cv.QuadraticTo(90, -10, 150, 0)
	p.stroke(leafVein, leafVeinWidth, gg.LineCapButt)
}
