package garden

import (
	"fmt"
	"time"
)

// layer is one pass of the scene, drawn back to front.
type layer struct {
	name string
	draw func(p *pen, t float64)
}

// layers is the fixed paint order. Later layers overdraw earlier ones.
var layers = [...]layer{
	{"sky", drawSky},
	{"sun", drawSun},
	{"clouds", drawClouds},
	{"jungle", drawJungle},
	{"trees", drawTrees},
	{"butterflies", drawButterflies},
	{"monkey", drawMonkey},
	{"ground", drawGround},
}

// LayerNames returns the scene layers in paint order.
func LayerNames() []string {
	names := make([]string, len(layers))
	for i, l := range layers {
		names[i] = l.name
	}
	return names
}

// RenderScene paints the whole scene for elapsed time t (seconds) onto cv in
// logical 960×540 units. The result depends only on t. The sky fills the
// full frame, so every pixel is overwritten. The first paint error is
// returned after all layers have run.
func RenderScene(cv Canvas, t float64) error {
	p := &pen{cv: cv}
	for _, l := range layers {
		l.draw(p, t)
	}
	if p.err != nil {
		return fmt.Errorf("render scene at t=%.3f: %w", t, p.err)
	}
	return nil
}

// renderTimed is RenderScene with per-layer timings collected into stats.
func renderTimed(cv Canvas, t float64, stats *frameStats) error {
	p := &pen{cv: cv}
	for i, l := range layers {
		start := time.Now()
		l.draw(p, t)
		stats.layers[i] = time.Since(start)
	}
	if p.err != nil {
		return fmt.Errorf("render scene at t=%.3f: %w", t, p.err)
	}
	return nil
}
