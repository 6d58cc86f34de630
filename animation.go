package garden

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// EaseInOutSine maps t in [0, 1] onto a sine-shaped ease that starts and
// ends with zero velocity: 0.5·(1 − cos(πt)).
func EaseInOutSine(t float64) float64 {
	return float64(ease.InOutSine(float32(t), 0, 1, 1))
}

// Oscillator is a looping tween that plays an easing function forward then
// backward. The HUD uses one to pulse the recording indicator.
type Oscillator struct {
	tween   *gween.Tween
	forward bool
	value   float64
}

// NewOscillator returns an oscillator that travels from 0 to 1 over period/2
// seconds and back again.
func NewOscillator(period float32, fn ease.TweenFunc) *Oscillator {
	return &Oscillator{
		tween:   gween.New(0, 1, period/2, fn),
		forward: true,
	}
}

// Update advances the oscillator by dt seconds and returns its value.
func (o *Oscillator) Update(dt float32) float64 {
	v, done := o.tween.Update(dt)
	o.value = float64(v)
	if !o.forward {
		o.value = 1 - o.value
	}
	if done {
		o.forward = !o.forward
		o.tween.Reset()
	}
	return o.value
}

// Value returns the most recent value without advancing.
func (o *Oscillator) Value() float64 {
	return o.value
}

// wrap returns x modulo m in [0, m).
func wrap(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}
