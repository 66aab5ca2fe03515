package defs

import "github.com/tanema/gween/ease"

var curves = map[string]ease.TweenFunc{
	"":             ease.Linear,
	"linear":       ease.Linear,
	"in_quad":      ease.InQuad,
	"out_quad":     ease.OutQuad,
	"in_out_quad":  ease.InOutQuad,
	"in_cubic":     ease.InCubic,
	"out_cubic":    ease.OutCubic,
	"in_out_cubic": ease.InOutCubic,
	"in_sine":      ease.InSine,
	"out_sine":     ease.OutSine,
	"in_out_sine":  ease.InOutSine,
	"in_expo":      ease.InExpo,
}

// Curve returns the easing function registered under name. Empty means linear.
func Curve(name string) (ease.TweenFunc, bool) {
	fn, ok := curves[name]
	return fn, ok
}

// Interpolate eases from a to b, with t in [0,1].
func Interpolate(name string, a, b, t float64) float64 {
	fn, ok := Curve(name)
	if !ok {
		fn = ease.Linear
	}
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return float64(fn(float32(t), float32(a), float32(b-a), 1))
}

// SampleAt interpolates the invader's attributes for t in [0,1].
func (d InvaderDefinition) SampleAt(t float64) InvaderSample {
	return InvaderSample{
		Life:   Interpolate(d.Ease, d.First.Life, d.Last.Life, t),
		Speed:  Interpolate(d.Ease, d.First.Speed, d.Last.Speed, t),
		Bounty: int(Interpolate(d.Ease, float64(d.First.Bounty), float64(d.Last.Bounty), t) + 0.5),
	}
}
