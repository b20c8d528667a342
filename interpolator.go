// Copyright 2026 The vectorcompat Authors. All rights reserved.

package vectorcompat

import (
	"math"
	"strings"
)

// Interpolator maps the elapsed fraction of an animation, in [0,1], to the
// fraction of the value change to apply. Results may leave [0,1] for
// curves that overshoot.
type Interpolator func(t float64) float64

// Linear applies the value change evenly over time.
func Linear(t float64) float64 { return t }

// Accelerate starts slowly and speeds up.
func Accelerate(t float64) float64 { return t * t }

// Decelerate starts quickly and slows down.
func Decelerate(t float64) float64 { return t * (2 - t) }

// AccelerateDecelerate starts and ends slowly. It is the default curve.
func AccelerateDecelerate(t float64) float64 {
	return math.Cos((t+1)*math.Pi)/2 + 0.5
}

const tension = 2.0

// Anticipate moves backwards before going forward.
func Anticipate(t float64) float64 {
	return t * t * ((tension+1)*t - tension)
}

// Overshoot goes past the final value and settles back.
func Overshoot(t float64) float64 {
	t--
	return t*t*((tension+1)*t+tension) + 1
}

// Bounce drops into the final value and bounces off it.
func Bounce(t float64) float64 {
	const n1, d1 = 7.5625, 2.75
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}

// Material motion curves.
var (
	FastOutSlowIn   = CubicBezier(0.4, 0, 0.2, 1)
	FastOutLinearIn = CubicBezier(0.4, 0, 1, 1)
	LinearOutSlowIn = CubicBezier(0, 0, 0.2, 1)
)

// CubicBezier returns the timing curve through (0,0), (x1,y1), (x2,y2)
// and (1,1). x1 and x2 are clamped to [0,1] so the curve is a function
// of time.
func CubicBezier(x1, y1, x2, y2 float64) Interpolator {
	x1 = min(max(x1, 0), 1)
	x2 = min(max(x2, 0), 1)
	bez := func(p1, p2, s float64) float64 {
		r := 1 - s
		return 3*r*r*s*p1 + 3*r*s*s*p2 + s*s*s
	}
	slope := func(p1, p2, s float64) float64 {
		r := 1 - s
		return 3*r*r*p1 + 6*r*s*(p2-p1) + 3*s*s*(1-p2)
	}
	return func(t float64) float64 {
		if t <= 0 || t >= 1 {
			return t
		}
		// Newton steps converge for well-behaved curves; bisection
		// catches the flat ones.
		s := t
		for range 8 {
			d := slope(x1, x2, s)
			if math.Abs(d) < 1e-6 {
				break
			}
			x := bez(x1, x2, s) - t
			if math.Abs(x) < 1e-7 {
				return bez(y1, y2, s)
			}
			s -= x / d
		}
		lo, hi := 0.0, 1.0
		s = t
		for range 40 {
			x := bez(x1, x2, s)
			if math.Abs(x-t) < 1e-7 {
				break
			}
			if x < t {
				lo = s
			} else {
				hi = s
			}
			s = (lo + hi) / 2
		}
		return bez(y1, y2, s)
	}
}

var interpolators = map[string]Interpolator{
	"linear":                Linear,
	"accelerate":            Accelerate,
	"decelerate":            Decelerate,
	"accelerate_decelerate": AccelerateDecelerate,
	"anticipate":            Anticipate,
	"overshoot":             Overshoot,
	"bounce":                Bounce,
	"fast_out_slow_in":      FastOutSlowIn,
	"fast_out_linear_in":    FastOutLinearIn,
	"linear_out_slow_in":    LinearOutSlowIn,
	"anticipate_overshoot":  anticipateOvershoot,
	"ease_in":               Accelerate,
	"ease_out":              Decelerate,
	"ease_in_out":           AccelerateDecelerate,
}

func anticipateOvershoot(t float64) float64 {
	const s = tension * 1.5
	a := func(t float64) float64 { return t * t * ((s+1)*t - s) }
	o := func(t float64) float64 { return t * t * ((s+1)*t + s) }
	if t < 0.5 {
		return 0.5 * a(t*2)
	}
	return 0.5 * (o(t*2-2) + 2)
}

// ParseInterpolator resolves an interpolator reference such as
// "@android:interpolator/fast_out_slow_in",
// "@android:anim/accelerate_interpolator" or plain "linear".
func ParseInterpolator(ref string) (Interpolator, bool) {
	name := strings.TrimSpace(ref)
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "_interpolator")
	f, ok := interpolators[name]
	return f, ok
}
