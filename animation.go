// Copyright 2026 The vectorcompat Authors. All rights reserved.

package vectorcompat

import (
	"fmt"
	"log/slog"
	"time"
)

// DefaultDuration is used when an AnimationSpec leaves Duration unset.
const DefaultDuration = 300 * time.Millisecond

// UnsetDuration, or any negative Duration, selects DefaultDuration.
const UnsetDuration time.Duration = -1

// RepeatInfinite makes an animation repeat until it is stopped.
const RepeatInfinite = -1

// RepeatMode selects how a repeating animation starts its next round.
type RepeatMode uint8

const (
	RepeatRestart RepeatMode = iota
	RepeatReverse
)

// AnimationSpec describes one property animation.
type AnimationSpec struct {
	Property Property
	// From is the start value; nil starts from the value the target holds
	// when the animation starts.
	From *Value
	To   Value

	// Duration is the length of one round. Zero jumps to the end value on
	// the first tick after the start delay.
	Duration    time.Duration
	StartDelay  time.Duration
	RepeatCount int
	RepeatMode  RepeatMode
	// Interpolator defaults to AccelerateDecelerate.
	Interpolator Interpolator
}

func (s AnimationSpec) duration() time.Duration {
	if s.Duration < 0 {
		return DefaultDuration
	}
	return s.Duration
}

// AnimationState is the lifecycle state of a BoundAnimation.
type AnimationState uint8

const (
	AnimationIdle AnimationState = iota
	AnimationRunning
)

func (s AnimationState) String() string {
	if s == AnimationRunning {
		return "running"
	}
	return "idle"
}

// BoundAnimation drives one property of one scene graph node. It does not
// schedule itself; the host calls Tick once per frame.
type BoundAnimation struct {
	name   string
	target Target
	spec   AnimationSpec

	state     AnimationState
	delayed   bool
	startTime time.Time
	from      Value
	morph     bool
	scratch   PathData
}

// Bind looks target up in v and attaches spec to it. The error wraps
// ErrUnknownTarget when no node carries the name, ErrUnsupportedProperty
// when the node lacks the property and ErrBadAttribute when a value has
// the wrong kind.
func Bind(v *Vector, target string, spec AnimationSpec) (*BoundAnimation, error) {
	t, ok := v.Lookup(target)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, target)
	}
	if !t.Supports(spec.Property) {
		return nil, fmt.Errorf("%w: %s on %q", ErrUnsupportedProperty, spec.Property, target)
	}
	kind := spec.Property.Kind()
	if spec.To.Kind != kind || spec.From != nil && spec.From.Kind != kind {
		return nil, fmt.Errorf("%w: %s on %q wants %s values", ErrBadAttribute, spec.Property, target, kind)
	}
	if spec.Interpolator == nil {
		spec.Interpolator = AccelerateDecelerate
	}
	return &BoundAnimation{name: target, target: t, spec: spec}, nil
}

func (a *BoundAnimation) TargetName() string    { return a.name }
func (a *BoundAnimation) Spec() AnimationSpec   { return a.spec }
func (a *BoundAnimation) State() AnimationState { return a.state }

// IsStarted reports whether Start was called and the animation has not
// finished or been stopped since.
func (a *BoundAnimation) IsStarted() bool { return a.state == AnimationRunning }

// IsRunning reports whether the animation is started and past its start
// delay at the time of the last tick.
func (a *BoundAnimation) IsRunning() bool {
	return a.state == AnimationRunning && !a.delayed
}

// Start begins the animation at now. Starting a started animation restarts
// it.
func (a *BoundAnimation) Start(now time.Time) {
	a.state = AnimationRunning
	a.startTime = now
	a.delayed = a.spec.StartDelay > 0
	if !a.delayed {
		a.begin()
		a.apply(0)
	}
}

// begin captures the start value and decides between morphing and
// snapping for path data.
func (a *BoundAnimation) begin() {
	if a.spec.From != nil {
		a.from = *a.spec.From
	} else {
		a.from, _ = a.target.Property(a.spec.Property)
	}
	if a.from.Kind == KindPath {
		a.from.Path = a.from.Path.Clone()
		a.morph = CanMorph(a.from.Path, a.spec.To.Path)
		if a.morph {
			a.scratch = a.from.Path.Clone()
		} else {
			Logger().Debug("path data cannot morph, snapping", slog.String("target", a.name))
		}
	}
}

// Tick applies the value for now and reports whether the animation is
// still started afterwards.
func (a *BoundAnimation) Tick(now time.Time) bool {
	if a.state != AnimationRunning {
		return false
	}
	elapsed := now.Sub(a.startTime) - a.spec.StartDelay
	if elapsed < 0 {
		return true
	}
	if a.delayed {
		a.delayed = false
		a.begin()
	}
	d := a.spec.duration()
	if d == 0 {
		a.finish()
		return false
	}
	round := int64(elapsed / d)
	if n := a.spec.RepeatCount; n != RepeatInfinite && round > int64(max(n, 0)) {
		a.finish()
		return false
	}
	frac := float64(elapsed%d) / float64(d)
	if a.spec.RepeatMode == RepeatReverse && round%2 == 1 {
		frac = 1 - frac
	}
	a.apply(frac)
	return true
}

// End jumps to the final value and leaves the animation idle. An animation
// that was never started is started and ended at once.
func (a *BoundAnimation) End() {
	if a.state != AnimationRunning || a.delayed {
		a.delayed = false
		a.begin()
	}
	a.finish()
}

// Cancel stops the animation, leaving the target at the last applied
// value.
func (a *BoundAnimation) Cancel() {
	a.state = AnimationIdle
	a.delayed = false
}

func (a *BoundAnimation) finish() {
	end := 1.0
	if a.spec.RepeatMode == RepeatReverse && a.spec.RepeatCount > 0 && a.spec.RepeatCount%2 == 1 {
		end = 0
	}
	a.apply(end)
	a.state = AnimationIdle
	a.delayed = false
}

// apply writes the value at elapsed fraction frac to the target. Writes
// bump the vector revision, which invalidates cached bitmaps.
func (a *BoundAnimation) apply(frac float64) {
	f := a.spec.Interpolator(frac)
	to := a.spec.To
	var v Value
	switch a.from.Kind {
	case KindFloat:
		v = FloatValue(a.from.Float + (to.Float-a.from.Float)*f)
	case KindColor:
		v = ColorValue(lerpColor(a.from.Color, to.Color, f))
	case KindPath:
		if !a.morph {
			v = to
			break
		}
		interpolateInto(a.scratch, a.from.Path, to.Path, f)
		v = PathValue(a.scratch)
	}
	if err := a.target.SetProperty(a.spec.Property, v); err != nil {
		Logger().Warn("animation update failed", slog.String("target", a.name), slog.Any("err", err))
	}
}

// clone rebinds a copy of the animation onto the node with the same name
// in v. The copy is idle.
func (a *BoundAnimation) clone(v *Vector) (*BoundAnimation, error) {
	return Bind(v, a.name, a.spec)
}
