// Copyright 2026 The vectorcompat Authors. All rights reserved.

package vectorcompat

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"time"
)

// Binding names the node an AnimationSpec drives.
type Binding struct {
	Target string
	Spec   AnimationSpec
}

// AnimatedVector is a drawable whose scene graph is driven by property
// animations. Its bitmap cache is disabled since the geometry changes
// every frame.
type AnimatedVector struct {
	drawable   *Drawable
	animations []*BoundAnimation
}

// NewAnimatedVector binds every entry of bindings onto the vector of d.
// Bindings that fail are dropped and their errors joined into the returned
// error; the AnimatedVector is usable with the remaining ones.
func NewAnimatedVector(d *Drawable, bindings []Binding) (*AnimatedVector, error) {
	d.SetAllowCaching(false)
	av := &AnimatedVector{drawable: d}
	var errs []error
	for _, b := range bindings {
		a, err := Bind(d.vector, b.Target, b.Spec)
		if err != nil {
			Logger().Warn("dropping animation", slog.String("target", b.Target), slog.Any("err", err))
			errs = append(errs, err)
			continue
		}
		av.animations = append(av.animations, a)
	}
	return av, errors.Join(errs...)
}

func (av *AnimatedVector) Drawable() *Drawable           { return av.drawable }
func (av *AnimatedVector) Animations() []*BoundAnimation { return av.animations }

// Start starts every animation that is not started yet.
func (av *AnimatedVector) Start(now time.Time) {
	for _, a := range av.animations {
		if !a.IsStarted() {
			a.Start(now)
		}
	}
	av.drawable.InvalidateSelf()
}

// Stop ends every animation, leaving each target at its final value.
func (av *AnimatedVector) Stop() {
	for _, a := range av.animations {
		a.End()
	}
	av.drawable.InvalidateSelf()
}

// Tick advances every animation to now and reports whether any is still
// started.
func (av *AnimatedVector) Tick(now time.Time) bool {
	started := false
	for _, a := range av.animations {
		if a.Tick(now) {
			started = true
		}
	}
	return started
}

// IsRunning reports whether at least one animation is past its start
// delay and not finished.
func (av *AnimatedVector) IsRunning() bool {
	for _, a := range av.animations {
		if a.IsRunning() {
			return true
		}
	}
	return false
}

// IsStarted reports whether at least one animation is started.
func (av *AnimatedVector) IsStarted() bool {
	for _, a := range av.animations {
		if a.IsStarted() {
			return true
		}
	}
	return false
}

// Draw draws the current frame and asks for another while animations are
// started.
func (av *AnimatedVector) Draw(c Canvas) {
	av.drawable.Draw(c)
	if av.IsStarted() {
		av.drawable.InvalidateSelf()
	}
}

func (av *AnimatedVector) SetBounds(r image.Rectangle)  { av.drawable.SetBounds(r) }
func (av *AnimatedVector) SetColorFilter(f ColorFilter) { av.drawable.SetColorFilter(f) }
func (av *AnimatedVector) SetInvalidateFunc(fn func())  { av.drawable.SetInvalidateFunc(fn) }
func (av *AnimatedVector) IntrinsicSize() (w, h int)    { return av.drawable.IntrinsicSize() }
func (av *AnimatedVector) Bounds() image.Rectangle      { return av.drawable.Bounds() }

func (av *AnimatedVector) SetLayoutDirection(dir LayoutDirection) {
	av.drawable.SetLayoutDirection(dir)
}

// Clone copies the drawable and rebinds idle copies of the animations onto
// the copied scene graph.
func (av *AnimatedVector) Clone() *AnimatedVector {
	c := &AnimatedVector{drawable: av.drawable.Clone()}
	c.drawable.SetAllowCaching(false)
	for _, a := range av.animations {
		// Names resolved on av's graph resolve on the copy too.
		if b, err := a.clone(c.drawable.vector); err == nil {
			c.animations = append(c.animations, b)
		}
	}
	return c
}

// FrameClock calls a frame function at a fixed rate.
type FrameClock struct {
	// Now returns the frame time; nil uses the ticker time.
	Now func() time.Time
}

// Run calls frame once immediately and then fps times per second until
// frame returns false or ctx is done. It returns ctx.Err() when cancelled.
func (fc FrameClock) Run(ctx context.Context, fps int, frame func(time.Time) bool) error {
	if fps <= 0 {
		fps = 60
	}
	now := func(t time.Time) time.Time {
		if fc.Now != nil {
			return fc.Now()
		}
		return t
	}
	if !frame(now(time.Now())) {
		return nil
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t := <-ticker.C:
			if !frame(now(t)) {
				return nil
			}
		}
	}
}
