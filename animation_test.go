// Copyright 2026 The vectorcompat Authors. All rights reserved.

package vectorcompat_test

import (
	"context"
	"image"
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/raykov/vectorcompat"
)

var t0 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

func floatPtr(f float64) *Value {
	v := FloatValue(f)
	return &v
}

// animVector has a root named "root", a group "g" and a path "p".
func animVector(t *testing.T) *Vector {
	return parseTestVector(t, 10, `<group android:name="g">
		<path android:name="p" android:pathData="M0,0 L10,0" android:fillColor="#ff0000" android:strokeColor="#ff0000"/>
	</group>`)
}

func rotation(t *testing.T, v *Vector) float64 {
	g, ok := v.Lookup("g")
	require.True(t, ok)
	return g.(*Group).Rotation()
}

func TestBindErrors(t *testing.T) {
	v := animVector(t)
	tests := []struct {
		name   string
		target string
		spec   AnimationSpec
		want   error
	}{
		{
			name:   "unknown target",
			target: "nope",
			spec:   AnimationSpec{Property: PropRotation, To: FloatValue(1)},
			want:   ErrUnknownTarget,
		},
		{
			name:   "group has no fill",
			target: "g",
			spec:   AnimationSpec{Property: PropFillAlpha, To: FloatValue(1)},
			want:   ErrUnsupportedProperty,
		},
		{
			name:   "path has no rotation",
			target: "p",
			spec:   AnimationSpec{Property: PropRotation, To: FloatValue(1)},
			want:   ErrUnsupportedProperty,
		},
		{
			name:   "root only has alpha",
			target: "root",
			spec:   AnimationSpec{Property: PropScaleX, To: FloatValue(1)},
			want:   ErrUnsupportedProperty,
		},
		{
			name:   "value kind",
			target: "p",
			spec:   AnimationSpec{Property: PropFillColor, To: FloatValue(1)},
			want:   ErrBadAttribute,
		},
		{
			name:   "from kind",
			target: "p",
			spec:   AnimationSpec{Property: PropFillAlpha, From: &Value{Kind: KindColor}, To: FloatValue(1)},
			want:   ErrBadAttribute,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Bind(v, test.target, test.spec)
			assert.ErrorIs(t, err, test.want)
		})
	}
}

func TestAnimateFloat(t *testing.T) {
	v := animVector(t)
	a, err := Bind(v, "g", AnimationSpec{
		Property:     PropRotation,
		From:         floatPtr(0),
		To:           FloatValue(90),
		Duration:     100 * time.Millisecond,
		Interpolator: Linear,
	})
	require.NoError(t, err)
	assert.Equal(t, "g", a.TargetName())
	assert.Equal(t, AnimationIdle, a.State())

	a.Start(t0)
	assert.True(t, a.IsRunning())
	assert.Equal(t, 0.0, rotation(t, v))

	assert.True(t, a.Tick(at(50)))
	assert.InDelta(t, 45, rotation(t, v), 1e-9)

	assert.False(t, a.Tick(at(100)))
	assert.Equal(t, 90.0, rotation(t, v))
	assert.False(t, a.IsStarted())
	assert.Equal(t, AnimationIdle, a.State())

	// Ticking an idle animation is a no-op.
	assert.False(t, a.Tick(at(150)))
}

func TestAnimateFromCurrentValue(t *testing.T) {
	v := animVector(t)
	g, _ := v.Lookup("g")
	g.(*Group).SetRotation(30)
	a, err := Bind(v, "g", AnimationSpec{Property: PropRotation, To: FloatValue(90), Duration: 100 * time.Millisecond, Interpolator: Linear})
	require.NoError(t, err)
	a.Start(t0)
	a.Tick(at(50))
	assert.InDelta(t, 60, rotation(t, v), 1e-9)
}

func TestAnimateColor(t *testing.T) {
	v := animVector(t)
	from := ColorValue(color.NRGBA{0xff, 0, 0, 0xff})
	a, err := Bind(v, "p", AnimationSpec{
		Property:     PropFillColor,
		From:         &from,
		To:           ColorValue(color.NRGBA{0, 0, 0xff, 0xff}),
		Duration:     100 * time.Millisecond,
		Interpolator: Linear,
	})
	require.NoError(t, err)
	a.Start(t0)
	a.Tick(at(50))
	p, _ := v.Lookup("p")
	assert.Equal(t, color.NRGBA{128, 0, 128, 0xff}, p.(*FullPath).FillColor())
}

func TestAnimatePathData(t *testing.T) {
	v := animVector(t)
	p, _ := v.Lookup("p")
	path := p.(*FullPath)

	a, err := Bind(v, "p", AnimationSpec{
		Property:     PropPathData,
		To:           PathValue(MustParsePathData("M0,10 L10,10")),
		Duration:     100 * time.Millisecond,
		Interpolator: Linear,
	})
	require.NoError(t, err)
	a.Start(t0)
	a.Tick(at(50))
	assert.Equal(t, "M0,5 L10,5", path.PathData().String())
	a.Tick(at(100))
	assert.Equal(t, "M0,10 L10,10", path.PathData().String())
}

func TestAnimatePathDataSnapsWhenIncompatible(t *testing.T) {
	v := animVector(t)
	p, _ := v.Lookup("p")
	to := MustParsePathData("M0,0 L10,0 L10,10")

	a, err := Bind(v, "p", AnimationSpec{Property: PropPathData, To: PathValue(to), Duration: 100 * time.Millisecond})
	require.NoError(t, err)
	a.Start(t0)
	assert.True(t, p.(*FullPath).PathData().Equal(to))
	a.Tick(at(50))
	assert.True(t, p.(*FullPath).PathData().Equal(to))
}

func TestAnimateRootAlpha(t *testing.T) {
	v := animVector(t)
	a, err := Bind(v, "root", AnimationSpec{
		Property:     PropAlpha,
		To:           FloatValue(0),
		Duration:     100 * time.Millisecond,
		Interpolator: Linear,
	})
	require.NoError(t, err)
	a.Start(t0)
	assert.Equal(t, uint8(0xff), v.RootAlpha())
	a.Tick(at(50))
	assert.Equal(t, uint8(127), v.RootAlpha())
}

func TestAnimationEndAndCancel(t *testing.T) {
	spec := AnimationSpec{Property: PropRotation, From: floatPtr(0), To: FloatValue(90), Duration: 100 * time.Millisecond, Interpolator: Linear}

	t.Run("end", func(t *testing.T) {
		v := animVector(t)
		a, err := Bind(v, "g", spec)
		require.NoError(t, err)
		a.Start(t0)
		a.Tick(at(50))
		a.End()
		assert.Equal(t, 90.0, rotation(t, v))
		assert.False(t, a.IsStarted())
	})
	t.Run("end before start", func(t *testing.T) {
		v := animVector(t)
		a, err := Bind(v, "g", spec)
		require.NoError(t, err)
		a.End()
		assert.Equal(t, 90.0, rotation(t, v))
	})
	t.Run("cancel", func(t *testing.T) {
		v := animVector(t)
		a, err := Bind(v, "g", spec)
		require.NoError(t, err)
		a.Start(t0)
		a.Tick(at(50))
		a.Cancel()
		assert.InDelta(t, 45, rotation(t, v), 1e-9)
		assert.False(t, a.IsStarted())
		assert.False(t, a.Tick(at(100)))
		assert.InDelta(t, 45, rotation(t, v), 1e-9)
	})
}

func TestAnimationStartDelay(t *testing.T) {
	v := animVector(t)
	g, _ := v.Lookup("g")
	g.(*Group).SetRotation(10)
	a, err := Bind(v, "g", AnimationSpec{
		Property:     PropRotation,
		To:           FloatValue(90),
		Duration:     100 * time.Millisecond,
		StartDelay:   50 * time.Millisecond,
		Interpolator: Linear,
	})
	require.NoError(t, err)

	a.Start(t0)
	assert.True(t, a.IsStarted())
	assert.False(t, a.IsRunning())
	assert.True(t, a.Tick(at(20)))
	assert.False(t, a.IsRunning())
	assert.Equal(t, 10.0, rotation(t, v))

	// The start value is read when the delay ends.
	g.(*Group).SetRotation(20)
	assert.True(t, a.Tick(at(100)))
	assert.True(t, a.IsRunning())
	assert.InDelta(t, 55, rotation(t, v), 1e-9)
}

func TestAnimationRepeat(t *testing.T) {
	tests := []struct {
		name  string
		count int
		mode  RepeatMode
		ticks map[int]float64
		done  int
		final float64
	}{
		{
			name:  "restart",
			count: 2,
			mode:  RepeatRestart,
			ticks: map[int]float64{50: 50, 150: 50, 275: 75},
			done:  300,
			final: 100,
		},
		{
			name:  "reverse",
			count: 1,
			mode:  RepeatReverse,
			ticks: map[int]float64{25: 25, 125: 75, 150: 50},
			done:  200,
			final: 0,
		},
		{
			name:  "reverse even",
			count: 2,
			mode:  RepeatReverse,
			ticks: map[int]float64{225: 25},
			done:  300,
			final: 100,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v := animVector(t)
			a, err := Bind(v, "g", AnimationSpec{
				Property:     PropTranslateX,
				From:         floatPtr(0),
				To:           FloatValue(100),
				Duration:     100 * time.Millisecond,
				RepeatCount:  test.count,
				RepeatMode:   test.mode,
				Interpolator: Linear,
			})
			require.NoError(t, err)
			g, _ := v.Lookup("g")
			a.Start(t0)
			for ms, want := range test.ticks {
				assert.True(t, a.Tick(at(ms)))
				x, _ := g.(*Group).Translation()
				assert.InDelta(t, want, x, 1e-9, "at %dms", ms)
			}
			assert.False(t, a.Tick(at(test.done)))
			x, _ := g.(*Group).Translation()
			assert.Equal(t, test.final, x)
		})
	}
}

func TestAnimationRepeatInfinite(t *testing.T) {
	v := animVector(t)
	a, err := Bind(v, "g", AnimationSpec{Property: PropRotation, To: FloatValue(90), Duration: 100 * time.Millisecond, RepeatCount: RepeatInfinite})
	require.NoError(t, err)
	a.Start(t0)
	assert.True(t, a.Tick(at(10_000)))
	a.End()
	assert.Equal(t, 90.0, rotation(t, v))
}

func TestAnimationDurations(t *testing.T) {
	v := animVector(t)
	a, err := Bind(v, "g", AnimationSpec{Property: PropRotation, To: FloatValue(90), Duration: UnsetDuration, Interpolator: Linear})
	require.NoError(t, err)
	a.Start(t0)
	assert.True(t, a.Tick(at(150)))
	assert.InDelta(t, 45, rotation(t, v), 1e-9)

	b, err := Bind(v, "g", AnimationSpec{Property: PropRotation, To: FloatValue(10)})
	require.NoError(t, err)
	b.Start(t0)
	assert.False(t, b.Tick(t0))
	assert.Equal(t, 10.0, rotation(t, v))

	c, err := Bind(v, "g", AnimationSpec{Property: PropRotation, To: FloatValue(20), StartDelay: 50 * time.Millisecond})
	require.NoError(t, err)
	c.Start(t0)
	assert.True(t, c.Tick(at(40)))
	assert.Equal(t, 10.0, rotation(t, v))
	assert.False(t, c.Tick(at(50)))
	assert.Equal(t, 20.0, rotation(t, v))
}

func TestAnimationBumpsRevision(t *testing.T) {
	v := animVector(t)
	a, err := Bind(v, "g", AnimationSpec{Property: PropRotation, From: floatPtr(0), To: FloatValue(90), Duration: 100 * time.Millisecond})
	require.NoError(t, err)
	a.Start(t0)
	before := v.Revision()
	a.Tick(at(50))
	assert.Greater(t, v.Revision(), before)
}

func TestNewAnimatedVectorDropsBadBindings(t *testing.T) {
	d := NewDrawable(animVector(t), Options{})
	av, err := NewAnimatedVector(d, []Binding{
		{Target: "g", Spec: AnimationSpec{Property: PropRotation, To: FloatValue(90)}},
		{Target: "missing", Spec: AnimationSpec{Property: PropRotation, To: FloatValue(90)}},
		{Target: "p", Spec: AnimationSpec{Property: PropRotation, To: FloatValue(90)}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownTarget)
	assert.ErrorIs(t, err, ErrUnsupportedProperty)
	require.NotNil(t, av)
	require.Len(t, av.Animations(), 1)
	assert.Equal(t, "g", av.Animations()[0].TargetName())
}

func TestAnimatedVectorLifecycle(t *testing.T) {
	d := NewDrawable(animVector(t), Options{})
	av, err := NewAnimatedVector(d, []Binding{
		{Target: "g", Spec: AnimationSpec{Property: PropRotation, From: floatPtr(0), To: FloatValue(90), Duration: 100 * time.Millisecond, Interpolator: Linear}},
		{Target: "p", Spec: AnimationSpec{Property: PropFillAlpha, From: floatPtr(1), To: FloatValue(0), Duration: 200 * time.Millisecond, StartDelay: 50 * time.Millisecond}},
	})
	require.NoError(t, err)
	av.SetBounds(image.Rect(0, 0, 10, 10))
	calls := 0
	av.SetInvalidateFunc(func() { calls++ })

	assert.False(t, av.IsStarted())
	av.Start(t0)
	assert.Equal(t, 1, calls)
	assert.True(t, av.IsStarted())
	assert.True(t, av.IsRunning())

	drawOnto(av, 10, 10)
	assert.Equal(t, 2, calls, "drawing a started animation asks for the next frame")

	assert.True(t, av.Tick(at(150)))
	assert.Equal(t, 90.0, rotation(t, d.Vector()))
	assert.True(t, av.Tick(at(249)))
	assert.False(t, av.Tick(at(250)))
	assert.False(t, av.IsRunning())

	av.Start(t0)
	av.Stop()
	assert.False(t, av.IsStarted())
	p, _ := d.Vector().Lookup("p")
	assert.Equal(t, 0.0, p.(*FullPath).FillAlpha())

	n := calls
	drawOnto(av, 10, 10)
	assert.Equal(t, n, calls)
	assert.Zero(t, d.CacheStats().Hits)
}

func TestAnimatedVectorClone(t *testing.T) {
	d := NewDrawable(animVector(t), Options{})
	av, err := NewAnimatedVector(d, []Binding{
		{Target: "g", Spec: AnimationSpec{Property: PropRotation, From: floatPtr(0), To: FloatValue(90), Duration: 100 * time.Millisecond, Interpolator: Linear}},
	})
	require.NoError(t, err)
	av.Start(t0)

	c := av.Clone()
	require.Len(t, c.Animations(), 1)
	assert.False(t, c.IsStarted())

	c.Start(t0)
	c.Tick(at(50))
	assert.InDelta(t, 45, rotation(t, c.Drawable().Vector()), 1e-9)
	assert.Equal(t, 0.0, rotation(t, av.Drawable().Vector()))
}

func TestFrameClock(t *testing.T) {
	t.Run("stops when frame returns false", func(t *testing.T) {
		n := 0
		fc := FrameClock{Now: func() time.Time { return at(n) }}
		var seen []time.Time
		err := fc.Run(context.Background(), 1000, func(now time.Time) bool {
			seen = append(seen, now)
			n++
			return n < 3
		})
		require.NoError(t, err)
		assert.Equal(t, []time.Time{at(0), at(1), at(2)}, seen)
	})
	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		frames := 0
		err := FrameClock{}.Run(ctx, 0, func(time.Time) bool {
			frames++
			return true
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, frames)
	})
}

func TestInterpolators(t *testing.T) {
	named := []string{
		"linear", "accelerate", "decelerate", "accelerate_decelerate", "anticipate",
		"overshoot", "bounce", "fast_out_slow_in", "fast_out_linear_in", "linear_out_slow_in",
		"anticipate_overshoot", "ease_in", "ease_out", "ease_in_out",
	}
	for _, name := range named {
		t.Run(name, func(t *testing.T) {
			f, ok := ParseInterpolator(name)
			require.True(t, ok)
			assert.InDelta(t, 0, f(0), 1e-9)
			assert.InDelta(t, 1, f(1), 1e-9)
		})
	}

	assert.Less(t, Anticipate(0.2), 0.0)
	assert.Greater(t, Overshoot(0.8), 1.0)
	assert.InDelta(t, 0.5, AccelerateDecelerate(0.5), 1e-9)
	assert.InDelta(t, 0.8024, CubicBezier(0.25, 0.1, 0.25, 1)(0.5), 1e-3)
	assert.InDelta(t, 0.5, CubicBezier(0, 0, 1, 1)(0.5), 1e-6)
	assert.False(t, math.IsNaN(FastOutSlowIn(0.999)))
}

func TestParseInterpolator(t *testing.T) {
	tests := []struct {
		ref  string
		want float64 // value at 0.5
		ok   bool
	}{
		{ref: "@android:interpolator/linear", want: 0.5, ok: true},
		{ref: "@android:anim/accelerate_interpolator", want: 0.25, ok: true},
		{ref: "@android:anim/decelerate_interpolator", want: 0.75, ok: true},
		{ref: " ease_in ", want: 0.25, ok: true},
		{ref: "@interpolator/wobbly"},
	}
	for _, test := range tests {
		t.Run(test.ref, func(t *testing.T) {
			f, ok := ParseInterpolator(test.ref)
			require.Equal(t, test.ok, ok)
			if ok {
				assert.InDelta(t, test.want, f(0.5), 1e-9)
			}
		})
	}
}
