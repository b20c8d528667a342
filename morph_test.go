// Copyright 2026 The vectorcompat Authors. All rights reserved.

package vectorcompat_test

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/raykov/vectorcompat"
)

type fakeImage struct {
	name   string
	bounds image.Rectangle
	filter ColorFilter
	draws  int
}

func (f *fakeImage) SetBounds(r image.Rectangle)  { f.bounds = r }
func (f *fakeImage) SetColorFilter(c ColorFilter) { f.filter = c }
func (f *fakeImage) IntrinsicSize() (w, h int)    { return 24, 24 }
func (f *fakeImage) Draw(Canvas)                  { f.draws++ }

type fakeAnim struct {
	fakeImage
	starts, stops int
	running       bool
}

func (f *fakeAnim) Start(time.Time)     { f.starts++; f.running = true }
func (f *fakeAnim) Stop()               { f.stops++; f.running = false }
func (f *fakeAnim) Tick(time.Time) bool { return f.running }
func (f *fakeAnim) IsRunning() bool     { return f.running }

type stateChange struct {
	state     MorphState
	animating bool
}

func TestMorphButtonToggle(t *testing.T) {
	b := NewMorphButton()
	b.SetClock(func() time.Time { return t0 })
	var changes []stateChange
	b.SetOnStateChanged(func(s MorphState, animating bool) {
		changes = append(changes, stateChange{s, animating})
	})

	start := &fakeAnim{fakeImage: fakeImage{name: "start"}}
	end := &fakeAnim{fakeImage: fakeImage{name: "end"}}
	b.SetStartImage(start)
	b.SetEndImage(end)
	assert.Equal(t, MorphStart, b.State())
	assert.Same(t, end, b.Background())
	// Showing the start state without animation jumps the end image to
	// its final frame.
	assert.Equal(t, 1, end.starts)
	assert.Equal(t, 1, end.stops)

	changes = nil
	b.Toggle()
	assert.Equal(t, MorphEnd, b.State())
	assert.Same(t, start, b.Background())
	assert.Equal(t, 1, start.starts)
	assert.Equal(t, 0, start.stops)
	assert.True(t, b.Tick(at(10)))

	b.Toggle()
	assert.Equal(t, MorphStart, b.State())
	assert.Same(t, end, b.Background())
	assert.Equal(t, 2, end.starts)
	assert.Equal(t, 1, end.stops)

	assert.Equal(t, []stateChange{{MorphEnd, true}, {MorphStart, true}}, changes)

	// Re-selecting the current state reports nothing.
	b.SetState(MorphStart, false)
	assert.Len(t, changes, 2)
	assert.False(t, b.Tick(at(20)))
}

func TestMorphButtonStaticImages(t *testing.T) {
	b := NewMorphButton()
	start := &fakeImage{name: "start"}
	end := &fakeImage{name: "end"}
	b.SetStartImage(start)
	b.SetEndImage(end)
	assert.Same(t, start, b.Background())

	b.SetState(MorphEnd, true)
	assert.Same(t, end, b.Background())
	assert.False(t, b.Tick(at(0)))

	b.Draw(NewRasterCanvas(image.NewRGBA(image.Rect(0, 0, 1, 1))))
	assert.Equal(t, 1, end.draws)
	assert.Equal(t, 0, start.draws)
}

func TestMorphButtonAutoStart(t *testing.T) {
	b := NewMorphButton()
	b.SetClock(func() time.Time { return t0 })
	start := &fakeAnim{}
	b.SetStartImage(start)
	var changes []stateChange
	b.SetOnStateChanged(func(s MorphState, animating bool) {
		changes = append(changes, stateChange{s, animating})
	})

	b.SetAutoStart(true)
	b.SetAutoStart(true)
	assert.Equal(t, MorphEnd, b.State())
	assert.Equal(t, []stateChange{{MorphEnd, true}}, changes)
	assert.True(t, start.running)
}

func TestMorphButtonPropagatesBoundsAndFilter(t *testing.T) {
	b := NewMorphButton()
	start := &fakeImage{}
	b.SetStartImage(start)

	r := image.Rect(0, 0, 48, 48)
	f := TintFilter{Color: color.NRGBA{A: 0xff}}
	b.SetBounds(r)
	b.SetColorFilter(f)
	assert.Equal(t, r, b.Bounds())
	assert.Equal(t, r, start.bounds)
	assert.Equal(t, f, start.filter)

	// Images set later adopt the current bounds and filter.
	end := &fakeImage{}
	b.SetEndImage(end)
	assert.Equal(t, r, end.bounds)
	assert.Equal(t, f, end.filter)
}

func TestMorphButtonWithAnimatedVector(t *testing.T) {
	av, err := ReadAnimatedVector("testdata/play_pause.xml", Options{})
	require.NoError(t, err)

	b := NewMorphButton()
	b.SetClock(func() time.Time { return t0 })
	b.SetBounds(image.Rect(0, 0, 48, 48))
	b.SetStartImage(av)
	assert.False(t, av.IsStarted())

	b.Toggle()
	assert.True(t, av.IsRunning())
	assert.True(t, b.Tick(at(100)))
	assert.False(t, b.Tick(at(1000)))

	img := image.NewRGBA(image.Rect(0, 0, 48, 48))
	b.Draw(NewRasterCanvas(img))
	assert.NotZero(t, img.RGBAAt(24, 24).A)
}
