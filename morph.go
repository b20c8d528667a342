// Copyright 2026 The vectorcompat Authors. All rights reserved.

package vectorcompat

import (
	"image"
	"time"
)

// Image is a drawable picture: a static Drawable, an AnimatedVector or a
// decoded bitmap.
type Image interface {
	SetBounds(r image.Rectangle)
	SetColorFilter(f ColorFilter)
	IntrinsicSize() (w, h int)
	Draw(c Canvas)
}

// Animatable is an Image that can play an animation. Tick advances it to
// now and reports whether it needs more frames.
type Animatable interface {
	Image
	Start(now time.Time)
	Stop()
	Tick(now time.Time) bool
	IsRunning() bool
}

// MorphState is one of the two states of a MorphButton.
type MorphState uint8

const (
	MorphStart MorphState = iota
	MorphEnd
)

func (s MorphState) String() string {
	if s == MorphEnd {
		return "end"
	}
	return "start"
}

// MorphButton is a two-state toggle drawn with one image per state.
// Switching state plays the animation of the image that morphs from the
// old state into the new one.
type MorphButton struct {
	start, end  Image
	startMorph  Animatable
	endMorph    Animatable
	background  Image
	state       MorphState
	hasStarted  bool
	bounds      image.Rectangle
	colorFilter ColorFilter
	onChange    func(state MorphState, animating bool)
	now         func() time.Time
}

// NewMorphButton returns a button in the start state with no images.
func NewMorphButton() *MorphButton {
	b := &MorphButton{now: time.Now}
	b.SetState(MorphStart, false)
	return b
}

// SetClock replaces the time source used to start animations.
func (b *MorphButton) SetClock(now func() time.Time) { b.now = now }

func (b *MorphButton) State() MorphState       { return b.state }
func (b *MorphButton) Background() Image       { return b.background }
func (b *MorphButton) Bounds() image.Rectangle { return b.bounds }

// SetStartImage sets the image shown in the start state. An Animatable
// image morphs into the end state.
func (b *MorphButton) SetStartImage(img Image) {
	b.start = img
	b.startMorph, _ = img.(Animatable)
	b.adopt(img)
	b.SetState(b.state, false)
}

// SetEndImage sets the image shown in the end state. An Animatable image
// morphs into the start state.
func (b *MorphButton) SetEndImage(img Image) {
	b.end = img
	b.endMorph, _ = img.(Animatable)
	b.adopt(img)
	b.SetState(b.state, false)
}

func (b *MorphButton) adopt(img Image) {
	if img == nil {
		return
	}
	img.SetBounds(b.bounds)
	if b.colorFilter != nil {
		img.SetColorFilter(b.colorFilter)
	}
}

// SetOnStateChanged registers fn to be told about state changes.
func (b *MorphButton) SetOnStateChanged(fn func(state MorphState, animating bool)) {
	b.onChange = fn
}

// SetAutoStart plays the transition to the end state once, the first time
// it is enabled.
func (b *MorphButton) SetAutoStart(auto bool) {
	if auto && !b.hasStarted {
		b.hasStarted = true
		b.SetState(MorphEnd, true)
	}
}

// Toggle switches to the other state with animation.
func (b *MorphButton) Toggle() {
	b.hasStarted = true
	next := MorphEnd
	if b.state == MorphEnd {
		next = MorphStart
	}
	b.SetState(next, true)
}

// SetState shows state. With animate set, the image of the opposite state
// plays its morph into state; otherwise it jumps to its final frame.
// The listener is told only about actual changes once the button has been
// toggled or auto-started.
func (b *MorphButton) SetState(state MorphState, animate bool) {
	if state == MorphStart {
		b.background = b.pick(b.endMorph, b.end, b.start)
		b.play(b.endMorph, animate)
	} else {
		b.background = b.pick(b.startMorph, b.start, b.end)
		b.play(b.startMorph, animate)
	}
	if b.state == state && b.hasStarted {
		return
	}
	b.state = state
	if b.onChange != nil {
		b.onChange(state, animate)
	}
}

func (b *MorphButton) pick(morph Animatable, morphImg, fallback Image) Image {
	if morph != nil {
		return morphImg
	}
	return fallback
}

func (b *MorphButton) play(a Animatable, animate bool) {
	if a == nil {
		return
	}
	a.Start(b.now())
	if !animate {
		a.Stop()
	}
}

// SetBounds sets the area both images draw into.
func (b *MorphButton) SetBounds(r image.Rectangle) {
	b.bounds = r
	for _, img := range []Image{b.start, b.end} {
		if img != nil {
			img.SetBounds(r)
		}
	}
}

// SetColorFilter applies f to both images.
func (b *MorphButton) SetColorFilter(f ColorFilter) {
	b.colorFilter = f
	for _, img := range []Image{b.start, b.end} {
		if img != nil {
			img.SetColorFilter(f)
		}
	}
}

// Tick advances the animation of the current background and reports
// whether it needs more frames.
func (b *MorphButton) Tick(now time.Time) bool {
	if a, ok := b.background.(Animatable); ok {
		return a.Tick(now)
	}
	return false
}

// Draw draws the current background.
func (b *MorphButton) Draw(c Canvas) {
	if b.background != nil {
		b.background.Draw(c)
	}
}
