// Copyright 2026 The vectorcompat Authors. All rights reserved.

package vectorcompat

import (
	"image"
	"image/color"
	"log/slog"
)

// LayoutDirection is the reading direction of the host layout.
type LayoutDirection uint8

const (
	LayoutLTR LayoutDirection = iota
	LayoutRTL
)

// Drawable owns a Vector and draws it into bounds on a Canvas, caching the
// rendered pixels between draws.
//
// A Drawable is not safe for concurrent use; callers drawing from several
// goroutines must serialize.
type Drawable struct {
	vector       *Vector
	bounds       image.Rectangle
	tint         *color.NRGBA
	tintMode     TintMode
	colorFilter  ColorFilter
	autoMirrored bool
	layoutDir    LayoutDirection
	allowCaching bool

	opts     Options
	renderer *Renderer
	cache    RenderCache
	stats    CacheStats

	onInvalidate func()
}

// NewDrawable takes ownership of v. Tint, tint mode and mirroring start out
// as declared by v.
func NewDrawable(v *Vector, opts Options) *Drawable {
	d := &Drawable{
		vector:       v,
		tintMode:     v.TintMode,
		autoMirrored: v.AutoMirrored,
		allowCaching: !opts.DisableCaching,
		opts:         opts,
		renderer:     NewRenderer(opts),
	}
	if v.Tint != nil {
		t := *v.Tint
		d.tint = &t
	}
	return d
}

func (d *Drawable) Vector() *Vector         { return d.vector }
func (d *Drawable) Bounds() image.Rectangle { return d.bounds }
func (d *Drawable) Renderer() *Renderer     { return d.renderer }
func (d *Drawable) Cache() *RenderCache     { return &d.cache }
func (d *Drawable) Alpha() uint8            { return d.vector.rootAlpha }
func (d *Drawable) TintMode() TintMode      { return d.tintMode }
func (d *Drawable) AutoMirrored() bool      { return d.autoMirrored }

// IntrinsicSize is the declared size of the image in pixels.
func (d *Drawable) IntrinsicSize() (w, h int) {
	return int(d.vector.baseWidth), int(d.vector.baseHeight)
}

// PixelSize is the size of one viewport unit in intrinsic pixels, taking
// the smaller of the two axes.
func (d *Drawable) PixelSize() float64 {
	v := d.vector
	return min(v.baseWidth/v.viewportWidth, v.baseHeight/v.viewportHeight)
}

// CacheStats returns the cache counters. Renders counts renderer walks.
func (d *Drawable) CacheStats() CacheStats {
	s := d.stats
	s.Renders = d.renderer.Walks()
	return s
}

// SetInvalidateFunc registers fn to be called whenever the drawable needs
// to be redrawn.
func (d *Drawable) SetInvalidateFunc(fn func()) { d.onInvalidate = fn }

// InvalidateSelf requests a redraw from the host.
func (d *Drawable) InvalidateSelf() {
	if d.onInvalidate != nil {
		d.onInvalidate()
	}
}

func (d *Drawable) SetBounds(r image.Rectangle) {
	if d.bounds != r {
		d.bounds = r
		d.InvalidateSelf()
	}
}

// SetAlpha sets the root alpha.
func (d *Drawable) SetAlpha(a uint8) {
	if d.vector.rootAlpha != a {
		d.vector.SetRootAlpha(a)
		d.InvalidateSelf()
	}
}

// SetTint sets the tint color; nil removes the tint.
func (d *Drawable) SetTint(c *color.NRGBA) {
	if c != nil {
		t := *c
		c = &t
	}
	d.tint = c
	d.InvalidateSelf()
}

func (d *Drawable) SetTintMode(m TintMode) {
	if d.tintMode != m {
		d.tintMode = m
		d.InvalidateSelf()
	}
}

// SetColorFilter sets a filter that takes precedence over the tint.
func (d *Drawable) SetColorFilter(f ColorFilter) {
	d.colorFilter = f
	d.InvalidateSelf()
}

func (d *Drawable) SetAutoMirrored(b bool) {
	if d.autoMirrored != b {
		d.autoMirrored = b
		d.InvalidateSelf()
	}
}

func (d *Drawable) SetLayoutDirection(dir LayoutDirection) {
	if d.layoutDir != dir {
		d.layoutDir = dir
		d.InvalidateSelf()
	}
}

// SetAllowCaching turns bitmap caching on or off. Drawables driving
// animations turn it off since their geometry changes every frame.
func (d *Drawable) SetAllowCaching(b bool) {
	d.allowCaching = b
	if !b {
		d.cache.invalidate()
	}
}

func (d *Drawable) needMirroring() bool {
	return d.autoMirrored && d.layoutDir == LayoutRTL
}

func (d *Drawable) snapshot() cacheSnapshot {
	s := cacheSnapshot{
		tintMode:     d.tintMode,
		autoMirrored: d.autoMirrored,
		rootAlpha:    d.vector.rootAlpha,
		revision:     d.vector.Revision(),
	}
	if d.tint != nil {
		s.hasTint, s.tint = true, *d.tint
	}
	return s
}

// filter resolves the color filter in effect: an explicit filter wins over
// the tint.
func (d *Drawable) filter() ColorFilter {
	if d.colorFilter != nil {
		return d.colorFilter
	}
	return NewTintFilter(d.tint, d.tintMode)
}

// Draw paints the vector into the drawable's bounds. Empty bounds draw
// nothing.
func (d *Drawable) Draw(c Canvas) {
	if d.bounds.Empty() {
		Logger().Debug("skipping draw with empty bounds", slog.String("bounds", d.bounds.String()))
		return
	}
	w, h := d.bounds.Dx(), d.bounds.Dy()
	saveCount := c.Save()
	defer c.RestoreToCount(saveCount)
	c.Translate(float64(d.bounds.Min.X), float64(d.bounds.Min.Y))
	if d.needMirroring() {
		c.Translate(float64(w), 0)
		c.Scale(-1, 1)
	}
	filter := d.filter()
	rootAlpha := d.vector.rootAlpha

	if !d.allowCaching {
		if rootAlpha == 0xff {
			d.renderer.Draw(c, d.vector, w, h, filter)
			return
		}
		d.cache.update(d.renderer, d.vector, w, h)
	} else {
		snap := d.snapshot()
		if d.cache.canReuse(snap, w, h) {
			d.stats.Hits++
		} else {
			d.stats.Misses++
			d.cache.update(d.renderer, d.vector, w, h)
			d.cache.store(snap)
			Logger().Debug("vector cache refreshed", slog.Int("width", w), slog.Int("height", h))
		}
	}
	d.cache.drawWithRootAlpha(c, rootAlpha, filter)
}

// Clone returns a drawable with a deep copy of the scene graph and its own
// renderer and cache.
func (d *Drawable) Clone() *Drawable {
	c := &Drawable{
		vector:       d.vector.Clone(),
		bounds:       d.bounds,
		tintMode:     d.tintMode,
		colorFilter:  d.colorFilter,
		autoMirrored: d.autoMirrored,
		layoutDir:    d.layoutDir,
		allowCaching: d.allowCaching,
		opts:         d.opts,
		renderer:     NewRenderer(d.opts),
	}
	if d.tint != nil {
		t := *d.tint
		c.tint = &t
	}
	return c
}
