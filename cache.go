// Copyright 2026 The vectorcompat Authors. All rights reserved.

package vectorcompat

import (
	"image"
	"image/color"
	"image/draw"
)

// cacheSnapshot is the drawable state a cached bitmap was produced with.
type cacheSnapshot struct {
	hasTint      bool
	tint         color.NRGBA
	tintMode     TintMode
	autoMirrored bool
	rootAlpha    uint8
	revision     uint64
}

// CacheStats counts cache decisions of one drawable.
type CacheStats struct {
	Hits    int // draws served from the cached bitmap
	Misses  int // draws that re-rendered the bitmap
	Renders int // full scene graph walks
}

// RenderCache holds the last rendered bitmap of a drawable.
type RenderCache struct {
	bitmap *image.RGBA
	snap   cacheSnapshot
	valid  bool
	paint  Paint
}

// Bitmap returns the cached pixels, or nil before the first render.
func (rc *RenderCache) Bitmap() *image.RGBA { return rc.bitmap }

// ensureBitmap allocates the bitmap when missing or sized differently from
// w by h.
func (rc *RenderCache) ensureBitmap(w, h int) {
	if rc.bitmap == nil || rc.bitmap.Bounds().Dx() != w || rc.bitmap.Bounds().Dy() != h {
		rc.bitmap = image.NewRGBA(image.Rect(0, 0, w, h))
		rc.valid = false
	}
}

// canReuse reports whether the bitmap still shows the scene for snap at
// the given size.
func (rc *RenderCache) canReuse(snap cacheSnapshot, w, h int) bool {
	return rc.valid && rc.snap == snap && rc.bitmap != nil &&
		rc.bitmap.Bounds().Dx() == w && rc.bitmap.Bounds().Dy() == h
}

// update erases the bitmap and renders v into it without a color filter;
// the filter is applied when the bitmap is composited.
func (rc *RenderCache) update(r *Renderer, v *Vector, w, h int) {
	rc.ensureBitmap(w, h)
	draw.Draw(rc.bitmap, rc.bitmap.Bounds(), image.Transparent, image.Point{}, draw.Src)
	r.Draw(NewRasterCanvas(rc.bitmap), v, w, h, nil)
}

func (rc *RenderCache) store(snap cacheSnapshot) {
	rc.snap = snap
	rc.valid = true
}

// invalidate forces the next draw to re-render.
func (rc *RenderCache) invalidate() { rc.valid = false }

// paintFor returns nil when the bitmap can be drawn as is.
func (rc *RenderCache) paintFor(rootAlpha uint8, filter ColorFilter) *Paint {
	if rootAlpha == 0xff && filter == nil {
		return nil
	}
	rc.paint.Color = color.NRGBA{A: rootAlpha}
	rc.paint.Filter = filter
	return &rc.paint
}

func (rc *RenderCache) drawWithRootAlpha(c Canvas, rootAlpha uint8, filter ColorFilter) {
	c.DrawImage(rc.bitmap, rc.paintFor(rootAlpha, filter))
}
