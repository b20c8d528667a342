// Copyright 2026 The vectorcompat Authors. All rights reserved.

package vectorcompat_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/raykov/vectorcompat"
)

func squareDrawable(t *testing.T, opts Options) *Drawable {
	t.Helper()
	v, err := ReadVector("testdata/square.xml", opts)
	require.NoError(t, err)
	d := NewDrawable(v, opts)
	d.SetBounds(image.Rect(0, 0, 100, 100))
	return d
}

func drawOnto(d Image, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	d.Draw(NewRasterCanvas(img))
	return img
}

func TestDrawableCache(t *testing.T) {
	d := squareDrawable(t, Options{})

	img := drawOnto(d, 100, 100)
	assertPixel(t, img, 50, 50, red)
	assert.Equal(t, CacheStats{Misses: 1, Renders: 1}, d.CacheStats())

	img = drawOnto(d, 100, 100)
	assertPixel(t, img, 50, 50, red)
	assert.Equal(t, CacheStats{Hits: 1, Misses: 1, Renders: 1}, d.CacheStats())
	require.NotNil(t, d.Renderer())

	target, ok := d.Vector().Lookup("box")
	require.True(t, ok)
	target.(*FullPath).SetFillColor(color.NRGBA{0, 0, 0xff, 0xff})
	img = drawOnto(d, 100, 100)
	assertPixel(t, img, 50, 50, blue)
	assert.Equal(t, CacheStats{Hits: 1, Misses: 2, Renders: 2}, d.CacheStats())

	// Setting the same value again keeps the cache.
	target.(*FullPath).SetFillColor(color.NRGBA{0, 0, 0xff, 0xff})
	drawOnto(d, 100, 100)
	assert.Equal(t, 2, d.CacheStats().Renders)

	d.SetBounds(image.Rect(0, 0, 50, 50))
	drawOnto(d, 100, 100)
	assert.Equal(t, 3, d.CacheStats().Renders)

	target.(*FullPath).SetFillAlpha(0.5)
	img = drawOnto(d, 100, 100)
	assert.Equal(t, 4, d.CacheStats().Renders)
	assert.InDelta(t, 128, int(img.RGBAAt(25, 25).A), 2)
	drawOnto(d, 100, 100)
	assert.Equal(t, 4, d.CacheStats().Renders)
}

func TestDrawableCacheKeyedOnDrawState(t *testing.T) {
	tests := []struct {
		name   string
		change func(d *Drawable)
	}{
		{name: "tint", change: func(d *Drawable) { d.SetTint(&color.NRGBA{0, 0, 0xff, 0xff}) }},
		{name: "tint mode", change: func(d *Drawable) { d.SetTintMode(TintMultiply) }},
		{name: "auto mirrored", change: func(d *Drawable) { d.SetAutoMirrored(true) }},
		{name: "alpha", change: func(d *Drawable) { d.SetAlpha(0x40) }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d := squareDrawable(t, Options{})
			drawOnto(d, 100, 100)
			test.change(d)
			drawOnto(d, 100, 100)
			assert.Equal(t, 2, d.CacheStats().Misses)
		})
	}
}

func TestDrawableWithoutCaching(t *testing.T) {
	d := squareDrawable(t, Options{DisableCaching: true})
	drawOnto(d, 100, 100)
	img := drawOnto(d, 100, 100)
	assertPixel(t, img, 50, 50, red)
	assert.Equal(t, CacheStats{Renders: 2}, d.CacheStats())
	assert.Nil(t, d.Cache().Bitmap())

	// Translucent roots go through the bitmap even without caching.
	d.SetAlpha(0x80)
	img = drawOnto(d, 100, 100)
	assert.InDelta(t, 0x80, int(img.RGBAAt(50, 50).A), 2)
	assert.NotNil(t, d.Cache().Bitmap())
}

func TestDrawableEmptyBounds(t *testing.T) {
	d := squareDrawable(t, Options{})
	d.SetBounds(image.Rectangle{})
	img := drawOnto(d, 10, 10)
	assertPixel(t, img, 5, 5, empty)
	assert.Equal(t, CacheStats{}, d.CacheStats())
}

func TestDrawableBoundsOffset(t *testing.T) {
	d := squareDrawable(t, Options{})
	d.SetBounds(image.Rect(10, 10, 60, 60))
	img := drawOnto(d, 100, 100)
	assertPixel(t, img, 5, 5, empty)
	assertPixel(t, img, 30, 30, red)
	assertPixel(t, img, 59, 59, red)
	assertPixel(t, img, 70, 70, empty)
}

func TestDrawableTint(t *testing.T) {
	tests := []struct {
		mode TintMode
		tint color.NRGBA
		want color.RGBA
	}{
		{mode: TintSrcIn, tint: color.NRGBA{0, 0, 0xff, 0xff}, want: blue},
		{mode: TintSrcAtop, tint: color.NRGBA{0, 0, 0xff, 0xff}, want: blue},
		{mode: TintSrcOver, tint: color.NRGBA{0, 0xff, 0, 0xff}, want: green},
		{mode: TintMultiply, tint: color.NRGBA{0, 0, 0xff, 0xff}, want: color.RGBA{0, 0, 0, 0xff}},
		{mode: TintScreen, tint: color.NRGBA{0, 0, 0xff, 0xff}, want: color.RGBA{0xff, 0, 0xff, 0xff}},
		{mode: TintAdd, tint: color.NRGBA{0, 0xff, 0, 0xff}, want: color.RGBA{0xff, 0xff, 0, 0xff}},
	}
	for _, test := range tests {
		for _, caching := range []bool{true, false} {
			name := test.mode.String()
			if !caching {
				name += "/uncached"
			}
			t.Run(name, func(t *testing.T) {
				d := squareDrawable(t, Options{DisableCaching: !caching})
				d.SetTint(&test.tint)
				d.SetTintMode(test.mode)
				img := drawOnto(d, 100, 100)
				assertPixel(t, img, 50, 50, test.want)
			})
		}
	}
}

func TestDrawableColorFilterWinsOverTint(t *testing.T) {
	d := squareDrawable(t, Options{})
	d.SetTint(&color.NRGBA{0, 0, 0xff, 0xff})
	d.SetColorFilter(TintFilter{Color: color.NRGBA{0, 0xff, 0, 0xff}, Mode: TintSrcIn})
	img := drawOnto(d, 100, 100)
	assertPixel(t, img, 50, 50, green)

	d.SetColorFilter(nil)
	img = drawOnto(d, 100, 100)
	assertPixel(t, img, 50, 50, blue)
}

func TestDrawableAlpha(t *testing.T) {
	d := squareDrawable(t, Options{})
	d.SetAlpha(128)
	assert.Equal(t, uint8(128), d.Alpha())
	img := drawOnto(d, 100, 100)
	got := img.RGBAAt(50, 50)
	assert.InDelta(t, 128, int(got.A), 2)
	assert.InDelta(t, int(got.A), int(got.R), 1)
}

func TestDrawableMirroring(t *testing.T) {
	v := parseTestVector(t, 100, `<path android:pathData="M0,0h20v100h-20z" android:fillColor="#ff0000"/>`)
	tests := []struct {
		name         string
		autoMirrored bool
		dir          LayoutDirection
		left         bool
	}{
		{name: "ltr", autoMirrored: true, dir: LayoutLTR, left: true},
		{name: "rtl not mirrored", autoMirrored: false, dir: LayoutRTL, left: true},
		{name: "rtl mirrored", autoMirrored: true, dir: LayoutRTL, left: false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d := NewDrawable(v.Clone(), Options{})
			d.SetBounds(image.Rect(0, 0, 100, 100))
			d.SetAutoMirrored(test.autoMirrored)
			d.SetLayoutDirection(test.dir)
			img := drawOnto(d, 100, 100)
			if test.left {
				assertPixel(t, img, 10, 50, red)
				assertPixel(t, img, 90, 50, empty)
			} else {
				assertPixel(t, img, 10, 50, empty)
				assertPixel(t, img, 90, 50, red)
			}
		})
	}
}

func TestDrawableInvalidate(t *testing.T) {
	d := squareDrawable(t, Options{})
	calls := 0
	d.SetInvalidateFunc(func() { calls++ })

	d.SetBounds(image.Rect(0, 0, 100, 100))
	assert.Equal(t, 0, calls, "same bounds")
	d.SetBounds(image.Rect(0, 0, 10, 10))
	assert.Equal(t, 1, calls)
	d.SetAlpha(0x10)
	d.SetTint(&color.NRGBA{A: 0xff})
	d.SetTintMode(TintScreen)
	d.SetColorFilter(nil)
	d.SetAutoMirrored(true)
	d.SetLayoutDirection(LayoutRTL)
	assert.Equal(t, 7, calls)
}

func TestDrawableClone(t *testing.T) {
	d := squareDrawable(t, Options{})
	d.SetTint(&color.NRGBA{0, 0, 0xff, 0xff})
	drawOnto(d, 100, 100)

	c := d.Clone()
	assert.Equal(t, d.Bounds(), c.Bounds())
	assert.Equal(t, 0, c.CacheStats().Renders)

	target, ok := c.Vector().Lookup("box")
	require.True(t, ok)
	target.(*FullPath).SetFillAlpha(0)

	orig, _ := d.Vector().Lookup("box")
	assert.Equal(t, 1.0, orig.(*FullPath).FillAlpha())
	assertPixel(t, drawOnto(d, 100, 100), 50, 50, blue)
	assertPixel(t, drawOnto(c, 100, 100), 50, 50, empty)
}

func TestDrawableSizes(t *testing.T) {
	av, err := ReadAnimatedVector("testdata/play_pause.xml", Options{})
	require.NoError(t, err)
	d := av.Drawable()
	w, h := d.IntrinsicSize()
	assert.Equal(t, []int{48, 48}, []int{w, h})
	assert.Equal(t, 2.0, d.PixelSize())
	assert.True(t, d.AutoMirrored())
}
