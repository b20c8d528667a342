// Copyright 2026 The vectorcompat Authors. All rights reserved.

package vectorcompat

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Bitmap is an Image backed by decoded pixels, scaled to its bounds.
type Bitmap struct {
	pixels *image.RGBA
	bounds image.Rectangle
	paint  Paint
}

// NewBitmap copies img into a Bitmap.
func NewBitmap(img image.Image) *Bitmap {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return &Bitmap{pixels: rgba}
}

func (b *Bitmap) Pixels() *image.RGBA          { return b.pixels }
func (b *Bitmap) SetBounds(r image.Rectangle)  { b.bounds = r }
func (b *Bitmap) SetColorFilter(f ColorFilter) { b.paint.Filter = f }

func (b *Bitmap) IntrinsicSize() (w, h int) {
	return b.pixels.Bounds().Dx(), b.pixels.Bounds().Dy()
}

// Draw scales the pixels into the bounds. Empty bounds draw nothing.
func (b *Bitmap) Draw(c Canvas) {
	if b.bounds.Empty() {
		return
	}
	w, h := b.IntrinsicSize()
	saveCount := c.Save()
	defer c.RestoreToCount(saveCount)
	c.Translate(float64(b.bounds.Min.X), float64(b.bounds.Min.Y))
	c.Scale(float64(b.bounds.Dx())/float64(w), float64(b.bounds.Dy())/float64(h))
	if b.paint.Filter == nil {
		c.DrawImage(b.pixels, nil)
		return
	}
	b.paint.Color.A = 0xff
	c.DrawImage(b.pixels, &b.paint)
}

// Decode reads an image in any supported format: a registered raster
// format first, then a vector definition, then an animated vector
// definition. It returns a *Bitmap, a *Drawable or an *AnimatedVector.
func Decode(r io.Reader, opts Options) (Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	img, format, rerr := image.Decode(bytes.NewReader(data))
	if rerr == nil {
		Logger().Debug("decoded raster image", slog.String("format", format))
		return NewBitmap(img), nil
	}
	v, verr := ParseVector(bytes.NewReader(data), opts)
	if verr == nil {
		return NewDrawable(v, opts), nil
	}
	if !errors.Is(verr, ErrUnexpectedRoot) {
		return nil, verr
	}
	av, aerr := ParseAnimatedVector(bytes.NewReader(data), opts)
	if aerr == nil {
		return av, nil
	}
	if errors.Is(aerr, ErrUnexpectedRoot) {
		return nil, fmt.Errorf("%w: %w", image.ErrFormat, aerr)
	}
	return nil, aerr
}
