// Copyright 2026 The vectorcompat Authors. All rights reserved.

// canvas.go defines the drawing surface the renderer targets and a raster
// implementation backed by rasterx.

package vectorcompat

import (
	"image"
	"image/color"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"
)

// PaintStyle selects between filling and stroking.
type PaintStyle uint8

const (
	FillStyle PaintStyle = iota
	StrokeStyle
)

// Paint describes how DrawPath and DrawImage put pixels down. For images
// only the alpha of Color and the Filter are used.
type Paint struct {
	Style       PaintStyle
	Color       color.NRGBA
	Filter      ColorFilter
	StrokeWidth float64
	Cap         LineCap
	Join        LineJoin
	MiterLimit  float64
}

// SetAlpha replaces the alpha of the paint color.
func (p *Paint) SetAlpha(a uint8) { p.Color.A = a }

// Canvas is a 2D drawing surface with a matrix and clip stack.
// Geometry passed to DrawPath and ClipPath is first mapped by m and then
// by the canvas matrix.
type Canvas interface {
	Size() (w, h int)
	Save() int
	Restore()
	RestoreToCount(count int)
	Translate(dx, dy float64)
	Scale(sx, sy float64)
	Concat(m rasterx.Matrix2D)
	// ClipPath replaces the current clip with the area of g.
	ClipPath(g *Geometry, m rasterx.Matrix2D)
	DrawPath(g *Geometry, m rasterx.Matrix2D, p *Paint)
	// DrawImage draws img with its origin at the canvas origin. A nil
	// paint draws it unchanged.
	DrawImage(img *image.RGBA, p *Paint)
}

type canvasState struct {
	m    rasterx.Matrix2D
	clip *image.Alpha
}

// RasterCanvas draws into an *image.RGBA whose bounds start at the origin.
type RasterCanvas struct {
	img   *image.RGBA
	state canvasState
	stack []canvasState

	dasher *rasterx.Dasher

	// layer receives clipped drawing before it is masked onto img.
	layer       *image.RGBA
	layerDasher *rasterx.Dasher
}

// NewRasterCanvas returns a canvas drawing into img.
func NewRasterCanvas(img *image.RGBA) *RasterCanvas {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	return &RasterCanvas{
		img:    img,
		state:  canvasState{m: rasterx.Identity},
		dasher: rasterx.NewDasher(w, h, rasterx.NewScannerGV(w, h, img, img.Bounds())),
	}
}

// Image returns the target image.
func (c *RasterCanvas) Image() *image.RGBA { return c.img }

func (c *RasterCanvas) Size() (w, h int) { return c.img.Bounds().Dx(), c.img.Bounds().Dy() }

func (c *RasterCanvas) Save() int {
	c.stack = append(c.stack, c.state)
	return len(c.stack)
}

func (c *RasterCanvas) Restore() {
	if n := len(c.stack); n > 0 {
		c.state = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}

// RestoreToCount pops states until count saves remain below the current one.
func (c *RasterCanvas) RestoreToCount(count int) {
	for len(c.stack) >= count && len(c.stack) > 0 {
		c.Restore()
	}
}

func (c *RasterCanvas) Translate(dx, dy float64)  { c.state.m = c.state.m.Translate(dx, dy) }
func (c *RasterCanvas) Scale(sx, sy float64)      { c.state.m = c.state.m.Scale(sx, sy) }
func (c *RasterCanvas) Concat(m rasterx.Matrix2D) { c.state.m = c.state.m.Mult(m) }

// Matrix returns the current canvas matrix.
func (c *RasterCanvas) Matrix() rasterx.Matrix2D { return c.state.m }

func (c *RasterCanvas) ClipPath(g *Geometry, m rasterx.Matrix2D) {
	w, h := c.Size()
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	f := rasterx.NewFiller(w, h, rasterx.NewScannerGV(w, h, mask, mask.Bounds()))
	g.AddTo(f, c.state.m.Mult(m))
	f.SetColor(color.Alpha{A: 0xff})
	f.Draw()
	c.state.clip = mask
}

func (c *RasterCanvas) DrawPath(g *Geometry, m rasterx.Matrix2D, p *Paint) {
	if g.Empty() || p.Color.A == 0 && p.Filter == nil {
		return
	}
	target, d := c.img, c.dasher
	if c.state.clip != nil {
		target, d = c.clipLayer()
	}
	d.Clear()
	full := c.state.m.Mult(m)
	var a rasterx.Adder = &d.Filler
	if p.Style == StrokeStyle {
		// Strokes thinner than a pixel, including zero, draw as hairlines.
		width := max(p.StrokeWidth*math.Sqrt(math.Abs(c.state.m.A*c.state.m.D-c.state.m.B*c.state.m.C)), 1)
		join, gap := p.Join.joinMode()
		d.SetStroke(fixed.Int26_6(width*64), fixed.Int26_6(p.MiterLimit*64),
			p.Cap.capFunc(), nil, gap, join, nil, 0)
		a = d
	}
	g.AddTo(a, full)
	if c.state.clip == nil {
		d.SetColor(filterNRGBA(p.Filter, p.Color))
		d.Draw()
		return
	}
	r := pathRect(d.GetPathExtent(), p).Intersect(target.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(target, r, image.Transparent, image.Point{}, draw.Src)
	d.SetColor(filterNRGBA(p.Filter, p.Color))
	d.Draw()
	draw.DrawMask(c.img, r, target, r.Min, c.state.clip, r.Min, draw.Over)
}

// clipLayer returns the scratch layer used for clipped drawing.
func (c *RasterCanvas) clipLayer() (*image.RGBA, *rasterx.Dasher) {
	if c.layer == nil {
		w, h := c.Size()
		c.layer = image.NewRGBA(image.Rect(0, 0, w, h))
		c.layerDasher = rasterx.NewDasher(w, h, rasterx.NewScannerGV(w, h, c.layer, c.layer.Bounds()))
	}
	return c.layer, c.layerDasher
}

// pathRect converts a fixed point extent to whole pixels. Stroke extents
// are measured on the outline the stroker produced, so only rounding
// slack is added.
func pathRect(ext fixed.Rectangle26_6, _ *Paint) image.Rectangle {
	return image.Rect(ext.Min.X.Floor()-1, ext.Min.Y.Floor()-1, ext.Max.X.Ceil()+1, ext.Max.Y.Ceil()+1)
}

func (c *RasterCanvas) DrawImage(img *image.RGBA, p *Paint) {
	src := img
	opts := &draw.Options{}
	if c.state.clip != nil {
		opts.DstMask = c.state.clip
	}
	if p != nil {
		if p.Filter != nil {
			src = filterImage(img, p.Filter)
		}
		if p.Color.A != 0xff {
			opts.SrcMask = image.NewUniform(color.Alpha{A: p.Color.A})
		}
	}
	m := c.state.m
	var interp draw.Interpolator = draw.ApproxBiLinear
	if isPixelAligned(m) {
		interp = draw.NearestNeighbor
	}
	interp.Transform(c.img, toAff3(m), src, src.Bounds(), draw.Over, opts)
}

// isPixelAligned reports whether m maps pixels onto pixels exactly.
func isPixelAligned(m rasterx.Matrix2D) bool {
	unit := func(v float64) bool { return v == 1 || v == -1 }
	whole := func(v float64) bool { return v == math.Trunc(v) }
	return m.B == 0 && m.C == 0 && unit(m.A) && unit(m.D) && whole(m.E) && whole(m.F)
}

func filterImage(img *image.RGBA, f ColorFilter) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.SetRGBA(x, y, f.Filter(img.RGBAAt(x, y)))
		}
	}
	return out
}
