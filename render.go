// Copyright 2026 The vectorcompat Authors. All rights reserved.

package vectorcompat

import (
	"math"

	"github.com/srwiley/rasterx"
)

// Renderer walks a vector's scene graph and issues canvas operations. Its
// paints and scratch geometry are reused between frames, so a Renderer
// must not be shared between drawables.
type Renderer struct {
	fillPaint   *Paint
	strokePaint *Paint
	geom        Geometry
	trimmed     Geometry
	tolerance   float64
	walks       int
}

// NewRenderer returns a renderer flattening curves for trimming to within
// opts.FlattenTolerance device pixels.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{tolerance: opts.tolerance()}
}

// Walks counts the full tree walks performed so far.
func (r *Renderer) Walks() int { return r.walks }

// Draw renders v scaled to a w by h pixel area at the canvas origin. A
// non-nil filter applies to every fill and stroke.
func (r *Renderer) Draw(c Canvas, v *Vector, w, h int, filter ColorFilter) {
	r.walks++
	sx := float64(w) / v.viewportWidth
	sy := float64(h) / v.viewportHeight
	r.drawGroup(c, v.root, rasterx.Identity, sx, sy, filter)
}

func (r *Renderer) drawGroup(c Canvas, g *Group, parent rasterx.Matrix2D, sx, sy float64, filter ColorFilter) {
	stacked := parent.Mult(g.local)
	// Clips set by children stay inside this group.
	c.Save()
	for _, n := range g.children {
		switch n.Kind {
		case GroupNode:
			r.drawGroup(c, n.Group, stacked, sx, sy, filter)
		case FullPathNode:
			r.drawFullPath(c, n.Path, stacked, sx, sy, filter)
		case ClipPathNode:
			r.geom.Reset()
			n.Clip.data.AppendGeometry(&r.geom)
			c.ClipPath(&r.geom, scaleMatrix(sx, sy).Mult(stacked))
		}
	}
	c.Restore()
}

func (r *Renderer) drawFullPath(c Canvas, p *FullPath, stacked rasterx.Matrix2D, sx, sy float64, filter ColorFilter) {
	final := scaleMatrix(sx, sy).Mult(stacked)
	r.geom.Reset()
	p.data.AppendGeometry(&r.geom)
	g := &r.geom
	if (p.trimStart != 0 || p.trimEnd != 1) && p.trimEnd-p.trimStart < 1 {
		g = r.trim(g, p, final)
	}
	if p.fillColor.A != 0 {
		if r.fillPaint == nil {
			r.fillPaint = &Paint{Style: FillStyle}
		}
		r.fillPaint.Color = applyAlpha(p.fillColor, p.fillAlpha)
		r.fillPaint.Filter = filter
		c.DrawPath(g, final, r.fillPaint)
	}
	if p.strokeColor.A != 0 {
		if r.strokePaint == nil {
			r.strokePaint = &Paint{Style: StrokeStyle}
		}
		sp := r.strokePaint
		sp.Color = applyAlpha(p.strokeColor, p.strokeAlpha)
		sp.Filter = filter
		sp.Cap = p.lineCap
		sp.Join = p.lineJoin
		sp.MiterLimit = p.miterLimit
		sp.StrokeWidth = p.strokeWidth * min(sx, sy)
		c.DrawPath(g, final, sp)
	}
}

// trim extracts the fraction of g selected by the path's trim values,
// wrapping past the end of the path when the start lands after the end.
func (r *Renderer) trim(g *Geometry, p *FullPath, final rasterx.Matrix2D) *Geometry {
	tol := r.tolerance
	if s := matrixScale(final); s > 0 {
		tol /= s
	}
	pm := NewPathMeasure(g, tol)
	l := pm.Length()
	start := mod1(p.trimStart + p.trimOffset)
	end := mod1(p.trimEnd + p.trimOffset)
	r.trimmed.Reset()
	if start > end {
		pm.Segment(start*l, l, &r.trimmed)
		pm.Segment(0, end*l, &r.trimmed)
	} else {
		pm.Segment(start*l, end*l, &r.trimmed)
	}
	return &r.trimmed
}

func mod1(x float64) float64 {
	m := math.Mod(x, 1)
	if m < 0 {
		m++
	}
	return m
}
