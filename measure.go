// Copyright 2026 The vectorcompat Authors. All rights reserved.

package vectorcompat

import (
	"math"
	"sort"
)

// PathMeasure measures arc length along a Geometry and extracts pieces of
// it by distance. Every contour is measured, in order, as one running
// length. A closed contour includes its closing line.
type PathMeasure struct {
	pieces []measuredPiece
	length float64
}

type lutEntry struct{ t, d float64 }

type measuredPiece struct {
	from    Point
	seg     Segment
	contour int
	offset  float64 // running length at the start of the piece
	length  float64
	lut     []lutEntry
}

// NewPathMeasure measures g. Curves are subdivided until the control
// polygon and the chord differ by less than tolerance.
func NewPathMeasure(g *Geometry, tolerance float64) *PathMeasure {
	if tolerance <= 0 {
		tolerance = DefaultFlattenTolerance
	}
	pm := &PathMeasure{}
	var cur, start Point
	contour := -1
	add := func(s Segment) {
		mp := measuredPiece{from: cur, seg: s, contour: contour, offset: pm.length}
		switch s.Op {
		case OpLineTo:
			mp.length = math.Hypot(s.P[0].X-cur.X, s.P[0].Y-cur.Y)
		case OpQuadTo, OpCubeTo:
			mp.lut = append(mp.lut, lutEntry{0, 0})
			mp.length = curveLength(mp.controls(), s.Op == OpQuadTo, 0, 1, 0, tolerance, &mp.lut)
		}
		pm.pieces = append(pm.pieces, mp)
		pm.length += mp.length
		cur = s.End()
	}
	for _, s := range g.Segments {
		switch s.Op {
		case OpMoveTo:
			contour++
			cur, start = s.P[0], s.P[0]
		case OpClose:
			if cur != start {
				add(Segment{Op: OpLineTo, P: [3]Point{start}})
			}
			cur = start
		default:
			if contour < 0 {
				contour = 0
			}
			add(s)
		}
	}
	return pm
}

// Length is the total length of all contours.
func (pm *PathMeasure) Length() float64 { return pm.length }

// Segment appends to dst the part of the measured geometry between the
// distances d0 and d1. It reports false when the range is empty.
func (pm *PathMeasure) Segment(d0, d1 float64, dst *Geometry) bool {
	d0 = max(d0, 0)
	d1 = min(d1, pm.length)
	if d0 >= d1 {
		return false
	}
	i := sort.Search(len(pm.pieces), func(i int) bool {
		p := pm.pieces[i]
		return p.offset+p.length > d0
	})
	contour := -1
	for ; i < len(pm.pieces); i++ {
		p := &pm.pieces[i]
		if p.offset >= d1 {
			break
		}
		if p.length == 0 {
			continue
		}
		t0 := p.tAt(d0 - p.offset)
		t1 := p.tAt(d1 - p.offset)
		if p.contour != contour {
			dst.MoveTo(p.pointAt(t0))
			contour = p.contour
		}
		p.appendRange(t0, t1, dst)
	}
	return true
}

func (p *measuredPiece) controls() [4]Point {
	switch p.seg.Op {
	case OpQuadTo:
		return [4]Point{p.from, p.seg.P[0], p.seg.P[1]}
	case OpCubeTo:
		return [4]Point{p.from, p.seg.P[0], p.seg.P[1], p.seg.P[2]}
	}
	return [4]Point{p.from, p.seg.P[0]}
}

// tAt maps a distance along the piece to its curve parameter.
func (p *measuredPiece) tAt(d float64) float64 {
	if d <= 0 {
		return 0
	}
	if d >= p.length {
		return 1
	}
	if p.seg.Op == OpLineTo {
		return d / p.length
	}
	j := sort.Search(len(p.lut), func(j int) bool { return p.lut[j].d >= d })
	if j == 0 {
		return 0
	}
	a, b := p.lut[j-1], p.lut[j]
	if b.d == a.d {
		return b.t
	}
	return a.t + (b.t-a.t)*(d-a.d)/(b.d-a.d)
}

func (p *measuredPiece) pointAt(t float64) Point {
	c := p.controls()
	switch p.seg.Op {
	case OpQuadTo:
		return splitQuad(c, t)[2]
	case OpCubeTo:
		return splitCubic(c, t)[3]
	}
	return c[0].lerp(c[1], t)
}

// appendRange appends the piece restricted to [t0, t1], without a MoveTo.
func (p *measuredPiece) appendRange(t0, t1 float64, dst *Geometry) {
	c := p.controls()
	switch p.seg.Op {
	case OpLineTo:
		dst.LineTo(c[0].lerp(c[1], t1))
	case OpQuadTo:
		q := subQuad(c, t0, t1)
		dst.QuadTo(q[1], q[2])
	case OpCubeTo:
		q := subCubic(c, t0, t1)
		dst.CubeTo(q[1], q[2], q[3])
	}
}

// splitQuad returns the first half of the quad c split at t.
func splitQuad(c [4]Point, t float64) [4]Point {
	p01 := c[0].lerp(c[1], t)
	p12 := c[1].lerp(c[2], t)
	return [4]Point{c[0], p01, p01.lerp(p12, t)}
}

// splitCubic returns the first part of the cubic c split at t.
func splitCubic(c [4]Point, t float64) [4]Point {
	p01 := c[0].lerp(c[1], t)
	p12 := c[1].lerp(c[2], t)
	p23 := c[2].lerp(c[3], t)
	a := p01.lerp(p12, t)
	b := p12.lerp(p23, t)
	return [4]Point{c[0], p01, a, a.lerp(b, t)}
}

func reverseQuad(c [4]Point) [4]Point  { return [4]Point{c[2], c[1], c[0]} }
func reverseCubic(c [4]Point) [4]Point { return [4]Point{c[3], c[2], c[1], c[0]} }

func subQuad(c [4]Point, t0, t1 float64) [4]Point {
	left := splitQuad(c, t1)
	if t0 <= 0 || t1 <= 0 {
		return left
	}
	return reverseQuad(splitQuad(reverseQuad(left), 1-t0/t1))
}

func subCubic(c [4]Point, t0, t1 float64) [4]Point {
	left := splitCubic(c, t1)
	if t0 <= 0 || t1 <= 0 {
		return left
	}
	return reverseCubic(splitCubic(reverseCubic(left), 1-t0/t1))
}

// curveLength measures the curve c over [ta, tb] by adaptive subdivision,
// recording running lengths in lut.
func curveLength(c [4]Point, quad bool, ta, tb, base, tol float64, lut *[]lutEntry) float64 {
	var sub []Point
	if quad {
		q := subQuad(c, ta, tb)
		sub = q[:3]
	} else {
		q := subCubic(c, ta, tb)
		sub = q[:]
	}
	chord := dist(sub[0], sub[len(sub)-1])
	var poly float64
	for i := 1; i < len(sub); i++ {
		poly += dist(sub[i-1], sub[i])
	}
	if poly-chord <= tol || tb-ta < 1.0/1024 {
		l := (chord + poly) / 2
		*lut = append(*lut, lutEntry{tb, base + l})
		return l
	}
	tm := (ta + tb) / 2
	l := curveLength(c, quad, ta, tm, base, tol, lut)
	return l + curveLength(c, quad, tm, tb, base+l, tol, lut)
}

func dist(a, b Point) float64 { return math.Hypot(b.X-a.X, b.Y-a.Y) }
