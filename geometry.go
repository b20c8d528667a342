// Copyright 2026 The vectorcompat Authors. All rights reserved.

// geometry.go resolves path nodes into absolute float contours and feeds
// them to rasterx adders.

package vectorcompat

import (
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// MaxDx is the maximum angle in radians one cubic may span when
// approximating an elliptical arc.
const MaxDx float64 = math.Pi / 8

// SegmentOp identifies the kind of a geometry segment.
type SegmentOp uint8

const (
	OpMoveTo SegmentOp = iota
	OpLineTo
	OpQuadTo
	OpCubeTo
	OpClose
)

// Point is a position in path coordinates.
type Point struct{ X, Y float64 }

func (p Point) lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Segment is one drawing operation. MoveTo and LineTo use P[0], QuadTo uses
// P[0] and P[1], CubeTo uses all three points, Close uses none.
type Segment struct {
	Op SegmentOp
	P  [3]Point
}

// End returns the point the segment finishes on. It is undefined for Close.
func (s Segment) End() Point {
	switch s.Op {
	case OpQuadTo:
		return s.P[1]
	case OpCubeTo:
		return s.P[2]
	}
	return s.P[0]
}

// Geometry is a list of absolute contours.
type Geometry struct {
	Segments []Segment
}

func (g *Geometry) MoveTo(p Point) {
	g.Segments = append(g.Segments, Segment{Op: OpMoveTo, P: [3]Point{p}})
}

func (g *Geometry) LineTo(p Point) {
	g.Segments = append(g.Segments, Segment{Op: OpLineTo, P: [3]Point{p}})
}

func (g *Geometry) QuadTo(c, p Point) {
	g.Segments = append(g.Segments, Segment{Op: OpQuadTo, P: [3]Point{c, p}})
}

func (g *Geometry) CubeTo(c1, c2, p Point) {
	g.Segments = append(g.Segments, Segment{Op: OpCubeTo, P: [3]Point{c1, c2, p}})
}

func (g *Geometry) Close() { g.Segments = append(g.Segments, Segment{Op: OpClose}) }

// Reset empties g, keeping its storage.
func (g *Geometry) Reset() { g.Segments = g.Segments[:0] }

// Empty reports whether g draws nothing.
func (g *Geometry) Empty() bool {
	for _, s := range g.Segments {
		if s.Op != OpMoveTo && s.Op != OpClose {
			return false
		}
	}
	return true
}

// AddTo sends g through m into the adder. Contours are terminated with
// Stop so strokers cap open ends and join closed ones.
func (g *Geometry) AddTo(a rasterx.Adder, m rasterx.Matrix2D) {
	fp := func(p Point) fixed.Point26_6 {
		return rasterx.ToFixedP(m.Transform(p.X, p.Y))
	}
	open := false
	for _, s := range g.Segments {
		switch s.Op {
		case OpMoveTo:
			if open {
				a.Stop(false)
			}
			a.Start(fp(s.P[0]))
			open = true
		case OpLineTo:
			a.Line(fp(s.P[0]))
		case OpQuadTo:
			a.QuadBezier(fp(s.P[0]), fp(s.P[1]))
		case OpCubeTo:
			a.CubeBezier(fp(s.P[0]), fp(s.P[1]), fp(s.P[2]))
		case OpClose:
			if open {
				a.Stop(true)
				open = false
			}
		}
	}
	if open {
		a.Stop(false)
	}
}

// Geometry resolves p into absolute contours.
func (p PathData) Geometry() *Geometry {
	g := &Geometry{}
	p.AppendGeometry(g)
	return g
}

// AppendGeometry resolves p into g.
func (p PathData) AppendGeometry(g *Geometry) {
	c := pathCursor{g: g}
	for _, n := range p {
		c.addNode(n)
	}
}

// pathCursor tracks the state needed to resolve relative and smooth
// commands.
type pathCursor struct {
	g       *Geometry
	place   Point
	cntl    Point
	start   Point
	lastKey NodeType
	inPath  bool
}

func reflectPoint(p, r Point) Point {
	return Point{p.X*2 - r.X, p.Y*2 - r.Y}
}

func (c *pathCursor) abs(rel bool, x, y float64) Point {
	if rel {
		return Point{c.place.X + x, c.place.Y + y}
	}
	return Point{x, y}
}

// ensureStarted opens an implicit contour at the current point when a
// drawing command follows a close.
func (c *pathCursor) ensureStarted() {
	if !c.inPath {
		c.g.MoveTo(c.place)
		c.start = c.place
		c.inPath = true
	}
}

func (c *pathCursor) addNode(n PathNode) {
	k := n.Type
	rel := k.IsRelative()
	v := n.Params
	switch k {
	case 'z', 'Z':
		if c.inPath {
			c.g.Close()
			c.inPath = false
		}
		c.place = c.start
	case 'm', 'M':
		c.place = c.abs(rel, v[0], v[1])
		c.start = c.place
		c.g.MoveTo(c.place)
		c.inPath = true
	case 'l', 'L':
		c.ensureStarted()
		c.place = c.abs(rel, v[0], v[1])
		c.g.LineTo(c.place)
	case 'h', 'H':
		c.ensureStarted()
		if rel {
			c.place.X += v[0]
		} else {
			c.place.X = v[0]
		}
		c.g.LineTo(c.place)
	case 'v', 'V':
		c.ensureStarted()
		if rel {
			c.place.Y += v[0]
		} else {
			c.place.Y = v[0]
		}
		c.g.LineTo(c.place)
	case 'q', 'Q':
		c.ensureStarted()
		c.cntl = c.abs(rel, v[0], v[1])
		c.place = c.abs(rel, v[2], v[3])
		c.g.QuadTo(c.cntl, c.place)
	case 't', 'T':
		c.ensureStarted()
		switch c.lastKey {
		case 'q', 'Q', 't', 'T':
			c.cntl = reflectPoint(c.place, c.cntl)
		default:
			c.cntl = c.place
		}
		c.place = c.abs(rel, v[0], v[1])
		c.g.QuadTo(c.cntl, c.place)
	case 'c', 'C':
		c.ensureStarted()
		c1 := c.abs(rel, v[0], v[1])
		c.cntl = c.abs(rel, v[2], v[3])
		c.place = c.abs(rel, v[4], v[5])
		c.g.CubeTo(c1, c.cntl, c.place)
	case 's', 'S':
		c.ensureStarted()
		var c1 Point
		switch c.lastKey {
		case 'c', 'C', 's', 'S':
			c1 = reflectPoint(c.place, c.cntl)
		default:
			c1 = c.place
		}
		c.cntl = c.abs(rel, v[0], v[1])
		c.place = c.abs(rel, v[2], v[3])
		c.g.CubeTo(c1, c.cntl, c.place)
	case 'a', 'A':
		c.ensureStarted()
		end := c.abs(rel, v[5], v[6])
		c.addArc(v[0], v[1], v[2], v[3] != 0, v[4] != 0, end)
		c.place = end
	}
	c.lastKey = k
}

// addArc approximates an elliptical arc from the current point to end with
// cubic Béziers. Zero radii degrade to a line as in SVG.
func (c *pathCursor) addArc(ra, rb, rotDeg float64, largeArc, sweep bool, end Point) {
	if end == c.place {
		return
	}
	ra, rb = math.Abs(ra), math.Abs(rb)
	if ra == 0 || rb == 0 {
		c.g.LineTo(end)
		return
	}
	rotX := rotDeg * math.Pi / 180
	cx, cy := rasterx.FindEllipseCenter(&ra, &rb, rotX, c.place.X, c.place.Y,
		end.X, end.Y, !sweep, !largeArc)

	startAngle := math.Atan2(c.place.Y-cy, c.place.X-cx) - rotX
	endAngle := math.Atan2(end.Y-cy, end.X-cx) - rotX
	deltaTheta := endAngle - startAngle
	arcBig := math.Abs(deltaTheta) > math.Pi

	etaStart := math.Atan2(math.Sin(startAngle)/rb, math.Cos(startAngle)/ra)
	etaEnd := math.Atan2(math.Sin(endAngle)/rb, math.Cos(endAngle)/ra)
	deltaEta := etaEnd - etaStart
	if arcBig != largeArc {
		if deltaEta < 0 {
			deltaEta += math.Pi * 2
		} else {
			deltaEta -= math.Pi * 2
		}
	}
	if deltaEta < 0 && sweep {
		deltaEta += math.Pi * 2
	} else if deltaEta >= 0 && !sweep {
		deltaEta -= math.Pi * 2
	}

	segs := int(math.Abs(deltaEta)/MaxDx) + 1
	dEta := deltaEta / float64(segs)
	// L. Maisonobe, "Drawing an elliptical arc using polylines, quadratic
	// or cubic Bezier curves", 2003.
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3
	l := c.place
	sinTheta, cosTheta := math.Sin(rotX), math.Cos(rotX)
	ld := ellipsePrime(ra, rb, sinTheta, cosTheta, etaStart)
	for i := 1; i <= segs; i++ {
		eta := etaStart + dEta*float64(i)
		p := end
		if i != segs {
			p = ellipsePointAt(ra, rb, sinTheta, cosTheta, eta, cx, cy)
		}
		d := ellipsePrime(ra, rb, sinTheta, cosTheta, eta)
		c.g.CubeTo(Point{l.X + alpha*ld.X, l.Y + alpha*ld.Y},
			Point{p.X - alpha*d.X, p.Y - alpha*d.Y}, p)
		l, ld = p, d
	}
}

// ellipsePrime is the tangent of a parameterized ellipse with radii a, b.
func ellipsePrime(a, b, sinTheta, cosTheta, eta float64) Point {
	bCosEta := b * math.Cos(eta)
	aSinEta := a * math.Sin(eta)
	return Point{-aSinEta*cosTheta - bCosEta*sinTheta, -aSinEta*sinTheta + bCosEta*cosTheta}
}

func ellipsePointAt(a, b, sinTheta, cosTheta, eta, cx, cy float64) Point {
	aCosEta := a * math.Cos(eta)
	bSinEta := b * math.Sin(eta)
	return Point{cx + aCosEta*cosTheta - bSinEta*sinTheta, cy + aCosEta*sinTheta + bSinEta*cosTheta}
}
