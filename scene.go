// Copyright 2026 The vectorcompat Authors. All rights reserved.

// scene.go defines the scene graph nodes: groups carrying a transform,
// paths carrying geometry and paint, and clip paths.

package vectorcompat

import (
	"image/color"

	"github.com/srwiley/rasterx"
)

// NodeKind tags the active member of a Node.
type NodeKind uint8

const (
	GroupNode NodeKind = iota
	FullPathNode
	ClipPathNode
)

// Node is one child of a group. Exactly the member selected by Kind is set.
type Node struct {
	Kind  NodeKind
	Group *Group
	Path  *FullPath
	Clip  *ClipPath
}

func NewGroupNode(g *Group) Node       { return Node{Kind: GroupNode, Group: g} }
func NewFullPathNode(p *FullPath) Node { return Node{Kind: FullPathNode, Path: p} }
func NewClipPathNode(c *ClipPath) Node { return Node{Kind: ClipPathNode, Clip: c} }

// Target returns the node as an animation target.
func (n Node) Target() Target {
	switch n.Kind {
	case GroupNode:
		return n.Group
	case FullPathNode:
		return n.Path
	default:
		return n.Clip
	}
}

func (n Node) name() string { return n.Target().TargetName() }

func (n Node) clone() Node {
	switch n.Kind {
	case GroupNode:
		return NewGroupNode(n.Group.clone())
	case FullPathNode:
		c := *n.Path
		c.data = n.Path.data.Clone()
		return NewFullPathNode(&c)
	default:
		c := *n.Clip
		c.data = n.Clip.data.Clone()
		return NewClipPathNode(&c)
	}
}

// revision counts attribute mutations of one scene graph. A nil revision
// ignores bumps, which lets nodes be edited before they are attached.
type revision struct{ n uint64 }

func (r *revision) bump() {
	if r != nil {
		r.n++
	}
}

// Group is an inner node with a transform. Its children are painted in
// order.
type Group struct {
	name                   string
	children               []Node
	rotation               float64
	pivotX, pivotY         float64
	scaleX, scaleY         float64
	translateX, translateY float64
	local                  rasterx.Matrix2D
	rev                    *revision
}

// NewGroup returns a group with an identity transform.
func NewGroup(name string, children ...Node) *Group {
	return &Group{
		name:     name,
		children: children,
		scaleX:   1,
		scaleY:   1,
		local:    rasterx.Identity,
	}
}

// AddChild appends n to the paint order.
func (g *Group) AddChild(n Node) { g.children = append(g.children, n) }

func (g *Group) Children() []Node              { return g.children }
func (g *Group) TargetName() string            { return g.name }
func (g *Group) Rotation() float64             { return g.rotation }
func (g *Group) Pivot() (x, y float64)         { return g.pivotX, g.pivotY }
func (g *Group) Scale() (x, y float64)         { return g.scaleX, g.scaleY }
func (g *Group) Translation() (x, y float64)   { return g.translateX, g.translateY }
func (g *Group) LocalMatrix() rasterx.Matrix2D { return g.local }

func (g *Group) SetRotation(deg float64) { g.set(&g.rotation, deg) }

func (g *Group) SetPivot(x, y float64) {
	g.set(&g.pivotX, x)
	g.set(&g.pivotY, y)
}

func (g *Group) SetScale(x, y float64) {
	g.set(&g.scaleX, x)
	g.set(&g.scaleY, y)
}

func (g *Group) SetTranslation(x, y float64) {
	g.set(&g.translateX, x)
	g.set(&g.translateY, y)
}

func (g *Group) set(f *float64, v float64) {
	if *f == v {
		return
	}
	*f = v
	g.updateLocalMatrix()
	g.rev.bump()
}

func (g *Group) updateLocalMatrix() {
	g.local = groupMatrix(g.rotation, g.pivotX, g.pivotY, g.scaleX, g.scaleY, g.translateX, g.translateY)
}

func (g *Group) field(p Property) *float64 {
	switch p {
	case PropRotation:
		return &g.rotation
	case PropPivotX:
		return &g.pivotX
	case PropPivotY:
		return &g.pivotY
	case PropScaleX:
		return &g.scaleX
	case PropScaleY:
		return &g.scaleY
	case PropTranslateX:
		return &g.translateX
	case PropTranslateY:
		return &g.translateY
	}
	return nil
}

func (g *Group) Supports(p Property) bool { return g.field(p) != nil }

func (g *Group) Property(p Property) (Value, bool) {
	if f := g.field(p); f != nil {
		return FloatValue(*f), true
	}
	return Value{}, false
}

func (g *Group) SetProperty(p Property, v Value) error {
	if err := checkValue(g, p, v); err != nil {
		return err
	}
	g.set(g.field(p), v.Float)
	return nil
}

func (g *Group) clone() *Group {
	c := *g
	c.children = make([]Node, len(g.children))
	for i, n := range g.children {
		c.children[i] = n.clone()
	}
	return &c
}

// LineCap is the shape at the ends of open stroked contours.
type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

func (c LineCap) capFunc() rasterx.CapFunc {
	switch c {
	case CapRound:
		return rasterx.RoundCap
	case CapSquare:
		return rasterx.SquareCap
	}
	return rasterx.ButtCap
}

// LineJoin is the shape where stroked segments meet.
type LineJoin uint8

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

func (j LineJoin) joinMode() (rasterx.JoinMode, rasterx.GapFunc) {
	switch j {
	case JoinRound:
		return rasterx.Round, rasterx.RoundGap
	case JoinBevel:
		return rasterx.Bevel, rasterx.FlatGap
	}
	return rasterx.Miter, rasterx.FlatGap
}

// FullPath is a painted leaf.
type FullPath struct {
	name        string
	data        PathData
	fillColor   color.NRGBA
	fillAlpha   float64
	strokeColor color.NRGBA
	strokeAlpha float64
	strokeWidth float64
	lineCap     LineCap
	lineJoin    LineJoin
	miterLimit  float64
	trimStart   float64
	trimEnd     float64
	trimOffset  float64
	rev         *revision
}

// NewFullPath returns a path that paints nothing until a fill or stroke
// color is set.
func NewFullPath(name string, data PathData) *FullPath {
	return &FullPath{
		name:        name,
		data:        data,
		fillAlpha:   1,
		strokeAlpha: 1,
		miterLimit:  4,
		trimEnd:     1,
	}
}

func (p *FullPath) TargetName() string       { return p.name }
func (p *FullPath) PathData() PathData       { return p.data }
func (p *FullPath) FillColor() color.NRGBA   { return p.fillColor }
func (p *FullPath) FillAlpha() float64       { return p.fillAlpha }
func (p *FullPath) StrokeColor() color.NRGBA { return p.strokeColor }
func (p *FullPath) StrokeAlpha() float64     { return p.strokeAlpha }
func (p *FullPath) StrokeWidth() float64     { return p.strokeWidth }
func (p *FullPath) LineCap() LineCap         { return p.lineCap }
func (p *FullPath) LineJoin() LineJoin       { return p.lineJoin }
func (p *FullPath) MiterLimit() float64      { return p.miterLimit }
func (p *FullPath) Trim() (start, end, offset float64) {
	return p.trimStart, p.trimEnd, p.trimOffset
}

func (p *FullPath) SetFillColor(c color.NRGBA) {
	if p.fillColor != c {
		p.fillColor = c
		p.rev.bump()
	}
}

func (p *FullPath) SetStrokeColor(c color.NRGBA) {
	if p.strokeColor != c {
		p.strokeColor = c
		p.rev.bump()
	}
}

func (p *FullPath) SetFillAlpha(a float64)   { p.set(&p.fillAlpha, a) }
func (p *FullPath) SetStrokeAlpha(a float64) { p.set(&p.strokeAlpha, a) }
func (p *FullPath) SetStrokeWidth(w float64) { p.set(&p.strokeWidth, w) }
func (p *FullPath) SetMiterLimit(m float64)  { p.set(&p.miterLimit, m) }

func (p *FullPath) SetLineCap(c LineCap) {
	if p.lineCap != c {
		p.lineCap = c
		p.rev.bump()
	}
}

func (p *FullPath) SetLineJoin(j LineJoin) {
	if p.lineJoin != j {
		p.lineJoin = j
		p.rev.bump()
	}
}

// SetTrim sets the fractions of the path length to draw.
func (p *FullPath) SetTrim(start, end, offset float64) {
	p.set(&p.trimStart, start)
	p.set(&p.trimEnd, end)
	p.set(&p.trimOffset, offset)
}

// SetPathData morphs the current nodes in place when d is compatible and
// replaces them with a copy of d otherwise.
func (p *FullPath) SetPathData(d PathData) {
	p.data = setPathData(p.data, d)
	p.rev.bump()
}

func setPathData(cur, d PathData) PathData {
	if cur.Update(d) {
		return cur
	}
	return d.Clone()
}

func (p *FullPath) set(f *float64, v float64) {
	if *f != v {
		*f = v
		p.rev.bump()
	}
}

func (p *FullPath) floatField(prop Property) *float64 {
	switch prop {
	case PropFillAlpha:
		return &p.fillAlpha
	case PropStrokeAlpha:
		return &p.strokeAlpha
	case PropStrokeWidth:
		return &p.strokeWidth
	case PropTrimPathStart:
		return &p.trimStart
	case PropTrimPathEnd:
		return &p.trimEnd
	case PropTrimPathOffset:
		return &p.trimOffset
	}
	return nil
}

func (p *FullPath) Supports(prop Property) bool {
	switch prop {
	case PropFillColor, PropStrokeColor, PropPathData:
		return true
	}
	return p.floatField(prop) != nil
}

func (p *FullPath) Property(prop Property) (Value, bool) {
	switch prop {
	case PropFillColor:
		return ColorValue(p.fillColor), true
	case PropStrokeColor:
		return ColorValue(p.strokeColor), true
	case PropPathData:
		return PathValue(p.data), true
	}
	if f := p.floatField(prop); f != nil {
		return FloatValue(*f), true
	}
	return Value{}, false
}

func (p *FullPath) SetProperty(prop Property, v Value) error {
	if err := checkValue(p, prop, v); err != nil {
		return err
	}
	switch prop {
	case PropFillColor:
		p.SetFillColor(v.Color)
	case PropStrokeColor:
		p.SetStrokeColor(v.Color)
	case PropPathData:
		p.SetPathData(v.Path)
	default:
		p.set(p.floatField(prop), v.Float)
	}
	return nil
}

// ClipPath restricts the drawing of the nodes painted after it.
type ClipPath struct {
	name string
	data PathData
	rev  *revision
}

func NewClipPath(name string, data PathData) *ClipPath {
	return &ClipPath{name: name, data: data}
}

func (c *ClipPath) TargetName() string { return c.name }
func (c *ClipPath) PathData() PathData { return c.data }

func (c *ClipPath) SetPathData(d PathData) {
	c.data = setPathData(c.data, d)
	c.rev.bump()
}

func (c *ClipPath) Supports(p Property) bool { return p == PropPathData }

func (c *ClipPath) Property(p Property) (Value, bool) {
	if p == PropPathData {
		return PathValue(c.data), true
	}
	return Value{}, false
}

func (c *ClipPath) SetProperty(p Property, v Value) error {
	if err := checkValue(c, p, v); err != nil {
		return err
	}
	c.SetPathData(v.Path)
	return nil
}

// walkNodes visits every node under g in paint order.
func walkNodes(g *Group, fn func(n Node, depth int)) {
	var walk func(g *Group, depth int)
	walk = func(g *Group, depth int) {
		for _, n := range g.children {
			fn(n, depth)
			if n.Kind == GroupNode {
				walk(n.Group, depth+1)
			}
		}
	}
	walk(g, 0)
}

// attach points every node at rev.
func attach(g *Group, rev *revision) {
	g.rev = rev
	walkNodes(g, func(n Node, _ int) {
		switch n.Kind {
		case GroupNode:
			n.Group.rev = rev
		case FullPathNode:
			n.Path.rev = rev
		case ClipPathNode:
			n.Clip.rev = rev
		}
	})
}
