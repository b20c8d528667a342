// Copyright 2026 The vectorcompat Authors. All rights reserved.

package vectorcompat

import (
	"fmt"
	"image/color"
	"log/slog"
	"strings"
)

// Vector is a parsed vector image: a root group, its intrinsic size, the
// viewport its path data is authored in, and the table of named targets.
type Vector struct {
	Name string
	// Tint, TintMode and AutoMirrored are the defaults read from the
	// definition; a Drawable copies them at construction.
	Tint         *color.NRGBA
	TintMode     TintMode
	AutoMirrored bool

	root           *Group
	baseWidth      float64
	baseHeight     float64
	viewportWidth  float64
	viewportHeight float64
	rootAlpha      uint8
	targets        map[string]Target
	rev            *revision
}

// NewVector validates sizes and geometry and indexes the named nodes of
// root. Duplicate names resolve to the node visited last in paint order.
func NewVector(root *Group, width, height, viewportWidth, viewportHeight float64) (*Vector, error) {
	if viewportWidth <= 0 || viewportHeight <= 0 {
		return nil, fmt.Errorf("%w: viewport %gx%g", ErrInvalidViewport, viewportWidth, viewportHeight)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %gx%g", ErrInvalidViewport, width, height)
	}
	hasPath := false
	walkNodes(root, func(n Node, _ int) {
		if n.Kind == FullPathNode {
			hasPath = true
		}
	})
	if !hasPath {
		return nil, ErrMissingGeometry
	}
	v := &Vector{
		root:           root,
		baseWidth:      width,
		baseHeight:     height,
		viewportWidth:  viewportWidth,
		viewportHeight: viewportHeight,
		rootAlpha:      0xff,
	}
	v.index()
	return v, nil
}

func (v *Vector) index() {
	v.rev = &revision{}
	attach(v.root, v.rev)
	v.targets = make(map[string]Target)
	if v.Name != "" {
		v.targets[v.Name] = v
	}
	walkNodes(v.root, func(n Node, _ int) {
		if name := n.name(); name != "" {
			v.targets[name] = n.Target()
		}
	})
}

// SetName renames the root target.
func (v *Vector) SetName(name string) {
	if v.Name != "" && v.targets[v.Name] == v {
		delete(v.targets, v.Name)
	}
	v.Name = name
	if name != "" {
		v.targets[name] = v
	}
}

func (v *Vector) Root() *Group             { return v.root }
func (v *Vector) Size() (w, h float64)     { return v.baseWidth, v.baseHeight }
func (v *Vector) Viewport() (w, h float64) { return v.viewportWidth, v.viewportHeight }
func (v *Vector) RootAlpha() uint8         { return v.rootAlpha }
func (v *Vector) Revision() uint64         { return v.rev.n }
func (v *Vector) Lookup(name string) (Target, bool) {
	t, ok := v.targets[name]
	return t, ok
}

// SetRootAlpha sets the opacity the whole image is composited with.
func (v *Vector) SetRootAlpha(a uint8) {
	if v.rootAlpha != a {
		v.rootAlpha = a
		v.rev.bump()
	}
}

// TargetName implements Target for the root, which exposes "alpha" as a
// fraction in [0,1].
func (v *Vector) TargetName() string       { return v.Name }
func (v *Vector) Supports(p Property) bool { return p == PropAlpha }

func (v *Vector) Property(p Property) (Value, bool) {
	if p != PropAlpha {
		return Value{}, false
	}
	return FloatValue(float64(v.rootAlpha) / 255), true
}

func (v *Vector) SetProperty(p Property, val Value) error {
	if err := checkValue(v, p, val); err != nil {
		return err
	}
	v.SetRootAlpha(uint8(min(max(val.Float, 0), 1) * 255))
	return nil
}

// Clone returns a deep copy sharing no nodes, path data or targets with v.
func (v *Vector) Clone() *Vector {
	c := *v
	if v.Tint != nil {
		t := *v.Tint
		c.Tint = &t
	}
	c.root = v.root.clone()
	c.index()
	return &c
}

// logTree writes the group tree at debug level.
func (v *Vector) logTree() {
	l := Logger()
	l.Debug("vector", slog.String("name", v.Name),
		slog.Float64("width", v.baseWidth), slog.Float64("height", v.baseHeight),
		slog.Float64("viewportWidth", v.viewportWidth), slog.Float64("viewportHeight", v.viewportHeight))
	walkNodes(v.root, func(n Node, depth int) {
		indent := strings.Repeat("  ", depth+1)
		switch n.Kind {
		case GroupNode:
			l.Debug(indent+"group", slog.String("name", n.Group.name),
				slog.Float64("rotation", n.Group.rotation))
		case FullPathNode:
			l.Debug(indent+"path", slog.String("name", n.Path.name),
				slog.Int("nodes", len(n.Path.data)))
		case ClipPathNode:
			l.Debug(indent+"clip-path", slog.String("name", n.Clip.name))
		}
	})
}
