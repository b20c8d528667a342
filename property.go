// Copyright 2026 The vectorcompat Authors. All rights reserved.

package vectorcompat

import (
	"fmt"
	"image/color"
)

// Property names an animatable attribute of a scene node.
type Property uint8

const (
	PropRotation Property = iota + 1
	PropPivotX
	PropPivotY
	PropScaleX
	PropScaleY
	PropTranslateX
	PropTranslateY
	PropFillColor
	PropFillAlpha
	PropStrokeColor
	PropStrokeAlpha
	PropStrokeWidth
	PropTrimPathStart
	PropTrimPathEnd
	PropTrimPathOffset
	PropPathData
	PropAlpha
)

var propertyNames = map[Property]string{
	PropRotation:       "rotation",
	PropPivotX:         "pivotX",
	PropPivotY:         "pivotY",
	PropScaleX:         "scaleX",
	PropScaleY:         "scaleY",
	PropTranslateX:     "translateX",
	PropTranslateY:     "translateY",
	PropFillColor:      "fillColor",
	PropFillAlpha:      "fillAlpha",
	PropStrokeColor:    "strokeColor",
	PropStrokeAlpha:    "strokeAlpha",
	PropStrokeWidth:    "strokeWidth",
	PropTrimPathStart:  "trimPathStart",
	PropTrimPathEnd:    "trimPathEnd",
	PropTrimPathOffset: "trimPathOffset",
	PropPathData:       "pathData",
	PropAlpha:          "alpha",
}

func (p Property) String() string {
	if s, ok := propertyNames[p]; ok {
		return s
	}
	return fmt.Sprintf("Property(%d)", uint8(p))
}

// ParseProperty looks a property up by its attribute name.
func ParseProperty(name string) (Property, bool) {
	for p, s := range propertyNames {
		if s == name {
			return p, true
		}
	}
	return 0, false
}

// Kind reports which Value field carries the property.
func (p Property) Kind() ValueKind {
	switch p {
	case PropFillColor, PropStrokeColor:
		return KindColor
	case PropPathData:
		return KindPath
	}
	return KindFloat
}

// ValueKind tags the active field of a Value.
type ValueKind uint8

const (
	KindFloat ValueKind = iota
	KindColor
	KindPath
)

func (k ValueKind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindPath:
		return "path"
	}
	return "float"
}

// Value is a property value.
type Value struct {
	Kind  ValueKind
	Float float64
	Color color.NRGBA
	Path  PathData
}

func FloatValue(f float64) Value     { return Value{Kind: KindFloat, Float: f} }
func ColorValue(c color.NRGBA) Value { return Value{Kind: KindColor, Color: c} }
func PathValue(p PathData) Value     { return Value{Kind: KindPath, Path: p} }

func (v Value) String() string {
	switch v.Kind {
	case KindColor:
		return fmt.Sprintf("#%08x", PackARGB(v.Color))
	case KindPath:
		return v.Path.String()
	}
	return fmt.Sprint(v.Float)
}

// Target is a named node that animations can drive. Group, FullPath,
// ClipPath and Vector implement it.
type Target interface {
	TargetName() string
	Supports(p Property) bool
	Property(p Property) (Value, bool)
	SetProperty(p Property, v Value) error
}

func checkValue(t Target, p Property, v Value) error {
	if !t.Supports(p) {
		return fmt.Errorf("%w: %s on %q", ErrUnsupportedProperty, p, t.TargetName())
	}
	if v.Kind != p.Kind() {
		return fmt.Errorf("%w: %s wants a different value kind", ErrBadAttribute, p)
	}
	return nil
}
