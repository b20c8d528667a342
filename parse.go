// Copyright 2026 The vectorcompat Authors. All rights reserved.

// parse.go reads vector definitions: a <vector> root holding nested
// <group>, <path> and <clip-path> elements.

package vectorcompat

import (
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

// ReadVector parses the vector definition in file.
func ReadVector(file string, opts Options) (*Vector, error) {
	fin, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return ParseVector(fin, opts)
}

// ParseVector parses a vector definition. Elements keep document order,
// which is paint order.
func ParseVector(r io.Reader, opts Options) (*Vector, error) {
	decoder := newDecoder(r)
	se, err := rootElement(decoder)
	if err != nil {
		return nil, err
	}
	if se.Name.Local != "vector" {
		return nil, fmt.Errorf("%w: <%s>, want <vector>", ErrUnexpectedRoot, se.Name.Local)
	}
	return readVector(decoder, se, opts)
}

func newDecoder(r io.Reader) *xml.Decoder {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	return decoder
}

func rootElement(decoder *xml.Decoder) (xml.StartElement, error) {
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				return xml.StartElement{}, fmt.Errorf("%w: empty document", ErrUnexpectedRoot)
			}
			return xml.StartElement{}, err
		}
		if se, ok := t.(xml.StartElement); ok {
			return se, nil
		}
	}
}

// vectorCursor holds the state of one <vector> element being read.
type vectorCursor struct {
	opts                          Options
	name                          string
	width, height                 float64
	viewportWidth, viewportHeight float64
	alpha                         float64
	tint                          *color.NRGBA
	tintMode                      TintMode
	autoMirrored                  bool
}

// readVector consumes the decoder up to the end of the <vector> element
// started by se.
func readVector(decoder *xml.Decoder, se xml.StartElement, opts Options) (*Vector, error) {
	c := &vectorCursor{opts: opts, alpha: 1, tintMode: opts.DefaultTintMode}
	if err := c.readRoot(se); err != nil {
		return nil, err
	}
	root := NewGroup("")
	stack := []*Group{root}
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("unterminated <vector>: %w", io.ErrUnexpectedEOF)
			}
			return nil, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			top := stack[len(stack)-1]
			switch se.Name.Local {
			case "group":
				g, err := c.readGroup(se)
				if err != nil {
					return nil, err
				}
				top.AddChild(NewGroupNode(g))
				stack = append(stack, g)
			case "path":
				p, err := c.readPath(se)
				if err != nil {
					return nil, err
				}
				top.AddChild(NewFullPathNode(p))
			case "clip-path":
				cp, err := c.readClipPath(se)
				if err != nil {
					return nil, err
				}
				top.AddChild(NewClipPathNode(cp))
			default:
				if err := unknownElement(c.opts, se); err != nil {
					return nil, err
				}
				if err := decoder.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "group":
				if len(stack) > 1 {
					stack = stack[:len(stack)-1]
				}
			case "vector":
				return c.build(root)
			}
		}
	}
}

func (c *vectorCursor) build(root *Group) (*Vector, error) {
	v, err := NewVector(root, c.width, c.height, c.viewportWidth, c.viewportHeight)
	if err != nil {
		return nil, err
	}
	v.SetName(c.name)
	v.SetRootAlpha(uint8(min(max(c.alpha, 0), 1) * 255))
	v.Tint = c.tint
	v.TintMode = c.tintMode
	v.AutoMirrored = c.autoMirrored
	if c.opts.Debug {
		v.logTree()
	}
	return v, nil
}

func unknownElement(opts Options, se xml.StartElement) error {
	switch opts.ErrorMode {
	case StrictErrorMode:
		return fmt.Errorf("%w: unknown element <%s>", ErrBadAttribute, se.Name.Local)
	case WarnErrorMode:
		Logger().Warn("ignoring element", slog.String("element", se.Name.Local))
	}
	return nil
}

func unknownAttr(opts Options, elem string, attr xml.Attr) {
	if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
		return
	}
	if opts.ErrorMode != IgnoreErrorMode {
		Logger().Warn("ignoring attribute", slog.String("element", elem),
			slog.String("attr", attr.Name.Local))
	}
}

func (c *vectorCursor) readRoot(se xml.StartElement) error {
	for _, attr := range se.Attr {
		var err error
		switch attr.Name.Local {
		case "name":
			c.name = attr.Value
		case "width":
			c.width, err = parseDimension(attr.Value)
		case "height":
			c.height, err = parseDimension(attr.Value)
		case "viewportWidth":
			c.viewportWidth, err = parseFloatAttr(attr.Value)
		case "viewportHeight":
			c.viewportHeight, err = parseFloatAttr(attr.Value)
		case "alpha":
			c.alpha, err = parseFloatAttr(attr.Value)
		case "tint", "tintColor":
			var col color.NRGBA
			col, err = ParseColor(attr.Value)
			c.tint = &col
		case "tintMode":
			c.tintMode = ParseTintMode(attr.Value, c.opts.DefaultTintMode)
		case "autoMirrored":
			c.autoMirrored, err = parseBoolAttr(attr.Value)
		default:
			unknownAttr(c.opts, "vector", attr)
		}
		if err != nil {
			return attrError("vector", attr, err)
		}
	}
	return nil
}

func (c *vectorCursor) readGroup(se xml.StartElement) (*Group, error) {
	g := NewGroup("")
	for _, attr := range se.Attr {
		var err error
		var f *float64
		switch attr.Name.Local {
		case "name":
			g.name = attr.Value
		case "rotation":
			f = &g.rotation
		case "pivotX":
			f = &g.pivotX
		case "pivotY":
			f = &g.pivotY
		case "scaleX":
			f = &g.scaleX
		case "scaleY":
			f = &g.scaleY
		case "translateX":
			f = &g.translateX
		case "translateY":
			f = &g.translateY
		default:
			unknownAttr(c.opts, "group", attr)
		}
		if f != nil {
			*f, err = parseFloatAttr(attr.Value)
		}
		if err != nil {
			return nil, attrError("group", attr, err)
		}
	}
	g.updateLocalMatrix()
	return g, nil
}

func (c *vectorCursor) readPath(se xml.StartElement) (*FullPath, error) {
	p := NewFullPath("", nil)
	for _, attr := range se.Attr {
		var err error
		switch attr.Name.Local {
		case "name":
			p.name = attr.Value
		case "pathData":
			p.data, err = ParsePathData(attr.Value)
		case "fillColor":
			p.fillColor, err = ParseColor(attr.Value)
		case "strokeColor":
			p.strokeColor, err = ParseColor(attr.Value)
		case "fillAlpha":
			p.fillAlpha, err = parseFloatAttr(attr.Value)
		case "strokeAlpha":
			p.strokeAlpha, err = parseFloatAttr(attr.Value)
		case "strokeWidth":
			p.strokeWidth, err = parseFloatAttr(attr.Value)
		case "strokeMiterLimit":
			p.miterLimit, err = parseFloatAttr(attr.Value)
		case "trimPathStart":
			p.trimStart, err = parseFloatAttr(attr.Value)
		case "trimPathEnd":
			p.trimEnd, err = parseFloatAttr(attr.Value)
		case "trimPathOffset":
			p.trimOffset, err = parseFloatAttr(attr.Value)
		case "strokeLineCap":
			p.lineCap, err = parseLineCap(attr.Value)
		case "strokeLineJoin":
			p.lineJoin, err = parseLineJoin(attr.Value)
		default:
			unknownAttr(c.opts, "path", attr)
		}
		if err != nil {
			return nil, attrError("path", attr, err)
		}
	}
	return p, nil
}

func (c *vectorCursor) readClipPath(se xml.StartElement) (*ClipPath, error) {
	cp := NewClipPath("", nil)
	for _, attr := range se.Attr {
		var err error
		switch attr.Name.Local {
		case "name":
			cp.name = attr.Value
		case "pathData":
			cp.data, err = ParsePathData(attr.Value)
		default:
			unknownAttr(c.opts, "clip-path", attr)
		}
		if err != nil {
			return nil, attrError("clip-path", attr, err)
		}
	}
	return cp, nil
}

func attrError(elem string, attr xml.Attr, err error) error {
	return &AttrError{Element: elem, Attr: attr.Name.Local, Value: attr.Value, Err: err}
}

func parseFloatAttr(v string) (float64, error) {
	b := []byte(strings.TrimSpace(v))
	f, n := scanNumber(b)
	if n == 0 || n != len(b) {
		return 0, ErrBadAttribute
	}
	return f, nil
}

// parseDimension accepts a number with an optional unit suffix. Units are
// not converted; the number is taken as device-independent pixels.
func parseDimension(v string) (float64, error) {
	b := []byte(strings.TrimSpace(v))
	f, n := scanNumber(b)
	if n == 0 {
		return 0, ErrBadAttribute
	}
	switch string(b[n:]) {
	case "", "dp", "dip", "px", "pt", "sp", "mm", "in":
		return f, nil
	}
	return 0, ErrBadAttribute
}

func parseBoolAttr(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, ErrBadAttribute
}

func parseLineCap(v string) (LineCap, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "butt", "0":
		return CapButt, nil
	case "round", "1":
		return CapRound, nil
	case "square", "2":
		return CapSquare, nil
	}
	return CapButt, ErrBadAttribute
}

func parseLineJoin(v string) (LineJoin, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "miter", "0":
		return JoinMiter, nil
	case "round", "1":
		return JoinRound, nil
	case "bevel", "2":
		return JoinBevel, nil
	}
	return JoinMiter, ErrBadAttribute
}
