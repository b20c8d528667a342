// Copyright 2026 The vectorcompat Authors. All rights reserved.

// parse_anim.go reads animated vector definitions: an <animated-vector>
// root with the vector to animate and <target> elements binding animators
// to named nodes.

package vectorcompat

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	parsestrconv "github.com/tdewolff/parse/v2/strconv"
)

// Resolver opens a resource reference such as "@drawable/heart" or
// "anim/spin.xml".
type Resolver func(ref string) (io.ReadCloser, error)

// DirResolver resolves references to files in dir. "@type/name" maps to
// name.xml; anything else is a path relative to dir.
func DirResolver(dir string) Resolver {
	return func(ref string) (io.ReadCloser, error) {
		name := ref
		if strings.HasPrefix(ref, "@") {
			name = ref[strings.LastIndexByte(ref, '/')+1:] + ".xml"
		}
		return os.Open(filepath.Join(dir, filepath.FromSlash(name)))
	}
}

// ReadAnimatedVector parses the animated vector definition in file.
// References to other resources resolve against the file's directory.
func ReadAnimatedVector(file string, opts Options) (*AnimatedVector, error) {
	fin, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return ParseAnimatedVectorWith(fin, opts, DirResolver(filepath.Dir(file)))
}

// ParseAnimatedVector parses an animated vector whose vector and
// animators are all inline.
func ParseAnimatedVector(r io.Reader, opts Options) (*AnimatedVector, error) {
	return ParseAnimatedVectorWith(r, opts, nil)
}

// ParseAnimatedVectorWith parses an animated vector, opening referenced
// resources with resolve. Animations whose target is missing are dropped
// with a warning, or fail the parse in StrictErrorMode.
func ParseAnimatedVectorWith(r io.Reader, opts Options, resolve Resolver) (*AnimatedVector, error) {
	decoder := newDecoder(r)
	se, err := rootElement(decoder)
	if err != nil {
		return nil, err
	}
	if se.Name.Local != "animated-vector" {
		return nil, fmt.Errorf("%w: <%s>, want <animated-vector>", ErrUnexpectedRoot, se.Name.Local)
	}
	ar := &animReader{opts: opts, resolve: resolve}
	return ar.read(decoder, se)
}

type animReader struct {
	opts     Options
	resolve  Resolver
	vector   *Vector
	bindings []Binding
}

func (ar *animReader) read(decoder *xml.Decoder, root xml.StartElement) (*AnimatedVector, error) {
	for _, attr := range root.Attr {
		switch attr.Name.Local {
		case "drawable":
			v, err := ar.resolveVector(attr.Value)
			if err != nil {
				return nil, attrError("animated-vector", attr, err)
			}
			ar.vector = v
		default:
			unknownAttr(ar.opts, "animated-vector", attr)
		}
	}
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("unterminated <animated-vector>: %w", io.ErrUnexpectedEOF)
			}
			return nil, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "vector":
				v, err := readVector(decoder, se, ar.opts)
				if err != nil {
					return nil, err
				}
				ar.vector = v
			case "target":
				if err := ar.readTarget(decoder, se); err != nil {
					return nil, err
				}
			case "attr":
				// Inline resource wrapper; its content is read in place.
			default:
				if err := unknownElement(ar.opts, se); err != nil {
					return nil, err
				}
				if err := decoder.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if se.Name.Local == "animated-vector" {
				return ar.build()
			}
		}
	}
}

func (ar *animReader) build() (*AnimatedVector, error) {
	if ar.vector == nil {
		return nil, fmt.Errorf("%w: <animated-vector> has no vector", ErrMissingGeometry)
	}
	av, err := NewAnimatedVector(NewDrawable(ar.vector, ar.opts), ar.bindings)
	if err != nil && ar.opts.ErrorMode == StrictErrorMode {
		return nil, err
	}
	return av, nil
}

func (ar *animReader) open(ref string) (*xml.Decoder, io.Closer, error) {
	if ar.resolve == nil {
		return nil, nil, fmt.Errorf("%w: cannot resolve %q without a resolver", ErrBadAttribute, ref)
	}
	rc, err := ar.resolve(ref)
	if err != nil {
		return nil, nil, err
	}
	return newDecoder(rc), rc, nil
}

func (ar *animReader) resolveVector(ref string) (*Vector, error) {
	decoder, c, err := ar.open(ref)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	se, err := rootElement(decoder)
	if err != nil {
		return nil, err
	}
	if se.Name.Local != "vector" {
		return nil, fmt.Errorf("%w: <%s>, want <vector>", ErrUnexpectedRoot, se.Name.Local)
	}
	return readVector(decoder, se, ar.opts)
}

func (ar *animReader) readTarget(decoder *xml.Decoder, se xml.StartElement) error {
	var name string
	var specs []AnimationSpec
	for _, attr := range se.Attr {
		switch attr.Name.Local {
		case "name":
			name = attr.Value
		case "animation":
			s, err := ar.resolveAnimator(attr.Value)
			if err != nil {
				return attrError("target", attr, err)
			}
			specs = append(specs, s...)
		default:
			unknownAttr(ar.opts, "target", attr)
		}
	}
	s, _, err := ar.readChildren(decoder, se, false, 0)
	if err != nil {
		return err
	}
	specs = append(specs, s...)
	for _, spec := range specs {
		ar.bindings = append(ar.bindings, Binding{Target: name, Spec: spec})
	}
	return nil
}

func (ar *animReader) resolveAnimator(ref string) ([]AnimationSpec, error) {
	decoder, c, err := ar.open(ref)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	se, err := rootElement(decoder)
	if err != nil {
		return nil, err
	}
	specs, _, err := ar.readAnimator(decoder, se, 0)
	return specs, err
}

// readAnimator reads the animator element se, shifting start delays by
// offset. It returns the specs and the time span they cover from offset.
func (ar *animReader) readAnimator(decoder *xml.Decoder, se xml.StartElement, offset time.Duration) ([]AnimationSpec, time.Duration, error) {
	switch se.Name.Local {
	case "objectAnimator":
		spec, err := ar.objectAnimator(se)
		if err != nil {
			return nil, 0, err
		}
		span := spec.StartDelay + spec.duration()*time.Duration(max(spec.RepeatCount, 0)+1)
		spec.StartDelay += offset
		return []AnimationSpec{spec}, span, decoder.Skip()
	case "set":
		sequential := false
		for _, attr := range se.Attr {
			switch attr.Name.Local {
			case "ordering":
				switch attr.Value {
				case "sequentially", "1":
					sequential = true
				case "together", "0":
				default:
					return nil, 0, attrError("set", attr, ErrBadAttribute)
				}
			default:
				unknownAttr(ar.opts, "set", attr)
			}
		}
		return ar.readChildren(decoder, se, sequential, offset)
	case "attr":
		return ar.readChildren(decoder, se, false, offset)
	}
	if err := unknownElement(ar.opts, se); err != nil {
		return nil, 0, err
	}
	return nil, 0, decoder.Skip()
}

// readChildren reads the animators inside parent up to its end tag. Run
// sequentially, each child starts when the previous one ends; otherwise
// all start together.
func (ar *animReader) readChildren(decoder *xml.Decoder, parent xml.StartElement, sequential bool, offset time.Duration) ([]AnimationSpec, time.Duration, error) {
	var specs []AnimationSpec
	var span time.Duration
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				err = fmt.Errorf("unterminated <%s>: %w", parent.Name.Local, io.ErrUnexpectedEOF)
			}
			return nil, 0, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			start := offset
			if sequential {
				start += span
			}
			s, d, err := ar.readAnimator(decoder, se, start)
			if err != nil {
				return nil, 0, err
			}
			specs = append(specs, s...)
			if sequential {
				span += d
			} else {
				span = max(span, d)
			}
		case xml.EndElement:
			return specs, span, nil
		}
	}
}

func (ar *animReader) objectAnimator(se xml.StartElement) (AnimationSpec, error) {
	spec := AnimationSpec{Duration: UnsetDuration}
	var from, to, valueType string
	var hasProp bool
	for _, attr := range se.Attr {
		var err error
		switch attr.Name.Local {
		case "propertyName":
			spec.Property, hasProp = ParseProperty(attr.Value)
			if !hasProp {
				err = ErrUnsupportedProperty
			}
		case "valueFrom":
			from = attr.Value
		case "valueTo":
			to = attr.Value
		case "valueType":
			valueType = attr.Value
		case "duration":
			spec.Duration, err = parseMillis(attr.Value)
		case "startOffset":
			spec.StartDelay, err = parseMillis(attr.Value)
		case "repeatCount":
			spec.RepeatCount, err = parseRepeatCount(attr.Value)
		case "repeatMode":
			spec.RepeatMode, err = parseRepeatMode(attr.Value)
		case "interpolator":
			var ok bool
			if spec.Interpolator, ok = ParseInterpolator(attr.Value); !ok {
				err = ErrBadAttribute
			}
		default:
			unknownAttr(ar.opts, "objectAnimator", attr)
		}
		if err != nil {
			return spec, attrError("objectAnimator", attr, err)
		}
	}
	if !hasProp {
		return spec, fmt.Errorf("%w: <objectAnimator> without propertyName", ErrBadAttribute)
	}
	kind := spec.Property.Kind()
	if valueType == "pathType" && kind != KindPath || valueType == "colorType" && kind != KindColor {
		return spec, fmt.Errorf("%w: valueType %s does not fit %s", ErrBadAttribute, valueType, spec.Property)
	}
	if to == "" {
		return spec, fmt.Errorf("%w: <objectAnimator> for %s without valueTo", ErrBadAttribute, spec.Property)
	}
	v, err := parseValue(kind, to)
	if err != nil {
		return spec, &AttrError{Element: "objectAnimator", Attr: "valueTo", Value: to, Err: err}
	}
	spec.To = v
	if from != "" {
		v, err := parseValue(kind, from)
		if err != nil {
			return spec, &AttrError{Element: "objectAnimator", Attr: "valueFrom", Value: from, Err: err}
		}
		spec.From = &v
	}
	return spec, nil
}

func parseValue(kind ValueKind, s string) (Value, error) {
	switch kind {
	case KindColor:
		c, err := ParseColor(s)
		return ColorValue(c), err
	case KindPath:
		p, err := ParsePathData(s)
		return PathValue(p), err
	}
	f, err := parseFloatAttr(s)
	return FloatValue(f), err
}

func parseMillis(v string) (time.Duration, error) {
	b := []byte(strings.TrimSpace(v))
	n, k := parsestrconv.ParseInt(b)
	if k == 0 || k != len(b) || n < 0 {
		return 0, ErrBadAttribute
	}
	return time.Duration(n) * time.Millisecond, nil
}

func parseRepeatCount(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "infinite" {
		return RepeatInfinite, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < RepeatInfinite {
		return 0, ErrBadAttribute
	}
	return n, nil
}

func parseRepeatMode(v string) (RepeatMode, error) {
	switch strings.TrimSpace(v) {
	case "restart", "1":
		return RepeatRestart, nil
	case "reverse", "2":
		return RepeatReverse, nil
	}
	return RepeatRestart, ErrBadAttribute
}
