// Copyright 2026 The vectorcompat Authors. All rights reserved.

// pathdata.go implements the path data mini-language: parsing into typed
// nodes, morph compatibility, interpolation and serialization.

package vectorcompat

import (
	"bytes"
	"slices"
	"strconv"
	"strings"

	parsestrconv "github.com/tdewolff/parse/v2/strconv"
)

// NodeType is a path command letter. Lower case letters are relative.
type NodeType byte

// Arity returns the number of parameters one group of the command takes,
// or -1 for an unknown command.
func (t NodeType) Arity() int {
	switch t {
	case 'M', 'm', 'L', 'l', 'T', 't':
		return 2
	case 'H', 'h', 'V', 'v':
		return 1
	case 'C', 'c':
		return 6
	case 'S', 's', 'Q', 'q':
		return 4
	case 'A', 'a':
		return 7
	case 'Z', 'z':
		return 0
	}
	return -1
}

// IsRelative reports whether the command addresses points relative to the
// current point.
func (t NodeType) IsRelative() bool { return t >= 'a' && t <= 'z' }

func (t NodeType) String() string { return string(rune(t)) }

// PathNode is one command with exactly Arity parameters.
type PathNode struct {
	Type   NodeType
	Params []float64
}

// PathData is an ordered list of path nodes. Implicitly repeated parameter
// groups are stored as separate nodes, so the node list maps one to one
// onto drawing commands.
type PathData []PathNode

// ParsePathData parses s into path nodes. Numbers may be separated by
// white space, commas, a sign or a second decimal point.
func ParsePathData(s string) (PathData, error) {
	var (
		b      = []byte(s)
		nodes  PathData
		cmd    NodeType
		cmdAt  int
		params []float64
	)
	flush := func() error {
		if cmd == 0 {
			return nil
		}
		n := cmd.Arity()
		if n == 0 {
			if len(params) != 0 {
				return &PathDataError{Offset: cmdAt, Command: byte(cmd), Err: ErrMalformedPathData}
			}
			nodes = append(nodes, PathNode{Type: cmd})
			return nil
		}
		if len(params) == 0 || len(params)%n != 0 {
			return &PathDataError{Offset: cmdAt, Command: byte(cmd), Err: ErrMalformedPathData}
		}
		t := cmd
		for i := 0; i < len(params); i += n {
			nodes = append(nodes, PathNode{Type: t, Params: slices.Clone(params[i : i+n])})
			// Implicit pairs after a moveto are linetos.
			switch t {
			case 'M':
				t = 'L'
			case 'm':
				t = 'l'
			}
		}
		return nil
	}
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c == ' ' || c == ',' || c == '\t' || c == '\n' || c == '\r' || c == '\f':
			i++
		case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
			if cmd == 0 {
				return nil, &PathDataError{Offset: i, Err: ErrMalformedPathData}
			}
			f, n := scanNumber(b[i:])
			if n == 0 {
				return nil, &PathDataError{Offset: i, Command: byte(cmd), Err: ErrMalformedPathData}
			}
			params = append(params, f)
			i += n
		default:
			if NodeType(c).Arity() < 0 {
				return nil, &PathDataError{Offset: i, Command: c, Err: ErrMalformedPathData}
			}
			if err := flush(); err != nil {
				return nil, err
			}
			cmd, cmdAt, params = NodeType(c), i, params[:0]
			i++
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return nodes, nil
}

// MustParsePathData is like ParsePathData but panics on error. It is meant
// for literals in tests and examples.
func MustParsePathData(s string) PathData {
	p, err := ParsePathData(s)
	if err != nil {
		panic(err)
	}
	return p
}

// scanNumber reads a float at the start of b and returns it with the
// number of bytes consumed.
func scanNumber(b []byte) (float64, int) {
	f, n := parsestrconv.ParseFloat(b)
	if n > 15 || bytes.ContainsAny(b[:n], "eE") {
		// Exponents and long mantissas are not correctly rounded by the
		// fast path; re-read the token so String output parses back equal.
		if g, err := strconv.ParseFloat(string(b[:n]), 64); err == nil {
			f = g
		}
	}
	return f, n
}

// CanMorph reports whether a and b have the same length and the same
// command at every position.
func CanMorph(a, b PathData) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Type != b[i].Type || len(a[i].Params) != len(b[i].Params) {
			return false
		}
	}
	return true
}

// Interpolate returns the path between a (t=0) and b (t=1).
func Interpolate(a, b PathData, t float64) (PathData, error) {
	if !CanMorph(a, b) {
		return nil, ErrIncompatiblePaths
	}
	out := a.Clone()
	interpolateInto(out, a, b, t)
	return out, nil
}

// interpolateInto writes the path between a and b into dst. All three
// must be able to morph into each other. Parameters equal in a and b are
// copied unchanged so they stay exact.
func interpolateInto(dst, a, b PathData, t float64) {
	for i := range a {
		for j, av := range a[i].Params {
			bv := b[i].Params[j]
			if av == bv {
				dst[i].Params[j] = av
				continue
			}
			dst[i].Params[j] = (1-t)*av + t*bv
		}
	}
}

// Clone returns a deep copy of p.
func (p PathData) Clone() PathData {
	if p == nil {
		return nil
	}
	out := make(PathData, len(p))
	for i, n := range p {
		out[i] = PathNode{Type: n.Type, Params: slices.Clone(n.Params)}
	}
	return out
}

// Update copies the parameters of src into p in place. It reports false
// and leaves p untouched when the two cannot morph.
func (p PathData) Update(src PathData) bool {
	if !CanMorph(p, src) {
		return false
	}
	for i := range p {
		copy(p[i].Params, src[i].Params)
	}
	return true
}

// Equal reports whether p and q hold the same commands and parameters.
func (p PathData) Equal(q PathData) bool {
	if !CanMorph(p, q) {
		return false
	}
	for i := range p {
		if !slices.Equal(p[i].Params, q[i].Params) {
			return false
		}
	}
	return true
}

// String serializes p in the path data mini-language. Parsing the result
// yields a path equal to p.
func (p PathData) String() string {
	var sb strings.Builder
	buf := make([]byte, 0, 24)
	for i, n := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(byte(n.Type))
		for j, v := range n.Params {
			if j > 0 {
				sb.WriteByte(',')
			}
			buf = strconv.AppendFloat(buf[:0], v, 'g', -1, 64)
			sb.Write(buf)
		}
	}
	return sb.String()
}
