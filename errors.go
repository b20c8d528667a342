// Copyright 2026 The vectorcompat Authors. All rights reserved.

package vectorcompat

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedPathData reports path data with an unknown command or a
	// parameter count that does not fit the command.
	ErrMalformedPathData = errors.New("malformed path data")
	// ErrIncompatiblePaths is returned by Interpolate when the two paths
	// do not share the same command sequence.
	ErrIncompatiblePaths = errors.New("incompatible paths")
	// ErrMissingGeometry is returned when a vector definition holds no path.
	ErrMissingGeometry = errors.New("no path defined")
	// ErrInvalidViewport is returned for non-positive viewport or base size.
	ErrInvalidViewport = errors.New("invalid viewport")
	// ErrUnknownTarget is returned when an animation names a node that is
	// not in the vector's target table.
	ErrUnknownTarget = errors.New("unknown animation target")
	// ErrUnsupportedProperty is returned when a target has no such property.
	ErrUnsupportedProperty = errors.New("unsupported property")
	ErrBadAttribute        = errors.New("bad attribute value")
	ErrUnexpectedRoot      = errors.New("unexpected root element")
)

// PathDataError locates a path data parse failure.
type PathDataError struct {
	Offset  int
	Command byte
	Err     error
}

func (e *PathDataError) Error() string {
	if e.Command == 0 {
		return fmt.Sprintf("path data at offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("path data command %q at offset %d: %v", e.Command, e.Offset, e.Err)
}

func (e *PathDataError) Unwrap() error { return e.Err }

// AttrError names the element and attribute that failed to parse.
type AttrError struct {
	Element, Attr, Value string
	Err                  error
}

func (e *AttrError) Error() string {
	return fmt.Sprintf("<%s %s=%q>: %v", e.Element, e.Attr, e.Value, e.Err)
}

func (e *AttrError) Unwrap() error { return e.Err }
