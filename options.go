// Copyright 2026 The vectorcompat Authors. All rights reserved.

package vectorcompat

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// ErrorMode selects how parsers react to elements and attributes they do
// not recognize.
type ErrorMode uint8

const (
	IgnoreErrorMode ErrorMode = iota
	WarnErrorMode
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	}
	return fmt.Sprintf("ErrorMode(%d)", uint8(m))
}

// Decode implements envconfig.Decoder.
func (m *ErrorMode) Decode(value string) error {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "ignore", "":
		*m = IgnoreErrorMode
	case "warn":
		*m = WarnErrorMode
	case "strict":
		*m = StrictErrorMode
	default:
		return fmt.Errorf("unknown error mode %q", value)
	}
	return nil
}

// DefaultFlattenTolerance is the maximum deviation, in device pixels,
// between a curve and the polyline used to measure it.
const DefaultFlattenTolerance = 0.25

// Options carries the behavior switches passed to parsers and drawables.
// The zero value is usable: silent parsing, SRC_IN tinting, caching on.
type Options struct {
	ErrorMode        ErrorMode `envconfig:"ERROR_MODE" default:"ignore"`
	DefaultTintMode  TintMode  `envconfig:"DEFAULT_TINT_MODE" default:"src_in"`
	DisableCaching   bool      `envconfig:"DISABLE_CACHING" default:"false"`
	Debug            bool      `envconfig:"DEBUG" default:"false"`
	FlattenTolerance float64   `envconfig:"FLATTEN_TOLERANCE" default:"0.25"`
}

// LoadOptions reads Options from the environment. With prefix "VECTOR" the
// variables are VECTOR_ERROR_MODE, VECTOR_DEFAULT_TINT_MODE and so on.
func LoadOptions(prefix string) (Options, error) {
	var opts Options
	if err := envconfig.Process(prefix, &opts); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func (o Options) tolerance() float64 {
	if o.FlattenTolerance <= 0 {
		return DefaultFlattenTolerance
	}
	return o.FlattenTolerance
}
