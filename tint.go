// Copyright 2026 The vectorcompat Authors. All rights reserved.

package vectorcompat

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// TintMode is the Porter-Duff mode used to combine the tint color with
// rendered pixels. The zero value is SRC_IN.
type TintMode uint8

const (
	TintSrcIn TintMode = iota
	TintSrcOver
	TintSrcAtop
	TintMultiply
	TintScreen
	TintAdd
)

var tintModeNames = [...]string{
	TintSrcIn:    "src_in",
	TintSrcOver:  "src_over",
	TintSrcAtop:  "src_atop",
	TintMultiply: "multiply",
	TintScreen:   "screen",
	TintAdd:      "add",
}

// tintModeIndex maps the integer values used by compiled definitions.
var tintModeIndex = map[int]TintMode{
	3:  TintSrcOver,
	5:  TintSrcIn,
	9:  TintSrcAtop,
	14: TintMultiply,
	15: TintScreen,
	16: TintAdd,
}

func (m TintMode) String() string {
	if int(m) < len(tintModeNames) {
		return tintModeNames[m]
	}
	return fmt.Sprintf("TintMode(%d)", uint8(m))
}

// ParseTintMode reads a mode name (case-insensitive) or integer index.
// Unrecognized values yield def.
func ParseTintMode(v string, def TintMode) TintMode {
	v = strings.ToLower(strings.TrimSpace(v))
	if n, err := strconv.Atoi(v); err == nil {
		if m, ok := tintModeIndex[n]; ok {
			return m
		}
		return def
	}
	for i, name := range tintModeNames {
		if name == v {
			return TintMode(i)
		}
	}
	return def
}

// Decode implements envconfig.Decoder.
func (m *TintMode) Decode(value string) error {
	const unknown = TintMode(255)
	mode := ParseTintMode(value, unknown)
	if mode == unknown {
		return fmt.Errorf("unknown tint mode %q", value)
	}
	*m = mode
	return nil
}

// ColorFilter transforms premultiplied colors. It is applied to paint
// colors when drawing directly and to cached pixels when compositing.
type ColorFilter interface {
	Filter(c color.RGBA) color.RGBA
}

// TintFilter composites a fixed color over each pixel with a Porter-Duff
// mode, the tint color being the source.
type TintFilter struct {
	Color color.NRGBA
	Mode  TintMode
}

// NewTintFilter returns nil when c is nil, so an unset tint yields no filter.
func NewTintFilter(c *color.NRGBA, mode TintMode) ColorFilter {
	if c == nil {
		return nil
	}
	return TintFilter{Color: *c, Mode: mode}
}

func (f TintFilter) Filter(dst color.RGBA) color.RGBA {
	sa := float64(f.Color.A) / 255
	s := [3]float64{
		float64(f.Color.R) / 255 * sa,
		float64(f.Color.G) / 255 * sa,
		float64(f.Color.B) / 255 * sa,
	}
	da := float64(dst.A) / 255
	d := [3]float64{float64(dst.R) / 255, float64(dst.G) / 255, float64(dst.B) / 255}

	var out [3]float64
	var oa float64
	switch f.Mode {
	case TintSrcOver:
		oa = sa + da*(1-sa)
		for i := range out {
			out[i] = s[i] + d[i]*(1-sa)
		}
	case TintSrcAtop:
		oa = da
		for i := range out {
			out[i] = s[i]*da + d[i]*(1-sa)
		}
	case TintMultiply:
		oa = sa * da
		for i := range out {
			out[i] = s[i] * d[i]
		}
	case TintScreen:
		oa = sa + da - sa*da
		for i := range out {
			out[i] = s[i] + d[i] - s[i]*d[i]
		}
	case TintAdd:
		oa = min(sa+da, 1)
		for i := range out {
			out[i] = min(s[i]+d[i], 1)
		}
	default: // SRC_IN
		oa = sa * da
		for i := range out {
			out[i] = s[i] * da
		}
	}
	to8 := func(v float64) uint8 { return uint8(min(max(v, 0), 1)*255 + 0.5) }
	r := color.RGBA{to8(out[0]), to8(out[1]), to8(out[2]), to8(oa)}
	// Keep the result a valid premultiplied color.
	r.R, r.G, r.B = min(r.R, r.A), min(r.G, r.A), min(r.B, r.A)
	return r
}

// filterNRGBA runs a non-premultiplied paint color through f.
func filterNRGBA(f ColorFilter, c color.NRGBA) color.Color {
	if f == nil {
		return c
	}
	r, g, b, a := c.RGBA()
	return f.Filter(color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)})
}
