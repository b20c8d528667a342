// Copyright 2026 The vectorcompat Authors. All rights reserved.

package vectorcompat

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Transparent is the default fill and stroke color.
var Transparent = color.NRGBA{}

// ParseColor reads a color literal: #RGB, #ARGB, #RRGGBB, #AARRGGBB, an
// rgb(r,g,b) triple, an SVG 1.1 color name, or "none".
func ParseColor(s string) (color.NRGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "none", "transparent":
		return Transparent, nil
	case "":
		return Transparent, fmt.Errorf("%w: empty color", ErrBadAttribute)
	}
	if cn, ok := colornames.Map[v]; ok {
		return color.NRGBA{cn.R, cn.G, cn.B, cn.A}, nil
	}
	if inner, ok := strings.CutPrefix(v, "rgb("); ok {
		vals := strings.Split(strings.TrimSuffix(inner, ")"), ",")
		if len(vals) != 3 {
			return Transparent, fmt.Errorf("%w: color %q", ErrBadAttribute, s)
		}
		var c [3]uint8
		for i := range c {
			n, err := parseColorValue(vals[i])
			if err != nil {
				return Transparent, fmt.Errorf("%w: color %q", ErrBadAttribute, s)
			}
			c[i] = n
		}
		return color.NRGBA{c[0], c[1], c[2], 0xff}, nil
	}
	hex, ok := strings.CutPrefix(v, "#")
	if !ok {
		return Transparent, fmt.Errorf("%w: color %q", ErrBadAttribute, s)
	}
	switch len(hex) {
	case 3, 4:
		// Short forms double every digit.
		long := make([]byte, 0, 8)
		for i := 0; i < len(hex); i++ {
			long = append(long, hex[i], hex[i])
		}
		hex = string(long)
	case 6, 8:
	default:
		return Transparent, fmt.Errorf("%w: color %q", ErrBadAttribute, s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Transparent, fmt.Errorf("%w: color %q", ErrBadAttribute, s)
	}
	if len(hex) == 6 {
		n |= 0xff000000
	}
	return ARGB(uint32(n)), nil
}

// ARGB converts a packed 0xAARRGGBB value.
func ARGB(v uint32) color.NRGBA {
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: uint8(v >> 24)}
}

// PackARGB is the inverse of ARGB.
func PackARGB(c color.NRGBA) uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func parseColorValue(v string) (uint8, error) {
	v = strings.TrimSpace(v)
	if p, ok := strings.CutSuffix(v, "%"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0, err
		}
		return uint8(min(max(n, 0), 100) * 0xff / 100), nil
	}
	n, err := strconv.Atoi(v)
	return uint8(min(max(n, 0), 255)), err
}

// applyAlpha scales the alpha channel of c by alpha.
func applyAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	alpha = min(max(alpha, 0), 1)
	c.A = uint8(float64(c.A) * alpha)
	return c
}

// lerpColor interpolates each ARGB channel independently.
func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	ch := func(x, y uint8) uint8 {
		return uint8(min(max(float64(x)+(float64(y)-float64(x))*t+0.5, 0), 255))
	}
	return color.NRGBA{ch(a.R, b.R), ch(a.G, b.G), ch(a.B, b.B), ch(a.A, b.A)}
}
