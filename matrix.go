// Copyright 2026 The vectorcompat Authors. All rights reserved.
//
// Affine helpers on top of rasterx.Matrix2D. rasterx composes by right
// multiplication: m.Translate(x, y) applies the translation before m.

package vectorcompat

import (
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/f64"
)

// groupMatrix builds T(pivot+translate) R(rotation) S(scale) T(-pivot).
func groupMatrix(rotation, pivotX, pivotY, scaleX, scaleY, translateX, translateY float64) rasterx.Matrix2D {
	return rasterx.Identity.
		Translate(pivotX+translateX, pivotY+translateY).
		Rotate(rotation*math.Pi/180).
		Scale(scaleX, scaleY).
		Translate(-pivotX, -pivotY)
}

// scaleMatrix returns a matrix applying only a scale.
func scaleMatrix(sx, sy float64) rasterx.Matrix2D {
	return rasterx.Matrix2D{A: sx, D: sy}
}

// matrixScale estimates the largest linear scale factor of m, used to pick
// flattening tolerances in path space.
func matrixScale(m rasterx.Matrix2D) float64 {
	sx := math.Hypot(m.A, m.B)
	sy := math.Hypot(m.C, m.D)
	return max(sx, sy)
}

// toAff3 converts m into the row-major form used by x/image/draw.
func toAff3(m rasterx.Matrix2D) f64.Aff3 {
	return f64.Aff3{m.A, m.C, m.E, m.B, m.D, m.F}
}
