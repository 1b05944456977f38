// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compact maps the real line onto the open unit interval and back.
//
// The forward map x = tan(π(u-½)) sends (0,1) onto ℝ, increasing and singular at
// both edges. Box constrained optimisers work on u, densities are defined on x.
package compact

import "math"

// Tan01 maps u ∈ (0,1) to x = tan(π(u-½)).
func Tan01(u float64) float64 {
	return math.Tan(math.Pi * (u - 0.5))
}

// Atan01 maps x ∈ ℝ to u = atan(x)/π + ½.
func Atan01(x float64) float64 {
	return math.Atan(x)/math.Pi + 0.5
}

// DTan01 is the derivative dx/du = π / cos²(π(u-½)).
func DTan01(u float64) float64 {
	c := CosPi(u - 0.5)
	return math.Pi / (c * c)
}

// CosPi computes cos(πx).
//
// The argument is reduced exactly to [0,1] before multiplying by π, so the
// result near the zeros x = ±½ keeps full relative precision where
// math.Cos(math.Pi*x) would return the rounding error of π/2.
func CosPi(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return math.NaN()
	}
	r := math.Mod(math.Abs(x), 2) // cos is even and 2-periodic
	if r > 1 {
		r = 2 - r
	}
	switch {
	case r == 0.5:
		return 0
	case r < 0.25:
		return math.Cos(math.Pi * r)
	case r < 0.75:
		return math.Sin(math.Pi * (0.5 - r))
	default:
		return -math.Cos(math.Pi * (1 - r))
	}
}

// Forward stores Tan01(u[i]) in dst[i] and returns dst.
// A nil dst is allocated.
func Forward(dst, u []float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(u))
	}
	if len(dst) != len(u) {
		panic("compact: slice length mismatch")
	}
	for i, v := range u {
		dst[i] = Tan01(v)
	}
	return dst
}

// Inverse stores Atan01(x[i]) in dst[i] and returns dst.
// A nil dst is allocated.
func Inverse(dst, x []float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(x))
	}
	if len(dst) != len(x) {
		panic("compact: slice length mismatch")
	}
	for i, v := range x {
		dst[i] = Atan01(v)
	}
	return dst
}

// Interior reports whether every component of u lies strictly inside (0,1).
func Interior(u []float64) bool {
	for _, v := range u {
		if !(v > 0 && v < 1) {
			return false
		}
	}
	return true
}
