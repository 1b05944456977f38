// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gradcheck compares hand-derived gradients of scalar functions
// against central finite differences.
package gradcheck

import (
	"errors"
	"math"
	"slices"

	"github.com/curioloop/optimizer/numdiff"
)

// Checker holds a scalar function and its claimed gradient.
type Checker struct {
	// Object is the scalar function f(x) whose gradient is checked.
	Object func(x []float64) float64
	// Gradient stores ∇f(x) into g.
	Gradient func(x, g []float64)
	// Bounds keep the difference stencil inside the domain of f.
	// A NaN side is open.
	Bounds []numdiff.Bound
	// AbsStep overrides the automatic step size when positive.
	AbsStep float64
}

// MaxError returns the largest scaled difference |gᵢ - ĝᵢ| / max(1, |ĝᵢ|)
// between the analytic gradient g and the finite difference estimate ĝ at x0.
// The estimate is also returned. A NaN difference is reported as +Inf.
func (c *Checker) MaxError(x0 []float64) (maxErr float64, approx []float64, err error) {
	if c.Object == nil || c.Gradient == nil {
		return 0, nil, errors.New("gradcheck: object and gradient are required")
	}

	n := len(x0)
	approx = make([]float64, n)
	fd := numdiff.ApproxSpec{
		N: n, M: 1,
		Method:  numdiff.Central,
		Bounds:  openBounds(c.Bounds),
		AbsStep: c.AbsStep,
		Object: func(x, y []float64) {
			y[0] = c.Object(x)
		},
	}
	if err = fd.Diff(slices.Clone(x0), approx); err != nil {
		return 0, nil, err
	}

	exact := make([]float64, n)
	c.Gradient(x0, exact)
	for i, g := range exact {
		e := math.Abs(g-approx[i]) / math.Max(1, math.Abs(approx[i]))
		if math.IsNaN(e) {
			return math.Inf(1), approx, nil
		}
		maxErr = math.Max(maxErr, e)
	}
	return maxErr, approx, nil
}

// openBounds returns a copy of b with NaN sides replaced by infinities.
func openBounds(b []numdiff.Bound) []numdiff.Bound {
	if b == nil {
		return nil
	}
	out := slices.Clone(b)
	for i := range out {
		if math.IsNaN(out[i][0]) {
			out[i][0] = math.Inf(-1)
		}
		if math.IsNaN(out[i][1]) {
			out[i][1] = math.Inf(1)
		}
	}
	return out
}
