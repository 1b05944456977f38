// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package density evaluates the product-of-logistic target density of the
// fiducial sampler and its exact gradient.
//
// The density of a parameter t ∈ ℝᵈ is
//
//	h(t) = Π_k logisPDF((P·t + b)_k)
//
// and the optimisers see it through compact coordinates t = tan(π(u-½)),
// u ∈ (0,1)ᵈ. Two objectives are provided: the plain density f(u) = h(t(u))
// and the axis weighted variant g_j(u) = f(u)·(t_j - μ_j)^(d+2) used to bound
// the ratio-of-uniforms acceptance box. Both come with a log form which is what
// the bound finder optimises, as the raw values underflow quickly in d > 2.
package density

import (
	"fmt"
	"math"

	"github.com/curioloop/gfilogis/compact"
	"gonum.org/v1/gonum/mat"
)

// LinearModel is the affine map x = P·t + b with P square.
// It is immutable once built.
type LinearModel struct {
	p *mat.Dense
	b *mat.VecDense
}

// NewLinearModel copies P and b into a new model.
func NewLinearModel(P mat.Matrix, b mat.Vector) (*LinearModel, error) {
	r, c := P.Dims()
	if r == 0 || r != c || b.Len() != r {
		return nil, fmt.Errorf("%w: P is %d×%d, b has %d entries", ErrDimension, r, c, b.Len())
	}
	m := &LinearModel{
		p: mat.DenseCopyOf(P),
		b: mat.VecDenseCopyOf(b),
	}
	for i := 0; i < r; i++ {
		if !finite(m.b.AtVec(i)) {
			return nil, fmt.Errorf("%w: b[%d] = %v", ErrNotFinite, i, m.b.AtVec(i))
		}
		for j := 0; j < c; j++ {
			if !finite(m.p.At(i, j)) {
				return nil, fmt.Errorf("%w: P[%d,%d] = %v", ErrNotFinite, i, j, m.p.At(i, j))
			}
		}
	}
	return m, nil
}

// Dim returns d.
func (m *LinearModel) Dim() int { return m.b.Len() }

// P returns the coefficient matrix. The caller must not modify it.
func (m *LinearModel) P() mat.Matrix { return m.p }

// B returns the offset vector. The caller must not modify it.
func (m *LinearModel) B() mat.Vector { return m.b }

// Affine stores P·t + b in dst and returns it. A nil dst is allocated.
// dst must not share memory with t.
func (m *LinearModel) Affine(dst, t []float64) []float64 {
	d := m.Dim()
	if len(t) != d || (dst != nil && len(dst) != d) {
		panic("density: slice length mismatch")
	}
	if dst == nil {
		dst = make([]float64, d)
	}
	x := mat.NewVecDense(d, dst)
	x.MulVec(m.p, mat.NewVecDense(d, t))
	x.AddVec(x, m.b)
	return dst
}

// scores stores t = tan01(u) and s_k = 1 - 2σ(x_k) with x = P·t + b,
// and returns log f(u).
func (m *LinearModel) scores(u, t, s []float64) (logf float64) {
	compact.Forward(t, u)
	m.Affine(s, t)
	for k, x := range s {
		logf += LogLogisPDF(x)
		s[k] = DLogLogis(x)
	}
	return logf
}

// chain stores ∂log f/∂u_i = dtan01(u_i)·Σ_k P[k,i]·s_k in grad.
func (m *LinearModel) chain(u, s, grad []float64) {
	g := mat.NewVecDense(len(grad), grad)
	g.MulVec(m.p.T(), mat.NewVecDense(len(s), s))
	for i, ui := range u {
		grad[i] *= compact.DTan01(ui)
	}
}

// LogPDF returns log h(t) = Σ_k log logisPDF((P·t + b)_k), evaluated directly
// in original coordinates.
func LogPDF(m *LinearModel, t []float64) float64 {
	x := m.Affine(nil, t)
	var sum float64
	for _, z := range x {
		sum += LogLogisPDF(z)
	}
	return sum
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
