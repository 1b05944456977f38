// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package density

import (
	"math"

	"github.com/curioloop/gfilogis/compact"
)

// Objective is a function of compact coordinates u ∈ (0,1)ᵈ with an exact gradient.
type Objective interface {
	Dim() int
	Value(u []float64) float64
	Gradient(u, grad []float64)
}

// LogObjective also evaluates log|Value| and its gradient.
type LogObjective interface {
	Objective
	LogValue(u []float64) float64
	LogGradient(u, grad []float64)
}

var (
	_ LogObjective = Density{}
	_ LogObjective = Weighted{}
)

// Density is f(u) = h(tan01(u)).
type Density struct {
	Model *LinearModel
}

func (o Density) Dim() int { return o.Model.Dim() }

func (o Density) Value(u []float64) float64 {
	return math.Exp(o.LogValue(u))
}

// Gradient stores ∂f/∂u_i = f(u)·dtan01(u_i)·Σ_k P[k,i]·(1 - 2σ(x_k)) in grad.
func (o Density) Gradient(u, grad []float64) {
	f := math.Exp(o.logGradient(u, grad))
	for i := range grad {
		grad[i] *= f
	}
}

func (o Density) LogValue(u []float64) float64 {
	d := o.check(u, nil)
	return o.Model.scores(u, make([]float64, d), make([]float64, d))
}

func (o Density) LogGradient(u, grad []float64) {
	o.logGradient(u, grad)
}

func (o Density) logGradient(u, grad []float64) float64 {
	d := o.check(u, grad)
	s := make([]float64, d)
	logf := o.Model.scores(u, make([]float64, d), s)
	o.Model.chain(u, s, grad)
	return logf
}

func (o Density) check(u, grad []float64) int {
	d := o.Model.Dim()
	if len(u) != d || (grad != nil && len(grad) != d) {
		panic("density: slice length mismatch")
	}
	return d
}

// Weighted is g_j(u) = f(u)·(tan01(u_j) - μ_j)^(d+2), the objective whose
// extrema bound the j-th axis of the acceptance box.
// Mu is the mode in original coordinates.
type Weighted struct {
	Model *LinearModel
	Mu    []float64
	Axis  int
}

func (o Weighted) Dim() int { return o.Model.Dim() }

func (o Weighted) Value(u []float64) float64 {
	d := o.check(u, nil)
	diff := compact.Tan01(u[o.Axis]) - o.Mu[o.Axis]
	return Density{o.Model}.Value(u) * math.Pow(diff, float64(d+2))
}

// Gradient differs from the density gradient on the weighted axis only, where
// ∂g_j/∂u_j = diff^(d+1)·(diff·∂f/∂u_j + (d+2)·f·dtan01(u_j)).
func (o Weighted) Gradient(u, grad []float64) {
	d := o.check(u, grad)
	j := o.Axis
	f := math.Exp(Density{o.Model}.logGradient(u, grad))
	diff := compact.Tan01(u[j]) - o.Mu[j]
	w := math.Pow(diff, float64(d+1))
	for i := range grad {
		grad[i] *= f * w * diff
	}
	grad[j] += float64(d+2) * f * w * compact.DTan01(u[j])
}

// LogValue is log f(u) + (d+2)·log|tan01(u_j) - μ_j|.
func (o Weighted) LogValue(u []float64) float64 {
	d := o.check(u, nil)
	diff := compact.Tan01(u[o.Axis]) - o.Mu[o.Axis]
	return Density{o.Model}.LogValue(u) + float64(d+2)*math.Log(math.Abs(diff))
}

func (o Weighted) LogGradient(u, grad []float64) {
	d := o.check(u, grad)
	j := o.Axis
	Density{o.Model}.logGradient(u, grad)
	diff := compact.Tan01(u[j]) - o.Mu[j]
	grad[j] += float64(d+2) * compact.DTan01(u[j]) / diff
}

func (o Weighted) check(u, grad []float64) int {
	d := Density{o.Model}.check(u, grad)
	if len(o.Mu) != d || o.Axis < 0 || o.Axis >= d {
		panic("density: weighted axis out of range")
	}
	return d
}
