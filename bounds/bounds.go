// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bounds finds the ratio-of-uniforms acceptance box of the logistic
// product density.
//
// With r = ½ the box of a d dimensional density h is
//
//	umax   = (sup h)^(2/(d+2))
//	vmin_i = -(sup |(t_i-μ_i)^(d+2)·h|)^(1/(d+2)) over t_i < μ_i
//	vmax_i =  (sup  (t_i-μ_i)^(d+2)·h )^(1/(d+2)) over t_i > μ_i
//
// where μ is the mode of h. Each supremum is a box constrained L-BFGS-B run
// on the log objective in compact coordinates.
package bounds

import (
	"fmt"
	"math"
	"time"

	"github.com/curioloop/gfilogis/compact"
	"github.com/curioloop/gfilogis/density"
	"github.com/curioloop/optimizer/lbfgsb"
	"gonum.org/v1/gonum/mat"
)

var epsmch = math.Nextafter(1, 2) - 1

// Problem identifies one of the three optimisation problems.
type Problem int

const (
	Mode  Problem = iota // global mode of the density
	Lower                // lower bound of one axis
	Upper                // upper bound of one axis
)

func (p Problem) String() string {
	switch p {
	case Mode:
		return "umax"
	case Lower:
		return "vmin"
	case Upper:
		return "vmax"
	default:
		return fmt.Sprintf("Problem(%d)", int(p))
	}
}

// Diagnostic records one optimiser run.
type Diagnostic struct {
	Problem   Problem
	Axis      int // -1 for Mode
	Start     []float64
	Status    string // final L-BFGS-B task
	Converged bool
	// Halted is set when the objective panicked or the time quota ran out.
	// Such a run never counts as converged.
	Halted  bool
	NumIter int
	NumEval int
	Value   float64 // maximised log objective
}

// Bundle is the acceptance box of one linear model.
type Bundle struct {
	Mode        []float64 // mode in compact coordinates
	Mu          []float64 // mode in original coordinates
	Umax        float64
	Vmin, Vmax  []float64
	Diagnostics []Diagnostic
}

// Dim returns d.
func (b *Bundle) Dim() int { return len(b.Mu) }

// Converged reports whether every optimiser run converged.
func (b *Bundle) Converged() bool {
	for _, d := range b.Diagnostics {
		if !d.Converged {
			return false
		}
	}
	return true
}

// Validate checks umax > 0 and vmin[i] ≤ 0 ≤ vmax[i].
func (b *Bundle) Validate() error {
	d := len(b.Mu)
	if d == 0 || len(b.Mode) != d || len(b.Vmin) != d || len(b.Vmax) != d {
		return fmt.Errorf("%w: mode %d, mu %d, vmin %d, vmax %d",
			ErrBundle, len(b.Mode), d, len(b.Vmin), len(b.Vmax))
	}
	if !(b.Umax > 0) || math.IsInf(b.Umax, 0) {
		return fmt.Errorf("%w: umax = %v", ErrBundle, b.Umax)
	}
	for i := 0; i < d; i++ {
		if !(b.Vmin[i] <= 0 && b.Vmax[i] >= 0) || math.IsInf(b.Vmin[i], 0) || math.IsInf(b.Vmax[i], 0) {
			return fmt.Errorf("%w: axis %d has [%v, %v]", ErrBundle, i, b.Vmin[i], b.Vmax[i])
		}
		if !finite(b.Mu[i]) {
			return fmt.Errorf("%w: mu[%d] = %v", ErrBundle, i, b.Mu[i])
		}
	}
	return nil
}

// Find computes the acceptance box of model.
//
// Each column of inits is one starting point of the mode search in compact
// coordinates. The best start wins. Runs that stop without converging are kept
// as they are and reported in Bundle.Diagnostics.
func Find(model *density.LinearModel, inits mat.Matrix, opts *Options) (*Bundle, error) {
	d := model.Dim()
	r, k := inits.Dims()
	if r != d || k == 0 {
		return nil, fmt.Errorf("%w: starting points are %d×%d for d = %d", ErrDimension, r, k, d)
	}
	for j := 0; j < k; j++ {
		for i := 0; i < d; i++ {
			if v := inits.At(i, j); !(v > 0 && v < 1) {
				return nil, fmt.Errorf("%w: column %d row %d is %v", ErrStartPoint, j, i, v)
			}
		}
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	f := &finder{
		model:  model,
		opts:   opts,
		logger: opts.logger(),
		bundle: &Bundle{
			Vmin: make([]float64, d),
			Vmax: make([]float64, d),
		},
	}
	if err := f.mode(inits); err != nil {
		return nil, err
	}
	for i := 0; i < d; i++ {
		if err := f.axis(Lower, i); err != nil {
			return nil, err
		}
		if err := f.axis(Upper, i); err != nil {
			return nil, err
		}
	}

	if err := f.bundle.Validate(); err != nil {
		return f.bundle, err
	}
	return f.bundle, nil
}

type finder struct {
	model  *density.LinearModel
	opts   *Options
	logger *lbfgsb.Logger
	work   *lbfgsb.Workspace
	bundle *Bundle
}

// maximize runs L-BFGS-B on -obj from x0 inside the box [lo, hi].
func (f *finder) maximize(obj density.LogObjective, lo, hi, x0 []float64, prob Problem, axis int) (*lbfgsb.Result, error) {
	n := len(x0)
	bnd := make([]lbfgsb.Bound, n)
	for i := range bnd {
		bnd[i].Lower, bnd[i].Upper = lo[i], hi[i]
	}
	eval := &guard{eval: func(u, g []float64) float64 {
		obj.LogGradient(u, g)
		for i := range g {
			g[i] = -g[i]
		}
		return -obj.LogValue(u)
	}}
	p := lbfgsb.Problem{
		N:      n,
		M:      f.opts.Corrections,
		Stop:   f.opts.Stop,
		Bounds: bnd,
		Eval:   eval.Eval,
	}
	opt, err := p.New(f.logger)
	if err != nil {
		return nil, fmt.Errorf("bounds: %v problem on axis %d: %w", prob, axis, err)
	}
	if f.work == nil {
		f.work = opt.Init()
	}

	start := time.Now()
	res := opt.Fit(x0, f.work)
	quota := time.Duration(f.opts.Stop.MaxComputations) * time.Second
	halted := eval.panicked || (quota > 0 && time.Since(start) >= quota)

	diag := Diagnostic{
		Problem:   prob,
		Axis:      axis,
		Start:     append([]float64(nil), x0...),
		Status:    fmt.Sprint(res.Status),
		Converged: res.OK && !halted,
		Halted:    halted,
		NumIter:   res.NumIter,
		NumEval:   res.NumEval,
		Value:     -res.F,
	}
	f.bundle.Diagnostics = append(f.bundle.Diagnostics, diag)
	if !diag.Converged {
		logf(f.logger, lbfgsb.LogLast, "-- %v -----------------------\n", prob)
		logf(f.logger, lbfgsb.LogLast, "axis %d start %v: %v after %d iterations, %d evaluations, value %g\n",
			axis, diag.Start, diag.Status, res.NumIter, res.NumEval, diag.Value)
		if halted {
			logf(f.logger, lbfgsb.LogLast, "objective panicked or time quota exhausted\n")
		}
	}
	return res, nil
}

// guard remembers a panic of the objective. L-BFGS-B recovers it, but a panic
// during the line search can still end with a converged status.
type guard struct {
	eval     lbfgsb.Evaluation
	panicked bool
}

func (g *guard) Eval(u, grad []float64) float64 {
	defer func() {
		if r := recover(); r != nil {
			g.panicked = true
			panic(r)
		}
	}()
	return g.eval(u, grad)
}

func (f *finder) mode(inits mat.Matrix) error {
	d := f.model.Dim()
	eps := math.Sqrt(epsmch)
	lo, hi := fill(d, eps), fill(d, 1-eps)

	obj := density.Density{Model: f.model}
	_, k := inits.Dims()
	best, value := -1, math.Inf(-1)
	var mode []float64
	for j := 0; j < k; j++ {
		x0 := mat.Col(nil, j, inits)
		res, err := f.maximize(obj, lo, hi, x0, Mode, -1)
		if err != nil {
			return err
		}
		if v := -res.F; best < 0 || v > value {
			best, value, mode = j, v, res.X
		}
	}

	b := f.bundle
	b.Mode = mode
	b.Mu = compact.Forward(nil, mode)
	b.Umax = math.Exp(2 * value / float64(d+2))
	return nil
}

func (f *finder) axis(prob Problem, i int) error {
	d := f.model.Dim()
	b := f.bundle
	eps := math.Sqrt(epsmch) / 3
	lo, hi := fill(d, eps), fill(d, 1-eps)
	x0 := fill(d, 0.5)
	if prob == Lower {
		hi[i] = b.Mode[i] - eps
		x0[i] = b.Mode[i] / 2
	} else {
		lo[i] = b.Mode[i] + eps
		x0[i] = (b.Mode[i] + 1) / 2
	}

	obj := density.Weighted{Model: f.model, Mu: b.Mu, Axis: i}
	res, err := f.maximize(obj, lo, hi, x0, prob, i)
	if err != nil {
		return err
	}
	v := math.Exp(-res.F / float64(d+2))
	if prob == Lower {
		b.Vmin[i] = -v
	} else {
		b.Vmax[i] = v
	}
	return nil
}

func fill(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
