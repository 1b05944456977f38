// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rou draws exact samples from the logistic product density by
// ratio-of-uniforms rejection.
//
// A proposal (u, v) is uniform on the box [0, umax] × Π[vmin_i, vmax_i] found
// by package bounds. The candidate t = v/√u + μ is accepted when
//
//	(d+2)·log u < 2·log h(t)
//
// and stored in compact coordinates atan(t)/π + ½. There is no internal cap on
// the number of proposals: the loop runs until n candidates are accepted, which
// for a badly conditioned model can take a long time. Set MaxProposals to bound it.
package rou

import (
	"fmt"
	"math"

	"github.com/curioloop/gfilogis/bounds"
	"github.com/curioloop/gfilogis/compact"
	"github.com/curioloop/gfilogis/density"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Proposal is one draw of the rejection loop.
type Proposal struct {
	U          float64
	V          []float64
	T          []float64 // candidate in original coordinates
	X          []float64 // candidate in compact coordinates
	LogDensity float64   // log h(T)
	Accepted   bool
}

// Sampler runs the rejection loop over a fixed acceptance box.
// A Sampler is not safe for concurrent use.
type Sampler struct {
	Bundle *bounds.Bundle
	Model  *density.LinearModel
	// Src is the random source. Nil uses the global source of golang.org/x/exp/rand.
	Src rand.Source
	// MaxProposals caps the proposals of one Draw call when positive.
	MaxProposals int
	// Progress is called with the number of accepted rows after each acceptance.
	Progress func(accepted int)

	proposed int
	accepted int
}

// Proposed returns the number of proposals made so far.
func (s *Sampler) Proposed() int { return s.proposed }

// Accepted returns the number of accepted proposals so far.
func (s *Sampler) Accepted() int { return s.accepted }

func (s *Sampler) check() error {
	if s.Bundle == nil || s.Model == nil {
		return fmt.Errorf("%w: bundle and model are required", ErrDimension)
	}
	if d := s.Model.Dim(); s.Bundle.Dim() != d {
		return fmt.Errorf("%w: bundle has %d axes, model has %d", ErrDimension, s.Bundle.Dim(), d)
	}
	return s.Bundle.Validate()
}

// Propose draws one candidate and evaluates the acceptance test.
func (s *Sampler) Propose() Proposal {
	b := s.Bundle
	d := b.Dim()
	p := Proposal{
		U: distuv.Uniform{Min: 0, Max: b.Umax, Src: s.Src}.Rand(),
		V: make([]float64, d),
		T: make([]float64, d),
	}
	for i := range p.V {
		p.V[i] = distuv.Uniform{Min: b.Vmin[i], Max: b.Vmax[i], Src: s.Src}.Rand()
	}
	r := math.Sqrt(p.U)
	for i, v := range p.V {
		p.T[i] = v/r + b.Mu[i]
	}
	p.X = compact.Inverse(nil, p.T)
	s.proposed++

	// p.X is the compact image Atan01(p.T); it only leaves (0,1) when atan rounds to ±π/2.
	if !compact.Interior(p.X) {
		p.LogDensity = math.NaN()
		return p
	}
	p.LogDensity = density.LogPDF(s.Model, p.T)
	p.Accepted = float64(d+2)*math.Log(p.U) < 2*p.LogDensity
	if p.Accepted {
		s.accepted++
	}
	return p
}

// Draw returns n accepted draws as the rows of an n×d matrix in compact coordinates.
//
// When MaxProposals is reached first, the rows accepted so far are returned
// together with ErrProposalLimit. The matrix is nil if no row was accepted.
func (s *Sampler) Draw(n int) (*mat.Dense, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n = %d", ErrSampleSize, n)
	}
	if err := s.check(); err != nil {
		return nil, err
	}

	d := s.Bundle.Dim()
	out := mat.NewDense(n, d, nil)
	k, start := 0, s.proposed
	for k < n {
		if s.MaxProposals > 0 && s.proposed-start >= s.MaxProposals {
			err := fmt.Errorf("%w: %d of %d draws accepted after %d proposals",
				ErrProposalLimit, k, n, s.MaxProposals)
			if k == 0 {
				return nil, err
			}
			return mat.DenseCopyOf(out.Slice(0, k, 0, d)), err
		}
		if p := s.Propose(); p.Accepted {
			out.SetRow(k, p.X)
			k++
			if s.Progress != nil {
				s.Progress(k)
			}
		}
	}
	return out, nil
}
