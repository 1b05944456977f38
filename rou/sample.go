// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rou

import (
	"fmt"

	"github.com/curioloop/gfilogis/bounds"
	"github.com/curioloop/gfilogis/density"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// Options configures Sample.
type Options struct {
	Bounds       *bounds.Options
	MaxProposals int
	Progress     func(accepted int)
}

// Draws is the result of Sample.
type Draws struct {
	X        *mat.Dense // accepted rows in compact coordinates
	Bundle   *bounds.Bundle
	Proposed int
}

// AcceptanceRate returns accepted rows over proposals.
func (d *Draws) AcceptanceRate() float64 {
	if d.X == nil || d.Proposed == 0 {
		return 0
	}
	r, _ := d.X.Dims()
	return float64(r) / float64(d.Proposed)
}

// Sample finds the acceptance box of model from the starting points inits
// (one per column, compact coordinates) and returns n draws.
func Sample(n int, model *density.LinearModel, inits mat.Matrix, src rand.Source, opts *Options) (*Draws, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n = %d", ErrSampleSize, n)
	}
	if opts == nil {
		opts = &Options{}
	}
	b, err := bounds.Find(model, inits, opts.Bounds)
	if err != nil {
		return nil, err
	}
	s := Sampler{
		Bundle:       b,
		Model:        model,
		Src:          src,
		MaxProposals: opts.MaxProposals,
		Progress:     opts.Progress,
	}
	x, err := s.Draw(n)
	return &Draws{X: x, Bundle: b, Proposed: s.Proposed()}, err
}
