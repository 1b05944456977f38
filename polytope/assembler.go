// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package polytope grows the per-region half-space descriptions of the
// fiducial constraint set by one observation at a time.
//
// For an observation with covariates Xt and outcome y, every region draws a
// truncated logistic threshold ã from the extreme points it already has and
// receives the row
//
//	y = 0:  [0,  ã, -Xt]   (Xt·θ ≤ ã)
//	y = 1:  [0, -ã,  Xt]   (Xt·θ ≥ ã)
//
// together with the importance weight of the draw.
package polytope

import (
	"fmt"

	"github.com/curioloop/gfilogis/rational"
	"github.com/curioloop/gfilogis/tlogis"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Stride separates the seeds of consecutive region substreams.
const Stride = 2000000

// Outcome is the observed binary response.
type Outcome int

const (
	Zero Outcome = 0
	One  Outcome = 1
)

// Extension is the result of one Extend call.
type Extension struct {
	H          []*rational.Matrix // new H blocks, one per region
	Thresholds []float64          // sampled ã per region
	Weights    []float64          // importance weight per region, in [0,1]
}

// Assembler extends the regions of a fiducial polytope.
// An Assembler keeps its random streams between calls and is not safe for
// concurrent use.
type Assembler struct {
	// Src is the shared stream used when regions are processed in order.
	// When Src is nil every region i draws from its own stream seeded with
	// Seed + (i+1)·Stride on first use, which makes the result independent of Workers.
	// The streams continue across Extend calls.
	Src rand.Source
	// Seed of the region streams.
	Seed uint64
	// Workers > 1 processes regions concurrently. It requires per region
	// streams, so Src must be nil.
	Workers int

	streams []rand.Source
}

// Extend appends one row to a copy of every region's H block.
//
// h[i] and points[i] describe region i; points[i] has one extreme point per
// row with len(xt) columns and h[i] has len(xt)+2 columns. The inputs are not
// modified.
func (a *Assembler) Extend(h []*rational.Matrix, points []*mat.Dense, y Outcome, xt []float64) (*Extension, error) {
	if err := check(h, points, y, xt); err != nil {
		return nil, err
	}
	if a.Workers > 1 && a.Src != nil {
		return nil, fmt.Errorf("polytope: %d workers cannot share one random source", a.Workers)
	}

	n := len(h)
	ext := &Extension{
		H:          make([]*rational.Matrix, n),
		Thresholds: make([]float64, n),
		Weights:    make([]float64, n),
	}
	if a.Src == nil {
		a.grow(n)
	}
	if a.Workers <= 1 {
		for i := range h {
			if err := a.region(ext, i, h[i], points[i], y, xt, a.source(i)); err != nil {
				return nil, err
			}
		}
		return ext, nil
	}

	var g errgroup.Group
	g.SetLimit(a.Workers)
	for i := range h {
		// region i owns slot i of ext and stream i
		g.Go(func() error {
			return a.region(ext, i, h[i], points[i], y, xt, a.source(i))
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ext, nil
}

// grow seeds the streams of regions not seen before.
func (a *Assembler) grow(n int) {
	for i := len(a.streams); i < n; i++ {
		a.streams = append(a.streams, rand.NewSource(a.Seed+uint64(i+1)*Stride))
	}
}

func (a *Assembler) source(i int) rand.Source {
	if a.Src != nil {
		return a.Src
	}
	return a.streams[i]
}

func (a *Assembler) region(ext *Extension, i int, h *rational.Matrix, pts *mat.Dense, y Outcome, xt []float64, src rand.Source) error {
	r, p := pts.Dims()
	proj := mat.NewVecDense(r, nil)
	proj.MulVec(pts, mat.NewVecDense(p, xt))

	row := make([]float64, p+2)
	var atilde, weight float64
	if y == Zero {
		m := floats.Min(proj.RawVector().Data)
		atilde = tlogis.Lower(m, src)
		weight = 1 - tlogis.CDF(m)
		row[1] = atilde
		floats.ScaleTo(row[2:], -1, xt)
	} else {
		m := floats.Max(proj.RawVector().Data)
		atilde = tlogis.Upper(m, src)
		weight = tlogis.CDF(m)
		row[1] = -atilde
		copy(row[2:], xt)
	}

	hn := h.Clone()
	if err := hn.AppendFloats(row); err != nil {
		return fmt.Errorf("polytope: region %d: %w", i, err)
	}
	ext.H[i] = hn
	ext.Thresholds[i] = atilde
	ext.Weights[i] = weight
	return nil
}

func check(h []*rational.Matrix, points []*mat.Dense, y Outcome, xt []float64) error {
	if y != Zero && y != One {
		return fmt.Errorf("%w: got %d", ErrOutcome, y)
	}
	if len(h) != len(points) {
		return fmt.Errorf("%w: %d H blocks for %d point sets", ErrDimension, len(h), len(points))
	}
	p := len(xt)
	if p == 0 {
		return fmt.Errorf("%w: empty direction", ErrDimension)
	}
	for i := range h {
		if h[i] == nil || h[i].Cols() != p+2 {
			return fmt.Errorf("%w: region %d H block must have %d columns", ErrDimension, i, p+2)
		}
		if h[i].Representation != rational.HRepresentation {
			return fmt.Errorf("%w: region %d is not an H-representation", ErrDimension, i)
		}
		if points[i] == nil || points[i].IsEmpty() {
			return fmt.Errorf("%w: region %d has no points", ErrDimension, i)
		}
		if _, c := points[i].Dims(); c != p {
			return fmt.Errorf("%w: region %d points have %d columns, direction has %d", ErrDimension, i, c, p)
		}
	}
	return nil
}
