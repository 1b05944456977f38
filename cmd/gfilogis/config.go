// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/curioloop/gfilogis/bounds"
	"github.com/curioloop/gfilogis/density"
	"github.com/curioloop/gfilogis/polytope"
	"github.com/curioloop/gfilogis/rational"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

// Job is the YAML job file.
type Job struct {
	Seed        uint64      `yaml:"seed"`
	Corrections int         `yaml:"corrections"`
	Stop        *StopConfig `yaml:"stop"`
	Sample      *SampleJob  `yaml:"sample"`
	Extend      *ExtendJob  `yaml:"extend"`
}

// StopConfig overrides the L-BFGS-B termination defaults.
type StopConfig struct {
	MaxIterations  int      `yaml:"max_iterations"`
	MaxEvaluations int      `yaml:"max_evaluations"`
	Factr          *float64 `yaml:"factr"`
	Pgtol          *float64 `yaml:"pgtol"`
}

// SampleJob draws N samples of the density of (P, B).
type SampleJob struct {
	N            int         `yaml:"n"`
	P            [][]float64 `yaml:"p"`
	B            []float64   `yaml:"b"`
	Inits        [][]float64 `yaml:"inits"` // one starting point per entry
	MaxProposals int         `yaml:"max_proposals"`
}

// ExtendJob adds one observation to every region.
type ExtendJob struct {
	Outcome   int         `yaml:"outcome"`
	Direction []float64   `yaml:"direction"`
	Workers   int         `yaml:"workers"`
	Regions   []RegionJob `yaml:"regions"`
}

// RegionJob holds the extreme points and H rows of one region.
type RegionJob struct {
	Points [][]float64 `yaml:"points"`
	H      [][]string  `yaml:"h"`
}

var errJob = errors.New("gfilogis: invalid job")

// LoadJob reads a job file.
func LoadJob(path string) (*Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseJob(f)
}

// ParseJob decodes a job, rejecting unknown keys.
func ParseJob(r io.Reader) (*Job, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	job := new(Job)
	if err := dec.Decode(job); err != nil {
		return nil, fmt.Errorf("%w: %v", errJob, err)
	}
	return job, nil
}

// BoundsOptions applies the job overrides to the defaults.
func (j *Job) BoundsOptions() *bounds.Options {
	opts := bounds.DefaultOptions()
	if j.Corrections > 0 {
		opts.Corrections = j.Corrections
	}
	if s := j.Stop; s != nil {
		if s.MaxIterations > 0 {
			opts.Stop.MaxIterations = s.MaxIterations
		}
		if s.MaxEvaluations > 0 {
			opts.Stop.MaxEvaluations = s.MaxEvaluations
		}
		if s.Factr != nil {
			opts.Stop.EpsAccuracyFactor = *s.Factr
		}
		if s.Pgtol != nil {
			opts.Stop.ProjGradTolerance = *s.Pgtol
		}
	}
	return opts
}

// Model builds the linear model and the d×k starting points.
func (s *SampleJob) Model() (*density.LinearModel, *mat.Dense, error) {
	d := len(s.B)
	if d == 0 || len(s.P) != d {
		return nil, nil, fmt.Errorf("%w: p must be %d×%d", errJob, d, d)
	}
	p, err := dense(s.P, d)
	if err != nil {
		return nil, nil, err
	}
	m, err := density.NewLinearModel(p, mat.NewVecDense(d, s.B))
	if err != nil {
		return nil, nil, err
	}
	if len(s.Inits) == 0 {
		return nil, nil, fmt.Errorf("%w: at least one starting point is required", errJob)
	}
	pts, err := dense(s.Inits, d)
	if err != nil {
		return nil, nil, err
	}
	return m, mat.DenseCopyOf(pts.T()), nil
}

// Inputs builds the arguments of polytope.Assembler.Extend.
func (e *ExtendJob) Inputs() ([]*rational.Matrix, []*mat.Dense, polytope.Outcome, error) {
	p := len(e.Direction)
	if p == 0 {
		return nil, nil, 0, fmt.Errorf("%w: empty direction", errJob)
	}
	h := make([]*rational.Matrix, len(e.Regions))
	pts := make([]*mat.Dense, len(e.Regions))
	for i, r := range e.Regions {
		h[i] = rational.NewH(p + 2)
		for _, row := range r.H {
			if err := h[i].AppendRow(row); err != nil {
				return nil, nil, 0, fmt.Errorf("region %d: %w", i, err)
			}
		}
		if len(r.Points) == 0 {
			return nil, nil, 0, fmt.Errorf("%w: region %d has no points", errJob, i)
		}
		m, err := dense(r.Points, p)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("region %d: %w", i, err)
		}
		pts[i] = m
	}
	return h, pts, polytope.Outcome(e.Outcome), nil
}

func dense(rows [][]float64, cols int) (*mat.Dense, error) {
	m := mat.NewDense(len(rows), cols, nil)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", errJob, i, len(row), cols)
		}
		m.SetRow(i, row)
	}
	return m, nil
}
