// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cheggaaa/pb/v3"
	"github.com/curioloop/gfilogis/bounds"
	"github.com/curioloop/gfilogis/polytope"
	"github.com/curioloop/gfilogis/rational"
	"github.com/curioloop/gfilogis/rou"
	"github.com/curioloop/optimizer/lbfgsb"
	"golang.org/x/exp/rand"
)

type env struct {
	logger   *lbfgsb.Logger
	stdout   io.Writer
	stderr   io.Writer
	progress bool
	outDir   string
}

func runSample(job *Job, e *env) error {
	s := job.Sample
	if s == nil {
		return fmt.Errorf("%w: no sample section", errJob)
	}
	model, inits, err := s.Model()
	if err != nil {
		return err
	}

	opts := &rou.Options{Bounds: job.BoundsOptions(), MaxProposals: s.MaxProposals}
	opts.Bounds.Logger = e.logger
	if e.progress {
		bar := pb.New(s.N).SetWriter(e.stderr).Start()
		defer bar.Finish()
		opts.Progress = func(k int) { bar.SetCurrent(int64(k)) }
	}

	draws, err := rou.Sample(s.N, model, inits, rand.NewSource(job.Seed), opts)
	if draws == nil {
		return err
	}
	report(e.stderr, draws.Bundle)

	w := bufio.NewWriter(e.stdout)
	if draws.X != nil {
		r, c := draws.X.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				if j > 0 {
					w.WriteByte('\t')
				}
				w.WriteString(strconv.FormatFloat(draws.X.At(i, j), 'g', -1, 64))
			}
			w.WriteByte('\n')
		}
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	fmt.Fprintf(e.stderr, "proposals %d, acceptance rate %.4f\n", draws.Proposed, draws.AcceptanceRate())
	return err
}

// report writes one advisory line per non-converged optimiser run.
func report(w io.Writer, b *bounds.Bundle) {
	for _, d := range b.Diagnostics {
		if d.Converged {
			continue
		}
		fmt.Fprintf(w, "-- %v -- axis %d start %v: %v (%d iterations, %d evaluations)\n",
			d.Problem, d.Axis, d.Start, d.Status, d.NumIter, d.NumEval)
	}
}

func runExtend(job *Job, e *env) error {
	x := job.Extend
	if x == nil {
		return fmt.Errorf("%w: no extend section", errJob)
	}
	h, pts, y, err := x.Inputs()
	if err != nil {
		return err
	}

	a := polytope.Assembler{Seed: job.Seed, Workers: x.Workers}
	if x.Workers <= 1 {
		a.Src = rand.NewSource(job.Seed)
	}
	ext, err := a.Extend(h, pts, y, x.Direction)
	if err != nil {
		return err
	}

	if e.outDir != "" {
		if err := os.MkdirAll(e.outDir, 0o755); err != nil {
			return err
		}
	}
	for i, m := range ext.H {
		fmt.Fprintf(e.stdout, "* region %d threshold %s weight %s\n", i,
			strconv.FormatFloat(ext.Thresholds[i], 'g', -1, 64),
			strconv.FormatFloat(ext.Weights[i], 'g', -1, 64))
		if e.outDir == "" {
			if err := rational.WriteINE(e.stdout, m); err != nil {
				return fmt.Errorf("region %d: %w", i, err)
			}
			continue
		}
		if err := writeFile(filepath.Join(e.outDir, fmt.Sprintf("region-%03d.ine", i)), m); err != nil {
			return fmt.Errorf("region %d: %w", i, err)
		}
	}
	return nil
}

func writeFile(path string, m *rational.Matrix) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return rational.WriteINE(f, m)
}
