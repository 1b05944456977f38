// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/curioloop/gfilogis/rational"
	"github.com/curioloop/optimizer/lbfgsb"
	"github.com/stretchr/testify/require"
)

const sampleJob = `
seed: 42
corrections: 7
stop:
  max_iterations: 500
  factr: 1e5
sample:
  n: 50
  p: [[1, 0], [0, 1]]
  b: [0, 0]
  inits:
    - [0.25, 0.25]
    - [0.75, 0.75]
`

const extendJob = `
seed: 666
extend:
  outcome: 0
  direction: [1, 0]
  workers: %s
  regions:
    - points: [[1, 0]]
      h: [["0", "1", "-1/2", "0"]]
    - points: [[0, 1], [2, 2]]
`

func testEnv() (*env, *bytes.Buffer, *bytes.Buffer) {
	var out, errs bytes.Buffer
	return &env{
		logger: &lbfgsb.Logger{Level: lbfgsb.LogNoop, Msg: &errs, Out: &errs},
		stdout: &out,
		stderr: &errs,
	}, &out, &errs
}

func TestParseJob(t *testing.T) {
	job, err := ParseJob(strings.NewReader(sampleJob))
	require.NoError(t, err)
	require.Equal(t, uint64(42), job.Seed)
	require.Equal(t, 50, job.Sample.N)
	require.Nil(t, job.Extend)

	opts := job.BoundsOptions()
	require.Equal(t, 7, opts.Corrections)
	require.Equal(t, 500, opts.Stop.MaxIterations)
	require.Equal(t, 1e5, opts.Stop.EpsAccuracyFactor)
	require.Equal(t, 0.0, opts.Stop.ProjGradTolerance)

	model, inits, err := job.Sample.Model()
	require.NoError(t, err)
	require.Equal(t, 2, model.Dim())
	r, c := inits.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 2, c)
	require.Equal(t, 0.75, inits.At(1, 1))

	_, err = ParseJob(strings.NewReader("seed: 1\nunknown: 2\n"))
	require.ErrorIs(t, err, errJob)

	bad := &SampleJob{N: 1, P: [][]float64{{1, 0}, {0}}, B: []float64{0, 0}, Inits: [][]float64{{0.5, 0.5}}}
	_, _, err = bad.Model()
	require.ErrorIs(t, err, errJob)
	bad = &SampleJob{N: 1, P: [][]float64{{1}}, B: []float64{0}}
	_, _, err = bad.Model()
	require.ErrorIs(t, err, errJob)
}

func TestRunSample(t *testing.T) {
	job, err := ParseJob(strings.NewReader(sampleJob))
	require.NoError(t, err)
	e, out, errs := testEnv()
	require.NoError(t, runSample(job, e))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 50)
	for _, line := range lines {
		fields := strings.Split(line, "\t")
		require.Len(t, fields, 2)
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			require.NoError(t, err)
			require.Greater(t, v, 0.0)
			require.Less(t, v, 1.0)
		}
	}
	require.Contains(t, errs.String(), "acceptance rate")

	e2, out2, _ := testEnv()
	require.NoError(t, runSample(job, e2))
	require.Equal(t, out.String(), out2.String())

	require.ErrorIs(t, runSample(&Job{}, e), errJob)
}

func TestRunExtend(t *testing.T) {
	job, err := ParseJob(strings.NewReader(strings.Replace(extendJob, "%s", "1", 1)))
	require.NoError(t, err)
	e, out, _ := testEnv()
	require.NoError(t, runExtend(job, e))

	text := out.String()
	require.Equal(t, 2, strings.Count(text, "H-representation"))
	require.Contains(t, text, "* region 0 threshold")
	require.Contains(t, text, " 2 3 rational\n 1 -1/2 0\n")

	par, err := ParseJob(strings.NewReader(strings.Replace(extendJob, "%s", "4", 1)))
	require.NoError(t, err)
	e, _, _ = testEnv()
	e.outDir = filepath.Join(t.TempDir(), "h")
	require.NoError(t, runExtend(par, e))

	f, err := os.Open(filepath.Join(e.outDir, "region-001.ine"))
	require.NoError(t, err)
	defer f.Close()
	m, err := rational.ReadINE(f)
	require.NoError(t, err)
	require.Equal(t, 1, m.Rows())
	require.Equal(t, 4, m.Cols())
	require.Equal(t, []string{"-1", "0"}, m.Row(0)[2:])

	require.ErrorIs(t, runExtend(&Job{}, e), errJob)
}
