// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package density

import (
	"math"
	"testing"

	"github.com/curioloop/gfilogis/gradcheck"
	"github.com/curioloop/optimizer/numdiff"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func newModel(t *testing.T, d int, p, b []float64) *LinearModel {
	t.Helper()
	m, err := NewLinearModel(mat.NewDense(d, d, p), mat.NewVecDense(d, b))
	require.NoError(t, err)
	return m
}

func TestLogistic(t *testing.T) {
	for z := -30.0; z <= 30; z += 0.7 {
		e := math.Exp(z)
		require.InEpsilon(t, e/((1+e)*(1+e)), LogisPDF(z), 1e-12, "z=%g", z)
		require.InDelta(t, 1-2/(1+math.Exp(-z)), DLogLogis(z), 1e-14, "z=%g", z)
	}
	require.InDelta(t, 0.25, LogisPDF(0), 1e-16)
	require.Equal(t, -800.0, LogLogisPDF(800))
	require.Equal(t, -800.0, LogLogisPDF(-800))
	require.Equal(t, -1.0, DLogLogis(math.Inf(1)))
}

func TestNewLinearModel(t *testing.T) {
	p := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	m, err := NewLinearModel(p, mat.NewVecDense(2, []float64{5, 6}))
	require.NoError(t, err)
	require.Equal(t, 2, m.Dim())

	p.Set(0, 0, 100)
	require.Equal(t, 1.0, m.P().At(0, 0), "model must own its coefficients")
	require.Equal(t, []float64{1*1 + 2*-1 + 5, 3*1 + 4*-1 + 6}, m.Affine(nil, []float64{1, -1}))

	_, err = NewLinearModel(mat.NewDense(2, 3, nil), mat.NewVecDense(2, nil))
	require.ErrorIs(t, err, ErrDimension)
	_, err = NewLinearModel(mat.NewDense(2, 2, nil), mat.NewVecDense(3, nil))
	require.ErrorIs(t, err, ErrDimension)
	_, err = NewLinearModel(mat.NewDense(1, 1, []float64{math.NaN()}), mat.NewVecDense(1, nil))
	require.ErrorIs(t, err, ErrNotFinite)
	_, err = NewLinearModel(mat.NewDense(1, 1, []float64{1}), mat.NewVecDense(1, []float64{math.Inf(-1)}))
	require.ErrorIs(t, err, ErrNotFinite)

	require.Panics(t, func() { m.Affine(nil, []float64{1}) })
}

func TestStandardLogistic(t *testing.T) {
	m := newModel(t, 1, []float64{1}, []float64{0})
	f := Density{m}
	for _, u := range []float64{0.05, 0.3, 0.5, 0.81, 0.97} {
		z := math.Tan(math.Pi * (u - 0.5))
		require.InEpsilon(t, LogisPDF(z), f.Value([]float64{u}), 1e-12)
		require.InDelta(t, LogLogisPDF(z), LogPDF(m, []float64{z}), 1e-12)
	}
	require.InDelta(t, 0.25, f.Value([]float64{0.5}), 1e-16)

	g := make([]float64, 1)
	f.Gradient([]float64{0.5}, g)
	require.InDelta(t, 0, g[0], 1e-15, "logistic mode is at t = 0")
}

func TestIdentityModel(t *testing.T) {
	m := newModel(t, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}, []float64{0, 0, 0})
	u := []float64{0.5, 0.5, 0.5}
	require.InEpsilon(t, math.Pow(0.25, 3), Density{m}.Value(u), 1e-13)
	require.InDelta(t, 3*math.Log(0.25), Density{m}.LogValue(u), 1e-14)
}

func TestGradients(t *testing.T) {
	m := newModel(t, 2, []float64{1, 0.5, -0.3, 2}, []float64{0.2, -0.1})
	mu := []float64{0.1, -0.2}
	objs := map[string]LogObjective{
		"density":   Density{m},
		"weighted0": Weighted{Model: m, Mu: mu, Axis: 0},
		"weighted1": Weighted{Model: m, Mu: mu, Axis: 1},
	}
	points := [][]float64{{0.3, 0.6}, {0.62, 0.41}, {0.15, 0.88}, {0.7, 0.2}}
	bounds := []numdiff.Bound{{0, 1}, {0, 1}}

	for name, obj := range objs {
		plain := gradcheck.Checker{Object: obj.Value, Gradient: obj.Gradient, Bounds: bounds}
		logs := gradcheck.Checker{Object: obj.LogValue, Gradient: obj.LogGradient, Bounds: bounds}
		for _, u := range points {
			e, _, err := plain.MaxError(u)
			require.NoError(t, err)
			require.Less(t, e, 1e-7, "%s value gradient at %v", name, u)

			e, _, err = logs.MaxError(u)
			require.NoError(t, err)
			require.Less(t, e, 1e-6, "%s log gradient at %v", name, u)

			// ∇g / g = ∇log|g|
			g, lg := make([]float64, 2), make([]float64, 2)
			obj.Gradient(u, g)
			obj.LogGradient(u, lg)
			v := obj.Value(u)
			require.InDelta(t, math.Log(math.Abs(v)), obj.LogValue(u), 1e-12, name)
			for i := range g {
				require.InDelta(t, lg[i], g[i]/v, 1e-9*math.Max(1, math.Abs(lg[i])), "%s axis %d", name, i)
			}
		}
	}
}

func TestWeightedSign(t *testing.T) {
	// d = 1, the weight (t - μ)³ is odd.
	m := newModel(t, 1, []float64{1}, []float64{0})
	w := Weighted{Model: m, Mu: []float64{0}, Axis: 0}
	require.Less(t, w.Value([]float64{0.3}), 0.0)
	require.Greater(t, w.Value([]float64{0.7}), 0.0)
	require.InDelta(t, w.LogValue([]float64{0.3}), w.LogValue([]float64{0.7}), 1e-12)

	require.Panics(t, func() { Weighted{Model: m, Mu: []float64{0}, Axis: 1}.Value([]float64{0.3}) })
	require.Panics(t, func() { Density{m}.Gradient([]float64{0.3}, make([]float64, 2)) })
}
