// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compact

import (
	"math"
	"testing"

	"github.com/curioloop/gfilogis/gradcheck"
	"github.com/curioloop/optimizer/numdiff"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	for _, u := range []float64{1e-6, 0.01, 0.25, 0.5, 0.75, 0.99, 1 - 1e-6} {
		require.InDelta(t, u, Atan01(Tan01(u)), 1e-12, "u=%g", u)
	}
	for _, x := range []float64{-1e3, -3, -1, 0, 0.5, 2, 1e3} {
		require.InDelta(t, x, Tan01(Atan01(x)), 1e-9*math.Max(1, math.Abs(x)), "x=%g", x)
	}
	require.Equal(t, 0.0, Tan01(0.5))
	require.Equal(t, 0.5, Atan01(0))
	require.Equal(t, 1.0, Atan01(math.Inf(1)))
	require.Equal(t, 0.0, Atan01(math.Inf(-1)))
}

func TestDTan01(t *testing.T) {
	gc := gradcheck.Checker{
		Object:   func(u []float64) float64 { return Tan01(u[0]) },
		Gradient: func(u, g []float64) { g[0] = DTan01(u[0]) },
		Bounds:   []numdiff.Bound{{0, 1}},
	}
	for u := 0.01; u < 0.995; u += 0.049 {
		e, _, err := gc.MaxError([]float64{u})
		require.NoError(t, err)
		require.Less(t, e, 1e-5, "u=%g", u)
	}
	require.InDelta(t, math.Pi, DTan01(0.5), 1e-15)
}

func TestCosPi(t *testing.T) {
	for x := -3.0; x <= 3.0; x += 0.0625 {
		require.InDelta(t, math.Cos(math.Pi*x), CosPi(x), 1e-14, "x=%g", x)
	}
	require.Equal(t, 0.0, CosPi(0.5))
	require.Equal(t, 0.0, CosPi(-1.5))
	require.Equal(t, -1.0, CosPi(1))
	require.True(t, math.IsNaN(CosPi(math.Inf(1))))
	require.True(t, math.IsNaN(CosPi(math.NaN())))

	// cos(π(½-δ)) = sin(πδ) ≈ πδ keeps relative precision.
	for _, d := range []float64{1e-4, 1e-8, 1e-12} {
		x := 0.5 - d
		require.InEpsilon(t, math.Sin(math.Pi*(0.5-x)), CosPi(x), 1e-12, "δ=%g", d)
	}
}

func TestVector(t *testing.T) {
	u := []float64{0.1, 0.5, 0.9}
	x := Forward(nil, u)
	require.Len(t, x, 3)
	require.InDelta(t, 0, x[1], 1e-15)
	require.InDelta(t, -x[0], x[2], 1e-12)

	back := make([]float64, 3)
	require.Same(t, &back[0], &Inverse(back, x)[0])
	require.InDeltaSlice(t, u, back, 1e-12)

	require.Panics(t, func() { Forward(make([]float64, 2), u) })
	require.Panics(t, func() { Inverse(make([]float64, 4), u) })
}

func TestInterior(t *testing.T) {
	require.True(t, Interior([]float64{0.5, 1e-300, 1 - 1e-15}))
	require.True(t, Interior(nil))
	require.False(t, Interior([]float64{0.5, 0}))
	require.False(t, Interior([]float64{1, 0.5}))
	require.False(t, Interior([]float64{math.NaN()}))
}
