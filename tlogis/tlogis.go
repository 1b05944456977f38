// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tlogis draws standard logistic variates truncated on one side by
// inverting the CDF on the matching probability interval.
package tlogis

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	epsmch   = math.Nextafter(1, 2) - 1
	belowOne = math.Nextafter(1, 0)
	logistic = distuv.Logistic{Mu: 0, S: 1}
)

// CDF is the standard logistic distribution function 1/(1+e^-z).
func CDF(z float64) float64 { return logistic.CDF(z) }

// Quantile is log(p/(1-p)).
func Quantile(p float64) float64 { return logistic.Quantile(p) }

// Upper draws Z conditioned on Z ≤ x.
//
// When CDF(x) ≤ 𝚎𝚙𝚜𝚖𝚌𝚑 the interval is empty in double precision and x is
// returned unchanged.
func Upper(x float64, src rand.Source) float64 {
	b := CDF(x)
	if b <= epsmch {
		return x
	}
	return Quantile(distuv.Uniform{Min: epsmch, Max: b, Src: src}.Rand())
}

// Lower draws Z conditioned on Z ≥ x.
//
// When CDF(x) rounds to 1, x is returned unchanged.
func Lower(x float64, src rand.Source) float64 {
	a := CDF(x)
	if a == 1 {
		return x
	}
	u := distuv.Uniform{Min: a, Max: 1, Src: src}.Rand()
	// a + r·(1-a) may round up to 1 when a is close to it.
	return Quantile(math.Min(u, belowOne))
}
