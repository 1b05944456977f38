// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package density

import "math"

// LogisPDF is the standard logistic density e^z/(1+e^z)².
func LogisPDF(z float64) float64 {
	return math.Exp(LogLogisPDF(z))
}

// LogLogisPDF is log(e^z/(1+e^z)²) written as -|z| - 2·log1p(e^-|z|),
// which neither overflows nor cancels for large |z|.
func LogLogisPDF(z float64) float64 {
	a := math.Abs(z)
	return -a - 2*math.Log1p(math.Exp(-a))
}

// DLogLogis is d/dz log logisPDF(z) = 1 - 2σ(z) = -tanh(z/2).
func DLogLogis(z float64) float64 {
	return -math.Tanh(z / 2)
}
