// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rational encodes floating point values as exact rationals and keeps
// the half-space matrices consumed by exact vertex enumeration.
//
// Every finite double is a dyadic rational p/2^k. Encode returns that value in
// lowest terms, never a decimal approximation, so 0.1 becomes
// 3602879701896397/36028797018963968.
package rational

import (
	"fmt"
	"math/big"
)

// Encode returns the exact value of x as "p/q" in lowest terms, or "p" when q = 1.
func Encode(x float64) (string, error) {
	r, err := toRat(x)
	if err != nil {
		return "", err
	}
	return r.RatString(), nil
}

// EncodeVector encodes every element of xs.
func EncodeVector(xs []float64) ([]string, error) {
	out := make([]string, len(xs))
	for i, x := range xs {
		s, err := Encode(x)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = s
	}
	return out, nil
}

// Decode parses "p/q", an integer or a decimal literal.
func Decode(s string) (*big.Rat, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	return r, nil
}

func toRat(x float64) (*big.Rat, error) {
	r := new(big.Rat).SetFloat64(x)
	if r == nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFinite, x)
	}
	return r, nil
}
