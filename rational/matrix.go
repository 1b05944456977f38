// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rational

import (
	"fmt"
	"math/big"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// HRepresentation tags a matrix of half-spaces.
const HRepresentation = "H"

// Matrix is an append-only matrix of exact rationals.
//
// In the H-representation every row is [flag, b, -a₁, …, -a_p] for the
// constraint b - a·x ≥ 0, where flag 1 turns it into an equality.
type Matrix struct {
	Representation string
	cols           int
	rows           [][]*big.Rat
}

// NewH returns an empty H-representation with cols columns.
func NewH(cols int) *Matrix {
	if cols <= 0 {
		panic("rational: matrix width must be positive")
	}
	return &Matrix{Representation: HRepresentation, cols: cols}
}

func (m *Matrix) Rows() int { return len(m.rows) }
func (m *Matrix) Cols() int { return m.cols }

// Row returns row i in text form.
func (m *Matrix) Row(i int) []string {
	out := make([]string, m.cols)
	for j, r := range m.rows[i] {
		out[j] = r.RatString()
	}
	return out
}

// At returns a copy of element (i, j).
func (m *Matrix) At(i, j int) *big.Rat {
	return new(big.Rat).Set(m.rows[i][j])
}

// AppendRow parses and appends a row given in text form.
func (m *Matrix) AppendRow(row []string) error {
	if len(row) != m.cols {
		return fmt.Errorf("%w: row has %d entries, matrix has %d columns", ErrDimension, len(row), m.cols)
	}
	rats := make([]*big.Rat, len(row))
	for j, s := range row {
		r, err := Decode(s)
		if err != nil {
			return fmt.Errorf("column %d: %w", j, err)
		}
		rats[j] = r
	}
	m.rows = append(m.rows, rats)
	return nil
}

// AppendFloats appends the exact rational values of row.
func (m *Matrix) AppendFloats(row []float64) error {
	if len(row) != m.cols {
		return fmt.Errorf("%w: row has %d entries, matrix has %d columns", ErrDimension, len(row), m.cols)
	}
	rats := make([]*big.Rat, len(row))
	for j, x := range row {
		r, err := toRat(x)
		if err != nil {
			return fmt.Errorf("column %d: %w", j, err)
		}
		rats[j] = r
	}
	m.rows = append(m.rows, rats)
	return nil
}

// Clone returns a copy that can grow independently of m.
func (m *Matrix) Clone() *Matrix {
	// rows are never modified once appended, sharing them is safe
	return &Matrix{
		Representation: m.Representation,
		cols:           m.cols,
		rows:           slices.Clip(slices.Clone(m.rows)),
	}
}

// Float64s returns the nearest float64 approximation of m, or nil when m is empty.
func (m *Matrix) Float64s() *mat.Dense {
	if len(m.rows) == 0 {
		return nil
	}
	d := mat.NewDense(len(m.rows), m.cols, nil)
	for i, row := range m.rows {
		for j, r := range row {
			v, _ := r.Float64()
			d.Set(i, j, v)
		}
	}
	return d
}
