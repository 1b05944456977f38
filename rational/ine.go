// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rational

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteINE writes m in the cdd .ine format. The flag column becomes the
// linearity line and the remaining columns are written as rationals.
func WriteINE(w io.Writer, m *Matrix) error {
	if m.Representation != HRepresentation {
		return fmt.Errorf("%w: representation %q is not H", ErrSyntax, m.Representation)
	}
	if m.cols < 2 {
		return fmt.Errorf("%w: H needs a flag and a constant column, got %d columns", ErrDimension, m.cols)
	}

	var lin []string
	for i, row := range m.rows {
		switch {
		case row[0].Sign() == 0:
		case row[0].IsInt() && row[0].Num().IsInt64() && row[0].Num().Int64() == 1:
			lin = append(lin, strconv.Itoa(i+1))
		default:
			return fmt.Errorf("%w: row %d has flag %s", ErrSyntax, i, row[0].RatString())
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "H-representation")
	if len(lin) > 0 {
		fmt.Fprintf(bw, "linearity %d %s\n", len(lin), strings.Join(lin, " "))
	}
	fmt.Fprintln(bw, "begin")
	fmt.Fprintf(bw, " %d %d rational\n", len(m.rows), m.cols-1)
	for _, row := range m.rows {
		for _, r := range row[1:] {
			bw.WriteByte(' ')
			bw.WriteString(r.RatString())
		}
		bw.WriteByte('\n')
	}
	fmt.Fprintln(bw, "end")
	return bw.Flush()
}

// ReadINE parses an H-representation in the cdd .ine format.
// Lines starting with '*' are comments; options after "end" are ignored.
func ReadINE(r io.Reader) (*Matrix, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var (
		lin    []int
		tokens []string
		begun  bool
		ended  bool
	)
	for !ended && sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "*") {
			continue
		}
		if !begun {
			f := strings.Fields(line)
			switch f[0] {
			case "V-representation":
				return nil, fmt.Errorf("%w: V-representation is not supported", ErrSyntax)
			case "linearity":
				idx, err := parseLinearity(f[1:])
				if err != nil {
					return nil, err
				}
				lin = idx
			case "begin":
				begun = true
			}
			continue
		}
		for _, tok := range strings.Fields(line) {
			if tok == "end" {
				ended = true
				break
			}
			tokens = append(tokens, tok)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !begun || !ended {
		return nil, fmt.Errorf("%w: missing begin/end block", ErrSyntax)
	}
	if len(tokens) < 3 {
		return nil, fmt.Errorf("%w: missing size line", ErrSyntax)
	}

	rows, err1 := strconv.Atoi(tokens[0])
	cols, err2 := strconv.Atoi(tokens[1])
	if err1 != nil || err2 != nil || rows < 0 || cols < 1 {
		return nil, fmt.Errorf("%w: bad size %q %q", ErrSyntax, tokens[0], tokens[1])
	}
	switch tokens[2] {
	case "rational", "integer", "real":
	default:
		return nil, fmt.Errorf("%w: unknown number type %q", ErrSyntax, tokens[2])
	}
	values := tokens[3:]
	if len(values) != rows*cols {
		return nil, fmt.Errorf("%w: expected %d values, found %d", ErrSyntax, rows*cols, len(values))
	}

	eq := make(map[int]bool, len(lin))
	for _, i := range lin {
		if i < 1 || i > rows {
			return nil, fmt.Errorf("%w: linearity row %d out of range", ErrSyntax, i)
		}
		eq[i-1] = true
	}

	m := NewH(cols + 1)
	row := make([]string, cols+1)
	for i := 0; i < rows; i++ {
		row[0] = "0"
		if eq[i] {
			row[0] = "1"
		}
		copy(row[1:], values[i*cols:(i+1)*cols])
		if err := m.AppendRow(row); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return m, nil
}

func parseLinearity(f []string) ([]int, error) {
	if len(f) == 0 {
		return nil, fmt.Errorf("%w: empty linearity line", ErrSyntax)
	}
	k, err := strconv.Atoi(f[0])
	if err != nil || k != len(f)-1 {
		return nil, fmt.Errorf("%w: linearity count mismatch", ErrSyntax)
	}
	idx := make([]int, k)
	for i, s := range f[1:] {
		if idx[i], err = strconv.Atoi(s); err != nil {
			return nil, fmt.Errorf("%w: linearity index %q", ErrSyntax, s)
		}
	}
	return idx, nil
}
