// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rational

import "errors"

var (
	// ErrNotFinite indicates a NaN or an infinity, which has no rational value.
	ErrNotFinite = errors.New("rational: value is not finite")
	// ErrSyntax indicates text that is not a rational number or a malformed .ine file.
	ErrSyntax = errors.New("rational: invalid syntax")
	// ErrDimension indicates a row whose length differs from the matrix width.
	ErrDimension = errors.New("rational: row length mismatch")
)
