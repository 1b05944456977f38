// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package density

import "errors"

var (
	// ErrDimension indicates P is not square, b is not conformable or d is zero.
	ErrDimension = errors.New("density: dimension mismatch")
	// ErrNotFinite indicates P or b holds a NaN or an infinity.
	ErrNotFinite = errors.New("density: model coefficients must be finite")
)
