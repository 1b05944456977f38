// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bounds

import "errors"

var (
	// ErrDimension indicates the starting points do not match the model dimension.
	ErrDimension = errors.New("bounds: dimension mismatch")
	// ErrStartPoint indicates a starting point outside the open unit cube.
	ErrStartPoint = errors.New("bounds: starting point must lie strictly inside (0,1)")
	// ErrBundle indicates an acceptance box that violates umax > 0 or vmin ≤ 0 ≤ vmax.
	ErrBundle = errors.New("bounds: inconsistent acceptance box")
)
