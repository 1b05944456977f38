// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package polytope

import "errors"

var (
	// ErrDimension indicates regions, points, H blocks and direction that do not line up.
	ErrDimension = errors.New("polytope: dimension mismatch")
	// ErrOutcome indicates an outcome other than 0 or 1.
	ErrOutcome = errors.New("polytope: outcome must be 0 or 1")
)
