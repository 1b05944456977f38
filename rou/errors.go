// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rou

import "errors"

var (
	// ErrProposalLimit indicates MaxProposals was reached before n draws were accepted.
	ErrProposalLimit = errors.New("rou: proposal limit reached")
	// ErrSampleSize indicates a non-positive number of requested draws.
	ErrSampleSize = errors.New("rou: sample size must be positive")
	// ErrDimension indicates the acceptance box does not match the model.
	ErrDimension = errors.New("rou: dimension mismatch")
)
