// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bounds

import (
	"fmt"
	"io"
	"os"

	"github.com/curioloop/optimizer/lbfgsb"
)

// Options configures the L-BFGS-B runs of Find.
type Options struct {
	// Corrections is the number of limited memory corrections.
	Corrections int
	// Stop is applied to every run.
	Stop lbfgsb.Termination
	// Logger receives the optimiser trace and one line per non-converged run.
	// Nil is silent.
	Logger *lbfgsb.Logger
}

// DefaultOptions returns m = 5, maxit = 10000, factr = 1e7 and pgtol = 0.
func DefaultOptions() *Options {
	return &Options{
		Corrections: 5,
		Stop: lbfgsb.Termination{
			MaxIterations:     10000,
			EpsAccuracyFactor: 1e7,
			ProjGradTolerance: 0,
		},
	}
}

// logger returns a private copy with the writers lbfgsb would default to.
func (o *Options) logger() *lbfgsb.Logger {
	if o.Logger == nil {
		return &lbfgsb.Logger{Level: lbfgsb.LogNoop, Msg: io.Discard, Out: io.Discard}
	}
	l := *o.Logger
	if l.Msg == nil {
		l.Msg = os.Stdout
	}
	if l.Out == nil {
		l.Out = os.Stderr
	}
	return &l
}

// logf writes to the message writer of l when its level reaches level.
func logf(l *lbfgsb.Logger, level lbfgsb.LogLevel, format string, a ...any) {
	if l == nil || l.Msg == nil || l.Level < level {
		return
	}
	fmt.Fprintf(l.Msg, format, a...)
}
