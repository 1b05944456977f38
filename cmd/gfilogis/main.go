// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command gfilogis runs one step of generalized fiducial inference for
// logistic regression from a YAML job file.
//
//	gfilogis [flags] sample job.yaml   draw from the fiducial density
//	gfilogis [flags] extend job.yaml   add one observation to every region
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/curioloop/optimizer/lbfgsb"
)

func main() {
	var (
		verbose  = flag.Int("v", int(lbfgsb.LogNoop), "L-BFGS-B log level (-1 silent, 0 last iteration, 1..99 every n iterations, 101 verbose)")
		progress = flag.Bool("progress", false, "show a progress bar while sampling")
		outDir   = flag.String("out", "", "write one .ine file per region into this directory")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] sample|extend job.yaml\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	job, err := LoadJob(flag.Arg(1))
	if err != nil {
		fatal(err)
	}
	e := &env{
		logger:   &lbfgsb.Logger{Level: lbfgsb.LogLevel(*verbose), Msg: os.Stderr, Out: os.Stderr},
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		progress: *progress,
		outDir:   *outDir,
	}

	switch cmd := flag.Arg(0); cmd {
	case "sample":
		err = runSample(job, e)
	case "extend":
		err = runExtend(job, e)
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "gfilogis:", err)
	os.Exit(1)
}
