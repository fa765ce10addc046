// Package main checks the linear tip/tilt jitter model against the
// end-to-end simulation for every Baseline2020 wind-loading case.
//
// For each case it prints the reference and model jitter standard
// deviations (arcsec) over the steady-state window and their distance:
//
//	b2019_0z_0az_os_2ms      [   2,   1]  [   2,   1] (0.056)
//
// All inputs are fixed: the transfer matrix linear_jitter.npz in the
// working directory and the case archives under /fsx/Baseline2020.
package main

import (
	"log"
	"os"

	"github.com/banshee-data/jitter.report/internal/cases"
	"github.com/banshee-data/jitter.report/internal/config"
	"github.com/banshee-data/jitter.report/internal/fsutil"
	"github.com/banshee-data/jitter.report/internal/monitoring"
	"github.com/banshee-data/jitter.report/internal/validation"
	"github.com/banshee-data/jitter.report/internal/version"
)

func main() {
	monitoring.Logf("jitter-check %s", version.String())

	runner, err := validation.NewRunner(config.Default(), fsutil.OSFileSystem{}, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to start validation: %v", err)
	}

	if err := runner.Run(cases.All()); err != nil {
		log.Fatalf("Validation failed: %v", err)
	}
}
