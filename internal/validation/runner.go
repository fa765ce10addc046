// Package validation runs the linear jitter model check over a list of
// wind-loading cases.
//
// Cases run strictly in order: each one is loaded, reduced and printed
// before the next begins. The transfer matrix is loaded once and shared
// read-only. The first failure stops the run; lines already printed stay.
package validation

import (
	"fmt"
	"io"

	"github.com/banshee-data/jitter.report/internal/archive"
	"github.com/banshee-data/jitter.report/internal/cases"
	"github.com/banshee-data/jitter.report/internal/config"
	"github.com/banshee-data/jitter.report/internal/fsutil"
	"github.com/banshee-data/jitter.report/internal/jitter"
	"github.com/banshee-data/jitter.report/internal/monitoring"
	"github.com/banshee-data/jitter.report/internal/report"
)

// Runner holds the fixed inputs of a validation run.
type Runner struct {
	cfg  config.Config
	fsys fsutil.FileSystem
	out  *report.Writer
}

// NewRunner validates cfg and returns a Runner reading through fsys and
// printing to out.
func NewRunner(cfg config.Config, fsys fsutil.FileSystem, out io.Writer) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &Runner{cfg: cfg, fsys: fsys, out: report.NewWriter(out)}, nil
}

// Run loads the transfer matrix and processes caseIDs in order.
func (r *Runner) Run(caseIDs []string) error {
	tic := monitoring.Tic()
	tm, err := archive.LoadTransferMatrix(r.fsys, r.cfg.TransferMatrixPath)
	if err != nil {
		return err
	}
	tic.Toc("loaded transfer matrix %s", r.cfg.TransferMatrixPath)

	worst := ""
	var worstResult jitter.Result
	for _, id := range caseIDs {
		res, err := r.RunCase(tm, id)
		if err != nil {
			return fmt.Errorf("case %s: %w", id, err)
		}
		if err := r.out.WriteCase(id, res); err != nil {
			return err
		}
		if worst == "" || res.Discrepancy > worstResult.Discrepancy {
			worst, worstResult = id, res
		}
	}

	if worst != "" {
		monitoring.Logf("processed %d cases; largest discrepancy %.3f in %s", r.out.Lines(), worstResult.Discrepancy, worst)
	}
	return nil
}

// RunCase loads and reduces one case against the shared transfer matrix.
func (r *Runner) RunCase(tm *archive.TransferMatrix, caseID string) (jitter.Result, error) {
	if _, err := cases.Parse(caseID); err != nil {
		return jitter.Result{}, err
	}

	tic := monitoring.Tic()
	ref, err := archive.LoadReferenceJitter(r.fsys, r.cfg.ReferencePath(caseID))
	if err != nil {
		return jitter.Result{}, err
	}
	rbm, err := archive.LoadRigidBodyMotion(r.fsys, r.cfg.MotionPath(caseID))
	if err != nil {
		return jitter.Result{}, err
	}

	res, err := jitter.Compare(tm.Dtt, ref.Pupil, rbm.Stacked(), jitter.Options{
		Skip:  r.cfg.SkipSamples(),
		Scale: config.ArcsecScale,
	})
	if err != nil {
		return jitter.Result{}, err
	}
	tic.Toc("%s: %d reference and %d motion samples", caseID, ref.Samples(), rbm.Samples())
	return res, nil
}
