// Package config holds the fixed constants of a jitter validation run.
//
// There is no configuration surface: Default returns the values the
// Baseline2020 validation was produced with. The struct exists so the
// runner receives them explicitly and tests can point it at fixtures.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/banshee-data/jitter.report/internal/units"
)

const (
	// DefaultDataRoot is the directory holding one subdirectory per case.
	DefaultDataRoot = "/fsx/Baseline2020"

	// DefaultTransferMatrixPath is the .npz archive holding D_tt.
	DefaultTransferMatrixPath = "linear_jitter.npz"

	// DefaultReferenceFile is the per-case reference jitter pickle.
	DefaultReferenceFile = "MT_FSM_Jitter_FSM_MountCtrl.pkl"

	// DefaultMotionFile is the per-case rigid-body-motion pickle.
	DefaultMotionFile = "wind_loading.data.pkl"

	// DefaultSampleRateHz is the simulation sampling rate.
	DefaultSampleRateHz = 2000

	// DefaultTransientSeconds is the initial transient discarded before
	// statistics are taken.
	DefaultTransientSeconds = 30
)

// ArcsecScale is the radians-to-arcseconds conversion factor applied to
// both jitter series.
const ArcsecScale = units.JitterScale

// Config represents the constants of a validation run.
type Config struct {
	DataRoot           string
	TransferMatrixPath string
	ReferenceFile      string
	MotionFile         string
	SampleRateHz       int
	TransientSeconds   int
}

// Default returns the fixed run constants.
func Default() Config {
	return Config{
		DataRoot:           DefaultDataRoot,
		TransferMatrixPath: DefaultTransferMatrixPath,
		ReferenceFile:      DefaultReferenceFile,
		MotionFile:         DefaultMotionFile,
		SampleRateHz:       DefaultSampleRateHz,
		TransientSeconds:   DefaultTransientSeconds,
	}
}

// Validate checks that the configuration values are usable.
func (c Config) Validate() error {
	if c.DataRoot == "" {
		return fmt.Errorf("data root must not be empty")
	}
	if c.TransferMatrixPath == "" {
		return fmt.Errorf("transfer matrix path must not be empty")
	}
	if c.ReferenceFile == "" || c.MotionFile == "" {
		return fmt.Errorf("per-case file names must not be empty (reference=%q, motion=%q)", c.ReferenceFile, c.MotionFile)
	}
	if c.SampleRateHz <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", c.SampleRateHz)
	}
	if c.TransientSeconds < 0 {
		return fmt.Errorf("transient seconds must be non-negative, got %d", c.TransientSeconds)
	}
	return nil
}

// SkipSamples is the number of leading samples dropped from every series:
// sample rate × seconds to skip.
func (c Config) SkipSamples() int {
	return c.SampleRateHz * c.TransientSeconds
}

// CaseDir returns the directory of one case.
func (c Config) CaseDir(caseID string) string {
	return filepath.Join(c.DataRoot, caseID)
}

// ReferencePath returns the reference jitter archive of one case.
func (c Config) ReferencePath(caseID string) string {
	return filepath.Join(c.CaseDir(caseID), c.ReferenceFile)
}

// MotionPath returns the rigid-body-motion archive of one case.
func (c Config) MotionPath(caseID string) string {
	return filepath.Join(c.CaseDir(caseID), c.MotionFile)
}
