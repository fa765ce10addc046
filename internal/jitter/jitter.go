// Package jitter reduces a reference tip/tilt series and a linear model
// prediction to per-axis standard deviations and their discrepancy.
package jitter

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrShape is returned when the transfer matrix and the motion series
	// cannot be multiplied, or a series does not have two axes.
	ErrShape = errors.New("dimension mismatch")

	// ErrWindow is returned when the transient skip leaves no samples.
	ErrWindow = errors.New("empty steady-state window")
)

// Axes is the number of tip/tilt components.
const Axes = 2

// Pair holds one value per tip/tilt axis.
type Pair [Axes]float64

// Result is the reduction of one case.
type Result struct {
	Reference   Pair
	Projected   Pair
	Discrepancy float64
}

// Options controls the reduction.
type Options struct {
	// Skip is the number of leading samples discarded from both series.
	Skip int
	// Scale converts the series to the reported unit.
	Scale float64
}

// Project returns dtt · rbmᵀ: the 2×T tip/tilt series predicted from a T×N
// rigid-body-motion series with a 2×N transfer matrix.
func Project(dtt, rbm mat.Matrix) (*mat.Dense, error) {
	dr, dc := dtt.Dims()
	rr, rc := rbm.Dims()
	if dr != Axes {
		return nil, fmt.Errorf("%w: transfer matrix has %d rows, want %d", ErrShape, dr, Axes)
	}
	if dc != rc {
		return nil, fmt.Errorf("%w: transfer matrix is %d×%d, motion is %d×%d", ErrShape, dr, dc, rr, rc)
	}
	var out mat.Dense
	out.Mul(dtt, rbm.T())
	return &out, nil
}

// Window returns a view of m without its first skip columns.
func Window(m *mat.Dense, skip int) (*mat.Dense, error) {
	r, c := m.Dims()
	if skip < 0 {
		return nil, fmt.Errorf("%w: negative skip %d", ErrWindow, skip)
	}
	if skip >= c {
		return nil, fmt.Errorf("%w: skipping %d of %d samples", ErrWindow, skip, c)
	}
	return m.Slice(0, r, skip, c).(*mat.Dense), nil
}

// Scale returns a copy of m multiplied by f.
func Scale(m mat.Matrix, f float64) *mat.Dense {
	var out mat.Dense
	out.Scale(f, m)
	return &out
}

// AxisStdDev returns the population standard deviation of each row of a
// 2×T series.
func AxisStdDev(m mat.Matrix) (Pair, error) {
	r, _ := m.Dims()
	if r != Axes {
		return Pair{}, fmt.Errorf("%w: series has %d rows, want %d", ErrShape, r, Axes)
	}
	var out Pair
	for i := range out {
		row := mat.Row(nil, i, m)
		out[i] = math.Sqrt(stat.PopVariance(row, nil))
	}
	return out, nil
}

// Discrepancy is the Euclidean distance between two pairs.
func Discrepancy(ref, proj Pair) float64 {
	return floats.Distance(ref[:], proj[:], 2)
}

// Stats windows and scales a 2×T series and returns its per-axis standard
// deviation.
func Stats(series *mat.Dense, opts Options) (Pair, error) {
	w, err := Window(series, opts.Skip)
	if err != nil {
		return Pair{}, err
	}
	return AxisStdDev(Scale(w, opts.Scale))
}

// Compare reduces one case: the reference series and the projection of
// rbm through dtt are windowed, scaled and compared.
func Compare(dtt mat.Matrix, reference *mat.Dense, rbm mat.Matrix, opts Options) (Result, error) {
	ref, err := Stats(reference, opts)
	if err != nil {
		return Result{}, fmt.Errorf("reference: %w", err)
	}

	projected, err := Project(dtt, rbm)
	if err != nil {
		return Result{}, err
	}
	proj, err := Stats(projected, opts)
	if err != nil {
		return Result{}, fmt.Errorf("projection: %w", err)
	}

	return Result{
		Reference:   ref,
		Projected:   proj,
		Discrepancy: Discrepancy(ref, proj),
	}, nil
}
