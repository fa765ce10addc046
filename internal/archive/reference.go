package archive

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/jitter.report/internal/fsutil"
)

// ReferenceJitter is the tip/tilt time series of the end-to-end
// simulation, in radians.
type ReferenceJitter struct {
	// Pupil is 2×T: one row per tip/tilt axis, one column per sample.
	Pupil *mat.Dense
}

// Samples returns the number of time samples.
func (r *ReferenceJitter) Samples() int {
	_, c := r.Pupil.Dims()
	return c
}

// LoadReferenceJitter reads the Data.Pupil entry of the pickle at path.
func LoadReferenceJitter(fsys fsutil.FileSystem, path string) (*ReferenceJitter, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference jitter: %w", err)
	}
	ref, err := DecodeReferenceJitter(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ref, nil
}

// DecodeReferenceJitter decodes an in-memory reference jitter pickle.
func DecodeReferenceJitter(data []byte) (*ReferenceJitter, error) {
	root, err := decodePickle(data)
	if err != nil {
		return nil, err
	}
	v, err := fieldPath(root, "Data", "Pupil")
	if err != nil {
		return nil, err
	}

	pupil, err := matrix(v)
	if err != nil {
		return nil, fmt.Errorf("Data.Pupil: %w", err)
	}
	if rows, cols := pupil.Dims(); rows != JitterAxes {
		return nil, fmt.Errorf("%w: Data.Pupil is %d×%d, want %d rows", ErrShape, rows, cols, JitterAxes)
	}
	return &ReferenceJitter{Pupil: pupil}, nil
}

// matrix converts a 2-D ndarray or a list of equal-length rows into a
// dense matrix.
func matrix(v interface{}) (*mat.Dense, error) {
	if arr, ok := v.(*ndarray); ok {
		return arr.dense()
	}

	rows, ok := sequence(v)
	if !ok {
		return nil, fmt.Errorf("%w: expected an array, got %T", ErrDecode, v)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty array", ErrShape)
	}

	var m *mat.Dense
	for i, row := range rows {
		vals, err := vector(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if len(vals) == 0 {
			return nil, fmt.Errorf("%w: row %d is empty", ErrShape, i)
		}
		if m == nil {
			m = mat.NewDense(len(rows), len(vals), nil)
		} else if _, c := m.Dims(); len(vals) != c {
			return nil, fmt.Errorf("%w: row %d has %d columns, row 0 has %d", ErrShape, i, len(vals), c)
		}
		m.SetRow(i, vals)
	}
	return m, nil
}
