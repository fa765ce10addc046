package archive

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/jitter.report/internal/fsutil"
)

const (
	// M1Key is the M1 segment local rigid-body-motion output.
	M1Key = "OSSM1Lcl"

	// M2Key is the M2 segment local rigid-body-motion output.
	M2Key = "MCM2Lcl6D"
)

// RigidBodyMotion holds the M1 and M2 rigid-body motions of one case.
type RigidBodyMotion struct {
	// Time is the sample time of each row, in seconds.
	Time []float64
	// M1 and M2 are T×6: three translations then three rotations.
	M1, M2 *mat.Dense
}

// Samples returns the number of time samples.
func (r *RigidBodyMotion) Samples() int {
	n, _ := r.M1.Dims()
	return n
}

// Stacked returns the T×12 horizontal concatenation [M1 | M2].
func (r *RigidBodyMotion) Stacked() *mat.Dense {
	var out mat.Dense
	out.Augment(r.M1, r.M2)
	return &out
}

// LoadRigidBodyMotion reads the M1/M2 time series of the pickle at path.
func LoadRigidBodyMotion(fsys fsutil.FileSystem, path string) (*RigidBodyMotion, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rigid body motion: %w", err)
	}
	rbm, err := DecodeRigidBodyMotion(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rbm, nil
}

// DecodeRigidBodyMotion decodes an in-memory rigid-body-motion pickle. The
// top level is either a dict keyed by output name or a sequence of
// (name, output) pairs; each output holds a "data" list of
// (time, 6-vector) samples.
func DecodeRigidBodyMotion(data []byte) (*RigidBodyMotion, error) {
	root, err := decodePickle(data)
	if err != nil {
		return nil, err
	}

	m1Time, m1, err := timeSeries(root, M1Key)
	if err != nil {
		return nil, err
	}
	_, m2, err := timeSeries(root, M2Key)
	if err != nil {
		return nil, err
	}

	n1, _ := m1.Dims()
	n2, _ := m2.Dims()
	if n1 != n2 {
		return nil, fmt.Errorf("%w: %s has %d samples, %s has %d", ErrShape, M1Key, n1, M2Key, n2)
	}
	return &RigidBodyMotion{Time: m1Time, M1: m1, M2: m2}, nil
}

// output finds a named output at the top level of a motion record.
func output(root interface{}, name string) (interface{}, error) {
	if _, ok := root.(mapping); ok {
		return field(root, name)
	}
	items, ok := sequence(root)
	if !ok {
		return nil, fmt.Errorf("%w: %q: record is %T", ErrMissingField, name, root)
	}
	for _, item := range items {
		pair, ok := sequence(item)
		if !ok || len(pair) != 2 {
			continue
		}
		if key, _ := pair[0].(string); key == name {
			return pair[1], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrMissingField, name)
}

// timeSeries extracts one output as sample times and a T×6 matrix.
func timeSeries(root interface{}, name string) ([]float64, *mat.Dense, error) {
	out, err := output(root, name)
	if err != nil {
		return nil, nil, err
	}

	samples, ok := sequence(out)
	if !ok {
		d, err := field(out, "data")
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", name, err)
		}
		if samples, ok = sequence(d); !ok {
			return nil, nil, fmt.Errorf("%w: %s.data is %T, not a list", ErrDecode, name, d)
		}
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("%w: %s has no samples", ErrShape, name)
	}

	times := make([]float64, len(samples))
	m := mat.NewDense(len(samples), BodyAxes, nil)
	for i, s := range samples {
		pair, ok := sequence(s)
		if !ok || len(pair) != 2 {
			return nil, nil, fmt.Errorf("%w: %s sample %d is not a (time, vector) pair", ErrDecode, name, i)
		}
		t, ok := number(pair[0])
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s sample %d time is %T", ErrDecode, name, i, pair[0])
		}
		vals, err := vector(pair[1])
		if err != nil {
			return nil, nil, fmt.Errorf("%s sample %d: %w", name, i, err)
		}
		if len(vals) != BodyAxes {
			return nil, nil, fmt.Errorf("%w: %s sample %d has %d values, want %d", ErrShape, name, i, len(vals), BodyAxes)
		}
		times[i] = t
		m.SetRow(i, vals)
	}
	return times, m, nil
}
