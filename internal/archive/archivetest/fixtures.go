package archivetest

import (
	"bytes"
	"fmt"

	"github.com/sbinet/npyio/npz"
	"gonum.org/v1/gonum/mat"
)

// ReferencePickle encodes a reference jitter record {"Data": {"Pupil":
// ndarray}} holding pupil as a C-ordered little-endian float64 array.
func ReferencePickle(pupil mat.Matrix) []byte {
	r, c := pupil.Dims()
	vals := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			vals = append(vals, pupil.At(i, j))
		}
	}
	p := NewPickler()
	p.Dict(func() {
		p.Entry("Data", func() {
			p.Dict(func() {
				p.Entry("Pupil", func() { p.NDArray([]int{r, c}, false, false, vals) })
				p.Entry("Sampling", func() { p.Float(2000) })
			})
		})
	})
	return p.Bytes()
}

// ReferenceRowsPickle encodes a reference jitter record whose Data.Pupil
// is a plain list of rows.
func ReferenceRowsPickle(rows [][]float64) []byte {
	p := NewPickler()
	p.Dict(func() {
		p.Entry("Data", func() {
			p.Dict(func() {
				p.Entry("Pupil", func() {
					p.List(func() {
						for _, row := range rows {
							p.Floats(row)
						}
					})
				})
			})
		})
	})
	return p.Bytes()
}

// MotionPickle encodes a rigid-body-motion record
// {"OSSM1Lcl": {"data": [(t, [6]), ...]}, "MCM2Lcl6D": {...}} with sample
// times i/rate. m1 and m2 are T×6.
func MotionPickle(rate float64, m1, m2 mat.Matrix) []byte {
	p := NewPickler()
	p.Dict(func() {
		p.Entry("OSSM1Lcl", func() { timeSeries(p, rate, m1) })
		p.Entry("MCM2Lcl6D", func() { timeSeries(p, rate, m2) })
	})
	return p.Bytes()
}

// MotionPairsPickle encodes the same record as a list of
// (name, output) pairs.
func MotionPairsPickle(rate float64, m1, m2 mat.Matrix) []byte {
	p := NewPickler()
	p.List(func() {
		p.Pair(func() { p.Unicode("OSSM1Lcl") }, func() { timeSeries(p, rate, m1) })
		p.Pair(func() { p.Unicode("MCM2Lcl6D") }, func() { timeSeries(p, rate, m2) })
	})
	return p.Bytes()
}

func timeSeries(p *Pickler, rate float64, m mat.Matrix) {
	r, c := m.Dims()
	p.Dict(func() {
		p.Entry("data", func() {
			p.List(func() {
				for i := 0; i < r; i++ {
					row := make([]float64, c)
					for j := range row {
						row[j] = m.At(i, j)
					}
					p.Pair(func() { p.Float(float64(i) / rate) }, func() { p.Floats(row) })
				}
			})
		})
	})
}

// TransferNPZ encodes named matrices into an .npz archive.
func TransferNPZ(entries map[string]*mat.Dense) ([]byte, error) {
	var buf bytes.Buffer
	w := npz.NewWriter(&buf)
	for name, m := range entries {
		if err := w.Write(name, m); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close npz: %w", err)
	}
	return buf.Bytes(), nil
}
