package jitter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const arcsec = 180 * 3600e3 / math.Pi

// motion returns a deterministic T×12 series of small oscillations.
func motion(samples int) *mat.Dense {
	m := mat.NewDense(samples, 12, nil)
	for i := 0; i < samples; i++ {
		for j := 0; j < 12; j++ {
			m.Set(i, j, 1e-7*math.Sin(float64(i+1)*0.37*float64(j+1))+1e-8*float64(j))
		}
	}
	return m
}

func transfer() *mat.Dense {
	d := mat.NewDense(2, 12, nil)
	for j := 0; j < 12; j++ {
		d.Set(0, j, 0.1*float64(j+1))
		d.Set(1, j, -0.05*float64(12-j))
	}
	return d
}

func TestProject(t *testing.T) {
	dtt := mat.NewDense(2, 3, []float64{
		1, 0, 2,
		0, 1, -1,
	})
	rbm := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})

	got, err := Project(dtt, rbm)
	require.NoError(t, err)
	want := mat.NewDense(2, 2, []float64{
		7, 16,
		-1, -1,
	})
	assert.True(t, mat.Equal(want, got), "got %v", mat.Formatted(got))
}

func TestProjectShapeMismatch(t *testing.T) {
	_, err := Project(mat.NewDense(2, 12, nil), mat.NewDense(5, 11, nil))
	assert.ErrorIs(t, err, ErrShape)

	_, err = Project(mat.NewDense(3, 12, nil), mat.NewDense(5, 12, nil))
	assert.ErrorIs(t, err, ErrShape)
}

func TestWindow(t *testing.T) {
	m := mat.NewDense(2, 4, []float64{
		1, 2, 3, 4,
		5, 6, 7, 8,
	})

	w, err := Window(m, 1)
	require.NoError(t, err)
	assert.True(t, mat.Equal(mat.NewDense(2, 3, []float64{2, 3, 4, 6, 7, 8}), w))

	full, err := Window(m, 0)
	require.NoError(t, err)
	assert.True(t, mat.Equal(m, full))

	_, err = Window(m, 4)
	assert.ErrorIs(t, err, ErrWindow)
	_, err = Window(m, -1)
	assert.ErrorIs(t, err, ErrWindow)
}

func TestAxisStdDev(t *testing.T) {
	m := mat.NewDense(2, 4, []float64{
		1, 2, 3, 4,
		2, 2, 2, 2,
	})
	got, err := AxisStdDev(m)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(1.25), got[0], 1e-12, "population form, not sample")
	assert.Equal(t, 0.0, got[1])

	_, err = AxisStdDev(mat.NewDense(3, 4, nil))
	assert.ErrorIs(t, err, ErrShape)
}

func TestDiscrepancy(t *testing.T) {
	testCases := []struct {
		name string
		ref  Pair
		proj Pair
	}{
		{"identical", Pair{2, 1}, Pair{2, 1}},
		{"three_four_five", Pair{3, 0}, Pair{0, 4}},
		{"projection_larger", Pair{42.3, 24.1}, Pair{43.8, 25.6}},
		{"zeros", Pair{}, Pair{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Discrepancy(tc.ref, tc.proj)
			dx, dy := tc.ref[0]-tc.proj[0], tc.ref[1]-tc.proj[1]
			assert.InDelta(t, math.Sqrt(dx*dx+dy*dy), got, 1e-12)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
	assert.InDelta(t, 5.0, Discrepancy(Pair{3, 0}, Pair{0, 4}), 1e-12)
}

func TestCompareZeroMotion(t *testing.T) {
	ref := mat.NewDense(2, 100, nil)
	for j := 0; j < 100; j++ {
		ref.Set(0, j, 1e-6*float64(j%7))
		ref.Set(1, j, -1e-6*float64(j%3))
	}

	res, err := Compare(transfer(), ref, mat.NewDense(100, 12, nil), Options{Skip: 10, Scale: arcsec})
	require.NoError(t, err)
	assert.Equal(t, Pair{0, 0}, res.Projected)
	assert.Greater(t, res.Reference[0], 0.0)
	assert.InDelta(t, math.Hypot(res.Reference[0], res.Reference[1]), res.Discrepancy, 1e-9)
}

func TestCompareMatchingReference(t *testing.T) {
	dtt := transfer()
	rbm := motion(400)
	ref, err := Project(dtt, rbm)
	require.NoError(t, err)

	res, err := Compare(dtt, ref, rbm, Options{Skip: 100, Scale: arcsec})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, res.Discrepancy, 1e-9)
	assert.Equal(t, res.Reference, res.Projected)
	assert.Greater(t, res.Projected[0], 0.0)
	assert.Greater(t, res.Projected[1], 0.0)
}

func TestCompareSkipExcludesTransient(t *testing.T) {
	dtt := transfer()
	rbm := motion(300)
	// A large start-up transient on the first 50 samples.
	for i := 0; i < 50; i++ {
		for j := 0; j < 12; j++ {
			rbm.Set(i, j, rbm.At(i, j)*100)
		}
	}
	ref, err := Project(dtt, rbm)
	require.NoError(t, err)

	withTransient, err := Compare(dtt, ref, rbm, Options{Skip: 0, Scale: arcsec})
	require.NoError(t, err)
	steady, err := Compare(dtt, ref, rbm, Options{Skip: 50, Scale: arcsec})
	require.NoError(t, err)

	for i := 0; i < Axes; i++ {
		assert.Greater(t, withTransient.Projected[i], steady.Projected[i], "axis %d", i)
		assert.Greater(t, withTransient.Reference[i], steady.Reference[i], "axis %d", i)
	}
}

func TestCompareScaleIsLinear(t *testing.T) {
	dtt := transfer()
	rbm := motion(200)
	ref := mat.NewDense(2, 200, nil)
	ref.Apply(func(i, j int, _ float64) float64 { return 1e-7 * math.Cos(float64(i+j)) }, ref)

	unit, err := Compare(dtt, ref, rbm, Options{Skip: 20, Scale: 1})
	require.NoError(t, err)
	scaled, err := Compare(dtt, ref, rbm, Options{Skip: 20, Scale: arcsec})
	require.NoError(t, err)

	for i := 0; i < Axes; i++ {
		assert.InDelta(t, unit.Reference[i]*arcsec, scaled.Reference[i], 1e-9)
		assert.InDelta(t, unit.Projected[i]*arcsec, scaled.Projected[i], 1e-9)
	}
}

func TestCompareDeterministic(t *testing.T) {
	dtt := transfer()
	rbm := motion(250)
	ref := Scale(mustProject(t, dtt, rbm), 1.01)

	first, err := Compare(dtt, ref, rbm, Options{Skip: 25, Scale: arcsec})
	require.NoError(t, err)
	second, err := Compare(dtt, ref, rbm, Options{Skip: 25, Scale: arcsec})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Greater(t, first.Discrepancy, 0.0)
}

func TestCompareErrors(t *testing.T) {
	dtt := transfer()

	_, err := Compare(dtt, mat.NewDense(2, 10, nil), motion(10), Options{Skip: 10, Scale: arcsec})
	assert.ErrorIs(t, err, ErrWindow)

	_, err = Compare(dtt, mat.NewDense(2, 10, nil), mat.NewDense(10, 6, nil), Options{Skip: 1, Scale: arcsec})
	assert.ErrorIs(t, err, ErrShape)

	_, err = Compare(dtt, mat.NewDense(3, 10, nil), motion(10), Options{Skip: 1, Scale: arcsec})
	assert.ErrorIs(t, err, ErrShape)
}

func mustProject(t *testing.T, dtt, rbm mat.Matrix) *mat.Dense {
	t.Helper()
	p, err := Project(dtt, rbm)
	require.NoError(t, err)
	return p
}
