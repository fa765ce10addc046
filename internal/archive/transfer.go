package archive

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sbinet/npyio/npz"
	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/jitter.report/internal/fsutil"
)

const (
	// TransferMatrixKey is the .npz entry holding the tip/tilt sensitivity.
	TransferMatrixKey = "D_tt"

	// JitterAxes is the number of tip/tilt components.
	JitterAxes = 2

	// BodyAxes is the number of rigid-body degrees of freedom per body.
	BodyAxes = 6

	// MotionWidth is the width of the stacked M1 + M2 motion vector.
	MotionWidth = 2 * BodyAxes
)

// TransferMatrix maps a stacked M1/M2 rigid-body-motion vector to tip/tilt.
// It is loaded once and read-only afterwards.
type TransferMatrix struct {
	Dtt *mat.Dense
}

// LoadTransferMatrix reads the D_tt entry of the .npz archive at path.
func LoadTransferMatrix(fsys fsutil.FileSystem, path string) (*TransferMatrix, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transfer matrix: %w", err)
	}
	tm, err := DecodeTransferMatrix(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tm, nil
}

// DecodeTransferMatrix decodes an in-memory .npz archive.
func DecodeTransferMatrix(data []byte) (*TransferMatrix, error) {
	r, err := npz.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: npz: %v", ErrDecode, err)
	}

	if !hasKey(r.Keys(), TransferMatrixKey) {
		return nil, fmt.Errorf("%w: %q (entries: %v)", ErrMissingField, TransferMatrixKey, r.Keys())
	}

	var dtt mat.Dense
	if err := r.Read(TransferMatrixKey, &dtt); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, TransferMatrixKey, err)
	}

	rows, cols := dtt.Dims()
	if rows != JitterAxes || cols != MotionWidth {
		return nil, fmt.Errorf("%w: %s is %d×%d, want %d×%d", ErrShape, TransferMatrixKey, rows, cols, JitterAxes, MotionWidth)
	}
	return &TransferMatrix{Dtt: &dtt}, nil
}

func hasKey(keys []string, want string) bool {
	for _, k := range keys {
		if strings.TrimSuffix(k, ".npy") == want {
			return true
		}
	}
	return false
}
