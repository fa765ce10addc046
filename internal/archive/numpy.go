package archive

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/nlpodyssey/gopickle/types"
	"gonum.org/v1/gonum/mat"
)

// findClass resolves the globals referenced by NumPy array pickles. Any
// other class becomes an opaque placeholder so unrelated entries of a
// record do not prevent the required fields from being read.
func findClass(module, name string) (interface{}, error) {
	switch module {
	case "numpy.core.multiarray", "numpy._core.multiarray":
		if name == "_reconstruct" {
			return reconstructor{}, nil
		}
	case "numpy.core.numeric", "numpy._core.numeric":
		if name == "_frombuffer" {
			return frombuffer{}, nil
		}
	case "numpy":
		switch name {
		case "ndarray":
			return ndarrayClass{}, nil
		case "dtype":
			return dtypeClass{}, nil
		}
	case "_codecs":
		if name == "encode" {
			return codecsEncode{}, nil
		}
	}
	return opaqueClass{module: module, name: name}, nil
}

// ndarrayClass stands for numpy.ndarray as an argument to _reconstruct.
type ndarrayClass struct{}

// reconstructor is numpy.core.multiarray._reconstruct. The array contents
// arrive later through BUILD.
type reconstructor struct{}

func (reconstructor) Call(args ...interface{}) (interface{}, error) {
	return &ndarray{}, nil
}

// frombuffer is numpy.core.numeric._frombuffer(buf, dtype, shape, order),
// emitted for in-band buffers under pickle protocol 5.
type frombuffer struct{}

func (frombuffer) Call(args ...interface{}) (interface{}, error) {
	if len(args) != 4 {
		return nil, fmt.Errorf("_frombuffer: expected 4 arguments, got %d", len(args))
	}
	raw, err := rawBytes(args[0])
	if err != nil {
		return nil, fmt.Errorf("_frombuffer: %w", err)
	}
	dt, ok := args[1].(*dtype)
	if !ok {
		return nil, fmt.Errorf("_frombuffer: dtype is %T", args[1])
	}
	shape, err := shapeOf(args[2])
	if err != nil {
		return nil, fmt.Errorf("_frombuffer: %w", err)
	}
	order, _ := args[3].(string)
	return &ndarray{shape: shape, dtype: dt, fortran: order == "F", raw: raw}, nil
}

// dtypeClass is numpy.dtype; calling it with ("f8", False, True) yields a
// descriptor whose byte order is set by the following BUILD.
type dtypeClass struct{}

func (dtypeClass) Call(args ...interface{}) (interface{}, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("numpy.dtype: missing type code")
	}
	code, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("numpy.dtype: type code is %T", args[0])
	}
	d := &dtype{order: '='}
	if code != "" && strings.ContainsRune("<>|=", rune(code[0])) {
		d.order = code[0]
		code = code[1:]
	}
	d.code = code
	return d, nil
}

type dtype struct {
	code  string
	order byte
}

// PySetState receives (version, byteorder, subarray, names, fields,
// elsize, alignment, flags).
func (d *dtype) PySetState(state interface{}) error {
	items, ok := sequence(state)
	if !ok || len(items) < 2 {
		return fmt.Errorf("numpy.dtype state: unexpected %T", state)
	}
	if order, ok := items[1].(string); ok && len(order) == 1 {
		d.order = order[0]
	}
	return nil
}

func (d *dtype) byteOrder() binary.ByteOrder {
	if d.order == '>' {
		return binary.BigEndian
	}
	if d.order == '=' {
		return binary.NativeEndian
	}
	return binary.LittleEndian
}

func (d *dtype) itemSize() (int, error) {
	switch d.code {
	case "f8":
		return 8, nil
	case "f4":
		return 4, nil
	default:
		return 0, fmt.Errorf("unsupported dtype %q", d.code)
	}
}

func (d *dtype) decode(b []byte) float64 {
	bo := d.byteOrder()
	if d.code == "f8" {
		return math.Float64frombits(bo.Uint64(b))
	}
	return float64(math.Float32frombits(bo.Uint32(b)))
}

type ndarray struct {
	shape   []int
	dtype   *dtype
	fortran bool
	raw     []byte
}

// PySetState receives (version, shape, dtype, is_fortran, rawdata); older
// pickles omit the version.
func (a *ndarray) PySetState(state interface{}) error {
	items, ok := sequence(state)
	if !ok {
		return fmt.Errorf("numpy.ndarray state: unexpected %T", state)
	}
	if len(items) == 5 {
		items = items[1:]
	}
	if len(items) != 4 {
		return fmt.Errorf("numpy.ndarray state: expected 4 or 5 items, got %d", len(items))
	}

	shape, err := shapeOf(items[0])
	if err != nil {
		return fmt.Errorf("numpy.ndarray state: %w", err)
	}
	dt, ok := items[1].(*dtype)
	if !ok {
		return fmt.Errorf("numpy.ndarray state: dtype is %T", items[1])
	}
	fortran, _ := items[2].(bool)
	raw, err := rawBytes(items[3])
	if err != nil {
		return fmt.Errorf("numpy.ndarray state: %w", err)
	}

	a.shape, a.dtype, a.fortran, a.raw = shape, dt, fortran, raw
	return nil
}

func (a *ndarray) size() int {
	n := 1
	for _, s := range a.shape {
		n *= s
	}
	return n
}

// values decodes the buffer in storage order.
func (a *ndarray) values() ([]float64, error) {
	if a.dtype == nil {
		return nil, fmt.Errorf("%w: ndarray without state", ErrDecode)
	}
	width, err := a.dtype.itemSize()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	n := a.size()
	if len(a.raw) != n*width {
		return nil, fmt.Errorf("%w: ndarray buffer is %d bytes, shape %v needs %d", ErrDecode, len(a.raw), a.shape, n*width)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = a.dtype.decode(a.raw[i*width : (i+1)*width])
	}
	return out, nil
}

func (a *ndarray) flat() ([]float64, error) {
	if len(a.shape) != 1 {
		return nil, fmt.Errorf("%w: expected a 1-D array, got shape %v", ErrShape, a.shape)
	}
	return a.values()
}

// dense returns a 2-D array as a row-major matrix.
func (a *ndarray) dense() (*mat.Dense, error) {
	if len(a.shape) != 2 {
		return nil, fmt.Errorf("%w: expected a 2-D array, got shape %v", ErrShape, a.shape)
	}
	r, c := a.shape[0], a.shape[1]
	if r == 0 || c == 0 {
		return nil, fmt.Errorf("%w: empty array of shape %v", ErrShape, a.shape)
	}
	vals, err := a.values()
	if err != nil {
		return nil, err
	}
	if !a.fortran {
		return mat.NewDense(r, c, vals), nil
	}
	m := mat.NewDense(r, c, nil)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			m.Set(i, j, vals[j*r+i])
		}
	}
	return m, nil
}

func shapeOf(v interface{}) ([]int, error) {
	items, ok := sequence(v)
	if !ok {
		return nil, fmt.Errorf("shape is %T", v)
	}
	shape := make([]int, len(items))
	for i, item := range items {
		n, ok := integer(item)
		if !ok || n < 0 {
			return nil, fmt.Errorf("invalid dimension %v", item)
		}
		shape[i] = n
	}
	return shape, nil
}

// rawBytes accepts protocol 3+ bytes, protocol 5 in-band bytearrays and
// protocol 2 str payloads.
func rawBytes(v interface{}) ([]byte, error) {
	switch vv := v.(type) {
	case []byte:
		return vv, nil
	case *types.ByteArray:
		return []byte(*vv), nil
	case string:
		return latin1(vv)
	default:
		return nil, fmt.Errorf("array data is %T", v)
	}
}

func latin1(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xff {
			return nil, fmt.Errorf("rune %U outside latin-1", r)
		}
		out = append(out, byte(r))
	}
	return out, nil
}

// codecsEncode is _codecs.encode(str, "latin1"), which Python 3 emits for
// bytes objects under pickle protocol 2.
type codecsEncode struct{}

func (codecsEncode) Call(args ...interface{}) (interface{}, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("_codecs.encode: missing argument")
	}
	s, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("_codecs.encode: argument is %T", args[0])
	}
	if len(args) > 1 {
		if enc, _ := args[1].(string); enc != "" && enc != "latin1" && enc != "latin-1" {
			return nil, fmt.Errorf("_codecs.encode: unsupported encoding %q", enc)
		}
	}
	return latin1(s)
}

// opaqueClass stands in for any class the loaders do not interpret.
type opaqueClass struct {
	module, name string
}

func (c opaqueClass) Call(args ...interface{}) (interface{}, error) {
	return &opaqueObject{class: c}, nil
}

func (c opaqueClass) PyNew(args ...interface{}) (interface{}, error) {
	return &opaqueObject{class: c}, nil
}

type opaqueObject struct {
	class opaqueClass
}

func (o *opaqueObject) PySetState(state interface{}) error { return nil }
