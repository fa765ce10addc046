package archive

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/nlpodyssey/gopickle/pickle"
	"github.com/nlpodyssey/gopickle/types"
)

// decodePickle unpickles data, resolving NumPy array reconstructors so
// ndarray values come back as *ndarray. The unpickler panics on opcodes
// it does not know, so panics are reported as ErrDecode.
func decodePickle(data []byte) (v interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, fmt.Errorf("%w: %v", ErrDecode, r)
		}
	}()

	u := pickle.NewUnpickler(bytes.NewReader(data))
	u.FindClass = findClass
	v, err = u.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return v, nil
}

// mapping is satisfied by both *types.Dict and *types.OrderedDict.
type mapping interface {
	Get(key interface{}) (interface{}, bool)
}

// field looks up key in a pickled dict.
func field(v interface{}, key string) (interface{}, error) {
	m, ok := v.(mapping)
	if !ok {
		return nil, fmt.Errorf("%w: %q: parent is %T, not a dict", ErrMissingField, key, v)
	}
	child, ok := m.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingField, key)
	}
	return child, nil
}

// fieldPath walks nested dicts, e.g. fieldPath(v, "Data", "Pupil").
func fieldPath(v interface{}, keys ...string) (interface{}, error) {
	cur := v
	for i, k := range keys {
		next, err := field(cur, k)
		if err != nil {
			return nil, fmt.Errorf("at %v: %w", keys[:i+1], err)
		}
		cur = next
	}
	return cur, nil
}

// sequence returns the items of a pickled list or tuple.
func sequence(v interface{}) ([]interface{}, bool) {
	switch vv := v.(type) {
	case *types.List:
		return []interface{}(*vv), true
	case *types.Tuple:
		return []interface{}(*vv), true
	case []interface{}:
		return vv, true
	default:
		return nil, false
	}
}

// number coerces a pickled scalar to float64.
func number(v interface{}) (float64, bool) {
	switch vv := v.(type) {
	case float64:
		return vv, true
	case float32:
		return float64(vv), true
	case int:
		return float64(vv), true
	case int64:
		return float64(vv), true
	case int32:
		return float64(vv), true
	case *big.Int:
		f, _ := new(big.Float).SetInt(vv).Float64()
		return f, true
	case bool:
		if vv {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// integer coerces a pickled scalar to int.
func integer(v interface{}) (int, bool) {
	switch vv := v.(type) {
	case int:
		return vv, true
	case int64:
		return int(vv), true
	case int32:
		return int(vv), true
	case *big.Int:
		if !vv.IsInt64() {
			return 0, false
		}
		return int(vv.Int64()), true
	default:
		return 0, false
	}
}

// vector coerces a pickled list of numbers, or a 1-D ndarray, to []float64.
func vector(v interface{}) ([]float64, error) {
	if arr, ok := v.(*ndarray); ok {
		return arr.flat()
	}
	items, ok := sequence(v)
	if !ok {
		return nil, fmt.Errorf("%w: expected a sequence of numbers, got %T", ErrDecode, v)
	}
	out := make([]float64, len(items))
	for i, item := range items {
		f, ok := number(item)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is %T, not a number", ErrDecode, i, item)
		}
		out[i] = f
	}
	return out, nil
}
