// Package archivetest builds archive fixtures: pickles laid out like the
// simulation outputs and .npz transfer matrices.
package archivetest

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Pickle opcodes used by the fixtures (protocol 3).
const (
	opProto         = 0x80
	opStop          = '.'
	opMark          = '('
	opEmptyDict     = '}'
	opEmptyList     = ']'
	opSetItems      = 'u'
	opAppends       = 'e'
	opTuple         = 't'
	opTuple1        = 0x85
	opTuple2        = 0x86
	opTuple3        = 0x87
	opBinUnicode    = 'X'
	opBinFloat      = 'G'
	opBinInt        = 'J'
	opBinBytes      = 'B'
	opShortBinBytes = 'C'
	opNone          = 'N'
	opNewTrue       = 0x88
	opNewFalse      = 0x89
	opGlobal        = 'c'
	opReduce        = 'R'
	opBuild         = 'b'
	opByteArray8    = 0x96
)

// Pickler writes a pickle opcode stream. Values are pushed in the order
// the unpickler pops them, so composite helpers take closures.
type Pickler struct {
	buf bytes.Buffer
}

// NewPickler starts a protocol 3 stream.
func NewPickler() *Pickler {
	return NewPicklerProtocol(3)
}

// NewPicklerProtocol starts a stream declaring the given protocol. Only
// the header changes; the caller picks opcodes valid for it.
func NewPicklerProtocol(proto byte) *Pickler {
	p := &Pickler{}
	p.buf.WriteByte(opProto)
	p.buf.WriteByte(proto)
	return p
}

// Bytes terminates the stream and returns it.
func (p *Pickler) Bytes() []byte {
	p.buf.WriteByte(opStop)
	return p.buf.Bytes()
}

func (p *Pickler) Unicode(s string) {
	p.buf.WriteByte(opBinUnicode)
	_ = binary.Write(&p.buf, binary.LittleEndian, uint32(len(s)))
	p.buf.WriteString(s)
}

func (p *Pickler) Float(f float64) {
	p.buf.WriteByte(opBinFloat)
	_ = binary.Write(&p.buf, binary.BigEndian, math.Float64bits(f))
}

func (p *Pickler) Int(i int32) {
	p.buf.WriteByte(opBinInt)
	_ = binary.Write(&p.buf, binary.LittleEndian, i)
}

func (p *Pickler) Bool(b bool) {
	if b {
		p.buf.WriteByte(opNewTrue)
		return
	}
	p.buf.WriteByte(opNewFalse)
}

func (p *Pickler) None() { p.buf.WriteByte(opNone) }

func (p *Pickler) BinBytes(b []byte) {
	if len(b) < 256 {
		p.buf.WriteByte(opShortBinBytes)
		p.buf.WriteByte(byte(len(b)))
	} else {
		p.buf.WriteByte(opBinBytes)
		_ = binary.Write(&p.buf, binary.LittleEndian, uint32(len(b)))
	}
	p.buf.Write(b)
}

// ByteArray8 pushes a bytearray (protocol 5), the in-band form numpy uses
// for writable array buffers.
func (p *Pickler) ByteArray8(b []byte) {
	p.buf.WriteByte(opByteArray8)
	_ = binary.Write(&p.buf, binary.LittleEndian, uint64(len(b)))
	p.buf.Write(b)
}

func (p *Pickler) Global(module, name string) {
	p.buf.WriteByte(opGlobal)
	p.buf.WriteString(module + "\n" + name + "\n")
}

// Tuple pushes a tuple whose items are written by items.
func (p *Pickler) Tuple(items func()) {
	p.buf.WriteByte(opMark)
	items()
	p.buf.WriteByte(opTuple)
}

// Pair pushes a 2-tuple.
func (p *Pickler) Pair(first, second func()) {
	first()
	second()
	p.buf.WriteByte(opTuple2)
}

// Call pushes module.name(*args) via GLOBAL and REDUCE.
func (p *Pickler) Call(module, name string, args func()) {
	p.Global(module, name)
	p.Tuple(args)
	p.buf.WriteByte(opReduce)
}

// List pushes a list whose items are written by items.
func (p *Pickler) List(items func()) {
	p.buf.WriteByte(opEmptyList)
	p.buf.WriteByte(opMark)
	items()
	p.buf.WriteByte(opAppends)
}

// Floats pushes a list of floats.
func (p *Pickler) Floats(vals []float64) {
	p.List(func() {
		for _, v := range vals {
			p.Float(v)
		}
	})
}

// Dict pushes a dict; entries writes alternating keys and values.
func (p *Pickler) Dict(entries func()) {
	p.buf.WriteByte(opEmptyDict)
	p.buf.WriteByte(opMark)
	entries()
	p.buf.WriteByte(opSetItems)
}

// Entry writes one string-keyed dict entry.
func (p *Pickler) Entry(key string, value func()) {
	p.Unicode(key)
	value()
}

// NDArray pushes a float64 numpy array the way numpy's __reduce__ lays it
// out: _reconstruct(ndarray, (0,), b'b') followed by BUILD with
// (1, shape, dtype('<f8'), is_fortran, rawdata). vals are in storage order.
func (p *Pickler) NDArray(shape []int, fortran bool, bigEndian bool, vals []float64) {
	p.Global("numpy.core.multiarray", "_reconstruct")
	p.Global("numpy", "ndarray")
	p.Int(0)
	p.buf.WriteByte(opTuple1)
	p.BinBytes([]byte("b"))
	p.buf.WriteByte(opTuple3)
	p.buf.WriteByte(opReduce)

	order := binary.ByteOrder(binary.LittleEndian)
	orderChar := "<"
	if bigEndian {
		order = binary.BigEndian
		orderChar = ">"
	}
	raw := make([]byte, 8*len(vals))
	for i, v := range vals {
		order.PutUint64(raw[8*i:], math.Float64bits(v))
	}

	p.Tuple(func() {
		p.Int(1)
		p.Tuple(func() {
			for _, s := range shape {
				p.Int(int32(s))
			}
		})
		p.DType("f8", orderChar)
		p.Bool(fortran)
		p.BinBytes(raw)
	})
	p.buf.WriteByte(opBuild)
}

// DType pushes numpy.dtype(code) with the given byte order.
func (p *Pickler) DType(code, order string) {
	p.Global("numpy", "dtype")
	p.Unicode(code)
	p.Bool(false)
	p.Bool(true)
	p.buf.WriteByte(opTuple3)
	p.buf.WriteByte(opReduce)
	p.Tuple(func() {
		p.Int(3)
		p.Unicode(order)
		p.None()
		p.None()
		p.None()
		p.Int(-1)
		p.Int(-1)
		p.Int(0)
	})
	p.buf.WriteByte(opBuild)
}
