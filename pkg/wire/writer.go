package wire

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Writer is the mirror of Cursor: it appends values in the client's binary
// convention. The decoder never needs it at runtime; it exists to build
// conformance fixtures and to express the round-trip laws the cursor is
// tested against.
type Writer struct {
	buf []byte
}

// NewWriter creates an empty writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// PutU8 appends one unsigned byte.
func (w *Writer) PutU8(v uint8) {
	w.buf = append(w.buf, v)
}

// PutI8 appends one signed byte.
func (w *Writer) PutI8(v int8) {
	w.buf = append(w.buf, byte(v))
}

// PutBool appends one byte, 0x01 for true and 0x00 for false.
func (w *Writer) PutBool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
}

// PutU16 appends a little-endian 16-bit unsigned integer.
func (w *Writer) PutU16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

// PutI16 appends a little-endian 16-bit signed integer.
func (w *Writer) PutI16(v int16) {
	w.PutU16(uint16(v))
}

// PutU32 appends a little-endian 32-bit unsigned integer.
func (w *Writer) PutU32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// PutI32 appends a little-endian 32-bit signed integer.
func (w *Writer) PutI32(v int32) {
	w.PutU32(uint32(v))
}

// PutU64 appends a little-endian 64-bit unsigned integer.
func (w *Writer) PutU64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

// PutI64 appends a little-endian 64-bit signed integer.
func (w *Writer) PutI64(v int64) {
	w.PutU64(uint64(v))
}

// PutF32 appends a little-endian IEEE-754 single-precision float.
func (w *Writer) PutF32(v float32) {
	w.PutU32(math.Float32bits(v))
}

// PutF64 appends a little-endian IEEE-754 double-precision float.
func (w *Writer) PutF64(v float64) {
	w.PutU64(math.Float64bits(v))
}

// PutString appends the canonical length-prefixed string: a 16-bit byte
// length followed by the raw UTF-8 bytes. Strings longer than 65535 bytes
// cannot be represented in the format.
func (w *Writer) PutString(s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("string of %d bytes exceeds u16 length prefix", len(s))
	}
	w.PutU16(uint16(len(s)))
	w.buf = append(w.buf, s...)
	return nil
}

// PutRaw appends raw bytes with no length prefix.
func (w *Writer) PutRaw(b []byte) {
	w.buf = append(w.buf, b...)
}
