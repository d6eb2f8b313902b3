package wire

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// Cursor provides bounds-checked sequential access to an immutable byte
// buffer. Every successful read advances the position by exactly the number
// of bytes consumed. A Cursor is owned by a single decode call and must not
// be shared between goroutines.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor creates a cursor positioned at the start of buf. The buffer is
// not copied; the caller must not mutate it while the cursor is live.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current read position in bytes from the start of the buffer.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// take consumes the next n bytes, failing if fewer remain. The returned
// slice aliases the underlying buffer.
func (c *Cursor) take(n int, what string) ([]byte, error) {
	if n > len(c.buf)-c.pos {
		return nil, readError(what, c.pos, ErrShortBuffer)
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadU8 reads one unsigned byte.
func (c *Cursor) ReadU8() (uint8, error) {
	b, err := c.take(1, "u8")
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadI8 reads one byte and reinterprets the high bit as a two's-complement
// sign.
func (c *Cursor) ReadI8() (int8, error) {
	b, err := c.take(1, "i8")
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

// ReadBool reads one byte; any nonzero value is true.
func (c *Cursor) ReadBool() (bool, error) {
	b, err := c.take(1, "bool")
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

// ReadU16 reads a little-endian 16-bit unsigned integer.
func (c *Cursor) ReadU16() (uint16, error) {
	b, err := c.take(2, "u16")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadI16 reads a little-endian 16-bit signed integer.
func (c *Cursor) ReadI16() (int16, error) {
	v, err := c.ReadU16()
	return int16(v), err
}

// ReadU32 reads a little-endian 32-bit unsigned integer.
func (c *Cursor) ReadU32() (uint32, error) {
	b, err := c.take(4, "u32")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadI32 reads a little-endian 32-bit signed integer. This is the width the
// format uses for every array count.
func (c *Cursor) ReadI32() (int32, error) {
	v, err := c.ReadU32()
	return int32(v), err
}

// ReadU64 reads a little-endian 64-bit unsigned integer.
func (c *Cursor) ReadU64() (uint64, error) {
	b, err := c.take(8, "u64")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadI64 reads a little-endian 64-bit signed integer.
func (c *Cursor) ReadI64() (int64, error) {
	v, err := c.ReadU64()
	return int64(v), err
}

// ReadF32 reads a little-endian IEEE-754 single-precision float.
func (c *Cursor) ReadF32() (float32, error) {
	v, err := c.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadF64 reads a little-endian IEEE-754 double-precision float.
func (c *Cursor) ReadF64() (float64, error) {
	v, err := c.ReadU64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadUTF8 reads exactly length raw bytes and decodes them as UTF-8 text.
// The length is supplied by the caller, normally from a preceding ReadU16.
func (c *Cursor) ReadUTF8(length int) (string, error) {
	start := c.pos
	b, err := c.take(length, "utf8 bytes")
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", readError("utf8 bytes", start, ErrInvalidUTF8)
	}
	return string(b), nil
}
