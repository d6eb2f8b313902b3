package wire

// DecodeFunc decodes one value of type T from the cursor.
type DecodeFunc[T any] func(*Cursor) (T, error)

// ReadString reads the canonical length-prefixed string: a 16-bit byte
// length followed by that many UTF-8 bytes.
func (c *Cursor) ReadString() (string, error) {
	n, err := c.ReadU16()
	if err != nil {
		return "", err
	}
	return c.ReadUTF8(int(n))
}

// Optional reads a one-byte presence gate. A zero gate resolves to absent,
// consuming exactly one byte regardless of what follows; a nonzero gate
// decodes the payload with inner.
func Optional[T any](c *Cursor, absent T, inner DecodeFunc[T]) (T, error) {
	present, err := c.ReadBool()
	if err != nil || !present {
		return absent, err
	}
	return inner(c)
}

// OptionalArray reads a presence gate, and if the array is present, a signed
// 32-bit element count followed by exactly count elements decoded
// back-to-back. An absent array resolves to an empty slice, never nil.
//
// A negative count is always corruption. A count larger than the remaining
// byte budget is rejected before any element is decoded: every element
// consumes at least one byte, so such a count can never be satisfied and
// would otherwise commit the decoder to a huge allocation first.
func OptionalArray[T any](c *Cursor, elem DecodeFunc[T]) ([]T, error) {
	present, err := c.ReadBool()
	if err != nil {
		return nil, err
	}
	if !present {
		return []T{}, nil
	}
	countPos := c.Pos()
	count, err := c.ReadI32()
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, readError("array count", countPos, ErrNegativeCount)
	}
	if int(count) > c.Remaining() {
		return nil, readError("array count", countPos, ErrCountTooLarge)
	}
	out := make([]T, 0, count)
	for i := int32(0); i < count; i++ {
		v, err := elem(c)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
