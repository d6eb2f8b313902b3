package schema

import (
	"fmt"
	"math"

	"github.com/lodeworks/lodestone/pkg/wire"
)

// EncodeDocument is the inverse of Decoder.DecodeDocument: it serializes a
// decoded document back into the client's binary convention. A nil document
// encodes as the single zero gate byte.
//
// The client never consumes what we write; encoding exists to build
// conformance fixtures and to state round-trip laws in tests. Values are
// accepted in their decoded widths, plus untyped int for convenience when
// fixtures are written by hand.
func EncodeDocument(doc Record, s *Schema) ([]byte, error) {
	w := wire.NewWriter()
	if doc == nil {
		w.PutBool(false)
		return w.Bytes(), nil
	}
	w.PutBool(true)
	if err := encodeRecord(w, doc, s.Root); err != nil {
		return nil, fmt.Errorf("document %q: %w", s.Name, err)
	}
	return w.Bytes(), nil
}

// EncodeRecord serializes one record with no document gate.
func EncodeRecord(doc Record, fields []Field) ([]byte, error) {
	w := wire.NewWriter()
	if err := encodeRecord(w, doc, fields); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func encodeRecord(w *wire.Writer, rec Record, fields []Field) error {
	for i := range fields {
		f := &fields[i]
		if err := encodeField(w, rec[f.Name], f); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
	}
	return nil
}

func encodeField(w *wire.Writer, v any, f *Field) error {
	switch f.Kind {
	case KindRecord:
		rec, ok := v.(Record)
		if v != nil && !ok {
			return fmt.Errorf("expected record, got %T", v)
		}
		if rec == nil {
			w.PutBool(false)
			return nil
		}
		w.PutBool(true)
		return encodeRecord(w, rec, f.Fields)
	case KindArray:
		items, ok := v.([]any)
		if v != nil && !ok {
			return fmt.Errorf("expected array, got %T", v)
		}
		if len(items) == 0 {
			w.PutBool(false)
			return nil
		}
		if len(items) > math.MaxInt32 {
			return fmt.Errorf("array of %d elements exceeds i32 count", len(items))
		}
		w.PutBool(true)
		w.PutI32(int32(len(items)))
		for i, item := range items {
			if err := encodeElem(w, item, f.Elem); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		return nil
	default:
		if f.Optional {
			if v == nil {
				w.PutBool(false)
				return nil
			}
			w.PutBool(true)
		}
		return encodeScalar(w, v, f)
	}
}

func encodeElem(w *wire.Writer, v any, e *Field) error {
	switch e.Kind {
	case KindRecord:
		rec, ok := v.(Record)
		if !ok {
			return fmt.Errorf("expected record, got %T", v)
		}
		return encodeRecord(w, rec, e.Fields)
	case KindArray:
		return encodeField(w, v, e)
	default:
		if e.Optional {
			if v == nil {
				w.PutBool(false)
				return nil
			}
			w.PutBool(true)
		}
		return encodeScalar(w, v, e)
	}
}

func encodeScalar(w *wire.Writer, v any, f *Field) error {
	switch f.Kind {
	case KindU8:
		n, err := coerceUint(v, math.MaxUint8)
		if err != nil {
			return err
		}
		w.PutU8(uint8(n))
	case KindI8:
		n, err := coerceInt(v, math.MinInt8, math.MaxInt8)
		if err != nil {
			return err
		}
		w.PutI8(int8(n))
	case KindBool:
		b, ok := v.(bool)
		if v == nil {
			b = false
		} else if !ok {
			return fmt.Errorf("expected bool, got %T", v)
		}
		w.PutBool(b)
	case KindU16:
		n, err := coerceUint(v, math.MaxUint16)
		if err != nil {
			return err
		}
		w.PutU16(uint16(n))
	case KindI16:
		n, err := coerceInt(v, math.MinInt16, math.MaxInt16)
		if err != nil {
			return err
		}
		w.PutI16(int16(n))
	case KindU32:
		n, err := coerceUint(v, math.MaxUint32)
		if err != nil {
			return err
		}
		w.PutU32(uint32(n))
	case KindI32:
		n, err := coerceInt(v, math.MinInt32, math.MaxInt32)
		if err != nil {
			return err
		}
		w.PutI32(int32(n))
	case KindU64:
		n, err := coerceUint(v, math.MaxUint64)
		if err != nil {
			return err
		}
		w.PutU64(n)
	case KindI64:
		n, err := coerceInt(v, math.MinInt64, math.MaxInt64)
		if err != nil {
			return err
		}
		w.PutI64(n)
	case KindF32:
		x, err := coerceFloat(v)
		if err != nil {
			return err
		}
		w.PutF32(float32(x))
	case KindF64:
		x, err := coerceFloat(v)
		if err != nil {
			return err
		}
		w.PutF64(x)
	case KindString:
		s, ok := v.(string)
		if v == nil {
			s = ""
		} else if !ok {
			return fmt.Errorf("expected string, got %T", v)
		}
		return w.PutString(s)
	default:
		return fmt.Errorf("unknown scalar kind %q", f.Kind)
	}
	return nil
}

func coerceInt(v any, min, max int64) (int64, error) {
	var n int64
	switch x := v.(type) {
	case nil:
		n = 0
	case int:
		n = int64(x)
	case int8:
		n = int64(x)
	case int16:
		n = int64(x)
	case int32:
		n = int64(x)
	case int64:
		n = x
	default:
		return 0, fmt.Errorf("expected signed integer, got %T", v)
	}
	if n < min || n > max {
		return 0, fmt.Errorf("value %d out of range [%d, %d]", n, min, max)
	}
	return n, nil
}

func coerceUint(v any, max uint64) (uint64, error) {
	var n uint64
	switch x := v.(type) {
	case nil:
		n = 0
	case int:
		if x < 0 {
			return 0, fmt.Errorf("negative value %d for unsigned field", x)
		}
		n = uint64(x)
	case uint8:
		n = uint64(x)
	case uint16:
		n = uint64(x)
	case uint32:
		n = uint64(x)
	case uint64:
		n = x
	default:
		return 0, fmt.Errorf("expected unsigned integer, got %T", v)
	}
	if n > max {
		return 0, fmt.Errorf("value %d out of range [0, %d]", n, max)
	}
	return n, nil
}

func coerceFloat(v any) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case float32:
		return float64(x), nil
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("expected float, got %T", v)
	}
}
