package schema

import (
	"fmt"

	"github.com/lodeworks/lodestone/pkg/wire"
)

// DefaultMaxDepth bounds record/array nesting during decode. The wire format
// itself has no depth limit, so a corrupt buffer full of nonzero gate bytes
// could otherwise recurse until the stack is exhausted.
const DefaultMaxDepth = 64

// DecoderConfig holds configuration for a Decoder.
type DecoderConfig struct {
	MaxDepth int // Maximum record/array nesting depth (0 = DefaultMaxDepth)
}

// Decoder decodes documents against schema descriptors. A Decoder holds no
// per-document state and is safe for concurrent use; each decode call owns a
// private cursor over its own buffer.
type Decoder struct {
	maxDepth int
}

// NewDecoder creates a decoder.
func NewDecoder(config DecoderConfig) *Decoder {
	maxDepth := config.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Decoder{maxDepth: maxDepth}
}

// DecodeDocument decodes one whole config file.
//
// Every document begins with a single presence gate at offset 0. A zero gate
// is the canonical empty document: exactly one byte is consumed and nothing
// else is read. Otherwise the root record is decoded exactly once.
//
// Trailing bytes after the root record are tolerated; some client files pad
// their tail. Callers that need the exact end position should use
// DecodeRecord with their own cursor.
func (d *Decoder) DecodeDocument(buf []byte, s *Schema) (Record, error) {
	c := wire.NewCursor(buf)
	doc, err := wire.Optional(c, EmptyDocument(), func(c *wire.Cursor) (Record, error) {
		return d.decodeRecord(c, s.Root, 0)
	})
	if err != nil {
		return nil, fmt.Errorf("document %q: %w", s.Name, err)
	}
	return doc, nil
}

// DecodeRecord decodes one record's field sequence from the caller's
// cursor, with no document gate. This is the composition surface for
// callers embedding records in their own framing.
func (d *Decoder) DecodeRecord(c *wire.Cursor, fields []Field) (Record, error) {
	return d.decodeRecord(c, fields, 0)
}

func (d *Decoder) decodeRecord(c *wire.Cursor, fields []Field, depth int) (Record, error) {
	if depth >= d.maxDepth {
		return nil, fmt.Errorf("at offset %d: %w", c.Pos(), wire.ErrDepthExceeded)
	}
	rec := make(Record, len(fields))
	for i := range fields {
		f := &fields[i]
		v, err := d.decodeField(c, f, depth)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		rec[f.Name] = v
	}
	return rec, nil
}

func (d *Decoder) decodeField(c *wire.Cursor, f *Field, depth int) (any, error) {
	switch f.Kind {
	case KindRecord:
		return wire.Optional(c, Record(nil), func(c *wire.Cursor) (Record, error) {
			return d.decodeRecord(c, f.Fields, depth+1)
		})
	case KindArray:
		items, err := wire.OptionalArray(c, func(c *wire.Cursor) (any, error) {
			return d.decodeElem(c, f.Elem, depth+1)
		})
		if err != nil {
			return nil, err
		}
		return []any(items), nil
	default:
		if f.Optional {
			return wire.Optional(c, DefaultValue(f), func(c *wire.Cursor) (any, error) {
				return decodeScalar(c, f.Kind)
			})
		}
		return decodeScalar(c, f.Kind)
	}
}

// decodeElem decodes one array element. Elements sit back-to-back with no
// per-element gate: a record element is decoded bare, a nested array carries
// its own gate and count as usual.
func (d *Decoder) decodeElem(c *wire.Cursor, e *Field, depth int) (any, error) {
	if depth >= d.maxDepth {
		return nil, fmt.Errorf("at offset %d: %w", c.Pos(), wire.ErrDepthExceeded)
	}
	switch e.Kind {
	case KindRecord:
		return d.decodeRecord(c, e.Fields, depth)
	case KindArray:
		items, err := wire.OptionalArray(c, func(c *wire.Cursor) (any, error) {
			return d.decodeElem(c, e.Elem, depth+1)
		})
		if err != nil {
			return nil, err
		}
		return []any(items), nil
	default:
		if e.Optional {
			return wire.Optional(c, DefaultValue(e), func(c *wire.Cursor) (any, error) {
				return decodeScalar(c, e.Kind)
			})
		}
		return decodeScalar(c, e.Kind)
	}
}

func decodeScalar(c *wire.Cursor, k Kind) (any, error) {
	switch k {
	case KindU8:
		return c.ReadU8()
	case KindI8:
		return c.ReadI8()
	case KindBool:
		return c.ReadBool()
	case KindU16:
		return c.ReadU16()
	case KindI16:
		return c.ReadI16()
	case KindU32:
		return c.ReadU32()
	case KindI32:
		return c.ReadI32()
	case KindU64:
		return c.ReadU64()
	case KindI64:
		return c.ReadI64()
	case KindF32:
		return c.ReadF32()
	case KindF64:
		return c.ReadF64()
	case KindString:
		return c.ReadString()
	}
	return nil, fmt.Errorf("unknown scalar kind %q", k)
}
