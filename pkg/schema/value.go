package schema

// Record is a decoded record: field name to native Go value. Scalars keep
// their wire width (uint8, int16, float32, ...), strings are string, arrays
// are []any, nested records are Record. An absent nested record is a nil
// Record.
type Record map[string]any

// EmptyDocument is the canonical value of a document whose root presence
// gate was zero.
func EmptyDocument() Record {
	return Record{}
}

// DefaultValue returns the canonical empty value for a field slot whose
// presence gate was zero.
func DefaultValue(f *Field) any {
	switch f.Kind {
	case KindU8:
		return uint8(0)
	case KindI8:
		return int8(0)
	case KindBool:
		return false
	case KindU16:
		return uint16(0)
	case KindI16:
		return int16(0)
	case KindU32:
		return uint32(0)
	case KindI32:
		return int32(0)
	case KindU64:
		return uint64(0)
	case KindI64:
		return int64(0)
	case KindF32:
		return float32(0)
	case KindF64:
		return float64(0)
	case KindString:
		return ""
	case KindRecord:
		return Record(nil)
	case KindArray:
		return []any{}
	}
	return nil
}
