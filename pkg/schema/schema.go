package schema

import (
	"fmt"
	"path/filepath"
)

// Kind identifies the wire type of one field slot.
type Kind string

// Field slot kinds. Scalar kinds map 1:1 onto cursor primitives; record and
// array are composite slots decoded through presence gates.
const (
	KindU8     Kind = "u8"
	KindI8     Kind = "i8"
	KindBool   Kind = "bool"
	KindU16    Kind = "u16"
	KindI16    Kind = "i16"
	KindU32    Kind = "u32"
	KindI32    Kind = "i32"
	KindU64    Kind = "u64"
	KindI64    Kind = "i64"
	KindF32    Kind = "f32"
	KindF64    Kind = "f64"
	KindString Kind = "string"
	KindRecord Kind = "record"
	KindArray  Kind = "array"
)

var kinds = map[Kind]struct{}{
	KindU8: {}, KindI8: {}, KindBool: {}, KindU16: {}, KindI16: {},
	KindU32: {}, KindI32: {}, KindU64: {}, KindI64: {}, KindF32: {},
	KindF64: {}, KindString: {}, KindRecord: {}, KindArray: {},
}

// IsScalar reports whether the kind is a primitive slot (including string).
func (k Kind) IsScalar() bool {
	switch k {
	case KindRecord, KindArray:
		return false
	default:
		_, ok := kinds[k]
		return ok
	}
}

// Field describes one slot in a record's fixed field order.
//
// Records and arrays are always presence-gated on the wire. Scalar and
// string slots are gated only when Optional is set (the original schema
// marked them nullable).
type Field struct {
	Name     string  `yaml:"name" json:"name"`
	Kind     Kind    `yaml:"kind" json:"kind"`
	Optional bool    `yaml:"optional,omitempty" json:"optional,omitempty"`
	Elem     *Field  `yaml:"elem,omitempty" json:"elem,omitempty"`     // arrays: element slot (name unused)
	Fields   []Field `yaml:"fields,omitempty" json:"fields,omitempty"` // records: ordered child slots
}

// Schema is the descriptor for one document type: a named root record plus
// the filename pattern that binds client config files to it.
type Schema struct {
	Name  string  `yaml:"name" json:"name"`
	Match string  `yaml:"match,omitempty" json:"match,omitempty"`
	Root  []Field `yaml:"root" json:"root"`
}

// Validate statically rejects malformed descriptors so that layout mistakes
// surface at load time rather than as silent desynchronization during decode.
func (s *Schema) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("schema has no name")
	}
	if len(s.Root) == 0 {
		return fmt.Errorf("schema %q: root record has no fields", s.Name)
	}
	if s.Match != "" {
		if _, err := filepath.Match(s.Match, "probe"); err != nil {
			return fmt.Errorf("schema %q: invalid match pattern %q: %w", s.Name, s.Match, err)
		}
	}
	return validateFields(s.Root, s.Name)
}

func validateFields(fields []Field, path string) error {
	seen := make(map[string]struct{}, len(fields))
	for i := range fields {
		f := &fields[i]
		if f.Name == "" {
			return fmt.Errorf("%s: field %d has no name", path, i)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%s: duplicate field name %q", path, f.Name)
		}
		seen[f.Name] = struct{}{}
		if err := validateField(f, path+"."+f.Name); err != nil {
			return err
		}
	}
	return nil
}

func validateField(f *Field, path string) error {
	if _, ok := kinds[f.Kind]; !ok {
		return fmt.Errorf("%s: unknown kind %q", path, f.Kind)
	}
	switch f.Kind {
	case KindArray:
		if f.Elem == nil {
			return fmt.Errorf("%s: array has no element type", path)
		}
		if len(f.Fields) > 0 {
			return fmt.Errorf("%s: array must not declare fields", path)
		}
		return validateElem(f.Elem, path+"[]")
	case KindRecord:
		if f.Elem != nil {
			return fmt.Errorf("%s: record must not declare an element type", path)
		}
		if len(f.Fields) == 0 {
			return fmt.Errorf("%s: record has no fields", path)
		}
		return validateFields(f.Fields, path)
	default:
		if f.Elem != nil || len(f.Fields) > 0 {
			return fmt.Errorf("%s: scalar %s must not declare children", path, f.Kind)
		}
	}
	return nil
}

// validateElem checks an array element slot. Elements have no name of their
// own; everything else follows field rules.
func validateElem(e *Field, path string) error {
	if e.Name != "" {
		return fmt.Errorf("%s: array element must not be named", path)
	}
	if _, ok := kinds[e.Kind]; !ok {
		return fmt.Errorf("%s: unknown kind %q", path, e.Kind)
	}
	switch e.Kind {
	case KindArray:
		if e.Elem == nil {
			return fmt.Errorf("%s: array has no element type", path)
		}
		return validateElem(e.Elem, path+"[]")
	case KindRecord:
		if len(e.Fields) == 0 {
			return fmt.Errorf("%s: record has no fields", path)
		}
		return validateFields(e.Fields, path)
	default:
		if e.Elem != nil || len(e.Fields) > 0 {
			return fmt.Errorf("%s: scalar %s must not declare children", path, e.Kind)
		}
	}
	return nil
}
