package schema

import (
	"strings"
	"testing"
)

func validSchema() *Schema {
	return &Schema{
		Name:  "pets",
		Match: "pet*.bin",
		Root: []Field{
			{Name: "id", Kind: KindU32},
			{Name: "name", Kind: KindString},
			{Name: "rare", Kind: KindBool, Optional: true},
			{Name: "stats", Kind: KindRecord, Fields: []Field{
				{Name: "attack", Kind: KindI16},
				{Name: "defense", Kind: KindI16},
			}},
			{Name: "skills", Kind: KindArray, Elem: &Field{Kind: KindU32}},
		},
	}
}

func TestSchema_ValidateAcceptsWellFormed(t *testing.T) {
	if err := validSchema().Validate(); err != nil {
		t.Fatalf("expected valid schema, got: %v", err)
	}
}

func TestSchema_ValidateRejectsMalformed(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Schema)
		wantErr string
	}{
		{
			name:    "missing schema name",
			mutate:  func(s *Schema) { s.Name = "" },
			wantErr: "no name",
		},
		{
			name:    "empty root",
			mutate:  func(s *Schema) { s.Root = nil },
			wantErr: "no fields",
		},
		{
			name:    "bad match pattern",
			mutate:  func(s *Schema) { s.Match = "[" },
			wantErr: "invalid match pattern",
		},
		{
			name:    "unnamed field",
			mutate:  func(s *Schema) { s.Root[0].Name = "" },
			wantErr: "has no name",
		},
		{
			name:    "duplicate field name",
			mutate:  func(s *Schema) { s.Root[1].Name = "id" },
			wantErr: "duplicate field name",
		},
		{
			name:    "unknown kind",
			mutate:  func(s *Schema) { s.Root[0].Kind = "varint" },
			wantErr: "unknown kind",
		},
		{
			name:    "array without element",
			mutate:  func(s *Schema) { s.Root[4].Elem = nil },
			wantErr: "no element type",
		},
		{
			name:    "record without fields",
			mutate:  func(s *Schema) { s.Root[3].Fields = nil },
			wantErr: "record has no fields",
		},
		{
			name:    "scalar with children",
			mutate:  func(s *Schema) { s.Root[0].Fields = []Field{{Name: "x", Kind: KindU8}} },
			wantErr: "must not declare children",
		},
		{
			name:    "named array element",
			mutate:  func(s *Schema) { s.Root[4].Elem.Name = "skill" },
			wantErr: "must not be named",
		},
		{
			name: "duplicate name in nested record",
			mutate: func(s *Schema) {
				s.Root[3].Fields[1].Name = "attack"
			},
			wantErr: "duplicate field name",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := validSchema()
			tc.mutate(s)
			err := s.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestSchema_ValidateNestedArrayOfArrays(t *testing.T) {
	s := &Schema{
		Name: "matrix",
		Root: []Field{
			{Name: "rows", Kind: KindArray, Elem: &Field{
				Kind: KindArray, Elem: &Field{Kind: KindF32},
			}},
		},
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("nested arrays should validate, got: %v", err)
	}
}

func TestDefaultValue_CanonicalEmpties(t *testing.T) {
	testCases := []struct {
		kind Kind
		want any
	}{
		{KindU8, uint8(0)},
		{KindI8, int8(0)},
		{KindBool, false},
		{KindU16, uint16(0)},
		{KindI16, int16(0)},
		{KindU32, uint32(0)},
		{KindI32, int32(0)},
		{KindU64, uint64(0)},
		{KindI64, int64(0)},
		{KindF32, float32(0)},
		{KindF64, float64(0)},
		{KindString, ""},
	}

	for _, tc := range testCases {
		got := DefaultValue(&Field{Name: "f", Kind: tc.kind})
		if got != tc.want {
			t.Errorf("DefaultValue(%s) = %#v (%T), want %#v (%T)", tc.kind, got, got, tc.want, tc.want)
		}
	}

	if rec := DefaultValue(&Field{Name: "f", Kind: KindRecord}); rec.(Record) != nil {
		t.Errorf("absent record default should be nil Record, got %#v", rec)
	}
	if arr := DefaultValue(&Field{Name: "f", Kind: KindArray}); len(arr.([]any)) != 0 {
		t.Errorf("absent array default should be empty, got %#v", arr)
	}
}
