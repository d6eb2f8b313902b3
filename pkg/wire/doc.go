// Package wire implements the low-level reader for the client's binary
// configuration format.
//
// The format is a presence-flagged, ordered field stream with no type tags,
// no checksums and no self-description. Field identity is purely positional:
// the encoder wrote fields in a fixed order, and a decoder must issue the
// matching reads in exactly that order. A wrong width or a missed presence
// gate does not fail immediately; it silently desynchronizes every read
// that follows.
//
// # Primitives
//
// All multi-byte values are little-endian. The vocabulary is:
//
//   - fixed-width integers, signed and unsigned, 1/2/4/8 bytes
//   - IEEE-754 floats, 4/8 bytes
//   - booleans, 1 byte, nonzero is true
//   - UTF-8 strings prefixed by a 16-bit byte length
//
// # Presence gates
//
// Every optional slot (nested records, arrays, nullable scalars) is preceded
// by a single gate byte. Gate zero means the slot's payload was never
// written: the decoder produces the slot's empty value and consumes nothing
// further for it. Arrays additionally carry a signed 32-bit element count
// after the gate, then that many elements back-to-back with no separators.
//
// # Error handling
//
// Every read either succeeds and advances the cursor by exactly the bytes
// consumed, or fails with a wire error. A failed read abandons the document;
// the cursor position is unspecified afterwards and partial values are never
// returned. Retrying a deterministic decode against the same buffer cannot
// succeed, so callers are expected to fail the document and move on.
package wire
