package wire

import "fmt"

// Errors
var (
	ErrShortBuffer   = &WireError{"read past end of buffer"}
	ErrInvalidUTF8   = &WireError{"string bytes are not valid UTF-8"}
	ErrNegativeCount = &WireError{"negative array count"}
	ErrCountTooLarge = &WireError{"array count exceeds remaining bytes"}
	ErrDepthExceeded = &WireError{"nesting depth limit exceeded"}
)

// WireError represents a decoding error in the binary stream
type WireError struct {
	Message string
}

func (e *WireError) Error() string {
	return e.Message
}

// readError annotates a wire error with what was being read and where.
// The offset names the position the failed read started at, which is the
// most useful anchor when diagnosing a desynchronized schema.
func readError(what string, offset int, err error) error {
	return fmt.Errorf("read %s at offset %d: %w", what, offset, err)
}
