// Package resource defines the versioned resource a decoded config document
// becomes before it is persisted and re-published.
package resource

import (
	"encoding/json"
	"fmt"
	"hash/crc32"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/lodeworks/lodestone/pkg/schema"
)

// Resource is one published snapshot of a decoded config document.
//
// Kind is the schema name, Version is assigned by the store and increases
// monotonically per kind, and Checksum is the IEEE CRC32 of the JSON
// payload. Two extractions of byte-identical content produce the same
// checksum, which is how unchanged files are deduplicated.
type Resource struct {
	ID         ksuid.KSUID     `json:"id"`
	Kind       string          `json:"kind"`
	Version    uint64          `json:"version,omitempty"`
	SourceFile string          `json:"source_file"`
	Checksum   uint32          `json:"checksum"`
	CapturedAt time.Time       `json:"captured_at"`
	Payload    json.RawMessage `json:"payload"`
}

// New builds an unversioned resource from a decoded document.
func New(kind, sourceFile string, doc schema.Record) (*Resource, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document payload: %w", err)
	}
	return &Resource{
		ID:         ksuid.New(),
		Kind:       kind,
		SourceFile: sourceFile,
		Checksum:   crc32.ChecksumIEEE(payload),
		CapturedAt: time.Now().UTC(),
		Payload:    payload,
	}, nil
}
