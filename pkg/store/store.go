// Package store persists versioned resources in a pebble database.
//
// Key layout:
//
//	r/<kind>/<version BE64>  -> resource JSON (history, version-ordered)
//	c/<kind>                 -> resource JSON (current snapshot)
//
// Versions are encoded big-endian so pebble's byte order is version order.
package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/cockroachdb/pebble"

	"github.com/lodeworks/lodestone/pkg/resource"
)

// Errors
var (
	ErrKindNotFound = &StoreError{"no resource for kind"}
	ErrClosed       = &StoreError{"store is closed"}
)

// StoreError represents a resource store error
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}

// ResourceStore is a pebble-backed store of versioned resources. Version
// assignment happens inside Put under the store's mutex, so concurrent
// extraction workers can share one store.
type ResourceStore struct {
	db     *pebble.DB
	mu     sync.Mutex
	closed bool
}

// Open opens (or creates) the store at path.
func Open(path string) (*ResourceStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open resource store: %w", err)
	}
	return &ResourceStore{db: db}, nil
}

// Put persists r as the next version of its kind. If the current snapshot
// already carries the same checksum the content is unchanged and nothing is
// written; Put reports whether a new version was created. On success r's
// Version field is set to the assigned version.
func (s *ResourceStore) Put(r *resource.Resource) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrClosed
	}

	cur, err := s.currentLocked(r.Kind)
	if err != nil && err != ErrKindNotFound {
		return false, err
	}
	if cur != nil {
		if cur.Checksum == r.Checksum {
			return false, nil
		}
		r.Version = cur.Version + 1
	} else {
		r.Version = 1
	}

	data, err := json.Marshal(r)
	if err != nil {
		return false, fmt.Errorf("failed to marshal resource: %w", err)
	}

	batch := s.db.NewBatch()
	defer batch.Close()
	if err := batch.Set(historyKey(r.Kind, r.Version), data, nil); err != nil {
		return false, err
	}
	if err := batch.Set(currentKey(r.Kind), data, nil); err != nil {
		return false, err
	}
	if err := batch.Commit(pebble.NoSync); err != nil {
		return false, fmt.Errorf("failed to commit resource: %w", err)
	}
	return true, nil
}

// Current returns the latest resource snapshot for a kind.
func (s *ResourceStore) Current(kind string) (*resource.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	return s.currentLocked(kind)
}

func (s *ResourceStore) currentLocked(kind string) (*resource.Resource, error) {
	data, closer, err := s.db.Get(currentKey(kind))
	if err == pebble.ErrNotFound {
		return nil, ErrKindNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	var r resource.Resource
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resource: %w", err)
	}
	return &r, nil
}

// History returns every stored version of a kind in ascending version order.
func (s *ResourceStore) History(kind string) ([]*resource.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	prefix := []byte("r/" + kind + "/")
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: upperBound(prefix),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var history []*resource.Resource
	for iter.First(); iter.Valid(); iter.Next() {
		var r resource.Resource
		if err := json.Unmarshal(iter.Value(), &r); err != nil {
			return nil, fmt.Errorf("failed to unmarshal resource: %w", err)
		}
		history = append(history, &r)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, ErrKindNotFound
	}
	return history, nil
}

// Kinds lists every kind with at least one stored resource, sorted.
func (s *ResourceStore) Kinds() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	prefix := []byte("c/")
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: upperBound(prefix),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var kinds []string
	for iter.First(); iter.Valid(); iter.Next() {
		kinds = append(kinds, string(iter.Key()[len(prefix):]))
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return kinds, nil
}

// Close closes the underlying database.
func (s *ResourceStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func historyKey(kind string, version uint64) []byte {
	key := make([]byte, 0, 2+len(kind)+1+8)
	key = append(key, "r/"...)
	key = append(key, kind...)
	key = append(key, '/')
	return binary.BigEndian.AppendUint64(key, version)
}

func currentKey(kind string) []byte {
	return []byte("c/" + kind)
}

// upperBound returns the smallest key greater than every key with the given
// prefix.
func upperBound(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
