package store

import (
	"os"
	"testing"

	"github.com/lodeworks/lodestone/pkg/resource"
	"github.com/lodeworks/lodestone/pkg/schema"
)

func setupTestStore(t *testing.T) (*ResourceStore, func()) {
	tmpDir, err := os.MkdirTemp("", "resource_store_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	s, err := Open(tmpDir)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("Failed to open store: %v", err)
	}

	cleanup := func() {
		s.Close()
		os.RemoveAll(tmpDir)
	}
	return s, cleanup
}

func mustResource(t *testing.T, kind string, doc schema.Record) *resource.Resource {
	t.Helper()
	r, err := resource.New(kind, kind+".bin", doc)
	if err != nil {
		t.Fatalf("resource.New failed: %v", err)
	}
	return r
}

func TestResourceStore_PutAssignsVersions(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	r1 := mustResource(t, "pets", schema.Record{"id": uint32(1)})
	created, err := s.Put(r1)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if !created {
		t.Error("expected first Put to create a version")
	}
	if r1.Version != 1 {
		t.Errorf("first version: got %d, want 1", r1.Version)
	}

	r2 := mustResource(t, "pets", schema.Record{"id": uint32(2)})
	created, err = s.Put(r2)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if !created {
		t.Error("expected changed content to create a version")
	}
	if r2.Version != 2 {
		t.Errorf("second version: got %d, want 2", r2.Version)
	}
}

func TestResourceStore_UnchangedContentIsNoOp(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	doc := schema.Record{"id": uint32(1), "name": "盖亚"}

	r1 := mustResource(t, "pets", doc)
	if _, err := s.Put(r1); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	r2 := mustResource(t, "pets", doc)
	created, err := s.Put(r2)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if created {
		t.Error("unchanged content must not create a new version")
	}

	cur, err := s.Current("pets")
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if cur.Version != 1 {
		t.Errorf("current version: got %d, want 1", cur.Version)
	}
}

func TestResourceStore_CurrentReflectsLatest(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	for i := 1; i <= 3; i++ {
		r := mustResource(t, "skills", schema.Record{"rev": uint32(i)})
		if _, err := s.Put(r); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	cur, err := s.Current("skills")
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if cur.Version != 3 {
		t.Errorf("current version: got %d, want 3", cur.Version)
	}
	if cur.Kind != "skills" {
		t.Errorf("current kind: got %q", cur.Kind)
	}
}

func TestResourceStore_HistoryIsVersionOrdered(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	for i := 1; i <= 4; i++ {
		r := mustResource(t, "items", schema.Record{"rev": uint32(i)})
		if _, err := s.Put(r); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	history, err := s.History("items")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 4 {
		t.Fatalf("expected 4 versions, got %d", len(history))
	}
	for i, r := range history {
		if r.Version != uint64(i+1) {
			t.Errorf("history[%d].Version = %d, want %d", i, r.Version, i+1)
		}
	}
}

func TestResourceStore_UnknownKind(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	if _, err := s.Current("nope"); err != ErrKindNotFound {
		t.Errorf("Current: expected ErrKindNotFound, got %v", err)
	}
	if _, err := s.History("nope"); err != ErrKindNotFound {
		t.Errorf("History: expected ErrKindNotFound, got %v", err)
	}
}

func TestResourceStore_Kinds(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	for _, kind := range []string{"pets", "achievements", "skills"} {
		r := mustResource(t, kind, schema.Record{"kind": kind})
		if _, err := s.Put(r); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	kinds, err := s.Kinds()
	if err != nil {
		t.Fatalf("Kinds failed: %v", err)
	}
	want := []string{"achievements", "pets", "skills"}
	if len(kinds) != len(want) {
		t.Fatalf("expected %d kinds, got %v", len(want), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kinds[%d] = %q, want %q", i, kinds[i], want[i])
		}
	}
}

func TestResourceStore_ClosedStoreRejectsOperations(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	r := mustResource(t, "pets", schema.Record{"id": uint32(1)})
	if _, err := s.Put(r); err != ErrClosed {
		t.Errorf("Put on closed store: expected ErrClosed, got %v", err)
	}
	if _, err := s.Current("pets"); err != ErrClosed {
		t.Errorf("Current on closed store: expected ErrClosed, got %v", err)
	}
}
