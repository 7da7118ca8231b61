package persistence

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	cerr "github.com/saeidalz13/naval-battle/internal/error"
)

func TestFileSnapshotStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewFileSnapshotStore(filepath.Join(t.TempDir(), "nested", "game.snapshot"))

	if _, found, err := store.Load(ctx); err != nil || found {
		t.Fatalf("expected nothing saved, found: %t err: %v", found, err)
	}

	want := newTestSnapshot(t)
	if err := store.Save(ctx, want); err != nil {
		t.Fatal(err)
	}
	if !store.Exists() {
		t.Fatal("snapshot file missing after save")
	}

	got, found, err := store.Load(ctx)
	if err != nil || !found {
		t.Fatalf("expected saved snapshot, found: %t err: %v", found, err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatal("loaded snapshot differs from saved one")
	}

	if err := store.Delete(ctx); err != nil {
		t.Fatal(err)
	}
	if store.Exists() {
		t.Fatal("snapshot file still present after delete")
	}
	if err := store.Delete(ctx); err != nil {
		t.Fatalf("second delete should succeed, got %v", err)
	}
}

func TestFileSnapshotStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewFileSnapshotStore(filepath.Join(dir, "game.snapshot"))

	first := newTestSnapshot(t)
	if err := store.Save(ctx, first); err != nil {
		t.Fatal(err)
	}

	second := first
	second.Shots = first.Shots + 5
	if err := store.Save(ctx, second); err != nil {
		t.Fatal(err)
	}

	got, _, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.Shots != second.Shots {
		t.Fatalf("expected shots %d, got %d", second.Shots, got.Shots)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the snapshot file, got %d entries", len(entries))
	}
}

func TestFileSnapshotStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.snapshot")
	if err := os.WriteFile(path, []byte{0xff, 0x00, 0x13}, 0644); err != nil {
		t.Fatal(err)
	}

	_, found, err := NewFileSnapshotStore(path).Load(context.Background())
	if found {
		t.Fatal("corrupt file reported as found")
	}
	if !errors.Is(err, cerr.ErrCorruptData) {
		t.Fatalf("expected corrupt data error, got %v", err)
	}
}

func TestFileSnapshotStoreUnreadablePath(t *testing.T) {
	// a directory where the file should be
	path := t.TempDir()

	_, _, err := NewFileSnapshotStore(path).Load(context.Background())
	if !errors.Is(err, cerr.ErrIoFailure) {
		t.Fatalf("expected io failure, got %v", err)
	}
}
