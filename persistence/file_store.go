package persistence

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	cerr "github.com/saeidalz13/naval-battle/internal/error"
	mb "github.com/saeidalz13/naval-battle/models/battleship"
)

const DefaultSnapshotPath = "data/game.snapshot"

// FileSnapshotStore keeps the snapshot in a single file.
type FileSnapshotStore struct {
	path string
}

var _ mb.SnapshotStore = (*FileSnapshotStore)(nil)

func NewFileSnapshotStore(path string) *FileSnapshotStore {
	if path == "" {
		path = DefaultSnapshotPath
	}
	return &FileSnapshotStore{path: path}
}

func (fss *FileSnapshotStore) Path() string {
	return fss.path
}

func (fss *FileSnapshotStore) Exists() bool {
	_, err := os.Stat(fss.path)
	return err == nil
}

// Save writes to a temp file in the same directory and renames it over the
// old snapshot, so a crash mid-write leaves the previous one intact.
func (fss *FileSnapshotStore) Save(ctx context.Context, snapshot mb.GameSnapshot) error {
	if err := ctx.Err(); err != nil {
		return cerr.ErrSnapshotIo("save", err)
	}

	data, err := EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	dir := filepath.Dir(fss.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return cerr.ErrSnapshotIo("save", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".snapshot-*.tmp")
	if err != nil {
		return cerr.ErrSnapshotIo("save", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return cerr.ErrSnapshotIo("save", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return cerr.ErrSnapshotIo("save", err)
	}

	if err := os.Rename(tmpPath, fss.path); err != nil {
		os.Remove(tmpPath)
		return cerr.ErrSnapshotIo("save", err)
	}
	return nil
}

func (fss *FileSnapshotStore) Load(ctx context.Context) (mb.GameSnapshot, bool, error) {
	if err := ctx.Err(); err != nil {
		return mb.GameSnapshot{}, false, cerr.ErrSnapshotIo("load", err)
	}

	data, err := os.ReadFile(fss.path)
	if errors.Is(err, fs.ErrNotExist) {
		return mb.GameSnapshot{}, false, nil
	}
	if err != nil {
		return mb.GameSnapshot{}, false, cerr.ErrSnapshotIo("load", err)
	}

	snapshot, err := DecodeSnapshot(data)
	if err != nil {
		return mb.GameSnapshot{}, false, err
	}
	return snapshot, true, nil
}

// Delete succeeds when there is no snapshot.
func (fss *FileSnapshotStore) Delete(ctx context.Context) error {
	if err := os.Remove(fss.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cerr.ErrSnapshotIo("delete", err)
	}
	return nil
}
