package ledger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/memoy/tui-go/internal/model"
)

// Store persists ledger entries between runs
type Store interface {
	// Load returns the stored entries. A missing ledger is not an error.
	Load() ([]model.HighScoreEntry, error)
	// Save replaces the stored entries
	Save(entries []model.HighScoreEntry) error
}

// FileStore keeps the ledger in a flat text file
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the file at path
func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

// Path returns the backing file path
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load() ([]model.HighScoreEntry, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Save writes the entries to a temp file and renames it over the ledger
func (s *FileStore) Save(entries []model.HighScoreEntry) error {
	var buf bytes.Buffer
	if err := Encode(&buf, entries); err != nil {
		return err
	}
	return writeFile(s.path, buf.Bytes(), 0o644)
}

// writeFile writes bytes via a temp file, then atomically replaces the target.
func writeFile(path string, b []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	f, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// MemoryStore keeps entries in process memory
type MemoryStore struct {
	mu      sync.Mutex
	entries []model.HighScoreEntry
	saveErr error
}

// NewMemoryStore returns a store seeded with entries
func NewMemoryStore(entries ...model.HighScoreEntry) *MemoryStore {
	return &MemoryStore{entries: append([]model.HighScoreEntry(nil), entries...)}
}

// FailSaves makes every later Save return err. Passing nil restores normal saves.
func (s *MemoryStore) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

func (s *MemoryStore) Load() ([]model.HighScoreEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.HighScoreEntry(nil), s.entries...), nil
}

func (s *MemoryStore) Save(entries []model.HighScoreEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.entries = append([]model.HighScoreEntry(nil), entries...)
	return nil
}
