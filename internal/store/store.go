package store

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/dshills/scorecard/internal/review"
)

// Store is the ordered record collection backed by one CSV file.
type Store struct {
	path   string
	logger *slog.Logger

	// rename moves the written temp file over the data file.
	rename func(oldpath, newpath string) error

	// mu serialises mutations within this process.
	mu sync.Mutex
}

// New returns a store for the CSV file at path. The file is not touched
// until the first Load or mutation. A nil logger uses slog.Default().
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:   path,
		logger: logger.With("component", "store", "path", path),
		rename: os.Rename,
	}
}

// Path returns the data file path.
func (s *Store) Path() string {
	return s.path
}

// Init writes an empty table with the canonical header if the data file does
// not exist yet. It reports whether a file was created.
func (s *Store) Init() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("%w: %w", review.ErrStorageUnavailable, err)
	}
	if err := s.persist([]review.Record{}); err != nil {
		return false, err
	}
	return true, nil
}

// Load returns the committed records. A missing data file yields an empty
// slice and no error.
func (s *Store) Load() ([]review.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("data file not found, starting empty")
			return []review.Record{}, nil
		}
		return nil, fmt.Errorf("%w: reading %s: %w", review.ErrStorageUnavailable, s.path, err)
	}
	records, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", review.ErrStorageUnavailable, s.path, err)
	}
	s.logger.Debug("loaded records", "count", len(records))
	return records, nil
}

// Persist replaces the durable table with records. Every record must pass
// Validate, so whatever is written can be loaded back.
func (s *Store) Persist(records []review.Record) error {
	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(records)
}

// Append recomputes rec's total from its sub-scores, adds it after the last
// committed record and persists the table. The returned slice is a new
// sequence; slices previously returned are never modified.
func (s *Store) Append(rec review.Record) ([]review.Record, error) {
	rec, err := review.NewRecord(rec.Link, rec.Name, rec.DateFound, rec.Scores)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.Load()
	if err != nil {
		return nil, err
	}
	next := make([]review.Record, 0, len(current)+1)
	next = append(next, current...)
	next = append(next, rec)

	if err := s.persist(next); err != nil {
		return nil, err
	}
	s.logger.Debug("record appended", "index", len(next)-1, "name", rec.Name, "total", rec.TotalPoints)
	return next, nil
}

// DeleteAt removes the record at zero-based index from the caller's view
// current and persists the result. The index is checked against current;
// if the committed record at index differs from current[index] the caller's
// view is stale and nothing is written.
func (s *Store) DeleteAt(index int, current []review.Record) ([]review.Record, error) {
	if err := checkIndex(index, len(current)); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteAt(index, current[index])
}

// Remove loads the committed records and deletes the one at index. When
// expectName is not empty the record at index must carry that product name.
// It returns the removed record and the remaining sequence.
func (s *Store) Remove(index int, expectName string) (review.Record, []review.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.Load()
	if err != nil {
		return review.Record{}, nil, err
	}
	if err := checkIndex(index, len(current)); err != nil {
		return review.Record{}, nil, err
	}
	target := current[index]
	if expectName != "" && target.Name != expectName {
		return review.Record{}, nil, fmt.Errorf("%w: record %d is %q, not %q",
			review.ErrStaleView, index, target.Name, expectName)
	}
	next, err := s.deleteAt(index, target)
	if err != nil {
		return review.Record{}, nil, err
	}
	return target, next, nil
}

func (s *Store) deleteAt(index int, want review.Record) ([]review.Record, error) {
	committed, err := s.Load()
	if err != nil {
		return nil, err
	}
	if index >= len(committed) || committed[index] != want {
		return nil, fmt.Errorf("%w: record %d changed since it was listed", review.ErrStaleView, index)
	}

	next := make([]review.Record, 0, len(committed)-1)
	next = append(next, committed[:index]...)
	next = append(next, committed[index+1:]...)

	if err := s.persist(next); err != nil {
		return nil, err
	}
	s.logger.Debug("record deleted", "index", index, "name", want.Name, "remaining", len(next))
	return next, nil
}

func checkIndex(index, length int) error {
	if length == 0 {
		return fmt.Errorf("%w: no records to delete", review.ErrIndexOutOfRange)
	}
	if index < 0 || index >= length {
		return fmt.Errorf("%w: index %d not in [0, %d]", review.ErrIndexOutOfRange, index, length-1)
	}
	return nil
}

// persist writes records to a temp file beside the data file and renames it
// into place. On any failure the data file is left untouched.
func (s *Store) persist(records []review.Record) (err error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating data directory: %w", review.ErrStorageUnavailable, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %w", review.ErrStorageUnavailable, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := Encode(tmp, records); err != nil {
		return fmt.Errorf("%w: encoding records: %w", review.ErrStorageUnavailable, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("%w: %w", review.ErrStorageUnavailable, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("%w: syncing temp file: %w", review.ErrStorageUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing temp file: %w", review.ErrStorageUnavailable, err)
	}
	if err := s.rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%w: replacing %s: %w", review.ErrStorageUnavailable, s.path, err)
	}
	s.logger.Debug("persisted records", "count", len(records))
	return nil
}
