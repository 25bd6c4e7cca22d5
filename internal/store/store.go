// Package store keeps matched orders in a single JSON array file. The file is
// the durable queue shared by the ingestion and delivery processes.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/TemirB/kaspi-feedback/internal/domain"
)

// BackupSuffix is appended to the store path for the previous revision.
const BackupSuffix = ".bak"

// Locker serializes read-modify-write cycles across processes.
type Locker interface {
	Lock(ctx context.Context) (release func(), err error)
}

type Store struct {
	path   string
	locker Locker
	logger *zap.Logger

	rename func(oldpath, newpath string) error
}

type Option func(*Store)

func WithLocker(l Locker) Option {
	return func(s *Store) { s.locker = l }
}

func New(path string, logger *zap.Logger, opts ...Option) *Store {
	s := &Store{
		path:   path,
		logger: logger,
		rename: os.Rename,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) Path() string { return s.path }

// Load returns the stored records in file order. A missing file, or one that
// is not a JSON array, is treated as an empty store; the .bak sibling is left
// for manual recovery. Elements are read one by one so a bad record never
// hides the others.
func (s *Store) Load() []domain.OrderRecord {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		s.logger.Warn("store unreadable, treating as empty", zap.String("path", s.path), zap.Error(err))
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		s.logger.Warn("store corrupt, treating as empty", zap.String("path", s.path), zap.Error(err))
		return nil
	}

	records := make([]domain.OrderRecord, 0, len(elems))
	for i, el := range elems {
		var rec domain.OrderRecord
		if err := json.Unmarshal(el, &rec); err != nil {
			rec = domain.OrderRecord{Raw: el}
		}
		if rec.Raw != nil {
			s.logger.Warn("store record unreadable, kept as is",
				zap.String("path", s.path),
				zap.Int("index", i),
				zap.String("order_code", rec.OrderCode),
			)
		}
		records = append(records, rec)
	}
	return records
}

// Update runs fn over a fresh read of the store while holding the lock and
// writes the result back when fn reports a change.
func (s *Store) Update(ctx context.Context, fn func([]domain.OrderRecord) ([]domain.OrderRecord, bool)) error {
	if s.locker != nil {
		release, err := s.locker.Lock(ctx)
		if err != nil {
			return err
		}
		defer release()
	}

	next, changed := fn(s.Load())
	if !changed {
		return nil
	}
	return s.Save(next)
}

// MergeAppend appends records to whatever the file currently holds.
// Deduplication is the caller's job.
func (s *Store) MergeAppend(ctx context.Context, records []domain.OrderRecord) error {
	if len(records) == 0 {
		return nil
	}
	return s.Update(ctx, func(existing []domain.OrderRecord) ([]domain.OrderRecord, bool) {
		return append(existing, records...), true
	})
}

// Save replaces the store with records: the current file is copied to .bak,
// the new content goes to a temp file in the same directory, and the temp
// file is renamed over the target. A crash at any point leaves either the old
// or the new content in place.
func (s *Store) Save(records []domain.OrderRecord) error {
	if records == nil {
		records = []domain.OrderRecord{}
	}

	if err := s.backup(); err != nil {
		s.logger.Warn("store backup failed", zap.String("path", s.path), zap.Error(err))
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		tmp.Close()
		return fmt.Errorf("encode store: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := s.rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	committed = true
	return nil
}

func (s *Store) backup() error {
	src, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(s.path + BackupSuffix)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
