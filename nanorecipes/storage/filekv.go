package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"
)

// FileKV stores each slot as <dir>/<key>.json. Every access holds an
// exclusive flock on <file>.lock so a CLI verb and an open TUI never see a
// half-written slot. Writes go to <file>.tmp and are renamed into place.
type FileKV struct {
	dir         string
	fs          FileSystem
	lockFactory FileLockFactory
	lockTimeout time.Duration
	lockManager *LockManager
	logger      *slog.Logger
	closed      atomic.Bool
}

// NewFileKV creates a file backend rooted at dir. The directory is created
// on the first write.
func NewFileKV(dir string, opts ...FileOption) *FileKV {
	s := &FileKV{
		dir:         dir,
		fs:          OSFileSystem{},
		lockFactory: FlockFactory{},
		lockTimeout: lockTimeout,
		lockManager: NewLockManager(),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the directory holding the slot files
func (s *FileKV) Dir() string {
	return s.dir
}

// Path returns the file a slot is stored in
func (s *FileKV) Path(key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Get implements KeyValue.Get
func (s *FileKV) Get(key string) ([]byte, bool, error) {
	path, err := s.Path(key)
	if err != nil {
		return nil, false, err
	}

	var (
		data  []byte
		found bool
	)
	err = s.lockManager.Execute(key, ReadOperation, func() error {
		if s.closed.Load() {
			return ErrClosed
		}
		// A slot that was never written has no directory to lock in yet.
		if _, err := s.fs.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return s.withFileLock(path, func() error {
			if _, err := s.fs.Stat(path); err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return nil
				}
				return fmt.Errorf("failed to stat %s: %w", path, err)
			}

			content, err := s.fs.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			data, found = content, true
			return nil
		})
	})
	if err != nil {
		return nil, false, err
	}
	return data, found, nil
}

// Set implements KeyValue.Set
func (s *FileKV) Set(key string, value []byte) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}

	return s.lockManager.Execute(key, WriteOperation, func() error {
		if s.closed.Load() {
			return ErrClosed
		}
		if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
		return s.withFileLock(path, func() error {
			tmp := path + ".tmp"
			if err := s.fs.WriteFile(tmp, value, 0o644); err != nil {
				return fmt.Errorf("failed to write temp file: %w", err)
			}
			if err := s.fs.Rename(tmp, path); err != nil {
				_ = s.fs.Remove(tmp)
				return fmt.Errorf("failed to rename file: %w", err)
			}
			s.logger.Debug("slot written", "path", path, "bytes", len(value))
			return nil
		})
	})
}

// Close implements KeyValue.Close
func (s *FileKV) Close() error {
	s.closed.Store(true)
	return nil
}

func (s *FileKV) withFileLock(path string, fn func() error) error {
	lock := s.lockFactory.New(path + ".lock")
	if err := acquireLock(lock, s.lockTimeout); err != nil {
		return err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn("failed to release slot lock", "path", path, "error", err)
		}
	}()
	return fn()
}

// ValidateKey rejects slot names that would escape the data directory or
// produce an unusable file name. Every backend applies the same rules.
func ValidateKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	case key == "." || key == "..":
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	case strings.ContainsAny(key, `/\`+"\x00"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidKey, key)
	}
	return nil
}
