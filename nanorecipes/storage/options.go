package storage

import (
	"log/slog"
	"time"

	"github.com/arthur-debert/nanorecipes/nanorecipes/ids"
)

// FileOption configures a FileKV
type FileOption func(*FileKV)

// WithFileSystem sets a custom FileSystem implementation
func WithFileSystem(fs FileSystem) FileOption {
	return func(s *FileKV) {
		s.fs = fs
	}
}

// WithFileLockFactory sets a custom FileLockFactory implementation
func WithFileLockFactory(factory FileLockFactory) FileOption {
	return func(s *FileKV) {
		s.lockFactory = factory
	}
}

// WithLockTimeout bounds how long a read or write waits for the slot lock
func WithLockTimeout(d time.Duration) FileOption {
	return func(s *FileKV) {
		s.lockTimeout = d
	}
}

// WithFileLogger sets the logger used by the file backend
func WithFileLogger(logger *slog.Logger) FileOption {
	return func(s *FileKV) {
		s.logger = logger
	}
}

// AdapterOption configures an Adapter
type AdapterOption func(*Adapter)

// WithKey overrides the slot name the collection is stored under
func WithKey(key string) AdapterOption {
	return func(a *Adapter) {
		a.key = key
	}
}

// WithClock sets a custom time function for testing
func WithClock(fn func() time.Time) AdapterOption {
	return func(a *Adapter) {
		a.now = fn
	}
}

// WithIDGenerator sets the generator used for the seed recipe id
func WithIDGenerator(gen ids.Generator) AdapterOption {
	return func(a *Adapter) {
		a.ids = gen
	}
}

// WithLogger sets the logger used by the adapter
func WithLogger(logger *slog.Logger) AdapterOption {
	return func(a *Adapter) {
		a.logger = logger
	}
}
