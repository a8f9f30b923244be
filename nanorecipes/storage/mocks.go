package storage

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// MockFileSystem is an in-memory FileSystem for tests. Setting one of the
// error fields makes the matching operation fail.
type MockFileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool

	ReadFileError  error
	WriteFileError error
	RenameError    error
	MkdirAllError  error

	// Writes counts successful WriteFile calls
	Writes int
}

type mockFileInfo struct {
	name string
	size int64
}

func (fi mockFileInfo) Name() string       { return fi.name }
func (fi mockFileInfo) Size() int64        { return fi.size }
func (fi mockFileInfo) Mode() fs.FileMode  { return 0o644 }
func (fi mockFileInfo) ModTime() time.Time { return time.Time{} }
func (fi mockFileInfo) IsDir() bool        { return false }
func (fi mockFileInfo) Sys() interface{}   { return nil }

// NewMockFileSystem creates an empty mock file system
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

// Stat implements FileSystem.Stat
func (m *MockFileSystem) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	content, ok := m.files[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return mockFileInfo{name: filepath.Base(name), size: int64(len(content))}, nil
}

// ReadFile implements FileSystem.ReadFile
func (m *MockFileSystem) ReadFile(name string) ([]byte, error) {
	if m.ReadFileError != nil {
		return nil, m.ReadFileError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	content, ok := m.files[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return append([]byte(nil), content...), nil
}

// WriteFile implements FileSystem.WriteFile
func (m *MockFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if m.WriteFileError != nil {
		return m.WriteFileError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[name] = append([]byte(nil), data...)
	m.Writes++
	return nil
}

// Rename implements FileSystem.Rename
func (m *MockFileSystem) Rename(oldpath, newpath string) error {
	if m.RenameError != nil {
		return m.RenameError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	content, ok := m.files[oldpath]
	if !ok {
		return os.ErrNotExist
	}
	m.files[newpath] = content
	delete(m.files, oldpath)
	return nil
}

// Remove implements FileSystem.Remove
func (m *MockFileSystem) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[name]; !ok {
		return os.ErrNotExist
	}
	delete(m.files, name)
	return nil
}

// MkdirAll implements FileSystem.MkdirAll
func (m *MockFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	if m.MkdirAllError != nil {
		return m.MkdirAllError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = true
	return nil
}

// FileExists is a helper method for testing
func (m *MockFileSystem) FileExists(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[name]
	return ok
}

// PutFile seeds a file, bypassing error injection
func (m *MockFileSystem) PutFile(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = append([]byte(nil), data...)
}

// MockFileLock is a FileLock that never touches the disk
type MockFileLock struct {
	mu       sync.Mutex
	held     bool
	LockErr  error
	Attempts int
	Unlocks  int
}

// TryLockContext implements FileLock.TryLockContext. It does not wait:
// a held lock reports false immediately.
func (l *MockFileLock) TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.Attempts++
	if l.LockErr != nil {
		return false, l.LockErr
	}
	if l.held {
		return false, nil
	}
	l.held = true
	return true, nil
}

// Unlock implements FileLock.Unlock
func (l *MockFileLock) Unlock() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Unlocks++
	l.held = false
	return nil
}

// Hold marks the lock as taken by someone else
func (l *MockFileLock) Hold() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held = true
}

// IsHeld reports whether the lock is currently taken
func (l *MockFileLock) IsHeld() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.held
}

// MockFileLockFactory hands out one MockFileLock per path
type MockFileLockFactory struct {
	mu    sync.Mutex
	locks map[string]*MockFileLock
}

// NewMockFileLockFactory creates a new mock factory
func NewMockFileLockFactory() *MockFileLockFactory {
	return &MockFileLockFactory{locks: make(map[string]*MockFileLock)}
}

// New implements FileLockFactory.New
func (f *MockFileLockFactory) New(path string) FileLock {
	return f.Lock(path)
}

// Lock returns the mock lock for a path, creating it on first use
func (f *MockFileLockFactory) Lock(path string) *MockFileLock {
	f.mu.Lock()
	defer f.mu.Unlock()

	if l, ok := f.locks[path]; ok {
		return l
	}
	l := &MockFileLock{}
	f.locks[path] = l
	return l
}
