package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gofrs/flock"
)

// FileSystem is the subset of file operations the file backend performs.
// Tests swap in MockFileSystem.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Rename(oldpath, newpath string) error
	Remove(name string) error
	MkdirAll(path string, perm fs.FileMode) error
}

// OSFileSystem forwards to the os package.
type OSFileSystem struct{}

func (OSFileSystem) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }
func (OSFileSystem) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }
func (OSFileSystem) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }
func (OSFileSystem) Remove(name string) error { return os.Remove(name) }
func (OSFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}
func (OSFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// FileLock is a cross-process exclusive lock on a path.
type FileLock interface {
	// TryLockContext polls for the lock every retryInterval until ctx is done
	TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error)
	Unlock() error
}

// FileLockFactory creates the lock guarding a slot file.
type FileLockFactory interface {
	New(path string) FileLock
}

// FlockFactory creates github.com/gofrs/flock locks.
type FlockFactory struct{}

// New implements FileLockFactory.
func (FlockFactory) New(path string) FileLock {
	return flock.New(path)
}

const (
	lockTimeout    = 3 * time.Second
	lockRetryDelay = 100 * time.Millisecond
)

var errLockBusy = errors.New("lock busy")

// acquireLock takes the lock, retrying with exponential backoff until the
// budget is spent. Errors from the lock itself are not retried.
func acquireLock(lock FileLock, budget time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = lockRetryDelay
	bo.MaxElapsedTime = budget

	err := backoff.Retry(func() error {
		locked, err := lock.TryLockContext(ctx, lockRetryDelay)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(errLockBusy)
			}
			return backoff.Permanent(fmt.Errorf("failed to acquire lock: %w", err))
		}
		if !locked {
			return errLockBusy
		}
		return nil
	}, backoff.WithContext(bo, ctx))

	if errors.Is(err, errLockBusy) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w (waited %s)", ErrLocked, budget)
	}
	return err
}
