package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileKVRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	kv := NewFileKV(dir)
	defer func() { _ = kv.Close() }()

	if _, found, err := kv.Get("recipes"); err != nil || found {
		t.Fatalf("Get on missing slot = found %v, err %v", found, err)
	}

	if err := kv.Set("recipes", []byte(`[]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, found, err := kv.Get("recipes")
	if err != nil || !found {
		t.Fatalf("Get = found %v, err %v", found, err)
	}
	if string(got) != "[]" {
		t.Errorf("Get = %q, want []", got)
	}

	if _, err := os.Stat(filepath.Join(dir, "recipes.json")); err != nil {
		t.Errorf("slot file not created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "recipes.json.tmp")); !os.IsNotExist(err) {
		t.Errorf("temp file should be renamed away, stat err = %v", err)
	}
}

func TestFileKVInvalidKeys(t *testing.T) {
	kv := NewFileKV(t.TempDir(), WithFileSystem(NewMockFileSystem()), WithFileLockFactory(NewMockFileLockFactory()))

	for _, key := range []string{"", "  ", "..", "a/b", `a\b`} {
		t.Run(key, func(t *testing.T) {
			if err := kv.Set(key, []byte("x")); !errors.Is(err, ErrInvalidKey) {
				t.Errorf("Set(%q) error = %v, want ErrInvalidKey", key, err)
			}
			if _, _, err := kv.Get(key); !errors.Is(err, ErrInvalidKey) {
				t.Errorf("Get(%q) error = %v, want ErrInvalidKey", key, err)
			}
		})
	}
}

func TestFileKVWithMocks(t *testing.T) {
	setup := func() (*FileKV, *MockFileSystem, *MockFileLockFactory) {
		fs := NewMockFileSystem()
		locks := NewMockFileLockFactory()
		kv := NewFileKV("/data",
			WithFileSystem(fs),
			WithFileLockFactory(locks),
			WithLockTimeout(50*time.Millisecond),
		)
		return kv, fs, locks
	}

	t.Run("write goes through temp file and releases lock", func(t *testing.T) {
		kv, fs, locks := setup()

		if err := kv.Set("slot", []byte("value")); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if !fs.FileExists("/data/slot.json") {
			t.Error("slot file missing")
		}
		if fs.FileExists("/data/slot.json.tmp") {
			t.Error("temp file left behind")
		}

		lock := locks.Lock("/data/slot.json.lock")
		if lock.IsHeld() {
			t.Error("lock still held after Set")
		}
		if lock.Unlocks != 1 {
			t.Errorf("Unlocks = %d, want 1", lock.Unlocks)
		}
	})

	t.Run("held lock times out", func(t *testing.T) {
		kv, fs, locks := setup()
		fs.PutFile("/data/slot.json", []byte("old"))
		locks.Lock("/data/slot.json.lock").Hold()

		err := kv.Set("slot", []byte("new"))
		if !errors.Is(err, ErrLocked) {
			t.Fatalf("Set error = %v, want ErrLocked", err)
		}
		if _, _, err := kv.Get("slot"); !errors.Is(err, ErrLocked) {
			t.Errorf("Get error = %v, want ErrLocked", err)
		}

		content, _ := fs.ReadFile("/data/slot.json")
		if string(content) != "old" {
			t.Errorf("slot modified while locked: %q", content)
		}
	})

	t.Run("lock error is not retried", func(t *testing.T) {
		kv, _, locks := setup()
		lock := locks.Lock("/data/slot.json.lock")
		lock.LockErr = errors.New("permission denied")

		err := kv.Set("slot", []byte("x"))
		if err == nil || errors.Is(err, ErrLocked) {
			t.Fatalf("Set error = %v, want a lock failure", err)
		}
		if lock.Attempts != 1 {
			t.Errorf("Attempts = %d, want 1", lock.Attempts)
		}
	})

	t.Run("rename failure removes temp file", func(t *testing.T) {
		kv, fs, _ := setup()
		fs.RenameError = errors.New("disk full")

		if err := kv.Set("slot", []byte("x")); err == nil {
			t.Fatal("expected error")
		}
		if fs.FileExists("/data/slot.json.tmp") {
			t.Error("temp file left behind after failed rename")
		}
	})

	t.Run("read failure", func(t *testing.T) {
		kv, fs, _ := setup()
		fs.PutFile("/data/slot.json", []byte("x"))
		fs.ReadFileError = errors.New("io error")

		if _, _, err := kv.Get("slot"); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("closed", func(t *testing.T) {
		kv, _, _ := setup()
		_ = kv.Close()

		if err := kv.Set("slot", nil); !errors.Is(err, ErrClosed) {
			t.Errorf("Set after Close = %v, want ErrClosed", err)
		}
		if _, _, err := kv.Get("slot"); !errors.Is(err, ErrClosed) {
			t.Errorf("Get after Close = %v, want ErrClosed", err)
		}
	})
}
