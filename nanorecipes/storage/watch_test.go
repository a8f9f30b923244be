package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestWatcherReportsSlotChanges(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	kv := NewFileKV(dir)
	path, err := kv.Path("recipes")
	if err != nil {
		t.Fatal(err)
	}

	w, err := Watch(path, WithDebounce(100*time.Millisecond))
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer func() { _ = w.Close() }()

	// Unrelated files are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.Events():
		t.Fatal("got event for an unrelated file")
	case <-time.After(250 * time.Millisecond):
	}

	// A burst of writes collapses into one notification
	for i := 0; i < 3; i++ {
		if err := kv.Set("recipes", []byte("[]")); err != nil {
			t.Fatal(err)
		}
	}
	select {
	case <-w.Events():
	case <-time.After(2 * time.Second):
		t.Fatal("no event after writing the slot")
	}
	select {
	case <-w.Events():
		t.Error("burst produced more than one event")
	case <-time.After(250 * time.Millisecond):
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := Watch(filepath.Join(t.TempDir(), "recipes.json"))
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
}
