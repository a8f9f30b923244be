package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/nanorecipes/nanorecipes/collection"
	"github.com/arthur-debert/nanorecipes/nanorecipes/ids"
	"github.com/arthur-debert/nanorecipes/nanorecipes/storage"
	"github.com/arthur-debert/nanorecipes/nanorecipes/view"
)

// sqliteFile is the database file name inside the data directory
const sqliteFile = "nanorecipes.db"

// session is one opened recipe collection with its controller
type session struct {
	kv      storage.KeyValue
	store   *storage.Adapter
	coll    *collection.Collection
	ctrl    *view.Controller
	backend string

	// watchPath is the file changed by other processes, empty for memory
	watchPath string
}

// Close releases the backend
func (s *session) Close() error {
	return s.kv.Close()
}

// openBackend builds the key-value backend named in the configuration
func (cli *CLI) openBackend() (storage.KeyValue, string, string, error) {
	v := cli.viperInst
	backend := strings.ToLower(strings.TrimSpace(v.GetString("backend")))
	if v.GetBool("ephemeral") {
		backend = "memory"
	}
	dataDir := v.GetString("data-dir")
	key := v.GetString("key")

	switch backend {
	case "", "file":
		kv := storage.NewFileKV(dataDir, storage.WithFileLogger(cli.logger))
		path, err := kv.Path(key)
		if err != nil {
			return nil, "", "", err
		}
		return kv, "file", path, nil
	case "sqlite":
		kv, err := storage.NewSQLiteKV(filepath.Join(dataDir, sqliteFile))
		if err != nil {
			return nil, "", "", fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
		}
		return kv, "sqlite", kv.Path(), nil
	case "memory":
		return storage.NewMemoryKV(), "memory", "", nil
	default:
		return nil, "", "", NewValidationError("open recipes", "backend", backend,
			"Valid backends: file, sqlite, memory", CommonSuggestions.CheckConfig)
	}
}

// openSession loads the collection. Verbs that write refuse to run on an
// unreadable backend, since saving would overwrite data that may still be
// intact. A corrupt slot was already replaced by the seed; it is reported
// as a warning.
func (cli *CLI) openSession(operation string, mutating bool) (*session, error) {
	key := cli.viperInst.GetString("key")
	if err := storage.ValidateKey(key); err != nil {
		return nil, NewStoreError(operation, err, CommonSuggestions.CheckConfig)
	}

	kv, backend, watchPath, err := cli.openBackend()
	if err != nil {
		return nil, WrapError(operation, err)
	}

	store := storage.NewAdapter(kv,
		storage.WithKey(key),
		storage.WithClock(cli.now),
		storage.WithIDGenerator(cli.ids),
		storage.WithLogger(cli.logger),
	)

	coll, err := collection.Load(store, collection.WithLogger(cli.logger))
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrUnavailable) && mutating:
		_ = kv.Close()
		return nil, NewStoreError(operation, err)
	case errors.Is(err, storage.ErrUnavailable):
		fmt.Fprintf(cli.errOut, "Warning: recipes could not be read, showing the sample recipe only\n")
	case errors.Is(err, storage.ErrCorrupt):
		fmt.Fprintf(cli.errOut, "Warning: stored recipes were unreadable and have been reset to the sample recipe\n")
	default:
		fmt.Fprintf(cli.errOut, "Warning: %v\n", err)
	}

	ctrl := view.New(coll,
		view.WithIDGenerator(cli.ids),
		view.WithClock(cli.now),
		view.WithLogger(cli.logger),
	)

	cli.logger.Debug("session opened", "backend", backend, "key", key, "recipes", coll.Len())
	return &session{
		kv:        kv,
		store:     store,
		coll:      coll,
		ctrl:      ctrl,
		backend:   backend,
		watchPath: watchPath,
	}, nil
}

// resolve expands a full id or unique id prefix to the stored id
func (s *session) resolve(operation, ref string) (string, error) {
	id, err := ids.Resolve(s.coll.IDs(), ref)
	if err != nil {
		return "", NewNotFoundError(operation, ref, err)
	}
	return id, nil
}
