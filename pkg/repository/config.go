package repository

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/omnifind/pkg/adapter"
	"github.com/m-mizutani/omnifind/pkg/utils/logging"
)

type RemoteKind string

const (
	RemoteREST      RemoteKind = "rest"
	RemoteFirestore RemoteKind = "firestore"
)

type LocalDriver string

const (
	LocalFile   LocalDriver = "file"
	LocalSQLite LocalDriver = "sqlite"
)

// Config selects the remote and local backends. A remote whose two values
// are not both set is treated as absent, which is not an error.
type Config struct {
	Remote RemoteKind

	RemoteURL string
	RemoteKey string

	FirestoreProject  string
	FirestoreDatabase string

	LocalDriver LocalDriver
	LocalPath   string
}

// RemoteConfigured reports whether the selected remote has everything it needs
func (c Config) RemoteConfigured() bool {
	switch c.Remote {
	case RemoteFirestore:
		return c.FirestoreProject != "" && c.FirestoreDatabase != ""
	default:
		return c.RemoteURL != "" && c.RemoteKey != ""
	}
}

// DefaultLocalPath returns $HOME/.omnifind/divination_history.{json,db}
func DefaultLocalPath(driver LocalDriver) string {
	ext := ".json"
	if driver == LocalSQLite {
		ext = ".db"
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return filepath.Join(home, ".omnifind", CollectionName+ext)
}

// Store is the Repository chosen by New. Close releases whatever backends
// were opened.
type Store struct {
	Repository
	closers []io.Closer
}

func (s *Store) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// New builds the local repository and, when configured, wraps it behind
// the remote with Fallback.
func New(ctx context.Context, cfg Config) (*Store, error) {
	store := &Store{}

	local, err := newLocal(ctx, cfg, store)
	if err != nil {
		return nil, err
	}

	if !cfg.RemoteConfigured() {
		logging.From(ctx).Debug("remote store not configured, using local history only",
			"driver", cfg.LocalDriver)
		store.Repository = local
		return store, nil
	}

	var remote Repository
	switch cfg.Remote {
	case RemoteFirestore:
		fs, err := NewFirestore(ctx, cfg.FirestoreProject, cfg.FirestoreDatabase)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		store.closers = append(store.closers, fs)
		remote = fs

	case RemoteREST, "":
		rest, err := NewREST(cfg.RemoteURL, cfg.RemoteKey)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		remote = rest

	default:
		_ = store.Close()
		return nil, goerr.New("unknown remote kind", goerr.V("remote", cfg.Remote))
	}

	store.Repository = NewFallback(remote, local)
	return store, nil
}

func newLocal(ctx context.Context, cfg Config, store *Store) (*Local, error) {
	driver := cfg.LocalDriver
	if driver == "" {
		driver = LocalFile
	}
	path := cfg.LocalPath
	if path == "" {
		path = DefaultLocalPath(driver)
	}

	switch driver {
	case LocalFile:
		return NewLocal(adapter.NewFileSlot(path)), nil

	case LocalSQLite:
		slot, err := adapter.OpenSQLiteSlot(ctx, path, CollectionName)
		if err != nil {
			return nil, err
		}
		store.closers = append(store.closers, slot)
		return NewLocal(slot), nil

	default:
		return nil, goerr.New("unknown local driver", goerr.V("driver", driver))
	}
}
