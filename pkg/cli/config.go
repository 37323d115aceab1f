package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/omnifind/pkg/adapter"
	"github.com/m-mizutani/omnifind/pkg/repository"
	"github.com/m-mizutani/omnifind/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// config holds configuration values
type config struct {
	logLevel string

	// Remote store
	remote            string
	remoteURL         string
	remoteKey         string
	firestoreProject  string
	firestoreDatabase string

	// Local store
	localDriver string
	localPath   string
}

// logFlags returns the logging flag with destination config
func logFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "warn",
			Sources:     cli.EnvVars("OMNIFIND_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
	}
}

// storeFlags returns flags selecting the history backends with destination config
func storeFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "remote",
			Usage:       "Remote history store (rest, firestore)",
			Value:       string(repository.RemoteREST),
			Sources:     cli.EnvVars("OMNIFIND_REMOTE"),
			Destination: &cfg.remote,
		},
		&cli.StringFlag{
			Name:        "remote-url",
			Usage:       "Base URL of the REST history store",
			Sources:     cli.EnvVars("OMNIFIND_REMOTE_URL", "SUPABASE_URL"),
			Destination: &cfg.remoteURL,
		},
		&cli.StringFlag{
			Name:        "remote-key",
			Usage:       "API key of the REST history store",
			Sources:     cli.EnvVars("OMNIFIND_REMOTE_KEY", "SUPABASE_KEY"),
			Destination: &cfg.remoteKey,
		},
		&cli.StringFlag{
			Name:        "firestore-project",
			Usage:       "Google Cloud project ID for the Firestore history store",
			Sources:     cli.EnvVars("GOOGLE_CLOUD_PROJECT"),
			Destination: &cfg.firestoreProject,
		},
		&cli.StringFlag{
			Name:        "firestore-database",
			Usage:       "Firestore database ID",
			Sources:     cli.EnvVars("FIRESTORE_DATABASE_ID"),
			Destination: &cfg.firestoreDatabase,
		},
		&cli.StringFlag{
			Name:        "local-driver",
			Usage:       "Local history store (file, sqlite)",
			Value:       string(repository.LocalFile),
			Sources:     cli.EnvVars("OMNIFIND_LOCAL_DRIVER"),
			Destination: &cfg.localDriver,
		},
		&cli.StringFlag{
			Name:        "local-path",
			Usage:       "Path of the local history store (default ~/.omnifind/divination_history.{json,db})",
			Sources:     cli.EnvVars("OMNIFIND_LOCAL_PATH"),
			Destination: &cfg.localPath,
		},
	}
}

// withLogger attaches a logger writing to the command's error stream
func (cfg *config) withLogger(ctx context.Context, c *cli.Command) (context.Context, *slog.Logger) {
	logger := logging.New(cfg.logLevel, c.Root().ErrWriter)
	return logging.With(ctx, logger), logger
}

func (cfg *config) repositoryConfig() repository.Config {
	return repository.Config{
		Remote:            repository.RemoteKind(cfg.remote),
		RemoteURL:         cfg.remoteURL,
		RemoteKey:         cfg.remoteKey,
		FirestoreProject:  cfg.firestoreProject,
		FirestoreDatabase: cfg.firestoreDatabase,
		LocalDriver:       repository.LocalDriver(cfg.localDriver),
		LocalPath:         cfg.localPath,
	}
}

// newRepository creates the history store. Callers close it when done.
func (cfg *config) newRepository(ctx context.Context) (*repository.Store, error) {
	store, err := repository.New(ctx, cfg.repositoryConfig())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create repository")
	}
	return store, nil
}

// newStorage creates a new Storage adapter instance
func (cfg *config) newStorage(ctx context.Context, bucketName string) (adapter.Storage, error) {
	if bucketName == "" {
		return nil, goerr.New("bucket name is required")
	}

	storage, err := adapter.NewStorage(ctx, bucketName)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage")
	}
	return storage, nil
}
