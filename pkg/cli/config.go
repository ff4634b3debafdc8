package cli

import (
	"context"

	"github.com/edukshare-max/alebrije/pkg/adapter"
	"github.com/edukshare-max/alebrije/pkg/dna"
	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/edukshare-max/alebrije/pkg/policy"
	"github.com/edukshare-max/alebrije/pkg/repository"
	"github.com/edukshare-max/alebrije/pkg/usecase/companion"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const (
	storeFirestore = "firestore"
	storeSQLite    = "sqlite"
)

// config holds configuration values
type config struct {
	// Repository
	store      string
	project    string
	database   string
	sqlitePath string

	// Engine
	owner     string
	policyDir string
	seed      uint64

	// Backup
	bucket string

	// Output
	format string
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "owner",
			Aliases:     []string{"o"},
			Usage:       "Owner identity (student enrollment number)",
			Sources:     cli.EnvVars("ALEBRIJE_OWNER_ID"),
			Destination: &cfg.owner,
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "store",
			Usage:       "Document store backend (firestore, sqlite)",
			Value:       storeFirestore,
			Sources:     cli.EnvVars("ALEBRIJE_STORE"),
			Destination: &cfg.store,
		},
		&cli.StringFlag{
			Name:        "project",
			Aliases:     []string{"p"},
			Usage:       "Google Cloud project ID",
			Sources:     cli.EnvVars("GOOGLE_CLOUD_PROJECT"),
			Destination: &cfg.project,
		},
		&cli.StringFlag{
			Name:        "database",
			Aliases:     []string{"d"},
			Usage:       "Firestore database ID",
			Value:       "(default)",
			Sources:     cli.EnvVars("FIRESTORE_DATABASE_ID"),
			Destination: &cfg.database,
		},
		&cli.StringFlag{
			Name:        "sqlite-path",
			Usage:       "SQLite database file",
			Value:       "alebrije.db",
			Sources:     cli.EnvVars("ALEBRIJE_SQLITE_PATH"),
			Destination: &cfg.sqlitePath,
		},
		&cli.StringFlag{
			Name:        "policy-dir",
			Usage:       "Directory of Rego evolution policies",
			Sources:     cli.EnvVars("ALEBRIJE_POLICY_DIR"),
			Destination: &cfg.policyDir,
		},
		&cli.UintFlag{
			Name:        "seed",
			Usage:       "Seed for DNA synthesis, random when zero",
			Sources:     cli.EnvVars("ALEBRIJE_SEED"),
			Destination: &cfg.seed,
		},
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Output format (json, yaml)",
			Value:       formatJSON,
			Sources:     cli.EnvVars("ALEBRIJE_FORMAT"),
			Destination: &cfg.format,
		},
	}
}

// storageFlags returns flags for backup storage with destination config
func storageFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "bucket",
			Usage:       "Cloud Storage bucket for backups",
			Sources:     cli.EnvVars("ALEBRIJE_BACKUP_BUCKET"),
			Destination: &cfg.bucket,
		},
	}
}

func (cfg *config) ownerID() model.OwnerID {
	return model.OwnerID(cfg.owner)
}

// newRepository creates the configured repository. The returned function
// releases it.
func (cfg *config) newRepository(ctx context.Context) (repository.Repository, func(), error) {
	switch cfg.store {
	case storeFirestore:
		if cfg.project == "" {
			return nil, nil, goerr.Wrap(model.ErrValidation, "project is required")
		}
		if cfg.database == "" {
			return nil, nil, goerr.Wrap(model.ErrValidation, "database is required")
		}
		repo, err := repository.NewFirestore(ctx, cfg.project, cfg.database)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to create repository")
		}
		return repo, func() { _ = repo.Close() }, nil

	case storeSQLite:
		if cfg.sqlitePath == "" {
			return nil, nil, goerr.Wrap(model.ErrValidation, "sqlite-path is required")
		}
		repo, err := repository.NewSQLite(cfg.sqlitePath)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to create repository")
		}
		return repo, func() { _ = repo.Close() }, nil

	default:
		return nil, nil, goerr.Wrap(model.ErrValidation, "unknown store",
			goerr.V("store", cfg.store),
			goerr.V("valid", []string{storeFirestore, storeSQLite}),
		)
	}
}

// newPolicy loads evolution policies when a policy directory is configured
func (cfg *config) newPolicy(ctx context.Context) (*policy.Policy, error) {
	if cfg.policyDir == "" {
		return nil, nil
	}
	p, err := policy.Load(ctx, cfg.policyDir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load evolution policy")
	}
	return p, nil
}

// newStorage creates a new Storage adapter instance
func (cfg *config) newStorage(ctx context.Context) (adapter.Storage, error) {
	if cfg.bucket == "" {
		return nil, goerr.Wrap(model.ErrValidation, "bucket is required")
	}

	storage, err := adapter.NewStorage(ctx, cfg.bucket)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage")
	}
	return storage, nil
}

// newUseCase wires the companion use case from the configuration. Storage
// is attached only when a bucket is configured.
func (cfg *config) newUseCase(ctx context.Context) (*companion.UseCase, func(), error) {
	if err := validateFormat(cfg.format); err != nil {
		return nil, nil, err
	}

	repo, closeRepo, err := cfg.newRepository(ctx)
	if err != nil {
		return nil, nil, err
	}

	p, err := cfg.newPolicy(ctx)
	if err != nil {
		closeRepo()
		return nil, nil, err
	}

	opts := []companion.Option{companion.WithPolicy(p)}
	if cfg.seed != 0 {
		opts = append(opts, companion.WithRandSource(dna.NewSource(cfg.seed)))
	}

	cleanup := closeRepo
	if cfg.bucket != "" {
		storage, err := cfg.newStorage(ctx)
		if err != nil {
			closeRepo()
			return nil, nil, err
		}
		opts = append(opts, companion.WithStorage(storage))
		cleanup = func() {
			_ = storage.Close()
			closeRepo()
		}
	}

	return companion.New(repo, opts...), cleanup, nil
}
