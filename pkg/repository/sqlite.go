package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS companions (
	owner_id   TEXT PRIMARY KEY,
	id         TEXT NOT NULL UNIQUE,
	document   TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS interactions (
	id         TEXT PRIMARY KEY,
	owner_id   TEXT NOT NULL,
	kind       TEXT NOT NULL,
	document   TEXT NOT NULL,
	created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_interactions_owner_created
	ON interactions (owner_id, created_at DESC);
`

var sqlitePragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 10000",
	"PRAGMA synchronous = NORMAL",
}

// SQLite implements Repository on a single SQLite file. Documents are stored
// as JSON using the same field layout as the Firestore documents.
type SQLite struct {
	db *sql.DB
}

var _ Repository = (*SQLite)(nil)

// NewSQLite opens (and if needed creates) the database at path
func NewSQLite(path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, goerr.Wrap(err, "failed to create database directory", goerr.V("path", path))
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite database", goerr.V("path", path))
	}
	// A single connection keeps ":memory:" databases alive and shared
	db.SetMaxOpenConns(1)

	for _, pragma := range sqlitePragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, goerr.Wrap(err, "failed to apply pragma", goerr.V("pragma", pragma))
		}
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, goerr.Wrap(err, "failed to apply schema", goerr.V("path", path))
	}

	return &SQLite{db: db}, nil
}

// Close closes the database
func (r *SQLite) Close() error {
	return r.db.Close()
}

func (r *SQLite) FindByOwner(ctx context.Context, owner model.OwnerID) (*model.Companion, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT document FROM companions WHERE owner_id = ?`, string(owner),
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(model.StorageFailure(err), "failed to get companion", goerr.V("owner", owner))
	}

	var companion model.Companion
	if err := json.Unmarshal([]byte(raw), &companion); err != nil {
		return nil, goerr.Wrap(model.StorageFailure(err), "failed to decode companion", goerr.V("owner", owner))
	}
	return &companion, nil
}

func (r *SQLite) Create(ctx context.Context, companion *model.Companion) error {
	raw, err := json.Marshal(companion)
	if err != nil {
		return goerr.Wrap(err, "failed to encode companion", goerr.V("owner", companion.OwnerID))
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO companions (owner_id, id, document, updated_at) VALUES (?, ?, ?, ?)`,
		string(companion.OwnerID), string(companion.ID), string(raw), companion.UpdatedAt.UnixNano(),
	)
	if isConstraintError(err) {
		return goerr.Wrap(model.ErrConflict, "owner already has a companion", goerr.V("owner", companion.OwnerID))
	}
	if err != nil {
		return goerr.Wrap(model.StorageFailure(err), "failed to create companion", goerr.V("owner", companion.OwnerID))
	}
	return nil
}

func (r *SQLite) Replace(ctx context.Context, companion *model.Companion, events ...*model.Interaction) error {
	raw, err := json.Marshal(companion)
	if err != nil {
		return goerr.Wrap(err, "failed to encode companion", goerr.V("owner", companion.OwnerID))
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return goerr.Wrap(model.StorageFailure(err), "failed to begin transaction")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO companions (owner_id, id, document, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (owner_id) DO UPDATE SET
			id = excluded.id,
			document = excluded.document,
			updated_at = excluded.updated_at`,
		string(companion.OwnerID), string(companion.ID), string(raw), companion.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return goerr.Wrap(model.StorageFailure(err), "failed to replace companion",
			goerr.V("owner", companion.OwnerID),
			goerr.V("companionID", companion.ID),
		)
	}

	for _, event := range events {
		rawEvent, err := json.Marshal(event)
		if err != nil {
			return goerr.Wrap(err, "failed to encode interaction", goerr.V("id", event.ID))
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO interactions (id, owner_id, kind, document, created_at) VALUES (?, ?, ?, ?, ?)`,
			string(event.ID), string(event.OwnerID), string(event.Kind), string(rawEvent), event.CreatedAt.UnixNano(),
		); err != nil {
			return goerr.Wrap(model.StorageFailure(err), "failed to append interaction",
				goerr.V("owner", event.OwnerID),
				goerr.V("id", event.ID),
			)
		}
	}

	if err := tx.Commit(); err != nil {
		return goerr.Wrap(model.StorageFailure(err), "failed to commit companion", goerr.V("owner", companion.OwnerID))
	}
	return nil
}

func (r *SQLite) ListInteractions(ctx context.Context, owner model.OwnerID, input ListInteractionsInput) ([]*model.Interaction, error) {
	query := `SELECT document FROM interactions WHERE owner_id = ?`
	args := []any{string(owner)}
	if input.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, string(input.Kind))
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ?`
	args = append(args, input.limit())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, goerr.Wrap(model.StorageFailure(err), "failed to list interactions", goerr.V("owner", owner))
	}
	defer rows.Close()

	var events []*model.Interaction
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, goerr.Wrap(model.StorageFailure(err), "failed to scan interaction", goerr.V("owner", owner))
		}
		var event model.Interaction
		if err := json.Unmarshal([]byte(raw), &event); err != nil {
			return nil, goerr.Wrap(model.StorageFailure(err), "failed to decode interaction", goerr.V("owner", owner))
		}
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(model.StorageFailure(err), "failed to iterate interactions", goerr.V("owner", owner))
	}

	return events, nil
}

func isConstraintError(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
