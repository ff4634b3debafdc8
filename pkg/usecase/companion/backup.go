package companion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/edukshare-max/alebrije/pkg/repository"
	"github.com/edukshare-max/alebrije/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

const backupEventLimit = 1000

// Snapshot is the content of a backup object
type Snapshot struct {
	Companion    *model.Companion     `json:"companion"`
	Interactions []*model.Interaction `json:"interactions"`
	TakenAt      time.Time            `json:"takenAt"`
}

// BackupKey returns the object key a snapshot of owner taken at t is
// stored under
func BackupKey(owner model.OwnerID, t time.Time) string {
	return fmt.Sprintf("companions/%s/%s.json", url.PathEscape(string(owner)), t.UTC().Format(time.RFC3339))
}

// Backup writes a snapshot of the companion and its latest interactions to
// the configured storage and returns the object key
func (u *UseCase) Backup(ctx context.Context, owner model.OwnerID) (string, error) {
	if u.storage == nil {
		return "", goerr.Wrap(model.ErrValidation, "backup storage is not configured")
	}

	c, err := u.load(ctx, owner)
	if err != nil {
		return "", err
	}

	events, err := u.repo.ListInteractions(ctx, owner, repository.ListInteractionsInput{Limit: backupEventLimit})
	if err != nil {
		return "", err
	}

	now := u.now()
	key := BackupKey(owner, now)

	w, err := u.storage.Put(ctx, key, "application/json")
	if err != nil {
		return "", goerr.Wrap(err, "failed to open backup object", goerr.V("key", key))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(&Snapshot{Companion: c, Interactions: events, TakenAt: now}); err != nil {
		_ = w.Close()
		return "", goerr.Wrap(model.StorageFailure(err), "failed to write backup", goerr.V("key", key))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(model.StorageFailure(err), "failed to commit backup", goerr.V("key", key))
	}

	logging.From(ctx).Info("companion backed up",
		"ownerId", owner,
		"key", key,
		"interactions", len(events),
	)
	return key, nil
}
