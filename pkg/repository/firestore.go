package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	collectionCompanions   = "companions"
	collectionInteractions = "interactions"
)

// Firestore implements Repository. Companion documents are keyed by owner
// ID so that Create can rely on Firestore's create-if-absent semantics, and
// interaction events live in a subcollection of the companion document.
type Firestore struct {
	client *firestore.Client
}

var _ Repository = (*Firestore)(nil)

// NewFirestore creates a new Firestore repository
func NewFirestore(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project", projectID),
			goerr.V("database", databaseID),
		)
	}

	return &Firestore{client: client}, nil
}

// Close releases the underlying client
func (r *Firestore) Close() error {
	return r.client.Close()
}

func (r *Firestore) companionDoc(owner model.OwnerID) *firestore.DocumentRef {
	return r.client.Collection(collectionCompanions).Doc(string(owner))
}

func (r *Firestore) FindByOwner(ctx context.Context, owner model.OwnerID) (*model.Companion, error) {
	snap, err := r.companionDoc(owner).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(model.StorageFailure(err), "failed to get companion", goerr.V("owner", owner))
	}

	var companion model.Companion
	if err := snap.DataTo(&companion); err != nil {
		return nil, goerr.Wrap(model.StorageFailure(err), "failed to decode companion", goerr.V("owner", owner))
	}

	return &companion, nil
}

func (r *Firestore) Create(ctx context.Context, companion *model.Companion) error {
	if _, err := r.companionDoc(companion.OwnerID).Create(ctx, companion); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return goerr.Wrap(model.ErrConflict, "owner already has a companion", goerr.V("owner", companion.OwnerID))
		}
		return goerr.Wrap(model.StorageFailure(err), "failed to create companion", goerr.V("owner", companion.OwnerID))
	}

	return nil
}

func (r *Firestore) Replace(ctx context.Context, companion *model.Companion, events ...*model.Interaction) error {
	doc := r.companionDoc(companion.OwnerID)

	// Write-only transaction: the document and its events commit together.
	// Nothing is read inside, so it does not serialize concurrent updates.
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Set(doc, companion); err != nil {
			return err
		}
		for _, event := range events {
			if err := tx.Set(doc.Collection(collectionInteractions).Doc(string(event.ID)), event); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return goerr.Wrap(model.StorageFailure(err), "failed to replace companion",
			goerr.V("owner", companion.OwnerID),
			goerr.V("companionID", companion.ID),
		)
	}

	return nil
}

func (r *Firestore) ListInteractions(ctx context.Context, owner model.OwnerID, input ListInteractionsInput) ([]*model.Interaction, error) {
	q := r.companionDoc(owner).Collection(collectionInteractions).Query
	if input.Kind != "" {
		q = q.Where("kind", "==", string(input.Kind))
	}
	q = q.OrderBy("createdAt", firestore.Desc).Limit(input.limit())

	iter := q.Documents(ctx)
	defer iter.Stop()

	var events []*model.Interaction
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(model.StorageFailure(err), "failed to list interactions", goerr.V("owner", owner))
		}

		var event model.Interaction
		if err := snap.DataTo(&event); err != nil {
			return nil, goerr.Wrap(model.StorageFailure(err), "failed to decode interaction",
				goerr.V("owner", owner),
				goerr.V("id", snap.Ref.ID),
			)
		}
		events = append(events, &event)
	}

	return events, nil
}
