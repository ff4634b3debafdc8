package repository

import (
	"context"

	"github.com/edukshare-max/alebrije/pkg/model"
)

// Repository is the persistence gateway of the companion engine. It is a
// keyed document store: one companion document per owner plus an
// append-only log of interaction events.
//
// There is no optimistic-concurrency token. Replace always overwrites the
// whole document, so two concurrent read-modify-write cycles for the same
// owner resolve as last writer wins.
type Repository interface {
	// FindByOwner returns the owner's companion, or nil without error when the
	// owner has none
	FindByOwner(ctx context.Context, owner model.OwnerID) (*model.Companion, error)

	// Create stores a new companion. It fails with model.ErrConflict if the
	// owner already has one and never overwrites it.
	Create(ctx context.Context, companion *model.Companion) error

	// Replace overwrites the companion document and appends events to the
	// interaction log in a single atomic write
	Replace(ctx context.Context, companion *model.Companion, events ...*model.Interaction) error

	// ListInteractions returns logged events of the owner, newest first
	ListInteractions(ctx context.Context, owner model.OwnerID, input ListInteractionsInput) ([]*model.Interaction, error)
}

// ListInteractionsInput narrows ListInteractions
type ListInteractionsInput struct {
	// Kind filters by event kind. Empty means every kind.
	Kind model.InteractionKind
	// Limit caps the number of events. Zero or negative means DefaultListLimit.
	Limit int
}

const DefaultListLimit = 100

func (x ListInteractionsInput) limit() int {
	if x.Limit <= 0 {
		return DefaultListLimit
	}
	return x.Limit
}
