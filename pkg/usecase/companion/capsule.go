package companion

import (
	"context"

	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/edukshare-max/alebrije/pkg/repository"
	"github.com/edukshare-max/alebrije/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// RecordCapsule logs a capsule granted by a health service. The capsule
// effects are stored as they were sent and are not applied to the stats;
// only lastInteracted and updatedAt move.
func (u *UseCase) RecordCapsule(ctx context.Context, owner model.OwnerID, capsule *model.Capsule, service string) (*model.CapsuleRecord, error) {
	if err := capsule.Validate(); err != nil {
		return nil, err
	}
	if service == "" {
		return nil, goerr.Wrap(model.ErrValidation, "health service is required", goerr.V("capsuleId", capsule.ID))
	}

	c, err := u.load(ctx, owner)
	if err != nil {
		return nil, err
	}

	now := u.now()
	event := model.NewInteraction(c, model.InteractionCapsule, now)
	event.Capsule = capsule.Record(service, now)
	c.State.LastInteracted = now

	if err := u.save(ctx, c, now, event); err != nil {
		return nil, err
	}

	logging.From(ctx).Info("capsule recorded",
		"ownerId", owner,
		"capsule", capsule.Name,
		"rarity", capsule.Rarity,
		"service", service,
	)
	return event.Capsule, nil
}

// CapsuleHistory returns the capsules recorded for the owner, newest first
func (u *UseCase) CapsuleHistory(ctx context.Context, owner model.OwnerID, limit int) ([]*model.CapsuleRecord, error) {
	if _, err := u.load(ctx, owner); err != nil {
		return nil, err
	}

	events, err := u.repo.ListInteractions(ctx, owner, repository.ListInteractionsInput{
		Kind:  model.InteractionCapsule,
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	records := make([]*model.CapsuleRecord, 0, len(events))
	for _, e := range events {
		if e.Capsule != nil {
			records = append(records, e.Capsule)
		}
	}
	return records, nil
}
