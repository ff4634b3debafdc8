package companion

import (
	"context"

	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/edukshare-max/alebrije/pkg/repository"
)

// History returns the owner's interaction log, newest first. An empty kind
// returns every kind of event.
func (u *UseCase) History(ctx context.Context, owner model.OwnerID, kind model.InteractionKind, limit int) ([]*model.Interaction, error) {
	if _, err := u.load(ctx, owner); err != nil {
		return nil, err
	}

	return u.repo.ListInteractions(ctx, owner, repository.ListInteractionsInput{
		Kind:  kind,
		Limit: limit,
	})
}
