package companion

import (
	"context"

	"github.com/edukshare-max/alebrije/pkg/model"
)

// Get returns the owner's companion
func (u *UseCase) Get(ctx context.Context, owner model.OwnerID) (*model.Companion, error) {
	return u.load(ctx, owner)
}
