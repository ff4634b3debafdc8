package companion

import (
	"context"

	"github.com/edukshare-max/alebrije/pkg/dna"
	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/edukshare-max/alebrije/pkg/progression"
	"github.com/edukshare-max/alebrije/pkg/utils/logging"
)

type CreateInput struct {
	Species model.Species
	// DisplayName defaults to the species name when empty
	DisplayName string
}

// Create hatches a new companion for owner with freshly synthesized DNA
// 1. Reject the request if the owner already has a companion
// 2. Synthesize DNA for the species
// 3. Store the companion at level 1 with its birth entry
func (u *UseCase) Create(ctx context.Context, owner model.OwnerID, input CreateInput) (*model.Companion, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	if err := input.Species.Validate(); err != nil {
		return nil, err
	}
	if err := u.ensureAbsent(ctx, owner); err != nil {
		return nil, err
	}

	u.rngMu.Lock()
	genes, err := dna.Synthesize(input.Species, u.rng)
	u.rngMu.Unlock()
	if err != nil {
		return nil, err
	}

	displayName := input.DisplayName
	if displayName == "" {
		displayName = string(input.Species)
	}

	now := u.now()
	c := &model.Companion{
		ID:               model.NewCompanionID(),
		OwnerID:          owner,
		DisplayName:      displayName,
		DNA:              *genes,
		State:            model.NewState(now),
		Level:            1,
		EvolutionHistory: progression.Birth(now),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	logging.From(ctx).Info("companion created",
		"ownerId", owner,
		"companionId", c.ID,
		"species", input.Species,
	)
	return c, nil
}
