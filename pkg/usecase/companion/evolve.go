package companion

import (
	"context"
	"time"

	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/edukshare-max/alebrije/pkg/progression"
	"github.com/edukshare-max/alebrije/pkg/utils/logging"
)

// Evolve promotes the companion to level and records the milestone
func (u *UseCase) Evolve(ctx context.Context, owner model.OwnerID, level int, description string) (*model.Companion, error) {
	c, err := u.load(ctx, owner)
	if err != nil {
		return nil, err
	}

	now := u.now()
	if err := progression.Evolve(c, level, description, now); err != nil {
		return nil, err
	}
	entry := c.EvolutionHistory[len(c.EvolutionHistory)-1]

	if err := u.save(ctx, c, now, evolvedEvent(c, entry, now)); err != nil {
		return nil, err
	}

	logging.From(ctx).Info("companion evolved",
		"ownerId", owner,
		"level", level,
		"description", description,
	)
	return c, nil
}

func evolvedEvent(c *model.Companion, entry model.EvolutionEntry, now time.Time) *model.Interaction {
	event := model.NewInteraction(c, model.InteractionEvolution, now)
	event.Amount = entry.Level
	event.Reason = entry.Description
	return event
}
