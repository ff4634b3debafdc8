package companion

import (
	"context"

	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/edukshare-max/alebrije/pkg/progression"
	"github.com/edukshare-max/alebrije/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Update merges patch into the owner's companion. DNA may be resent but
// never changed; experience, level and history may only move forward.
func (u *UseCase) Update(ctx context.Context, owner model.OwnerID, patch *model.Patch) (*model.Companion, error) {
	if patch == nil {
		return nil, goerr.Wrap(model.ErrValidation, "patch is required")
	}

	c, err := u.load(ctx, owner)
	if err != nil {
		return nil, err
	}

	if err := applyPatch(c, patch); err != nil {
		return nil, err
	}

	if err := u.save(ctx, c, u.now()); err != nil {
		return nil, err
	}

	logging.From(ctx).Info("companion updated", "ownerId", owner, "companionId", c.ID)
	return c, nil
}

func applyPatch(c *model.Companion, patch *model.Patch) error {
	if patch.DNA != nil && !patch.DNA.Equal(c.DNA) {
		return goerr.Wrap(model.ErrValidation, "dna is immutable", goerr.V("companionId", c.ID))
	}

	if patch.DisplayName != nil {
		c.DisplayName = *patch.DisplayName
	}

	if s := patch.State; s != nil {
		for _, stat := range []struct {
			name string
			src  *int
			dst  *int
		}{
			{"hunger", s.Hunger, &c.State.Hunger},
			{"happiness", s.Happiness, &c.State.Happiness},
			{"health", s.Health, &c.State.Health},
			{"energy", s.Energy, &c.State.Energy},
		} {
			if stat.src == nil {
				continue
			}
			if *stat.src < model.StatMin || *stat.src > model.StatMax {
				return goerr.Wrap(model.ErrValidation, "stat out of range",
					goerr.V("stat", stat.name),
					goerr.V("value", *stat.src),
				)
			}
			*stat.dst = *stat.src
		}
		if s.ConsecutiveCareDays != nil {
			if *s.ConsecutiveCareDays < 0 {
				return goerr.Wrap(model.ErrValidation, "care streak must not be negative",
					goerr.V("consecutiveCareDays", *s.ConsecutiveCareDays))
			}
			c.State.ConsecutiveCareDays = *s.ConsecutiveCareDays
		}
	}

	if patch.ExperiencePoints != nil {
		if *patch.ExperiencePoints < c.ExperiencePoints {
			return goerr.Wrap(model.ErrValidation, "experience points must not decrease",
				goerr.V("current", c.ExperiencePoints),
				goerr.V("requested", *patch.ExperiencePoints),
			)
		}
		c.ExperiencePoints = *patch.ExperiencePoints
	}

	if patch.EvolutionHistory != nil {
		if !progression.ExtendsHistory(c.EvolutionHistory, patch.EvolutionHistory) {
			return goerr.Wrap(model.ErrValidation, "evolution history is append-only",
				goerr.V("current", len(c.EvolutionHistory)),
				goerr.V("requested", len(patch.EvolutionHistory)),
			)
		}
		c.EvolutionHistory = patch.EvolutionHistory
	}

	if patch.Level != nil {
		if *patch.Level < c.Level {
			return goerr.Wrap(model.ErrValidation, "level must not decrease",
				goerr.V("current", c.Level),
				goerr.V("requested", *patch.Level),
			)
		}
		c.Level = *patch.Level
	}

	return nil
}
