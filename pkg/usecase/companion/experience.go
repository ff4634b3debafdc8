package companion

import (
	"context"

	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/edukshare-max/alebrije/pkg/progression"
	"github.com/edukshare-max/alebrije/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

type ExperienceResult struct {
	PointsAdded int    `json:"pointsAdded" yaml:"pointsAdded"`
	Total       int    `json:"total" yaml:"total"`
	Reason      string `json:"reason,omitempty" yaml:"reason,omitempty"`
	// Evolution is set when the evolution policy promoted the companion
	Evolution *model.EvolutionEntry `json:"evolution,omitempty" yaml:"evolution,omitempty"`
}

// AddExperience adds points and persists the new total. When an evolution
// policy is configured it is consulted afterwards and may promote the
// companion in the same write.
func (u *UseCase) AddExperience(ctx context.Context, owner model.OwnerID, points int, reason string) (*ExperienceResult, error) {
	if points <= 0 {
		return nil, goerr.Wrap(model.ErrValidation, "experience points must be positive",
			goerr.V("points", points),
			goerr.V("ownerId", owner),
		)
	}

	c, err := u.load(ctx, owner)
	if err != nil {
		return nil, err
	}

	total, err := progression.AddExperience(c, points, reason)
	if err != nil {
		return nil, err
	}

	now := u.now()
	gained := model.NewInteraction(c, model.InteractionExperience, now)
	gained.Amount = points
	gained.Reason = reason
	events := []*model.Interaction{gained}

	result := &ExperienceResult{
		PointsAdded: points,
		Total:       total,
		Reason:      reason,
	}

	decision, err := u.policy.Evaluate(ctx, c)
	if err != nil {
		return nil, err
	}
	if decision != nil {
		if err := progression.Evolve(c, decision.Level, decision.Description, now); err != nil {
			return nil, err
		}
		entry := c.EvolutionHistory[len(c.EvolutionHistory)-1]
		result.Evolution = &entry
		events = append(events, evolvedEvent(c, entry, now))
	}

	if err := u.save(ctx, c, now, events...); err != nil {
		return nil, err
	}

	logging.From(ctx).Info("experience added",
		"ownerId", owner,
		"points", points,
		"total", total,
		"reason", reason,
		"level", c.Level,
	)
	return result, nil
}
