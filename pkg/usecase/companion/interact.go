package companion

import (
	"context"

	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/edukshare-max/alebrije/pkg/simulation"
	"github.com/edukshare-max/alebrije/pkg/utils/logging"
)

type InteractResult struct {
	Kind model.InteractionKind `json:"kind" yaml:"kind"`
	// Amount is the amount actually applied. It is the kind's default when
	// the caller passed zero and is omitted for kinds that take none.
	Amount    int              `json:"amount,omitempty" yaml:"amount,omitempty"`
	Companion *model.Companion `json:"companion" yaml:"companion"`
}

// Interact applies a care interaction and logs it
func (u *UseCase) Interact(ctx context.Context, owner model.OwnerID, kind model.InteractionKind, amount int) (*InteractResult, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	c, err := u.load(ctx, owner)
	if err != nil {
		return nil, err
	}

	now := u.now()
	state, err := simulation.Apply(c.State, kind, amount, now)
	if err != nil {
		return nil, err
	}
	c.State = state

	switch def := simulation.DefaultAmount(kind); {
	case def == 0:
		amount = 0
	case amount == 0:
		amount = def
	default:
		amount = min(amount, simulation.MaxEffectiveAmount)
	}
	event := model.NewInteraction(c, kind, now)
	event.Amount = amount

	if err := u.save(ctx, c, now, event); err != nil {
		return nil, err
	}

	logging.From(ctx).Info("interaction applied",
		"ownerId", owner,
		"kind", kind,
		"amount", amount,
		"state", c.State,
	)
	return &InteractResult{Kind: kind, Amount: amount, Companion: c}, nil
}
