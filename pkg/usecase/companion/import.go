package companion

import (
	"context"
	"time"

	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/edukshare-max/alebrije/pkg/progression"
	"github.com/edukshare-max/alebrije/pkg/utils/logging"
)

// Import stores a companion document built by the client, DNA included.
// Field names of older clients are accepted. The owner always comes from
// the caller, never from the document. Missing id, level, history and
// creation time are filled in, and stats or timestamps absent from the
// state take their newborn values. Everything supplied must already be
// valid: out of range stats are rejected rather than clamped.
func (u *UseCase) Import(ctx context.Context, owner model.OwnerID, doc map[string]any) (*model.Companion, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}

	c, err := model.DecodeDocument(doc)
	if err != nil {
		return nil, err
	}
	// the patch view tells which stats the document actually carries
	present, err := model.DecodePatch(doc)
	if err != nil {
		return nil, err
	}

	now := u.now()
	c.OwnerID = owner
	if c.ID == "" {
		c.ID = model.NewCompanionID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.Level == 0 {
		c.Level = max(1, c.MaxEvolutionLevel())
	}
	c.State = fillState(c.State, present.State, now)
	if len(c.EvolutionHistory) == 0 {
		c.EvolutionHistory = progression.Birth(c.CreatedAt)
	}
	if c.DisplayName == "" {
		c.DisplayName = string(c.DNA.SpeciesBase)
	}
	c.UpdatedAt = now

	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := u.ensureAbsent(ctx, owner); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	logging.From(ctx).Info("companion imported",
		"ownerId", owner,
		"companionId", c.ID,
		"species", c.DNA.SpeciesBase,
	)
	return c, nil
}

func fillState(s model.State, present *model.StatePatch, now time.Time) model.State {
	base := model.NewState(now)
	if present == nil {
		return base
	}

	for _, stat := range []struct {
		set bool
		dst *int
		def int
	}{
		{present.Hunger != nil, &s.Hunger, base.Hunger},
		{present.Happiness != nil, &s.Happiness, base.Happiness},
		{present.Health != nil, &s.Health, base.Health},
		{present.Energy != nil, &s.Energy, base.Energy},
	} {
		if !stat.set {
			*stat.dst = stat.def
		}
	}

	for _, ts := range []*time.Time{&s.LastFed, &s.LastInteracted, &s.LastCared} {
		if ts.IsZero() {
			*ts = now
		}
	}
	return s
}
