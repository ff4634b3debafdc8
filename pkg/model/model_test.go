package model_test

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/m-mizutani/gt"
)

func validDNA() model.DNA {
	return model.DNA{
		SpeciesBase: model.SpeciesDeer,
		LimbGene:    model.LimbGene{Count: 4, Kind: "hooves"},
		ColorPalette: model.ColorPalette{
			Primary:    "jade",
			Secondary:  "coral",
			Tertiary:   "cobalt",
			Accent:     "lime",
			Brightness: 0.75,
		},
		GeometricPatterns: []model.Pattern{"dots", "waves", "stars"},
	}
}

func TestSpeciesValidate(t *testing.T) {
	for _, s := range model.AllSpecies {
		gt.NoError(t, s.Validate())
	}
	err := model.Species("dragon").Validate()
	gt.True(t, errors.Is(err, model.ErrValidation))
}

func TestDNAValidate(t *testing.T) {
	d := validDNA()
	gt.NoError(t, d.Validate())

	testCases := map[string]func(d *model.DNA){
		"duplicate color":     func(d *model.DNA) { d.ColorPalette.Accent = d.ColorPalette.Primary },
		"empty color":         func(d *model.DNA) { d.ColorPalette.Tertiary = "" },
		"dim brightness":      func(d *model.DNA) { d.ColorPalette.Brightness = 0.5 },
		"too few patterns":    func(d *model.DNA) { d.GeometricPatterns = d.GeometricPatterns[:1] },
		"duplicate patterns":  func(d *model.DNA) { d.GeometricPatterns = []model.Pattern{"dots", "dots"} },
		"unknown species":     func(d *model.DNA) { d.SpeciesBase = "unicorn" },
		"negative limb count": func(d *model.DNA) { d.LimbGene.Count = -1 },
	}
	for name, mutate := range testCases {
		t.Run(name, func(t *testing.T) {
			d := validDNA()
			mutate(&d)
			gt.True(t, errors.Is(d.Validate(), model.ErrValidation))
		})
	}
}

func TestDNAEqualAndClone(t *testing.T) {
	d := validDNA()
	cp := d.Clone()
	gt.True(t, d.Equal(cp))

	cp.GeometricPatterns[0] = "zigzag"
	gt.False(t, d.Equal(cp))
	gt.Equal(t, d.GeometricPatterns[0], model.Pattern("dots"))
}

func TestCompanionValidate(t *testing.T) {
	now := time.Now()
	newCompanion := func() *model.Companion {
		return &model.Companion{
			ID:      model.NewCompanionID(),
			OwnerID: "15662",
			DNA:     validDNA(),
			State:   model.NewState(now),
			Level:   1,
		}
	}
	gt.NoError(t, newCompanion().Validate())

	c := newCompanion()
	c.State.Health = 101
	gt.True(t, errors.Is(c.Validate(), model.ErrValidation))

	c = newCompanion()
	c.Level = 0
	gt.True(t, errors.Is(c.Validate(), model.ErrValidation))

	c = newCompanion()
	c.OwnerID = ""
	gt.True(t, errors.Is(c.Validate(), model.ErrValidation))

	c = newCompanion()
	c.ExperiencePoints = -1
	gt.True(t, errors.Is(c.Validate(), model.ErrValidation))

	c = newCompanion()
	c.EvolutionHistory = []model.EvolutionEntry{
		{Level: 1, Timestamp: now, Description: "birth"},
		{Level: 3, Timestamp: now, Description: "wings"},
	}
	gt.True(t, errors.Is(c.Validate(), model.ErrValidation))
	c.Level = 3
	gt.NoError(t, c.Validate())
}

func TestStateClamp(t *testing.T) {
	s := model.State{Hunger: -20, Happiness: 150, Health: 100, Energy: 0}
	s.Clamp()
	gt.Equal(t, s.Hunger, 0)
	gt.Equal(t, s.Happiness, 100)
	gt.Equal(t, s.Health, 100)
	gt.Equal(t, s.Energy, 0)
}

func TestCompanionClone(t *testing.T) {
	c := &model.Companion{
		DNA:              validDNA(),
		EvolutionHistory: []model.EvolutionEntry{{Level: 1, Description: "birth"}},
	}
	cp := c.Clone()
	cp.EvolutionHistory[0].Description = "changed"
	cp.DNA.GeometricPatterns[0] = "zigzag"

	gt.Equal(t, c.EvolutionHistory[0].Description, "birth")
	gt.Equal(t, c.DNA.GeometricPatterns[0], model.Pattern("dots"))
}

func TestParseInteractionKind(t *testing.T) {
	testCases := map[string]model.InteractionKind{
		"feed":      model.InteractionFeed,
		"play":      model.InteractionPlay,
		"heal":      model.InteractionHeal,
		"rest":      model.InteractionRest,
		"alimentar": model.InteractionFeed,
		"jugar":     model.InteractionPlay,
		"curar":     model.InteractionHeal,
		"descansar": model.InteractionRest,
	}
	for input, expected := range testCases {
		kind, err := model.ParseInteractionKind(input)
		gt.NoError(t, err)
		gt.Equal(t, kind, expected)
	}

	for _, input := range []string{"", "sleep", "capsule_obtained"} {
		_, err := model.ParseInteractionKind(input)
		gt.True(t, errors.Is(err, model.ErrValidation))
	}
}

func TestCapsuleRecord(t *testing.T) {
	now := time.Now()

	t.Run("defaults", func(t *testing.T) {
		c := &model.Capsule{ID: "c1", Name: "Shield", Rarity: "epic"}
		r := c.Record("vaccination", now)
		gt.Equal(t, r.Duration, "permanent")
		gt.Equal(t, r.Effects.ExperienceMultiplier, 1.0)
		gt.Equal(t, r.Service, "vaccination")
		gt.Equal(t, r.GrantedAt, now)
	})

	t.Run("effects carried verbatim", func(t *testing.T) {
		c := &model.Capsule{
			Name:                 "Boost",
			Duration:             "24h",
			HealthBonus:          10,
			HungerBonus:          -5,
			HappinessBonus:       3,
			EnergyBonus:          7,
			ExperienceMultiplier: 1.5,
		}
		r := c.Record("appointment", now)
		gt.Equal(t, r.Duration, "24h")
		gt.Equal(t, r.Effects, model.CapsuleEffects{
			HealthBonus:          10,
			HungerBonus:          -5,
			HappinessBonus:       3,
			EnergyBonus:          7,
			ExperienceMultiplier: 1.5,
		})
	})

	t.Run("validate", func(t *testing.T) {
		var nilCapsule *model.Capsule
		gt.True(t, errors.Is(nilCapsule.Validate(), model.ErrValidation))
		gt.True(t, errors.Is((&model.Capsule{ID: "x"}).Validate(), model.ErrValidation))
	})
}

func TestStorageFailure(t *testing.T) {
	err := model.StorageFailure(io.ErrUnexpectedEOF)
	gt.True(t, errors.Is(err, model.ErrStorage))
	gt.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	gt.False(t, errors.Is(err, model.ErrNotFound))
	gt.S(t, err.Error()).Contains("unexpected EOF")
}
