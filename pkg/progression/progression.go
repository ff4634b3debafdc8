// Package progression keeps a companion's experience points, level and
// evolution history. Experience only grows, and history entries are only
// ever appended.
//
// Nothing here promotes a level on its own when experience crosses a
// threshold. Promotions come from Evolve, called either explicitly or by
// the dispatcher when an evolution policy decides one.
package progression

import (
	"math"
	"time"

	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

const BirthDescription = "birth"

// Birth returns the history every companion starts with
func Birth(now time.Time) []model.EvolutionEntry {
	return []model.EvolutionEntry{
		{Level: 1, Timestamp: now, Description: BirthDescription},
	}
}

// AddExperience adds points to the companion and returns the new total.
// Non-positive points are rejected and leave the companion untouched.
func AddExperience(c *model.Companion, points int, reason string) (int, error) {
	if points <= 0 {
		return c.ExperiencePoints, goerr.Wrap(model.ErrValidation, "experience points must be positive",
			goerr.V("points", points),
			goerr.V("reason", reason),
		)
	}
	if c.ExperiencePoints > math.MaxInt-points {
		return c.ExperiencePoints, goerr.Wrap(model.ErrValidation, "experience points overflow",
			goerr.V("current", c.ExperiencePoints),
			goerr.V("points", points),
		)
	}

	c.ExperiencePoints += points
	return c.ExperiencePoints, nil
}

// Evolve promotes the companion to level and appends the milestone to its
// history. The level must be above both the current level and every level
// already recorded.
func Evolve(c *model.Companion, level int, description string, now time.Time) error {
	if level <= c.Level || level <= c.MaxEvolutionLevel() {
		return goerr.Wrap(model.ErrValidation, "evolution level must be above the current level",
			goerr.V("level", level),
			goerr.V("current", c.Level),
		)
	}
	if description == "" {
		return goerr.Wrap(model.ErrValidation, "evolution description is required", goerr.V("level", level))
	}

	c.EvolutionHistory = append(c.EvolutionHistory, model.EvolutionEntry{
		Level:       level,
		Timestamp:   now,
		Description: description,
	})
	c.Level = level
	return nil
}

// ExtendsHistory reports whether next keeps every entry of prev, in order,
// as its prefix. Updates may only append to the history.
func ExtendsHistory(prev, next []model.EvolutionEntry) bool {
	if len(next) < len(prev) {
		return false
	}
	for i := range prev {
		if prev[i].Level != next[i].Level ||
			prev[i].Description != next[i].Description ||
			!prev[i].Timestamp.Equal(next[i].Timestamp) {
			return false
		}
	}
	return true
}
