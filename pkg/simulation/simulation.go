// Package simulation applies care interactions to a companion's bounded stat
// vector. It is a numeric model rather than a discrete state machine: every
// interaction adds or subtracts from the four stats and the result is clamped
// to [0, 100].
//
// Stats never drift with wall-clock time. They only change through Apply.
package simulation

import (
	"time"

	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

const (
	DefaultFeedAmount = 20
	DefaultHealAmount = 30

	// MaxEffectiveAmount is where the smallest effect (a fifth of the
	// amount) already covers the whole stat range. Larger amounts behave
	// exactly like it.
	MaxEffectiveAmount = 5 * model.StatMax
)

// DefaultAmount returns the amount used for kind when the caller gives none.
// Kinds that take no amount return 0.
func DefaultAmount(kind model.InteractionKind) int {
	switch kind {
	case model.InteractionFeed:
		return DefaultFeedAmount
	case model.InteractionHeal:
		return DefaultHealAmount
	default:
		return 0
	}
}

// Apply returns the state after the interaction. amount 0 selects the
// kind's default; it is ignored by play and rest. The input state is not
// modified.
func Apply(state model.State, kind model.InteractionKind, amount int, now time.Time) (model.State, error) {
	if err := kind.Validate(); err != nil {
		return state, err
	}
	if amount < 0 {
		return state, goerr.Wrap(model.ErrValidation, "amount must not be negative",
			goerr.V("type", kind),
			goerr.V("amount", amount),
		)
	}
	if amount == 0 {
		amount = DefaultAmount(kind)
	}
	amount = min(amount, MaxEffectiveAmount)

	next := state
	switch kind {
	case model.InteractionFeed:
		next.Hunger += amount
		next.Happiness += amount * 3 / 10
		next.LastFed = now

	case model.InteractionPlay:
		next.Hunger -= 10
		next.Happiness += 20
		next.Health += 5
		next.Energy -= 15

	case model.InteractionHeal:
		next.Health += amount
		next.Happiness += amount * 2 / 10
		next.Energy += amount * 5 / 10
		next.LastCared = now

	case model.InteractionRest:
		next.Hunger -= 5
		next.Happiness += 10
		next.Health += 5
		next.Energy = model.StatMax
	}
	next.Clamp()

	next.ConsecutiveCareDays = careStreak(state, now)
	next.LastInteracted = now

	return next, nil
}

// careStreak counts consecutive UTC calendar days with at least one
// interaction, measured against the previous interaction time.
func careStreak(prev model.State, now time.Time) int {
	if prev.LastInteracted.IsZero() {
		return 1
	}

	switch days := daysBetween(prev.LastInteracted, now); {
	case days == 1:
		return max(prev.ConsecutiveCareDays, 1) + 1
	case days > 1:
		return 1
	default:
		return max(prev.ConsecutiveCareDays, 1)
	}
}

func daysBetween(from, to time.Time) int {
	return int(civilDay(to).Sub(civilDay(from)).Hours() / 24)
}

func civilDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
