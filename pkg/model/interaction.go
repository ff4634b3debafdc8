package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type InteractionID string

// NewInteractionID generates a new unique InteractionID
func NewInteractionID() InteractionID {
	return InteractionID(uuid.New().String())
}

type InteractionKind string

const (
	InteractionFeed InteractionKind = "feed"
	InteractionPlay InteractionKind = "play"
	InteractionHeal InteractionKind = "heal"
	InteractionRest InteractionKind = "rest"

	// Event-only kinds. They are recorded in the interaction log but are not
	// accepted by the state machine.
	InteractionCapsule    InteractionKind = "capsule_obtained"
	InteractionExperience InteractionKind = "experience_gained"
	InteractionEvolution  InteractionKind = "evolved"
)

// CareKinds lists the interaction kinds that change the stat vector
var CareKinds = []InteractionKind{
	InteractionFeed,
	InteractionPlay,
	InteractionHeal,
	InteractionRest,
}

// legacyKinds maps the kind names older clients send to the current ones
var legacyKinds = map[string]InteractionKind{
	"alimentar": InteractionFeed,
	"jugar":     InteractionPlay,
	"curar":     InteractionHeal,
	"descansar": InteractionRest,
}

// ParseInteractionKind accepts a care kind by its current or legacy name
func ParseInteractionKind(s string) (InteractionKind, error) {
	if k, ok := legacyKinds[s]; ok {
		return k, nil
	}
	k := InteractionKind(s)
	if err := k.Validate(); err != nil {
		return "", err
	}
	return k, nil
}

// Validate checks that the kind is a care interaction
func (k InteractionKind) Validate() error {
	switch k {
	case InteractionFeed, InteractionPlay, InteractionHeal, InteractionRest:
		return nil
	default:
		return goerr.Wrap(ErrValidation, "invalid interaction type",
			goerr.V("type", k),
			goerr.V("valid", CareKinds),
		)
	}
}

// Interaction is one entry of the append-only per-owner event log
type Interaction struct {
	ID          InteractionID   `json:"id" firestore:"id"`
	OwnerID     OwnerID         `json:"ownerId" firestore:"ownerId"`
	CompanionID CompanionID     `json:"companionId" firestore:"companionId"`
	Kind        InteractionKind `json:"kind" firestore:"kind"`
	Amount      int             `json:"amount,omitempty" firestore:"amount,omitempty"`
	Reason      string          `json:"reason,omitempty" firestore:"reason,omitempty"`
	Capsule     *CapsuleRecord  `json:"capsule,omitempty" firestore:"capsule,omitempty"`
	CreatedAt   time.Time       `json:"createdAt" firestore:"createdAt"`
}

// NewInteraction builds a log entry for the given companion
func NewInteraction(c *Companion, kind InteractionKind, now time.Time) *Interaction {
	return &Interaction{
		ID:          NewInteractionID(),
		OwnerID:     c.OwnerID,
		CompanionID: c.ID,
		Kind:        kind,
		CreatedAt:   now,
	}
}
