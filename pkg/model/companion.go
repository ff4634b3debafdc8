package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type CompanionID string

// NewCompanionID generates a new unique CompanionID
func NewCompanionID() CompanionID {
	return CompanionID(uuid.New().String())
}

// OwnerID is the student identity a companion belongs to. At most one
// companion exists per owner.
type OwnerID string

func (o OwnerID) Validate() error {
	if o == "" {
		return goerr.Wrap(ErrValidation, "owner id is empty")
	}
	return nil
}

const (
	StatMin = 0
	StatMax = 100
)

// State is the mutable stat vector of a companion plus its care timestamps
type State struct {
	Hunger    int `json:"hunger" firestore:"hunger" yaml:"hunger"`
	Happiness int `json:"happiness" firestore:"happiness" yaml:"happiness"`
	Health    int `json:"health" firestore:"health" yaml:"health"`
	Energy    int `json:"energy" firestore:"energy" yaml:"energy"`

	LastFed             time.Time `json:"lastFed" firestore:"lastFed" yaml:"lastFed"`
	LastInteracted      time.Time `json:"lastInteracted" firestore:"lastInteracted" yaml:"lastInteracted"`
	LastCared           time.Time `json:"lastCared" firestore:"lastCared" yaml:"lastCared"`
	ConsecutiveCareDays int       `json:"consecutiveCareDays" firestore:"consecutiveCareDays" yaml:"consecutiveCareDays"`
}

// NewState returns the stat vector of a newborn companion
func NewState(now time.Time) State {
	return State{
		Hunger:         80,
		Happiness:      80,
		Health:         100,
		Energy:         100,
		LastFed:        now,
		LastInteracted: now,
		LastCared:      now,
	}
}

// Clamp forces every stat into [StatMin, StatMax]
func (s *State) Clamp() {
	s.Hunger = clamp(s.Hunger)
	s.Happiness = clamp(s.Happiness)
	s.Health = clamp(s.Health)
	s.Energy = clamp(s.Energy)
}

func clamp(v int) int {
	return min(max(v, StatMin), StatMax)
}

type EvolutionEntry struct {
	Level       int       `json:"level" firestore:"level" yaml:"level"`
	Timestamp   time.Time `json:"timestamp" firestore:"timestamp" yaml:"timestamp"`
	Description string    `json:"description" firestore:"description" yaml:"description"`
}

// Companion is the root entity ("alebrije"), one per owner
type Companion struct {
	ID          CompanionID `json:"id" firestore:"id" yaml:"id"`
	OwnerID     OwnerID     `json:"ownerId" firestore:"ownerId" yaml:"ownerId"`
	DisplayName string      `json:"displayName" firestore:"displayName" yaml:"displayName"`
	DNA         DNA         `json:"dna" firestore:"dna" yaml:"dna"`
	State       State       `json:"state" firestore:"state" yaml:"state"`

	Level            int              `json:"level" firestore:"level" yaml:"level"`
	ExperiencePoints int              `json:"experiencePoints" firestore:"experiencePoints" yaml:"experiencePoints"`
	EvolutionHistory []EvolutionEntry `json:"evolutionHistory" firestore:"evolutionHistory" yaml:"evolutionHistory"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt" yaml:"updatedAt"`
}

// Validate checks the invariants a persisted companion must hold
func (c *Companion) Validate() error {
	if c.ID == "" {
		return goerr.Wrap(ErrValidation, "companion id is empty")
	}
	if err := c.OwnerID.Validate(); err != nil {
		return err
	}
	if err := c.DNA.Validate(); err != nil {
		return err
	}
	if c.Level < 1 {
		return goerr.Wrap(ErrValidation, "level must be at least 1", goerr.V("level", c.Level))
	}
	if top := c.MaxEvolutionLevel(); top > c.Level {
		return goerr.Wrap(ErrValidation, "level is below the evolution history",
			goerr.V("level", c.Level),
			goerr.V("historyLevel", top),
		)
	}
	if c.ExperiencePoints < 0 {
		return goerr.Wrap(ErrValidation, "experience points must not be negative", goerr.V("experiencePoints", c.ExperiencePoints))
	}
	for name, v := range map[string]int{
		"hunger":    c.State.Hunger,
		"happiness": c.State.Happiness,
		"health":    c.State.Health,
		"energy":    c.State.Energy,
	} {
		if v < StatMin || v > StatMax {
			return goerr.Wrap(ErrValidation, "stat out of range", goerr.V("stat", name), goerr.V("value", v))
		}
	}
	return nil
}

// MaxEvolutionLevel returns the highest level recorded in the evolution history
func (c *Companion) MaxEvolutionLevel() int {
	level := 0
	for _, e := range c.EvolutionHistory {
		level = max(level, e.Level)
	}
	return level
}

// Clone returns a deep copy of the companion
func (c *Companion) Clone() *Companion {
	cp := *c
	cp.DNA = c.DNA.Clone()
	cp.EvolutionHistory = append([]EvolutionEntry(nil), c.EvolutionHistory...)
	return &cp
}
