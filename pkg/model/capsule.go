package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Capsule is a reward token granted for engaging with a health service
type Capsule struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Kind        string `json:"kind" yaml:"kind"`
	Rarity      string `json:"rarity" yaml:"rarity"`
	Emoji       string `json:"emoji" yaml:"emoji"`
	Description string `json:"description" yaml:"description"`
	Duration    string `json:"duration,omitempty" yaml:"duration,omitempty"`

	HealthBonus          int     `json:"healthBonus,omitempty" yaml:"healthBonus,omitempty"`
	HungerBonus          int     `json:"hungerBonus,omitempty" yaml:"hungerBonus,omitempty"`
	HappinessBonus       int     `json:"happinessBonus,omitempty" yaml:"happinessBonus,omitempty"`
	EnergyBonus          int     `json:"energyBonus,omitempty" yaml:"energyBonus,omitempty"`
	ExperienceMultiplier float64 `json:"experienceMultiplier,omitempty" yaml:"experienceMultiplier,omitempty"`
}

func (c *Capsule) Validate() error {
	if c == nil {
		return goerr.Wrap(ErrValidation, "capsule is required")
	}
	if c.Name == "" {
		return goerr.Wrap(ErrValidation, "capsule name is required", goerr.V("capsuleID", c.ID))
	}
	return nil
}

type CapsuleEffects struct {
	HealthBonus          int     `json:"healthBonus" firestore:"healthBonus"`
	HungerBonus          int     `json:"hungerBonus" firestore:"hungerBonus"`
	HappinessBonus       int     `json:"happinessBonus" firestore:"happinessBonus"`
	EnergyBonus          int     `json:"energyBonus" firestore:"energyBonus"`
	ExperienceMultiplier float64 `json:"experienceMultiplier" firestore:"experienceMultiplier"`
}

// CapsuleRecord is the capsule descriptor as stored in the interaction log.
// Effects are carried through verbatim and never applied to the stats.
type CapsuleRecord struct {
	ID        string         `json:"id" firestore:"id"`
	Kind      string         `json:"kind" firestore:"kind"`
	Rarity    string         `json:"rarity" firestore:"rarity"`
	Name      string         `json:"name" firestore:"name"`
	Emoji     string         `json:"emoji" firestore:"emoji"`
	Service   string         `json:"service" firestore:"service"`
	Duration  string         `json:"duration" firestore:"duration"`
	Effects   CapsuleEffects `json:"effects" firestore:"effects"`
	GrantedAt time.Time      `json:"grantedAt" firestore:"grantedAt"`
}

// Record converts the capsule into its log form, filling the defaults for
// duration and experience multiplier
func (c *Capsule) Record(service string, now time.Time) *CapsuleRecord {
	duration := c.Duration
	if duration == "" {
		duration = "permanent"
	}
	multiplier := c.ExperienceMultiplier
	if multiplier == 0 {
		multiplier = 1.0
	}

	return &CapsuleRecord{
		ID:       c.ID,
		Kind:     c.Kind,
		Rarity:   c.Rarity,
		Name:     c.Name,
		Emoji:    c.Emoji,
		Service:  service,
		Duration: duration,
		Effects: CapsuleEffects{
			HealthBonus:          c.HealthBonus,
			HungerBonus:          c.HungerBonus,
			HappinessBonus:       c.HappinessBonus,
			EnergyBonus:          c.EnergyBonus,
			ExperienceMultiplier: multiplier,
		},
		GrantedAt: now,
	}
}
