package model

// Patch is a partial update of a companion. Nil fields are left as they are.
type Patch struct {
	DisplayName      *string          `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	DNA              *DNA             `json:"dna,omitempty" yaml:"dna,omitempty"`
	State            *StatePatch      `json:"state,omitempty" yaml:"state,omitempty"`
	Level            *int             `json:"level,omitempty" yaml:"level,omitempty"`
	ExperiencePoints *int             `json:"experiencePoints,omitempty" yaml:"experiencePoints,omitempty"`
	EvolutionHistory []EvolutionEntry `json:"evolutionHistory,omitempty" yaml:"evolutionHistory,omitempty"`
}

type StatePatch struct {
	Hunger              *int `json:"hunger,omitempty" yaml:"hunger,omitempty"`
	Happiness           *int `json:"happiness,omitempty" yaml:"happiness,omitempty"`
	Health              *int `json:"health,omitempty" yaml:"health,omitempty"`
	Energy              *int `json:"energy,omitempty" yaml:"energy,omitempty"`
	ConsecutiveCareDays *int `json:"consecutiveCareDays,omitempty" yaml:"consecutiveCareDays,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p *Patch) IsEmpty() bool {
	return p.DisplayName == nil &&
		p.DNA == nil &&
		p.State == nil &&
		p.Level == nil &&
		p.ExperiencePoints == nil &&
		p.EvolutionHistory == nil
}
