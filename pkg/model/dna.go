package model

import (
	"github.com/m-mizutani/goerr/v2"
)

type Species string

const (
	SpeciesJaguar      Species = "jaguar"
	SpeciesEagle       Species = "eagle"
	SpeciesSerpent     Species = "serpent"
	SpeciesDeer        Species = "deer"
	SpeciesHummingbird Species = "hummingbird"
)

// AllSpecies lists every valid species base in a stable order
var AllSpecies = []Species{
	SpeciesJaguar,
	SpeciesEagle,
	SpeciesSerpent,
	SpeciesDeer,
	SpeciesHummingbird,
}

// Validate checks if the species is one of the known species bases
func (s Species) Validate() error {
	switch s {
	case SpeciesJaguar, SpeciesEagle, SpeciesSerpent, SpeciesDeer, SpeciesHummingbird:
		return nil
	default:
		return goerr.Wrap(ErrValidation, "invalid species", goerr.V("species", s))
	}
}

type Texture string

const (
	TextureFur      Texture = "fur"
	TextureScales   Texture = "scales"
	TextureFeathers Texture = "feathers"
)

type Color string

type Pattern string

type HeadGene struct {
	Shape string `json:"shape" firestore:"shape" yaml:"shape"`
	Eyes  string `json:"eyes" firestore:"eyes" yaml:"eyes"`
	Crest string `json:"crest" firestore:"crest" yaml:"crest"`
}

type BodyGene struct {
	Build   string  `json:"build" firestore:"build" yaml:"build"`
	Size    string  `json:"size" firestore:"size" yaml:"size"`
	Texture Texture `json:"texture" firestore:"texture" yaml:"texture"`
}

type LimbGene struct {
	Count int    `json:"count" firestore:"count" yaml:"count"`
	Kind  string `json:"kind" firestore:"kind" yaml:"kind"`
}

type TailGene struct {
	Present bool   `json:"present" firestore:"present" yaml:"present"`
	Kind    string `json:"kind" firestore:"kind" yaml:"kind"`
}

type WingGene struct {
	Present bool   `json:"present" firestore:"present" yaml:"present"`
	Kind    string `json:"kind" firestore:"kind" yaml:"kind"`
}

type ColorPalette struct {
	Primary    Color   `json:"primary" firestore:"primary" yaml:"primary"`
	Secondary  Color   `json:"secondary" firestore:"secondary" yaml:"secondary"`
	Tertiary   Color   `json:"tertiary" firestore:"tertiary" yaml:"tertiary"`
	Accent     Color   `json:"accent" firestore:"accent" yaml:"accent"`
	Brightness float64 `json:"brightness" firestore:"brightness" yaml:"brightness"`
}

// Colors returns the four palette colors in primary, secondary, tertiary,
// accent order
func (p ColorPalette) Colors() []Color {
	return []Color{p.Primary, p.Secondary, p.Tertiary, p.Accent}
}

// DNA is the immutable trait bundle generated when a companion is born
type DNA struct {
	SpeciesBase       Species      `json:"speciesBase" firestore:"speciesBase" yaml:"speciesBase"`
	HeadGene          HeadGene     `json:"headGene" firestore:"headGene" yaml:"headGene"`
	BodyGene          BodyGene     `json:"bodyGene" firestore:"bodyGene" yaml:"bodyGene"`
	LimbGene          LimbGene     `json:"limbGene" firestore:"limbGene" yaml:"limbGene"`
	TailGene          TailGene     `json:"tailGene" firestore:"tailGene" yaml:"tailGene"`
	WingGene          WingGene     `json:"wingGene" firestore:"wingGene" yaml:"wingGene"`
	ColorPalette      ColorPalette `json:"colorPalette" firestore:"colorPalette" yaml:"colorPalette"`
	GeometricPatterns []Pattern    `json:"geometricPatterns" firestore:"geometricPatterns" yaml:"geometricPatterns"`
}

// Validate checks structural properties every DNA must satisfy, whether it
// was synthesized here or supplied by a client.
func (d *DNA) Validate() error {
	if err := d.SpeciesBase.Validate(); err != nil {
		return err
	}

	colors := d.ColorPalette.Colors()
	seen := make(map[Color]bool, len(colors))
	for _, c := range colors {
		if c == "" {
			return goerr.Wrap(ErrValidation, "palette color is empty")
		}
		if seen[c] {
			return goerr.Wrap(ErrValidation, "palette colors must be distinct", goerr.V("color", c))
		}
		seen[c] = true
	}
	if b := d.ColorPalette.Brightness; b < 0.6 || b > 1.0 {
		return goerr.Wrap(ErrValidation, "brightness out of range", goerr.V("brightness", b))
	}

	if n := len(d.GeometricPatterns); n < 2 || n > 4 {
		return goerr.Wrap(ErrValidation, "pattern count out of range", goerr.V("count", n))
	}
	patterns := make(map[Pattern]bool, len(d.GeometricPatterns))
	for _, p := range d.GeometricPatterns {
		if patterns[p] {
			return goerr.Wrap(ErrValidation, "patterns must be distinct", goerr.V("pattern", p))
		}
		patterns[p] = true
	}

	if d.LimbGene.Count < 0 {
		return goerr.Wrap(ErrValidation, "limb count must not be negative", goerr.V("count", d.LimbGene.Count))
	}

	return nil
}

// Equal reports whether two DNA bundles carry identical traits
func (d DNA) Equal(other DNA) bool {
	if d.SpeciesBase != other.SpeciesBase ||
		d.HeadGene != other.HeadGene ||
		d.BodyGene != other.BodyGene ||
		d.LimbGene != other.LimbGene ||
		d.TailGene != other.TailGene ||
		d.WingGene != other.WingGene ||
		d.ColorPalette != other.ColorPalette ||
		len(d.GeometricPatterns) != len(other.GeometricPatterns) {
		return false
	}
	for i := range d.GeometricPatterns {
		if d.GeometricPatterns[i] != other.GeometricPatterns[i] {
			return false
		}
	}
	return true
}

func (d DNA) Clone() DNA {
	d.GeometricPatterns = append([]Pattern(nil), d.GeometricPatterns...)
	return d
}
