package dna

import "github.com/edukshare-max/alebrije/pkg/model"

// geneTable holds the candidate values for every categorical trait. A nil
// list in a species table means the generic list applies.
type geneTable struct {
	headShapes []string
	eyes       []string
	crests     []string
	builds     []string
	sizes      []string
	limbKinds  []string
	tailKinds  []string
	wingKinds  []string
}

var genericGenes = geneTable{
	headShapes: []string{"round", "angular", "elongated"},
	eyes:       []string{"almond", "round", "spiral"},
	crests:     []string{"none", "horns", "frill"},
	builds:     []string{"slender", "stocky", "muscular"},
	sizes:      []string{"small", "medium", "large"},
	limbKinds:  []string{"paws", "hooves", "claws"},
	tailKinds:  []string{"long", "curled", "tufted"},
	wingKinds:  []string{"feathered", "membranous", "butterfly"},
}

var speciesGenes = map[model.Species]geneTable{
	model.SpeciesJaguar: {
		headShapes: []string{"feline", "broad"},
		eyes:       []string{"slit", "amber"},
		builds:     []string{"muscular", "sleek"},
		limbKinds:  []string{"paws"},
		tailKinds:  []string{"long", "ringed"},
	},
	model.SpeciesEagle: {
		headShapes: []string{"hooked-beak", "crested"},
		crests:     []string{"plumed", "none"},
		limbKinds:  []string{"talons"},
		tailKinds:  []string{"fan"},
		wingKinds:  []string{"broad", "feathered"},
	},
	model.SpeciesSerpent: {
		headShapes: []string{"diamond", "hooded"},
		eyes:       []string{"slit"},
		builds:     []string{"coiled", "slender"},
		tailKinds:  []string{"rattle", "tapered"},
		wingKinds:  []string{"membranous", "feathered"},
	},
	model.SpeciesDeer: {
		crests:    []string{"antlers", "branched-antlers"},
		limbKinds: []string{"hooves"},
		tailKinds: []string{"short", "tufted"},
	},
	model.SpeciesHummingbird: {
		headShapes: []string{"needle-beak"},
		sizes:      []string{"tiny", "small"},
		limbKinds:  []string{"tiny-talons"},
		tailKinds:  []string{"forked", "fan"},
		wingKinds:  []string{"iridescent", "blur"},
	},
}

// limbCounts fixes the number of limbs per species; absent species get
// defaultLimbCount
var limbCounts = map[model.Species]int{
	model.SpeciesSerpent:     0,
	model.SpeciesEagle:       2,
	model.SpeciesHummingbird: 2,
}

const defaultLimbCount = 4

var textures = map[model.Species]model.Texture{
	model.SpeciesSerpent:     model.TextureScales,
	model.SpeciesEagle:       model.TextureFeathers,
	model.SpeciesHummingbird: model.TextureFeathers,
}

const (
	// absentTrait is the kind recorded for a limb, tail or wing gene the
	// companion does not have
	absentTrait = "none"

	wingChance = 0.4
	tailChance = 0.5

	minBrightness = 0.6
	maxBrightness = 1.0

	minPatterns = 2
	maxPatterns = 4
)

var colorCatalog = []model.Color{
	"magenta",
	"turquoise",
	"marigold",
	"cobalt",
	"lime",
	"coral",
	"violet",
	"tangerine",
	"crimson",
	"jade",
}

var patternCatalog = []model.Pattern{
	"zigzag",
	"dots",
	"spirals",
	"stripes",
	"diamonds",
	"waves",
	"stars",
	"fretwork",
}

// ColorCatalog returns a copy of the fixed palette colors are drawn from
func ColorCatalog() []model.Color {
	return append([]model.Color(nil), colorCatalog...)
}

// PatternCatalog returns a copy of the fixed geometric pattern catalog
func PatternCatalog() []model.Pattern {
	return append([]model.Pattern(nil), patternCatalog...)
}
