// Package dna generates the immutable trait bundle of a companion. Generation
// is a pure function of the species and the random source handed in, so a
// seeded source reproduces the same DNA.
package dna

import (
	"math/rand/v2"

	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// NewSource returns a deterministic random source for the given seed
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Synthesize generates DNA for the species. Species-specific constraints
// (limb count, forced wings, tail presence, texture) override random
// selection.
func Synthesize(species model.Species, rng *rand.Rand) (*model.DNA, error) {
	if err := species.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, goerr.New("random source is required")
	}

	table := speciesGenes[species]

	d := &model.DNA{
		SpeciesBase: species,
		HeadGene: model.HeadGene{
			Shape: pick(rng, table.headShapes, genericGenes.headShapes),
			Eyes:  pick(rng, table.eyes, genericGenes.eyes),
			Crest: pick(rng, table.crests, genericGenes.crests),
		},
		BodyGene: model.BodyGene{
			Build:   pick(rng, table.builds, genericGenes.builds),
			Size:    pick(rng, table.sizes, genericGenes.sizes),
			Texture: textureOf(species),
		},
		LimbGene: synthesizeLimbs(species, rng, table),
		TailGene: synthesizeTail(species, rng, table),
		WingGene: synthesizeWings(species, rng, table),
	}

	d.ColorPalette = synthesizePalette(rng)
	d.GeometricPatterns = synthesizePatterns(rng)

	return d, nil
}

func pick(rng *rand.Rand, specific, fallback []string) string {
	candidates := specific
	if len(candidates) == 0 {
		candidates = fallback
	}
	return candidates[rng.IntN(len(candidates))]
}

func textureOf(species model.Species) model.Texture {
	if t, ok := textures[species]; ok {
		return t
	}
	return model.TextureFur
}

func limbCountOf(species model.Species) int {
	if n, ok := limbCounts[species]; ok {
		return n
	}
	return defaultLimbCount
}

func synthesizeLimbs(species model.Species, rng *rand.Rand, table geneTable) model.LimbGene {
	count := limbCountOf(species)
	if count == 0 {
		return model.LimbGene{Count: 0, Kind: absentTrait}
	}
	return model.LimbGene{
		Count: count,
		Kind:  pick(rng, table.limbKinds, genericGenes.limbKinds),
	}
}

func synthesizeTail(species model.Species, rng *rand.Rand, table geneTable) model.TailGene {
	present := true
	if species == model.SpeciesHummingbird {
		present = rng.Float64() < tailChance
	}
	if !present {
		return model.TailGene{Present: false, Kind: absentTrait}
	}
	return model.TailGene{
		Present: true,
		Kind:    pick(rng, table.tailKinds, genericGenes.tailKinds),
	}
}

func synthesizeWings(species model.Species, rng *rand.Rand, table geneTable) model.WingGene {
	var present bool
	switch species {
	case model.SpeciesEagle, model.SpeciesHummingbird:
		present = true
	default:
		present = rng.Float64() < wingChance
	}
	if !present {
		return model.WingGene{Present: false, Kind: absentTrait}
	}
	return model.WingGene{
		Present: true,
		Kind:    pick(rng, table.wingKinds, genericGenes.wingKinds),
	}
}

func synthesizePalette(rng *rand.Rand) model.ColorPalette {
	colors := ColorCatalog()
	rng.Shuffle(len(colors), func(i, j int) {
		colors[i], colors[j] = colors[j], colors[i]
	})

	return model.ColorPalette{
		Primary:    colors[0],
		Secondary:  colors[1],
		Tertiary:   colors[2],
		Accent:     colors[3],
		Brightness: minBrightness + rng.Float64()*(maxBrightness-minBrightness),
	}
}

func synthesizePatterns(rng *rand.Rand) []model.Pattern {
	patterns := PatternCatalog()
	rng.Shuffle(len(patterns), func(i, j int) {
		patterns[i], patterns[j] = patterns[j], patterns[i]
	})

	n := minPatterns + rng.IntN(maxPatterns-minPatterns+1)
	return patterns[:n]
}
