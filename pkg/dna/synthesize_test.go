package dna_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/edukshare-max/alebrije/pkg/dna"
	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/m-mizutani/gt"
)

const seeds = 200

func TestSynthesizeSerpent(t *testing.T) {
	for seed := range uint64(seeds) {
		d, err := dna.Synthesize(model.SpeciesSerpent, dna.NewSource(seed))
		gt.NoError(t, err)
		gt.Equal(t, d.LimbGene.Count, 0)
		gt.Equal(t, d.BodyGene.Texture, model.TextureScales)
		gt.True(t, d.TailGene.Present)
	}
}

func TestSynthesizeSpeciesConstraints(t *testing.T) {
	testCases := []struct {
		species     model.Species
		limbs       int
		texture     model.Texture
		forcedWings bool
		forcedTail  bool
	}{
		{model.SpeciesJaguar, 4, model.TextureFur, false, true},
		{model.SpeciesEagle, 2, model.TextureFeathers, true, true},
		{model.SpeciesSerpent, 0, model.TextureScales, false, true},
		{model.SpeciesDeer, 4, model.TextureFur, false, true},
		{model.SpeciesHummingbird, 2, model.TextureFeathers, true, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.species), func(t *testing.T) {
			var withWings, withTail int
			for seed := range uint64(seeds) {
				d, err := dna.Synthesize(tc.species, dna.NewSource(seed))
				gt.NoError(t, err)
				gt.Equal(t, d.SpeciesBase, tc.species)
				gt.Equal(t, d.LimbGene.Count, tc.limbs)
				gt.Equal(t, d.BodyGene.Texture, tc.texture)
				if tc.forcedWings {
					gt.True(t, d.WingGene.Present)
				}
				if tc.forcedTail {
					gt.True(t, d.TailGene.Present)
				}
				if d.WingGene.Present {
					withWings++
				} else {
					gt.Equal(t, d.WingGene.Kind, "none")
				}
				if d.TailGene.Present {
					withTail++
				}
			}

			// Coin flips must land both ways over enough seeds
			if !tc.forcedWings {
				gt.True(t, withWings > 0 && withWings < seeds)
			}
			if !tc.forcedTail {
				gt.True(t, withTail > 0 && withTail < seeds)
			}
		})
	}
}

func TestSynthesizePalette(t *testing.T) {
	catalog := dna.ColorCatalog()
	gt.A(t, catalog).Length(10)

	for _, species := range model.AllSpecies {
		for seed := range uint64(seeds) {
			d, err := dna.Synthesize(species, dna.NewSource(seed))
			gt.NoError(t, err)

			colors := d.ColorPalette.Colors()
			seen := map[model.Color]bool{}
			for _, c := range colors {
				gt.True(t, slices.Contains(catalog, c))
				gt.False(t, seen[c])
				seen[c] = true
			}
			gt.A(t, colors).Length(4)

			b := d.ColorPalette.Brightness
			gt.True(t, b >= 0.6 && b <= 1.0)
		}
	}
}

func TestSynthesizePatterns(t *testing.T) {
	catalog := dna.PatternCatalog()
	gt.A(t, catalog).Length(8)

	counts := map[int]int{}
	for seed := range uint64(seeds) {
		d, err := dna.Synthesize(model.SpeciesDeer, dna.NewSource(seed))
		gt.NoError(t, err)

		n := len(d.GeometricPatterns)
		gt.True(t, n >= 2 && n <= 4)
		counts[n]++

		seen := map[model.Pattern]bool{}
		for _, p := range d.GeometricPatterns {
			gt.True(t, slices.Contains(catalog, p))
			gt.False(t, seen[p])
			seen[p] = true
		}
	}

	gt.Number(t, counts[2]).Greater(0)
	gt.Number(t, counts[3]).Greater(0)
	gt.Number(t, counts[4]).Greater(0)
}

func TestSynthesizeDeterministic(t *testing.T) {
	for _, species := range model.AllSpecies {
		a, err := dna.Synthesize(species, dna.NewSource(42))
		gt.NoError(t, err)
		b, err := dna.Synthesize(species, dna.NewSource(42))
		gt.NoError(t, err)
		gt.True(t, a.Equal(*b))
	}
}

func TestSynthesizeFallbackGenes(t *testing.T) {
	// deer has no species specific head shapes, so the generic list applies
	generic := []string{"round", "angular", "elongated"}
	for seed := range uint64(seeds) {
		d, err := dna.Synthesize(model.SpeciesDeer, dna.NewSource(seed))
		gt.NoError(t, err)
		gt.True(t, slices.Contains(generic, d.HeadGene.Shape))
		gt.True(t, slices.Contains([]string{"antlers", "branched-antlers"}, d.HeadGene.Crest))
		gt.Equal(t, d.LimbGene.Kind, "hooves")
	}
}

func TestSynthesizeValidDNA(t *testing.T) {
	for _, species := range model.AllSpecies {
		d, err := dna.Synthesize(species, dna.NewSource(7))
		gt.NoError(t, err)
		gt.NoError(t, d.Validate())
	}
}

func TestSynthesizeInvalidSpecies(t *testing.T) {
	_, err := dna.Synthesize(model.Species("axolotl"), dna.NewSource(1))
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrValidation))

	_, err = dna.Synthesize(model.Species(""), dna.NewSource(1))
	gt.True(t, errors.Is(err, model.ErrValidation))
}

func TestSynthesizeRequiresSource(t *testing.T) {
	_, err := dna.Synthesize(model.SpeciesJaguar, nil)
	gt.Error(t, err)
}
