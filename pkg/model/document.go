package model

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
)

// fieldRule resolves one canonical document field from an ordered list of
// candidate source keys. The first candidate holding a non-nil value wins.
type fieldRule struct {
	name       string
	candidates []string
	nested     []fieldRule
	list       bool
	strict     bool
}

func field(name string, legacy ...string) fieldRule {
	return fieldRule{name: name, candidates: append([]string{name}, legacy...)}
}

func (r fieldRule) with(nested ...fieldRule) fieldRule {
	r.nested = nested
	return r
}

// only is like with, but keys not named by a nested rule are rejected
func (r fieldRule) only(nested ...fieldRule) fieldRule {
	r.nested = nested
	r.strict = true
	return r
}

func (r fieldRule) each(nested ...fieldRule) fieldRule {
	r.nested = nested
	r.list = true
	return r
}

// companionRules lists the field names accepted for a client supplied
// companion document. Canonical names come first, then the names used by
// earlier clients.
var companionRules = []fieldRule{
	field("id"),
	field("ownerId", "matricula"),
	field("displayName", "nombre", "name"),
	field("dna", "adn").with(
		field("speciesBase", "especieBase", "species"),
		field("headGene", "genCabeza").only(field("shape"), field("eyes"), field("crest")),
		field("bodyGene", "genCuerpo").only(field("build"), field("size"), field("texture")),
		field("limbGene", "genExtremidades").only(field("count"), field("kind")),
		field("tailGene", "genCola").only(field("present"), field("kind")),
		field("wingGene", "genAlas").only(field("present"), field("kind")),
		field("colorPalette", "paletaColores").only(
			field("primary", "primario"),
			field("secondary", "secundario"),
			field("tertiary", "terciario"),
			field("accent", "acento"),
			field("brightness", "brillo"),
		),
		field("geometricPatterns", "patronesGeometricos"),
	),
	field("state", "estado").with(
		field("hunger", "hambre"),
		field("happiness", "felicidad"),
		field("health", "salud"),
		field("energy", "energia"),
		field("lastFed", "ultimaAlimentacion"),
		field("lastInteracted", "ultimaInteraccion"),
		field("lastCared", "ultimoCuidado"),
		field("consecutiveCareDays", "diasConsecutivosCuidado"),
	),
	field("level", "nivelEvolucion", "nivel"),
	field("experiencePoints", "puntosExperiencia", "experiencia"),
	field("evolutionHistory", "historialEvolucion").each(
		field("level", "nivel"),
		field("timestamp", "fecha"),
		field("description", "descripcion"),
	),
	field("createdAt", "fechaCreacion"),
	field("updatedAt", "fechaActualizacion"),
}

var capsuleRules = []fieldRule{
	field("id"),
	field("name", "nombre"),
	field("kind", "tipo"),
	field("rarity", "rareza"),
	field("emoji"),
	field("description", "descripcion"),
	field("duration", "duracion"),
	field("healthBonus", "bonosSalud"),
	field("hungerBonus", "bonosHambre"),
	field("happinessBonus", "bonosFelicidad"),
	field("energyBonus", "bonosEnergia"),
	field("experienceMultiplier", "multiplicadorExperiencia"),
}

// DecodeDocument converts a loosely typed, client supplied document into a
// Companion. Keys not named by any rule are kept as they are, so nested
// gene objects already in canonical form pass through untouched.
func DecodeDocument(doc map[string]any) (*Companion, error) {
	var c Companion
	if err := decode(doc, companionRules, &c, "companion"); err != nil {
		return nil, err
	}
	return &c, nil
}

// DecodePatch converts a partial companion document into a Patch. Field
// names follow the same rules as DecodeDocument.
func DecodePatch(doc map[string]any) (*Patch, error) {
	var p Patch
	if err := decode(doc, companionRules, &p, "patch"); err != nil {
		return nil, err
	}
	return &p, nil
}

// DecodeCapsule converts a capsule descriptor sent by a health service
func DecodeCapsule(doc map[string]any) (*Capsule, error) {
	var c Capsule
	if err := decode(doc, capsuleRules, &c, "capsule"); err != nil {
		return nil, err
	}
	return &c, nil
}

func decode(doc map[string]any, rules []fieldRule, dst any, kind string) error {
	if doc == nil {
		return goerr.Wrap(ErrValidation, "document is empty", goerr.V("kind", kind))
	}

	normalized, err := normalize(doc, rules, false)
	if err != nil {
		return goerr.Wrap(err, "invalid document", goerr.V("kind", kind))
	}

	raw, err := json.Marshal(normalized)
	if err != nil {
		return goerr.Wrap(ErrValidation, "failed to encode document",
			goerr.V("kind", kind),
			goerr.V("cause", err.Error()),
		)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return goerr.Wrap(ErrValidation, "malformed document",
			goerr.V("kind", kind),
			goerr.V("cause", err.Error()),
		)
	}
	return nil
}

func normalize(src map[string]any, rules []fieldRule, strict bool) (map[string]any, error) {
	claimed := make(map[string]bool)
	for _, r := range rules {
		for _, c := range r.candidates {
			claimed[c] = true
		}
	}

	dst := make(map[string]any, len(src))
	for k, v := range src {
		if claimed[k] {
			continue
		}
		if strict {
			return nil, goerr.Wrap(ErrValidation, "unknown field", goerr.V("field", k))
		}
		dst[k] = v
	}

	for _, r := range rules {
		v, ok := r.resolve(src)
		if !ok {
			continue
		}
		nv, err := r.normalizeValue(v)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid field", goerr.V("field", r.name))
		}
		dst[r.name] = nv
	}
	return dst, nil
}

func (r fieldRule) resolve(src map[string]any) (any, bool) {
	for _, c := range r.candidates {
		if v, ok := src[c]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (r fieldRule) normalizeValue(v any) (any, error) {
	if len(r.nested) == 0 {
		return v, nil
	}

	if !r.list {
		if m, ok := v.(map[string]any); ok {
			return normalize(m, r.nested, r.strict)
		}
		return v, nil
	}

	items, ok := v.([]any)
	if !ok {
		return v, nil
	}
	out := make([]any, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			out[i] = item
			continue
		}
		n, err := normalize(m, r.nested, r.strict)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
