package normalize

import (
	"strings"

	"legis-catalog-client/internal/entity"
)

// Exact raw values that always mean "no usable category". Checked after
// lower-casing and trimming.
var categoryBlacklist = map[string]bool{
	"":             true,
	"unknown":      true,
	"null":         true,
	"nil":          true,
	"n/a":          true,
	"none":         true,
	"not reviewed": true,
}

// Aliases observed in upstream data mapped onto the canonical vocabulary.
var categoryAliases = map[string]entity.Category{
	"government":     entity.CategoryCivic,
	"municipal":      entity.CategoryCivic,
	"civics":         entity.CategoryCivic,
	"school":         entity.CategoryEducation,
	"schools":        entity.CategoryEducation,
	"infrastructure": entity.CategoryEngineering,
	"construction":   entity.CategoryEngineering,
	"medical":        entity.CategoryHealthcare,
	"health":         entity.CategoryHealthcare,
	"medicine":       entity.CategoryHealthcare,
	"all":            entity.CategoryAllPracticeAreas,
	"general":        entity.CategoryAllPracticeAreas,
}

// NormalizeCategory maps a raw upstream category string onto the fixed
// vocabulary. It is idempotent: canonical values pass through unchanged.
// Anything unrecognized degrades to not-applicable rather than failing,
// because upstream category data is known to be dirty.
func NormalizeCategory(raw string) entity.Category {
	v := strings.ToLower(strings.TrimSpace(raw))

	if categoryBlacklist[v] || isNumericToken(v) {
		return entity.CategoryNotApplicable
	}

	if alias, ok := categoryAliases[v]; ok {
		return alias
	}

	c := entity.Category(v)
	if c.Valid() {
		return c
	}
	return entity.CategoryNotApplicable
}

func isNumericToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
