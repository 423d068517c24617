package lonja

import (
	"sort"
	"strings"
)

// MergeCollections tags each entry with its collection and concatenates
// the three collections in the fixed order: recipes, sea-notes, health
// articles. No re-sorting happens here; the merged order is the
// concatenation order. Inputs are expected to already be filtered to
// published entries by the store query layer.
func MergeCollections(recipes, seaNotes, health []ContentEntry) []ContentWithType {
	out := make([]ContentWithType, 0, len(recipes)+len(seaNotes)+len(health))
	for _, e := range recipes {
		out = append(out, ContentWithType{ContentEntry: e, Type: TypeRecipe})
	}
	for _, e := range seaNotes {
		out = append(out, ContentWithType{ContentEntry: e, Type: TypeSeaNote})
	}
	for _, e := range health {
		out = append(out, ContentWithType{ContentEntry: e, Type: TypeHealthArticle})
	}
	return out
}

// SpeciesVocabulary derives the distinct species filter vocabulary from
// a merged sequence: every featured species across all entries, reduced
// to its canonical name, deduplicated case-insensitively, sorted
// alphabetically. Pure derivation, no side effects.
func SpeciesVocabulary(entries []ContentWithType) []string {
	seen := make(map[string]string)
	for _, e := range entries {
		for _, ref := range e.FeaturedSpecies {
			name := strings.TrimSpace(ref.Canonical())
			if name == "" {
				continue
			}
			key := strings.ToLower(name)
			if _, ok := seen[key]; !ok {
				seen[key] = name
			}
		}
	}
	out := make([]string, 0, len(seen))
	for _, name := range seen {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
