package lonja

import "strings"

// FilterAll is the selector value that disables a predicate.
const FilterAll = "all"

// FilterEntries applies the species and cooking-method selectors to a
// merged sequence. The two predicates AND together and commute; an
// unmatched filter yields an empty result, never an error.
//
// Species: keep entries whose featured species include one whose
// canonical name equals the selector, case-insensitively.
//
// Cooking method: only recipes carry a cooking method, so any specific
// method selector excludes non-recipe entries outright (field absent
// means excluded, not "no match"). Matching recipes contain the
// lowercased selector as a substring of their lowercased method.
func FilterEntries(entries []ContentWithType, species, method string) []ContentWithType {
	out := entries
	if species != FilterAll && species != "" {
		out = filterBySpecies(out, species)
	}
	if method != FilterAll && method != "" {
		out = filterByCookingMethod(out, method)
	}
	return out
}

func filterBySpecies(entries []ContentWithType, species string) []ContentWithType {
	want := strings.ToLower(strings.TrimSpace(species))
	var out []ContentWithType
	for _, e := range entries {
		for _, ref := range e.FeaturedSpecies {
			if strings.ToLower(ref.Canonical()) == want {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

func filterByCookingMethod(entries []ContentWithType, method string) []ContentWithType {
	want := strings.ToLower(strings.TrimSpace(method))
	var out []ContentWithType
	for _, e := range entries {
		if e.Type != TypeRecipe || e.CookingMethod == "" {
			continue
		}
		if strings.Contains(strings.ToLower(e.CookingMethod), want) {
			out = append(out, e)
		}
	}
	return out
}
