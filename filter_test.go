package lonja

import (
	"reflect"
	"testing"
)

func recipeEntry(slug string, species []SpeciesRef, method string) ContentWithType {
	return ContentWithType{
		ContentEntry: ContentEntry{Slug: slug, Title: slug, FeaturedSpecies: species, CookingMethod: method},
		Type:         TypeRecipe,
	}
}

func noteEntry(slug string, species []SpeciesRef) ContentWithType {
	return ContentWithType{
		ContentEntry: ContentEntry{Slug: slug, Title: slug, FeaturedSpecies: species},
		Type:         TypeSeaNote,
	}
}

func healthEntry(slug string, species []SpeciesRef) ContentWithType {
	return ContentWithType{
		ContentEntry: ContentEntry{Slug: slug, Title: slug, FeaturedSpecies: species},
		Type:         TypeHealthArticle,
	}
}

func sampleEntries() []ContentWithType {
	return []ContentWithType{
		recipeEntry("merluza-plancha", []SpeciesRef{{Name: "Merluza"}}, "a la plancha"),
		recipeEntry("lubina-horno", []SpeciesRef{{StockProduct: "Lubina", Category: "Pescado"}}, "al horno"),
		recipeEntry("merluza-horno", []SpeciesRef{{Name: "merluza"}}, "Al Horno"),
		noteEntry("nota-merluza", []SpeciesRef{{Name: "Merluza"}}),
		healthEntry("salud-omega", []SpeciesRef{{Name: "Sardina"}}),
	}
}

func TestMergeCollectionsOrder(t *testing.T) {
	recipes := []ContentEntry{{Slug: "r1"}, {Slug: "r2"}}
	notes := []ContentEntry{{Slug: "n1"}}
	health := []ContentEntry{{Slug: "h1"}}

	merged := MergeCollections(recipes, notes, health)
	wantSlugs := []string{"r1", "r2", "n1", "h1"}
	wantTypes := []ContentType{TypeRecipe, TypeRecipe, TypeSeaNote, TypeHealthArticle}
	if len(merged) != 4 {
		t.Fatalf("merged count = %d, want 4", len(merged))
	}
	for i := range merged {
		if merged[i].Slug != wantSlugs[i] {
			t.Errorf("merged[%d].Slug = %q, want %q", i, merged[i].Slug, wantSlugs[i])
		}
		if merged[i].Type != wantTypes[i] {
			t.Errorf("merged[%d].Type = %s, want %s", i, merged[i].Type, wantTypes[i])
		}
	}
}

func TestSpeciesVocabulary(t *testing.T) {
	vocab := SpeciesVocabulary(sampleEntries())
	// "Merluza"/"merluza" fold to one entry; first spelling wins.
	want := []string{"Lubina", "Merluza", "Sardina"}
	if !reflect.DeepEqual(vocab, want) {
		t.Errorf("SpeciesVocabulary = %v, want %v", vocab, want)
	}
}

func TestSpeciesVocabularyEmpty(t *testing.T) {
	if got := SpeciesVocabulary(nil); len(got) != 0 {
		t.Errorf("vocabulary of nothing = %v, want empty", got)
	}
}

func TestFilterBySpecies(t *testing.T) {
	entries := sampleEntries()
	got := FilterEntries(entries, "merluza", FilterAll)
	if len(got) != 3 {
		t.Fatalf("species filter count = %d, want 3", len(got))
	}
	for _, e := range got {
		found := false
		for _, ref := range e.FeaturedSpecies {
			if ref.Canonical() == "Merluza" || ref.Canonical() == "merluza" {
				found = true
			}
		}
		if !found {
			t.Errorf("entry %q does not feature merluza", e.Slug)
		}
	}

	// Structured refs match on their stock product name.
	got = FilterEntries(entries, "LUBINA", FilterAll)
	if len(got) != 1 || got[0].Slug != "lubina-horno" {
		t.Errorf("FilterEntries(LUBINA) = %v", got)
	}

	// Unmatched filter yields empty, not an error.
	if got := FilterEntries(entries, "atun", FilterAll); len(got) != 0 {
		t.Errorf("unmatched species should be empty, got %v", got)
	}
}

func TestFilterByCookingMethod(t *testing.T) {
	entries := sampleEntries()

	got := FilterEntries(entries, FilterAll, "horno")
	if len(got) != 2 {
		t.Fatalf("method filter count = %d, want 2", len(got))
	}
	// A specific method excludes every non-recipe entry, even ones that
	// would match the species side: field absent means excluded.
	for _, e := range got {
		if e.Type != TypeRecipe {
			t.Errorf("non-recipe %q survived a cooking-method filter", e.Slug)
		}
	}

	// Substring, case-insensitive.
	got = FilterEntries(entries, FilterAll, "PLANCHA")
	if len(got) != 1 || got[0].Slug != "merluza-plancha" {
		t.Errorf("FilterEntries(PLANCHA) = %v", got)
	}
}

func TestFilterComposition(t *testing.T) {
	entries := sampleEntries()

	combined := FilterEntries(entries, "merluza", "horno")
	staged := FilterEntries(FilterEntries(entries, "merluza", FilterAll), FilterAll, "horno")
	reversed := FilterEntries(FilterEntries(entries, FilterAll, "horno"), "merluza", FilterAll)

	if !reflect.DeepEqual(combined, staged) {
		t.Errorf("combined != species-then-method: %v vs %v", slugs(combined), slugs(staged))
	}
	if !reflect.DeepEqual(combined, reversed) {
		t.Errorf("filters do not commute: %v vs %v", slugs(combined), slugs(reversed))
	}
	if len(combined) != 1 || combined[0].Slug != "merluza-horno" {
		t.Errorf("combined = %v", slugs(combined))
	}
}

func TestFilterAllPassthrough(t *testing.T) {
	entries := sampleEntries()
	got := FilterEntries(entries, FilterAll, FilterAll)
	if !reflect.DeepEqual(got, entries) {
		t.Error("all/all should pass the sequence through unchanged")
	}
}

func slugs(entries []ContentWithType) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Slug
	}
	return out
}
