package lonja

import (
	"errors"
	"fmt"
)

// ErrUnknownContentType is returned for collection names outside the
// closed set.
var ErrUnknownContentType = errors.New("unknown content type")

// ContentType discriminates the three content collections. The set is
// closed; anything else is rejected at the API boundary.
type ContentType string

const (
	TypeRecipe        ContentType = "recipe"
	TypeSeaNote       ContentType = "sea-note"
	TypeHealthArticle ContentType = "health-article"
)

// AllContentTypes is the sentinel accepted by listing queries to mean
// "every collection".
const AllContentTypes = "all"

// CollectionOrder is the fixed order collections are concatenated in
// when merged into one sequence.
var CollectionOrder = []ContentType{TypeRecipe, TypeSeaNote, TypeHealthArticle}

// ParseContentType validates a collection name coming off the wire. The
// site is bilingual, so the Spanish collection names used by the import
// scripts and older clients are accepted as aliases.
func ParseContentType(s string) (ContentType, error) {
	switch ContentType(s) {
	case TypeRecipe, TypeSeaNote, TypeHealthArticle:
		return ContentType(s), nil
	}
	switch s {
	case "recetas":
		return TypeRecipe, nil
	case "notas-del-mar", "del-mar":
		return TypeSeaNote, nil
	case "salud":
		return TypeHealthArticle, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownContentType, s)
}

// SpeciesRef references a species featured by an entry. Imported data
// carries two shapes: a bare name, or a structured record pointing at a
// stock product. Exactly one of Name / StockProduct is set.
type SpeciesRef struct {
	Name          string   `json:"name,omitempty"`
	StockProduct  string   `json:"stockProduct,omitempty"`
	Category      string   `json:"category,omitempty"`
	Subcategory   string   `json:"subcategory,omitempty"`
	Presentations []string `json:"presentations,omitempty"`
}

// Canonical returns the species name used for filtering and the filter
// vocabulary: the bare name, or the stock product name for the
// structured form.
func (r SpeciesRef) Canonical() string {
	if r.StockProduct != "" {
		return r.StockProduct
	}
	return r.Name
}

// ContentImage is one gallery image attached to an entry.
type ContentImage struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// Source is the book attribution for imported content.
type Source struct {
	Book    string `json:"book,omitempty"`
	Authors string `json:"authors,omitempty"`
	Page    string `json:"page,omitempty"`
}

// ContentEntry is the shared shape of the three content collections.
// Collection-specific fields (CookingMethod and friends for recipes,
// Category for sea-notes and health articles) are empty elsewhere.
type ContentEntry struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Slug            string         `json:"slug"`
	Content         string         `json:"content"`
	Summary         string         `json:"summary,omitempty"`
	QualityScore    float64        `json:"quality_score"`
	FeaturedSpecies []SpeciesRef   `json:"featured_species,omitempty"`
	Images          []ContentImage `json:"images,omitempty"`
	ImageURL        string         `json:"image_url,omitempty"`
	Source          Source         `json:"source"`
	Published       bool           `json:"published"`
	CreatedAt       string         `json:"created_at,omitempty"`
	UpdatedAt       string         `json:"updated_at,omitempty"`

	// Recipe-only.
	CookingMethod   string `json:"cooking_method,omitempty"`
	PreparationTime string `json:"preparation_time,omitempty"`
	Difficulty      string `json:"difficulty,omitempty"`

	// Sea-note / health-article only.
	Category string `json:"category,omitempty"`
}

// ContentWithType tags an entry with its originating collection. It is
// the unit of the merged sequence used by the homepage grid and the
// admin table.
type ContentWithType struct {
	ContentEntry
	Type ContentType `json:"type"`
}

// FieldUpdates is the full editable field set sent by the CMS editor on
// save, keyed externally by (id, content type).
type FieldUpdates struct {
	Title           string         `json:"title"`
	Slug            string         `json:"slug"`
	Content         string         `json:"content"`
	Summary         string         `json:"summary"`
	QualityScore    float64        `json:"quality_score"`
	FeaturedSpecies []SpeciesRef   `json:"featured_species"`
	Images          []ContentImage `json:"images"`
	ImageURL        string         `json:"image_url"`
	Source          Source         `json:"source"`
	Published       bool           `json:"published"`
	CookingMethod   string         `json:"cooking_method"`
	PreparationTime string         `json:"preparation_time"`
	Difficulty      string         `json:"difficulty"`
	Category        string         `json:"category"`
}

// Image is the metadata row for an uploaded admin image.
type Image struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Size         int    `json:"size"`
	UploadedAt   string `json:"uploaded_at"`
}
