package lonja

import "errors"

// EditorState is the lifecycle state of the admin editor.
type EditorState int

const (
	// StateIdle means no record is loaded.
	StateIdle EditorState = iota
	// StateEditing means one record is loaded into a mutable draft.
	StateEditing
	// StateSaving means a write is in flight.
	StateSaving
)

// ErrNoDraft is returned by draft mutations while no record is loaded.
var ErrNoDraft = errors.New("no draft loaded")

// ContentWriter is the slice of the store the editor needs. Kept small
// so tests can stand in a failing writer.
type ContentWriter interface {
	Update(id string, ct ContentType, u FieldUpdates) error
	Delete(id string, ct ContentType) error
}

// Draft is the editable snapshot of one record. The draft is treated as
// an immutable value: every mutation produces fresh nested slices, never
// in-place element writes, so change detection and aliasing stay sound
// when several UI fragments hold the same lists.
type Draft struct {
	ID   string
	Type ContentType

	Title           string
	Slug            string
	Content         string
	Summary         string
	QualityScore    float64
	FeaturedSpecies []SpeciesRef
	Images          []ContentImage
	ImageURL        string
	Source          Source
	Published       bool
	CookingMethod   string
	PreparationTime string
	Difficulty      string
	Category        string

	// ImagePreview is the denormalized primary-image URL shown next to
	// the form while editing.
	ImagePreview string
}

// Editor drives the admin edit/save/delete lifecycle for a single
// content record: Idle -> Editing -> Saving -> Idle on success, or back
// to Editing with the draft intact on failure. Delete runs straight
// from the list view with no intermediate Editing state.
type Editor struct {
	store ContentWriter
	state EditorState
	draft Draft

	// slugManual is set once the admin edits the slug directly; after
	// that, title edits stop re-deriving it.
	slugManual bool
}

// NewEditor returns an idle editor writing through w.
func NewEditor(w ContentWriter) *Editor {
	return &Editor{store: w, state: StateIdle}
}

// State reports the current lifecycle state.
func (ed *Editor) State() EditorState { return ed.state }

// Draft returns the current draft value.
func (ed *Editor) Draft() Draft { return ed.draft }

// StartEdit snapshots record into an editable draft and moves to
// Editing. Nested slices are copied so the draft never aliases the
// listing row it was loaded from.
func (ed *Editor) StartEdit(record ContentWithType) {
	preview := record.ImageURL
	if preview == "" && len(record.Images) > 0 {
		preview = record.Images[0].URL
	}
	ed.draft = Draft{
		ID:              record.ID,
		Type:            record.Type,
		Title:           record.Title,
		Slug:            record.Slug,
		Content:         record.Content,
		Summary:         record.Summary,
		QualityScore:    record.QualityScore,
		FeaturedSpecies: append([]SpeciesRef(nil), record.FeaturedSpecies...),
		Images:          append([]ContentImage(nil), record.Images...),
		ImageURL:        record.ImageURL,
		Source:          record.Source,
		Published:       record.Published,
		CookingMethod:   record.CookingMethod,
		PreparationTime: record.PreparationTime,
		Difficulty:      record.Difficulty,
		Category:        record.Category,
		ImagePreview:    preview,
	}
	ed.slugManual = false
	ed.state = StateEditing
}

// Cancel discards the draft and returns to Idle.
func (ed *Editor) Cancel() {
	ed.draft = Draft{}
	ed.state = StateIdle
}

func (ed *Editor) editing() error {
	if ed.state != StateEditing {
		return ErrNoDraft
	}
	return nil
}

// SetTitle replaces the draft title and re-derives the slug from it,
// unless the admin has manually overridden the slug.
func (ed *Editor) SetTitle(title string) error {
	if err := ed.editing(); err != nil {
		return err
	}
	ed.draft.Title = title
	if !ed.slugManual {
		ed.draft.Slug = Slugify(title)
	}
	return nil
}

// SetSlug replaces the slug directly and stops future title edits from
// re-deriving it.
func (ed *Editor) SetSlug(slug string) error {
	if err := ed.editing(); err != nil {
		return err
	}
	ed.draft.Slug = slug
	ed.slugManual = true
	return nil
}

// SetContent replaces the body text.
func (ed *Editor) SetContent(content string) error {
	if err := ed.editing(); err != nil {
		return err
	}
	ed.draft.Content = content
	return nil
}

// SetSummary replaces the summary.
func (ed *Editor) SetSummary(summary string) error {
	if err := ed.editing(); err != nil {
		return err
	}
	ed.draft.Summary = summary
	return nil
}

// SetQualityScore replaces the quality rank.
func (ed *Editor) SetQualityScore(score float64) error {
	if err := ed.editing(); err != nil {
		return err
	}
	ed.draft.QualityScore = score
	return nil
}

// SetPublished flips the public-visibility gate.
func (ed *Editor) SetPublished(published bool) error {
	if err := ed.editing(); err != nil {
		return err
	}
	ed.draft.Published = published
	return nil
}

// SetCategory replaces the sea-note / health-article category.
func (ed *Editor) SetCategory(category string) error {
	if err := ed.editing(); err != nil {
		return err
	}
	ed.draft.Category = category
	return nil
}

// SetCookingMethod replaces the recipe cooking method.
func (ed *Editor) SetCookingMethod(method string) error {
	if err := ed.editing(); err != nil {
		return err
	}
	ed.draft.CookingMethod = method
	return nil
}

// SetPreparationTime replaces the recipe preparation time.
func (ed *Editor) SetPreparationTime(prep string) error {
	if err := ed.editing(); err != nil {
		return err
	}
	ed.draft.PreparationTime = prep
	return nil
}

// SetDifficulty replaces the recipe difficulty.
func (ed *Editor) SetDifficulty(d string) error {
	if err := ed.editing(); err != nil {
		return err
	}
	ed.draft.Difficulty = d
	return nil
}

// SetImageURL replaces the primary image and its preview.
func (ed *Editor) SetImageURL(url string) error {
	if err := ed.editing(); err != nil {
		return err
	}
	ed.draft.ImageURL = url
	ed.draft.ImagePreview = url
	return nil
}

// SetSource replaces the attribution record.
func (ed *Editor) SetSource(src Source) error {
	if err := ed.editing(); err != nil {
		return err
	}
	ed.draft.Source = src
	return nil
}

// SetSpecies replaces the featured-species list with a copy of refs.
func (ed *Editor) SetSpecies(refs []SpeciesRef) error {
	if err := ed.editing(); err != nil {
		return err
	}
	ed.draft.FeaturedSpecies = append([]SpeciesRef(nil), refs...)
	return nil
}

// SetImageCaption replaces the caption of one gallery image. The whole
// slice is rebuilt rather than writing through to the element.
func (ed *Editor) SetImageCaption(i int, caption string) error {
	if err := ed.editing(); err != nil {
		return err
	}
	if i < 0 || i >= len(ed.draft.Images) {
		return errors.New("image index out of range")
	}
	images := append([]ContentImage(nil), ed.draft.Images...)
	images[i].Caption = caption
	ed.draft.Images = images
	return nil
}

// AddImage appends one gallery image, rebuilding the slice.
func (ed *Editor) AddImage(img ContentImage) error {
	if err := ed.editing(); err != nil {
		return err
	}
	images := append([]ContentImage(nil), ed.draft.Images...)
	ed.draft.Images = append(images, img)
	return nil
}

// RemoveImage drops the gallery image at i, rebuilding the slice.
func (ed *Editor) RemoveImage(i int) error {
	if err := ed.editing(); err != nil {
		return err
	}
	if i < 0 || i >= len(ed.draft.Images) {
		return errors.New("image index out of range")
	}
	images := make([]ContentImage, 0, len(ed.draft.Images)-1)
	images = append(images, ed.draft.Images[:i]...)
	images = append(images, ed.draft.Images[i+1:]...)
	ed.draft.Images = images
	return nil
}

// Save sends the full editable field set as an update keyed by
// (id, collection). On success the draft is discarded and the editor
// returns to Idle; the caller re-fetches the listing. On failure the
// draft survives untouched and the editor returns to Editing so the
// admin can retry manually. There is no automatic retry.
func (ed *Editor) Save() error {
	if err := ed.editing(); err != nil {
		return err
	}
	ed.state = StateSaving
	d := ed.draft
	err := ed.store.Update(d.ID, d.Type, FieldUpdates{
		Title:           d.Title,
		Slug:            d.Slug,
		Content:         d.Content,
		Summary:         d.Summary,
		QualityScore:    d.QualityScore,
		FeaturedSpecies: d.FeaturedSpecies,
		Images:          d.Images,
		ImageURL:        d.ImageURL,
		Source:          d.Source,
		Published:       d.Published,
		CookingMethod:   d.CookingMethod,
		PreparationTime: d.PreparationTime,
		Difficulty:      d.Difficulty,
		Category:        d.Category,
	})
	if err != nil {
		ed.state = StateEditing
		return err
	}
	ed.draft = Draft{}
	ed.state = StateIdle
	return nil
}

// DeleteRecord removes an entry straight from the list view; no draft
// is involved. A failed delete leaves the list unchanged and the error
// is surfaced for a manual retry.
func (ed *Editor) DeleteRecord(id string, ct ContentType) error {
	return ed.store.Delete(id, ct)
}
