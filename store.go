package lonja

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested entry does not exist.
var ErrNotFound = sql.ErrNoRows

// Store wraps a SQLite database and provides CRUD operations for the
// three content collections and uploaded image metadata.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the
// data directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent read/write access, set a busy timeout
	// so writers wait instead of returning SQLITE_BUSY immediately.
	// synchronous=NORMAL is safe with WAL and avoids an fsync per
	// transaction; larger cache and mmap reduce disk I/O.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
		PRAGMA mmap_size=268435456;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS entries (
    id TEXT NOT NULL,
    collection TEXT NOT NULL,
    title TEXT NOT NULL,
    slug TEXT NOT NULL,
    content TEXT NOT NULL,
    summary TEXT NOT NULL DEFAULT '',
    quality_score REAL NOT NULL DEFAULT 0,
    featured_species TEXT NOT NULL DEFAULT '[]',
    images TEXT NOT NULL DEFAULT '[]',
    image_url TEXT NOT NULL DEFAULT '',
    source TEXT NOT NULL DEFAULT '{}',
    published INTEGER NOT NULL DEFAULT 0,
    cooking_method TEXT NOT NULL DEFAULT '',
    preparation_time TEXT NOT NULL DEFAULT '',
    difficulty TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    PRIMARY KEY (id, collection),
    UNIQUE (collection, slug)
);
CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	return err
}

// collectionRank orders merged results in the fixed collection order:
// recipes, then sea-notes, then health articles.
const collectionRank = `CASE collection WHEN 'recipe' THEN 0 WHEN 'sea-note' THEN 1 ELSE 2 END`

func scanEntry(sc interface{ Scan(...any) error }) (ContentWithType, error) {
	var e ContentWithType
	var ct string
	var species, images, source string
	var published int
	err := sc.Scan(&e.ID, &ct, &e.Title, &e.Slug, &e.Content, &e.Summary, &e.QualityScore,
		&species, &images, &source, &e.ImageURL, &published,
		&e.CookingMethod, &e.PreparationTime, &e.Difficulty, &e.Category, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return ContentWithType{}, err
	}
	e.Type = ContentType(ct)
	e.Published = published == 1
	if err := json.Unmarshal([]byte(species), &e.FeaturedSpecies); err != nil {
		return ContentWithType{}, fmt.Errorf("decode featured_species: %w", err)
	}
	if err := json.Unmarshal([]byte(images), &e.Images); err != nil {
		return ContentWithType{}, fmt.Errorf("decode images: %w", err)
	}
	if err := json.Unmarshal([]byte(source), &e.Source); err != nil {
		return ContentWithType{}, fmt.Errorf("decode source: %w", err)
	}
	return e, nil
}

const entryColumns = `id, collection, title, slug, content, summary, quality_score,
	featured_species, images, source, image_url, published,
	cooking_method, preparation_time, difficulty, category, created_at, updated_at`

// ListPublished returns the published entries of one collection, newest
// first. This is the query layer behind the aggregator: callers merge
// per-collection results with MergeCollections.
func (s *Store) ListPublished(ct ContentType) ([]ContentWithType, error) {
	rows, err := s.db.Query(`SELECT `+entryColumns+` FROM entries
		WHERE collection = ? AND published = 1 ORDER BY created_at DESC`, string(ct))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

func collectEntries(rows *sql.Rows) ([]ContentWithType, error) {
	var out []ContentWithType
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetBySlug returns a single published entry. An unpublished or missing
// entry yields ErrNotFound: public lookups treat both as absent content.
func (s *Store) GetBySlug(ct ContentType, slug string) (ContentWithType, error) {
	row := s.db.QueryRow(`SELECT `+entryColumns+` FROM entries
		WHERE collection = ? AND slug = ? AND published = 1`, string(ct), slug)
	return scanEntry(row)
}

// Get returns an entry by (id, collection) regardless of published
// status (for the admin editor).
func (s *Store) Get(id string, ct ContentType) (ContentWithType, error) {
	row := s.db.QueryRow(`SELECT `+entryColumns+` FROM entries
		WHERE id = ? AND collection = ?`, id, string(ct))
	return scanEntry(row)
}

// SearchParams parameterize the admin content listing.
type SearchParams struct {
	Page        int
	PageSize    int
	ContentType string // a collection name or "all"
	Term        string // free-text search over title and content
}

// Search returns one page of entries matching the params plus the total
// match count. The free-text term matches title or content as a
// case-insensitive substring; collection "all" spans every collection in
// the fixed merge order.
func (s *Store) Search(p SearchParams) ([]ContentWithType, int, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 10
	}
	where := `1=1`
	var args []any
	if p.ContentType != "" && p.ContentType != AllContentTypes {
		ct, err := ParseContentType(p.ContentType)
		if err != nil {
			return nil, 0, err
		}
		where += ` AND collection = ?`
		args = append(args, string(ct))
	}
	if p.Term != "" {
		where += ` AND (lower(title) LIKE '%' || lower(?) || '%' OR lower(content) LIKE '%' || lower(?) || '%')`
		args = append(args, p.Term, p.Term)
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM entries WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + entryColumns + ` FROM entries WHERE ` + where +
		` ORDER BY ` + collectionRank + `, created_at DESC LIMIT ? OFFSET ?`
	args = append(args, p.PageSize, (p.Page-1)*p.PageSize)
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	entries, err := collectEntries(rows)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Insert stores a new entry, minting a UUID when the import payload
// carries no id. Timestamps default to now when unset.
func (s *Store) Insert(e ContentWithType) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	if e.CreatedAt == "" {
		e.CreatedAt = now
	}
	if e.UpdatedAt == "" {
		e.UpdatedAt = now
	}
	species, images, source, err := encodeNested(e.FeaturedSpecies, e.Images, e.Source)
	if err != nil {
		return err
	}
	published := 0
	if e.Published {
		published = 1
	}
	_, err = s.db.Exec(`INSERT INTO entries (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, string(e.Type), e.Title, e.Slug, e.Content, e.Summary, e.QualityScore,
		species, images, source, e.ImageURL, published,
		e.CookingMethod, e.PreparationTime, e.Difficulty, e.Category, e.CreatedAt, e.UpdatedAt)
	return err
}

// Update overwrites the full editable field set of the entry keyed by
// (id, collection). ErrNotFound when no such entry exists.
func (s *Store) Update(id string, ct ContentType, u FieldUpdates) error {
	species, images, source, err := encodeNested(u.FeaturedSpecies, u.Images, u.Source)
	if err != nil {
		return err
	}
	published := 0
	if u.Published {
		published = 1
	}
	res, err := s.db.Exec(`UPDATE entries SET
		title = ?, slug = ?, content = ?, summary = ?, quality_score = ?,
		featured_species = ?, images = ?, image_url = ?, source = ?, published = ?,
		cooking_method = ?, preparation_time = ?, difficulty = ?, category = ?,
		updated_at = ?
		WHERE id = ? AND collection = ?`,
		u.Title, u.Slug, u.Content, u.Summary, u.QualityScore,
		species, images, u.ImageURL, source, published,
		u.CookingMethod, u.PreparationTime, u.Difficulty, u.Category,
		time.Now().UTC().Format(time.RFC3339),
		id, string(ct))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete permanently removes the entry keyed by (id, collection).
// There is no soft-delete or undo.
func (s *Store) Delete(id string, ct ContentType) error {
	_, err := s.db.Exec(`DELETE FROM entries WHERE id = ? AND collection = ?`, id, string(ct))
	return err
}

func encodeNested(species []SpeciesRef, images []ContentImage, source Source) (string, string, string, error) {
	if species == nil {
		species = []SpeciesRef{}
	}
	if images == nil {
		images = []ContentImage{}
	}
	sp, err := json.Marshal(species)
	if err != nil {
		return "", "", "", err
	}
	im, err := json.Marshal(images)
	if err != nil {
		return "", "", "", err
	}
	src, err := json.Marshal(source)
	if err != nil {
		return "", "", "", err
	}
	return string(sp), string(im), string(src), nil
}

// SaveImage upserts metadata for an uploaded image.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// ListImages returns uploaded images, newest first.
func (s *Store) ListImages() ([]Image, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at
		FROM images ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, rows.Err()
}

// DeleteImage removes image metadata by filename.
func (s *Store) DeleteImage(filename string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	return err
}
