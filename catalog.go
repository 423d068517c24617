package lonja

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Catalog loads the static product catalog (flat rows plus the sushi
// ingredient lists) from disk, folds it with GroupCatalog, and serves
// the current grouped snapshot. A file watcher regroups on change so
// catalog edits land without a restart.
type Catalog struct {
	rowsPath        string
	ingredientsPath string
	log             *zap.Logger

	mu       sync.RWMutex
	products []GroupedProduct

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewCatalog loads both sources and returns a ready catalog. The
// ingredients path may be empty when no secondary source exists.
func NewCatalog(rowsPath, ingredientsPath string, log *zap.Logger) (*Catalog, error) {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Catalog{
		rowsPath:        rowsPath,
		ingredientsPath: ingredientsPath,
		log:             log,
		done:            make(chan struct{}),
	}
	if err := c.reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Products returns the current grouped product list. The slice is
// rebuilt on every reload; callers treat it as read-only.
func (c *Catalog) Products() []GroupedProduct {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.products
}

func (c *Catalog) reload() error {
	var rows []CatalogRow
	if err := readJSONFile(c.rowsPath, &rows); err != nil {
		return fmt.Errorf("load catalog rows: %w", err)
	}
	ingredients := IngredientLists{}
	if c.ingredientsPath != "" {
		if err := readJSONFile(c.ingredientsPath, &ingredients); err != nil {
			return fmt.Errorf("load ingredient lists: %w", err)
		}
	}
	products := GroupCatalog(rows, ingredients)
	c.mu.Lock()
	c.products = products
	c.mu.Unlock()
	c.log.Info("catalog loaded",
		zap.Int("rows", len(rows)),
		zap.Int("products", len(products)))
	return nil
}

// Watch starts a watcher on the catalog files and regroups on every
// write. Reload failures keep the previous snapshot.
func (c *Catalog) Watch() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	c.watcher = w
	// Watch the directories, not the files: editors replace files on
	// save and per-file watches break across renames.
	dirs := map[string]struct{}{filepath.Dir(c.rowsPath): {}}
	if c.ingredientsPath != "" {
		dirs[filepath.Dir(c.ingredientsPath)] = struct{}{}
	}
	for d := range dirs {
		if err := w.Add(d); err != nil {
			w.Close()
			return err
		}
	}
	go c.watchLoop()
	return nil
}

func (c *Catalog) watchLoop() {
	for {
		select {
		case <-c.done:
			return
		case ev, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if ev.Name != c.rowsPath && ev.Name != c.ingredientsPath {
				continue
			}
			if err := c.reload(); err != nil {
				c.log.Warn("catalog reload failed", zap.String("file", ev.Name), zap.Error(err))
			}
		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			c.log.Warn("catalog watcher error", zap.Error(err))
		}
	}
}

// Close stops the watcher.
func (c *Catalog) Close() error {
	close(c.done)
	if c.watcher != nil {
		return c.watcher.Close()
	}
	return nil
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
