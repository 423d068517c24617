package lonja

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func writeCatalogFiles(t *testing.T, rows, ingredients string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	rowsPath := filepath.Join(dir, "catalog.json")
	if err := os.WriteFile(rowsPath, []byte(rows), 0o644); err != nil {
		t.Fatal(err)
	}
	ingPath := ""
	if ingredients != "" {
		ingPath = filepath.Join(dir, "ingredients.json")
		if err := os.WriteFile(ingPath, []byte(ingredients), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return rowsPath, ingPath
}

const sampleCatalogJSON = `[
	{"categoria": "Pescado", "subcategoria": "Blanco", "producto": "Merluza", "presentacion": "Filete", "unidad": "kg", "ejemplos_notas": "sin espinas"},
	{"categoria": "Pescado", "subcategoria": "Blanco", "producto": "Merluza", "presentacion": "Entero", "unidad": "unidad"}
]`

func TestNewCatalog(t *testing.T) {
	rowsPath, ingPath := writeCatalogFiles(t, sampleCatalogJSON, `{"algas_marinas": ["Nori"]}`)

	c, err := NewCatalog(rowsPath, ingPath, zap.NewNop())
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	defer c.Close()

	products := c.Products()
	if len(products) != 2 {
		t.Fatalf("products = %d, want 2 (merluza + nori)", len(products))
	}
	if products[0].ID != "Pescado-Merluza" || len(products[0].Presentations) != 2 {
		t.Errorf("products[0] = %+v", products[0])
	}
	if products[1].Category != SushiCategory {
		t.Errorf("products[1].Category = %q", products[1].Category)
	}
}

func TestCatalogReload(t *testing.T) {
	rowsPath, _ := writeCatalogFiles(t, sampleCatalogJSON, "")

	c, err := NewCatalog(rowsPath, "", zap.NewNop())
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	defer c.Close()

	bigger := sampleCatalogJSON[:len(sampleCatalogJSON)-2] + `,
	{"categoria": "Marisco", "subcategoria": "Crustaceo", "producto": "Gamba Roja", "presentacion": "Fresca", "unidad": "kg"}
]`
	if err := os.WriteFile(rowsPath, []byte(bigger), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := c.reload(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got := len(c.Products()); got != 2 {
		t.Errorf("products after reload = %d, want 2", got)
	}
}

func TestCatalogReloadFailureKeepsSnapshot(t *testing.T) {
	rowsPath, _ := writeCatalogFiles(t, sampleCatalogJSON, "")

	c, err := NewCatalog(rowsPath, "", zap.NewNop())
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	defer c.Close()

	if err := os.WriteFile(rowsPath, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := c.reload(); err == nil {
		t.Fatal("reload of invalid JSON should fail")
	}
	if got := len(c.Products()); got != 1 {
		t.Errorf("previous snapshot should survive a failed reload, got %d products", got)
	}
}

func TestNewCatalogMissingFile(t *testing.T) {
	if _, err := NewCatalog(filepath.Join(t.TempDir(), "nope.json"), "", zap.NewNop()); err == nil {
		t.Error("missing catalog file should fail")
	}
}
