package lonja

import "sort"

// CatalogRow is one raw product x presentation row from the static
// catalog. The JSON keys are the catalog's own (Spanish) wire format.
type CatalogRow struct {
	Categoria     string `json:"categoria"`
	Subcategoria  string `json:"subcategoria"`
	Producto      string `json:"producto"`
	Presentacion  string `json:"presentacion"`
	Unidad        string `json:"unidad"`
	EjemplosNotas string `json:"ejemplos_notas"`
}

// IngredientLists is the secondary catalog source: named ingredient
// lists grouped by category key (used for the sushi ingredient set).
type IngredientLists map[string][]string

// SushiCategory is the synthetic category the ingredient lists fold
// under.
const SushiCategory = "Ingredientes Sushi"

// StockPresentation is one sellable presentation of a product.
type StockPresentation struct {
	Name      string `json:"name"`
	Unit      string `json:"unit"`
	Available bool   `json:"available"`
	Price     string `json:"price"`
	Notes     string `json:"notes,omitempty"`
}

// GroupedProduct is one logical product entry on the stock page: every
// catalog row sharing (categoria, producto) folded together. The
// synthetic ID is "categoria-producto".
type GroupedProduct struct {
	ID            string              `json:"id"`
	Category      string              `json:"category"`
	Subcategory   string              `json:"subcategory"`
	Product       string              `json:"product"`
	Presentations []StockPresentation `json:"presentations"`
	SelectedUnit  string              `json:"selectedUnit"`
	InStock       bool                `json:"inStock"`
}

// StockSnapshotEntry is the flattened persisted form of an available
// presentation.
type StockSnapshotEntry struct {
	Category     string `json:"category"`
	Subcategory  string `json:"subcategory"`
	Product      string `json:"product"`
	Presentation string `json:"presentation"`
	Unit         string `json:"unit"`
	Price        string `json:"price"`
	Notes        string `json:"notes,omitempty"`
}

// GroupCatalog folds flat catalog rows into one GroupedProduct per
// (categoria, producto) key, in first-seen order. The first row for a
// key establishes category, subcategory, product and the selected unit;
// every row sharing the key appends one presentation, initially
// unavailable and unpriced. The ingredient lists fold in afterwards
// under the fixed sushi category, one synthetic "Standard" presentation
// per ingredient, with the subcategory label title-cased from the list
// key.
func GroupCatalog(rows []CatalogRow, ingredients IngredientLists) []GroupedProduct {
	index := make(map[string]int)
	var products []GroupedProduct

	for _, row := range rows {
		id := row.Categoria + "-" + row.Producto
		i, ok := index[id]
		if !ok {
			products = append(products, GroupedProduct{
				ID:           id,
				Category:     row.Categoria,
				Subcategory:  row.Subcategoria,
				Product:      row.Producto,
				SelectedUnit: row.Unidad,
			})
			i = len(products) - 1
			index[id] = i
		}
		products[i].Presentations = append(products[i].Presentations, StockPresentation{
			Name:  row.Presentacion,
			Unit:  row.Unidad,
			Notes: row.EjemplosNotas,
		})
	}

	// Iterate list keys in sorted order so the fold is deterministic.
	keys := make([]string, 0, len(ingredients))
	for k := range ingredients {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		sub := TitleCaseWords(key)
		for _, name := range ingredients[key] {
			id := SushiCategory + "-" + name
			i, ok := index[id]
			if !ok {
				products = append(products, GroupedProduct{
					ID:           id,
					Category:     SushiCategory,
					Subcategory:  sub,
					Product:      name,
					SelectedUnit: "unit",
				})
				i = len(products) - 1
				index[id] = i
			}
			products[i].Presentations = append(products[i].Presentations, StockPresentation{
				Name: "Standard",
				Unit: "unit",
			})
		}
	}
	return products
}

// mapProduct returns a new product list with fn applied to the product
// matching id. The matched product's presentation slice is copied first,
// so the input list and its nested slices are never written to.
func mapProduct(products []GroupedProduct, id string, fn func(*GroupedProduct)) []GroupedProduct {
	out := make([]GroupedProduct, len(products))
	for i, p := range products {
		if p.ID == id {
			p.Presentations = append([]StockPresentation(nil), p.Presentations...)
			fn(&p)
		}
		out[i] = p
	}
	return out
}

// ToggleInStock flips the product-level stock flag.
func ToggleInStock(products []GroupedProduct, id string) []GroupedProduct {
	return mapProduct(products, id, func(p *GroupedProduct) {
		p.InStock = !p.InStock
	})
}

// ChangeSelectedUnit switches which unit's presentations are visible
// and editable for a product.
func ChangeSelectedUnit(products []GroupedProduct, id, unit string) []GroupedProduct {
	return mapProduct(products, id, func(p *GroupedProduct) {
		p.SelectedUnit = unit
	})
}

// ToggleAvailable sets availability of one presentation by index.
func ToggleAvailable(products []GroupedProduct, id string, presIdx int, available bool) []GroupedProduct {
	return mapProduct(products, id, func(p *GroupedProduct) {
		if presIdx >= 0 && presIdx < len(p.Presentations) {
			p.Presentations[presIdx].Available = available
		}
	})
}

// SetPrice sets the price string of one presentation by index.
func SetPrice(products []GroupedProduct, id string, presIdx int, price string) []GroupedProduct {
	return mapProduct(products, id, func(p *GroupedProduct) {
		if presIdx >= 0 && presIdx < len(p.Presentations) {
			p.Presentations[presIdx].Price = price
		}
	})
}

// VisiblePresentations returns the presentations whose unit equals the
// product's currently selected unit. A product may carry presentations
// across several units, but only one unit's presentations are shown and
// editable at a time.
func VisiblePresentations(p GroupedProduct) []StockPresentation {
	var out []StockPresentation
	for _, pr := range p.Presentations {
		if pr.Unit == p.SelectedUnit {
			out = append(out, pr)
		}
	}
	return out
}

// FlattenAvailable reduces the stock list to the persisted snapshot
// form: only presentations of in-stock products that are marked
// available and have a non-empty price survive.
func FlattenAvailable(products []GroupedProduct) []StockSnapshotEntry {
	var out []StockSnapshotEntry
	for _, p := range products {
		if !p.InStock {
			continue
		}
		for _, pr := range p.Presentations {
			if !pr.Available || pr.Price == "" {
				continue
			}
			out = append(out, StockSnapshotEntry{
				Category:     p.Category,
				Subcategory:  p.Subcategory,
				Product:      p.Product,
				Presentation: pr.Name,
				Unit:         pr.Unit,
				Price:        pr.Price,
				Notes:        pr.Notes,
			})
		}
	}
	return out
}
