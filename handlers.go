package lonja

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// listResponse is the content query surface: one page of tagged entries
// plus the total match count for the paginator.
type listResponse struct {
	Data       []ContentWithType `json:"data"`
	TotalCount int               `json:"totalCount"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// handleContentList serves the CMS admin listing: paged, optionally
// restricted to one collection, optionally free-text searched. The
// term matches title or content case-insensitively as a substring;
// matching happens in the store, not here.
func (a *App) handleContentList(c echo.Context) error {
	page := intParam(c.QueryParam("page"), 1)
	pageSize := intParam(c.QueryParam("pageSize"), a.Config.DefaultPageSize)
	contentType := c.QueryParam("contentType")
	if contentType == "" {
		contentType = AllContentTypes
	}
	entries, total, err := a.Store.Search(SearchParams{
		Page:        page,
		PageSize:    pageSize,
		ContentType: contentType,
		Term:        c.QueryParam("searchTerm"),
	})
	if err != nil {
		if errors.Is(err, ErrUnknownContentType) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		a.Log.Error("content listing failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error:   "Failed to fetch content",
			Details: err.Error(),
		})
	}
	if entries == nil {
		entries = []ContentWithType{}
	}
	return c.JSON(http.StatusOK, listResponse{Data: entries, TotalCount: total})
}

type updateRequest struct {
	ID          string       `json:"id"`
	ContentType string       `json:"contentType"`
	Updates     FieldUpdates `json:"updates"`
}

// handleContentUpdate applies the full editable field set to one entry.
// A failed update applies nothing; the admin retries manually.
func (a *App) handleContentUpdate(c echo.Context) error {
	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
	}
	if req.ID == "" || req.ContentType == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Missing id or contentType"})
	}
	ct, err := ParseContentType(req.ContentType)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	if err := a.Store.Update(req.ID, ct, req.Updates); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "Content not found"})
		}
		a.Log.Error("content update failed", zap.String("id", req.ID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to update content"})
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

type deleteRequest struct {
	ID          string `json:"id"`
	ContentType string `json:"contentType"`
}

// handleContentDelete permanently removes one entry. No soft delete.
func (a *App) handleContentDelete(c echo.Context) error {
	var req deleteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
	}
	if req.ID == "" || req.ContentType == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Missing id or contentType"})
	}
	ct, err := ParseContentType(req.ContentType)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	if err := a.Store.Delete(req.ID, ct); err != nil {
		a.Log.Error("content delete failed", zap.String("id", req.ID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to delete content"})
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// handleContentBySlug is the public single-entry lookup. Missing or
// unpublished entries are absent content, not failures.
func (a *App) handleContentBySlug(c echo.Context) error {
	ct, err := ParseContentType(c.Param("type"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	entry, err := a.Store.GetBySlug(ct, c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "Content not found"})
		}
		a.Log.Error("content lookup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error:   "Failed to fetch content",
			Details: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, entry)
}

// feedResponse is one page of the public aggregated, filtered feed.
type feedResponse struct {
	Items      []ContentWithType `json:"items"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
	Species    []string          `json:"species"`
}

// handleFeed serves the homepage grid: the three published collections
// merged in fixed order, filtered by species and cooking method, then
// paginated. The client resets to page 1 whenever a filter changes; an
// out-of-range page is clamped rather than served empty.
func (a *App) handleFeed(c echo.Context) error {
	merged, err := a.mergedPublished()
	if err != nil {
		a.Log.Error("feed fetch failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error:   "Failed to fetch content",
			Details: err.Error(),
		})
	}
	species := c.QueryParam("species")
	if species == "" {
		species = FilterAll
	}
	method := c.QueryParam("cookingMethod")
	if method == "" {
		method = FilterAll
	}
	filtered := FilterEntries(merged, species, method)
	page := intParam(c.QueryParam("page"), 1)
	pageSize := intParam(c.QueryParam("pageSize"), a.Config.DefaultPageSize)
	result := Paginate(filtered, page, pageSize)
	if result.Items == nil {
		result.Items = []ContentWithType{}
	}
	return c.JSON(http.StatusOK, feedResponse{
		Items:      result.Items,
		Page:       result.Page,
		TotalPages: result.TotalPages,
		Species:    SpeciesVocabulary(merged),
	})
}

// handleSpecies serves the distinct species filter vocabulary.
func (a *App) handleSpecies(c echo.Context) error {
	merged, err := a.mergedPublished()
	if err != nil {
		a.Log.Error("species fetch failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error:   "Failed to fetch species",
			Details: err.Error(),
		})
	}
	vocab := SpeciesVocabulary(merged)
	if vocab == nil {
		vocab = []string{}
	}
	return c.JSON(http.StatusOK, map[string][]string{"species": vocab})
}

func (a *App) mergedPublished() ([]ContentWithType, error) {
	var merged []ContentWithType
	for _, ct := range CollectionOrder {
		entries, err := a.Store.ListPublished(ct)
		if err != nil {
			return nil, err
		}
		merged = append(merged, entries...)
	}
	return merged, nil
}

// handleStock serves the grouped product list rebuilt from the static
// catalog.
func (a *App) handleStock(c echo.Context) error {
	products := a.Catalog.Products()
	if products == nil {
		products = []GroupedProduct{}
	}
	return c.JSON(http.StatusOK, map[string][]GroupedProduct{"products": products})
}

// handleStockSave overwrites the persisted snapshot with the flattened
// availability list in the request body. No merge, no history.
func (a *App) handleStockSave(c echo.Context) error {
	var entries []StockSnapshotEntry
	if err := c.Bind(&entries); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
	}
	if err := a.Snapshots.Save(entries); err != nil {
		a.Log.Error("stock snapshot save failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to save stock"})
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// handleStockSnapshot returns the last saved snapshot.
func (a *App) handleStockSnapshot(c echo.Context) error {
	entries, ok, err := a.Snapshots.Load()
	if err != nil {
		a.Log.Error("stock snapshot load failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to load stock"})
	}
	if entries == nil {
		entries = []StockSnapshotEntry{}
	}
	return c.JSON(http.StatusOK, map[string]any{"entries": entries, "saved": ok})
}

func (a *App) handleHealthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func intParam(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

