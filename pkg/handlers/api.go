package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"photo-gallery/pkg/models"
	"photo-gallery/pkg/photobook"
	"photo-gallery/pkg/services"
)

// PhotobookResponse is the body of /api/photobook
type PhotobookResponse struct {
	Photobook  *models.Photobook `json:"photobook"`
	Pages      []photobook.Page  `json:"pages"`
	TotalPages int               `json:"totalPages"`
}

// LocateResponse is the body of /api/photobook/locate
type LocateResponse struct {
	PageIndex   int                `json:"pageIndex"`
	SpreadIndex int                `json:"spreadIndex"`
	Position    photobook.Position `json:"position"`
	Found       bool               `json:"found"`
}

// TemplatesResponse is the body of /api/templates
type TemplatesResponse struct {
	Permission models.Permission       `json:"permission"`
	Categories []models.LayoutCategory `json:"categories"`
	Templates  []models.LayoutTemplate `json:"templates"`
}

// ImagesHandler lists the photo URLs of a gallery: /api/images?date=20240623&id=1
func (h *Handler) ImagesHandler(w http.ResponseWriter, r *http.Request) {
	date, id, ok := h.galleryParams(w, r)
	if !ok {
		return
	}

	images, err := h.service.Images(r.Context(), date, id)
	if err != nil {
		h.serverError(w, r, "failed to list images", err)
		return
	}

	h.writeJSON(w, map[string][]string{"images": images})
}

// PhotobookHandler returns the photobook of a gallery with its page list
func (h *Handler) PhotobookHandler(w http.ResponseWriter, r *http.Request) {
	book, ok := h.loadPhotobook(w, r)
	if !ok {
		return
	}

	pager := photobook.NewPaginator(book.Spreads)
	h.writeJSON(w, PhotobookResponse{
		Photobook:  book,
		Pages:      pager.Pages(),
		TotalPages: pager.TotalPages(),
	})
}

// LocateHandler converts between page and spread indices of a photobook.
// With page=N it answers the spread and side holding that page; with spread=N and
// position=left|right it answers the page index.
func (h *Handler) LocateHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("page") == "" && query.Get("spread") == "" {
		h.writeError(w, "page or spread is required", http.StatusBadRequest)
		return
	}

	book, ok := h.loadPhotobook(w, r)
	if !ok {
		return
	}
	pager := photobook.NewPaginator(book.Spreads)

	if raw := query.Get("page"); raw != "" {
		pageIndex, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, "page must be a number", http.StatusBadRequest)
			return
		}
		ref, found := pager.SpreadAndPositionOf(pageIndex)
		h.writeJSON(w, LocateResponse{
			PageIndex:   pageIndex,
			SpreadIndex: ref.Spread,
			Position:    ref.Position,
			Found:       found,
		})
		return
	}

	spreadIndex, err := strconv.Atoi(query.Get("spread"))
	if err != nil {
		h.writeError(w, "spread must be a number", http.StatusBadRequest)
		return
	}
	position := photobook.Position(query.Get("position"))
	if position == "" {
		position = photobook.Left
	}
	if position != photobook.Left && position != photobook.Right {
		h.writeError(w, "position must be left or right", http.StatusBadRequest)
		return
	}

	pageIndex, err := pager.PageIndexOf(spreadIndex, position)
	if errors.Is(err, photobook.ErrSpreadOutOfRange) {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.writeJSON(w, LocateResponse{
		PageIndex:   pageIndex,
		SpreadIndex: spreadIndex,
		Position:    position,
		Found:       true,
	})
}

// TemplatesHandler lists the layout templates a permission may pick: /api/templates?permission=premium
func (h *Handler) TemplatesHandler(w http.ResponseWriter, r *http.Request) {
	permission := models.Permission(r.URL.Query().Get("permission"))
	if permission == "" {
		permission = models.PermissionFree
	}
	if !permission.Valid() {
		h.writeError(w, "unknown permission", http.StatusBadRequest)
		return
	}

	catalog := h.service.Catalog()
	h.writeJSON(w, TemplatesResponse{
		Permission: permission,
		Categories: catalog.Categories(),
		Templates:  catalog.Available(permission),
	})
}

// galleryParams reads the date and id query parameters
func (h *Handler) galleryParams(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	date, id := r.URL.Query().Get("date"), r.URL.Query().Get("id")
	if date == "" || id == "" {
		h.writeError(w, "Date and ID are required", http.StatusBadRequest)
		return "", "", false
	}
	return date, id, true
}

func (h *Handler) loadPhotobook(w http.ResponseWriter, r *http.Request) (*models.Photobook, bool) {
	date, id, ok := h.galleryParams(w, r)
	if !ok {
		return nil, false
	}

	book, err := h.service.GetPhotobook(r.Context(), date, id)
	switch {
	case errors.Is(err, services.ErrInvalidDate):
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return nil, false
	case errors.Is(err, services.ErrGalleryNotFound), errors.Is(err, services.ErrNoPhotos):
		h.writeError(w, "Photobook not found", http.StatusNotFound)
		return nil, false
	case err != nil:
		h.serverError(w, r, "failed to build photobook", err)
		return nil, false
	}
	return book, true
}
