package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"

	"github.com/eknkc/pug"
	"go.uber.org/zap"

	"photo-gallery/pkg/models"
	"photo-gallery/pkg/services"
)

// Handler serves the gallery pages and the JSON API
type Handler struct {
	service  *services.Service
	viewsDir string
	logger   *zap.Logger
}

// New creates a handler rendering the pug views found in viewsDir
func New(service *services.Service, viewsDir string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, viewsDir: viewsDir, logger: logger}
}

// Routes registers every page and API endpoint. Photos are served from imagesDir under
// /images/ and every other path from publicDir; an empty dir is not served.
func (h *Handler) Routes(publicDir, imagesDir string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.IndexHandler)
	mux.HandleFunc("GET /feed", h.FeedHandler)
	mux.HandleFunc("GET /gallery/{date}/{id}", h.PageHandler)
	mux.HandleFunc("GET /gallery/{date}/{id}/book", h.BookHandler)

	mux.HandleFunc("GET /api/images", h.ImagesHandler)
	mux.HandleFunc("GET /api/photobook", h.PhotobookHandler)
	mux.HandleFunc("GET /api/photobook/locate", h.LocateHandler)
	mux.HandleFunc("GET /api/templates", h.TemplatesHandler)

	if imagesDir != "" {
		mux.Handle("GET /images/", http.StripPrefix("/images/", http.FileServer(http.Dir(imagesDir))))
	}
	if publicDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(publicDir)))
	}

	return RequestID(h.logger)(mux)
}

// IndexHandler handles requests for the gallery index page
func (h *Handler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("generating index")

	galleries, err := h.service.ListGalleries(r.Context())
	if err != nil {
		h.serverError(w, r, "failed to list galleries", err)
		return
	}

	h.render(w, r, "index", models.Index{Galleries: galleries})
}

// FeedHandler handles requests for the gallery feed (JSON)
func (h *Handler) FeedHandler(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("generating feed")

	galleries, err := h.service.ListGalleries(r.Context())
	if err != nil {
		h.serverError(w, r, "failed to list galleries", err)
		return
	}

	h.writeJSON(w, galleries)
}

// PageHandler handles requests for the slider page of a gallery
func (h *Handler) PageHandler(w http.ResponseWriter, r *http.Request) {
	date, id := r.PathValue("date"), r.PathValue("id")

	page, err := h.service.Slides(r.Context(), date, id, r.URL.Query().Get("shuffle") == "true")
	if err != nil {
		h.pageError(w, r, err)
		return
	}
	page.ShowText = r.URL.Query().Get("showText") == "true"

	h.logger.Debug("generating gallery page", zap.String("gallery", page.Gallery.Key()))
	h.render(w, r, "gallery", page)
}

// BookHandler handles requests for the photobook page of a gallery
func (h *Handler) BookHandler(w http.ResponseWriter, r *http.Request) {
	date, id := r.PathValue("date"), r.PathValue("id")

	book, err := h.service.GetPhotobook(r.Context(), date, id)
	if err != nil {
		h.pageError(w, r, err)
		return
	}

	h.logger.Debug("generating photobook page", zap.String("photobook", book.ID))
	h.render(w, r, "book", newBookPage(book, r.URL.Query().Get("mode") == "page", r.URL.Path))
}

// render compiles views/<name>.pug and executes it with data
func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	template, err := pug.CompileFile(filepath.Join(h.viewsDir, name+".pug"), pug.Options{})
	if err != nil {
		h.serverError(w, r, "template error", err)
		return
	}

	var buf bytes.Buffer
	if err := template.Execute(&buf, data); err != nil {
		h.serverError(w, r, "template execution error", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// pageError answers a page request for a gallery that cannot be shown
func (h *Handler) pageError(w http.ResponseWriter, r *http.Request, err error) {
	if isNotFound(err) {
		h.logger.Debug("gallery not found", zap.String("path", r.URL.Path), zap.Error(err))
		http.NotFound(w, r)
		return
	}
	h.serverError(w, r, "failed to load gallery", err)
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, message string, err error) {
	h.logger.Error(message,
		zap.String("path", r.URL.Path),
		zap.String("request_id", w.Header().Get(requestIDHeader)),
		zap.Error(err))
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("unable to encode JSON response", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.logger.Debug("request failed", zap.String("error", message), zap.Int("status", code))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func isNotFound(err error) bool {
	return errors.Is(err, services.ErrGalleryNotFound) ||
		errors.Is(err, services.ErrInvalidDate) ||
		errors.Is(err, services.ErrNoPhotos)
}
