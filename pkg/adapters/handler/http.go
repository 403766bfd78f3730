package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/seo-redirects/pkg/core/domain"
	"github.com/wadjakorntonsri/seo-redirects/pkg/ports"
)

const maxBodyBytes = 1 << 20

type HTTPHandler struct {
	service ports.RedirectService
	log     *zap.Logger
}

func NewHTTPHandler(service ports.RedirectService, log *zap.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, log: log}
}

// CreateRedirectResponse is returned by create and update.
type CreateRedirectResponse struct {
	Long     string          `json:"long"`
	Short    string          `json:"short"`
	Slug     string          `json:"slug"`
	Success  bool            `json:"success"`
	IsUpdate bool            `json:"isUpdate"`
	Data     domain.Redirect `json:"data"`
	Warning  string          `json:"warning,omitempty"`
}

type DeleteRedirectResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	DeletedSlug string `json:"deletedSlug"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Create handles POST /api/create-redirect.
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.RedirectInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON data provided", Details: err.Error()})
		return
	}

	result, err := h.service.Save(r.Context(), input)
	if err != nil && !(errors.Is(err, domain.ErrNotPersisted) && result != nil) {
		h.writeServiceError(w, r, err, "Failed to create redirect. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, CreateRedirectResponse{
		Long:     result.Long,
		Short:    result.Short,
		Slug:     result.Slug,
		Success:  true,
		IsUpdate: result.IsUpdate,
		Data:     result.Data,
		Warning:  result.Warning,
	})
}

// List handles GET /api/get-redirects. It never fails; unreadable storage is
// reported as an empty mapping.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.List(r.Context()))
}

// Get handles GET /api/get-redirect?slug=.
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(r.URL.Query().Get("slug"))
	if slug == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Valid slug is required as query parameter"})
		return
	}

	redirect := h.service.Get(r.Context(), slug)
	if redirect == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: notFoundMessage(slug)})
		return
	}
	writeJSON(w, http.StatusOK, redirect)
}

// Delete handles DELETE /api/delete-redirect?slug=.
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(r.URL.Query().Get("slug"))

	if err := h.service.Delete(r.Context(), slug); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: notFoundMessage(slug)})
			return
		}
		h.writeServiceError(w, r, err, "Failed to delete redirect. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, DeleteRedirectResponse{
		Success:     true,
		Message:     `Redirect "` + slug + `" deleted successfully`,
		DeletedSlug: slug,
	})
}

func (h *HTTPHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Message})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		h.log.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: fallback, Details: err.Error()})
	}
}

func notFoundMessage(slug string) string {
	return `Redirect "` + slug + `" not found`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
