package httpx

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/stylehaus/ui-api/internal/domain/model"
	"github.com/stylehaus/ui-api/internal/service"
)

const (
	defaultSpotlightLimit = 20
	maxSpotlightLimit     = 100
)

// SpotlightHandlers provides HTTP handlers for community spotlights.
type SpotlightHandlers struct {
	Svc *service.SpotlightService
}

// List returns published spotlights, paginated. With mine=true the caller
// gets their own spotlights in every status instead.
// GET /api/spotlights.
func (h *SpotlightHandlers) List(w http.ResponseWriter, r *http.Request) {
	opts, ok := listOptionsFromQuery(w, r)
	if !ok {
		return
	}

	claims, _ := ClaimsFromContext(r.Context())

	var (
		page *service.SpotlightPage
		err  error
	)
	if r.URL.Query().Get("mine") == "true" {
		page, err = h.Svc.ListOwn(r.Context(), claims, opts)
	} else {
		page, err = h.Svc.ListVisible(r.Context(), opts)
	}
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, page)
}

// Create creates a draft spotlight owned by the caller.
// POST /api/spotlights.
func (h *SpotlightHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSpotlightRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	claims, _ := ClaimsFromContext(r.Context())
	spotlight, err := h.Svc.Create(r.Context(), claims, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, spotlight)
}

// GetByID returns one spotlight.
// GET /api/spotlights/{id}.
func (h *SpotlightHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	spotlight, err := h.Svc.GetByID(r.Context(), claims, r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, spotlight)
}

// Update edits the caller's draft spotlight.
// PUT /api/spotlights/{id}.
func (h *SpotlightHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateSpotlightRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	claims, _ := ClaimsFromContext(r.Context())
	spotlight, err := h.Svc.Update(r.Context(), claims, r.PathValue("id"), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, spotlight)
}

// Publish moves the caller's draft to published.
// POST /api/spotlights/{id}/publish.
func (h *SpotlightHandlers) Publish(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	spotlight, err := h.Svc.Publish(r.Context(), claims, r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, spotlight)
}

// Feature promotes a published spotlight to featured.
// POST /api/spotlights/{id}/feature.
func (h *SpotlightHandlers) Feature(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	spotlight, err := h.Svc.Feature(r.Context(), claims, r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, spotlight)
}

// Delete removes a spotlight.
// DELETE /api/spotlights/{id}.
func (h *SpotlightHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	if err := h.Svc.Delete(r.Context(), claims, r.PathValue("id")); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// listOptionsFromQuery parses paging, filtering, and sorting query params.
// Returns false after writing an error response when a param is malformed.
func listOptionsFromQuery(w http.ResponseWriter, r *http.Request) (model.SpotlightsListOptions, bool) {
	q := r.URL.Query()
	opts := model.SpotlightsListOptions{
		Limit: defaultSpotlightLimit,
		Sort:  q.Get("sort"),
		Dir:   q.Get("dir"),
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			writeQueryError(w, "limit must be a positive integer")
			return opts, false
		}
		if limit > maxSpotlightLimit {
			limit = maxSpotlightLimit
		}
		opts.Limit = limit
	}

	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			writeQueryError(w, "offset must be a non-negative integer")
			return opts, false
		}
		opts.Offset = offset
	}

	if search := q.Get("q"); search != "" {
		opts.Q = &search
	}

	if raw := q.Get("status"); raw != "" {
		status, ok := model.ParseSpotlightStatus(raw)
		if !ok {
			writeQueryError(w, "status must be one of draft, published, featured")
			return opts, false
		}
		opts.Status = &status
	}

	return opts, true
}

func writeQueryError(w http.ResponseWriter, msg string) {
	WriteError(w, ErrorParams{
		Code:    http.StatusBadRequest,
		ErrCode: "validation_failed",
		Err:     errors.New(msg),
	})
}
