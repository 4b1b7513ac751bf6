package httpx

import (
	"errors"
	"net/http"
	"strings"

	domainauth "github.com/stylehaus/ui-api/internal/domain/auth"
)

// OverrideStore is the view-as store surface the handlers need.
// Satisfied by viewas.Store.
type OverrideStore interface {
	Get(scope string) domainauth.Role
	Set(scope string, override domainauth.Role) error
	Clear(scope string)
}

// ViewasHandlers provides the admin-gated view-as override endpoints.
// The effective-role resolver ignores overrides for non-admin sessions, so
// the gate here protects the store from noise, not from privilege escalation.
type ViewasHandlers struct {
	Overrides OverrideStore
}

// viewasRequest is the PUT /api/viewas body.
type viewasRequest struct {
	Override string `json:"override"`
}

// Get returns the active override for the request's scope.
// GET /api/viewas.
func (h *ViewasHandlers) Get(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	scope := viewasScope(r, claims)
	WriteJSON(w, http.StatusOK, map[string]any{
		"scope":    scope,
		"override": h.Overrides.Get(scope),
	})
}

// Put sets or clears the override for the request's scope. An empty
// override value clears it, same as Delete.
// PUT /api/viewas.
func (h *ViewasHandlers) Put(w http.ResponseWriter, r *http.Request) {
	var req viewasRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	override := domainauth.Role(strings.ToLower(strings.TrimSpace(req.Override)))
	if !domainauth.OverrideAllowed(override) {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_failed",
			Err:     errors.New("override must be one of fan, creator, admin, or empty to clear"),
		})
		return
	}

	claims, _ := ClaimsFromContext(r.Context())
	scope := viewasScope(r, claims)
	if err := h.Overrides.Set(scope, override); err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_failed",
			Err:     err,
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"scope":    scope,
		"override": override,
	})
}

// Delete clears the override for the request's scope. Clearing an absent
// override is not an error.
// DELETE /api/viewas.
func (h *ViewasHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	scope := viewasScope(r, claims)
	h.Overrides.Clear(scope)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
