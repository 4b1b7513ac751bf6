package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/stylehaus/ui-api/internal/domain/auth"
	"github.com/stylehaus/ui-api/internal/viewas"
)

func viewasFixture() (*ViewasHandlers, *viewas.Store) {
	store := viewas.NewStore()
	return &ViewasHandlers{Overrides: store}, store
}

func adminRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	claims := claimsFor(domainauth.RoleAdmin, true)
	return req.WithContext(SetClaimsInContext(req.Context(), *claims))
}

func TestViewasPut_SetsOverride(t *testing.T) {
	h, store := viewasFixture()

	req := adminRequest(http.MethodPut, "/api/viewas", `{"override":"fan"}`)
	req.Header.Set(viewasScopeHeader, "tab-1")
	rec := httptest.NewRecorder()
	h.Put(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Scope    string `json:"scope"`
		Override string `json:"override"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "tab-1", body.Scope)
	assert.Equal(t, "fan", body.Override)
	assert.Equal(t, domainauth.RoleFan, store.Get("tab-1"))
}

func TestViewasPut_ScopeFallsBackToSessionID(t *testing.T) {
	h, store := viewasFixture()

	req := adminRequest(http.MethodPut, "/api/viewas", `{"override":"creator"}`)
	rec := httptest.NewRecorder()
	h.Put(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domainauth.RoleCreator, store.Get("sess-1"))
}

func TestViewasPut_NormalizesInput(t *testing.T) {
	h, store := viewasFixture()

	req := adminRequest(http.MethodPut, "/api/viewas", `{"override":"  FAN  "}`)
	req.Header.Set(viewasScopeHeader, "tab-1")
	rec := httptest.NewRecorder()
	h.Put(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domainauth.RoleFan, store.Get("tab-1"))
}

func TestViewasPut_RejectsOutsideClosedSet(t *testing.T) {
	for _, bad := range []string{"guest", "superuser", "root"} {
		h, store := viewasFixture()

		req := adminRequest(http.MethodPut, "/api/viewas", `{"override":"`+bad+`"}`)
		req.Header.Set(viewasScopeHeader, "tab-1")
		rec := httptest.NewRecorder()
		h.Put(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "override %q", bad)
		assert.Equal(t, domainauth.Role(""), store.Get("tab-1"))
	}
}

func TestViewasPut_EmptyOverrideClears(t *testing.T) {
	h, store := viewasFixture()
	require.NoError(t, store.Set("tab-1", domainauth.RoleFan))

	req := adminRequest(http.MethodPut, "/api/viewas", `{"override":""}`)
	req.Header.Set(viewasScopeHeader, "tab-1")
	rec := httptest.NewRecorder()
	h.Put(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domainauth.Role(""), store.Get("tab-1"))
}

func TestViewasGet_ReturnsActiveOverride(t *testing.T) {
	h, store := viewasFixture()
	require.NoError(t, store.Set("tab-1", domainauth.RoleCreator))

	req := adminRequest(http.MethodGet, "/api/viewas", "")
	req.Header.Set(viewasScopeHeader, "tab-1")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"override":"creator"`)
}

func TestViewasDelete_ClearsAndIsIdempotent(t *testing.T) {
	h, store := viewasFixture()
	require.NoError(t, store.Set("tab-1", domainauth.RoleFan))

	for range 2 {
		req := adminRequest(http.MethodDelete, "/api/viewas", "")
		req.Header.Set(viewasScopeHeader, "tab-1")
		rec := httptest.NewRecorder()
		h.Delete(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, domainauth.Role(""), store.Get("tab-1"))
	}
}
