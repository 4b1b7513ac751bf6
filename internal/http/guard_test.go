package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/stylehaus/ui-api/internal/domain/auth"
)

// stubVerifier satisfies SessionVerifier with canned results, keyed by the
// artifact value.
type stubVerifier struct {
	claims map[string]domainauth.Claims
}

func (s *stubVerifier) Verify(_ context.Context, artifact string) (domainauth.Claims, error) {
	claims, ok := s.claims[artifact]
	if !ok {
		return domainauth.Claims{}, errors.New("unknown artifact")
	}
	return claims, nil
}

// stubOverrides satisfies OverrideSource with a fixed scope map.
type stubOverrides map[string]domainauth.Role

func (s stubOverrides) Get(scope string) domainauth.Role { return s[scope] }

func claimsFor(role domainauth.Role, admin bool) *domainauth.Claims {
	return &domainauth.Claims{
		Subject:   "user-1",
		Email:     "user@example.com",
		Role:      role,
		Admin:     admin,
		SessionID: "sess-1",
	}
}

func TestEvaluateGuard(t *testing.T) {
	members := []domainauth.Role{domainauth.RoleFan, domainauth.RoleCreator, domainauth.RoleAdmin}
	creators := []domainauth.Role{domainauth.RoleCreator}

	tests := []struct {
		name string
		in   GuardInput
		want GuardDecision
	}{
		{
			name: "loading suspends",
			in:   GuardInput{AllowedRoles: members, Loading: true},
			want: GuardSuspend,
		},
		{
			name: "no claims requires login",
			in:   GuardInput{AllowedRoles: members},
			want: GuardLogin,
		},
		{
			name: "member role allowed",
			in:   GuardInput{AllowedRoles: members, Claims: claimsFor(domainauth.RoleFan, false)},
			want: GuardAllow,
		},
		{
			name: "role outside the set denied",
			in:   GuardInput{AllowedRoles: creators, Claims: claimsFor(domainauth.RoleFan, false)},
			want: GuardDeny,
		},
		{
			name: "guest denied on member routes",
			in:   GuardInput{AllowedRoles: members, Claims: claimsFor(domainauth.RoleGuest, false)},
			want: GuardDeny,
		},
		{
			name: "invalid role degrades to guest",
			in:   GuardInput{AllowedRoles: members, Claims: claimsFor(domainauth.Role("superuser"), false)},
			want: GuardDeny,
		},
		{
			name: "admin with no override bypasses any role set",
			in:   GuardInput{AllowedRoles: creators, Claims: claimsFor(domainauth.RoleAdmin, true)},
			want: GuardAllow,
		},
		{
			name: "admin bypasses even an empty role set",
			in:   GuardInput{Claims: claimsFor(domainauth.RoleAdmin, true)},
			want: GuardAllow,
		},
		{
			name: "admin viewing as fan is bound by fan rules",
			in: GuardInput{
				AllowedRoles: creators,
				Claims:       claimsFor(domainauth.RoleAdmin, true),
				Override:     domainauth.RoleFan,
			},
			want: GuardDeny,
		},
		{
			name: "admin viewing as fan still passes fan routes",
			in: GuardInput{
				AllowedRoles: members,
				Claims:       claimsFor(domainauth.RoleAdmin, true),
				Override:     domainauth.RoleFan,
			},
			want: GuardAllow,
		},
		{
			name: "override on a non-admin is structurally ignored",
			in: GuardInput{
				AllowedRoles: creators,
				Claims:       claimsFor(domainauth.RoleFan, false),
				Override:     domainauth.RoleCreator,
			},
			want: GuardDeny,
		},
		{
			name: "invalid override does not break the admin bypass",
			in: GuardInput{
				AllowedRoles: creators,
				Claims:       claimsFor(domainauth.RoleAdmin, true),
				Override:     domainauth.Role("superuser"),
			},
			want: GuardAllow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateGuard(tt.in))
		})
	}
}

func okHandler() (http.HandlerFunc, *bool) {
	called := false
	return func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}, &called
}

func guardFixture() Guard {
	return Guard{
		Sessions: &stubVerifier{claims: map[string]domainauth.Claims{
			"fan-token":   *claimsFor(domainauth.RoleFan, false),
			"admin-token": *claimsFor(domainauth.RoleAdmin, true),
		}},
		Overrides: stubOverrides{},
	}
}

func TestGuardRequire_APIWithoutCookie(t *testing.T) {
	handler, called := okHandler()
	h := guardFixture().Require(domainauth.RoleFan)(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/spotlights", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication_required")
	assert.False(t, *called)
}

func TestGuardRequire_APIWithBadCookie(t *testing.T) {
	handler, called := okHandler()
	h := guardFixture().Require(domainauth.RoleFan)(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/spotlights", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "forged"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_session")
	assert.False(t, *called)
}

func TestGuardRequire_BrowserWithoutCookieRedirectsToLogin(t *testing.T) {
	handler, called := okHandler()
	h := guardFixture().Require(domainauth.RoleFan)(handler)

	req := httptest.NewRequest(http.MethodGet, "/spotlights?page=2", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?redirect_uri=%2Fspotlights%3Fpage%3D2", rec.Header().Get("Location"))
	assert.False(t, *called)
}

func TestGuardRequire_BrowserDeniedRedirectsToUnauthorized(t *testing.T) {
	handler, called := okHandler()
	h := guardFixture().Require(domainauth.RoleCreator)(handler)

	req := httptest.NewRequest(http.MethodGet, "/studio", nil)
	req.Header.Set("Accept", "text/html")
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "fan-token"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/unauthorized?from=%2Fstudio", rec.Header().Get("Location"))
	assert.False(t, *called)
}

func TestGuardRequire_AllowedAttachesClaims(t *testing.T) {
	var got domainauth.Claims
	handler := func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		got = claims
		w.WriteHeader(http.StatusOK)
	}
	h := guardFixture().Require(domainauth.RoleFan)(http.HandlerFunc(handler))

	req := httptest.NewRequest(http.MethodGet, "/api/spotlights", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "fan-token"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domainauth.RoleFan, got.Role)
	assert.Equal(t, "sess-1", got.SessionID)
}

func TestGuardRequire_AdminBypass(t *testing.T) {
	handler, called := okHandler()
	h := guardFixture().Require(domainauth.RoleCreator)(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/spotlights", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "admin-token"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
}

func TestGuardRequire_OverrideScopedByHeader(t *testing.T) {
	guard := guardFixture()
	guard.Overrides = stubOverrides{"tab-1": domainauth.RoleFan}
	handler, _ := okHandler()
	h := guard.Require(domainauth.RoleCreator)(handler)

	// Override scope tab-1: the admin is viewing as fan there and loses the
	// bypass on a creator route.
	req := httptest.NewRequest(http.MethodGet, "/api/spotlights", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "admin-token"})
	req.Header.Set(viewasScopeHeader, "tab-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// A different tab has no override, so the bypass applies there.
	req = httptest.NewRequest(http.MethodGet, "/api/spotlights", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "admin-token"})
	req.Header.Set(viewasScopeHeader, "tab-2")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGuardRequire_OverrideFallsBackToSessionScope(t *testing.T) {
	guard := guardFixture()
	guard.Overrides = stubOverrides{"sess-1": domainauth.RoleFan}
	handler, _ := okHandler()
	h := guard.Require(domainauth.RoleCreator)(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/spotlights", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "admin-token"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
