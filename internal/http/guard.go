package httpx

import (
	"errors"
	"net/http"

	domainauth "github.com/stylehaus/ui-api/internal/domain/auth"
)

// viewasScopeHeader carries the client tab token that keys view-as overrides.
const viewasScopeHeader = "X-Viewas-Scope"

// GuardDecision is the outcome of evaluating a route access rule.
type GuardDecision int

const (
	// GuardAllow grants access to the route.
	GuardAllow GuardDecision = iota
	// GuardSuspend means authorization state is still loading; hold the
	// request rather than rejecting it.
	GuardSuspend
	// GuardLogin means the request carries no claims and must authenticate.
	GuardLogin
	// GuardDeny means the claims are valid but the effective role is not in
	// the route's allowed set.
	GuardDeny
)

func (d GuardDecision) String() string {
	switch d {
	case GuardAllow:
		return "allow"
	case GuardSuspend:
		return "suspend"
	case GuardLogin:
		return "login"
	case GuardDeny:
		return "deny"
	default:
		return "unknown"
	}
}

// GuardInput holds everything a route access decision depends on.
type GuardInput struct {
	// AllowedRoles is the route's static allowed role set.
	AllowedRoles []domainauth.Role
	// Claims are the verified session claims, nil when unauthenticated.
	Claims *domainauth.Claims
	// Override is the view-as override for the request's scope, empty when
	// none is set.
	Override domainauth.Role
	// Loading marks authorization state as not yet resolved.
	Loading bool
}

// EvaluateGuard is the pure route access decision. An admin with no active
// override passes every route; an admin actively viewing as another role is
// bound by that role's access, exactly like a real user holding it.
func EvaluateGuard(in GuardInput) GuardDecision {
	if in.Loading {
		return GuardSuspend
	}
	if in.Claims == nil {
		return GuardLogin
	}

	primary := in.Claims.Role
	if !primary.Valid() {
		primary = domainauth.RoleGuest
	}

	// The bypass is keyed off "no active override", not "holds admin": an
	// admin who switched views gave up the bypass for that scope.
	if primary == domainauth.RoleAdmin && !domainauth.OverrideActive(primary, in.Override) {
		return GuardAllow
	}

	effective := domainauth.EffectiveRole(primary, in.Override)
	for _, role := range in.AllowedRoles {
		if role == effective {
			return GuardAllow
		}
	}
	return GuardDeny
}

// OverrideSource reads the view-as override for a scope.
// Satisfied by viewas.Store.
type OverrideSource interface {
	Get(scope string) domainauth.Role
}

// Guard wires session verification, view-as overrides, and route access
// rules into middleware.
type Guard struct {
	Sessions  SessionVerifier
	Overrides OverrideSource
}

// Require returns middleware enforcing the given allowed role set on a
// route. Browser requests are redirected (login or the unauthorized view);
// API requests get JSON errors. Allowed requests proceed with claims in
// context.
func (g Guard) Require(roles ...domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil {
				g.rejectLogin(w, r, "authentication_required", "authentication required")
				return
			}

			claims, err := g.Sessions.Verify(r.Context(), cookie.Value)
			if err != nil {
				g.rejectLogin(w, r, "invalid_session", "session is invalid or has been revoked")
				return
			}

			override := g.override(r, claims)
			decision := EvaluateGuard(GuardInput{
				AllowedRoles: roles,
				Claims:       &claims,
				Override:     override,
			})
			if decision != GuardAllow {
				if isBrowserRequest(r) {
					redirectToUnauthorized(w, r)
					return
				}
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "insufficient_permissions",
					Err:     errors.New("insufficient permissions"),
				})
				return
			}

			ctx := SetClaimsInContext(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (g Guard) override(r *http.Request, claims domainauth.Claims) domainauth.Role {
	if g.Overrides == nil {
		return ""
	}
	return g.Overrides.Get(viewasScope(r, claims))
}

func (g Guard) rejectLogin(w http.ResponseWriter, r *http.Request, errCode, msg string) {
	if isBrowserRequest(r) {
		redirectToLogin(w, r)
		return
	}
	WriteError(w, ErrorParams{
		Code:    http.StatusUnauthorized,
		ErrCode: errCode,
		Err:     errors.New(msg),
	})
}

// viewasScope resolves the override scope for a request: the client tab
// token when the header is present, otherwise the session ID.
func viewasScope(r *http.Request, claims domainauth.Claims) string {
	if scope := r.Header.Get(viewasScopeHeader); scope != "" {
		return scope
	}
	return claims.SessionID
}
