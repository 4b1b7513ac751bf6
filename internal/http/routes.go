package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/stylehaus/ui-api/internal/domain/auth"
	"github.com/stylehaus/ui-api/internal/service"
	"github.com/stylehaus/ui-api/internal/viewas"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Sessions   SessionAuthService
	Spotlights *service.SpotlightService
	Overrides  *viewas.Store

	CookieDomain string
	IsDev        bool
	Logger       *slog.Logger
}

// routeRule is a static route access declaration: pattern plus the allowed
// role set the guard enforces. The table in registerSpotlightRoutes is the
// only configuration surface of the authorization system.
type routeRule struct {
	pattern string
	roles   []domainauth.Role
	handler http.HandlerFunc
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	sessionHandlers := &SessionHandlers{
		Svc:          services.Sessions,
		CookieDomain: services.CookieDomain,
		IsDev:        services.IsDev,
		Logger:       services.Logger,
	}
	guard := Guard{Sessions: services.Sessions, Overrides: services.Overrides}

	registerSessionRoutes(mux, sessionHandlers)
	if services.Spotlights != nil {
		registerSpotlightRoutes(mux, &SpotlightHandlers{Svc: services.Spotlights}, guard)
	}
	if services.Overrides != nil {
		registerViewasRoutes(mux, &ViewasHandlers{Overrides: services.Overrides}, services.Sessions)
	}

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}

// registerSessionRoutes wires the session lifecycle endpoints. None of them
// sit behind the guard: login and status must work without a session, and
// logout must succeed even with a broken one.
func registerSessionRoutes(mux *http.ServeMux, h *SessionHandlers) {
	mux.HandleFunc("POST /sessionLogin", h.Login)
	mux.HandleFunc("POST /sessionLogout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
}

// registerSpotlightRoutes declares the spotlight route table and wires each
// rule through the guard. Admins pass everything via the bypass rule unless
// they are actively viewing as another role.
func registerSpotlightRoutes(mux *http.ServeMux, h *SpotlightHandlers, guard Guard) {
	members := []domainauth.Role{domainauth.RoleFan, domainauth.RoleCreator, domainauth.RoleAdmin}
	creators := []domainauth.Role{domainauth.RoleCreator}
	admins := []domainauth.Role{domainauth.RoleAdmin}

	rules := []routeRule{
		{pattern: "GET /api/spotlights", roles: members, handler: h.List},
		{pattern: "POST /api/spotlights", roles: creators, handler: h.Create},
		{pattern: "GET /api/spotlights/{id}", roles: members, handler: h.GetByID},
		{pattern: "PUT /api/spotlights/{id}", roles: creators, handler: h.Update},
		{pattern: "POST /api/spotlights/{id}/publish", roles: creators, handler: h.Publish},
		{pattern: "POST /api/spotlights/{id}/feature", roles: admins, handler: h.Feature},
		{pattern: "DELETE /api/spotlights/{id}", roles: creators, handler: h.Delete},
	}

	for _, rule := range rules {
		mux.Handle(rule.pattern, guard.Require(rule.roles...)(rule.handler))
	}
}

// registerViewasRoutes wires the view-as endpoints behind the session and
// admin gates. The admin gate keys off the claim flag, so an admin viewing
// as fan can still reach these to switch back.
func registerViewasRoutes(mux *http.ServeMux, h *ViewasHandlers, sessions SessionVerifier) {
	adminOnly := func(hh http.HandlerFunc) http.Handler {
		return RequireSession(sessions)(RequireAdmin()(hh))
	}

	mux.Handle("GET /api/viewas", adminOnly(h.Get))
	mux.Handle("PUT /api/viewas", adminOnly(h.Put))
	mux.Handle("DELETE /api/viewas", adminOnly(h.Delete))
}
