package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	domainauth "github.com/stylehaus/ui-api/internal/domain/auth"
	apperrors "github.com/stylehaus/ui-api/internal/errors"
	"github.com/stylehaus/ui-api/internal/service"
)

// SessionAuthService defines the session operations the auth handlers need.
type SessionAuthService interface {
	Mint(ctx context.Context, idToken string) (*service.MintResult, error)
	Verify(ctx context.Context, artifact string) (domainauth.Claims, error)
	Logout(ctx context.Context, sessionID string) error
}

// SessionHandlers provides HTTP handlers for session lifecycle operations.
type SessionHandlers struct {
	Svc          SessionAuthService
	CookieDomain string
	IsDev        bool
	Logger       *slog.Logger
}

func (h *SessionHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// loginRequest is the POST /sessionLogin body.
type loginRequest struct {
	IDToken string `json:"idToken"`
}

// Login exchanges a verified identity assertion for a session cookie.
// POST /sessionLogin.
func (h *SessionHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.Svc.Mint(r.Context(), req.IDToken)
	if err != nil {
		// No cookie write on any failure path.
		if apperrors.IsUnauthorized(err) {
			WriteError(w, ErrorParams{
				Code:    http.StatusUnauthorized,
				ErrCode: "login_failed",
				Err:     err,
			})
			return
		}
		WriteAppError(w, err)
		return
	}

	h.setSessionCookie(w, result)
	WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "success",
		"expiresIn": result.ExpiresIn().Milliseconds(),
	})
}

// Logout clears the session cookie and revokes the server-side record.
// The cookie is cleared before revocation so the client signs out even if
// the record lookup fails. Logging out without a valid session is a no-op.
// POST /sessionLogout.
func (h *SessionHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, cookieErr := r.Cookie(sessionCookieName)
	h.clearSessionCookie(w)

	if cookieErr == nil && cookie.Value != "" {
		claims, err := h.Svc.Verify(r.Context(), cookie.Value)
		if err == nil {
			if logoutErr := h.Svc.Logout(r.Context(), claims.SessionID); logoutErr != nil {
				h.logger().WarnContext(r.Context(), "session revocation failed", "error", logoutErr)
				WriteError(w, ErrorParams{
					Code:    http.StatusInternalServerError,
					ErrCode: "logout_failed",
					Err:     errors.New("failed to revoke session"),
				})
				return
			}
		}
		// A cookie that fails verification is already unusable; nothing to revoke.
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Status reports the current authentication state without requiring auth.
// GET /auth/status.
func (h *SessionHandlers) Status(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	claims, err := h.Svc.Verify(r.Context(), cookie.Value)
	if err != nil {
		// Session is invalid, expired, or revoked; clear the stale cookie.
		h.clearSessionCookie(w)
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"id":    claims.Subject,
			"email": claims.Email,
			"role":  claims.Role,
			"admin": claims.Admin,
		},
		"expires_at": claims.ExpiresAt,
	})
}

// setSessionCookie writes the single session cookie for a freshly minted
// session. HttpOnly and SameSite=Strict keep the artifact out of script
// reach and off cross-site requests; Secure is dropped only in dev where
// there is no TLS.
func (h *SessionHandlers) setSessionCookie(w http.ResponseWriter, result *service.MintResult) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    result.Artifact,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   !h.IsDev,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(result.ExpiresIn().Seconds()),
	})
}

// clearSessionCookie expires the session cookie immediately, mirroring the
// attributes used when setting it so browsers reliably delete it.
func (h *SessionHandlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   !h.IsDev,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
	})
}
