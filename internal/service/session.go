package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainauth "github.com/stylehaus/ui-api/internal/domain/auth"
	apperrors "github.com/stylehaus/ui-api/internal/errors"
	"github.com/stylehaus/ui-api/internal/ports"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const defaultSessionTTL = 120 * time.Hour

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	Verifier ports.TokenVerifier
	Sessions ports.SessionStore
	Codec    ports.SessionCodec
	Claims   ports.ClaimStore

	// SessionTTL bounds minted sessions; defaults to 5 days when zero.
	SessionTTL time.Duration
	// FreshLoginWindow rejects identity assertions issued earlier than this
	// before mint time. Zero disables the check.
	FreshLoginWindow time.Duration
	// VerifyTimeout caps how long artifact verification may block on the
	// session store. Zero disables the cap.
	VerifyTimeout time.Duration
}

// SessionService orchestrates session minting, verification, and logout.
// Minting exchanges a verified identity assertion for a signed session
// artifact backed by a server-side record; verification requires both the
// artifact and the record to be valid.
type SessionService struct {
	verifier ports.TokenVerifier
	sessions ports.SessionStore
	codec    ports.SessionCodec
	claims   ports.ClaimStore

	sessionTTL       time.Duration
	freshLoginWindow time.Duration
	verifyTimeout    time.Duration

	// lookups collapses concurrent store reads for the same session ID,
	// which bursts when a page load fans out parallel API calls.
	lookups singleflight.Group
}

// NewSessionService constructs a new SessionService.
func NewSessionService(opts SessionServiceOptions) (*SessionService, error) {
	if opts.Verifier == nil {
		return nil, errors.New("session service: Verifier is required")
	}
	if opts.Sessions == nil {
		return nil, errors.New("session service: Sessions is required")
	}
	if opts.Codec == nil {
		return nil, errors.New("session service: Codec is required")
	}
	ttl := opts.SessionTTL
	if ttl == 0 {
		ttl = defaultSessionTTL
	}
	return &SessionService{
		verifier:         opts.Verifier,
		sessions:         opts.Sessions,
		codec:            opts.Codec,
		claims:           opts.Claims,
		sessionTTL:       ttl,
		freshLoginWindow: opts.FreshLoginWindow,
		verifyTimeout:    opts.VerifyTimeout,
	}, nil
}

// MintResult contains the minted session and its signed artifact.
type MintResult struct {
	Session  domainauth.Session
	Artifact string
}

// ExpiresIn returns the remaining session lifetime, for the login response body.
func (r *MintResult) ExpiresIn() time.Duration {
	return time.Until(r.Session.ExpiresAt)
}

// Mint verifies an identity assertion and materializes a session from it:
// a server-side record plus a signed artifact bound to that record. Stored
// claim records take precedence over assertion claims; a subject without a
// record gets guest.
func (s *SessionService) Mint(ctx context.Context, idToken string) (*MintResult, error) {
	if idToken == "" {
		return nil, apperrors.Validation("idToken is required")
	}

	identity, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "identity assertion rejected")
	}

	now := time.Now()
	if !identity.ExpiresAt.IsZero() && now.After(identity.ExpiresAt) {
		return nil, apperrors.Unauthorized("identity assertion expired")
	}
	if s.freshLoginWindow > 0 && now.Sub(identity.IssuedAt) > s.freshLoginWindow {
		return nil, apperrors.Unauthorized("recent sign-in required")
	}

	role, admin, err := s.resolveClaims(ctx, identity)
	if err != nil {
		return nil, err
	}

	session := domainauth.Session{
		ID:        uuid.New().String(),
		Subject:   identity.Subject,
		Email:     identity.Email,
		Role:      role,
		Admin:     admin,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, apperrors.Wrap(saveErr, apperrors.ErrCodeInternal, "save session")
	}

	artifact, err := s.codec.Issue(session)
	if err != nil {
		// The record is useless without an artifact; drop it again.
		if delErr := s.sessions.Delete(ctx, session.ID); delErr != nil {
			return nil, apperrors.Wrap(errors.Join(err, delErr), apperrors.ErrCodeInternal, "issue session artifact")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "issue session artifact")
	}

	return &MintResult{Session: session, Artifact: artifact}, nil
}

// resolveClaims merges the identity assertion with the stored claim record.
// The record wins; a missing record degrades to guest; a disabled record
// blocks minting entirely.
func (s *SessionService) resolveClaims(
	ctx context.Context,
	identity domainauth.Identity,
) (domainauth.Role, bool, error) {
	if s.claims == nil {
		return domainauth.RoleGuest, false, nil
	}

	record, err := s.claims.GetBySubject(ctx, identity.Subject)
	if err != nil {
		if errors.Is(err, ports.ErrClaimsNotFound) {
			return domainauth.RoleGuest, false, nil
		}
		return "", false, apperrors.Wrap(err, apperrors.ErrCodeInternal, "read claim record")
	}
	if record.Disabled {
		return "", false, apperrors.Unauthorized("account disabled")
	}
	role := record.Role
	if !role.Valid() {
		role = domainauth.RoleGuest
	}
	return role, record.Admin, nil
}

// Verify checks a session artifact end to end: signature and expiry on the
// artifact itself, then presence of the server-side record (revocation).
// The store lookup is capped by the configured verify timeout.
func (s *SessionService) Verify(ctx context.Context, artifact string) (domainauth.Claims, error) {
	if artifact == "" {
		return domainauth.Claims{}, apperrors.Unauthorized("session artifact is required")
	}

	parsed, err := s.codec.Parse(artifact)
	if err != nil {
		return domainauth.Claims{}, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "invalid session")
	}

	if s.verifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.verifyTimeout)
		defer cancel()
	}

	result, err, _ := s.lookups.Do(parsed.ID, func() (any, error) {
		return s.sessions.Get(ctx, parsed.ID)
	})
	if err != nil {
		return domainauth.Claims{}, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "session revoked or expired")
	}
	stored := result.(domainauth.Session)

	return domainauth.Claims{
		Subject:   stored.Subject,
		Email:     stored.Email,
		Role:      stored.Role,
		Admin:     stored.Admin,
		SessionID: stored.ID,
		ExpiresAt: stored.ExpiresAt,
	}, nil
}

// Logout revokes a session by deleting its server-side record. Revoking an
// absent session is not an error.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
