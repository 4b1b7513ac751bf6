// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.
package ports

import (
	"context"
	"errors"

	domainauth "github.com/stylehaus/ui-api/internal/domain/auth"
)

// TokenVerifier validates an identity assertion obtained after interactive
// login and returns the authenticated identity it asserts.
type TokenVerifier interface {
	// Verify checks the assertion's signature, expiry, and audience against
	// the identity provider; adapters map provider claims into Identity.
	Verify(ctx context.Context, rawToken string) (domainauth.Identity, error)
}

// SessionStore persists and retrieves server-side session records.
// Record presence is the revocation authority: deleting a record revokes
// the corresponding session artifact regardless of its signature.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// SessionCodec signs sessions into opaque artifacts and verifies them back.
type SessionCodec interface {
	// Issue produces a signed, time-bounded artifact binding the session.
	Issue(sess domainauth.Session) (string, error)
	// Parse verifies the artifact's signature and expiry and returns the
	// bound session snapshot.
	Parse(artifact string) (domainauth.Session, error)
}

// ClaimStore reads per-user claim records (role, admin flag). Records are
// mutated only by out-of-band administrative tooling; the running service
// treats them as read-only.
type ClaimStore interface {
	// GetBySubject returns the claim record for a subject.
	// Implementations return an error satisfying errors.Is(err, ErrClaimsNotFound)
	// when no record exists.
	GetBySubject(ctx context.Context, subject string) (ClaimRecord, error)
}

// ClaimRecord is a user's stored claim set.
type ClaimRecord struct {
	Subject  string
	Email    string
	Role     domainauth.Role
	Admin    bool
	Disabled bool
}

// ErrClaimsNotFound is returned by ClaimStore implementations when no claim
// record exists for a subject.
var ErrClaimsNotFound = errors.New("claim record not found")
