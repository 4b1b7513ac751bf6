// Package staticauth provides a simple, config-driven TokenVerifier for
// local development. Any assertion equal to the configured token verifies
// as the configured identity; everything else is rejected.
package staticauth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	domainauth "github.com/stylehaus/ui-api/internal/domain/auth"
)

// Config controls the static verifier behavior.
type Config struct {
	Token   string
	Subject string
	Email   string
	Role    string
	// AssertionTTL bounds how long the fixed identity's assertion appears
	// valid; defaults to 1h when zero.
	AssertionTTL time.Duration
}

// Verifier implements ports.TokenVerifier for local development.
type Verifier struct {
	token        string
	subject      string
	email        string
	role         domainauth.Role
	admin        bool
	assertionTTL time.Duration
}

// NewVerifier constructs a static verifier from Config.
func NewVerifier(cfg Config) (*Verifier, error) {
	if cfg.Token == "" {
		return nil, errors.New("static auth: Token is required")
	}
	if cfg.Subject == "" {
		return nil, errors.New("static auth: Subject is required")
	}
	role, err := domainauth.ParseRole(cfg.Role)
	if err != nil {
		return nil, fmt.Errorf("static auth: %w", err)
	}
	ttl := cfg.AssertionTTL
	if ttl == 0 {
		ttl = time.Hour
	}
	return &Verifier{
		token:        cfg.Token,
		subject:      cfg.Subject,
		email:        cfg.Email,
		role:         role,
		admin:        role == domainauth.RoleAdmin,
		assertionTTL: ttl,
	}, nil
}

// Verify accepts only the configured token and returns the fixed identity
// with a fresh issue time, so mint-time freshness checks pass.
func (v *Verifier) Verify(_ context.Context, rawToken string) (domainauth.Identity, error) {
	if subtle.ConstantTimeCompare([]byte(rawToken), []byte(v.token)) != 1 {
		return domainauth.Identity{}, errors.New("static auth: unknown identity assertion")
	}
	now := time.Now()
	return domainauth.Identity{
		Subject:   v.subject,
		Email:     v.email,
		Role:      v.role,
		Admin:     v.admin,
		IssuedAt:  now,
		ExpiresAt: now.Add(v.assertionTTL),
	}, nil
}
