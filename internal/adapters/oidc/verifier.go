// Package oidc verifies identity assertions (ID tokens) against the
// identity provider's published keys.
package oidc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	domainauth "github.com/stylehaus/ui-api/internal/domain/auth"
	"golang.org/x/oauth2"
)

// VerifierConfig holds configuration for the OIDC verifier.
type VerifierConfig struct {
	ClientID     string
	IssuerURL    string
	DiscoveryURL string       // alternative to IssuerURL; trailing discovery path is stripped
	HTTPClient   *http.Client // Optional, defaults to a 30s-timeout client
}

// Verifier implements ports.TokenVerifier using go-oidc.
type Verifier struct {
	provider *gooidc.Provider
	verifier *gooidc.IDTokenVerifier
}

// NewVerifier creates an OIDC verifier (single discovery fetch).
func NewVerifier(cfg VerifierConfig) (*Verifier, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	issuer := cfg.IssuerURL
	if issuer == "" {
		issuer = cfg.DiscoveryURL
	}
	if issuer == "" {
		return nil, errors.New("issuer URL is required")
	}
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
	issuer = strings.TrimSuffix(issuer, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
	provider, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc new provider: %w", err)
	}

	return &Verifier{
		provider: provider,
		verifier: provider.Verifier(&gooidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

// idTokenClaims is a superset of the claim shapes the platform mints: the
// standard OIDC set plus the role and legacy admin custom claims.
type idTokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Admin bool   `json:"admin"`
}

// Verify checks the assertion's signature, audience, and expiry and maps
// its claims into a domain Identity. Unknown role claims are rejected
// rather than silently degraded; a missing role claim maps to guest.
func (v *Verifier) Verify(ctx context.Context, rawToken string) (domainauth.Identity, error) {
	if rawToken == "" {
		return domainauth.Identity{}, errors.New("identity assertion is required")
	}

	idToken, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("verify identity assertion: %w", err)
	}

	var claims idTokenClaims
	if claimsErr := idToken.Claims(&claims); claimsErr != nil {
		return domainauth.Identity{}, fmt.Errorf("parse assertion claims: %w", claimsErr)
	}

	role, err := domainauth.ParseRole(claims.Role)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("assertion role claim: %w", err)
	}

	return domainauth.Identity{
		Subject:   idToken.Subject,
		Email:     claims.Email,
		Role:      role,
		Admin:     claims.Admin,
		IssuedAt:  idToken.IssuedAt,
		ExpiresAt: idToken.Expiry,
	}, nil
}
