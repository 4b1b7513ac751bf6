package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the identity-assertion verification mode.
type AuthMode string

const (
	// AuthModeOIDC verifies identity assertions against the IdP's published keys.
	AuthModeOIDC AuthMode = "oidc"
	// AuthModeStatic uses a config-driven static verifier (development only).
	AuthModeStatic AuthMode = "static"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oidc", "static":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oidc, static)", v)
	}
}

// OIDCConfig contains configuration for verifying identity assertions
// against the identity provider.
type OIDCConfig struct {
	ClientID     string `env:"CLIENT_ID"     envDefault:"stylehaus"`
	IssuerURL    string `env:"ISSUER_URL"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
}

// StaticAuthConfig controls the static/dev token verifier.
// Used when AUTH_MODE=static for development and testing: any identity
// assertion equal to Token verifies as the configured identity.
type StaticAuthConfig struct {
	Token   string `env:"TOKEN"   envDefault:"dev-token"`
	Subject string `env:"SUBJECT" envDefault:"dev-user"`
	Email   string `env:"EMAIL"   envDefault:"dev@stylehaus.local"`
	Role    string `env:"ROLE"    envDefault:"admin"`
}

// AuthConfig groups all authentication and session configuration.
type AuthConfig struct {
	// Mode determines which identity-assertion verifier to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oidc"`

	// OIDC configuration (used when Mode=oidc).
	OIDC OIDCConfig `envPrefix:"OIDC_"`

	// StaticAuth configuration (used when Mode=static).
	StaticAuth StaticAuthConfig `envPrefix:"STATIC_AUTH_"`

	// SessionSigningKey signs session-artifact JWTs (HS256). Required.
	SessionSigningKey string `env:"SESSION_SIGNING_KEY,required"`

	// SessionTTL is the fixed lifetime of a session artifact from mint time.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"120h"`

	// FreshLoginWindow is how recently an identity assertion must have been
	// issued to be accepted for minting. Stale assertions force the client
	// to refresh before a session is minted.
	FreshLoginWindow time.Duration `env:"FRESH_LOGIN_WINDOW" envDefault:"5m"`

	// VerifyTimeout bounds each session verification (signature check plus
	// revocation lookup).
	VerifyTimeout time.Duration `env:"VERIFY_TIMEOUT" envDefault:"3s"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL <= 0 {
		a.SessionTTL = 120 * time.Hour
	}
	if a.FreshLoginWindow <= 0 {
		a.FreshLoginWindow = 5 * time.Minute
	}
	if a.VerifyTimeout <= 0 {
		a.VerifyTimeout = 3 * time.Second
	}
}
