package sessiontoken

// Package sessiontoken implements the session artifact format: a signed,
// time-bounded JWT binding a subject and claims snapshot to an opaque
// session ID. Only the server ever verifies it; clients treat it as opaque.

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	domainauth "github.com/stylehaus/ui-api/internal/domain/auth"
)

var (
	// ErrInvalidToken is returned for artifacts that fail signature or
	// structural validation.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrExpiredToken is returned for correctly signed but expired artifacts.
	ErrExpiredToken = errors.New("session token expired")
)

// Codec signs and verifies session artifacts with HS256.
type Codec struct {
	key    []byte
	issuer string
}

// NewCodec creates a Codec. The signing key is required.
func NewCodec(signingKey string) (*Codec, error) {
	if signingKey == "" {
		return nil, errors.New("session signing key is required")
	}
	return &Codec{key: []byte(signingKey), issuer: "stylehaus"}, nil
}

// sessionClaims is the JWT claim set carried by the artifact.
type sessionClaims struct {
	Email string          `json:"email,omitempty"`
	Role  domainauth.Role `json:"role"`
	Admin bool            `json:"admin"`
	SID   string          `json:"sid"`
	jwt.RegisteredClaims
}

// Issue produces a signed artifact for the session. Expiry is fixed at the
// session's ExpiresAt; no sliding renewal.
func (c *Codec) Issue(sess domainauth.Session) (string, error) {
	if sess.ID == "" {
		return "", errors.New("session ID is required")
	}
	if sess.Subject == "" {
		return "", errors.New("session subject is required")
	}

	claims := sessionClaims{
		Email: sess.Email,
		Role:  sess.Role,
		Admin: sess.Admin,
		SID:   sess.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   sess.Subject,
			IssuedAt:  jwt.NewNumericDate(sess.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse verifies the artifact's signature and expiry and returns the bound
// session snapshot. Tampered, malformed, or alg-confused tokens map to
// ErrInvalidToken; expired ones to ErrExpiredToken.
func (c *Codec) Parse(artifact string) (domainauth.Session, error) {
	if artifact == "" {
		return domainauth.Session{}, ErrInvalidToken
	}

	var claims sessionClaims
	token, err := jwt.ParseWithClaims(artifact, &claims,
		func(t *jwt.Token) (any, error) { return c.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domainauth.Session{}, ErrExpiredToken
		}
		return domainauth.Session{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || claims.SID == "" || claims.Subject == "" {
		return domainauth.Session{}, ErrInvalidToken
	}

	sess := domainauth.Session{
		ID:        claims.SID,
		Subject:   claims.Subject,
		Email:     claims.Email,
		Role:      claims.Role,
		Admin:     claims.Admin,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		sess.IssuedAt = claims.IssuedAt.Time
	}
	return sess, nil
}
