package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"fmt"
	"strings"
	"time"
)

// Role represents an application authorization role.
// Keep string form for easy persistence and cookies.
// The set is closed; ParseRole rejects anything else.
type Role string

const (
	RoleGuest   Role = "guest"
	RoleFan     Role = "fan"
	RoleCreator Role = "creator"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is a member of the closed enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleFan, RoleCreator, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole normalizes a role string and rejects values outside the
// enumeration. An empty input maps to RoleGuest.
func ParseRole(value string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(value)))
	if r == "" {
		return RoleGuest, nil
	}
	if !r.Valid() {
		return "", fmt.Errorf("unknown role: %q", value)
	}
	return r, nil
}

// Identity represents the authenticated principal carried by a verified
// identity assertion. Verifier adapters map provider-specific claims into
// this shape.
type Identity struct {
	Subject   string // stable user identifier (sub claim)
	Email     string
	Role      Role // role custom claim from the assertion
	Admin     bool // legacy admin flag, redundant with Role
	IssuedAt  time.Time
	ExpiresAt time.Time // absolute expiry of the assertion
}

// Session is the server-side record bound into a session artifact.
// ID is an opaque session identifier (random, URL-safe).
type Session struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Admin     bool      `json:"admin"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Claims is the trusted per-request record attached after session
// verification. It is rebuilt fresh for every request and never mutated
// across requests.
type Claims struct {
	Subject   string
	Email     string
	Role      Role
	Admin     bool
	SessionID string
	ExpiresAt time.Time
}

// IsGuest reports whether the claims carry the guest role.
func (c Claims) IsGuest() bool { return c.Role == RoleGuest }
