//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"

	domainauth "github.com/stylehaus/ui-api/internal/domain/auth"
)

// User is a stored claim record keyed by the identity provider subject.
// The running service only reads these rows; writes happen through
// administrative tooling.
type User struct {
	Subject   string          `json:"subject"    db:"subject"`
	Email     string          `json:"email"      db:"email"`
	Role      domainauth.Role `json:"role"       db:"role"`
	Admin     bool            `json:"admin"      db:"admin"`
	Disabled  bool            `json:"disabled"   db:"disabled"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// UpsertUserRequest represents parameters to create or replace a claim record.
type UpsertUserRequest struct {
	Subject  string          `json:"subject"`
	Email    string          `json:"email"`
	Role     domainauth.Role `json:"role"`
	Admin    bool            `json:"admin"`
	Disabled bool            `json:"disabled"`
}

// Validate validates UpsertUserRequest.
func (r *UpsertUserRequest) Validate() error {
	if strings.TrimSpace(r.Subject) == "" {
		return errors.New("subject is required")
	}
	if !r.Role.Valid() {
		return errors.New("invalid role")
	}
	return nil
}
