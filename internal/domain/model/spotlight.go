//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxSpotlightTitleLen = 255
	maxSpotlightBodyLen  = 10000
)

// SpotlightStatus tracks where a spotlight sits in its publishing lifecycle.
type SpotlightStatus string

const (
	SpotlightStatusDraft     SpotlightStatus = "draft"
	SpotlightStatusPublished SpotlightStatus = "published"
	SpotlightStatusFeatured  SpotlightStatus = "featured"
)

// Valid reports whether the spotlight status is supported.
func (s SpotlightStatus) Valid() bool {
	switch s {
	case SpotlightStatusDraft, SpotlightStatusPublished, SpotlightStatusFeatured:
		return true
	default:
		return false
	}
}

// normalizeSpotlightStatus trims and lowercases the input, defaulting to draft when empty.
func normalizeSpotlightStatus(v SpotlightStatus) SpotlightStatus {
	normalized := SpotlightStatus(strings.ToLower(strings.TrimSpace(string(v))))
	if normalized == "" {
		return SpotlightStatusDraft
	}
	return normalized
}

// ParseSpotlightStatus normalizes a status string and reports whether it is supported.
func ParseSpotlightStatus(value string) (SpotlightStatus, bool) {
	status := SpotlightStatus(strings.ToLower(strings.TrimSpace(value)))
	if status.Valid() {
		return status, true
	}
	return "", false
}

// SpotlightsListOptions controls paging and filtering for listing spotlights.
// Notes:
// - Sort supports: "created_at", "title" (case-insensitive).
// - Dir supports: "asc", "desc" (case-insensitive); values are normalized internally.
// - Q matches title via ILIKE substring.
// - Status and CreatorSubject match exactly.
type SpotlightsListOptions struct {
	Limit          int
	Offset         int
	Q              *string          // substring match on title (ILIKE)
	Status         *SpotlightStatus // exact match
	ExcludeDrafts  bool             // drop status=draft rows
	CreatorSubject *string          // exact match
	Sort           string           // allowed: "created_at", "title"
	Dir            string           // allowed: "asc", "desc" (case-insensitive; normalized internally)
}

// Spotlight is a community feature authored by a creator and surfaced to fans.
type Spotlight struct {
	ID             string          `json:"id"                  db:"id"`
	Title          string          `json:"title"               db:"title"`
	Body           string          `json:"body"                db:"body"`
	MediaURL       *string         `json:"media_url,omitempty" db:"media_url"`
	CreatorSubject string          `json:"creator_subject"     db:"creator_subject"`
	Status         SpotlightStatus `json:"status"              db:"status"`
	CreatedAt      time.Time       `json:"created_at"          db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"          db:"updated_at"`
}

// CreateSpotlightRequest represents parameters to create a Spotlight.
type CreateSpotlightRequest struct {
	Title    string          `json:"title"`
	Body     string          `json:"body"`
	MediaURL *string         `json:"media_url,omitempty"`
	Status   SpotlightStatus `json:"status,omitempty"`
}

// UpdateSpotlightRequest represents parameters to update a Spotlight.
type UpdateSpotlightRequest struct {
	Title    *string          `json:"title,omitempty"`
	Body     *string          `json:"body,omitempty"`
	MediaURL *string          `json:"media_url,omitempty"`
	Status   *SpotlightStatus `json:"status,omitempty"`
}

// Validate validates CreateSpotlightRequest.
func (r *CreateSpotlightRequest) Validate() error {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxSpotlightTitleLen {
		return errors.New("title cannot exceed 255 characters")
	}
	if utf8.RuneCountInString(r.Body) > maxSpotlightBodyLen {
		return errors.New("body cannot exceed 10000 characters")
	}
	r.Status = normalizeSpotlightStatus(r.Status)
	if !r.Status.Valid() {
		return errors.New("invalid status")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateSpotlightRequest.
func (r *UpdateSpotlightRequest) HasUpdates() bool {
	return r.Title != nil || r.Body != nil || r.MediaURL != nil || r.Status != nil
}

// Validate validates UpdateSpotlightRequest, ensuring at least one field is set and values are sane.
func (r *UpdateSpotlightRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Title != nil {
		t := strings.TrimSpace(*r.Title)
		if t == "" {
			return errors.New("title cannot be empty")
		}
		if utf8.RuneCountInString(t) > maxSpotlightTitleLen {
			return errors.New("title cannot exceed 255 characters")
		}
	}
	if r.Body != nil && utf8.RuneCountInString(*r.Body) > maxSpotlightBodyLen {
		return errors.New("body cannot exceed 10000 characters")
	}
	if r.Status != nil {
		status := normalizeSpotlightStatus(*r.Status)
		if !status.Valid() {
			return errors.New("invalid status")
		}
		*r.Status = status
	}
	return nil
}
