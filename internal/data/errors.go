package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// User repository sentinels.
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")

	// Spotlight repository sentinels.
	ErrSpotlightNotFound    = errors.New("spotlight not found")
	ErrSpotlightTitleExists = errors.New("spotlight title already exists")
)

const (
	sortDirAsc  = "ASC"
	sortDirDesc = "DESC"
)
