// Package core defines repository interfaces consumed by the service layer.
// The core defines interfaces and the data layer provides implementations.
package core

import (
	"context"

	"github.com/stylehaus/ui-api/internal/domain/model"
)

// SpotlightRepository defines persistence operations for spotlights.
type SpotlightRepository interface {
	Create(ctx context.Context, creatorSubject string, req *model.CreateSpotlightRequest) (*model.Spotlight, error)
	GetByID(ctx context.Context, id string) (*model.Spotlight, error)
	ListWithOptions(ctx context.Context, opts model.SpotlightsListOptions) ([]*model.Spotlight, error)
	Count(ctx context.Context, opts model.SpotlightsListOptions) (int, error)
	Update(ctx context.Context, id string, req model.UpdateSpotlightRequest) (*model.Spotlight, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// UserRepository defines persistence operations for stored claim records.
type UserRepository interface {
	FindBySubject(ctx context.Context, subject string) (*model.User, error)
	Upsert(ctx context.Context, req *model.UpsertUserRequest) (*model.User, error)
	Delete(ctx context.Context, subject string) (bool, error)
}
