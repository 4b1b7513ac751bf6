package service

import (
	"context"
	"errors"

	"github.com/stylehaus/ui-api/internal/core"
	"github.com/stylehaus/ui-api/internal/data"
	domainauth "github.com/stylehaus/ui-api/internal/domain/auth"
	"github.com/stylehaus/ui-api/internal/domain/model"
	apperrors "github.com/stylehaus/ui-api/internal/errors"
)

// SpotlightServiceOptions groups dependencies for SpotlightService.
type SpotlightServiceOptions struct {
	Spotlights core.SpotlightRepository
}

// SpotlightService orchestrates spotlight CRUD with ownership and
// moderation rules: creators manage their own drafts, admins moderate.
type SpotlightService struct {
	spotlights core.SpotlightRepository
}

// NewSpotlightService constructs a new SpotlightService.
func NewSpotlightService(opts SpotlightServiceOptions) *SpotlightService {
	return &SpotlightService{spotlights: opts.Spotlights}
}

// SpotlightPage is a page of spotlights plus the unpaginated total.
type SpotlightPage struct {
	Items []*model.Spotlight `json:"items"`
	Total int                `json:"total"`
}

// ListVisible returns published and featured spotlights (drafts excluded),
// regardless of who asks.
func (s *SpotlightService) ListVisible(
	ctx context.Context,
	opts model.SpotlightsListOptions,
) (*SpotlightPage, error) {
	opts.ExcludeDrafts = true
	return s.list(ctx, opts)
}

// ListOwn returns the caller's spotlights in every status.
func (s *SpotlightService) ListOwn(
	ctx context.Context,
	claims domainauth.Claims,
	opts model.SpotlightsListOptions,
) (*SpotlightPage, error) {
	opts.CreatorSubject = &claims.Subject
	return s.list(ctx, opts)
}

func (s *SpotlightService) list(
	ctx context.Context,
	opts model.SpotlightsListOptions,
) (*SpotlightPage, error) {
	items, err := s.spotlights.ListWithOptions(ctx, opts)
	if err != nil {
		return nil, mapSpotlightErr(err)
	}
	total, err := s.spotlights.Count(ctx, opts)
	if err != nil {
		return nil, mapSpotlightErr(err)
	}
	if items == nil {
		items = []*model.Spotlight{}
	}
	return &SpotlightPage{Items: items, Total: total}, nil
}

// Create creates a draft spotlight owned by the caller. The status field of
// the request is ignored; publishing is a separate, explicit step.
func (s *SpotlightService) Create(
	ctx context.Context,
	claims domainauth.Claims,
	req *model.CreateSpotlightRequest,
) (*model.Spotlight, error) {
	if req == nil {
		return nil, apperrors.Validation("create spotlight request is required")
	}
	req.Status = model.SpotlightStatusDraft
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	out, err := s.spotlights.Create(ctx, claims.Subject, req)
	if err != nil {
		return nil, mapSpotlightErr(err)
	}
	return out, nil
}

// GetByID returns one spotlight. Drafts are visible only to their creator
// or an admin.
func (s *SpotlightService) GetByID(
	ctx context.Context,
	claims domainauth.Claims,
	id string,
) (*model.Spotlight, error) {
	spotlight, err := s.spotlights.GetByID(ctx, id)
	if err != nil {
		return nil, mapSpotlightErr(err)
	}
	if spotlight.Status == model.SpotlightStatusDraft &&
		spotlight.CreatorSubject != claims.Subject && !claims.Admin {
		// Hide the draft's existence from everyone else.
		return nil, apperrors.NotFoundf("spotlight %s not found", id)
	}
	return spotlight, nil
}

// Update edits a spotlight. Only the owning creator may edit, and only
// while it is still a draft.
func (s *SpotlightService) Update(
	ctx context.Context,
	claims domainauth.Claims,
	id string,
	req model.UpdateSpotlightRequest,
) (*model.Spotlight, error) {
	spotlight, err := s.spotlights.GetByID(ctx, id)
	if err != nil {
		return nil, mapSpotlightErr(err)
	}
	if spotlight.CreatorSubject != claims.Subject {
		return nil, apperrors.Forbidden("only the creator may edit this spotlight")
	}
	if spotlight.Status != model.SpotlightStatusDraft {
		return nil, apperrors.Conflict("only drafts can be edited")
	}
	// Status transitions go through Publish/Feature, not Update.
	req.Status = nil
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	out, err := s.spotlights.Update(ctx, id, req)
	if err != nil {
		return nil, mapSpotlightErr(err)
	}
	return out, nil
}

// Publish moves the caller's draft to published.
func (s *SpotlightService) Publish(
	ctx context.Context,
	claims domainauth.Claims,
	id string,
) (*model.Spotlight, error) {
	spotlight, err := s.spotlights.GetByID(ctx, id)
	if err != nil {
		return nil, mapSpotlightErr(err)
	}
	if spotlight.CreatorSubject != claims.Subject {
		return nil, apperrors.Forbidden("only the creator may publish this spotlight")
	}
	if spotlight.Status != model.SpotlightStatusDraft {
		return nil, apperrors.Conflict("spotlight is already published")
	}
	status := model.SpotlightStatusPublished
	out, err := s.spotlights.Update(ctx, id, model.UpdateSpotlightRequest{Status: &status})
	if err != nil {
		return nil, mapSpotlightErr(err)
	}
	return out, nil
}

// Feature promotes a published spotlight to featured. Admin-only moderation.
func (s *SpotlightService) Feature(
	ctx context.Context,
	claims domainauth.Claims,
	id string,
) (*model.Spotlight, error) {
	if !claims.Admin {
		return nil, apperrors.Forbidden("featuring requires admin")
	}
	spotlight, err := s.spotlights.GetByID(ctx, id)
	if err != nil {
		return nil, mapSpotlightErr(err)
	}
	if spotlight.Status != model.SpotlightStatusPublished {
		return nil, apperrors.Conflict("only published spotlights can be featured")
	}
	status := model.SpotlightStatusFeatured
	out, err := s.spotlights.Update(ctx, id, model.UpdateSpotlightRequest{Status: &status})
	if err != nil {
		return nil, mapSpotlightErr(err)
	}
	return out, nil
}

// Delete removes a spotlight. Allowed for the owning creator or an admin.
func (s *SpotlightService) Delete(
	ctx context.Context,
	claims domainauth.Claims,
	id string,
) error {
	spotlight, err := s.spotlights.GetByID(ctx, id)
	if err != nil {
		return mapSpotlightErr(err)
	}
	if spotlight.CreatorSubject != claims.Subject && !claims.Admin {
		return apperrors.Forbidden("only the creator or an admin may delete this spotlight")
	}
	if _, err := s.spotlights.Delete(ctx, id); err != nil {
		return mapSpotlightErr(err)
	}
	return nil
}

func mapSpotlightErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, data.ErrSpotlightNotFound):
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "spotlight not found")
	case errors.Is(err, data.ErrSpotlightTitleExists):
		return apperrors.Wrap(err, apperrors.ErrCodeConflict, "spotlight title already exists")
	default:
		return err
	}
}
