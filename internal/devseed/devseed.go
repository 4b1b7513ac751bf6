// Package devseed seeds a development database with demo claim records
// and spotlights so a fresh environment is immediately usable. It runs
// only in dev mode and is idempotent: existing rows are left alone.
package devseed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stylehaus/ui-api/internal/data"
	domainauth "github.com/stylehaus/ui-api/internal/domain/auth"
	"github.com/stylehaus/ui-api/internal/domain/model"
)

var seedUsers = []model.UpsertUserRequest{
	{Subject: "dev-fan", Email: "fan@stylehaus.local", Role: domainauth.RoleFan},
	{Subject: "dev-creator", Email: "creator@stylehaus.local", Role: domainauth.RoleCreator},
	{Subject: "dev-admin", Email: "admin@stylehaus.local", Role: domainauth.RoleAdmin, Admin: true},
}

type seedSpotlight struct {
	creator string
	req     model.CreateSpotlightRequest
}

var seedSpotlights = []seedSpotlight{
	{
		creator: "dev-creator",
		req: model.CreateSpotlightRequest{
			Title:  "Layering for the shoulder season",
			Body:   "Three closet staples that carry an outfit from August into October.",
			Status: model.SpotlightStatusPublished,
		},
	},
	{
		creator: "dev-creator",
		req: model.CreateSpotlightRequest{
			Title:  "Thrifted denim, three ways",
			Body:   "Work in progress. Still shooting looks two and three.",
			Status: model.SpotlightStatusDraft,
		},
	},
}

// Run seeds demo data into the database. Safe to call on every startup
// in dev mode.
func Run(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	users := data.NewUserRepo(db)
	spotlights := data.NewSpotlightRepo(db)

	for i := range seedUsers {
		if _, err := users.FindBySubject(ctx, seedUsers[i].Subject); err == nil {
			continue
		} else if !errors.Is(err, data.ErrUserNotFound) {
			return fmt.Errorf("devseed: check user %q: %w", seedUsers[i].Subject, err)
		}
		if _, err := users.Upsert(ctx, &seedUsers[i]); err != nil {
			return fmt.Errorf("devseed: seed user %q: %w", seedUsers[i].Subject, err)
		}
		logger.InfoContext(ctx, "seeded claim record", "subject", seedUsers[i].Subject, "role", seedUsers[i].Role)
	}

	for i := range seedSpotlights {
		seed := seedSpotlights[i]
		created, err := spotlights.Create(ctx, seed.creator, &seed.req)
		if err != nil {
			if errors.Is(err, data.ErrSpotlightTitleExists) {
				continue
			}
			return fmt.Errorf("devseed: seed spotlight %q: %w", seed.req.Title, err)
		}
		logger.InfoContext(ctx, "seeded spotlight", "id", created.ID, "title", created.Title)
	}

	return nil
}
