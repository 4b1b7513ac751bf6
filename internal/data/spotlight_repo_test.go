package data

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/stylehaus/ui-api/internal/domain/auth"
	"github.com/stylehaus/ui-api/internal/domain/model"
	"github.com/stylehaus/ui-api/internal/testutil"
)

func seedCreator(t *testing.T, db *sql.DB, subject string) {
	t.Helper()
	_, err := NewUserRepo(db).Upsert(context.Background(), &model.UpsertUserRequest{
		Subject: subject,
		Role:    domainauth.RoleCreator,
	})
	require.NoError(t, err)
}

func TestSpotlightRepo_CreateAndGet(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewSpotlightRepo(db)
		ctx := context.Background()
		seedCreator(t, db, "creator-1")

		created, err := repo.Create(ctx, "creator-1", &model.CreateSpotlightRequest{
			Title:    "Fall lookbook",
			Body:     "Layered knits and long coats.",
			MediaURL: testutil.StringPtr("https://cdn.stylehaus.io/fall.jpg"),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "Fall lookbook", created.Title)
		assert.Equal(t, "creator-1", created.CreatorSubject)
		assert.Equal(t, model.SpotlightStatusDraft, created.Status)

		fetched, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, fetched.ID)
		require.NotNil(t, fetched.MediaURL)
		assert.Equal(t, "https://cdn.stylehaus.io/fall.jpg", *fetched.MediaURL)
	})
}

func TestSpotlightRepo_GetByID_NotFound(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewSpotlightRepo(db)

		_, err := repo.GetByID(context.Background(), "00000000-0000-0000-0000-000000000000")
		assert.True(t, errors.Is(err, ErrSpotlightNotFound))
	})
}

func TestSpotlightRepo_DuplicateTitlePerCreator(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewSpotlightRepo(db)
		ctx := context.Background()
		seedCreator(t, db, "creator-1")
		seedCreator(t, db, "creator-2")

		_, err := repo.Create(ctx, "creator-1", &model.CreateSpotlightRequest{Title: "Drop"})
		require.NoError(t, err)

		_, err = repo.Create(ctx, "creator-1", &model.CreateSpotlightRequest{Title: "Drop"})
		assert.True(t, errors.Is(err, ErrSpotlightTitleExists))

		// Same title under a different creator is allowed.
		_, err = repo.Create(ctx, "creator-2", &model.CreateSpotlightRequest{Title: "Drop"})
		assert.NoError(t, err)
	})
}

func TestSpotlightRepo_ListWithOptions(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewSpotlightRepo(db)
		ctx := context.Background()
		seedCreator(t, db, "creator-1")
		seedCreator(t, db, "creator-2")

		published := model.SpotlightStatusPublished
		for _, s := range []struct {
			creator string
			title   string
			status  model.SpotlightStatus
		}{
			{"creator-1", "Street style", published},
			{"creator-1", "Vintage denim", model.SpotlightStatusDraft},
			{"creator-2", "Street market finds", published},
		} {
			_, err := repo.Create(ctx, s.creator, &model.CreateSpotlightRequest{
				Title:  s.title,
				Status: s.status,
			})
			require.NoError(t, err)
		}

		got, err := repo.ListWithOptions(ctx, model.SpotlightsListOptions{Status: &published})
		require.NoError(t, err)
		assert.Len(t, got, 2)

		q := "street"
		got, err = repo.ListWithOptions(ctx, model.SpotlightsListOptions{Q: &q})
		require.NoError(t, err)
		assert.Len(t, got, 2)

		creator := "creator-1"
		got, err = repo.ListWithOptions(ctx, model.SpotlightsListOptions{
			CreatorSubject: &creator,
			Sort:           "title",
			Dir:            "asc",
		})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Street style", got[0].Title)
		assert.Equal(t, "Vintage denim", got[1].Title)

		count, err := repo.Count(ctx, model.SpotlightsListOptions{Status: &published})
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}

func TestSpotlightRepo_Update(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewSpotlightRepo(db)
		ctx := context.Background()
		seedCreator(t, db, "creator-1")

		created, err := repo.Create(ctx, "creator-1", &model.CreateSpotlightRequest{
			Title:    "Work in progress",
			MediaURL: testutil.StringPtr("https://cdn.stylehaus.io/wip.jpg"),
		})
		require.NoError(t, err)

		status := model.SpotlightStatusPublished
		updated, err := repo.Update(ctx, created.ID, model.UpdateSpotlightRequest{
			Title:    testutil.StringPtr("Finished look"),
			Status:   &status,
			MediaURL: testutil.StringPtr(""),
		})
		require.NoError(t, err)
		assert.Equal(t, "Finished look", updated.Title)
		assert.Equal(t, model.SpotlightStatusPublished, updated.Status)
		assert.Nil(t, updated.MediaURL, "blank media_url clears the column")

		_, err = repo.Update(ctx, "00000000-0000-0000-0000-000000000000", model.UpdateSpotlightRequest{
			Title: testutil.StringPtr("nope"),
		})
		assert.True(t, errors.Is(err, ErrSpotlightNotFound))

		_, err = repo.Update(ctx, created.ID, model.UpdateSpotlightRequest{})
		assert.Error(t, err, "empty update rejected")
	})
}

func TestSpotlightRepo_Delete(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewSpotlightRepo(db)
		ctx := context.Background()
		seedCreator(t, db, "creator-1")

		created, err := repo.Create(ctx, "creator-1", &model.CreateSpotlightRequest{Title: "Short lived"})
		require.NoError(t, err)

		deleted, err := repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}
