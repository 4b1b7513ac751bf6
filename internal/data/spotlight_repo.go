package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/stylehaus/ui-api/internal/data/database"
	"github.com/stylehaus/ui-api/internal/data/pgxutil"
	"github.com/stylehaus/ui-api/internal/domain/model"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SpotlightRepo provides database operations for spotlights.
type SpotlightRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewSpotlightRepo creates a new SpotlightRepo with real time provider.
func NewSpotlightRepo(db *sql.DB) *SpotlightRepo {
	return &SpotlightRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewSpotlightRepoWithTimeProvider creates a new SpotlightRepo with a custom time provider (useful for tests).
func NewSpotlightRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *SpotlightRepo {
	return &SpotlightRepo{DB: db, timeProvider: tp}
}

// Create inserts a new spotlight owned by creatorSubject.
func (r *SpotlightRepo) Create(
	ctx context.Context,
	creatorSubject string,
	req *model.CreateSpotlightRequest,
) (*model.Spotlight, error) {
	if req == nil {
		return nil, errors.New("create spotlight request is required")
	}
	if strings.TrimSpace(creatorSubject) == "" {
		return nil, errors.New("creator subject is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.Spotlight
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO spotlights (
				title, body, media_url, creator_subject, status, created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6
			) RETURNING id, title, body, media_url, creator_subject, status, created_at, updated_at
		`,
			strings.TrimSpace(req.Title),
			req.Body,
			req.MediaURL,
			creatorSubject,
			req.Status,
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Spotlight])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// GetByID retrieves a spotlight by ID.
func (r *SpotlightRepo) GetByID(ctx context.Context, id string) (*model.Spotlight, error) {
	var spotlight model.Spotlight
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, spotlightGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		spotlight, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Spotlight])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSpotlightNotFound
		}
		return nil, fmt.Errorf("failed to get spotlight by ID: %w", err)
	}
	return &spotlight, nil
}

// ListWithOptions retrieves spotlights with optional filters and sorting.
func (r *SpotlightRepo) ListWithOptions(
	ctx context.Context,
	opts model.SpotlightsListOptions,
) ([]*model.Spotlight, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := r.buildSpotlightQueryOptions(opts, limit, offset)
	query, args := database.BuildListQuery(queryOpts)

	var rowsOut []model.Spotlight
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Spotlight])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list spotlights: %w", err)
	}
	res := make([]*model.Spotlight, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Count returns the number of spotlights matching the filters in opts.
func (r *SpotlightRepo) Count(ctx context.Context, opts model.SpotlightsListOptions) (int, error) {
	queryOpts := r.buildSpotlightQueryOptions(opts, 0, 0)
	queryOpts.CountOnly = true
	query, args := database.BuildListQuery(queryOpts)

	var count int
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, query, args...).Scan(&count)
	}); err != nil {
		return 0, fmt.Errorf("failed to count spotlights: %w", err)
	}
	return count, nil
}

// Update updates fields of a spotlight.
func (r *SpotlightRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateSpotlightRequest,
) (*model.Spotlight, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Spotlight
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		setClause, args := r.buildUpdateClause(req)
		args = append(args, id)
		query := "UPDATE spotlights SET " + setClause + " WHERE id = $" + strconv.Itoa(len(args)) +
			" RETURNING id, title, body, media_url, creator_subject, status, created_at, updated_at"
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Spotlight])
		return e
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

// Delete deletes a spotlight by ID.
func (r *SpotlightRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM spotlights WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete spotlight: %w", err)
	}
	return rows > 0, nil
}

// --- helpers ---

const spotlightGetByIDQuery = `
	SELECT id, title, body, media_url, creator_subject, status, created_at, updated_at
	FROM spotlights
	WHERE id = $1`

// spotlightColumns returns the standard column list for spotlight queries.
func spotlightColumns() []string {
	return []string{
		"id",
		"title",
		"body",
		"media_url",
		"creator_subject",
		"status",
		"created_at",
		"updated_at",
	}
}

// buildUpdateClause builds the SQL SET clause and args for updating a spotlight based on the request.
func (r *SpotlightRepo) buildUpdateClause(req model.UpdateSpotlightRequest) (string, []any) {
	setParts := make([]string, 0, 5)
	args := make([]any, 0, 6)
	nextIdx := func() int { return len(args) + 1 }

	if req.Title != nil {
		setParts = append(setParts, fmt.Sprintf("title = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Title))
	}
	if req.Body != nil {
		setParts = append(setParts, fmt.Sprintf("body = $%d", nextIdx()))
		args = append(args, *req.Body)
	}
	if req.MediaURL != nil {
		if strings.TrimSpace(*req.MediaURL) == "" {
			setParts = append(setParts, "media_url = NULL")
		} else {
			setParts = append(setParts, fmt.Sprintf("media_url = $%d", nextIdx()))
			args = append(args, *req.MediaURL)
		}
	}
	if req.Status != nil {
		setParts = append(setParts, fmt.Sprintf("status = $%d", nextIdx()))
		args = append(args, *req.Status)
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	return strings.Join(setParts, ", "), args
}

// buildSpotlightQueryOptions builds query options for spotlight listing with filters and sorting.
func (r *SpotlightRepo) buildSpotlightQueryOptions(
	opts model.SpotlightsListOptions,
	limit, offset int,
) *database.ListQueryOptions {
	queryOpts := []database.ListQueryOption{
		database.WithColumns(spotlightColumns()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}

	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("title", database.ILike, "%"+strings.TrimSpace(*opts.Q)+"%"),
		))
	}
	if opts.Status != nil && *opts.Status != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("status", database.Equal, *opts.Status),
		))
	}
	if opts.ExcludeDrafts {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("status", database.NotEqual, model.SpotlightStatusDraft),
		))
	}
	if opts.CreatorSubject != nil && strings.TrimSpace(*opts.CreatorSubject) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("creator_subject", database.Equal, strings.TrimSpace(*opts.CreatorSubject)),
		))
	}

	sortCol, sortDir := validateSpotlightSortOptions(opts.Sort, opts.Dir)
	queryOpts = append(queryOpts, database.WithOrderBy(sortCol, sortDir))

	return database.NewListQueryOptions("spotlights", queryOpts...)
}

// validateSpotlightSortOptions validates and returns safe sort column and direction.
func validateSpotlightSortOptions(sort, dir string) (string, string) {
	sortCol := "created_at"
	sortDir := sortDirDesc

	if sort != "" {
		allowedSorts := map[string]string{
			"title":      "title",
			"created_at": "created_at",
		}
		if validSort, ok := allowedSorts[strings.ToLower(strings.TrimSpace(sort))]; ok {
			sortCol = validSort
		}
	}
	if dir != "" {
		allowedDirs := map[string]string{
			"asc":  sortDirAsc,
			"desc": sortDirDesc,
		}
		if validDir, ok := allowedDirs[strings.ToLower(strings.TrimSpace(dir))]; ok {
			sortDir = validDir
		}
	}
	return sortCol, sortDir
}

func (r *SpotlightRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrSpotlightNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrSpotlightTitleExists
	}
	return err
}
