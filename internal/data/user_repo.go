package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/stylehaus/ui-api/internal/data/pgxutil"
	"github.com/stylehaus/ui-api/internal/domain/model"
	"github.com/stylehaus/ui-api/internal/ports"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// UserRepo provides database operations for stored claim records.
// It implements ports.ClaimStore for the session minting path.
type UserRepo struct {
	DB *sql.DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

var _ ports.ClaimStore = (*UserRepo)(nil)

const userSelectQuery = `
	SELECT subject, email, role, admin, disabled, created_at, updated_at
	FROM users
	WHERE subject = $1`

// GetBySubject returns the claim record for a subject as the session
// service consumes it. Satisfies ports.ErrClaimsNotFound when the subject
// has no row.
func (r *UserRepo) GetBySubject(ctx context.Context, subject string) (ports.ClaimRecord, error) {
	user, err := r.FindBySubject(ctx, subject)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ports.ClaimRecord{}, fmt.Errorf("%w: %s", ports.ErrClaimsNotFound, subject)
		}
		return ports.ClaimRecord{}, err
	}
	return ports.ClaimRecord{
		Subject:  user.Subject,
		Email:    user.Email,
		Role:     user.Role,
		Admin:    user.Admin,
		Disabled: user.Disabled,
	}, nil
}

// FindBySubject retrieves a full user row by subject.
func (r *UserRepo) FindBySubject(ctx context.Context, subject string) (*model.User, error) {
	var user model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, userSelectQuery, subject)
		if err != nil {
			return err
		}
		defer rows.Close()
		user, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by subject: %w", err)
	}
	return &user, nil
}

// Upsert creates or replaces the claim record for a subject.
func (r *UserRepo) Upsert(ctx context.Context, req *model.UpsertUserRequest) (*model.User, error) {
	if req == nil {
		return nil, errors.New("upsert user request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO users (subject, email, role, admin, disabled)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (subject) DO UPDATE SET
				email = EXCLUDED.email,
				role = EXCLUDED.role,
				admin = EXCLUDED.admin,
				disabled = EXCLUDED.disabled,
				updated_at = now()
			RETURNING subject, email, role, admin, disabled, created_at, updated_at
		`,
			strings.TrimSpace(req.Subject),
			strings.TrimSpace(req.Email),
			req.Role,
			req.Admin,
			req.Disabled,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return &out, nil
}

// Delete removes the claim record for a subject. Returns false when no row existed.
func (r *UserRepo) Delete(ctx context.Context, subject string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM users WHERE subject = $1`, subject)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return rows > 0, nil
}
