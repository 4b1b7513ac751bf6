package errors

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapDBError_Nil(t *testing.T) {
	if MapDBError(nil) != nil {
		t.Error("MapDBError(nil) should return nil")
	}
}

func TestMapDBError_NoRows(t *testing.T) {
	err := MapDBError(pgx.ErrNoRows)
	if !IsNotFound(err) {
		t.Errorf("pgx.ErrNoRows should map to NotFound, got %v", err)
	}
}

func TestMapDBError_ContextErrors(t *testing.T) {
	var appErr *AppError

	err := MapDBError(context.DeadlineExceeded)
	if !errors.As(err, &appErr) || appErr.Code != ErrCodeTimeout {
		t.Errorf("DeadlineExceeded should map to Timeout, got %v", err)
	}

	err = MapDBError(context.Canceled)
	if !errors.As(err, &appErr) || appErr.Code != ErrCodeCanceled {
		t.Errorf("Canceled should map to Canceled, got %v", err)
	}
}

func TestMapDBError_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:   pgerrcode.UniqueViolation,
		Detail: "Key (title)=(Fall Looks) already exists.",
	}

	err := MapDBError(pgErr)
	if !IsConflict(err) {
		t.Fatalf("unique violation should map to Conflict, got %v", err)
	}
	var appErr *AppError
	errors.As(err, &appErr)
	if appErr.Field != "title" {
		t.Errorf("field = %q, want title", appErr.Field)
	}
}

func TestMapDBError_UniqueViolation_ConstraintFallback(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		ConstraintName: "users_email_key",
	}

	err := MapDBError(pgErr)
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Field != "email" {
		t.Errorf("expected field email inferred from constraint, got %v", err)
	}
}

func TestMapDBError_NotNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       pgerrcode.NotNullViolation,
		ColumnName: "title",
	}

	err := MapDBError(pgErr)
	if !IsValidation(err) {
		t.Errorf("not-null violation should map to Validation, got %v", err)
	}
}

func TestMapDBError_PassThrough(t *testing.T) {
	plain := errors.New("some other failure")
	if got := MapDBError(plain); !errors.Is(got, plain) {
		t.Errorf("unrecognized errors should pass through, got %v", got)
	}
}
