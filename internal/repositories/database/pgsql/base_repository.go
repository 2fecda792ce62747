package pgsql

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/relatecrm/relate_crm_app/internal/apperrors"
)

// uniqueViolation is the SQLSTATE postgres reports for unique index conflicts.
const uniqueViolation = "23505"

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// isUniqueViolation reports whether err is a unique constraint conflict.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// translateStorageErr classifies a pgx error: no-rows stays a not-found, SQL
// level failures pass through, and anything else (dial errors, timeouts,
// closed pools) counts as the store being unreachable.
func translateStorageErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return err
	}
	return fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
}
