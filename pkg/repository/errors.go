package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Mapping names the domain error reported for each recognized database
// failure. A nil field leaves that failure unmapped.
type Mapping struct {
	NotFound  error // sql.ErrNoRows
	Duplicate error // unique violation
	Reference error // foreign key violation: the referenced row is missing
}

// Map translates err using m. Unrecognized errors are returned unchanged.
func (m Mapping) Map(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) && m.NotFound != nil {
		return m.NotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch {
	case pgErr.Code == pgUniqueViolation && m.Duplicate != nil:
		return m.Duplicate
	case pgErr.Code == pgForeignKeyViolation && m.Reference != nil:
		return m.Reference
	}
	return err
}

// MapError maps sql.ErrNoRows to notFoundErr and unique violations to
// duplicateErr.
func MapError(err error, notFoundErr, duplicateErr error) error {
	return Mapping{NotFound: notFoundErr, Duplicate: duplicateErr}.Map(err)
}
