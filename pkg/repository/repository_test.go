package repository_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JaimeStill/palmwatch/pkg/repository"
)

var (
	errNotFound       = errors.New("not found")
	errDuplicate      = errors.New("duplicate")
	errSurveyNotFound = errors.New("survey not found")
	errOther          = errors.New("connection reset")
)

func TestMapping(t *testing.T) {
	full := repository.Mapping{
		NotFound:  errNotFound,
		Duplicate: errDuplicate,
		Reference: errSurveyNotFound,
	}
	unique := &pgconn.PgError{Code: "23505"}
	foreignKey := &pgconn.PgError{Code: "23503"}
	checkViolation := &pgconn.PgError{Code: "23514"}

	tests := []struct {
		name    string
		mapping repository.Mapping
		err     error
		want    error
	}{
		{"nil", full, nil, nil},
		{"no rows", full, sql.ErrNoRows, errNotFound},
		{"wrapped no rows", full, fmt.Errorf("find tree: %w", sql.ErrNoRows), errNotFound},
		{"unique violation", full, unique, errDuplicate},
		{"foreign key violation", full, foreignKey, errSurveyNotFound},
		{"wrapped foreign key violation", full, fmt.Errorf("insert: %w", foreignKey), errSurveyNotFound},
		{"other pg error passes through", full, checkViolation, checkViolation},
		{"other error passes through", full, errOther, errOther},
		{"unmapped foreign key passes through", repository.Mapping{NotFound: errNotFound}, foreignKey, foreignKey},
		{"unmapped no rows passes through", repository.Mapping{}, sql.ErrNoRows, sql.ErrNoRows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mapping.Map(tt.err); got != tt.want {
				t.Errorf("Map(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestMapError(t *testing.T) {
	if got := repository.MapError(sql.ErrNoRows, errNotFound, errDuplicate); got != errNotFound {
		t.Errorf("no rows = %v, want %v", got, errNotFound)
	}
	if got := repository.MapError(&pgconn.PgError{Code: "23505"}, errNotFound, errDuplicate); got != errDuplicate {
		t.Errorf("unique = %v, want %v", got, errDuplicate)
	}

	fk := &pgconn.PgError{Code: "23503"}
	if got := repository.MapError(fk, errNotFound, errDuplicate); got != fk {
		t.Errorf("foreign key = %v, want passthrough", got)
	}
}
