package storage

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// 23505	unique_violation
// 23503	foreign_key_violation
// 42P01	undefined_table

const (
	UNIQUE_CODE          = "23505"
	INCONSISTENCY_CODE   = "23503"
	UNDEFINED_TABLE_CODE = "42P01"
)

// ErrModelNotFound is returned when no stored model has the requested id
var ErrModelNotFound = errors.New("model not found")

// ErrModelExists is returned when saving a model whose id is already stored
var ErrModelExists = errors.New("model already exists")

// ErrNotMigrated is returned when the database has no ifc schema
var ErrNotMigrated = errors.New("database schema is missing, run migrations first")

// FindCodeInPSQLException returns the postgresql code of an error, empty for another error
func FindCodeInPSQLException(sourceError error) string {
	var pgErr *pgconn.PgError
	var result string
	if errors.As(sourceError, &pgErr) {
		result = pgErr.Code
	}

	return result
}

// translateError maps postgresql errors to storage errors for model id
func translateError(sourceError error, id string) error {
	switch FindCodeInPSQLException(sourceError) {
	case "":
		return sourceError
	case UNIQUE_CODE:
		return fmt.Errorf("%w: %s", ErrModelExists, id)
	case INCONSISTENCY_CODE:
		// instances of a model row that does not exist
		return errors.Join(fmt.Errorf("%w: %s", ErrModelNotFound, id), sourceError)
	case UNDEFINED_TABLE_CODE:
		return errors.Join(ErrNotMigrated, sourceError)
	default:
		return sourceError
	}
}
