package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when an update or delete matched no row
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned on unique constraint violations
	ErrDuplicate = errors.New("record already exists")
	// ErrReference is returned when a foreign key points at a missing row
	ErrReference = errors.New("referenced record does not exist")
)

// mapPgError translates constraint violations into repository errors
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrDuplicate
		case "23503":
			return ErrReference
		}
	}
	return err
}
