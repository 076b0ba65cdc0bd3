// Package repo implements the fact store for profiles, articles,
// declarations, and reactions, backed by GORM. This file defines the two
// outcomes callers are expected to branch on and the single place where
// driver errors are inspected.
package repo

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate is returned when an insert or update violates one of the
// schema's unique indexes. It is part of the store contract: every write
// helper in this package returns it instead of a driver-specific error.
var ErrDuplicate = errors.New("duplicate")

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// translate maps unique violations to ErrDuplicate and leaves every other
// error untouched.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if isDuplicate(err) {
		return ErrDuplicate
	}
	return err
}

// isDuplicate detects unique-constraint violations. gormConfig enables
// TranslateError, so SQLite and Postgres both surface gorm.ErrDuplicatedKey;
// a raw *pgconn.PgError is still checked for errors that bypass the dialector.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
