// Package services defines the business logic for the calendar: day state
// aggregation, reaction toggles, declarations, articles, profiles, and the
// pickup feed. This file centralizes the service-level error values so that
// they can be consistently returned by service methods and checked by callers.
//
// Every error a service returns belongs to exactly one Kind. The five kind
// sentinels are the roots; specific sentinels wrap one of them, so callers
// can match either precisely (errors.Is(err, ErrAlreadyDeclared)) or broadly
// (KindOf(err) == KindDuplicateConflict). Translation into user-facing
// messages or HTTP status codes is performed at the handler layer.
package services

import (
	"errors"
	"fmt"

	"github.com/tbourn/go-advent-calendar/internal/datekit"
)

// Kind classifies a service error.
type Kind int

const (
	// KindNone is the kind of a nil error.
	KindNone Kind = iota
	KindUnauthenticated
	KindDuplicateConflict
	KindNotFound
	KindStorageFailure
	KindValidationFailure
)

// String returns the kind's stable lower_snake name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindDuplicateConflict:
		return "duplicate_conflict"
	case KindNotFound:
		return "not_found"
	case KindStorageFailure:
		return "storage_failure"
	case KindValidationFailure:
		return "validation_failure"
	default:
		return "unknown"
	}
}

// Kind roots.
var (
	// ErrUnauthenticated is returned when an operation that requires an
	// actor is called without one. It is checked before any mutation.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrDuplicateConflict is returned when a write violates a uniqueness
	// constraint of the fact store.
	ErrDuplicateConflict = errors.New("duplicate conflict")

	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStorageFailure wraps infrastructure errors from the fact store.
	ErrStorageFailure = errors.New("storage failure")

	// ErrValidationFailure is returned for malformed input.
	ErrValidationFailure = errors.New("validation failure")
)

// Declaration errors.
var (
	// ErrAlreadyDeclared is returned when the actor already declared for
	// the date. Callers show a distinct message for it.
	ErrAlreadyDeclared = fmt.Errorf("%w: already declared", ErrDuplicateConflict)
)

// Reaction errors.
var (
	// ErrReactionConflict is returned when a concurrent toggle on the same
	// (article, actor, type) key won the race. It is safe to retry.
	ErrReactionConflict = fmt.Errorf("%w: concurrent reaction toggle", ErrDuplicateConflict)

	// ErrInvalidReaction is returned for a reaction type outside the
	// supported emoji set.
	ErrInvalidReaction = fmt.Errorf("%w: unsupported reaction type", ErrValidationFailure)
)

// Article errors.
var (
	// ErrArticleNotFound indicates that the article does not exist or is
	// not owned by the actor.
	ErrArticleNotFound = fmt.Errorf("%w: article", ErrNotFound)

	// ErrArticleSlotTaken is returned when the actor already has another
	// article on the target date.
	ErrArticleSlotTaken = fmt.Errorf("%w: article already exists for date", ErrDuplicateConflict)

	// ErrInvalidArticle is returned when an article payload fails
	// validation.
	ErrInvalidArticle = fmt.Errorf("%w: invalid article", ErrValidationFailure)
)

// Profile errors.
var (
	// ErrProfileNotFound indicates that the actor has not created a
	// profile yet.
	ErrProfileNotFound = fmt.Errorf("%w: profile", ErrNotFound)

	// ErrProfileExists is returned when the actor already has a profile.
	ErrProfileExists = fmt.Errorf("%w: profile already exists", ErrDuplicateConflict)

	// ErrPenNameTaken is returned when another profile uses the pen name.
	ErrPenNameTaken = fmt.Errorf("%w: pen name taken", ErrDuplicateConflict)

	// ErrInvalidPenName is returned for blank or overlong pen names.
	ErrInvalidPenName = fmt.Errorf("%w: invalid pen name", ErrValidationFailure)
)

// Date errors.
var (
	// ErrInvalidDate is returned for dates that do not parse as
	// YYYY-MM-DD.
	ErrInvalidDate = fmt.Errorf("%w: invalid date", ErrValidationFailure)

	// ErrDateOutsideWindow is returned for dates outside the calendar
	// window.
	ErrDateOutsideWindow = fmt.Errorf("%w: date outside calendar window", ErrValidationFailure)
)

// KindOf collapses err to its Kind. Errors that carry no kind sentinel are
// treated as storage failures, since anything unexpected that escapes a
// service came from infrastructure.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrUnauthenticated):
		return KindUnauthenticated
	case errors.Is(err, ErrDuplicateConflict):
		return KindDuplicateConflict
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrValidationFailure), errors.Is(err, datekit.ErrInvalidDate):
		return KindValidationFailure
	default:
		return KindStorageFailure
	}
}

// storageErr wraps an infrastructure error with the failing operation.
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageFailure, err)
}

// parseDate parses s and maps failures to ErrInvalidDate.
func parseDate(s string) (datekit.Date, error) {
	d, err := datekit.ParseDate(s)
	if err != nil {
		return datekit.Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}
