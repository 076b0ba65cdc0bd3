// Package services – DeclarationService
//
// This file implements declarations: a one-way, one-time transition from
// "not declared" to "declared" for (actor, date). There is no retraction.
// A repeated attempt is rejected with ErrAlreadyDeclared, which callers
// present differently from a generic failure; it is never folded into
// success. The unique index on (user_id, publish_date) is the only guard
// against double submits.
package services

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-advent-calendar/internal/datekit"
	"github.com/tbourn/go-advent-calendar/internal/domain"
	"github.com/tbourn/go-advent-calendar/internal/repo"
)

// DeclarationService implements declaration use-cases.
type DeclarationService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Window, when non-zero, restricts declarable dates.
	Window datekit.DateRange
}

// Create records that actorID will publish on date.
//
// Errors:
//   - ErrUnauthenticated if actorID is empty (checked first).
//   - ErrInvalidDate / ErrDateOutsideWindow for bad dates.
//   - ErrAlreadyDeclared on a repeat.
//   - ErrStorageFailure (wrapped) for anything else.
func (s *DeclarationService) Create(ctx context.Context, actorID, date string) (*domain.Declaration, error) {
	if actorID == "" {
		return nil, ErrUnauthenticated
	}
	d, err := s.checkDate(date)
	if err != nil {
		return nil, err
	}

	tr := otel.Tracer("services/DeclarationService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(
			attribute.String("user.id", actorID),
			attribute.String("declaration.date", d.String()),
		),
	)
	defer span.End()

	decl, err := repo.CreateDeclaration(ctx, s.DB, actorID, d.String())
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrAlreadyDeclared
		}
		return nil, storageErr("declaration.Create", err)
	}
	return decl, nil
}

// IsDeclared reports whether actorID declared for date. Anonymous actors
// never have.
func (s *DeclarationService) IsDeclared(ctx context.Context, actorID, date string) (bool, error) {
	d, err := parseDate(date)
	if err != nil {
		return false, err
	}
	if actorID == "" {
		return false, nil
	}
	if _, err := repo.GetDeclaration(ctx, s.DB, actorID, d.String()); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, nil
		}
		return false, storageErr("declaration.IsDeclared", err)
	}
	return true, nil
}

// Count returns how many users declared for date.
func (s *DeclarationService) Count(ctx context.Context, date string) (int, error) {
	d, err := parseDate(date)
	if err != nil {
		return 0, err
	}
	n, err := repo.CountDeclarations(ctx, s.DB, d.String())
	if err != nil {
		return 0, storageErr("declaration.Count", err)
	}
	return int(n), nil
}

func (s *DeclarationService) checkDate(date string) (datekit.Date, error) {
	d, err := parseDate(date)
	if err != nil {
		return datekit.Date{}, err
	}
	if !s.Window.Start.IsZero() && !s.Window.Contains(d) {
		return datekit.Date{}, ErrDateOutsideWindow
	}
	return d, nil
}
