// Package repo implements the fact store for profiles, articles,
// declarations, and reactions, backed by GORM. This file provides repository
// functions for the Declaration model.
//
// Error semantics:
//   - A second declaration for the same (user_id, publish_date) is rejected
//     by the unique index and returned as ErrDuplicate.
//   - Lookups of a missing declaration return ErrNotFound.
//   - Other DB errors are propagated raw.
//
// Range reads take inclusive YYYY-MM-DD bounds; dates are stored as
// fixed-width text so lexical and chronological order agree.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-advent-calendar/internal/domain"
)

// CreateDeclaration inserts a declaration for userID on date.
//
// On success, it returns the persisted row. A repeated declaration yields
// ErrDuplicate.
func CreateDeclaration(ctx context.Context, db *gorm.DB, userID, date string) (*domain.Declaration, error) {
	d := &domain.Declaration{
		ID:          uuid.NewString(),
		UserID:      userID,
		PublishDate: date,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(d).Error; err != nil {
		return nil, translate(err)
	}
	return d, nil
}

// GetDeclaration fetches userID's declaration for date, or ErrNotFound.
func GetDeclaration(ctx context.Context, db *gorm.DB, userID, date string) (*domain.Declaration, error) {
	var d domain.Declaration
	err := db.WithContext(ctx).
		Where("user_id = ? AND publish_date = ?", userID, date).
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CountDeclarations returns how many users declared for date.
func CountDeclarations(ctx context.Context, db *gorm.DB, date string) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Declaration{}).
		Where("publish_date = ?", date).
		Count(&n).Error
	return n, err
}

// ListDeclarationDates returns the publish_date of every declaration in
// [from, to], one entry per row. Callers count occurrences per date.
func ListDeclarationDates(ctx context.Context, db *gorm.DB, from, to string) ([]string, error) {
	var out []string
	err := db.WithContext(ctx).
		Model(&domain.Declaration{}).
		Where("publish_date >= ? AND publish_date <= ?", from, to).
		Pluck("publish_date", &out).Error
	return out, err
}

// ListUserDeclarationDates returns the dates in [from, to] userID declared for.
func ListUserDeclarationDates(ctx context.Context, db *gorm.DB, userID, from, to string) ([]string, error) {
	var out []string
	err := db.WithContext(ctx).
		Model(&domain.Declaration{}).
		Where("user_id = ? AND publish_date >= ? AND publish_date <= ?", userID, from, to).
		Pluck("publish_date", &out).Error
	return out, err
}
