// Package repo implements the fact store for profiles, articles,
// declarations, and reactions, backed by GORM. This file provides repository
// functions for the Profile model.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-advent-calendar/internal/domain"
)

// CreateProfile inserts a profile with the identity provider's subject as
// id. A taken id or pen name yields ErrDuplicate.
func CreateProfile(ctx context.Context, db *gorm.DB, id, penName string, role domain.Role) (*domain.Profile, error) {
	now := time.Now().UTC()
	p := &domain.Profile{
		ID:        id,
		PenName:   penName,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, translate(err)
	}
	return p, nil
}

// GetProfile fetches a profile by id, or ErrNotFound.
func GetProfile(ctx context.Context, db *gorm.DB, id string) (*domain.Profile, error) {
	var p domain.Profile
	err := db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
