// Package services – ProfileService
//
// This file implements profile creation and lookup. A profile is created
// once per authenticated identity, keyed by the identity's subject.
package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/tbourn/go-advent-calendar/internal/domain"
	"github.com/tbourn/go-advent-calendar/internal/repo"
)

// MaxPenNameRunes caps pen name length.
const MaxPenNameRunes = 32

// ProfileService implements profile use-cases.
type ProfileService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// Create stores a profile for actorID with penName and role user.
//
// Errors: ErrUnauthenticated, ErrInvalidPenName, ErrProfileExists (the
// actor already has one), ErrPenNameTaken, or a wrapped ErrStorageFailure.
func (s *ProfileService) Create(ctx context.Context, actorID, penName string) (*domain.Profile, error) {
	if actorID == "" {
		return nil, ErrUnauthenticated
	}
	penName = normalizePenName(penName)
	if penName == "" || utf8.RuneCountInString(penName) > MaxPenNameRunes {
		return nil, ErrInvalidPenName
	}

	p, err := repo.CreateProfile(ctx, s.DB, actorID, penName, domain.RoleUser)
	if errors.Is(err, repo.ErrDuplicate) {
		// The insert can collide on either unique key; the id tells which.
		if _, gerr := repo.GetProfile(ctx, s.DB, actorID); gerr == nil {
			return nil, ErrProfileExists
		}
		return nil, ErrPenNameTaken
	}
	if err != nil {
		return nil, storageErr("profile.Create", err)
	}
	return p, nil
}

// Get returns actorID's profile.
func (s *ProfileService) Get(ctx context.Context, actorID string) (*domain.Profile, error) {
	if actorID == "" {
		return nil, ErrUnauthenticated
	}
	p, err := repo.GetProfile(ctx, s.DB, actorID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, storageErr("profile.Get", err)
	}
	return p, nil
}

// IsAdmin reports whether actorID has the admin role. Unknown actors are
// not admins.
func (s *ProfileService) IsAdmin(ctx context.Context, actorID string) (bool, error) {
	p, err := s.Get(ctx, actorID)
	switch {
	case errors.Is(err, ErrProfileNotFound), errors.Is(err, ErrUnauthenticated):
		return false, nil
	case err != nil:
		return false, err
	}
	return p.Role == domain.RoleAdmin, nil
}

// normalizePenName trims whitespace and collapses runs to one space.
func normalizePenName(s string) string {
	return whitespaceRE.ReplaceAllString(strings.TrimSpace(s), " ")
}

// whitespaceRE collapses consecutive whitespace to a single space.
var whitespaceRE = regexp.MustCompile(`\s+`)
