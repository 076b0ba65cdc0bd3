// Package repo implements the fact store for profiles, articles,
// declarations, and reactions, backed by GORM. This file provides repository
// functions for the Reaction model.
//
// The (article_id, user_id, reaction_type) unique index is the final arbiter
// for racing toggles: a second insert surfaces as ErrDuplicate, and deleting
// a row someone else already removed surfaces as ErrNotFound.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-advent-calendar/internal/domain"
)

// FindReaction returns the reaction for the key, or ErrNotFound.
func FindReaction(ctx context.Context, db *gorm.DB, articleID, userID string, t domain.ReactionType) (*domain.Reaction, error) {
	var r domain.Reaction
	err := db.WithContext(ctx).
		Where("article_id = ? AND user_id = ? AND reaction_type = ?", articleID, userID, t).
		First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateReaction inserts a reaction row; ErrDuplicate if the key exists.
func CreateReaction(ctx context.Context, db *gorm.DB, articleID, userID string, t domain.ReactionType) (*domain.Reaction, error) {
	r := &domain.Reaction{
		ID:           uuid.NewString(),
		ArticleID:    articleID,
		UserID:       userID,
		ReactionType: t,
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, translate(err)
	}
	return r, nil
}

// DeleteReaction removes the reaction with id. If no rows are affected it
// returns ErrNotFound.
func DeleteReaction(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Reaction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountReactionsByType returns reaction_type -> count for one article.
// Types with no reactions are absent from the map.
func CountReactionsByType(ctx context.Context, db *gorm.DB, articleID string) (map[domain.ReactionType]int, error) {
	var rows []struct {
		ReactionType domain.ReactionType
		N            int
	}
	err := db.WithContext(ctx).
		Model(&domain.Reaction{}).
		Select("reaction_type, COUNT(*) AS n").
		Where("article_id = ?", articleID).
		Group("reaction_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[domain.ReactionType]int, len(rows))
	for _, r := range rows {
		out[r.ReactionType] = r.N
	}
	return out, nil
}

// ListUserReactionTypes returns the types userID currently has on articleID.
func ListUserReactionTypes(ctx context.Context, db *gorm.DB, articleID, userID string) ([]domain.ReactionType, error) {
	var out []domain.ReactionType
	err := db.WithContext(ctx).
		Model(&domain.Reaction{}).
		Where("article_id = ? AND user_id = ?", articleID, userID).
		Order("created_at ASC").
		Pluck("reaction_type", &out).Error
	return out, err
}
