// Package repo implements the fact store for profiles, articles,
// declarations, and reactions, backed by GORM. This file provides repository
// functions for the Article model.
//
// Functions:
//
//   - CreateArticle / UpdateArticle: owner-scoped writes; ErrDuplicate when
//     the (user_id, publish_date) slot is already taken.
//   - GetArticle / GetArticleByOwnerDate: single-row reads, ErrNotFound.
//   - ListPublishedDates / ListUserArticleStatuses: range reads used by the
//     calendar aggregator.
//   - ListPublishedWithAuthor / ListPublishedUpTo: joins with profiles,
//     normalized into domain.ArticleWithAuthor.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-advent-calendar/internal/domain"
)

// AnonymousPenName is shown when an article's author has no profile.
const AnonymousPenName = "匿名"

// DateStatus is one of a user's articles reduced to what the calendar needs.
type DateStatus struct {
	PublishDate string
	Status      domain.ArticleStatus
}

// ArticleFields are the mutable columns of an article.
type ArticleFields struct {
	Title       string
	Content     string
	PublishDate string
	Status      domain.ArticleStatus
}

// CreateArticle inserts a new article owned by userID.
func CreateArticle(ctx context.Context, db *gorm.DB, userID string, f ArticleFields) (*domain.Article, error) {
	now := time.Now().UTC()
	a := &domain.Article{
		ID:          uuid.NewString(),
		UserID:      userID,
		PublishDate: f.PublishDate,
		Title:       f.Title,
		Content:     f.Content,
		Status:      f.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, translate(err)
	}
	return a, nil
}

// UpdateArticle overwrites the mutable columns of article id owned by
// userID. If no rows are affected (missing or not owned) it returns
// ErrNotFound.
func UpdateArticle(ctx context.Context, db *gorm.DB, id, userID string, f ArticleFields) (*domain.Article, error) {
	res := db.WithContext(ctx).
		Model(&domain.Article{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"title":        f.Title,
			"content":      f.Content,
			"publish_date": f.PublishDate,
			"status":       f.Status,
			"updated_at":   time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetArticle(ctx, db, id)
}

// GetArticle fetches an article by id, or ErrNotFound.
func GetArticle(ctx context.Context, db *gorm.DB, id string) (*domain.Article, error) {
	var a domain.Article
	err := db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetArticleByOwnerDate fetches userID's article for date, or ErrNotFound.
func GetArticleByOwnerDate(ctx context.Context, db *gorm.DB, userID, date string) (*domain.Article, error) {
	var a domain.Article
	err := db.WithContext(ctx).
		Where("user_id = ? AND publish_date = ?", userID, date).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListPublishedDates returns the distinct dates in [from, to] that have at
// least one published article.
func ListPublishedDates(ctx context.Context, db *gorm.DB, from, to string) ([]string, error) {
	var out []string
	err := db.WithContext(ctx).
		Model(&domain.Article{}).
		Distinct("publish_date").
		Where("status = ? AND publish_date >= ? AND publish_date <= ?", domain.StatusPublished, from, to).
		Pluck("publish_date", &out).Error
	return out, err
}

// ListUserArticleStatuses returns (date, status) for each of userID's
// articles in [from, to].
func ListUserArticleStatuses(ctx context.Context, db *gorm.DB, userID, from, to string) ([]DateStatus, error) {
	var out []DateStatus
	err := db.WithContext(ctx).
		Model(&domain.Article{}).
		Select("publish_date", "status").
		Where("user_id = ? AND publish_date >= ? AND publish_date <= ?", userID, from, to).
		Scan(&out).Error
	return out, err
}

// articleAuthorRow is the raw shape of an articles ⟕ profiles join.
type articleAuthorRow struct {
	ID          string
	UserID      string
	PublishDate string
	Title       string
	Content     string
	Status      domain.ArticleStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PenName     *string
}

func (r articleAuthorRow) normalize() domain.ArticleWithAuthor {
	pen := AnonymousPenName
	if r.PenName != nil && *r.PenName != "" {
		pen = *r.PenName
	}
	return domain.ArticleWithAuthor{
		Article: domain.Article{
			ID:          r.ID,
			UserID:      r.UserID,
			PublishDate: r.PublishDate,
			Title:       r.Title,
			Content:     r.Content,
			Status:      r.Status,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		},
		PenName: pen,
	}
}

func withAuthor(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Table("articles").
		Select("articles.id, articles.user_id, articles.publish_date, articles.title, articles.content, " +
			"articles.status, articles.created_at, articles.updated_at, profiles.pen_name AS pen_name").
		Joins("LEFT JOIN profiles ON profiles.id = articles.user_id")
}

func scanAuthors(q *gorm.DB) ([]domain.ArticleWithAuthor, error) {
	var rows []articleAuthorRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.ArticleWithAuthor, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.normalize())
	}
	return out, nil
}

// ListPublishedWithAuthor returns the published articles for date, oldest
// first.
func ListPublishedWithAuthor(ctx context.Context, db *gorm.DB, date string) ([]domain.ArticleWithAuthor, error) {
	return scanAuthors(withAuthor(ctx, db).
		Where("articles.status = ? AND articles.publish_date = ?", domain.StatusPublished, date).
		Order("articles.created_at ASC, articles.id ASC"))
}

// ListPublishedUpTo returns up to limit published articles dated on or
// before today, newest first, skipping authors with excludeRole.
func ListPublishedUpTo(ctx context.Context, db *gorm.DB, today string, excludeRole domain.Role, limit int) ([]domain.ArticleWithAuthor, error) {
	q := withAuthor(ctx, db).
		Where("articles.status = ? AND articles.publish_date <= ?", domain.StatusPublished, today).
		Where("(profiles.role IS NULL OR profiles.role <> ?)", excludeRole).
		Order("articles.created_at DESC, articles.id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return scanAuthors(q)
}
