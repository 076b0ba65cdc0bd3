// Package services – ArticleService
//
// This file implements the article lifecycle. An article is created as a
// draft or directly as published, and later saves overwrite it through the
// same owner-scoped path. Saving a published article as a draft is allowed
// and there is no version check: the last save wins.
//
// Plain text bodies are wrapped into a single-paragraph editor document;
// bodies that already are documents are stored verbatim.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-advent-calendar/internal/content"
	"github.com/tbourn/go-advent-calendar/internal/datekit"
	"github.com/tbourn/go-advent-calendar/internal/domain"
	"github.com/tbourn/go-advent-calendar/internal/repo"
)

// Article limits.
const (
	MaxTitleRunes   = 255
	MaxContentBytes = 512 << 10
)

// ArticleInput is the payload of a save. A non-empty ID updates that
// article; an empty ID creates one.
type ArticleInput struct {
	ID          string
	Title       string
	Content     string
	PublishDate string
}

// Validate checks field shapes. Published articles need a title.
func (in *ArticleInput) Validate(status domain.ArticleStatus) error {
	return validation.ValidateStruct(in,
		validation.Field(&in.Title,
			validation.When(status == domain.StatusPublished, validation.Required),
			validation.RuneLength(0, MaxTitleRunes)),
		validation.Field(&in.Content, validation.Length(0, MaxContentBytes)),
		validation.Field(&in.PublishDate, validation.Required, validation.By(isDate)),
	)
}

func isDate(v any) error {
	s, _ := v.(string)
	if _, err := datekit.ParseDate(s); err != nil {
		return errors.New("must be a YYYY-MM-DD date")
	}
	return nil
}

// ArticleService implements article use-cases.
type ArticleService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Window, when non-zero, restricts publish dates.
	Window datekit.DateRange
}

// SaveDraft creates or updates actorID's article with status draft.
func (s *ArticleService) SaveDraft(ctx context.Context, actorID string, in ArticleInput) (*domain.Article, error) {
	return s.save(ctx, actorID, in, domain.StatusDraft)
}

// Publish creates or updates actorID's article with status published.
func (s *ArticleService) Publish(ctx context.Context, actorID string, in ArticleInput) (*domain.Article, error) {
	return s.save(ctx, actorID, in, domain.StatusPublished)
}

func (s *ArticleService) save(ctx context.Context, actorID string, in ArticleInput, status domain.ArticleStatus) (*domain.Article, error) {
	if actorID == "" {
		return nil, ErrUnauthenticated
	}

	tr := otel.Tracer("services/ArticleService")
	ctx, span := tr.Start(ctx, "Save",
		trace.WithAttributes(
			attribute.String("user.id", actorID),
			attribute.String("article.id", in.ID),
			attribute.String("article.status", string(status)),
		),
	)
	defer span.End()

	in.Title = strings.TrimSpace(in.Title)
	in.PublishDate = strings.TrimSpace(in.PublishDate)
	if err := in.Validate(status); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArticle, err)
	}
	d := datekit.MustParseDate(in.PublishDate)
	if !s.Window.Start.IsZero() && !s.Window.Contains(d) {
		return nil, ErrDateOutsideWindow
	}

	if _, err := repo.GetProfile(ctx, s.DB, actorID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, storageErr("article.Save", err)
	}

	body := in.Content
	if !content.IsDocument(body) {
		body = content.Wrap(body)
	}
	f := repo.ArticleFields{
		Title:       in.Title,
		Content:     body,
		PublishDate: d.String(),
		Status:      status,
	}

	var (
		a   *domain.Article
		err error
	)
	if in.ID != "" {
		a, err = repo.UpdateArticle(ctx, s.DB, in.ID, actorID, f)
	} else {
		a, err = repo.CreateArticle(ctx, s.DB, actorID, f)
	}
	switch {
	case errors.Is(err, repo.ErrDuplicate):
		return nil, ErrArticleSlotTaken
	case errors.Is(err, repo.ErrNotFound):
		return nil, ErrArticleNotFound
	case err != nil:
		return nil, storageErr("article.Save", err)
	}
	return a, nil
}

// Get returns article id. Drafts are visible to their owner only; to
// anyone else they do not exist.
func (s *ArticleService) Get(ctx context.Context, id, viewerID string) (*domain.Article, error) {
	a, err := repo.GetArticle(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, storageErr("article.Get", err)
	}
	if a.Status != domain.StatusPublished && a.UserID != viewerID {
		return nil, ErrArticleNotFound
	}
	return a, nil
}

// ForOwnerDate returns actorID's article for date, in any status.
func (s *ArticleService) ForOwnerDate(ctx context.Context, actorID, date string) (*domain.Article, error) {
	if actorID == "" {
		return nil, ErrUnauthenticated
	}
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	a, err := repo.GetArticleByOwnerDate(ctx, s.DB, actorID, d.String())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, storageErr("article.ForOwnerDate", err)
	}
	return a, nil
}

// PublishedForDate lists the published articles of date with their
// authors' pen names, oldest first.
func (s *ArticleService) PublishedForDate(ctx context.Context, date string) ([]domain.ArticleWithAuthor, error) {
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	out, err := repo.ListPublishedWithAuthor(ctx, s.DB, d.String())
	if err != nil {
		return nil, storageErr("article.PublishedForDate", err)
	}
	return out, nil
}
