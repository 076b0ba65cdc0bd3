// Package handlers implements the REST endpoints of the calendar API.
//
// Handlers are transport-thin: they bind input, take the actor from the
// auth middleware, call a service, and translate the result. All business
// rules and error classification live in the services package.
package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/tbourn/go-advent-calendar/internal/datekit"
	"github.com/tbourn/go-advent-calendar/internal/domain"
	"github.com/tbourn/go-advent-calendar/internal/http/middleware"
	"github.com/tbourn/go-advent-calendar/internal/repo"
	"github.com/tbourn/go-advent-calendar/internal/services"
)

//
// Service contracts (context-aware)
//

// CalendarService assembles per-day state for the calendar window.
type CalendarService interface {
	Window() datekit.DateRange
	DayStates(ctx context.Context, window datekit.DateRange, viewer *string) ([]domain.DayState, error)
	Stats(ctx context.Context, window datekit.DateRange) (repo.WindowStats, error)
}

// DeclarationService records and reads publish declarations.
type DeclarationService interface {
	Create(ctx context.Context, actorID, date string) (*domain.Declaration, error)
	IsDeclared(ctx context.Context, actorID, date string) (bool, error)
	Count(ctx context.Context, date string) (int, error)
}

// ArticleService saves and reads articles.
type ArticleService interface {
	SaveDraft(ctx context.Context, actorID string, in services.ArticleInput) (*domain.Article, error)
	Publish(ctx context.Context, actorID string, in services.ArticleInput) (*domain.Article, error)
	Get(ctx context.Context, id, viewerID string) (*domain.Article, error)
	ForOwnerDate(ctx context.Context, actorID, date string) (*domain.Article, error)
	PublishedForDate(ctx context.Context, date string) ([]domain.ArticleWithAuthor, error)
}

// ReactionService toggles and counts emoji reactions.
type ReactionService interface {
	Toggle(ctx context.Context, articleID, actorID string, t domain.ReactionType) (services.Action, error)
	Counts(ctx context.Context, articleID, viewerID string) (map[domain.ReactionType]int, error)
	UserReactions(ctx context.Context, articleID, actorID string) ([]domain.ReactionType, error)
}

// ProfileService manages the actor's public profile.
type ProfileService interface {
	Create(ctx context.Context, actorID, penName string) (*domain.Profile, error)
	Get(ctx context.Context, actorID string) (*domain.Profile, error)
}

// PickupService samples published articles for the landing page.
type PickupService interface {
	Random(ctx context.Context, today datekit.Date, limit int) ([]services.Pickup, error)
}

//
// Handler wiring
//

// Deps are the collaborators of Handlers. Clock defaults to time.Now and
// Locale to Japanese.
type Deps struct {
	Calendar     CalendarService
	Declarations DeclarationService
	Articles     ArticleService
	Reactions    ReactionService
	Profiles     ProfileService
	Pickup       PickupService

	Classifier  *datekit.Classifier
	Locale      language.Tag
	PickupLimit int
	Clock       func() time.Time
}

// Handlers groups the HTTP endpoints.
type Handlers struct {
	calendar     CalendarService
	declarations DeclarationService
	articles     ArticleService
	reactions    ReactionService
	profiles     ProfileService
	pickup       PickupService

	classifier  *datekit.Classifier
	locale      language.Tag
	pickupLimit int
	now         func() time.Time
}

// New constructs Handlers from d.
func New(d Deps) *Handlers {
	h := &Handlers{
		calendar:     d.Calendar,
		declarations: d.Declarations,
		articles:     d.Articles,
		reactions:    d.Reactions,
		profiles:     d.Profiles,
		pickup:       d.Pickup,
		classifier:   d.Classifier,
		locale:       d.Locale,
		pickupLimit:  d.PickupLimit,
		now:          d.Clock,
	}
	if h.classifier == nil {
		h.classifier = datekit.NewClassifier(time.UTC)
	}
	if h.locale == language.Und {
		h.locale = language.Japanese
	}
	if h.pickupLimit <= 0 {
		h.pickupLimit = defaultPickupLimit
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

// actor returns the authenticated user id, or "" for anonymous requests.
func actor(c *gin.Context) string { return middleware.UserID(c) }

// viewer returns the actor as an optional viewer.
func viewer(c *gin.Context) *string {
	if id := actor(c); id != "" {
		return &id
	}
	return nil
}

// today is the current calendar day in the classifier's zone.
func (h *Handlers) today() datekit.Date { return h.classifier.Today(h.now()) }
