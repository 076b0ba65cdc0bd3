// Package services – CalendarService
//
// This file implements the day state aggregator. For a date window and an
// optional viewer it issues a fixed number of range queries concurrently,
// folds the rows into lookup structures, and assembles one DayState per day.
// The number of round trips does not depend on the window size or on how
// many declarations or articles exist.
//
// Observability: DayStates is OpenTelemetry-instrumented; the span records
// the window and whether a viewer was present.
package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/tbourn/go-advent-calendar/internal/datekit"
	"github.com/tbourn/go-advent-calendar/internal/domain"
	"github.com/tbourn/go-advent-calendar/internal/repo"
)

// CalendarFacts defines the range reads required by CalendarService.
// Bounds are inclusive YYYY-MM-DD strings.
type CalendarFacts interface {
	// ListDeclarationDates returns one date per declaration in range.
	ListDeclarationDates(ctx context.Context, db *gorm.DB, from, to string) ([]string, error)

	// ListPublishedDates returns dates in range with a published article.
	ListPublishedDates(ctx context.Context, db *gorm.DB, from, to string) ([]string, error)

	// ListUserDeclarationDates returns the dates userID declared for.
	ListUserDeclarationDates(ctx context.Context, db *gorm.DB, userID, from, to string) ([]string, error)

	// ListUserArticleStatuses returns (date, status) of userID's articles.
	ListUserArticleStatuses(ctx context.Context, db *gorm.DB, userID, from, to string) ([]repo.DateStatus, error)

	// CalendarStats summarizes the window for conditional responses.
	CalendarStats(ctx context.Context, db *gorm.DB, from, to string) (repo.WindowStats, error)
}

// CalendarService computes per-day engagement state for the calendar.
type CalendarService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Facts is the range read contract.
	Facts CalendarFacts
	// Range is the configured calendar window.
	Range datekit.DateRange
}

// NewCalendarService constructs a CalendarService for window.
func NewCalendarService(db *gorm.DB, facts CalendarFacts, window datekit.DateRange) *CalendarService {
	return &CalendarService{DB: db, Facts: facts, Range: window}
}

// Window returns the configured calendar window.
func (s *CalendarService) Window() datekit.DateRange { return s.Range }

// DayStates returns exactly window.Len() entries, one per day, ascending.
//
// A nil (or empty) viewer skips the viewer-scoped queries entirely and
// leaves every viewer flag false. If any query fails the result is nil and
// the error wraps ErrStorageFailure; partial lists are never returned.
//
// When a viewer has both a draft and a published article on one day,
// published wins.
func (s *CalendarService) DayStates(ctx context.Context, window datekit.DateRange, viewer *string) ([]domain.DayState, error) {
	hasViewer := viewer != nil && *viewer != ""

	tr := otel.Tracer("services/CalendarService")
	ctx, span := tr.Start(ctx, "DayStates",
		trace.WithAttributes(
			attribute.String("calendar.window", window.String()),
			attribute.Bool("calendar.viewer", hasViewer),
		),
	)
	defer span.End()

	if window.Start.IsZero() || window.End.IsZero() || window.End.Before(window.Start) {
		return nil, ErrInvalidDate
	}
	from, to := window.Start.String(), window.End.String()

	var (
		declDates      []string
		publishedDates []string
		myDeclDates    []string
		myArticles     []repo.DateStatus
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		declDates, err = s.Facts.ListDeclarationDates(gctx, s.DB, from, to)
		return err
	})
	g.Go(func() (err error) {
		publishedDates, err = s.Facts.ListPublishedDates(gctx, s.DB, from, to)
		return err
	})
	if hasViewer {
		uid := *viewer
		g.Go(func() (err error) {
			myDeclDates, err = s.Facts.ListUserDeclarationDates(gctx, s.DB, uid, from, to)
			return err
		})
		g.Go(func() (err error) {
			myArticles, err = s.Facts.ListUserArticleStatuses(gctx, s.DB, uid, from, to)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "aggregate")
		return nil, storageErr("calendar.DayStates", err)
	}

	declCount := make(map[string]uint, len(declDates))
	for _, d := range declDates {
		declCount[d]++
	}
	published := toSet(publishedDates)
	myDecl := toSet(myDeclDates)
	myStatus := make(map[string]domain.ArticleStatus, len(myArticles))
	for _, a := range myArticles {
		if myStatus[a.PublishDate] == domain.StatusPublished {
			continue
		}
		myStatus[a.PublishDate] = a.Status
	}

	days := window.Days()
	out := make([]domain.DayState, 0, len(days))
	for _, day := range days {
		key := day.String()
		st := myStatus[key]
		out = append(out, domain.DayState{
			Date:                key,
			DeclarationCount:    declCount[key],
			HasPublishedArticle: published[key],
			IsViewerDeclared:    myDecl[key],
			IsViewerDraft:       st == domain.StatusDraft,
			IsViewerPublished:   st == domain.StatusPublished,
		})
	}
	span.SetAttributes(attribute.Int("calendar.days", len(out)))
	return out, nil
}

// Stats returns the change summary for window, used to derive ETags.
func (s *CalendarService) Stats(ctx context.Context, window datekit.DateRange) (repo.WindowStats, error) {
	st, err := s.Facts.CalendarStats(ctx, s.DB, window.Start.String(), window.End.String())
	if err != nil {
		return repo.WindowStats{}, storageErr("calendar.Stats", err)
	}
	return st, nil
}

func toSet(xs []string) map[string]bool {
	m := make(map[string]bool, len(xs))
	for _, x := range xs {
		m[x] = true
	}
	return m
}
