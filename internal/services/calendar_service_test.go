package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-advent-calendar/internal/datekit"
	"github.com/tbourn/go-advent-calendar/internal/domain"
	"github.com/tbourn/go-advent-calendar/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:calsvc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// One connection so the foreign_keys PRAGMA applies to every query.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
		t.Cleanup(func() { _ = sqlDB.Close() })
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seedProfile(t *testing.T, db *gorm.DB, id string, role domain.Role) {
	t.Helper()
	if _, err := repo.CreateProfile(context.Background(), db, id, "pen-"+id, role); err != nil {
		t.Fatalf("seed profile %s: %v", id, err)
	}
}

func seedArticle(t *testing.T, db *gorm.DB, userID, date string, status domain.ArticleStatus) *domain.Article {
	t.Helper()
	a, err := repo.CreateArticle(context.Background(), db, userID, repo.ArticleFields{
		Title: "t-" + userID + "-" + date, PublishDate: date, Status: status,
	})
	if err != nil {
		t.Fatalf("seed article %s/%s: %v", userID, date, err)
	}
	return a
}

func seedDeclaration(t *testing.T, db *gorm.DB, userID, date string) {
	t.Helper()
	if _, err := repo.CreateDeclaration(context.Background(), db, userID, date); err != nil {
		t.Fatalf("seed declaration %s/%s: %v", userID, date, err)
	}
}

// repoFacts proxies the repository free functions.
type repoFacts struct{}

func (repoFacts) ListDeclarationDates(ctx context.Context, db *gorm.DB, from, to string) ([]string, error) {
	return repo.ListDeclarationDates(ctx, db, from, to)
}
func (repoFacts) ListPublishedDates(ctx context.Context, db *gorm.DB, from, to string) ([]string, error) {
	return repo.ListPublishedDates(ctx, db, from, to)
}
func (repoFacts) ListUserDeclarationDates(ctx context.Context, db *gorm.DB, userID, from, to string) ([]string, error) {
	return repo.ListUserDeclarationDates(ctx, db, userID, from, to)
}
func (repoFacts) ListUserArticleStatuses(ctx context.Context, db *gorm.DB, userID, from, to string) ([]repo.DateStatus, error) {
	return repo.ListUserArticleStatuses(ctx, db, userID, from, to)
}
func (repoFacts) CalendarStats(ctx context.Context, db *gorm.DB, from, to string) (repo.WindowStats, error) {
	return repo.CalendarStats(ctx, db, from, to)
}

// fakeFacts serves canned rows and counts calls.
type fakeFacts struct {
	decl, published, myDecl []string
	myArticles              []repo.DateStatus
	failPublished           error

	viewerCalls atomic.Int32
}

func (f *fakeFacts) ListDeclarationDates(context.Context, *gorm.DB, string, string) ([]string, error) {
	return f.decl, nil
}
func (f *fakeFacts) ListPublishedDates(context.Context, *gorm.DB, string, string) ([]string, error) {
	return f.published, f.failPublished
}
func (f *fakeFacts) ListUserDeclarationDates(context.Context, *gorm.DB, string, string, string) ([]string, error) {
	f.viewerCalls.Add(1)
	return f.myDecl, nil
}
func (f *fakeFacts) ListUserArticleStatuses(context.Context, *gorm.DB, string, string, string) ([]repo.DateStatus, error) {
	f.viewerCalls.Add(1)
	return f.myArticles, nil
}
func (f *fakeFacts) CalendarStats(context.Context, *gorm.DB, string, string) (repo.WindowStats, error) {
	return repo.WindowStats{Declarations: int64(len(f.decl))}, nil
}

func ptr(s string) *string { return &s }

func decemberWindow(days int) datekit.DateRange {
	return datekit.MonthWindow(2025, time.December, days)
}

func TestDayStates_OneEntryPerDayAscending(t *testing.T) {
	svc := NewCalendarService(nil, &fakeFacts{}, decemberWindow(25))
	for _, viewer := range []*string{nil, ptr("u1")} {
		out, err := svc.DayStates(context.Background(), svc.Window(), viewer)
		if err != nil {
			t.Fatalf("DayStates: %v", err)
		}
		if len(out) != 25 {
			t.Fatalf("expected 25 entries, got %d", len(out))
		}
		for i := 1; i < len(out); i++ {
			if out[i-1].Date >= out[i].Date {
				t.Fatalf("not ascending at %d: %s >= %s", i, out[i-1].Date, out[i].Date)
			}
		}
		if out[0].Date != "2025-12-01" || out[24].Date != "2025-12-25" {
			t.Fatalf("unexpected bounds: %s..%s", out[0].Date, out[24].Date)
		}
		// No activity at all: every entry is the zero state.
		for _, st := range out {
			if st != (domain.DayState{Date: st.Date}) {
				t.Fatalf("expected zero state, got %+v", st)
			}
		}
	}
}

func TestDayStates_AnonymousSkipsViewerQueries(t *testing.T) {
	f := &fakeFacts{myDecl: []string{"2025-12-01"}}
	svc := NewCalendarService(nil, f, decemberWindow(3))

	out, err := svc.DayStates(context.Background(), svc.Window(), nil)
	if err != nil {
		t.Fatalf("DayStates: %v", err)
	}
	if n := f.viewerCalls.Load(); n != 0 {
		t.Fatalf("expected no viewer queries, got %d", n)
	}
	if out[0].IsViewerDeclared {
		t.Fatalf("anonymous viewer must not be declared")
	}

	if _, err := svc.DayStates(context.Background(), svc.Window(), ptr("")); err != nil {
		t.Fatalf("DayStates(empty): %v", err)
	}
	if n := f.viewerCalls.Load(); n != 0 {
		t.Fatalf("empty viewer id must count as anonymous, got %d calls", n)
	}

	if _, err := svc.DayStates(context.Background(), svc.Window(), ptr("u1")); err != nil {
		t.Fatalf("DayStates(u1): %v", err)
	}
	if n := f.viewerCalls.Load(); n != 2 {
		t.Fatalf("expected 2 viewer queries, got %d", n)
	}
}

func TestDayStates_PublishedBeatsDraft(t *testing.T) {
	for _, order := range [][]repo.DateStatus{
		{{PublishDate: "2025-12-02", Status: domain.StatusDraft}, {PublishDate: "2025-12-02", Status: domain.StatusPublished}},
		{{PublishDate: "2025-12-02", Status: domain.StatusPublished}, {PublishDate: "2025-12-02", Status: domain.StatusDraft}},
	} {
		svc := NewCalendarService(nil, &fakeFacts{myArticles: order}, decemberWindow(3))
		out, err := svc.DayStates(context.Background(), svc.Window(), ptr("u1"))
		if err != nil {
			t.Fatalf("DayStates: %v", err)
		}
		if !out[1].IsViewerPublished || out[1].IsViewerDraft {
			t.Fatalf("expected published only, got %+v", out[1])
		}
		if !out[1].IsViewerArticleExists() {
			t.Fatalf("expected article to exist")
		}
	}
}

func TestDayStates_FailureReturnsNoPartialList(t *testing.T) {
	f := &fakeFacts{decl: []string{"2025-12-01"}, failPublished: errors.New("connection reset")}
	svc := NewCalendarService(nil, f, decemberWindow(3))

	out, err := svc.DayStates(context.Background(), svc.Window(), ptr("u1"))
	if out != nil {
		t.Fatalf("expected nil list on failure, got %d entries", len(out))
	}
	if !errors.Is(err, ErrStorageFailure) || KindOf(err) != KindStorageFailure {
		t.Fatalf("expected storage failure, got %v", err)
	}
}

func TestDayStates_RejectsInvertedWindow(t *testing.T) {
	svc := NewCalendarService(nil, &fakeFacts{}, decemberWindow(3))
	bad := datekit.DateRange{Start: datekit.MustParseDate("2025-12-03"), End: datekit.MustParseDate("2025-12-01")}
	if _, err := svc.DayStates(context.Background(), bad, nil); KindOf(err) != KindValidationFailure {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestDayStates_Scenario_AgainstStore(t *testing.T) {
	db := newTestDB(t)
	seedProfile(t, db, "userA", domain.RoleUser)
	seedProfile(t, db, "userB", domain.RoleUser)
	seedDeclaration(t, db, "userA", "2025-12-02")
	seedArticle(t, db, "userB", "2025-12-01", domain.StatusPublished)
	// Outside the window; must not leak in.
	seedDeclaration(t, db, "userB", "2025-12-04")

	svc := NewCalendarService(db, repoFacts{}, decemberWindow(3))
	out, err := svc.DayStates(context.Background(), svc.Window(), ptr("userA"))
	if err != nil {
		t.Fatalf("DayStates: %v", err)
	}
	want := []domain.DayState{
		{Date: "2025-12-01", DeclarationCount: 0, HasPublishedArticle: true},
		{Date: "2025-12-02", DeclarationCount: 1, IsViewerDeclared: true},
		{Date: "2025-12-03"},
	}
	if len(out) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(out))
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("day %d: got %+v want %+v", i, out[i], want[i])
		}
	}
}

func TestDayStates_ViewerDraftAgainstStore(t *testing.T) {
	db := newTestDB(t)
	seedProfile(t, db, "u1", domain.RoleUser)
	seedProfile(t, db, "u2", domain.RoleUser)
	seedArticle(t, db, "u1", "2025-12-05", domain.StatusDraft)
	seedArticle(t, db, "u2", "2025-12-05", domain.StatusPublished)
	seedDeclaration(t, db, "u1", "2025-12-05")
	seedDeclaration(t, db, "u2", "2025-12-05")

	svc := NewCalendarService(db, repoFacts{}, decemberWindow(25))
	out, err := svc.DayStates(context.Background(), svc.Window(), ptr("u1"))
	if err != nil {
		t.Fatalf("DayStates: %v", err)
	}
	got := out[4]
	want := domain.DayState{
		Date: "2025-12-05", DeclarationCount: 2, HasPublishedArticle: true,
		IsViewerDeclared: true, IsViewerDraft: true,
	}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}

	st, err := svc.Stats(context.Background(), svc.Window())
	if err != nil || st.Declarations != 2 || st.Articles != 2 {
		t.Fatalf("Stats: %+v %v", st, err)
	}
}
