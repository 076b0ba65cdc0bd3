package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-advent-calendar/internal/datekit"
	"github.com/tbourn/go-advent-calendar/internal/domain"
	"github.com/tbourn/go-advent-calendar/internal/http/middleware"
	"github.com/tbourn/go-advent-calendar/internal/repo"
	"github.com/tbourn/go-advent-calendar/internal/services"
)

// --- service stubs; nil funcs panic so unexpected calls surface ---

type stubCalendar struct {
	window    datekit.DateRange
	dayStates func(ctx context.Context, w datekit.DateRange, viewer *string) ([]domain.DayState, error)
	stats     func(ctx context.Context, w datekit.DateRange) (repo.WindowStats, error)
}

func (s *stubCalendar) Window() datekit.DateRange { return s.window }
func (s *stubCalendar) DayStates(ctx context.Context, w datekit.DateRange, v *string) ([]domain.DayState, error) {
	return s.dayStates(ctx, w, v)
}
func (s *stubCalendar) Stats(ctx context.Context, w datekit.DateRange) (repo.WindowStats, error) {
	return s.stats(ctx, w)
}

type stubDeclarations struct {
	create     func(ctx context.Context, actorID, date string) (*domain.Declaration, error)
	isDeclared func(ctx context.Context, actorID, date string) (bool, error)
	count      func(ctx context.Context, date string) (int, error)
}

func (s *stubDeclarations) Create(ctx context.Context, a, d string) (*domain.Declaration, error) {
	return s.create(ctx, a, d)
}
func (s *stubDeclarations) IsDeclared(ctx context.Context, a, d string) (bool, error) {
	return s.isDeclared(ctx, a, d)
}
func (s *stubDeclarations) Count(ctx context.Context, d string) (int, error) { return s.count(ctx, d) }

type stubArticles struct {
	save      func(ctx context.Context, actorID string, in services.ArticleInput, status domain.ArticleStatus) (*domain.Article, error)
	get       func(ctx context.Context, id, viewerID string) (*domain.Article, error)
	forOwner  func(ctx context.Context, actorID, date string) (*domain.Article, error)
	published func(ctx context.Context, date string) ([]domain.ArticleWithAuthor, error)
}

func (s *stubArticles) SaveDraft(ctx context.Context, a string, in services.ArticleInput) (*domain.Article, error) {
	return s.save(ctx, a, in, domain.StatusDraft)
}
func (s *stubArticles) Publish(ctx context.Context, a string, in services.ArticleInput) (*domain.Article, error) {
	return s.save(ctx, a, in, domain.StatusPublished)
}
func (s *stubArticles) Get(ctx context.Context, id, v string) (*domain.Article, error) {
	return s.get(ctx, id, v)
}
func (s *stubArticles) ForOwnerDate(ctx context.Context, a, d string) (*domain.Article, error) {
	return s.forOwner(ctx, a, d)
}
func (s *stubArticles) PublishedForDate(ctx context.Context, d string) ([]domain.ArticleWithAuthor, error) {
	return s.published(ctx, d)
}

type stubReactions struct {
	toggle func(ctx context.Context, articleID, actorID string, t domain.ReactionType) (services.Action, error)
	counts func(ctx context.Context, articleID, viewerID string) (map[domain.ReactionType]int, error)
	mine   func(ctx context.Context, articleID, actorID string) ([]domain.ReactionType, error)
}

func (s *stubReactions) Toggle(ctx context.Context, id, a string, t domain.ReactionType) (services.Action, error) {
	return s.toggle(ctx, id, a, t)
}
func (s *stubReactions) Counts(ctx context.Context, id, v string) (map[domain.ReactionType]int, error) {
	return s.counts(ctx, id, v)
}
func (s *stubReactions) UserReactions(ctx context.Context, id, a string) ([]domain.ReactionType, error) {
	return s.mine(ctx, id, a)
}

type stubProfiles struct {
	create func(ctx context.Context, actorID, penName string) (*domain.Profile, error)
	get    func(ctx context.Context, actorID string) (*domain.Profile, error)
}

func (s *stubProfiles) Create(ctx context.Context, a, p string) (*domain.Profile, error) {
	return s.create(ctx, a, p)
}
func (s *stubProfiles) Get(ctx context.Context, a string) (*domain.Profile, error) {
	return s.get(ctx, a)
}

type stubPickup struct {
	random func(ctx context.Context, today datekit.Date, limit int) ([]services.Pickup, error)
}

func (s *stubPickup) Random(ctx context.Context, today datekit.Date, limit int) ([]services.Pickup, error) {
	return s.random(ctx, today, limit)
}

// --- helpers ---

var (
	testWindow = datekit.MonthWindow(2025, time.December, 25)
	// 2025-12-10 09:00 UTC
	testNow = time.Date(2025, time.December, 10, 9, 0, 0, 0, time.UTC)
)

// newEngine returns a gin engine whose requests carry the X-User-ID header
// value as the authenticated user.
func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if uid := c.GetHeader(middleware.DevUserHeader); uid != "" {
			c.Set(middleware.UserIDKey, uid)
		}
		c.Next()
	})
	return r
}

func newTestHandlers(d Deps) *Handlers {
	if d.Clock == nil {
		d.Clock = func() time.Time { return testNow }
	}
	return New(d)
}

func newRequest(method, path, user string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	if user != "" {
		req.Header.Set(middleware.DevUserHeader, user)
	}
	return req
}

func record(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func serve(r http.Handler, method, path, user, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set(middleware.DevUserHeader, user)
	}
	return record(r, req)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("json: %v (body=%s)", err, w.Body.String())
	}
	return v
}
