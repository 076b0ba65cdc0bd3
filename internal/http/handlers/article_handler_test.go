package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/tbourn/go-advent-calendar/internal/domain"
	"github.com/tbourn/go-advent-calendar/internal/services"
)

func articleStub(saved *[]domain.ArticleStatus) *stubArticles {
	return &stubArticles{
		save: func(_ context.Context, actorID string, in services.ArticleInput, st domain.ArticleStatus) (*domain.Article, error) {
			*saved = append(*saved, st)
			if st == domain.StatusPublished && in.Title == "" {
				return nil, services.ErrInvalidArticle
			}
			if in.PublishDate == "2025-12-20" {
				return nil, services.ErrArticleSlotTaken
			}
			id := in.ID
			if id == "" {
				id = "new-id"
			}
			return &domain.Article{
				ID: id, UserID: actorID, Title: in.Title, Content: in.Content,
				PublishDate: in.PublishDate, Status: st,
			}, nil
		},
		get: func(_ context.Context, id, viewerID string) (*domain.Article, error) {
			if id == "draft" && viewerID != "alice" {
				return nil, services.ErrArticleNotFound
			}
			return &domain.Article{ID: id, UserID: "alice", Title: "T", Content: `{"type":"doc"}`, Status: domain.StatusDraft}, nil
		},
		forOwner: func(_ context.Context, actorID, date string) (*domain.Article, error) {
			if actorID != "alice" {
				return nil, services.ErrArticleNotFound
			}
			return &domain.Article{ID: "mine", UserID: actorID, PublishDate: date, Status: domain.StatusDraft}, nil
		},
		published: func(_ context.Context, date string) ([]domain.ArticleWithAuthor, error) {
			if date == "nope" {
				return nil, services.ErrInvalidDate
			}
			doc := `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"Hello advent"}]}]}`
			return []domain.ArticleWithAuthor{{
				Article: domain.Article{ID: "p1", Title: "Hi", Content: doc, PublishDate: date, Status: domain.StatusPublished},
				PenName: "gopher",
			}}, nil
		},
	}
}

func TestSaveArticle_DraftAndPublish(t *testing.T) {
	var saved []domain.ArticleStatus
	h := newTestHandlers(Deps{Articles: articleStub(&saved)})
	r := newEngine()
	r.PUT("/articles/draft", h.SaveDraft)
	r.PUT("/articles/publish", h.PublishArticle)

	w := serve(r, http.MethodPut, "/articles/draft", "alice", `{"content":"notes","publish_date":"2025-12-11"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("draft status=%d body=%s", w.Code, w.Body.String())
	}
	a := decode[ArticleResponse](t, w)
	if a.ID != "new-id" || a.Status != domain.StatusDraft || a.Content != "notes" || a.UserID != "alice" {
		t.Fatalf("draft response: %+v", a)
	}

	w = serve(r, http.MethodPut, "/articles/publish", "alice", `{"id":"new-id","title":"Done","content":"notes","publish_date":"2025-12-11"}`)
	if a := decode[ArticleResponse](t, w); w.Code != http.StatusOK || a.Status != domain.StatusPublished || a.ID != "new-id" {
		t.Fatalf("publish: %d %+v", w.Code, a)
	}
	if len(saved) != 2 || saved[0] != domain.StatusDraft || saved[1] != domain.StatusPublished {
		t.Fatalf("saved statuses = %v", saved)
	}
}

func TestSaveArticle_Errors(t *testing.T) {
	var saved []domain.ArticleStatus
	h := newTestHandlers(Deps{Articles: articleStub(&saved)})
	r := newEngine()
	r.PUT("/articles/draft", h.SaveDraft)
	r.PUT("/articles/publish", h.PublishArticle)

	cases := []struct {
		name, path, body string
		status           int
	}{
		{"no date", "/articles/draft", `{"title":"x"}`, http.StatusBadRequest},
		{"malformed", "/articles/draft", `{`, http.StatusBadRequest},
		{"publish without title", "/articles/publish", `{"publish_date":"2025-12-11"}`, http.StatusBadRequest},
		{"slot taken", "/articles/draft", `{"publish_date":"2025-12-20"}`, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if w := serve(r, http.MethodPut, tc.path, "alice", tc.body); w.Code != tc.status {
				t.Fatalf("status=%d want %d body=%s", w.Code, tc.status, w.Body.String())
			}
		})
	}
}

func TestGetArticle_DraftVisibility(t *testing.T) {
	var saved []domain.ArticleStatus
	h := newTestHandlers(Deps{Articles: articleStub(&saved)})
	r := newEngine()
	r.GET("/articles/:id", h.GetArticle)

	w := serve(r, http.MethodGet, "/articles/draft", "alice", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"content":"{\"type\":\"doc\"}"`) {
		t.Fatalf("owner: %d %s", w.Code, w.Body.String())
	}
	if w := serve(r, http.MethodGet, "/articles/draft", "bob", ""); w.Code != http.StatusNotFound {
		t.Fatalf("other user: %d", w.Code)
	}
	if w := serve(r, http.MethodGet, "/articles/draft", "", ""); w.Code != http.StatusNotFound {
		t.Fatalf("anonymous: %d", w.Code)
	}
}

func TestListDayArticles_Excerpts(t *testing.T) {
	var saved []domain.ArticleStatus
	h := newTestHandlers(Deps{Articles: articleStub(&saved)})
	r := newEngine()
	r.GET("/calendar/:date/articles", h.ListDayArticles)

	w := serve(r, http.MethodGet, "/calendar/2025-12-05/articles", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	items := decode[[]DayArticle](t, w)
	if len(items) != 1 || items[0].PenName != "gopher" || items[0].Excerpt != "Hello advent" || items[0].PublishDate != "2025-12-05" {
		t.Fatalf("items = %+v", items)
	}
	if strings.Contains(w.Body.String(), `"content"`) {
		t.Fatal("listing must not include full documents")
	}

	if w := serve(r, http.MethodGet, "/calendar/nope/articles", "", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("bad date: %d", w.Code)
	}
}

func TestGetMyArticle(t *testing.T) {
	var saved []domain.ArticleStatus
	h := newTestHandlers(Deps{Articles: articleStub(&saved)})
	r := newEngine()
	r.GET("/me/articles/:date", h.GetMyArticle)

	w := serve(r, http.MethodGet, "/me/articles/2025-12-08", "alice", "")
	if a := decode[ArticleResponse](t, w); w.Code != http.StatusOK || a.ID != "mine" || a.PublishDate != "2025-12-08" {
		t.Fatalf("alice: %d %+v", w.Code, a)
	}
	if w := serve(r, http.MethodGet, "/me/articles/2025-12-08", "bob", ""); w.Code != http.StatusNotFound {
		t.Fatalf("bob: %d", w.Code)
	}
}
