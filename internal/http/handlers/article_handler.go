// Article HTTP handlers.
//
//   - PUT /articles/draft            (create or update the actor's draft)
//   - PUT /articles/publish          (create or update and publish)
//   - GET /articles/{id}             (one article; drafts only for the owner)
//   - GET /calendar/{date}/articles  (published articles of a day)
//   - GET /me/articles/{date}        (the actor's article of a day, any status)
//
// Content is the editor's JSON document. It is passed through verbatim;
// plain text is wrapped into a document by the service.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-advent-calendar/internal/content"
	"github.com/tbourn/go-advent-calendar/internal/domain"
	"github.com/tbourn/go-advent-calendar/internal/services"
)

// SaveArticleRequest is the payload of both save endpoints. An empty ID
// creates a new article.
type SaveArticleRequest struct {
	ID          string `json:"id,omitempty" example:"9b2f7c1e-3a55-4c1b-8e0f-2a4d6c8b9e01"`
	Title       string `json:"title" example:"Go generics in practice"`
	Content     string `json:"content" example:"{\"type\":\"doc\",\"content\":[]}"`
	PublishDate string `json:"publish_date" binding:"required" example:"2025-12-24"`
}

func (r SaveArticleRequest) input() services.ArticleInput {
	return services.ArticleInput{ID: r.ID, Title: r.Title, Content: r.Content, PublishDate: r.PublishDate}
}

// ArticleResponse is an article including its document.
type ArticleResponse struct {
	domain.Article
	Content string `json:"content"`
}

func articleResponse(a *domain.Article) ArticleResponse {
	return ArticleResponse{Article: *a, Content: a.Content}
}

// DayArticle is a published article as listed on a calendar day.
type DayArticle struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	PublishDate string `json:"publish_date"`
	PenName     string `json:"pen_name"`
	Excerpt     string `json:"excerpt"`
}

func (h *Handlers) saveArticle(c *gin.Context, status domain.ArticleStatus) {
	var req SaveArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "publish_date required")
		return
	}

	save := h.articles.SaveDraft
	if status == domain.StatusPublished {
		save = h.articles.Publish
	}
	a, err := save(c.Request.Context(), actor(c), req.input())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, http.StatusOK, articleResponse(a))
}

// SaveDraft godoc
// @ID          saveDraft
// @Summary     Save a draft
// @Description Creates or updates the current user's article as a draft. A title is optional.
// @Tags        Articles
// @Accept      json
// @Produce     json
//
// @Param       Authorization  header  string  true  "Bearer token"
// @Param       body           body    handlers.SaveArticleRequest  true  "Article payload"
//
// @Success     200  {object} handlers.ArticleResponse
// @Failure     400  {object} handlers.ErrorResponse "Invalid article"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     404  {object} handlers.ErrorResponse "Article or profile not found"
// @Failure     409  {object} handlers.ErrorResponse "Another article already uses the date"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /articles/draft [put]
func (h *Handlers) SaveDraft(c *gin.Context) { h.saveArticle(c, domain.StatusDraft) }

// PublishArticle godoc
// @ID          publishArticle
// @Summary     Publish an article
// @Description Creates or updates the current user's article and publishes it. A title is required.
// @Tags        Articles
// @Accept      json
// @Produce     json
//
// @Param       Authorization  header  string  true  "Bearer token"
// @Param       body           body    handlers.SaveArticleRequest  true  "Article payload"
//
// @Success     200  {object} handlers.ArticleResponse
// @Failure     400  {object} handlers.ErrorResponse "Invalid article"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     404  {object} handlers.ErrorResponse "Article or profile not found"
// @Failure     409  {object} handlers.ErrorResponse "Another article already uses the date"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /articles/publish [put]
func (h *Handlers) PublishArticle(c *gin.Context) { h.saveArticle(c, domain.StatusPublished) }

// GetArticle godoc
// @ID          getArticle
// @Summary     Get an article
// @Description Returns a published article, or the caller's own draft.
// @Tags        Articles
// @Produce     json
//
// @Param       Authorization  header  string  false "Bearer token"
// @Param       id             path    string  true  "Article ID (UUID)"  format(uuid)
//
// @Success     200  {object} handlers.ArticleResponse
// @Failure     404  {object} handlers.ErrorResponse "Article not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /articles/{id} [get]
func (h *Handlers) GetArticle(c *gin.Context) {
	a, err := h.articles.Get(c.Request.Context(), c.Param("id"), actor(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, http.StatusOK, articleResponse(a))
}

// ListDayArticles godoc
// @ID          listDayArticles
// @Summary     Published articles of a day
// @Description Lists the published articles of the date, oldest first, with author pen names and plain-text excerpts.
// @Tags        Articles
// @Produce     json
//
// @Param       date  path  string  true  "Date (YYYY-MM-DD)"  example(2025-12-24)
//
// @Success     200  {array}  handlers.DayArticle
// @Failure     400  {object} handlers.ErrorResponse "Invalid date"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /calendar/{date}/articles [get]
func (h *Handlers) ListDayArticles(c *gin.Context) {
	items, err := h.articles.PublishedForDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	out := make([]DayArticle, 0, len(items))
	for _, a := range items {
		out = append(out, DayArticle{
			ID:          a.ID,
			Title:       a.Title,
			PublishDate: a.PublishDate,
			PenName:     a.PenName,
			Excerpt:     content.Excerpt(a.Content, content.DefaultExcerptRunes),
		})
	}
	ok(c, http.StatusOK, out)
}

// GetMyArticle godoc
// @ID          getMyArticle
// @Summary     The caller's article for a day
// @Description Returns the current user's article for the date in any status, for resuming an edit.
// @Tags        Articles
// @Produce     json
//
// @Param       Authorization  header  string  true  "Bearer token"
// @Param       date           path    string  true  "Date (YYYY-MM-DD)"  example(2025-12-24)
//
// @Success     200  {object} handlers.ArticleResponse
// @Failure     400  {object} handlers.ErrorResponse "Invalid date"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     404  {object} handlers.ErrorResponse "No article for the date"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /me/articles/{date} [get]
func (h *Handlers) GetMyArticle(c *gin.Context) {
	a, err := h.articles.ForOwnerDate(c.Request.Context(), actor(c), c.Param("date"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, http.StatusOK, articleResponse(a))
}
