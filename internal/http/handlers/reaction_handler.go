// Reaction HTTP handlers.
//
//   - POST /articles/{id}/reactions   (toggle one emoji for the actor)
//   - GET  /articles/{id}/reactions   (counts per emoji, plus the viewer's own)
//
// A toggle that loses a race with a parallel toggle of the same emoji
// answers 409 reaction_conflict; the client restores its snapshot and may
// retry.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-advent-calendar/internal/domain"
	"github.com/tbourn/go-advent-calendar/internal/http/middleware"
	"github.com/tbourn/go-advent-calendar/internal/services"
)

// ToggleReactionRequest is the JSON payload for toggling a reaction.
type ToggleReactionRequest struct {
	Type domain.ReactionType `json:"type" binding:"required" example:"❤️"`
}

// ToggleReactionResponse reports what the toggle did.
type ToggleReactionResponse struct {
	Action services.Action `json:"action" example:"added"`
}

// ReactionsResponse is the payload of GET /articles/{id}/reactions.
type ReactionsResponse struct {
	Counts  map[domain.ReactionType]int `json:"counts"`
	Mine    []domain.ReactionType       `json:"mine"`
	Palette []domain.ReactionOption     `json:"palette"`
}

func reactionOutcome(a services.Action, err error) string {
	switch {
	case err == nil:
		return string(a)
	case errors.Is(err, services.ErrReactionConflict):
		return "conflict"
	case services.KindOf(err) == services.KindStorageFailure:
		return "error"
	default:
		return "rejected"
	}
}

// ToggleReaction godoc
// @ID          toggleReaction
// @Summary     Toggle a reaction
// @Description Adds the emoji reaction if the current user has none of that type on the article, otherwise removes it.
// @Tags        Reactions
// @Accept      json
// @Produce     json
//
// @Param       Authorization  header  string  true  "Bearer token"
// @Param       id             path    string  true  "Article ID (UUID)"  format(uuid)
// @Param       body           body    handlers.ToggleReactionRequest  true  "Reaction type"
//
// @Success     200  {object} handlers.ToggleReactionResponse
// @Failure     400  {object} handlers.ErrorResponse "Unsupported reaction type"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     404  {object} handlers.ErrorResponse "Article not found"
// @Failure     409  {object} handlers.ErrorResponse "Concurrent toggle"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /articles/{id}/reactions [post]
func (h *Handlers) ToggleReaction(c *gin.Context) {
	var req ToggleReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "type required")
		return
	}

	action, err := h.reactions.Toggle(c.Request.Context(), c.Param("id"), actor(c), req.Type)
	middleware.RecordToggle("reaction", reactionOutcome(action, err))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, http.StatusOK, ToggleReactionResponse{Action: action})
}

// GetReactions godoc
// @ID          getReactions
// @Summary     Reaction counts
// @Description Returns the count of each emoji on the article and, for authenticated users, the emoji they reacted with.
// @Tags        Reactions
// @Produce     json
//
// @Param       Authorization  header  string  false "Bearer token"
// @Param       id             path    string  true  "Article ID (UUID)"  format(uuid)
//
// @Success     200  {object} handlers.ReactionsResponse
// @Failure     404  {object} handlers.ErrorResponse "Article not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /articles/{id}/reactions [get]
func (h *Handlers) GetReactions(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	counts, err := h.reactions.Counts(ctx, id, actor(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	mine, err := h.reactions.UserReactions(ctx, id, actor(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, http.StatusOK, ReactionsResponse{
		Counts:  counts,
		Mine:    mine,
		Palette: domain.AvailableReactions,
	})
}
