// Declaration HTTP handlers.
//
//   - POST /declarations          (declare intent to publish on a date)
//   - GET  /declarations/{date}   (count, and whether the viewer declared)
//
// There is no retraction endpoint; a second declaration for the same date
// answers 409 already_declared.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-advent-calendar/internal/http/middleware"
	"github.com/tbourn/go-advent-calendar/internal/services"
)

// CreateDeclarationRequest is the JSON payload for declaring a date.
type CreateDeclarationRequest struct {
	Date string `json:"date" binding:"required" example:"2025-12-24"`
}

// DeclarationStatus summarizes one date for the viewer.
type DeclarationStatus struct {
	Date     string `json:"date" example:"2025-12-24"`
	Count    int    `json:"count" example:"3"`
	Declared bool   `json:"declared"`
}

// declarationOutcome labels a Create result for metrics.
func declarationOutcome(err error) string {
	switch {
	case err == nil:
		return "declared"
	case errors.Is(err, services.ErrAlreadyDeclared):
		return "conflict"
	case services.KindOf(err) == services.KindStorageFailure:
		return "error"
	default:
		return "rejected"
	}
}

// CreateDeclaration godoc
// @ID          createDeclaration
// @Summary     Declare a publish date
// @Description Records that the current user will publish on the date. At most one declaration per user and date.
// @Tags        Declarations
// @Accept      json
// @Produce     json
//
// @Param       Authorization  header  string  true  "Bearer token"
// @Param       body           body    handlers.CreateDeclarationRequest  true  "Declaration payload"
//
// @Success     201  {object} domain.Declaration
// @Failure     400  {object} handlers.ErrorResponse "Invalid or out-of-window date"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     409  {object} handlers.ErrorResponse "Already declared"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /declarations [post]
func (h *Handlers) CreateDeclaration(c *gin.Context) {
	var req CreateDeclarationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "date required")
		return
	}

	d, err := h.declarations.Create(c.Request.Context(), actor(c), req.Date)
	middleware.RecordToggle("declaration", declarationOutcome(err))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, http.StatusCreated, d)
}

// GetDeclaration godoc
// @ID          getDeclaration
// @Summary     Declarations for a date
// @Description Returns how many users declared the date and whether the viewer is one of them.
// @Tags        Declarations
// @Produce     json
//
// @Param       Authorization  header  string  false "Bearer token"
// @Param       date           path    string  true  "Date (YYYY-MM-DD)"  example(2025-12-24)
//
// @Success     200  {object} handlers.DeclarationStatus
// @Failure     400  {object} handlers.ErrorResponse "Invalid date"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /declarations/{date} [get]
func (h *Handlers) GetDeclaration(c *gin.Context) {
	ctx := c.Request.Context()
	date := c.Param("date")

	n, err := h.declarations.Count(ctx, date)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp := DeclarationStatus{Date: date, Count: n}
	if uid := actor(c); uid != "" {
		if resp.Declared, err = h.declarations.IsDeclared(ctx, uid, date); err != nil {
			writeServiceError(c, err)
			return
		}
	}
	ok(c, http.StatusOK, resp)
}
