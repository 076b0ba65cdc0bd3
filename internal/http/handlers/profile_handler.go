// Profile HTTP handlers.
//
//   - POST /profiles  (create the caller's profile with a pen name)
//   - GET  /me        (the caller's profile)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateProfileRequest is the JSON payload for creating a profile.
type CreateProfileRequest struct {
	PenName string `json:"pen_name" binding:"required" example:"gopher"`
}

// CreateProfile godoc
// @ID          createProfile
// @Summary     Create a profile
// @Description Creates the current user's public profile. Pen names are unique.
// @Tags        Profiles
// @Accept      json
// @Produce     json
//
// @Param       Authorization  header  string  true  "Bearer token"
// @Param       body           body    handlers.CreateProfileRequest  true  "Profile payload"
//
// @Success     201  {object} domain.Profile
// @Failure     400  {object} handlers.ErrorResponse "Invalid pen name"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     409  {object} handlers.ErrorResponse "Profile exists or pen name taken"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /profiles [post]
func (h *Handlers) CreateProfile(c *gin.Context) {
	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "pen_name required")
		return
	}
	p, err := h.profiles.Create(c.Request.Context(), actor(c), req.PenName)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, http.StatusCreated, p)
}

// GetMe godoc
// @ID          getMe
// @Summary     Current profile
// @Tags        Profiles
// @Produce     json
//
// @Param       Authorization  header  string  true  "Bearer token"
//
// @Success     200  {object} domain.Profile
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     404  {object} handlers.ErrorResponse "No profile yet"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /me [get]
func (h *Handlers) GetMe(c *gin.Context) {
	p, err := h.profiles.Get(c.Request.Context(), actor(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}
