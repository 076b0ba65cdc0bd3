// Pickup HTTP handler.
//
//   - GET /pickup?limit=n  (random published articles up to today)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-advent-calendar/internal/utils"
)

const (
	defaultPickupLimit = 3
	maxPickupLimit     = 10
)

// Pickup godoc
// @ID          pickup
// @Summary     Random published articles
// @Description Returns a random sample of published articles dated today or earlier, excluding administrators' articles.
// @Tags        Articles
// @Produce     json
//
// @Param       limit  query  int  false  "Number of articles"  minimum(1) maximum(10) default(3)
//
// @Success     200  {array}  services.Pickup
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /pickup [get]
func (h *Handlers) Pickup(c *gin.Context) {
	limit := utils.Clamp(utils.AtoiDefault(c.Query("limit"), h.pickupLimit), 1, maxPickupLimit)

	items, err := h.pickup.Random(c.Request.Context(), h.today(), limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, http.StatusOK, items)
}
