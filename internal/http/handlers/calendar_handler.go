// Calendar HTTP handlers.
//
// This file exposes the read side of the calendar:
//   - GET /calendar          (day states for the configured window, weak ETag)
//   - GET /dates/{date}      (phase, days until, and label of one date)
//
// Day states are recomputed on every miss; the ETag only lets clients skip
// the transfer when no declaration or article in the window changed.
package handlers

import (
	"fmt"
	"hash/fnv"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-advent-calendar/internal/datekit"
	"github.com/tbourn/go-advent-calendar/internal/domain"
	"github.com/tbourn/go-advent-calendar/internal/http/middleware"
	"github.com/tbourn/go-advent-calendar/internal/repo"
)

//
// DTOs
//

// CalendarDay is one day state enriched with its position relative to today.
type CalendarDay struct {
	domain.DayState
	IsViewerArticleExists bool          `json:"is_viewer_article_exists"`
	Phase                 datekit.Phase `json:"phase" example:"future"`
	DaysUntil             int           `json:"days_until" example:"3"`
	Label                 string        `json:"label" example:"12月25日"`
}

// CalendarResponse is the payload of GET /calendar.
type CalendarResponse struct {
	Start string        `json:"start" example:"2025-12-01"`
	End   string        `json:"end" example:"2025-12-25"`
	Today string        `json:"today" example:"2025-12-10"`
	Days  []CalendarDay `json:"days"`
}

// DateInfo is the payload of GET /dates/{date}.
type DateInfo struct {
	Date      string        `json:"date" example:"2025-12-25"`
	Phase     datekit.Phase `json:"phase" example:"future"`
	DaysUntil int           `json:"days_until" example:"15"`
	Label     string        `json:"label" example:"12月25日"`
	InWindow  bool          `json:"in_window"`
}

//
// Helpers
//

// calendarETag derives a weak validator from the window statistics, the
// viewer, and today. Today is part of it because phases move at midnight.
func calendarETag(w datekit.DateRange, today datekit.Date, viewer string, st repo.WindowStats) string {
	stamp := func(t *time.Time) int64 {
		if t == nil {
			return 0
		}
		return t.UnixNano()
	}
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%s|%d|%d|%d|%d", w, today, viewer,
		st.Declarations, stamp(st.LastDeclaration), st.Articles, stamp(st.LastArticleWrite))
	return fmt.Sprintf(`W/"cal-%x"`, h.Sum64())
}

//
// Handlers
//

// GetCalendar godoc
// @ID          getCalendar
// @Summary     Calendar day states
// @Description Returns one entry per day of the calendar window. Viewer flags are set only for authenticated requests. Supports a weak ETag via If-None-Match.
// @Tags        Calendar
// @Produce     json
//
// @Param       Authorization  header  string  false "Bearer token"
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"cal-1a2b3c\")
//
// @Success     200  {object} handlers.CalendarResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /calendar [get]
func (h *Handlers) GetCalendar(c *gin.Context) {
	ctx := c.Request.Context()
	window := h.calendar.Window()
	now := h.now()
	today := h.classifier.Today(now)
	v := viewer(c)

	// ETag pre-check (best effort).
	if st, err := h.calendar.Stats(ctx, window); err == nil {
		etag := calendarETag(window, today, actor(c), st)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	} else {
		middleware.LoggerFrom(c).Warn().Err(err).Msg("calendar stats unavailable")
	}

	start := time.Now()
	states, err := h.calendar.DayStates(ctx, window, v)
	middleware.ObserveAggregate(time.Since(start), v != nil)
	if err != nil {
		c.Header("ETag", "")
		writeServiceError(c, err)
		return
	}

	days := make([]CalendarDay, 0, len(states))
	for _, s := range states {
		d, perr := datekit.ParseDate(s.Date)
		if perr != nil {
			writeServiceError(c, perr)
			return
		}
		days = append(days, CalendarDay{
			DayState:              s,
			IsViewerArticleExists: s.IsViewerArticleExists(),
			Phase:                 h.classifier.Classify(d, now),
			DaysUntil:             h.classifier.DaysUntil(d, now),
			Label:                 datekit.FormatLabel(d, h.locale),
		})
	}
	ok(c, http.StatusOK, CalendarResponse{
		Start: window.Start.String(),
		End:   window.End.String(),
		Today: today.String(),
		Days:  days,
	})
}

// GetDate godoc
// @ID          getDate
// @Summary     Classify a date
// @Description Returns whether the date is past, today, or future in the calendar's time zone, the signed day distance, and a display label.
// @Tags        Calendar
// @Produce     json
//
// @Param       date  path  string  true  "Date (YYYY-MM-DD)"  example(2025-12-25)
//
// @Success     200  {object} handlers.DateInfo
// @Failure     400  {object} handlers.ErrorResponse "Invalid date"
// @Router      /dates/{date} [get]
func (h *Handlers) GetDate(c *gin.Context) {
	d, err := datekit.ParseDate(c.Param("date"))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "date must be YYYY-MM-DD")
		return
	}
	now := h.now()
	ok(c, http.StatusOK, DateInfo{
		Date:      d.String(),
		Phase:     h.classifier.Classify(d, now),
		DaysUntil: h.classifier.DaysUntil(d, now),
		Label:     datekit.FormatLabel(d, h.locale),
		InWindow:  h.calendar.Window().Contains(d),
	})
}
