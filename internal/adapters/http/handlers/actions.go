package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quotevault/quotevault/internal/adapters/http/dto"
	"github.com/quotevault/quotevault/internal/app"
)

// ActionHandler serves the one-shot actions: the daily reminder, sharing a
// quote card, draining notices and listing categories.
type ActionHandler struct {
	core *app.Core
}

// NewActionHandler creates an action handler.
func NewActionHandler(core *app.Core) *ActionHandler {
	return &ActionHandler{core: core}
}

// ScheduleReminder handles POST /api/v1/reminders/daily. A refused
// permission is not an error: the response says scheduled false.
func (h *ActionHandler) ScheduleReminder(c *gin.Context) {
	scheduled, err := h.core.Reminders.ScheduleDailyQuote(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReminderResponse{Scheduled: scheduled})
}

// ShareQuote handles POST /api/v1/quotes/:id/share for a quote shown on any
// screen.
func (h *ActionHandler) ShareQuote(c *gin.Context) {
	id := c.Param("id")

	path, err := h.core.ShareQuote(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ShareResponse{QuoteID: id, Path: path})
}

// Notices handles GET /api/v1/notices. Notices are drained: each one is
// returned once. ?peek=true leaves them in place.
func (h *ActionHandler) Notices(c *gin.Context) {
	if c.Query("peek") == "true" {
		c.JSON(http.StatusOK, dto.NewNoticesResponse(h.core.Notices.Pending()))
		return
	}

	c.JSON(http.StatusOK, dto.NewNoticesResponse(h.core.Notices.Drain()))
}

// Categories handles GET /api/v1/categories.
func (h *ActionHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewCategoriesResponse())
}

// RegisterActionRoutes registers the action routes on the given group.
func (h *ActionHandler) RegisterActionRoutes(rg *gin.RouterGroup) {
	rg.POST("/reminders/daily", h.ScheduleReminder)
	rg.POST("/quotes/:id/share", h.ShareQuote)
	rg.GET("/notices", h.Notices)
	rg.GET("/categories", h.Categories)
}
