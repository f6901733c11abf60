package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quotevault/quotevault/internal/adapters/http/dto"
	"github.com/quotevault/quotevault/internal/app"
	"github.com/quotevault/quotevault/internal/domain"
)

// Screen names accepted in routes.
const (
	ScreenFeed      = "feed"
	ScreenSearch    = "search"
	ScreenFavorites = "favorites"
)

// eventUnmount is accepted only by the search screen; the list screens treat
// it as a no-op.
const eventUnmount = "unmount"

// LifecycleRequest is a screen lifecycle event.
type LifecycleRequest struct {
	Event string `json:"event" validate:"required,oneof=mount refresh focus unmount"`
}

// ScreenHandler drives the feed, search and favorites screens.
type ScreenHandler struct {
	core *app.Core
}

// NewScreenHandler creates a screen handler.
func NewScreenHandler(core *app.Core) *ScreenHandler {
	return &ScreenHandler{core: core}
}

// Lifecycle handles POST /api/v1/screens/:screen/events.
// The screen's state after the event is returned. A failed load keeps the
// previous data on the screen, posts a notice and answers with the mapped
// error.
func (h *ScreenHandler) Lifecycle(c *gin.Context) {
	var req LifecycleRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	screen := c.Param("screen")
	if !h.known(screen) {
		dto.HandleError(c, domain.NewNotFoundError("screen", screen))
		return
	}

	ctx := c.Request.Context()

	if req.Event == eventUnmount {
		if screen == ScreenSearch {
			h.core.Search.Unmount()
		}

		h.writeScreen(c, screen)

		return
	}

	trigger, err := app.ParseTrigger(req.Event)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if err := h.handle(ctx, screen, trigger); err != nil {
		dto.HandleError(c, err)
		return
	}

	h.writeScreen(c, screen)
}

// Get handles GET /api/v1/screens/:screen.
func (h *ScreenHandler) Get(c *gin.Context) {
	screen := c.Param("screen")
	if !h.known(screen) {
		dto.HandleError(c, domain.NewNotFoundError("screen", screen))
		return
	}

	h.writeScreen(c, screen)
}

// SetFilter handles PUT /api/v1/screens/search/filter. Each edit restarts
// the debounce window; the response shows the armed query, not its result.
func (h *ScreenHandler) SetFilter(c *gin.Context) {
	var req dto.FilterRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	current := h.core.Search.View().Filter
	next := current

	if req.Term != nil {
		next.Term = *req.Term
	}

	if req.Category != nil {
		category, err := domain.ParseCategory(*req.Category)
		if err != nil {
			dto.HandleError(c, err)
			return
		}

		next.Category = category
	}

	h.core.Search.SetFilter(next)

	c.JSON(http.StatusOK, dto.NewSearchResponse(h.core.Search.View()))
}

// ToggleFavorite handles POST /api/v1/screens/:screen/quotes/:id/favorite
// for the feed and search screens. The local value flips at once; with
// ?wait=true the response waits for the backend and reports a rollback as
// an error.
func (h *ScreenHandler) ToggleFavorite(c *gin.Context) {
	screen := c.Param("screen")
	quoteID := c.Param("id")

	var toggle func(context.Context, string) (*app.Pending, error)

	switch screen {
	case ScreenFeed:
		toggle = h.core.Feed.ToggleFavorite
	case ScreenSearch:
		toggle = h.core.Search.ToggleFavorite
	default:
		dto.HandleError(c, domain.NewNotFoundError("screen", screen))
		return
	}

	pending, err := toggle(c.Request.Context(), quoteID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	h.writeToggle(c, quoteID, pending)
}

// RemoveFavorite handles DELETE /api/v1/screens/favorites/quotes/:id.
func (h *ScreenHandler) RemoveFavorite(c *gin.Context) {
	quoteID := c.Param("id")

	pending, err := h.core.Favorites.Remove(c.Request.Context(), quoteID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	h.writeToggle(c, quoteID, pending)
}

// RegisterScreenRoutes registers the screen routes on the given group.
func (h *ScreenHandler) RegisterScreenRoutes(rg *gin.RouterGroup) {
	screens := rg.Group("/screens")
	screens.GET("/:screen", h.Get)
	screens.POST("/:screen/events", h.Lifecycle)
	screens.POST("/:screen/quotes/:id/favorite", h.ToggleFavorite)
	screens.PUT("/search/filter", h.SetFilter)
	screens.DELETE("/favorites/quotes/:id", h.RemoveFavorite)
}

func (h *ScreenHandler) known(screen string) bool {
	switch screen {
	case ScreenFeed, ScreenSearch, ScreenFavorites:
		return true
	default:
		return false
	}
}

func (h *ScreenHandler) handle(ctx context.Context, screen string, trigger app.Trigger) error {
	switch screen {
	case ScreenFeed:
		return h.core.Feed.Handle(ctx, trigger)
	case ScreenSearch:
		return h.core.Search.Handle(ctx, trigger)
	default:
		return h.core.Favorites.Handle(ctx, trigger)
	}
}

func (h *ScreenHandler) writeScreen(c *gin.Context, screen string) {
	switch screen {
	case ScreenFeed:
		c.JSON(http.StatusOK, dto.NewFeedResponse(h.core.Feed.Snapshot()))
	case ScreenSearch:
		c.JSON(http.StatusOK, dto.NewSearchResponse(h.core.Search.View()))
	default:
		c.JSON(http.StatusOK, dto.NewFavoritesResponse(h.core.Favorites.Snapshot()))
	}
}

func (h *ScreenHandler) writeToggle(c *gin.Context, quoteID string, pending *app.Pending) {
	resp := dto.ToggleResponse{QuoteID: quoteID, IsFavorite: pending.Value}

	if c.Query("wait") != "true" {
		c.JSON(http.StatusAccepted, resp)
		return
	}

	select {
	case <-pending.Done():
	case <-c.Request.Context().Done():
		dto.HandleError(c, c.Request.Context().Err())
		return
	}

	if err := pending.Wait(); err != nil {
		dto.HandleError(c, err)
		return
	}

	resp.Settled = true
	c.JSON(http.StatusOK, resp)
}
