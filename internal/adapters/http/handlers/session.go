package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quotevault/quotevault/internal/adapters/http/dto"
	"github.com/quotevault/quotevault/internal/adapters/http/middleware"
	"github.com/quotevault/quotevault/internal/app"
)

// SessionHandler handles sign-in, sign-up, sign-out and the current user.
type SessionHandler struct {
	core *app.Core
}

// NewSessionHandler creates a session handler.
func NewSessionHandler(core *app.Core) *SessionHandler {
	return &SessionHandler{core: core}
}

// Get handles GET /api/v1/session. Signed out is a 200 with signedIn false.
func (h *SessionHandler) Get(c *gin.Context) {
	s, err := h.core.Sessions.Current(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSessionResponse(s))
}

// SignIn handles POST /api/v1/session/signin.
func (h *SessionHandler) SignIn(c *gin.Context) {
	var req dto.SignInRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	s, err := h.core.Sessions.SignIn(c.Request.Context(), req.ToCredentials())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSessionResponse(s))
}

// SignUp handles POST /api/v1/session/signup. When the provider requires
// email verification the response is 202 with no session.
func (h *SessionHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	result, err := h.core.Sessions.SignUp(c.Request.Context(), req.ToDomain())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if result.PendingVerification {
		c.JSON(http.StatusAccepted, dto.SignUpResponse{
			PendingVerification: true,
			Message:             app.MsgVerifyEmail,
		})

		return
	}

	c.JSON(http.StatusCreated, dto.SignUpResponse{Session: dto.NewSessionResponse(result.Session)})
}

// SignOut handles DELETE /api/v1/session.
func (h *SessionHandler) SignOut(c *gin.Context) {
	if err := h.core.SignOut(c.Request.Context()); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Profile handles GET /api/v1/session/user with the provider's view of the
// signed-in user. Routed behind middleware.RequireSession.
func (h *SessionHandler) Profile(c *gin.Context) {
	u, err := h.core.Sessions.User(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if u == nil {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "sign in required").
			WithTraceID(dto.GetTraceID(c)))

		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{ID: u.ID, Email: u.Email, FullName: u.FullName})
}

// RegisterSessionRoutes registers the session routes on the given group.
func (h *SessionHandler) RegisterSessionRoutes(rg *gin.RouterGroup) {
	session := rg.Group("/session")
	session.GET("", h.Get)
	session.POST("/signin", h.SignIn)
	session.POST("/signup", h.SignUp)
	session.DELETE("", h.SignOut)
	session.GET("/user", middleware.RequireSession(h.core.Sessions), h.Profile)
}
