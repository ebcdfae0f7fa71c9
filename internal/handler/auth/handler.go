package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nattapongw/calendar-api/internal/handler"
	"github.com/nattapongw/calendar-api/internal/middleware"
	"github.com/nattapongw/calendar-api/pkg/auth"
)

type Handler struct {
	sessions     *auth.SessionService
	passwordHash string
	cookieMaxAge int
}

func NewHandler(sessions *auth.SessionService, passwordHash string, cookieMaxAge int) *Handler {
	return &Handler{
		sessions:     sessions,
		passwordHash: passwordHash,
		cookieMaxAge: cookieMaxAge,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	a := r.Group("/auth")
	{
		a.POST("/login", h.Login)
		a.POST("/logout", h.Logout)
	}
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login exchanges the shared console password for a session cookie.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.sessions.VerifyPassword(h.passwordHash, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid password"))
		return
	}

	token, err := h.sessions.GenerateToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to create session"))
		return
	}

	c.SetCookie(middleware.SessionCookie, token, h.cookieMaxAge, "/", "", true, true)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"token": token}))
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
