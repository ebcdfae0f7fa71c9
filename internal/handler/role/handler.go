package role

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nattapongw/calendar-api/internal/handler"
	"github.com/nattapongw/calendar-api/internal/model"
	"github.com/nattapongw/calendar-api/internal/service/role"
)

type Handler struct {
	service *role.Service
}

func NewHandler(service *role.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	roles := r.Group("/roles")
	{
		roles.GET("", h.List)
		roles.POST("", h.Set)
	}
}

func (h *Handler) List(c *gin.Context) {
	roles, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(roles))
}

func (h *Handler) Set(c *gin.Context) {
	var req model.SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.service.SetRole(c.Request.Context(), handler.Actor(c), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}
