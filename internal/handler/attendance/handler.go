package attendance

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nattapongw/calendar-api/internal/handler"
	"github.com/nattapongw/calendar-api/internal/model"
	"github.com/nattapongw/calendar-api/internal/service/attendance"
)

type Handler struct {
	service *attendance.Service
}

func NewHandler(service *attendance.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	att := r.Group("/attendance")
	{
		att.POST("", h.Set)
		att.GET("", h.ListForDate)
	}
}

func (h *Handler) Set(c *gin.Context) {
	var req model.SetAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	actor := req.Actor
	if actor == "" {
		actor = handler.Actor(c)
	}
	saved, err := h.service.Set(c.Request.Context(), actor, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(saved))
}

// ListForDate returns a user's attendance across one day, ?date= and ?user_id=.
func (h *Handler) ListForDate(c *gin.Context) {
	date := c.Query("date")
	userID := c.Query("user_id")
	if date == "" || userID == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("date and user_id are required"))
		return
	}

	entries, err := h.service.ListForDate(c.Request.Context(), date, userID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(entries))
}
