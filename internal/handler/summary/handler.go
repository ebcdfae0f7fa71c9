package summary

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nattapongw/calendar-api/internal/handler"
	"github.com/nattapongw/calendar-api/internal/service/event"
)

type Handler struct {
	events *event.Service
}

func NewHandler(events *event.Service) *Handler {
	return &Handler{events: events}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	s := r.Group("/summary")
	{
		s.GET("/today", h.Today)
		s.GET("/tomorrow", h.Tomorrow)
		s.GET("/week", h.Week)
	}
}

func (h *Handler) Today(c *gin.Context) {
	events, err := h.events.Today(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"count":  len(events),
		"events": events,
	}))
}

func (h *Handler) Tomorrow(c *gin.Context) {
	events, err := h.events.Tomorrow(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"count":  len(events),
		"events": events,
	}))
}

func (h *Handler) Week(c *gin.Context) {
	events, err := h.events.Week(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"count":  len(events),
		"events": events,
	}))
}
