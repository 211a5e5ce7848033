package hours

import (
	"net/http"
	"time"

	"studyrooms/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/opening-hours", h.GetSchedule)
}

func (h *Handler) GetSchedule(c *gin.Context) {
	schedule, err := h.service.Schedule(c.Request.Context(), time.Now())
	if err != nil {
		c.Error(err) //nolint:errcheck
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load opening hours")
		return
	}
	response.Success(c, http.StatusOK, schedule)
}
