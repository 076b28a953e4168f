package accrual

import (
	"net/http"
	"time"

	"clubfloor/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/accrual/run", h.RunPass)
}

func (h *Handler) RunPass(c *gin.Context) {
	report, err := h.service.RunPass(c.Request.Context(), time.Now())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "ACCRUAL_FAILED", "Failed to run accrual pass")
		return
	}
	response.Success(c, http.StatusOK, report)
}
