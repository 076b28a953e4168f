package billing

import (
	"errors"
	"net/http"
	"strconv"

	"clubfloor/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/sessions/:id/bill", h.GetBill)
}

func (h *Handler) GetBill(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid session ID")
		return
	}

	bill, err := h.service.GetBill(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Session not found")
		case errors.Is(err, ErrNotConfigured):
			response.Error(c, http.StatusConflict, "BILL_SETTINGS_MISSING", "Venue has no bill settings configured")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to calculate bill")
		}
		return
	}

	response.Success(c, http.StatusOK, bill)
}
