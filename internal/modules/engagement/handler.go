package engagement

import (
	"errors"
	"net/http"
	"strconv"

	"clubfloor/internal/domain"
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
	rg.PATCH("/orders/:id/engagement", h.ChangeTag)
	rg.DELETE("/orders/:id/engagement", h.Delete)
}

type changeTagRequest struct {
	Tag             string `json:"tag" binding:"required"`
	PricingPolicyID int64  `json:"pricing_policy_id"`
}

func (h *Handler) ChangeTag(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return
	}

	var req changeTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	entry, err := h.service.ChangeTag(c.Request.Context(), id, domain.EngagementTag(req.Tag), req.PricingPolicyID)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownTag), errors.Is(err, ErrNotCastEntry), errors.Is(err, ErrPolicyMissing):
			response.Error(c, http.StatusBadRequest, "INVALID_TRANSITION", err.Error())
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Ledger entry not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to change engagement tag")
		}
		return
	}

	response.Success(c, http.StatusOK, entry)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Ledger entry not found")
		case errors.Is(err, ErrNotCastEntry):
			response.Error(c, http.StatusBadRequest, "INVALID_TRANSITION", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete entry")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
