package order

import (
	"context"
	"errors"
	"net/http"
	"strconv"
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
	rg.POST("/sessions/:id/orders", h.PlaceOrder)
	rg.GET("/sessions/:id/orders", h.ListSessionOrders)
	rg.PATCH("/orders/:id/complete", h.MarkCompleted)
	rg.PATCH("/orders/:id/cancel", h.Cancel)
}

func (h *Handler) PlaceOrder(c *gin.Context) {
	sessionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid session ID")
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	entry, err := h.service.PlaceOrder(c.Request.Context(), sessionID, req, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Session not found")
		case errors.Is(err, ErrSessionClosed):
			response.Error(c, http.StatusConflict, "SESSION_CLOSED", "Session is already completed")
		case errors.Is(err, ErrItemUnavailable):
			response.Error(c, http.StatusBadRequest, "ITEM_UNAVAILABLE", "Menu item is not available")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Ad-hoc orders need item_name and a non-negative amount")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to place order")
		}
		return
	}

	response.Success(c, http.StatusCreated, entry)
}

func (h *Handler) ListSessionOrders(c *gin.Context) {
	sessionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid session ID")
		return
	}

	orders, err := h.service.ListSessionOrders(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Session not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list orders")
		return
	}

	response.Success(c, http.StatusOK, orders)
}

func (h *Handler) MarkCompleted(c *gin.Context) {
	h.updateStatus(c, h.service.MarkCompleted)
}

func (h *Handler) Cancel(c *gin.Context) {
	h.updateStatus(c, h.service.Cancel)
}

func (h *Handler) updateStatus(c *gin.Context, update func(ctx context.Context, orderID int64) error) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return
	}

	if err := update(c.Request.Context(), orderID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
		case errors.Is(err, ErrNotItemRow):
			response.Error(c, http.StatusBadRequest, "NOT_ITEM_ORDER", "Only item orders can change status here")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update order")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": true})
}
