package reservation

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"clubfloor/internal/pkg/response"
	"clubfloor/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations", h.Create)
	rg.GET("/reservations", h.ListByDay)
	rg.PATCH("/reservations/:id/cancel", h.Cancel)
	rg.POST("/reservations/:id/seat", h.Seat)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", errs)
		return
	}

	res, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create reservation")
		return
	}

	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) ListByDay(c *gin.Context) {
	venueID, err := strconv.ParseInt(c.Query("venue_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_VENUE_ID", "venue_id query parameter is required")
		return
	}

	day := time.Now()
	if raw := c.Query("day"); raw != "" {
		day, err = time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_DAY", "day must be YYYY-MM-DD")
			return
		}
	}

	list, err := h.service.ListByDay(c.Request.Context(), venueID, day)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list reservations")
		return
	}

	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid reservation ID")
		return
	}

	if err := h.service.Cancel(c.Request.Context(), id); err != nil {
		h.writeError(c, err, "Failed to cancel reservation")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"cancelled": true})
}

func (h *Handler) Seat(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid reservation ID")
		return
	}

	session, err := h.service.Seat(c.Request.Context(), id, time.Now())
	if err != nil {
		h.writeError(c, err, "Failed to seat reservation")
		return
	}

	response.Success(c, http.StatusCreated, session)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
	case errors.Is(err, ErrAlreadySettled):
		response.Error(c, http.StatusConflict, "ALREADY_SETTLED", "Reservation is already seated or cancelled")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
