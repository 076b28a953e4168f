package floor

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"clubfloor/internal/modules/billing"
	"clubfloor/internal/pkg/response"
	"clubfloor/internal/pkg/validator"
	"clubfloor/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sessions", h.OpenSession)
	rg.GET("/sessions", h.ListSessions)
	rg.GET("/sessions/:id", h.GetSession)
	rg.DELETE("/sessions/:id", h.DeleteSession)
	rg.POST("/sessions/:id/guests", h.AddGuest)
	rg.DELETE("/sessions/:id/guests/:linkID", h.RemoveGuest)
	rg.POST("/sessions/:id/cast", h.AssignCast)
	rg.PATCH("/sessions/:id/table", h.AssignTable)
	rg.POST("/sessions/:id/checkout", h.Checkout)
}

func (h *Handler) OpenSession(c *gin.Context) {
	var req OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", errs)
		return
	}

	session, err := h.service.OpenSession(c.Request.Context(), req, time.Now())
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to open session")
		return
	}

	response.Success(c, http.StatusCreated, session)
}

func (h *Handler) ListSessions(c *gin.Context) {
	venueID, err := strconv.ParseInt(c.Query("venue_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_VENUE_ID", "venue_id query parameter is required")
		return
	}

	sessions, err := h.service.ListSessions(c.Request.Context(), venueID, c.Query("status"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list sessions")
		return
	}

	response.Success(c, http.StatusOK, sessions)
}

func (h *Handler) GetSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	session, err := h.service.GetSession(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to get session")
		return
	}

	response.Success(c, http.StatusOK, session)
}

type addGuestRequest struct {
	GuestID   int64  `json:"guest_id"`
	GuestName string `json:"guest_name"`
}

func (h *Handler) AddGuest(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req addGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	link, err := h.service.AddGuest(c.Request.Context(), id, GuestInput(req))
	if err != nil {
		h.writeError(c, err, "Failed to add guest")
		return
	}

	response.Success(c, http.StatusCreated, link)
}

func (h *Handler) RemoveGuest(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	linkID, err := strconv.ParseInt(c.Param("linkID"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid guest link ID")
		return
	}

	if err := h.service.RemoveGuest(c.Request.Context(), id, linkID); err != nil {
		h.writeError(c, err, "Failed to remove guest")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"removed": true})
}

func (h *Handler) AssignCast(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req AssignCastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", errs)
		return
	}

	entry, err := h.service.AssignCast(c.Request.Context(), id, req, time.Now())
	if err != nil {
		h.writeError(c, err, "Failed to assign cast")
		return
	}

	response.Success(c, http.StatusCreated, entry)
}

type assignTableRequest struct {
	TableID int64 `json:"table_id"`
}

func (h *Handler) AssignTable(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req assignTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.AssignTable(c.Request.Context(), id, req.TableID); err != nil {
		h.writeError(c, err, "Failed to assign table")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"assigned": true})
}

func (h *Handler) Checkout(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	bill, err := h.service.Checkout(c.Request.Context(), id, time.Now())
	if err != nil {
		if errors.Is(err, billing.ErrNotConfigured) {
			response.Error(c, http.StatusConflict, "BILL_SETTINGS_MISSING", "Venue bill settings are not configured")
			return
		}
		h.writeError(c, err, "Failed to check out session")
		return
	}

	response.Success(c, http.StatusOK, bill)
}

func (h *Handler) DeleteSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteSession(c.Request.Context(), id); err != nil {
		h.writeError(c, err, "Failed to delete session")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func sessionID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid session ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Session not found")
	case errors.Is(err, ErrSessionClosed):
		response.Error(c, http.StatusConflict, "SESSION_CLOSED", "Session is already completed")
	case errors.Is(err, repository.ErrDuplicateGuest):
		response.Error(c, http.StatusConflict, "DUPLICATE_GUEST", "Guest is already on the session")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
