package masterdata

import (
	"errors"
	"net/http"
	"strconv"

	"clubfloor/internal/domain"
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
	rg.POST("/venues", h.CreateVenue)
	rg.GET("/venues/:id", h.GetVenue)
	rg.GET("/venues/:id/tables", h.ListTables)
	rg.POST("/venues/:id/tables", h.CreateTable)
	rg.GET("/venues/:id/guests", h.ListGuests)
	rg.POST("/venues/:id/guests", h.CreateGuest)
	rg.GET("/venues/:id/casts", h.ListCasts)
	rg.POST("/venues/:id/casts", h.CreateCast)
	rg.GET("/venues/:id/menu", h.ListMenu)
	rg.POST("/venues/:id/menu", h.CreateMenuItem)
	rg.GET("/venues/:id/policies", h.ListPolicies)
	rg.POST("/venues/:id/policies", h.CreatePolicy)
	rg.PUT("/policies/:id", h.UpdatePolicy)
	rg.GET("/venues/:id/bill-settings", h.GetSettings)
	rg.PUT("/venues/:id/bill-settings", h.PutSettings)
}

func (h *Handler) CreateVenue(c *gin.Context) {
	var v domain.Venue
	if !bindJSON(c, &v) || !validateStruct(c, &v) {
		return
	}
	if err := h.service.CreateVenue(c.Request.Context(), &v); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create venue")
		return
	}
	response.Success(c, http.StatusCreated, v)
}

func (h *Handler) GetVenue(c *gin.Context) {
	id, ok := venueID(c)
	if !ok {
		return
	}
	v, err := h.service.GetVenue(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Venue not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get venue")
		return
	}
	response.Success(c, http.StatusOK, v)
}

func (h *Handler) ListTables(c *gin.Context) {
	id, ok := venueID(c)
	if !ok {
		return
	}
	list, err := h.service.ListTables(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list tables")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) CreateTable(c *gin.Context) {
	id, ok := venueID(c)
	if !ok {
		return
	}
	var t domain.Table
	if !bindJSON(c, &t) {
		return
	}
	t.VenueID = id
	if !validateStruct(c, &t) {
		return
	}
	if err := h.service.CreateTable(c.Request.Context(), &t); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create table")
		return
	}
	response.Success(c, http.StatusCreated, t)
}

func (h *Handler) ListGuests(c *gin.Context) {
	id, ok := venueID(c)
	if !ok {
		return
	}
	list, err := h.service.ListGuests(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list guests")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) CreateGuest(c *gin.Context) {
	id, ok := venueID(c)
	if !ok {
		return
	}
	var g domain.Guest
	if !bindJSON(c, &g) {
		return
	}
	g.VenueID = id
	if !validateStruct(c, &g) {
		return
	}
	if err := h.service.CreateGuest(c.Request.Context(), &g); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create guest")
		return
	}
	response.Success(c, http.StatusCreated, g)
}

func (h *Handler) ListCasts(c *gin.Context) {
	id, ok := venueID(c)
	if !ok {
		return
	}
	list, err := h.service.ListCasts(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list casts")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) CreateCast(c *gin.Context) {
	id, ok := venueID(c)
	if !ok {
		return
	}
	var cast domain.Cast
	if !bindJSON(c, &cast) {
		return
	}
	cast.VenueID = id
	if !validateStruct(c, &cast) {
		return
	}
	cast.Active = true
	if err := h.service.CreateCast(c.Request.Context(), &cast); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create cast")
		return
	}
	response.Success(c, http.StatusCreated, cast)
}

func (h *Handler) ListMenu(c *gin.Context) {
	id, ok := venueID(c)
	if !ok {
		return
	}
	list, err := h.service.ListMenu(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list menu")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) CreateMenuItem(c *gin.Context) {
	id, ok := venueID(c)
	if !ok {
		return
	}
	var item domain.MenuItem
	if !bindJSON(c, &item) {
		return
	}
	item.VenueID = id
	if !validateStruct(c, &item) {
		return
	}
	item.Available = true
	if err := h.service.CreateMenuItem(c.Request.Context(), &item); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create menu item")
		return
	}
	response.Success(c, http.StatusCreated, item)
}

func (h *Handler) ListPolicies(c *gin.Context) {
	id, ok := venueID(c)
	if !ok {
		return
	}
	list, err := h.service.ListPolicies(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list policies")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) CreatePolicy(c *gin.Context) {
	id, ok := venueID(c)
	if !ok {
		return
	}
	var p domain.PricingPolicy
	if !bindJSON(c, &p) {
		return
	}
	p.VenueID = id
	if !validateStruct(c, &p) {
		return
	}
	if err := h.service.CreatePolicy(c.Request.Context(), &p); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create policy")
		return
	}
	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) UpdatePolicy(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid policy ID")
		return
	}
	var p domain.PricingPolicy
	if !bindJSON(c, &p) || !validateStruct(c, &p) {
		return
	}
	p.ID = id
	if err := h.service.UpdatePolicy(c.Request.Context(), &p); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Policy not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update policy")
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) GetSettings(c *gin.Context) {
	id, ok := venueID(c)
	if !ok {
		return
	}
	settings, err := h.service.GetSettings(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get bill settings")
		return
	}
	if settings == nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Bill settings not configured")
		return
	}
	response.Success(c, http.StatusOK, settings)
}

func (h *Handler) PutSettings(c *gin.Context) {
	id, ok := venueID(c)
	if !ok {
		return
	}
	var settings domain.BillSettings
	if !bindJSON(c, &settings) {
		return
	}
	settings.VenueID = id
	if !validateStruct(c, &settings) {
		return
	}
	if err := h.service.PutSettings(c.Request.Context(), &settings); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save bill settings")
		return
	}
	response.Success(c, http.StatusOK, settings)
}

func venueID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid venue ID")
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return false
	}
	return true
}

// validateStruct runs after path-derived fields like VenueID are filled in.
func validateStruct(c *gin.Context, v any) bool {
	if errs := validator.Validate(v); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", errs)
		return false
	}
	return true
}
