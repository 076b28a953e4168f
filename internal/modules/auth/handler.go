package auth

import (
	"errors"
	"net/http"

	"clubfloor/internal/domain"
	"clubfloor/internal/middleware"
	"clubfloor/internal/pkg/jwt"
	"clubfloor/internal/pkg/response"
	"clubfloor/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service    *Service
	jwtService *jwt.Service
}

func NewHandler(service *Service, jwtService *jwt.Service) *Handler {
	return &Handler{service: service, jwtService: jwtService}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.Login)

	protected := rg.Group("")
	protected.Use(middleware.JWTAuth(h.jwtService))
	protected.GET("/auth/me", h.Me)
	protected.POST("/auth/staff", middleware.AdminOnly(), h.RegisterStaff)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", errs)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to log in")
		return
	}

	response.Success(c, http.StatusOK, LoginResponse{
		Token: result.Token,
		User:  toUserResponse(result.User),
	})
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Account no longer exists")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load account")
		return
	}

	response.Success(c, http.StatusOK, toUserResponse(user))
}

func (h *Handler) RegisterStaff(c *gin.Context) {
	var req RegisterStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", errs)
		return
	}

	user, err := h.service.RegisterStaff(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "Email already registered")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register staff")
		return
	}

	response.Success(c, http.StatusCreated, toUserResponse(user))
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:      u.ID,
		VenueID: u.VenueID,
		Email:   u.Email,
		Name:    u.Name,
		Role:    string(u.Role),
	}
}
