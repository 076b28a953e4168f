package auth

import (
	"context"
	"errors"
	"strings"

	"clubfloor/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type jwtService interface {
	GenerateToken(userID, venueID int64, role string) (string, error)
}

// Service contains all business logic for staff authentication
type Service struct {
	users UserStore
	jwt   jwtService
}

func NewService(users UserStore, jwt jwtService) *Service {
	return &Service{users: users, jwt: jwt}
}

type LoginResult struct {
	User  *domain.User
	Token string
}

// RegisterStaff creates a staff account. Only admins reach this endpoint.
func (s *Service) RegisterStaff(ctx context.Context, req RegisterStaffRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrEmailAlreadyExists
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := domain.UserRole(req.Role)
	if role != domain.RoleAdmin {
		role = domain.RoleStaff
	}

	user := &domain.User{
		VenueID:      req.VenueID,
		Email:        email,
		PasswordHash: hashed,
		Name:         req.Name,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.VenueID, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, Token: token}, nil
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
