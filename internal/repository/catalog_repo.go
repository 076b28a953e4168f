package repository

import (
	"context"

	"clubfloor/internal/domain"

	"gorm.io/gorm"
)

type GuestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) *GuestRepository {
	return &GuestRepository{db: db}
}

func (r *GuestRepository) GetByID(ctx context.Context, id int64) (*domain.Guest, error) {
	var g domain.Guest
	if err := r.db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GuestRepository) ListByVenue(ctx context.Context, venueID int64) ([]domain.Guest, error) {
	var out []domain.Guest
	if err := r.db.WithContext(ctx).Where("venue_id = ?", venueID).Order("name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GuestRepository) Create(ctx context.Context, g *domain.Guest) error {
	return r.db.WithContext(ctx).Create(g).Error
}

type CastRepository struct {
	db *gorm.DB
}

func NewCastRepository(db *gorm.DB) *CastRepository {
	return &CastRepository{db: db}
}

func (r *CastRepository) GetByID(ctx context.Context, id int64) (*domain.Cast, error) {
	var c domain.Cast
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CastRepository) ListActiveByVenue(ctx context.Context, venueID int64) ([]domain.Cast, error) {
	var out []domain.Cast
	err := r.db.WithContext(ctx).
		Where("venue_id = ? AND active = ?", venueID, true).
		Order("name").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CastRepository) Create(ctx context.Context, c *domain.Cast) error {
	return r.db.WithContext(ctx).Create(c).Error
}

type MenuItemRepository struct {
	db *gorm.DB
}

func NewMenuItemRepository(db *gorm.DB) *MenuItemRepository {
	return &MenuItemRepository{db: db}
}

func (r *MenuItemRepository) GetByID(ctx context.Context, id int64) (*domain.MenuItem, error) {
	var m domain.MenuItem
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MenuItemRepository) ListAvailableByVenue(ctx context.Context, venueID int64) ([]domain.MenuItem, error) {
	var out []domain.MenuItem
	err := r.db.WithContext(ctx).
		Where("venue_id = ? AND available = ?", venueID, true).
		Order("category, name").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MenuItemRepository) Create(ctx context.Context, m *domain.MenuItem) error {
	return r.db.WithContext(ctx).Create(m).Error
}
