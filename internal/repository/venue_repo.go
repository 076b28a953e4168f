package repository

import (
	"context"

	"clubfloor/internal/domain"

	"gorm.io/gorm"
)

type VenueRepository struct {
	db *gorm.DB
}

func NewVenueRepository(db *gorm.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

func (r *VenueRepository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	var v domain.Venue
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VenueRepository) Create(ctx context.Context, v *domain.Venue) error {
	return r.db.WithContext(ctx).Create(v).Error
}

type TableRepository struct {
	db *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{db: db}
}

func (r *TableRepository) GetByID(ctx context.Context, id int64) (*domain.Table, error) {
	var t domain.Table
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TableRepository) ListByVenue(ctx context.Context, venueID int64) ([]domain.Table, error) {
	var out []domain.Table
	if err := r.db.WithContext(ctx).Where("venue_id = ?", venueID).Order("name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TableRepository) Create(ctx context.Context, t *domain.Table) error {
	return r.db.WithContext(ctx).Create(t).Error
}
