package repository

import (
	"context"
	"errors"

	"clubfloor/internal/domain"

	"gorm.io/gorm"
)

type BillSettingsRepository struct {
	db *gorm.DB
}

func NewBillSettingsRepository(db *gorm.DB) *BillSettingsRepository {
	return &BillSettingsRepository{db: db}
}

// GetByVenue returns nil, nil when the venue has no settings row. The billing
// module turns that into its not-configured error rather than assuming rates.
func (r *BillSettingsRepository) GetByVenue(ctx context.Context, venueID int64) (*domain.BillSettings, error) {
	var s domain.BillSettings
	err := r.db.WithContext(ctx).Where("venue_id = ?", venueID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *BillSettingsRepository) Upsert(ctx context.Context, s *domain.BillSettings) error {
	existing, err := r.GetByVenue(ctx, s.VenueID)
	if err != nil {
		return err
	}
	if existing != nil {
		s.ID = existing.ID
		return r.db.WithContext(ctx).Save(s).Error
	}
	return r.db.WithContext(ctx).Create(s).Error
}
