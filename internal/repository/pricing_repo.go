package repository

import (
	"context"
	"time"

	"clubfloor/internal/domain"

	"gorm.io/gorm"
)

type PricingPolicyRepository struct {
	db *gorm.DB
}

func NewPricingPolicyRepository(db *gorm.DB) *PricingPolicyRepository {
	return &PricingPolicyRepository{db: db}
}

func (r *PricingPolicyRepository) GetByID(ctx context.Context, id int64) (*domain.PricingPolicy, error) {
	var p domain.PricingPolicy
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PricingPolicyRepository) GetDefaultForVenue(ctx context.Context, venueID int64) (*domain.PricingPolicy, error) {
	var p domain.PricingPolicy
	err := r.db.WithContext(ctx).
		Where("venue_id = ? AND is_default = ?", venueID, true).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PricingPolicyRepository) ListByVenue(ctx context.Context, venueID int64) ([]domain.PricingPolicy, error) {
	var out []domain.PricingPolicy
	if err := r.db.WithContext(ctx).Where("venue_id = ?", venueID).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PricingPolicyRepository) Create(ctx context.Context, p *domain.PricingPolicy) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if p.IsDefault {
			if err := clearDefaultPolicy(tx, p.VenueID); err != nil {
				return err
			}
		}
		return tx.Create(p).Error
	})
}

func (r *PricingPolicyRepository) Update(ctx context.Context, p *domain.PricingPolicy) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if p.IsDefault {
			if err := clearDefaultPolicy(tx, p.VenueID); err != nil {
				return err
			}
		}
		p.UpdatedAt = time.Now()
		return tx.Save(p).Error
	})
}

// clearDefaultPolicy keeps the one-default-per-venue invariant.
func clearDefaultPolicy(tx *gorm.DB, venueID int64) error {
	return tx.Model(&domain.PricingPolicy{}).
		Where("venue_id = ? AND is_default = ?", venueID, true).
		Update("is_default", false).Error
}
