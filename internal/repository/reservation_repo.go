package repository

import (
	"context"
	"time"

	"clubfloor/internal/domain"

	"gorm.io/gorm"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var res domain.Reservation
	if err := r.db.WithContext(ctx).First(&res, id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

// ListByVenueAndDay returns the venue's reservations whose reserved time
// falls on the given calendar day.
func (r *ReservationRepository) ListByVenueAndDay(ctx context.Context, venueID int64, day time.Time) ([]domain.Reservation, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var out []domain.Reservation
	err := r.db.WithContext(ctx).
		Where("venue_id = ? AND reserved_at >= ? AND reserved_at < ?", venueID, start, end).
		Order("reserved_at").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus, sessionID *int64) error {
	fields := map[string]any{
		"status":     string(status),
		"updated_at": time.Now(),
	}
	if sessionID != nil {
		fields["session_id"] = *sessionID
	}
	return r.db.WithContext(ctx).Model(&domain.Reservation{}).Where("id = ?", id).Updates(fields).Error
}
