package repository

import (
	"context"
	"errors"
	"strings"

	"clubfloor/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateGuest maps the unique (session_id, guest_id) constraint.
var ErrDuplicateGuest = errors.New("guest already on session")

type SessionGuestRepository struct {
	db *gorm.DB
}

func NewSessionGuestRepository(db *gorm.DB) *SessionGuestRepository {
	return &SessionGuestRepository{db: db}
}

func (r *SessionGuestRepository) Add(ctx context.Context, link *domain.SessionGuest) error {
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateGuest
		}
		return err
	}
	return nil
}

func (r *SessionGuestRepository) GetByID(ctx context.Context, id int64) (*domain.SessionGuest, error) {
	var link domain.SessionGuest
	if err := r.db.WithContext(ctx).First(&link, id).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *SessionGuestRepository) ListBySession(ctx context.Context, sessionID int64) ([]domain.SessionGuest, error) {
	var links []domain.SessionGuest
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("id").Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// Remove deletes the link and that guest's fee-category ledger rows in one
// transaction.
func (r *SessionGuestRepository) Remove(ctx context.Context, linkID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := DeleteGuestFeeRowsTx(tx, linkID); err != nil {
			return err
		}
		return tx.Delete(&domain.SessionGuest{}, linkID).Error
	})
}

// isUniqueViolation matches unique-constraint failures for both drivers.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
