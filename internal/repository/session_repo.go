package repository

import (
	"context"
	"errors"
	"time"

	"clubfloor/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

type sessionModel struct {
	ID              int64      `gorm:"column:id;primaryKey"`
	VenueID         int64      `gorm:"column:venue_id"`
	TableID         *int64     `gorm:"column:table_id"`
	PricingPolicyID *int64     `gorm:"column:pricing_policy_id"`
	StartTime       time.Time  `gorm:"column:start_time"`
	EndTime         *time.Time `gorm:"column:end_time"`
	GuestCount      int        `gorm:"column:guest_count"`
	Status          string     `gorm:"column:status"`
	TotalAmount     *int64     `gorm:"column:total_amount"`
	Notes           *string    `gorm:"column:notes"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (sessionModel) TableName() string { return "sessions" }

func toDomainSession(m sessionModel) *domain.Session {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}

	return &domain.Session{
		ID:              m.ID,
		VenueID:         m.VenueID,
		TableID:         m.TableID,
		PricingPolicyID: m.PricingPolicyID,
		StartTime:       m.StartTime,
		EndTime:         m.EndTime,
		GuestCount:      m.GuestCount,
		Status:          domain.SessionStatus(m.Status),
		TotalAmount:     m.TotalAmount,
		Notes:           notes,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toSessionModel(s *domain.Session) sessionModel {
	var notes *string
	if s.Notes != "" {
		v := s.Notes
		notes = &v
	}

	return sessionModel{
		ID:              s.ID,
		VenueID:         s.VenueID,
		TableID:         s.TableID,
		PricingPolicyID: s.PricingPolicyID,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		GuestCount:      s.GuestCount,
		Status:          string(s.Status),
		TotalAmount:     s.TotalAmount,
		Notes:           notes,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	m := toSessionModel(s)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainSession(m)
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	var m sessionModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainSession(m), nil
}

// GetWithDetails loads a session together with its policy, guest links and
// full ledger.
func (r *SessionRepository) GetWithDetails(ctx context.Context, id int64) (*domain.Session, error) {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.loadDetails(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ListActiveWithDetails returns every active session with policy, guests and
// ledger attached. This is the accrual engine's working set.
func (r *SessionRepository) ListActiveWithDetails(ctx context.Context) ([]domain.Session, error) {
	var models []sessionModel
	tx := r.db.WithContext(ctx).Where("status = ?", string(domain.SessionActive)).Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Session, 0, len(models))
	for _, m := range models {
		s := toDomainSession(m)
		if err := r.loadDetails(ctx, s); err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *SessionRepository) loadDetails(ctx context.Context, s *domain.Session) error {
	if s.PricingPolicyID != nil {
		var p domain.PricingPolicy
		err := r.db.WithContext(ctx).First(&p, *s.PricingPolicyID).Error
		switch {
		case err == nil:
			s.Policy = &p
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
	}

	var links []domain.SessionGuest
	if err := r.db.WithContext(ctx).Where("session_id = ?", s.ID).Find(&links).Error; err != nil {
		return err
	}
	s.Guests = links

	orders, err := ListSessionOrdersTx(r.db.WithContext(ctx), s.ID)
	if err != nil {
		return err
	}
	s.Orders = orders
	return nil
}

func (r *SessionRepository) ListByVenue(ctx context.Context, venueID int64, status string) ([]domain.Session, error) {
	q := r.db.WithContext(ctx).Where("venue_id = ?", venueID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var models []sessionModel
	if err := q.Order("start_time desc").Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Session, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainSession(m))
	}
	return out, nil
}

// ErrSessionNotActive rejects a second checkout of the same session.
var ErrSessionNotActive = errors.New("session is not active")

// Complete freezes the session at checkout: end time, status and total in one
// transaction. The total is computed by the caller's closure while the session
// row lock is held, so an accrual pass cannot slip new ledger rows in between
// the bill computation and the freeze.
func (r *SessionRepository) Complete(ctx context.Context, id int64, endTime time.Time, computeTotal func(ctx context.Context) (int64, error)) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := LockSessionTx(tx, id)
		if err != nil {
			return err
		}
		if locked.Status != domain.SessionActive {
			return ErrSessionNotActive
		}

		total, err := computeTotal(ctx)
		if err != nil {
			return err
		}

		return tx.Model(&sessionModel{}).Where("id = ?", id).Updates(map[string]any{
			"end_time":     endTime,
			"status":       string(domain.SessionCompleted),
			"total_amount": total,
			"updated_at":   time.Now(),
		}).Error
	})
}

func (r *SessionRepository) UpdateGuestCount(ctx context.Context, id int64, count int) error {
	return r.db.WithContext(ctx).Model(&sessionModel{}).Where("id = ?", id).Updates(map[string]any{
		"guest_count": count,
		"updated_at":  time.Now(),
	}).Error
}

func (r *SessionRepository) AssignTable(ctx context.Context, id int64, tableID *int64) error {
	return r.db.WithContext(ctx).Model(&sessionModel{}).Where("id = ?", id).Updates(map[string]any{
		"table_id":   tableID,
		"updated_at": time.Now(),
	}).Error
}

// Delete removes the session with its ledger and guest links.
func (r *SessionRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&orderModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("session_id = ?", id).Delete(&domain.SessionGuest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&sessionModel{}, id).Error
	})
}

// LockSessionTx takes a row lock on the session inside tx and returns the
// row as read under it. Accrual passes, engagement retags and checkout all
// acquire it first, so work on one session is serialized; callers must check
// the returned status rather than trust an earlier snapshot.
func LockSessionTx(tx *gorm.DB, sessionID int64) (*domain.Session, error) {
	q := tx
	// SQLite has no FOR UPDATE; its single writer serializes us anyway.
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var m sessionModel
	if err := q.First(&m, sessionID).Error; err != nil {
		return nil, err
	}
	return toDomainSession(m), nil
}
