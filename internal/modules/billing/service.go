package billing

import (
	"context"
	"time"

	"clubfloor/internal/domain"
)

// SessionSource loads a session with its policy and full ledger attached.
type SessionSource interface {
	GetWithDetails(ctx context.Context, id int64) (*domain.Session, error)
}

type SettingsSource interface {
	GetByVenue(ctx context.Context, venueID int64) (*domain.BillSettings, error)
}

type Service struct {
	sessions SessionSource
	settings SettingsSource
}

func NewService(sessions SessionSource, settings SettingsSource) *Service {
	return &Service{sessions: sessions, settings: settings}
}

// GetBill computes the current breakdown for a session without mutating
// anything; checkout freezes a bill by calling the same calculator.
func (s *Service) GetBill(ctx context.Context, sessionID int64) (*Breakdown, error) {
	sess, err := s.sessions.GetWithDetails(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.GetByVenue(ctx, sess.VenueID)
	if err != nil {
		return nil, err
	}

	return Calculate(sess, sess.Orders, sess.Policy, settings, time.Now())
}
