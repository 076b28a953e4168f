package accrual

import (
	"context"
	"errors"
	"log"
	"time"

	"clubfloor/internal/domain"
	"clubfloor/internal/repository"

	"gorm.io/gorm"
)

// SessionSource supplies the engine's working set.
type SessionSource interface {
	ListActiveWithDetails(ctx context.Context) ([]domain.Session, error)
}

// EventPublisher pushes pass results to floor-map clients.
type EventPublisher interface {
	Broadcast(event string, payload any)
}

// Result reports one ledger row inserted by a pass.
type Result struct {
	SessionID      int64                `json:"session_id"`
	Category       domain.OrderCategory `json:"category"`
	SessionGuestID *int64               `json:"session_guest_id,omitempty"`
	CastID         *int64               `json:"cast_id,omitempty"`
	Amount         int64                `json:"amount"`
}

// PassReport summarizes one accrual pass. A session failing mid-pass does not
// abort the others.
type PassReport struct {
	Processed int      `json:"processed"`
	Skipped   int      `json:"skipped"`
	Failed    int      `json:"failed"`
	Results   []Result `json:"results"`
}

type Service struct {
	db       *gorm.DB
	sessions SessionSource
	feed     EventPublisher
}

func NewService(db *gorm.DB, sessions SessionSource, feed EventPublisher) *Service {
	return &Service{db: db, sessions: sessions, feed: feed}
}

// RunPass scans active sessions and inserts every fee row newly due at `now`.
// Each session is handled in its own transaction under the session row lock,
// and the ledger is re-read inside it, so two concurrent passes cannot both
// act on the same stale counts.
func (s *Service) RunPass(ctx context.Context, now time.Time) (*PassReport, error) {
	sessions, err := s.sessions.ListActiveWithDetails(ctx)
	if err != nil {
		return nil, err
	}

	report := &PassReport{Results: []Result{}}
	for i := range sessions {
		sess := sessions[i]
		if sess.Policy == nil {
			report.Skipped++
			continue
		}

		planned, err := s.runSession(ctx, &sess, now)
		if errors.Is(err, errSessionCompleted) {
			report.Skipped++
			continue
		}
		if err != nil {
			log.Printf("accrual_session_failed session_id=%d error=%q", sess.ID, err)
			report.Failed++
			continue
		}

		report.Processed++
		for _, o := range planned {
			report.Results = append(report.Results, Result{
				SessionID:      o.SessionID,
				Category:       o.Category,
				SessionGuestID: o.SessionGuestID,
				CastID:         o.CastID,
				Amount:         o.Amount,
			})
		}
	}

	if s.feed != nil && len(report.Results) > 0 {
		s.feed.Broadcast("accrual", report.Results)
	}
	return report, nil
}

// errSessionCompleted marks a session that was checked out between the
// working-set read and the row lock.
var errSessionCompleted = errors.New("session completed mid-pass")

// runSession plans and inserts one session's due fee rows under its row lock.
// The status is re-read under the lock: a snapshot that went stale loses the
// race to checkout and the session gets no new rows.
func (s *Service) runSession(ctx context.Context, sess *domain.Session, now time.Time) ([]domain.Order, error) {
	var planned []domain.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := repository.LockSessionTx(tx, sess.ID)
		if err != nil {
			return err
		}
		if locked.Status != domain.SessionActive {
			return errSessionCompleted
		}

		orders, err := repository.ListSessionOrdersTx(tx, sess.ID)
		if err != nil {
			return err
		}
		sess.Orders = orders

		planned = planSession(sess, now)
		for j := range planned {
			if err := repository.CreateOrderTx(tx, &planned[j]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return planned, nil
}
