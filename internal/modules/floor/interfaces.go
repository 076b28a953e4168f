package floor

import (
	"context"
	"time"

	"clubfloor/internal/domain"
	"clubfloor/internal/modules/billing"
)

// SessionStore defines the session persistence the floor service needs.
type SessionStore interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id int64) (*domain.Session, error)
	GetWithDetails(ctx context.Context, id int64) (*domain.Session, error)
	ListByVenue(ctx context.Context, venueID int64, status string) ([]domain.Session, error)
	Complete(ctx context.Context, id int64, endTime time.Time, computeTotal func(ctx context.Context) (int64, error)) error
	UpdateGuestCount(ctx context.Context, id int64, count int) error
	AssignTable(ctx context.Context, id int64, tableID *int64) error
	Delete(ctx context.Context, id int64) error
}

// GuestLinkStore manages session_guests link rows.
type GuestLinkStore interface {
	Add(ctx context.Context, link *domain.SessionGuest) error
	GetByID(ctx context.Context, id int64) (*domain.SessionGuest, error)
	ListBySession(ctx context.Context, sessionID int64) ([]domain.SessionGuest, error)
	Remove(ctx context.Context, linkID int64) error
}

// OrderWriter inserts ledger rows created by floor actions.
type OrderWriter interface {
	Create(ctx context.Context, o *domain.Order) error
}

// PolicySource resolves the venue's default pricing policy at open time.
type PolicySource interface {
	GetDefaultForVenue(ctx context.Context, venueID int64) (*domain.PricingPolicy, error)
}

// Biller computes a session's bill at checkout.
type Biller interface {
	GetBill(ctx context.Context, sessionID int64) (*billing.Breakdown, error)
}

// EventPublisher pushes floor changes to connected clients.
type EventPublisher interface {
	Broadcast(event string, payload any)
}
