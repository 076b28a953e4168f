package floor

import (
	"context"
	"errors"
	"log"
	"time"

	"clubfloor/internal/domain"
	"clubfloor/internal/modules/billing"
	"clubfloor/internal/repository"

	"gorm.io/gorm"
)

// Service owns the session lifecycle: opening, guest changes, cast
// assignment, checkout and deletion. Ledger mutations during the session go
// through the accrual and engagement services.
type Service struct {
	sessions SessionStore
	links    GuestLinkStore
	orders   OrderWriter
	policies PolicySource
	biller   Biller
	feed     EventPublisher
}

func NewService(sessions SessionStore, links GuestLinkStore, orders OrderWriter, policies PolicySource, biller Biller, feed EventPublisher) *Service {
	return &Service{
		sessions: sessions,
		links:    links,
		orders:   orders,
		policies: policies,
		biller:   biller,
		feed:     feed,
	}
}

// OpenSession seats a party. When no pricing policy is given the venue's
// default applies; a venue without a default opens the session unpriced and
// the accrual pass skips it until a policy is assigned.
func (s *Service) OpenSession(ctx context.Context, req OpenSessionRequest, now time.Time) (*domain.Session, error) {
	if req.VenueID == 0 {
		return nil, ErrValidation
	}

	policyID := req.PricingPolicyID
	if policyID == 0 {
		policy, err := s.policies.GetDefaultForVenue(ctx, req.VenueID)
		switch {
		case err == nil:
			policyID = policy.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			log.Printf("session_open_without_policy venue_id=%d", req.VenueID)
		default:
			return nil, err
		}
	}

	session := &domain.Session{
		VenueID:    req.VenueID,
		StartTime:  now,
		GuestCount: req.GuestCount,
		Status:     domain.SessionActive,
		Notes:      req.Notes,
	}
	if req.TableID != 0 {
		session.TableID = &req.TableID
	}
	if policyID != 0 {
		session.PricingPolicyID = &policyID
	}
	if session.GuestCount < len(req.Guests) {
		session.GuestCount = len(req.Guests)
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	for _, g := range req.Guests {
		link := &domain.SessionGuest{SessionID: session.ID, GuestName: g.GuestName}
		if g.GuestID != 0 {
			gid := g.GuestID
			link.GuestID = &gid
		}
		if err := s.links.Add(ctx, link); err != nil {
			return nil, err
		}
	}

	s.feed.Broadcast("session", map[string]any{"action": "opened", "session_id": session.ID})
	return s.sessions.GetWithDetails(ctx, session.ID)
}

func (s *Service) GetSession(ctx context.Context, id int64) (*domain.Session, error) {
	session, err := s.sessions.GetWithDetails(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return session, err
}

func (s *Service) ListSessions(ctx context.Context, venueID int64, status string) ([]domain.Session, error) {
	return s.sessions.ListByVenue(ctx, venueID, status)
}

// AddGuest joins one more guest to an active session and refreshes the
// session's guest count from the link rows.
func (s *Service) AddGuest(ctx context.Context, sessionID int64, in GuestInput) (*domain.SessionGuest, error) {
	session, err := s.activeSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	link := &domain.SessionGuest{SessionID: session.ID, GuestName: in.GuestName}
	if in.GuestID != 0 {
		gid := in.GuestID
		link.GuestID = &gid
	}
	if err := s.links.Add(ctx, link); err != nil {
		return nil, err
	}

	if err := s.syncGuestCount(ctx, session.ID); err != nil {
		return nil, err
	}

	s.feed.Broadcast("session", map[string]any{"action": "guest_added", "session_id": session.ID})
	return link, nil
}

// RemoveGuest drops the link row together with that guest's fee ledger rows.
func (s *Service) RemoveGuest(ctx context.Context, sessionID, linkID int64) error {
	session, err := s.activeSession(ctx, sessionID)
	if err != nil {
		return err
	}

	link, err := s.links.GetByID(ctx, linkID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if link.SessionID != session.ID {
		return ErrNotFound
	}

	if err := s.links.Remove(ctx, linkID); err != nil {
		return err
	}
	if err := s.syncGuestCount(ctx, session.ID); err != nil {
		return err
	}

	s.feed.Broadcast("session", map[string]any{"action": "guest_removed", "session_id": session.ID})
	return nil
}

// AssignCast puts a cast member on the session with a neutral waiting row.
// Billable tags come later through the engagement service.
func (s *Service) AssignCast(ctx context.Context, sessionID int64, req AssignCastRequest, now time.Time) (*domain.Order, error) {
	session, err := s.activeSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	castID := req.CastID
	entry := &domain.Order{
		SessionID:  session.ID,
		CastID:     &castID,
		ItemName:   req.CastName,
		Category:   domain.CategoryCastStatus,
		Quantity:   1,
		Amount:     0,
		Status:     domain.OrderCompleted,
		Engagement: domain.EngagementWaiting,
		StartTime:  &now,
	}
	if req.SessionGuestID != 0 {
		sgid := req.SessionGuestID
		entry.SessionGuestID = &sgid
	}

	if err := s.orders.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.feed.Broadcast("session", map[string]any{"action": "cast_assigned", "session_id": session.ID, "cast_id": castID})
	return entry, nil
}

func (s *Service) AssignTable(ctx context.Context, sessionID int64, tableID int64) error {
	session, err := s.activeSession(ctx, sessionID)
	if err != nil {
		return err
	}

	var ptr *int64
	if tableID != 0 {
		ptr = &tableID
	}
	return s.sessions.AssignTable(ctx, session.ID, ptr)
}

// Checkout computes the final bill, freezes the total on the session and
// marks it completed. The bill is computed inside the store's completion
// transaction, under the session row lock, so an accrual pass cannot add fee
// rows between the computation and the freeze.
func (s *Service) Checkout(ctx context.Context, sessionID int64, now time.Time) (*billing.Breakdown, error) {
	session, err := s.activeSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var bill *billing.Breakdown
	err = s.sessions.Complete(ctx, session.ID, now, func(ctx context.Context) (int64, error) {
		b, err := s.biller.GetBill(ctx, session.ID)
		if err != nil {
			return 0, err
		}
		bill = b
		return b.Total, nil
	})
	if errors.Is(err, repository.ErrSessionNotActive) {
		return nil, ErrSessionClosed
	}
	if err != nil {
		return nil, err
	}

	s.feed.Broadcast("session", map[string]any{"action": "completed", "session_id": session.ID, "total": bill.Total})
	return bill, nil
}

// DeleteSession removes the session with its orders and guest links.
func (s *Service) DeleteSession(ctx context.Context, sessionID int64) error {
	if _, err := s.GetSession(ctx, sessionID); err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.feed.Broadcast("session", map[string]any{"action": "deleted", "session_id": sessionID})
	return nil
}

func (s *Service) activeSession(ctx context.Context, id int64) (*domain.Session, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if session.Status != domain.SessionActive {
		return nil, ErrSessionClosed
	}
	return session, nil
}

func (s *Service) syncGuestCount(ctx context.Context, sessionID int64) error {
	links, err := s.links.ListBySession(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.sessions.UpdateGuestCount(ctx, sessionID, len(links))
}
