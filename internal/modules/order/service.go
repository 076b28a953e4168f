package order

import (
	"context"
	"errors"
	"time"

	"clubfloor/internal/domain"

	"gorm.io/gorm"
)

// OrderStore defines the ledger persistence the order service needs.
type OrderStore interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListBySession(ctx context.Context, sessionID int64) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
	Delete(ctx context.Context, id int64) error
}

type MenuSource interface {
	GetByID(ctx context.Context, id int64) (*domain.MenuItem, error)
}

type SessionSource interface {
	GetByID(ctx context.Context, id int64) (*domain.Session, error)
}

type EventPublisher interface {
	Broadcast(event string, payload any)
}

// Service places menu and ad-hoc item orders on active sessions. Fee rows
// are owned by the accrual and engagement services and are off limits here.
type Service struct {
	orders   OrderStore
	menu     MenuSource
	sessions SessionSource
	feed     EventPublisher
}

func NewService(orders OrderStore, menu MenuSource, sessions SessionSource, feed EventPublisher) *Service {
	return &Service{orders: orders, menu: menu, sessions: sessions, feed: feed}
}

type PlaceOrderRequest struct {
	MenuItemID     int64  `json:"menu_item_id"`
	ItemName       string `json:"item_name"`
	Amount         int64  `json:"amount"`
	Quantity       int    `json:"quantity"`
	SessionGuestID int64  `json:"session_guest_id"`
}

// PlaceOrder adds an item row. A menu item brings its own name and price; an
// ad-hoc order must carry both explicitly.
func (s *Service) PlaceOrder(ctx context.Context, sessionID int64, req PlaceOrderRequest, now time.Time) (*domain.Order, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	if session.Status != domain.SessionActive {
		return nil, ErrSessionClosed
	}

	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	entry := &domain.Order{
		SessionID: session.ID,
		Category:  domain.CategoryItem,
		Quantity:  req.Quantity,
		Status:    domain.OrderPending,
		StartTime: &now,
	}
	if req.SessionGuestID != 0 {
		sgid := req.SessionGuestID
		entry.SessionGuestID = &sgid
	}

	if req.MenuItemID != 0 {
		item, err := s.menu.GetByID(ctx, req.MenuItemID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemUnavailable
		}
		if err != nil {
			return nil, err
		}
		if !item.Available || item.VenueID != session.VenueID {
			return nil, ErrItemUnavailable
		}
		mid := item.ID
		entry.MenuItemID = &mid
		entry.ItemName = item.Name
		entry.Amount = item.Price
	} else {
		if req.ItemName == "" || req.Amount < 0 {
			return nil, ErrValidation
		}
		entry.ItemName = req.ItemName
		entry.Amount = req.Amount
	}

	if err := s.orders.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.feed.Broadcast("order", map[string]any{"action": "placed", "session_id": session.ID, "order_id": entry.ID})
	return entry, nil
}

func (s *Service) ListSessionOrders(ctx context.Context, sessionID int64) ([]domain.Order, error) {
	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return s.orders.ListBySession(ctx, sessionID)
}

// MarkCompleted marks a pending item row as delivered.
func (s *Service) MarkCompleted(ctx context.Context, orderID int64) error {
	return s.setStatus(ctx, orderID, domain.OrderCompleted)
}

// Cancel voids an item row. Cancelled rows stay in the ledger but never bill.
func (s *Service) Cancel(ctx context.Context, orderID int64) error {
	return s.setStatus(ctx, orderID, domain.OrderCancelled)
}

func (s *Service) setStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	entry, err := s.orders.GetByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if entry.Category != domain.CategoryItem {
		return ErrNotItemRow
	}

	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return err
	}
	s.feed.Broadcast("order", map[string]any{"action": string(status), "session_id": entry.SessionID, "order_id": orderID})
	return nil
}
