package reservation

import (
	"context"
	"errors"
	"time"

	"clubfloor/internal/domain"
	"clubfloor/internal/modules/floor"

	"gorm.io/gorm"
)

// ReservationStore defines the persistence the reservation service needs.
type ReservationStore interface {
	Create(ctx context.Context, res *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListByVenueAndDay(ctx context.Context, venueID int64, day time.Time) ([]domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus, sessionID *int64) error
}

// SessionOpener seats a converted reservation.
type SessionOpener interface {
	OpenSession(ctx context.Context, req floor.OpenSessionRequest, now time.Time) (*domain.Session, error)
}

type Service struct {
	reservations ReservationStore
	opener       SessionOpener
}

func NewService(reservations ReservationStore, opener SessionOpener) *Service {
	return &Service{reservations: reservations, opener: opener}
}

type CreateRequest struct {
	VenueID    int64     `json:"venue_id" validate:"required"`
	TableID    int64     `json:"table_id"`
	GuestID    int64     `json:"guest_id"`
	GuestName  string    `json:"guest_name" validate:"required"`
	GuestCount int       `json:"guest_count" validate:"gte=1"`
	ReservedAt time.Time `json:"reserved_at" validate:"required"`
	Notes      string    `json:"notes"`
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.Reservation, error) {
	res := &domain.Reservation{
		VenueID:    req.VenueID,
		GuestName:  req.GuestName,
		GuestCount: req.GuestCount,
		ReservedAt: req.ReservedAt,
		Status:     domain.ReservationPending,
		Notes:      req.Notes,
	}
	if req.TableID != 0 {
		tid := req.TableID
		res.TableID = &tid
	}
	if req.GuestID != 0 {
		gid := req.GuestID
		res.GuestID = &gid
	}
	if err := s.reservations.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) ListByDay(ctx context.Context, venueID int64, day time.Time) ([]domain.Reservation, error) {
	return s.reservations.ListByVenueAndDay(ctx, venueID, day)
}

func (s *Service) Cancel(ctx context.Context, id int64) error {
	res, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if res.Status != domain.ReservationPending {
		return ErrAlreadySettled
	}
	return s.reservations.UpdateStatus(ctx, id, domain.ReservationCancelled, nil)
}

// Seat converts a pending reservation into an open session and links the two.
func (s *Service) Seat(ctx context.Context, id int64, now time.Time) (*domain.Session, error) {
	res, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.Status != domain.ReservationPending {
		return nil, ErrAlreadySettled
	}

	req := floor.OpenSessionRequest{
		VenueID:    res.VenueID,
		GuestCount: res.GuestCount,
		Notes:      res.Notes,
		Guests:     []floor.GuestInput{{GuestName: res.GuestName}},
	}
	if res.TableID != nil {
		req.TableID = *res.TableID
	}
	if res.GuestID != nil {
		req.Guests[0].GuestID = *res.GuestID
	}

	session, err := s.opener.OpenSession(ctx, req, now)
	if err != nil {
		return nil, err
	}

	sid := session.ID
	if err := s.reservations.UpdateStatus(ctx, id, domain.ReservationSeated, &sid); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Service) get(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return res, err
}
