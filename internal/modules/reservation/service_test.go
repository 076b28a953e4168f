package reservation

import (
	"context"
	"testing"
	"time"

	"clubfloor/internal/domain"
	"clubfloor/internal/modules/floor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockReservationStore struct {
	mock.Mock
}

func (m *MockReservationStore) Create(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	if res != nil {
		res.ID = 21
	}
	return args.Error(0)
}

func (m *MockReservationStore) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationStore) ListByVenueAndDay(ctx context.Context, venueID int64, day time.Time) ([]domain.Reservation, error) {
	args := m.Called(ctx, venueID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationStore) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus, sessionID *int64) error {
	args := m.Called(ctx, id, status, sessionID)
	return args.Error(0)
}

type MockSessionOpener struct {
	mock.Mock
}

func (m *MockSessionOpener) OpenSession(ctx context.Context, req floor.OpenSessionRequest, now time.Time) (*domain.Session, error) {
	args := m.Called(ctx, req, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func pendingReservation(id int64) *domain.Reservation {
	tableID := int64(4)
	guestID := int64(3)
	return &domain.Reservation{
		ID:         id,
		VenueID:    1,
		TableID:    &tableID,
		GuestID:    &guestID,
		GuestName:  "Suzuki",
		GuestCount: 2,
		ReservedAt: time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC),
		Status:     domain.ReservationPending,
	}
}

func TestCreate_SetsPendingStatus(t *testing.T) {
	store := new(MockReservationStore)
	svc := NewService(store, new(MockSessionOpener))

	store.On("Create", mock.Anything, mock.Anything).Return(nil)

	res, err := svc.Create(context.Background(), CreateRequest{
		VenueID:    1,
		GuestName:  "Suzuki",
		GuestCount: 2,
		ReservedAt: time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.ReservationPending, res.Status)
	assert.Nil(t, res.TableID)
}

func TestSeat_OpensSessionAndLinks(t *testing.T) {
	store := new(MockReservationStore)
	opener := new(MockSessionOpener)
	svc := NewService(store, opener)

	store.On("GetByID", mock.Anything, int64(21)).Return(pendingReservation(21), nil)
	opener.On("OpenSession", mock.Anything, mock.MatchedBy(func(req floor.OpenSessionRequest) bool {
		return req.VenueID == 1 &&
			req.TableID == 4 &&
			req.GuestCount == 2 &&
			len(req.Guests) == 1 &&
			req.Guests[0].GuestID == 3 &&
			req.Guests[0].GuestName == "Suzuki"
	}), mock.Anything).Return(&domain.Session{ID: 101, VenueID: 1, Status: domain.SessionActive}, nil)
	sid := int64(101)
	store.On("UpdateStatus", mock.Anything, int64(21), domain.ReservationSeated, &sid).Return(nil)

	session, err := svc.Seat(context.Background(), 21, time.Now())

	assert.NoError(t, err)
	assert.Equal(t, int64(101), session.ID)
	store.AssertExpectations(t)
}

func TestSeat_RejectsSettledReservation(t *testing.T) {
	store := new(MockReservationStore)
	svc := NewService(store, new(MockSessionOpener))

	res := pendingReservation(21)
	res.Status = domain.ReservationCancelled
	store.On("GetByID", mock.Anything, int64(21)).Return(res, nil)

	_, err := svc.Seat(context.Background(), 21, time.Now())

	assert.ErrorIs(t, err, ErrAlreadySettled)
}

func TestCancel_PendingOnly(t *testing.T) {
	store := new(MockReservationStore)
	svc := NewService(store, new(MockSessionOpener))

	store.On("GetByID", mock.Anything, int64(21)).Return(pendingReservation(21), nil)
	store.On("UpdateStatus", mock.Anything, int64(21), domain.ReservationCancelled, (*int64)(nil)).Return(nil)

	assert.NoError(t, svc.Cancel(context.Background(), 21))

	seated := pendingReservation(22)
	seated.Status = domain.ReservationSeated
	store.On("GetByID", mock.Anything, int64(22)).Return(seated, nil)

	assert.ErrorIs(t, svc.Cancel(context.Background(), 22), ErrAlreadySettled)
}

func TestSeat_NotFound(t *testing.T) {
	store := new(MockReservationStore)
	svc := NewService(store, new(MockSessionOpener))

	store.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Seat(context.Background(), 404, time.Now())

	assert.ErrorIs(t, err, ErrNotFound)
}
