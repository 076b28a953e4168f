package floor

import (
	"context"
	"testing"
	"time"

	"clubfloor/internal/domain"
	"clubfloor/internal/modules/billing"
	"clubfloor/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Mock stores

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create(ctx context.Context, s *domain.Session) error {
	args := m.Called(ctx, s)
	if s != nil {
		s.ID = 101 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockSessionStore) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionStore) GetWithDetails(ctx context.Context, id int64) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionStore) ListByVenue(ctx context.Context, venueID int64, status string) ([]domain.Session, error) {
	args := m.Called(ctx, venueID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Session), args.Error(1)
}

func (m *MockSessionStore) Complete(ctx context.Context, id int64, endTime time.Time, computeTotal func(ctx context.Context) (int64, error)) error {
	total, err := computeTotal(ctx)
	if err != nil {
		return err
	}
	args := m.Called(ctx, id, endTime, total)
	return args.Error(0)
}

func (m *MockSessionStore) UpdateGuestCount(ctx context.Context, id int64, count int) error {
	args := m.Called(ctx, id, count)
	return args.Error(0)
}

func (m *MockSessionStore) AssignTable(ctx context.Context, id int64, tableID *int64) error {
	args := m.Called(ctx, id, tableID)
	return args.Error(0)
}

func (m *MockSessionStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockGuestLinkStore struct {
	mock.Mock
}

func (m *MockGuestLinkStore) Add(ctx context.Context, link *domain.SessionGuest) error {
	args := m.Called(ctx, link)
	if link != nil {
		link.ID = 55
	}
	return args.Error(0)
}

func (m *MockGuestLinkStore) GetByID(ctx context.Context, id int64) (*domain.SessionGuest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionGuest), args.Error(1)
}

func (m *MockGuestLinkStore) ListBySession(ctx context.Context, sessionID int64) ([]domain.SessionGuest, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SessionGuest), args.Error(1)
}

func (m *MockGuestLinkStore) Remove(ctx context.Context, linkID int64) error {
	args := m.Called(ctx, linkID)
	return args.Error(0)
}

type MockOrderWriter struct {
	mock.Mock
}

func (m *MockOrderWriter) Create(ctx context.Context, o *domain.Order) error {
	args := m.Called(ctx, o)
	if o != nil {
		o.ID = 77
	}
	return args.Error(0)
}

type MockPolicySource struct {
	mock.Mock
}

func (m *MockPolicySource) GetDefaultForVenue(ctx context.Context, venueID int64) (*domain.PricingPolicy, error) {
	args := m.Called(ctx, venueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricingPolicy), args.Error(1)
}

type MockBiller struct {
	mock.Mock
}

func (m *MockBiller) GetBill(ctx context.Context, sessionID int64) (*billing.Breakdown, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Breakdown), args.Error(1)
}

type MockFeed struct {
	mock.Mock
}

func (m *MockFeed) Broadcast(event string, payload any) {
	m.Called(event, payload)
}

func newTestService() (*Service, *MockSessionStore, *MockGuestLinkStore, *MockOrderWriter, *MockPolicySource, *MockBiller, *MockFeed) {
	sessions := new(MockSessionStore)
	links := new(MockGuestLinkStore)
	orders := new(MockOrderWriter)
	policies := new(MockPolicySource)
	biller := new(MockBiller)
	feed := new(MockFeed)
	feed.On("Broadcast", mock.Anything, mock.Anything).Return()
	return NewService(sessions, links, orders, policies, biller, feed), sessions, links, orders, policies, biller, feed
}

func activeSessionFixture(id int64) *domain.Session {
	return &domain.Session{
		ID:         id,
		VenueID:    1,
		StartTime:  time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC),
		GuestCount: 2,
		Status:     domain.SessionActive,
	}
}

func TestOpenSession_UsesDefaultPolicy(t *testing.T) {
	svc, sessions, links, _, policies, _, _ := newTestService()

	policies.On("GetDefaultForVenue", mock.Anything, int64(1)).
		Return(&domain.PricingPolicy{ID: 9, VenueID: 1, IsDefault: true}, nil)
	sessions.On("Create", mock.Anything, mock.Anything).Return(nil)
	links.On("Add", mock.Anything, mock.Anything).Return(nil).Twice()
	sessions.On("GetWithDetails", mock.Anything, int64(101)).
		Return(activeSessionFixture(101), nil)

	now := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	_, err := svc.OpenSession(context.Background(), OpenSessionRequest{
		VenueID: 1,
		Guests: []GuestInput{
			{GuestID: 3},
			{GuestName: "Tanaka"},
		},
	}, now)

	assert.NoError(t, err)
	sessions.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(s *domain.Session) bool {
		return s.VenueID == 1 &&
			s.Status == domain.SessionActive &&
			s.PricingPolicyID != nil && *s.PricingPolicyID == 9 &&
			s.GuestCount == 2
	}))
	links.AssertNumberOfCalls(t, "Add", 2)
}

func TestOpenSession_NoDefaultPolicyOpensUnpriced(t *testing.T) {
	svc, sessions, _, _, policies, _, _ := newTestService()

	policies.On("GetDefaultForVenue", mock.Anything, int64(1)).
		Return(nil, gorm.ErrRecordNotFound)
	sessions.On("Create", mock.Anything, mock.Anything).Return(nil)
	sessions.On("GetWithDetails", mock.Anything, int64(101)).
		Return(activeSessionFixture(101), nil)

	_, err := svc.OpenSession(context.Background(), OpenSessionRequest{VenueID: 1, GuestCount: 3}, time.Now())

	assert.NoError(t, err)
	sessions.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(s *domain.Session) bool {
		return s.PricingPolicyID == nil && s.GuestCount == 3
	}))
}

func TestOpenSession_MissingVenue(t *testing.T) {
	svc, _, _, _, _, _, _ := newTestService()

	_, err := svc.OpenSession(context.Background(), OpenSessionRequest{}, time.Now())

	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddGuest_SyncsGuestCount(t *testing.T) {
	svc, sessions, links, _, _, _, _ := newTestService()

	sessions.On("GetByID", mock.Anything, int64(5)).Return(activeSessionFixture(5), nil)
	links.On("Add", mock.Anything, mock.Anything).Return(nil)
	links.On("ListBySession", mock.Anything, int64(5)).
		Return([]domain.SessionGuest{{ID: 1}, {ID: 2}, {ID: 55}}, nil)
	sessions.On("UpdateGuestCount", mock.Anything, int64(5), 3).Return(nil)

	link, err := svc.AddGuest(context.Background(), 5, GuestInput{GuestName: "Sato"})

	assert.NoError(t, err)
	assert.Equal(t, int64(55), link.ID)
	assert.Nil(t, link.GuestID)
	sessions.AssertCalled(t, "UpdateGuestCount", mock.Anything, int64(5), 3)
}

func TestAddGuest_RejectsCompletedSession(t *testing.T) {
	svc, sessions, _, _, _, _, _ := newTestService()

	done := activeSessionFixture(5)
	done.Status = domain.SessionCompleted
	sessions.On("GetByID", mock.Anything, int64(5)).Return(done, nil)

	_, err := svc.AddGuest(context.Background(), 5, GuestInput{GuestName: "Sato"})

	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestRemoveGuest_ChecksLinkBelongsToSession(t *testing.T) {
	svc, sessions, links, _, _, _, _ := newTestService()

	sessions.On("GetByID", mock.Anything, int64(5)).Return(activeSessionFixture(5), nil)
	links.On("GetByID", mock.Anything, int64(8)).
		Return(&domain.SessionGuest{ID: 8, SessionID: 99}, nil)

	err := svc.RemoveGuest(context.Background(), 5, 8)

	assert.ErrorIs(t, err, ErrNotFound)
	links.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}

func TestRemoveGuest_RemovesLinkAndRecounts(t *testing.T) {
	svc, sessions, links, _, _, _, _ := newTestService()

	sessions.On("GetByID", mock.Anything, int64(5)).Return(activeSessionFixture(5), nil)
	links.On("GetByID", mock.Anything, int64(8)).
		Return(&domain.SessionGuest{ID: 8, SessionID: 5}, nil)
	links.On("Remove", mock.Anything, int64(8)).Return(nil)
	links.On("ListBySession", mock.Anything, int64(5)).
		Return([]domain.SessionGuest{{ID: 2}}, nil)
	sessions.On("UpdateGuestCount", mock.Anything, int64(5), 1).Return(nil)

	err := svc.RemoveGuest(context.Background(), 5, 8)

	assert.NoError(t, err)
	links.AssertCalled(t, "Remove", mock.Anything, int64(8))
}

func TestAssignCast_CreatesWaitingRow(t *testing.T) {
	svc, sessions, _, orders, _, _, _ := newTestService()

	sessions.On("GetByID", mock.Anything, int64(5)).Return(activeSessionFixture(5), nil)
	orders.On("Create", mock.Anything, mock.Anything).Return(nil)

	now := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	entry, err := svc.AssignCast(context.Background(), 5, AssignCastRequest{CastID: 12, CastName: "Rina"}, now)

	assert.NoError(t, err)
	assert.Equal(t, domain.CategoryCastStatus, entry.Category)
	assert.Equal(t, domain.EngagementWaiting, entry.Engagement)
	assert.Equal(t, int64(0), entry.Amount)
	assert.Equal(t, int64(12), *entry.CastID)
	assert.Equal(t, now, *entry.StartTime)
}

func TestCheckout_FreezesTotal(t *testing.T) {
	svc, sessions, _, _, _, biller, feed := newTestService()

	sessions.On("GetByID", mock.Anything, int64(5)).Return(activeSessionFixture(5), nil)
	biller.On("GetBill", mock.Anything, int64(5)).
		Return(&billing.Breakdown{Subtotal: 13600, Total: 16456}, nil)
	now := time.Date(2026, 3, 14, 22, 0, 0, 0, time.UTC)
	sessions.On("Complete", mock.Anything, int64(5), now, int64(16456)).Return(nil)

	bill, err := svc.Checkout(context.Background(), 5, now)

	assert.NoError(t, err)
	assert.Equal(t, int64(16456), bill.Total)
	sessions.AssertCalled(t, "Complete", mock.Anything, int64(5), now, int64(16456))
	feed.AssertCalled(t, "Broadcast", "session", mock.Anything)
}

func TestCheckout_PropagatesMissingSettings(t *testing.T) {
	svc, sessions, _, _, _, biller, _ := newTestService()

	sessions.On("GetByID", mock.Anything, int64(5)).Return(activeSessionFixture(5), nil)
	biller.On("GetBill", mock.Anything, int64(5)).Return(nil, billing.ErrNotConfigured)

	_, err := svc.Checkout(context.Background(), 5, time.Now())

	assert.ErrorIs(t, err, billing.ErrNotConfigured)
	sessions.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_LosesRaceToEarlierCheckout(t *testing.T) {
	svc, sessions, _, _, _, biller, _ := newTestService()

	// snapshot still says active, but the store finds the row completed
	// under its lock
	sessions.On("GetByID", mock.Anything, int64(5)).Return(activeSessionFixture(5), nil)
	biller.On("GetBill", mock.Anything, int64(5)).
		Return(&billing.Breakdown{Total: 16456}, nil)
	sessions.On("Complete", mock.Anything, int64(5), mock.Anything, int64(16456)).
		Return(repository.ErrSessionNotActive)

	_, err := svc.Checkout(context.Background(), 5, time.Now())

	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestAddGuest_PropagatesDuplicate(t *testing.T) {
	svc, sessions, links, _, _, _, _ := newTestService()

	sessions.On("GetByID", mock.Anything, int64(5)).Return(activeSessionFixture(5), nil)
	links.On("Add", mock.Anything, mock.Anything).Return(repository.ErrDuplicateGuest)

	_, err := svc.AddGuest(context.Background(), 5, GuestInput{GuestID: 3})

	assert.ErrorIs(t, err, repository.ErrDuplicateGuest)
	sessions.AssertNotCalled(t, "UpdateGuestCount", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_RejectsAlreadyCompleted(t *testing.T) {
	svc, sessions, _, _, _, _, _ := newTestService()

	done := activeSessionFixture(5)
	done.Status = domain.SessionCompleted
	sessions.On("GetByID", mock.Anything, int64(5)).Return(done, nil)

	_, err := svc.Checkout(context.Background(), 5, time.Now())

	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestDeleteSession_NotFound(t *testing.T) {
	svc, sessions, _, _, _, _, _ := newTestService()

	sessions.On("GetWithDetails", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.DeleteSession(context.Background(), 404)

	assert.ErrorIs(t, err, ErrNotFound)
}
