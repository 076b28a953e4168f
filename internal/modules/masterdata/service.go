package masterdata

import (
	"context"
	"errors"

	"clubfloor/internal/domain"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type VenueStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
	Create(ctx context.Context, v *domain.Venue) error
}

type TableStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Table, error)
	ListByVenue(ctx context.Context, venueID int64) ([]domain.Table, error)
	Create(ctx context.Context, t *domain.Table) error
}

type GuestStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Guest, error)
	ListByVenue(ctx context.Context, venueID int64) ([]domain.Guest, error)
	Create(ctx context.Context, g *domain.Guest) error
}

type CastStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Cast, error)
	ListActiveByVenue(ctx context.Context, venueID int64) ([]domain.Cast, error)
	Create(ctx context.Context, c *domain.Cast) error
}

type MenuStore interface {
	GetByID(ctx context.Context, id int64) (*domain.MenuItem, error)
	ListAvailableByVenue(ctx context.Context, venueID int64) ([]domain.MenuItem, error)
	Create(ctx context.Context, m *domain.MenuItem) error
}

type PolicyStore interface {
	GetByID(ctx context.Context, id int64) (*domain.PricingPolicy, error)
	ListByVenue(ctx context.Context, venueID int64) ([]domain.PricingPolicy, error)
	Create(ctx context.Context, p *domain.PricingPolicy) error
	Update(ctx context.Context, p *domain.PricingPolicy) error
}

type SettingsStore interface {
	GetByVenue(ctx context.Context, venueID int64) (*domain.BillSettings, error)
	Upsert(ctx context.Context, s *domain.BillSettings) error
}

// Service is the admin-facing master data surface: venues, tables, guests,
// casts, menu items, pricing policies and bill settings.
type Service struct {
	venues   VenueStore
	tables   TableStore
	guests   GuestStore
	casts    CastStore
	menu     MenuStore
	policies PolicyStore
	settings SettingsStore
}

func NewService(venues VenueStore, tables TableStore, guests GuestStore, casts CastStore, menu MenuStore, policies PolicyStore, settings SettingsStore) *Service {
	return &Service{
		venues:   venues,
		tables:   tables,
		guests:   guests,
		casts:    casts,
		menu:     menu,
		policies: policies,
		settings: settings,
	}
}

func (s *Service) CreateVenue(ctx context.Context, v *domain.Venue) error {
	return s.venues.Create(ctx, v)
}

func (s *Service) GetVenue(ctx context.Context, id int64) (*domain.Venue, error) {
	v, err := s.venues.GetByID(ctx, id)
	return v, mapNotFound(err)
}

func (s *Service) CreateTable(ctx context.Context, t *domain.Table) error {
	return s.tables.Create(ctx, t)
}

func (s *Service) ListTables(ctx context.Context, venueID int64) ([]domain.Table, error) {
	return s.tables.ListByVenue(ctx, venueID)
}

func (s *Service) CreateGuest(ctx context.Context, g *domain.Guest) error {
	return s.guests.Create(ctx, g)
}

func (s *Service) ListGuests(ctx context.Context, venueID int64) ([]domain.Guest, error) {
	return s.guests.ListByVenue(ctx, venueID)
}

func (s *Service) CreateCast(ctx context.Context, c *domain.Cast) error {
	return s.casts.Create(ctx, c)
}

func (s *Service) ListCasts(ctx context.Context, venueID int64) ([]domain.Cast, error) {
	return s.casts.ListActiveByVenue(ctx, venueID)
}

func (s *Service) CreateMenuItem(ctx context.Context, m *domain.MenuItem) error {
	return s.menu.Create(ctx, m)
}

func (s *Service) ListMenu(ctx context.Context, venueID int64) ([]domain.MenuItem, error) {
	return s.menu.ListAvailableByVenue(ctx, venueID)
}

func (s *Service) CreatePolicy(ctx context.Context, p *domain.PricingPolicy) error {
	return s.policies.Create(ctx, p)
}

func (s *Service) UpdatePolicy(ctx context.Context, p *domain.PricingPolicy) error {
	if _, err := s.policies.GetByID(ctx, p.ID); err != nil {
		return mapNotFound(err)
	}
	return s.policies.Update(ctx, p)
}

func (s *Service) ListPolicies(ctx context.Context, venueID int64) ([]domain.PricingPolicy, error) {
	return s.policies.ListByVenue(ctx, venueID)
}

// GetSettings returns nil without error when the venue has none yet; the
// billing module is where missing settings become a hard error.
func (s *Service) GetSettings(ctx context.Context, venueID int64) (*domain.BillSettings, error) {
	return s.settings.GetByVenue(ctx, venueID)
}

func (s *Service) PutSettings(ctx context.Context, settings *domain.BillSettings) error {
	return s.settings.Upsert(ctx, settings)
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
