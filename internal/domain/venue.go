package domain

import "time"

type Venue struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RoundingMode string

const (
	RoundUp      RoundingMode = "up"
	RoundDown    RoundingMode = "down"
	RoundNearest RoundingMode = "nearest"
)

// BillSettings holds the per-venue rates applied on top of the subtotal at
// checkout. Amounts are integer yen; rates are fractions (0.10 = 10%).
type BillSettings struct {
	ID                int64        `json:"id"`
	VenueID           int64        `json:"venue_id" validate:"required"`
	ServiceChargeRate float64      `json:"service_charge_rate" validate:"gte=0"`
	TaxRate           float64      `json:"tax_rate" validate:"gte=0"`
	RoundingEnabled   bool         `json:"rounding_enabled"`
	RoundingUnit      int64        `json:"rounding_unit,omitempty"`
	RoundingMode      RoundingMode `json:"rounding_mode,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}
