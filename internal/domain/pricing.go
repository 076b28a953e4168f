package domain

import "time"

// PricingPolicy is a venue's fee table: the table charge with its set duration,
// the shared extension block, and a fee + set duration for each cast fee
// category. All fees are integer yen, durations are minutes.
type PricingPolicy struct {
	ID      int64  `json:"id"`
	VenueID int64  `json:"venue_id" validate:"required"`
	Name    string `json:"name" validate:"required"`

	TableFee        int64 `json:"table_fee" validate:"gte=0"`
	TableSetMinutes int   `json:"table_set_minutes" validate:"gte=0"`

	ExtensionFee     int64 `json:"extension_fee" validate:"gte=0"`
	ExtensionMinutes int   `json:"extension_minutes" validate:"gte=0"`

	NominationFee     int64 `json:"nomination_fee" validate:"gte=0"`
	NominationMinutes int   `json:"nomination_minutes" validate:"gte=0"`

	CompanionFee     int64 `json:"companion_fee" validate:"gte=0"`
	CompanionMinutes int   `json:"companion_minutes" validate:"gte=0"`

	EscortFee     int64 `json:"escort_fee" validate:"gte=0"`
	EscortMinutes int   `json:"escort_minutes" validate:"gte=0"`

	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CastFee returns the fee amount and set duration configured for a cast fee
// category. ok is false for anything that is not a cast fee category.
func (p *PricingPolicy) CastFee(cat OrderCategory) (fee int64, setMinutes int, ok bool) {
	switch cat {
	case CategoryNomination:
		return p.NominationFee, p.NominationMinutes, true
	case CategoryCompanion:
		return p.CompanionFee, p.CompanionMinutes, true
	case CategoryEscort:
		return p.EscortFee, p.EscortMinutes, true
	default:
		return 0, 0, false
	}
}
