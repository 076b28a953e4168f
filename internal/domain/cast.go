package domain

import "time"

// Cast is a floor staff member whose engagements are billed per category.
type Cast struct {
	ID        int64     `json:"id"`
	VenueID   int64     `json:"venue_id" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
