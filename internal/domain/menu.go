package domain

import "time"

type MenuItem struct {
	ID        int64     `json:"id"`
	VenueID   int64     `json:"venue_id" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	Price     int64     `json:"price" validate:"gte=0"`
	Category  string    `json:"category,omitempty"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
