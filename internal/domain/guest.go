package domain

import "time"

// Guest is a registered customer profile.
type Guest struct {
	ID        int64     `json:"id"`
	VenueID   int64     `json:"venue_id" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	Phone     string    `json:"phone,omitempty"`
	Notes     string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
