package domain

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationSeated    ReservationStatus = "seated"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation is a future visit; converting it seats the party and opens a
// session.
type Reservation struct {
	ID         int64             `json:"id"`
	VenueID    int64             `json:"venue_id" validate:"required"`
	TableID    *int64            `json:"table_id,omitempty"`
	GuestID    *int64            `json:"guest_id,omitempty"`
	GuestName  string            `json:"guest_name" validate:"required"`
	GuestCount int               `json:"guest_count" validate:"gte=1"`
	ReservedAt time.Time         `json:"reserved_at" validate:"required"`
	Status     ReservationStatus `json:"status"`
	SessionID  *int64            `json:"session_id,omitempty"`
	Notes      string            `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
