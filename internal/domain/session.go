package domain

import "time"

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
)

// Session is one seated party's open-to-close occupancy record. EndTime stays
// nil while the session is active; TotalAmount is frozen at checkout.
type Session struct {
	ID              int64         `json:"id"`
	VenueID         int64         `json:"venue_id" validate:"required"`
	TableID         *int64        `json:"table_id,omitempty"`
	PricingPolicyID *int64        `json:"pricing_policy_id,omitempty"`
	StartTime       time.Time     `json:"start_time"`
	EndTime         *time.Time    `json:"end_time,omitempty"`
	GuestCount      int           `json:"guest_count" validate:"gte=0"`
	Status          SessionStatus `json:"status"`
	TotalAmount     *int64        `json:"total_amount,omitempty"`
	Notes           string        `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	Policy *PricingPolicy `json:"policy,omitempty" gorm:"foreignKey:PricingPolicyID"`
	Table  *Table         `json:"table,omitempty" gorm:"foreignKey:TableID"`
	Guests []SessionGuest `json:"guests,omitempty" gorm:"foreignKey:SessionID"`
	Orders []Order        `json:"orders,omitempty" gorm:"foreignKey:SessionID"`
}

// SessionGuest links a guest to a session, unique per (session, guest).
// GuestID is nil for a name-only guest with no registered profile; NULLs do
// not collide under the index, so several name-only guests can share a table.
type SessionGuest struct {
	ID        int64     `json:"id"`
	SessionID int64     `json:"session_id" validate:"required" gorm:"uniqueIndex:idx_session_guest"`
	GuestID   *int64    `json:"guest_id,omitempty" gorm:"uniqueIndex:idx_session_guest"`
	GuestName string    `json:"guest_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Guest *Guest `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
}

type Table struct {
	ID       int64  `json:"id"`
	VenueID  int64  `json:"venue_id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Capacity int    `json:"capacity" validate:"gte=1"`
}
