package floor

// GuestInput identifies one guest joining a session. GuestID is zero for a
// name-only guest.
type GuestInput struct {
	GuestID   int64  `json:"guest_id"`
	GuestName string `json:"guest_name"`
}

type OpenSessionRequest struct {
	VenueID         int64        `json:"venue_id" validate:"required"`
	TableID         int64        `json:"table_id"`
	PricingPolicyID int64        `json:"pricing_policy_id"`
	GuestCount      int          `json:"guest_count" validate:"gte=0"`
	Guests          []GuestInput `json:"guests"`
	Notes           string       `json:"notes"`
}

type AssignCastRequest struct {
	CastID         int64  `json:"cast_id" validate:"required"`
	SessionGuestID int64  `json:"session_guest_id"`
	CastName       string `json:"cast_name"`
}
