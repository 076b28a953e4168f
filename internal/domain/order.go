package domain

import "time"

// OrderCategory is the closed set of ledger line kinds. Fee rows are created by
// the accrual engine or by cast tag changes; item rows come from the menu.
type OrderCategory string

const (
	CategoryTableFee   OrderCategory = "table_fee"
	CategoryNomination OrderCategory = "nomination_fee"
	CategoryCompanion  OrderCategory = "companion_fee"
	CategoryEscort     OrderCategory = "escort_fee"
	CategoryCastStatus OrderCategory = "cast_status"
	CategoryItem       OrderCategory = "item"
)

// CastFeeCategories are the categories that bill a cast member's engagement
// and participate in per-cast accrual.
var CastFeeCategories = []OrderCategory{
	CategoryNomination,
	CategoryCompanion,
	CategoryEscort,
}

func (c OrderCategory) IsCastFee() bool {
	switch c {
	case CategoryNomination, CategoryCompanion, CategoryEscort:
		return true
	}
	return false
}

// IsGuestFee reports whether rows of this category belong to a specific guest
// and are removed together with that guest's session link.
func (c OrderCategory) IsGuestFee() bool {
	return c == CategoryTableFee || c.IsCastFee()
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// EngagementTag tracks a cast member's involvement on a fee row: the three
// pure statuses plus the three billable categories.
type EngagementTag string

const (
	EngagementWaiting    EngagementTag = "waiting"
	EngagementServing    EngagementTag = "serving"
	EngagementEnded      EngagementTag = "ended"
	EngagementNomination EngagementTag = "nomination"
	EngagementCompanion  EngagementTag = "companion"
	EngagementEscort     EngagementTag = "escort"
)

func (t EngagementTag) IsFee() bool {
	switch t {
	case EngagementNomination, EngagementCompanion, EngagementEscort:
		return true
	}
	return false
}

func (t EngagementTag) IsPureStatus() bool {
	switch t {
	case EngagementWaiting, EngagementServing, EngagementEnded:
		return true
	}
	return false
}

func (t EngagementTag) Valid() bool {
	return t.IsFee() || t.IsPureStatus()
}

// Category maps a fee tag to its ledger category. Pure statuses map to the
// neutral cast-status category, which never carries a charge.
func (t EngagementTag) Category() OrderCategory {
	switch t {
	case EngagementNomination:
		return CategoryNomination
	case EngagementCompanion:
		return CategoryCompanion
	case EngagementEscort:
		return CategoryEscort
	default:
		return CategoryCastStatus
	}
}

// Order is one priced ledger line on a session: a menu/ad-hoc item, a table
// extension fee, or a cast engagement fee. Guest-scoped rows reference the
// session_guests link row so name-only guests are covered too.
type Order struct {
	ID             int64         `json:"id"`
	SessionID      int64         `json:"session_id" validate:"required"`
	MenuItemID     *int64        `json:"menu_item_id,omitempty"`
	SessionGuestID *int64        `json:"session_guest_id,omitempty"`
	CastID         *int64        `json:"cast_id,omitempty"`
	ItemName       string        `json:"item_name"`
	Category       OrderCategory `json:"category"`
	Quantity       int           `json:"quantity" validate:"gte=1"`
	Amount         int64         `json:"amount"`
	Status         OrderStatus   `json:"status"`
	Engagement     EngagementTag `json:"engagement,omitempty"`
	StartTime      *time.Time    `json:"start_time,omitempty"`
	EndTime        *time.Time    `json:"end_time,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	MenuItem *MenuItem `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	Cast     *Cast     `json:"cast,omitempty" gorm:"foreignKey:CastID"`
}

// AnchorTime is the start of the row's accrual window.
func (o *Order) AnchorTime() time.Time {
	if o.StartTime != nil {
		return *o.StartTime
	}
	return o.CreatedAt
}
