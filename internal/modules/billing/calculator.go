package billing

import (
	"errors"
	"math"
	"time"

	"clubfloor/internal/domain"
)

// ErrNotConfigured is returned when the venue has no bill settings. The
// calculator never substitutes assumed rates.
var ErrNotConfigured = errors.New("bill settings not configured")

// TimeCharge is the table-time portion of a bill. ExtensionPrice comes from
// the ledger, not from recomputing the elapsed time: accrual may lag or have
// been adjusted by hand, and the ledger is what the guest owes.
type TimeCharge struct {
	DurationMinutes  int   `json:"duration_minutes"`
	BasePrice        int64 `json:"base_price"`
	ExtensionMinutes int   `json:"extension_minutes"`
	ExtensionPrice   int64 `json:"extension_price"`
}

// CastFees partitions cast fee rows into nomination (shimei) and
// companion/escort (jounai) buckets.
type CastFees struct {
	ShimeiCount int   `json:"shimei_count"`
	ShimeiTotal int64 `json:"shimei_total"`
	JounaiCount int   `json:"jounai_count"`
	JounaiTotal int64 `json:"jounai_total"`
	Total       int64 `json:"total"`
}

type OrderCharge struct {
	Items []domain.Order `json:"items"`
	Total int64          `json:"total"`
}

type Breakdown struct {
	TimeCharge    TimeCharge  `json:"time_charge"`
	CastFees      CastFees    `json:"cast_fees"`
	Orders        OrderCharge `json:"orders"`
	Subtotal      int64       `json:"subtotal"`
	ServiceCharge int64       `json:"service_charge"`
	Tax           int64       `json:"tax"`
	Total         int64       `json:"total"`
}

// Calculate aggregates a session's ledger into a bill breakdown. It reads no
// clock beyond `now` and mutates nothing: identical inputs give an identical
// breakdown.
func Calculate(session *domain.Session, ledger []domain.Order, policy *domain.PricingPolicy, settings *domain.BillSettings, now time.Time) (*Breakdown, error) {
	if settings == nil {
		return nil, ErrNotConfigured
	}

	end := now
	if session.EndTime != nil {
		end = *session.EndTime
	}
	duration := int(end.Sub(session.StartTime).Minutes())

	var tc TimeCharge
	tc.DurationMinutes = duration
	if policy != nil {
		tc.BasePrice = policy.TableFee * int64(session.GuestCount)
		if over := duration - policy.TableSetMinutes; over > 0 {
			tc.ExtensionMinutes = over
		}
	}

	var cf CastFees
	var oc OrderCharge
	oc.Items = []domain.Order{}
	for _, o := range ledger {
		if o.Status == domain.OrderCancelled {
			continue
		}
		switch o.Category {
		case domain.CategoryTableFee:
			tc.ExtensionPrice += o.Amount
		case domain.CategoryNomination:
			cf.ShimeiCount++
			cf.ShimeiTotal += o.Amount
		case domain.CategoryCompanion, domain.CategoryEscort:
			cf.JounaiCount++
			cf.JounaiTotal += o.Amount
		case domain.CategoryItem:
			oc.Items = append(oc.Items, o)
			oc.Total += o.Amount * int64(o.Quantity)
		}
	}
	cf.Total = cf.ShimeiTotal + cf.JounaiTotal

	subtotal := tc.BasePrice + tc.ExtensionPrice + cf.Total + oc.Total
	service := int64(math.Floor(float64(subtotal) * settings.ServiceChargeRate))
	tax := int64(math.Floor(float64(subtotal+service) * settings.TaxRate))
	total := subtotal + service + tax

	if settings.RoundingEnabled && settings.RoundingUnit > 0 {
		total = roundTo(total, settings.RoundingUnit, settings.RoundingMode)
	}

	return &Breakdown{
		TimeCharge:    tc,
		CastFees:      cf,
		Orders:        oc,
		Subtotal:      subtotal,
		ServiceCharge: service,
		Tax:           tax,
		Total:         total,
	}, nil
}

func roundTo(amount, unit int64, mode domain.RoundingMode) int64 {
	rem := amount % unit
	if rem == 0 {
		return amount
	}
	switch mode {
	case domain.RoundUp:
		return amount + unit - rem
	case domain.RoundDown:
		return amount - rem
	default: // nearest
		if rem*2 >= unit {
			return amount + unit - rem
		}
		return amount - rem
	}
}
