package accrual

import (
	"time"

	"clubfloor/internal/domain"
)

// Fee row display names. The enum category is what the code branches on.
const (
	tableExtensionName = "Table extension"
	nominationName     = "Nomination fee"
	companionName      = "Companion fee"
	escortName         = "Escort fee"
)

func feeItemName(cat domain.OrderCategory) string {
	switch cat {
	case domain.CategoryNomination:
		return nominationName
	case domain.CategoryCompanion:
		return companionName
	case domain.CategoryEscort:
		return escortName
	default:
		return tableExtensionName
	}
}

// planSession computes the fee rows newly due for one session at `now`.
// The decision is a pure count comparison over the session's existing ledger,
// so replanning with the same inputs yields nothing.
func planSession(s *domain.Session, now time.Time) []domain.Order {
	if s.Policy == nil {
		return nil
	}
	planned := planTableFees(s, now)
	planned = append(planned, planCastFees(s, now)...)
	return planned
}

// planTableFees charges each guest for elapsed table time past the set
// duration, one extension row per full or partial extension block.
func planTableFees(s *domain.Session, now time.Time) []domain.Order {
	p := s.Policy
	if p.ExtensionFee <= 0 || p.ExtensionMinutes <= 0 {
		return nil
	}

	elapsed := minutesSince(s.StartTime, now)
	if elapsed <= p.TableSetMinutes {
		return nil
	}
	due := ceilDiv(elapsed-p.TableSetMinutes, p.ExtensionMinutes)

	existing := make(map[int64]int)
	for _, o := range s.Orders {
		if o.Category == domain.CategoryTableFee && o.SessionGuestID != nil {
			existing[*o.SessionGuestID]++
		}
	}

	var out []domain.Order
	for _, g := range s.Guests {
		shortfall := due - existing[g.ID]
		for i := 0; i < shortfall; i++ {
			linkID := g.ID
			out = append(out, domain.Order{
				SessionID:      s.ID,
				SessionGuestID: &linkID,
				ItemName:       tableExtensionName,
				Category:       domain.CategoryTableFee,
				Quantity:       1,
				Amount:         p.ExtensionFee,
				Status:         domain.OrderCompleted,
			})
		}
	}
	return out
}

type castGroupKey struct {
	castID  int64
	guestID int64 // session guest link id, 0 when untagged
	cat     domain.OrderCategory
}

type castGroup struct {
	rows     []domain.Order
	allEnded bool
}

// planCastFees accrues engagement fees per (cast, guest, category) group.
// The group's earliest row anchors the window; a fully ended group accrues
// nothing further.
func planCastFees(s *domain.Session, now time.Time) []domain.Order {
	p := s.Policy
	if p.ExtensionMinutes <= 0 {
		return nil
	}

	groups := make(map[castGroupKey]*castGroup)
	var keys []castGroupKey
	for _, o := range s.Orders {
		if !o.Category.IsCastFee() || o.CastID == nil {
			continue
		}
		key := castGroupKey{castID: *o.CastID, cat: o.Category}
		if o.SessionGuestID != nil {
			key.guestID = *o.SessionGuestID
		}
		g, ok := groups[key]
		if !ok {
			g = &castGroup{allEnded: true}
			groups[key] = g
			keys = append(keys, key)
		}
		g.rows = append(g.rows, o)
		if o.Engagement != domain.EngagementEnded {
			g.allEnded = false
		}
	}

	var out []domain.Order
	for _, key := range keys {
		g := groups[key]
		if g.allEnded {
			continue
		}

		fee, setMinutes, ok := p.CastFee(key.cat)
		if !ok || fee <= 0 {
			continue
		}

		anchor := g.rows[0].AnchorTime()
		for _, row := range g.rows[1:] {
			if t := row.AnchorTime(); t.Before(anchor) {
				anchor = t
			}
		}

		elapsed := minutesSince(anchor, now)
		overtime := elapsed - setMinutes
		if overtime < 0 {
			overtime = 0
		}
		expected := 1 + ceilDiv(overtime, p.ExtensionMinutes)

		for i := len(g.rows); i < expected; i++ {
			castID := key.castID
			o := domain.Order{
				SessionID:  s.ID,
				CastID:     &castID,
				ItemName:   feeItemName(key.cat),
				Category:   key.cat,
				Quantity:   1,
				Amount:     fee,
				Status:     domain.OrderCompleted,
				Engagement: domain.EngagementServing,
				StartTime:  timePtr(now),
			}
			if key.guestID != 0 {
				guestID := key.guestID
				o.SessionGuestID = &guestID
			}
			out = append(out, o)
		}
	}
	return out
}

func minutesSince(from, to time.Time) int {
	return int(to.Sub(from).Minutes())
}

// ceilDiv charges any nonzero remainder as a full block.
func ceilDiv(n, d int) int {
	if n <= 0 {
		return 0
	}
	return (n + d - 1) / d
}

func timePtr(t time.Time) *time.Time { return &t }
