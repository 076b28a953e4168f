package engagement

import (
	"context"
	"errors"
	"time"

	"clubfloor/internal/domain"
	"clubfloor/internal/repository"

	"gorm.io/gorm"
)

// PolicySource resolves the pricing policy a fee tag bills against.
type PolicySource interface {
	GetByID(ctx context.Context, id int64) (*domain.PricingPolicy, error)
}

type EventPublisher interface {
	Broadcast(event string, payload any)
}

type Service struct {
	db       *gorm.DB
	policies PolicySource
	feed     EventPublisher
}

func NewService(db *gorm.DB, policies PolicySource, feed EventPublisher) *Service {
	return &Service{db: db, policies: policies, feed: feed}
}

const castFeeLabelFallback = "Cast fee"

func feeLabel(tag domain.EngagementTag) string {
	switch tag {
	case domain.EngagementNomination:
		return "Nomination fee"
	case domain.EngagementCompanion:
		return "Companion fee"
	case domain.EngagementEscort:
		return "Escort fee"
	default:
		return castFeeLabelFallback
	}
}

// ChangeTag moves a cast ledger row to a new engagement tag. The whole
// sequence, including a close-and-reopen pair, runs in one transaction under
// the session row lock, so a retag never races an accrual pass and never
// leaves a closed row without its replacement.
func (s *Service) ChangeTag(ctx context.Context, orderID int64, newTag domain.EngagementTag, policyID int64) (*domain.Order, error) {
	if !newTag.Valid() {
		return nil, ErrUnknownTag
	}

	var fee int64
	if newTag.IsFee() {
		policy, err := s.policies.GetByID(ctx, policyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPolicyMissing
			}
			return nil, err
		}
		fee, _, _ = policy.CastFee(newTag.Category())
	}

	var result *domain.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry, err := repository.GetOrderTx(tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if entry.CastID == nil {
			return ErrNotCastEntry
		}

		if _, err := repository.LockSessionTx(tx, entry.SessionID); err != nil {
			return err
		}
		// re-read under the lock; the row may have moved since the first read
		entry, err = repository.GetOrderTx(tx, orderID)
		if err != nil {
			return err
		}

		now := time.Now()
		switch classify(currentTag(entry), newTag) {
		case retagInPlace:
			err = repository.UpdateOrderFieldsTx(tx, entry.ID, map[string]any{
				"category":   string(newTag.Category()),
				"item_name":  feeLabel(newTag),
				"amount":     fee,
				"engagement": string(newTag),
			})
			if err != nil {
				return err
			}
			result, err = repository.GetOrderTx(tx, entry.ID)
			return err

		case closeAndReopen:
			err = repository.UpdateOrderFieldsTx(tx, entry.ID, map[string]any{
				"end_time":   now,
				"engagement": string(domain.EngagementEnded),
			})
			if err != nil {
				return err
			}

			replacement := &domain.Order{
				SessionID:      entry.SessionID,
				SessionGuestID: entry.SessionGuestID,
				CastID:         entry.CastID,
				Category:       newTag.Category(),
				Quantity:       1,
				Amount:         fee,
				Status:         domain.OrderCompleted,
				Engagement:     newTag,
				StartTime:      &now,
			}
			if newTag.IsFee() {
				replacement.ItemName = feeLabel(newTag)
			}
			if err := repository.CreateOrderTx(tx, replacement); err != nil {
				return err
			}
			result = replacement
			return nil

		default: // statusUpdate
			err = repository.UpdateOrderFieldsTx(tx, entry.ID, map[string]any{
				"category":   string(domain.CategoryCastStatus),
				"item_name":  "",
				"amount":     int64(0),
				"engagement": string(newTag),
			})
			if err != nil {
				return err
			}
			result, err = repository.GetOrderTx(tx, entry.ID)
			return err
		}
	})
	if err != nil {
		return nil, err
	}

	if s.feed != nil {
		s.feed.Broadcast("engagement", result)
	}
	return result, nil
}

// Delete removes a cast fee row outright. Explicit removal carries no
// historical close, unlike a tag transition.
func (s *Service) Delete(ctx context.Context, orderID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry, err := repository.GetOrderTx(tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if entry.CastID == nil {
			return ErrNotCastEntry
		}
		if _, err := repository.LockSessionTx(tx, entry.SessionID); err != nil {
			return err
		}
		return repository.DeleteOrderTx(tx, entry.ID)
	})
}
