package repository

import (
	"context"
	"time"

	"clubfloor/internal/domain"

	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

type orderModel struct {
	ID             int64      `gorm:"column:id;primaryKey"`
	SessionID      int64      `gorm:"column:session_id"`
	MenuItemID     *int64     `gorm:"column:menu_item_id"`
	SessionGuestID *int64     `gorm:"column:session_guest_id"`
	CastID         *int64     `gorm:"column:cast_id"`
	ItemName       string     `gorm:"column:item_name"`
	Category       string     `gorm:"column:category"`
	Quantity       int        `gorm:"column:quantity"`
	Amount         int64      `gorm:"column:amount"`
	Status         string     `gorm:"column:status"`
	Engagement     string     `gorm:"column:engagement"`
	StartTime      *time.Time `gorm:"column:start_time"`
	EndTime        *time.Time `gorm:"column:end_time"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (orderModel) TableName() string { return "orders" }

func toDomainOrder(m orderModel) *domain.Order {
	return &domain.Order{
		ID:             m.ID,
		SessionID:      m.SessionID,
		MenuItemID:     m.MenuItemID,
		SessionGuestID: m.SessionGuestID,
		CastID:         m.CastID,
		ItemName:       m.ItemName,
		Category:       domain.OrderCategory(m.Category),
		Quantity:       m.Quantity,
		Amount:         m.Amount,
		Status:         domain.OrderStatus(m.Status),
		Engagement:     domain.EngagementTag(m.Engagement),
		StartTime:      m.StartTime,
		EndTime:        m.EndTime,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toOrderModel(o *domain.Order) orderModel {
	return orderModel{
		ID:             o.ID,
		SessionID:      o.SessionID,
		MenuItemID:     o.MenuItemID,
		SessionGuestID: o.SessionGuestID,
		CastID:         o.CastID,
		ItemName:       o.ItemName,
		Category:       string(o.Category),
		Quantity:       o.Quantity,
		Amount:         o.Amount,
		Status:         string(o.Status),
		Engagement:     string(o.Engagement),
		StartTime:      o.StartTime,
		EndTime:        o.EndTime,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	return CreateOrderTx(r.db.WithContext(ctx), o)
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var m orderModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainOrder(m), nil
}

func (r *OrderRepository) ListBySession(ctx context.Context, sessionID int64) ([]domain.Order, error) {
	return ListSessionOrdersTx(r.db.WithContext(ctx), sessionID)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&orderModel{}).Where("id = ?", id).Updates(map[string]any{
		"status":     string(status),
		"updated_at": time.Now(),
	}).Error
}

func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&orderModel{}, id).Error
}

// DeleteGuestFeeRows removes every fee-category row tagged to one session
// guest link. Plain item orders survive the guest's removal.
func (r *OrderRepository) DeleteGuestFeeRows(ctx context.Context, sessionGuestID int64) error {
	return DeleteGuestFeeRowsTx(r.db.WithContext(ctx), sessionGuestID)
}

// Transaction-scoped helpers shared with the accrual and engagement services,
// which run whole read-decide-write sequences under one session row lock.

func GetOrderTx(tx *gorm.DB, id int64) (*domain.Order, error) {
	var m orderModel
	if err := tx.First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainOrder(m), nil
}

func CreateOrderTx(tx *gorm.DB, o *domain.Order) error {
	m := toOrderModel(o)
	if err := tx.Create(&m).Error; err != nil {
		return err
	}
	*o = *toDomainOrder(m)
	return nil
}

func ListSessionOrdersTx(tx *gorm.DB, sessionID int64) ([]domain.Order, error) {
	var models []orderModel
	if err := tx.Where("session_id = ?", sessionID).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Order, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainOrder(m))
	}
	return out, nil
}

func UpdateOrderFieldsTx(tx *gorm.DB, id int64, fields map[string]any) error {
	fields["updated_at"] = time.Now()
	return tx.Model(&orderModel{}).Where("id = ?", id).Updates(fields).Error
}

func DeleteOrderTx(tx *gorm.DB, id int64) error {
	return tx.Delete(&orderModel{}, id).Error
}

func DeleteGuestFeeRowsTx(tx *gorm.DB, sessionGuestID int64) error {
	cats := make([]string, 0, len(domain.CastFeeCategories)+1)
	cats = append(cats, string(domain.CategoryTableFee))
	for _, c := range domain.CastFeeCategories {
		cats = append(cats, string(c))
	}
	return tx.Where("session_guest_id = ? AND category IN ?", sessionGuestID, cats).
		Delete(&orderModel{}).Error
}
