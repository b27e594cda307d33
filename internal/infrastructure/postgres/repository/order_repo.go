package repository

import (
	"context"
	"errors"

	"github.com/LavaJover/shvark-mpesa-service/internal/domain"
	"github.com/LavaJover/shvark-mpesa-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-mpesa-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db}
}

func (r *DefaultOrderRepository) GetOrderByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	var order models.OrderModel
	if err := r.DB.WithContext(ctx).First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	return mappers.ToDomainOrder(&order), nil
}

// GetUserOrder hides orders of other users behind the same not-found error.
func (r *DefaultOrderRepository) GetUserOrder(ctx context.Context, userID, orderID int64) (*domain.Order, error) {
	var order models.OrderModel
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	return mappers.ToDomainOrder(&order), nil
}

// MarkOrderPaid is a single conditional UPDATE, so two concurrent deliveries
// cannot both observe an unpaid order and both settle it.
func (r *DefaultOrderRepository) MarkOrderPaid(ctx context.Context, orderID int64) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", orderID).
		Where("payment_method = ?", domain.PaymentMethodMpesa).
		Where("(payment_status IS NULL OR payment_status <> ?)", domain.PaymentStatusPaid).
		Update("payment_status", domain.PaymentStatusPaid)
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected == 1, nil
}
