package repository

import (
	"context"
	"errors"

	"github.com/LavaJover/shvark-mpesa-service/internal/domain"
	"github.com/LavaJover/shvark-mpesa-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-mpesa-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultPaymentTransactionRepository struct {
	DB *gorm.DB
}

func NewDefaultPaymentTransactionRepository(db *gorm.DB) *DefaultPaymentTransactionRepository {
	return &DefaultPaymentTransactionRepository{DB: db}
}

func (r *DefaultPaymentTransactionRepository) CreateTransaction(ctx context.Context, txn *domain.PaymentTransaction) error {
	model := mappers.ToGORMTransaction(txn)
	if err := r.DB.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}

	txn.ID = model.ID
	txn.CreatedAt = model.CreatedAt
	txn.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *DefaultPaymentTransactionRepository) GetByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*domain.PaymentTransaction, error) {
	var model models.MpesaTransactionModel
	if err := r.DB.WithContext(ctx).
		Where("checkout_request_id = ?", checkoutRequestID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}

	return mappers.ToDomainTransaction(&model), nil
}

func (r *DefaultPaymentTransactionRepository) GetLatestByMerchantRequestID(ctx context.Context, merchantRequestID string) (*domain.PaymentTransaction, error) {
	var model models.MpesaTransactionModel
	if err := r.DB.WithContext(ctx).
		Where("merchant_request_id = ?", merchantRequestID).
		Order("id DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}

	return mappers.ToDomainTransaction(&model), nil
}

func (r *DefaultPaymentTransactionRepository) GetLatestByOrderID(ctx context.Context, orderID int64) (*domain.PaymentTransaction, error) {
	var model models.MpesaTransactionModel
	if err := r.DB.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return mappers.ToDomainTransaction(&model), nil
}

// UpdateResult overwrites the outcome fields; a repeated delivery simply replaces the previous one.
func (r *DefaultPaymentTransactionRepository) UpdateResult(ctx context.Context, txnID int64, result domain.TransactionResult) error {
	res := r.DB.WithContext(ctx).
		Model(&models.MpesaTransactionModel{}).
		Where("id = ?", txnID).
		Updates(map[string]any{
			"status":               string(result.Status),
			"result_code":          result.ResultCode,
			"result_desc":          result.ResultDesc,
			"mpesa_receipt_number": result.MpesaReceiptNumber,
			"raw_callback":         mappers.ToJSON(result.RawCallback),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}
