package mappers

import (
	"encoding/json"

	"github.com/LavaJover/shvark-mpesa-service/internal/domain"
	"github.com/LavaJover/shvark-mpesa-service/internal/infrastructure/postgres/models"
	"gorm.io/datatypes"
)

func ToDomainTransaction(model *models.MpesaTransactionModel) *domain.PaymentTransaction {
	return &domain.PaymentTransaction{
		ID:                 model.ID,
		OrderID:            model.OrderID,
		Phone:              model.Phone,
		Amount:             model.Amount,
		MerchantRequestID:  model.MerchantRequestID,
		CheckoutRequestID:  model.CheckoutRequestID,
		Status:             domain.TransactionStatus(model.Status),
		ResultCode:         model.ResultCode,
		ResultDesc:         model.ResultDesc,
		MpesaReceiptNumber: model.MpesaReceiptNumber,
		RawRequest:         []byte(model.RawRequest),
		RawCallback:        []byte(model.RawCallback),
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}
}

func ToGORMTransaction(txn *domain.PaymentTransaction) *models.MpesaTransactionModel {
	return &models.MpesaTransactionModel{
		ID:                 txn.ID,
		OrderID:            txn.OrderID,
		Phone:              txn.Phone,
		Amount:             txn.Amount,
		MerchantRequestID:  txn.MerchantRequestID,
		CheckoutRequestID:  txn.CheckoutRequestID,
		Status:             string(txn.Status),
		ResultCode:         txn.ResultCode,
		ResultDesc:         txn.ResultDesc,
		MpesaReceiptNumber: txn.MpesaReceiptNumber,
		RawRequest:         ToJSON(txn.RawRequest),
		RawCallback:        ToJSON(txn.RawCallback),
		CreatedAt:          txn.CreatedAt,
		UpdatedAt:          txn.UpdatedAt,
	}
}

// ToJSON returns nil for empty or invalid input so the column is written as NULL.
func ToJSON(raw []byte) datatypes.JSON {
	if len(raw) == 0 || !json.Valid(raw) {
		return nil
	}
	return datatypes.JSON(raw)
}
