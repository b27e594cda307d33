package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type MpesaTransactionModel struct {
	ID                 int64           `gorm:"primaryKey;autoIncrement"`
	OrderID            int64           `gorm:"index;not null"`
	Phone              string          `gorm:"size:32;not null"`
	Amount             decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	MerchantRequestID  *string         `gorm:"size:255;index"`
	CheckoutRequestID  *string         `gorm:"size:255;uniqueIndex"`
	Status             string          `gorm:"size:32;not null;default:pending"`
	ResultCode         *int
	ResultDesc         *string `gorm:"type:text"`
	MpesaReceiptNumber *string `gorm:"size:255"`
	RawRequest         datatypes.JSON
	RawCallback        datatypes.JSON
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (MpesaTransactionModel) TableName() string {
	return "mpesa_transactions"
}
