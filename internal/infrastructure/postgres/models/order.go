package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderModel maps the storefront orders table. Only the columns the payment flow touches are listed.
type OrderModel struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	UserID        int64           `gorm:"index;not null"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status        string          `gorm:"size:32;default:pending"`
	PaymentMethod string          `gorm:"size:32"`
	PaymentStatus string          `gorm:"size:32;default:pending"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}
