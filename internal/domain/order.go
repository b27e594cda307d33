package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// PaymentMethodMpesa is the only method the STK callback may settle.
const PaymentMethodMpesa = "mpesa"

// Order is the storefront order as seen by the payment core.
type Order struct {
	ID            int64
	UserID        int64
	Total         decimal.Decimal
	Status        string
	PaymentMethod string
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentStatusPaid
}

func (o *Order) PaidByMpesa() bool {
	return o.PaymentMethod == PaymentMethodMpesa
}
