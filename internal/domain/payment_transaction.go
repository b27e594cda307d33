package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionPending TransactionStatus = "pending"
	TransactionSuccess TransactionStatus = "success"
	TransactionFailed  TransactionStatus = "failed"
)

// ResultCodeSuccess is the gateway's success sentinel.
const ResultCodeSuccess = 0

// ResultCodeRejected is written when a callback is rejected locally.
const ResultCodeRejected = 1

// PaymentTransaction is one STK push attempt for an order.
type PaymentTransaction struct {
	ID                 int64
	OrderID            int64
	Phone              string
	Amount             decimal.Decimal
	MerchantRequestID  *string
	CheckoutRequestID  *string
	Status             TransactionStatus
	ResultCode         *int
	ResultDesc         *string
	MpesaReceiptNumber *string
	RawRequest         []byte
	RawCallback        []byte
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TransactionResult is the outcome a callback delivery writes onto a transaction.
type TransactionResult struct {
	Status             TransactionStatus
	ResultCode         *int
	ResultDesc         *string
	MpesaReceiptNumber *string
	RawCallback        []byte
}
