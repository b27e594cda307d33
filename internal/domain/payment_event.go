package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventPaymentSettled = "payment.settled"
	EventPaymentFailed  = "payment.failed"
)

type PaymentEvent struct {
	EventID           string          `json:"event_id"`
	Type              string          `json:"type"`
	OrderID           int64           `json:"order_id"`
	TransactionID     int64           `json:"transaction_id"`
	CheckoutRequestID string          `json:"checkout_request_id,omitempty"`
	ReceiptNumber     string          `json:"receipt_number,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Reason            string          `json:"reason,omitempty"`
	OccurredAt        time.Time       `json:"occurred_at"`
}
