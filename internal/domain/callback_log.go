package domain

import "time"

type CallbackOutcome string

const (
	CallbackForbidden      CallbackOutcome = "forbidden"
	CallbackIgnored        CallbackOutcome = "ignored"
	CallbackUnmatched      CallbackOutcome = "unmatched"
	CallbackFailed         CallbackOutcome = "failed"
	CallbackSuccess        CallbackOutcome = "success"
	CallbackAmountMismatch CallbackOutcome = "amount_mismatch"
	CallbackSettled        CallbackOutcome = "settled"
	CallbackAlreadySettled CallbackOutcome = "already_settled"
	CallbackError          CallbackOutcome = "error"
)

// CallbackLog is an audit record of a single callback delivery.
type CallbackLog struct {
	ID                int64
	TransactionID     *int64
	CheckoutRequestID string
	MerchantRequestID string
	Outcome           CallbackOutcome
	Payload           []byte
	ReceivedAt        time.Time
	ProcessingTime    int64
}
