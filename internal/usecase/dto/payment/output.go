package paymentdto

import (
	"net/http"
	"time"

	"github.com/LavaJover/shvark-mpesa-service/internal/domain"
	"github.com/shopspring/decimal"
)

type InitiatePaymentOutput struct {
	OrderID           int64   `json:"order_id"`
	CheckoutRequestID *string `json:"checkout_request_id"`
	MerchantRequestID *string `json:"merchant_request_id"`
}

// TransactionOutput is the caller-facing view of a transaction. Phone and raw payloads stay private.
type TransactionOutput struct {
	ID                 int64           `json:"id"`
	OrderID            int64           `json:"order_id"`
	Amount             decimal.Decimal `json:"amount"`
	MerchantRequestID  *string         `json:"merchant_request_id"`
	CheckoutRequestID  *string         `json:"checkout_request_id"`
	Status             string          `json:"status"`
	ResultCode         *int            `json:"result_code"`
	ResultDesc         *string         `json:"result_desc"`
	MpesaReceiptNumber *string         `json:"mpesa_receipt_number"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

func ToTransactionOutput(txn *domain.PaymentTransaction) *TransactionOutput {
	if txn == nil {
		return nil
	}
	return &TransactionOutput{
		ID:                 txn.ID,
		OrderID:            txn.OrderID,
		Amount:             txn.Amount,
		MerchantRequestID:  txn.MerchantRequestID,
		CheckoutRequestID:  txn.CheckoutRequestID,
		Status:             string(txn.Status),
		ResultCode:         txn.ResultCode,
		ResultDesc:         txn.ResultDesc,
		MpesaReceiptNumber: txn.MpesaReceiptNumber,
		CreatedAt:          txn.CreatedAt,
		UpdatedAt:          txn.UpdatedAt,
	}
}

// CallbackAck is the body the gateway expects back from the callback URL.
type CallbackAck struct {
	ResultCode int    `json:"ResultCode"`
	ResultDesc string `json:"ResultDesc"`
}

type CallbackOutput struct {
	HTTPStatus int
	Ack        CallbackAck
	Outcome    domain.CallbackOutcome
}

func AcceptedCallback(outcome domain.CallbackOutcome) *CallbackOutput {
	return &CallbackOutput{
		HTTPStatus: http.StatusOK,
		Ack:        CallbackAck{ResultCode: 0, ResultDesc: "Accepted"},
		Outcome:    outcome,
	}
}

func ForbiddenCallback() *CallbackOutput {
	return &CallbackOutput{
		HTTPStatus: http.StatusForbidden,
		Ack:        CallbackAck{ResultCode: 1, ResultDesc: "Forbidden"},
		Outcome:    domain.CallbackForbidden,
	}
}
