package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type StkPushRequest struct {
	Amount           decimal.Decimal
	Phone            string
	AccountReference string
	TransactionDesc  string
}

type StkPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

// StkPushResult carries the outbound body for audit and the decoded gateway reply.
type StkPushResult struct {
	RequestBody []byte
	Response    StkPushResponse
}

type MpesaGateway interface {
	NormalizePhone(raw string) string
	PushPayment(ctx context.Context, req StkPushRequest) (*StkPushResult, error)
}

// TokenCache stores gateway access tokens between requests.
type TokenCache interface {
	GetToken(ctx context.Context, key string) (string, bool, error)
	SetToken(ctx context.Context, key, token string, ttlSeconds int64) error
}
