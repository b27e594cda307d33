package domain

import "errors"

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderAlreadyPaid    = errors.New("order already paid")
	ErrTransactionNotFound = errors.New("payment transaction not found")

	ErrGatewayNotConfigured    = errors.New("M-Pesa is not configured")
	ErrGatewayAuth             = errors.New("failed to get M-Pesa access token")
	ErrGatewayRequest          = errors.New("M-Pesa STK push failed")
	ErrPaymentInitiationFailed = errors.New("failed to initiate payment")

	// ErrAmountMismatch is stored as the transaction's result_desc, never returned to the gateway.
	ErrAmountMismatch = errors.New("Amount mismatch")

	ErrUnauthenticated = errors.New("unauthenticated")
)
