package domain

import "context"

type PaymentTransactionRepository interface {
	CreateTransaction(ctx context.Context, txn *PaymentTransaction) error
	GetByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*PaymentTransaction, error)
	GetLatestByMerchantRequestID(ctx context.Context, merchantRequestID string) (*PaymentTransaction, error)
	// GetLatestByOrderID returns nil, nil when the order has no transactions.
	GetLatestByOrderID(ctx context.Context, orderID int64) (*PaymentTransaction, error)
	UpdateResult(ctx context.Context, txnID int64, result TransactionResult) error
}
