package domain

import "context"

type OrderRepository interface {
	GetOrderByID(ctx context.Context, orderID int64) (*Order, error)
	GetUserOrder(ctx context.Context, userID, orderID int64) (*Order, error)
	// MarkOrderPaid flips payment_status to paid only if the order is still
	// unpaid and paid by M-Pesa. It reports whether a row was changed.
	MarkOrderPaid(ctx context.Context, orderID int64) (bool, error)
}
