package usecase

import (
	"context"

	"github.com/LavaJover/shvark-mpesa-service/internal/domain"
)

// LatestForOrder returns nil without error when the order has no transactions yet.
func (uc *DefaultPaymentUsecase) LatestForOrder(ctx context.Context, userID, orderID int64) (*domain.PaymentTransaction, error) {
	if _, err := uc.OrderRepo.GetUserOrder(ctx, userID, orderID); err != nil {
		return nil, err
	}
	return uc.TransactionRepo.GetLatestByOrderID(ctx, orderID)
}
