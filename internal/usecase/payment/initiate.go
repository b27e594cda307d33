package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/LavaJover/shvark-mpesa-service/internal/domain"
	paymentdto "github.com/LavaJover/shvark-mpesa-service/internal/usecase/dto/payment"
)

func (uc *DefaultPaymentUsecase) InitiatePayment(ctx context.Context, input *paymentdto.InitiatePaymentInput) (*paymentdto.InitiatePaymentOutput, error) {
	order, err := uc.OrderRepo.GetUserOrder(ctx, input.UserID, input.OrderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			uc.recordStkPush(stkOutcomeNotFound)
		} else {
			uc.recordStkPush(stkOutcomeFailed)
		}
		return nil, err
	}

	if order.IsPaid() {
		uc.recordStkPush(stkOutcomeAlreadyPaid)
		return nil, domain.ErrOrderAlreadyPaid
	}

	phone := uc.Gateway.NormalizePhone(input.Phone)

	result, err := uc.Gateway.PushPayment(ctx, domain.StkPushRequest{
		Amount:           order.Total,
		Phone:            phone,
		AccountReference: fmt.Sprintf("ORDER-%d", order.ID),
		TransactionDesc:  fmt.Sprintf("Order #%d", order.ID),
	})
	if err != nil {
		uc.recordStkPush(stkOutcomeFailed)
		slog.Error("stk push failed", "order_id", order.ID, "error", err.Error())
		return nil, fmt.Errorf("%w: %w", domain.ErrPaymentInitiationFailed, err)
	}

	txn := &domain.PaymentTransaction{
		OrderID:           order.ID,
		Phone:             phone,
		Amount:            order.Total,
		MerchantRequestID: optionalString(result.Response.MerchantRequestID),
		CheckoutRequestID: optionalString(result.Response.CheckoutRequestID),
		Status:            domain.TransactionPending,
		RawRequest:        result.RequestBody,
	}
	if err := uc.TransactionRepo.CreateTransaction(ctx, txn); err != nil {
		uc.recordStkPush(stkOutcomeFailed)
		slog.Error("failed to store payment transaction",
			"order_id", order.ID,
			"checkout_request_id", result.Response.CheckoutRequestID,
			"error", err.Error(),
		)
		return nil, fmt.Errorf("store payment transaction: %w", err)
	}

	uc.recordStkPush(stkOutcomeInitiated)
	slog.Info("stk push initiated",
		"order_id", order.ID,
		"transaction_id", txn.ID,
		"checkout_request_id", result.Response.CheckoutRequestID,
	)

	return &paymentdto.InitiatePaymentOutput{
		OrderID:           order.ID,
		CheckoutRequestID: txn.CheckoutRequestID,
		MerchantRequestID: txn.MerchantRequestID,
	}, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
