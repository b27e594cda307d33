package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-mpesa-service/internal/domain"
	publisher "github.com/LavaJover/shvark-mpesa-service/internal/infrastructure/kafka"
	paymentdto "github.com/LavaJover/shvark-mpesa-service/internal/usecase/dto/payment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	descMissingProof = "Missing receipt or amount"

	eventPublishTimeout = 10 * time.Second
)

var (
	amountTolerance    = decimal.RequireFromString("0.01")
	amountMismatchDesc = domain.ErrAmountMismatch.Error()
)

// HandleCallback reconciles one STK callback delivery. Apart from the secret check every
// path is acknowledged with code 0 so the gateway does not retry our own failures.
func (uc *DefaultPaymentUsecase) HandleCallback(ctx context.Context, input *paymentdto.CallbackInput) *paymentdto.CallbackOutput {
	audit := domain.CallbackLog{
		Payload:    input.Payload,
		ReceivedAt: uc.now(),
	}

	out := uc.reconcile(ctx, input, &audit)

	audit.Outcome = out.Outcome
	audit.ProcessingTime = time.Since(audit.ReceivedAt).Milliseconds()
	uc.recordCallback(out.Outcome)
	uc.logCallback(ctx, audit)

	slog.Info("mpesa callback processed",
		"outcome", string(out.Outcome),
		"checkout_request_id", audit.CheckoutRequestID,
		"merchant_request_id", audit.MerchantRequestID,
	)
	return out
}

func (uc *DefaultPaymentUsecase) reconcile(ctx context.Context, input *paymentdto.CallbackInput, audit *domain.CallbackLog) *paymentdto.CallbackOutput {
	if !uc.callbackAuthorized(input.QuerySecret, input.HeaderSecret) {
		slog.Warn("mpesa callback rejected: secret mismatch")
		return paymentdto.ForbiddenCallback()
	}

	env := domain.ParseCallbackEnvelope(input.Payload)
	if !env.Present {
		return paymentdto.AcceptedCallback(domain.CallbackIgnored)
	}
	audit.CheckoutRequestID = env.CheckoutRequestID
	audit.MerchantRequestID = env.MerchantRequestID

	txn, err := uc.matchTransaction(ctx, env)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return paymentdto.AcceptedCallback(domain.CallbackUnmatched)
		}
		slog.Error("mpesa callback lookup failed", "checkout_request_id", env.CheckoutRequestID, "error", err.Error())
		return paymentdto.AcceptedCallback(domain.CallbackError)
	}
	audit.TransactionID = &txn.ID

	result, success := classify(env, input.Payload)
	if !success {
		if err := uc.storeResult(ctx, txn.ID, result); err != nil {
			return paymentdto.AcceptedCallback(domain.CallbackError)
		}
		uc.publishAsync(uc.paymentEvent(domain.EventPaymentFailed, txn, env, txn.Amount, stringValue(result.ResultDesc)))
		return paymentdto.AcceptedCallback(domain.CallbackFailed)
	}

	return paymentdto.AcceptedCallback(uc.settle(ctx, txn, env, result))
}

// settle stores a success result and marks the order paid when the callback proves the full
// amount was received. The order is checked first so the transaction is written once.
func (uc *DefaultPaymentUsecase) settle(
	ctx context.Context,
	txn *domain.PaymentTransaction,
	env domain.CallbackEnvelope,
	result domain.TransactionResult,
) domain.CallbackOutcome {
	order, err := uc.OrderRepo.GetOrderByID(ctx, txn.OrderID)
	if err != nil && !errors.Is(err, domain.ErrOrderNotFound) {
		slog.Error("failed to load order for settlement", "order_id", txn.OrderID, "error", err.Error())
		_ = uc.storeResult(ctx, txn.ID, result)
		return domain.CallbackError
	}

	if order != nil && order.PaidByMpesa() && !order.IsPaid() &&
		env.AmountPaid.Sub(order.Total).Abs().GreaterThan(amountTolerance) {
		slog.Warn("mpesa callback amount mismatch",
			"order_id", order.ID,
			"transaction_id", txn.ID,
			"expected", order.Total.StringFixed(2),
			"paid", env.AmountPaid.String(),
		)
		code, desc := domain.ResultCodeRejected, amountMismatchDesc
		result.Status = domain.TransactionFailed
		result.ResultCode = &code
		result.ResultDesc = &desc
		if err := uc.storeResult(ctx, txn.ID, result); err != nil {
			return domain.CallbackError
		}
		uc.publishAsync(uc.paymentEvent(domain.EventPaymentFailed, txn, env, *env.AmountPaid, desc))
		return domain.CallbackAmountMismatch
	}

	if err := uc.storeResult(ctx, txn.ID, result); err != nil {
		return domain.CallbackError
	}

	switch {
	case order == nil:
		slog.Warn("mpesa callback for missing order", "order_id", txn.OrderID, "transaction_id", txn.ID)
		return domain.CallbackSuccess
	case order.IsPaid():
		return domain.CallbackAlreadySettled
	case !order.PaidByMpesa():
		slog.Warn("mpesa callback for order with another payment method",
			"order_id", order.ID,
			"payment_method", order.PaymentMethod,
		)
		return domain.CallbackSuccess
	}

	settled, err := uc.OrderRepo.MarkOrderPaid(ctx, order.ID)
	if err != nil {
		slog.Error("failed to mark order paid", "order_id", order.ID, "error", err.Error())
		return domain.CallbackError
	}
	if !settled {
		// another delivery won the conditional update
		return domain.CallbackAlreadySettled
	}

	uc.recordSettlement(order)
	slog.Info("order settled by mpesa", "order_id", order.ID, "transaction_id", txn.ID)
	uc.publishAsync(uc.paymentEvent(domain.EventPaymentSettled, txn, env, *env.AmountPaid, ""))
	return domain.CallbackSettled
}

func (uc *DefaultPaymentUsecase) storeResult(ctx context.Context, txnID int64, result domain.TransactionResult) error {
	if err := uc.TransactionRepo.UpdateResult(ctx, txnID, result); err != nil {
		slog.Error("failed to store mpesa callback result", "transaction_id", txnID, "error", err.Error())
		return err
	}
	return nil
}

// callbackAuthorized accepts every delivery when no secret is configured.
func (uc *DefaultPaymentUsecase) callbackAuthorized(querySecret, headerSecret string) bool {
	if uc.callbackSecret == "" {
		return true
	}
	expected := []byte(uc.callbackSecret)
	queryOK := subtle.ConstantTimeCompare([]byte(querySecret), expected) == 1
	headerOK := subtle.ConstantTimeCompare([]byte(headerSecret), expected) == 1
	return queryOK || headerOK
}

func (uc *DefaultPaymentUsecase) matchTransaction(ctx context.Context, env domain.CallbackEnvelope) (*domain.PaymentTransaction, error) {
	if env.CheckoutRequestID != "" {
		txn, err := uc.TransactionRepo.GetByCheckoutRequestID(ctx, env.CheckoutRequestID)
		if err == nil {
			return txn, nil
		}
		if !errors.Is(err, domain.ErrTransactionNotFound) {
			return nil, err
		}
	}
	if env.MerchantRequestID != "" {
		return uc.TransactionRepo.GetLatestByMerchantRequestID(ctx, env.MerchantRequestID)
	}
	return nil, domain.ErrTransactionNotFound
}

// classify derives the stored result. A zero result code without receipt and amount is not trusted.
func classify(env domain.CallbackEnvelope, raw []byte) (domain.TransactionResult, bool) {
	result := domain.TransactionResult{
		Status:      domain.TransactionFailed,
		ResultCode:  env.ResultCode,
		ResultDesc:  env.ResultDesc,
		RawCallback: raw,
	}
	if env.ReceiptNumber != "" {
		receipt := env.ReceiptNumber
		result.MpesaReceiptNumber = &receipt
	}

	if !env.IsSuccess() {
		return result, false
	}
	if !env.HasProofOfPayment() {
		code, desc := domain.ResultCodeRejected, descMissingProof
		result.ResultCode = &code
		result.ResultDesc = &desc
		return result, false
	}

	result.Status = domain.TransactionSuccess
	return result, true
}

func (uc *DefaultPaymentUsecase) paymentEvent(
	eventType string,
	txn *domain.PaymentTransaction,
	env domain.CallbackEnvelope,
	amount decimal.Decimal,
	reason string,
) domain.PaymentEvent {
	return domain.PaymentEvent{
		EventID:           uuid.NewString(),
		Type:              eventType,
		OrderID:           txn.OrderID,
		TransactionID:     txn.ID,
		CheckoutRequestID: env.CheckoutRequestID,
		ReceiptNumber:     env.ReceiptNumber,
		Amount:            amount,
		Reason:            reason,
		OccurredAt:        uc.now(),
	}
}

func (uc *DefaultPaymentUsecase) publishAsync(event domain.PaymentEvent) {
	if uc.Publisher == nil {
		return
	}
	uc.events.Add(1)
	go func(event domain.PaymentEvent) {
		defer uc.events.Done()
		ctx, cancel := context.WithTimeout(context.Background(), eventPublishTimeout)
		defer cancel()
		if err := publisher.PublishPaymentEvent(ctx, uc.Publisher, event); err != nil {
			slog.Error("failed to publish payment event",
				"type", event.Type,
				"order_id", event.OrderID,
				"error", err.Error(),
			)
		}
	}(event)
}

func (uc *DefaultPaymentUsecase) logCallback(ctx context.Context, entry domain.CallbackLog) {
	if uc.CallbackLogger == nil {
		return
	}
	if err := uc.CallbackLogger.LogCallback(ctx, entry); err != nil {
		slog.Error("failed to write mpesa callback audit", "outcome", string(entry.Outcome), "error", err.Error())
	}
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
