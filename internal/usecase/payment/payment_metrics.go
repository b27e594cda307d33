package usecase

import "github.com/LavaJover/shvark-mpesa-service/internal/domain"

const (
	stkOutcomeInitiated   = "initiated"
	stkOutcomeAlreadyPaid = "already_paid"
	stkOutcomeNotFound    = "not_found"
	stkOutcomeFailed      = "failed"
)

func (uc *DefaultPaymentUsecase) recordStkPush(outcome string) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordStkPush(outcome)
}

func (uc *DefaultPaymentUsecase) recordCallback(outcome domain.CallbackOutcome) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordCallback(string(outcome))
}

func (uc *DefaultPaymentUsecase) recordSettlement(order *domain.Order) {
	if uc.Metrics == nil {
		return
	}
	amount, _ := order.Total.Float64()
	uc.Metrics.RecordSettlement(amount)
}
