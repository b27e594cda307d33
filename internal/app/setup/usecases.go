package setup

import (
	paymentusecase "github.com/LavaJover/shvark-mpesa-service/internal/usecase/payment"
)

type UseCases struct {
	PaymentUsecase *paymentusecase.DefaultPaymentUsecase
}

func InitializeUseCases(deps *Dependencies) *UseCases {
	return &UseCases{
		PaymentUsecase: paymentusecase.NewDefaultPaymentUsecase(
			deps.Repositories.OrderRepo,
			deps.Repositories.TransactionRepo,
			deps.Gateway,
			deps.Config.Mpesa,
			paymentusecase.WithPublisher(deps.Publisher),
			paymentusecase.WithCallbackLogger(deps.CallbackLogger),
			paymentusecase.WithMetrics(deps.Metrics),
		),
	}
}
