package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/LavaJover/shvark-mpesa-service/internal/config"
	"github.com/LavaJover/shvark-mpesa-service/internal/domain"
	"github.com/LavaJover/shvark-mpesa-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-mpesa-service/internal/infrastructure/metrics"
	paymentdto "github.com/LavaJover/shvark-mpesa-service/internal/usecase/dto/payment"
)

type PaymentUsecase interface {
	InitiatePayment(ctx context.Context, input *paymentdto.InitiatePaymentInput) (*paymentdto.InitiatePaymentOutput, error)
	LatestForOrder(ctx context.Context, userID, orderID int64) (*domain.PaymentTransaction, error)
	HandleCallback(ctx context.Context, input *paymentdto.CallbackInput) *paymentdto.CallbackOutput
}

type DefaultPaymentUsecase struct {
	OrderRepo       domain.OrderRepository
	TransactionRepo domain.PaymentTransactionRepository
	Gateway         domain.MpesaGateway
	Publisher       domain.PublisherPort
	CallbackLogger  logger.CallbackLogger
	Metrics         *metrics.PaymentMetrics

	callbackSecret string
	now            func() time.Time
	events         sync.WaitGroup
}

type Option func(*DefaultPaymentUsecase)

func WithPublisher(pub domain.PublisherPort) Option {
	return func(uc *DefaultPaymentUsecase) { uc.Publisher = pub }
}

func WithCallbackLogger(l logger.CallbackLogger) Option {
	return func(uc *DefaultPaymentUsecase) { uc.CallbackLogger = l }
}

func WithMetrics(m *metrics.PaymentMetrics) Option {
	return func(uc *DefaultPaymentUsecase) { uc.Metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(uc *DefaultPaymentUsecase) { uc.now = now }
}

func NewDefaultPaymentUsecase(
	orderRepo domain.OrderRepository,
	transactionRepo domain.PaymentTransactionRepository,
	gateway domain.MpesaGateway,
	mpesaCfg config.Mpesa,
	opts ...Option,
) *DefaultPaymentUsecase {
	uc := &DefaultPaymentUsecase{
		OrderRepo:       orderRepo,
		TransactionRepo: transactionRepo,
		Gateway:         gateway,
		callbackSecret:  mpesaCfg.CallbackSecret,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Wait blocks until every in-flight event publication has finished.
func (uc *DefaultPaymentUsecase) Wait() {
	uc.events.Wait()
}
