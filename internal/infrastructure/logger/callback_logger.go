package logger

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-mpesa-service/internal/domain"
	"github.com/LavaJover/shvark-mpesa-service/internal/infrastructure/postgres/mappers"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CallbackLogModel struct {
	ID                int64  `gorm:"primaryKey;autoIncrement"`
	TransactionID     *int64 `gorm:"index"`
	CheckoutRequestID string `gorm:"size:255;index"`
	MerchantRequestID string `gorm:"size:255"`
	Outcome           string `gorm:"size:32;not null"`
	Payload           datatypes.JSON
	ReceivedAt        time.Time `gorm:"not null"`
	ProcessingTime    int64
}

func (CallbackLogModel) TableName() string {
	return "mpesa_callback_logs"
}

type CallbackLogger interface {
	LogCallback(ctx context.Context, entry domain.CallbackLog) error
}

// PGCallbackLogger keeps an append-only audit trail of callback deliveries.
type PGCallbackLogger struct {
	db *gorm.DB
}

func NewPGCallbackLogger(db *gorm.DB) *PGCallbackLogger {
	return &PGCallbackLogger{db: db}
}

func (l *PGCallbackLogger) LogCallback(ctx context.Context, entry domain.CallbackLog) error {
	model := CallbackLogModel{
		TransactionID:     entry.TransactionID,
		CheckoutRequestID: entry.CheckoutRequestID,
		MerchantRequestID: entry.MerchantRequestID,
		Outcome:           string(entry.Outcome),
		Payload:           mappers.ToJSON(entry.Payload),
		ReceivedAt:        entry.ReceivedAt,
		ProcessingTime:    entry.ProcessingTime,
	}
	return l.db.WithContext(ctx).Create(&model).Error
}
