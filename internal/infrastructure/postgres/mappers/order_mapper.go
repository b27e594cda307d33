package mappers

import (
	"github.com/LavaJover/shvark-mpesa-service/internal/domain"
	"github.com/LavaJover/shvark-mpesa-service/internal/infrastructure/postgres/models"
)

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	return &domain.Order{
		ID:            model.ID,
		UserID:        model.UserID,
		Total:         model.Total,
		Status:        model.Status,
		PaymentMethod: model.PaymentMethod,
		PaymentStatus: domain.PaymentStatus(model.PaymentStatus),
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}
