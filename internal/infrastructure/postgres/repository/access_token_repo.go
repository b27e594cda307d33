package repository

import (
	"context"
	"errors"
	"time"

	"github.com/LavaJover/shvark-mpesa-service/internal/domain"
	"github.com/LavaJover/shvark-mpesa-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultAccessTokenRepository struct {
	DB *gorm.DB
}

func NewDefaultAccessTokenRepository(db *gorm.DB) *DefaultAccessTokenRepository {
	return &DefaultAccessTokenRepository{DB: db}
}

// GetTokenByID ignores expired tokens.
func (r *DefaultAccessTokenRepository) GetTokenByID(ctx context.Context, tokenID int64) (*domain.PersonalAccessToken, error) {
	var model models.PersonalAccessTokenModel
	if err := r.DB.WithContext(ctx).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		First(&model, "id = ?", tokenID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	return &domain.PersonalAccessToken{
		ID:        model.ID,
		UserID:    model.UserID,
		TokenHash: model.Token,
	}, nil
}
