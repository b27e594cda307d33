package domain

import "context"

// PersonalAccessToken is an API token issued to a storefront user.
type PersonalAccessToken struct {
	ID        int64
	UserID    int64
	TokenHash string
}

type AccessTokenRepository interface {
	GetTokenByID(ctx context.Context, tokenID int64) (*PersonalAccessToken, error)
}
