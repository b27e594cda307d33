package models

import "time"

type PersonalAccessTokenModel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	UserID     int64  `gorm:"column:tokenable_id;index;not null"`
	Name       string `gorm:"size:255"`
	Token      string `gorm:"size:64;uniqueIndex;not null"`
	LastUsedAt *time.Time
	ExpiresAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (PersonalAccessTokenModel) TableName() string {
	return "personal_access_tokens"
}
