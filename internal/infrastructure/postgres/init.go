package postgres

import (
	"fmt"

	"github.com/LavaJover/shvark-mpesa-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-mpesa-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func InitDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("payment db dsn is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// AutoMigrate creates the tables from the gorm models. Production schemas go
// through the SQL migrations; this is for local runs and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.OrderModel{},
		&models.MpesaTransactionModel{},
		&models.PersonalAccessTokenModel{},
		&logger.CallbackLogModel{},
	)
}
