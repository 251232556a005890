package postgres

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/krwdesk/otc-trade-service/internal/config"
	"github.com/krwdesk/otc-trade-service/internal/infrastructure/postgres/models"
)

func MustInitDB(cfg *config.TradeConfig) *gorm.DB {
	dsn := cfg.TradeDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(&models.OrderModel{}, &models.EngineActionHistoryModel{})

	return db
}
