package infra

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"stagekit/internal/models/db_models"
)

func InitPostgresql() *gorm.DB {

	dsn := os.Getenv("POSTGRES_URL")

	connectionPool, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database")
	}

	if err := connectionPool.AutoMigrate(
		&db_models.Account{},
		&db_models.Entitlement{},
		&db_models.LedgerEntry{},
		&db_models.PaymentRecord{},
		&db_models.Plan{},
		&db_models.Song{},
		&db_models.SongRequest{},
		&db_models.Playlist{},
	); err != nil {
		log.Printf("Error migrating schema: %v", err)
		log.Fatal("Error migrating schema")
	}

	seedPlans(connectionPool)

	return connectionPool
}

// seedPlans inserts the two billable cycles on first boot. Prices live in the
// gateway dashboard; rows only carry the references.
func seedPlans(db *gorm.DB) {
	var count int64
	if err := db.Model(&db_models.Plan{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	plans := []db_models.Plan{
		{
			Code:              "monthly",
			Name:              "Monthly",
			Cycle:             db_models.CycleMonthly,
			PriceMinor:        999,
			SetupFeeMinor:     500,
			Currency:          "usd",
			IsActive:          true,
			GatewayPriceID:    os.Getenv("STRIPE_PRICE_MONTHLY"),
			GatewayFeePriceID: os.Getenv("STRIPE_PRICE_SETUP_FEE"),
		},
		{
			Code:              "annual",
			Name:              "Annual",
			Cycle:             db_models.CycleAnnual,
			PriceMinor:        9900,
			SetupFeeMinor:     500,
			Currency:          "usd",
			IsActive:          true,
			GatewayPriceID:    os.Getenv("STRIPE_PRICE_ANNUAL"),
			GatewayFeePriceID: os.Getenv("STRIPE_PRICE_SETUP_FEE"),
		},
	}
	if err := db.Create(&plans).Error; err != nil {
		log.Printf("Error seeding plans: %v", err)
	}
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("PostgreSQL database connection closed successfully")
	}
}
