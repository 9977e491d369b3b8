package database

import (
	"log"

	"github.com/cardscout/card-arbitrage/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Initialize(dbPath string) error {
	var err error
	DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	log.Println("Database connected successfully")

	// Duplicate URLs must go before AutoMigrate adds the unique index
	if err := cleanupDuplicateLeads(DB); err != nil {
		return err
	}

	// Auto-migrate the schema
	err = DB.AutoMigrate(&models.Lead{})
	if err != nil {
		return err
	}

	if err := RunMigrations(DB); err != nil {
		return err
	}

	log.Println("Database migration completed")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}
