package database

import (
	"log"

	"gorm.io/gorm"
)

// cleanupDuplicateLeads removes duplicate lead rows before the unique URL
// constraint is added. This runs BEFORE AutoMigrate to prevent constraint
// violations on databases written by older builds that allowed repeats.
func cleanupDuplicateLeads(db *gorm.DB) error {
	// Check if the table exists
	if !db.Migrator().HasTable("leads") {
		return nil // No table, no duplicates to clean
	}

	// Find and remove duplicates, keeping the most recently updated row
	result := db.Exec(`
		DELETE FROM leads
		WHERE id NOT IN (
			SELECT id FROM (
				SELECT id, MAX(updated_at)
				FROM leads
				GROUP BY url
			)
		)
	`)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		log.Printf("Cleaned up %d duplicate lead entries", result.RowsAffected)
	}

	return nil
}

// RunMigrations runs any custom data migrations after schema changes
func RunMigrations(db *gorm.DB) error {
	return migrateRecommendationField(db)
}

// migrateRecommendationField normalizes legacy recommendation values to the
// BUY/PASS vocabulary. Safe to run multiple times.
func migrateRecommendationField(db *gorm.DB) error {
	if !db.Migrator().HasColumn("leads", "recommendation") {
		return nil
	}

	result := db.Exec(`
		UPDATE leads
		SET recommendation = UPPER(recommendation)
		WHERE recommendation != '' AND recommendation != UPPER(recommendation)
	`)
	if result.Error != nil {
		log.Printf("Warning: failed to normalize lead recommendations: %v", result.Error)
		return nil
	}

	if result.RowsAffected > 0 {
		log.Printf("Normalized %d lead recommendation values", result.RowsAffected)
	}
	return nil
}
