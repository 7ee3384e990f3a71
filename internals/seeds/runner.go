package seeds

import (
	"log"

	"gorm.io/gorm"
)

// RunAllSeeds loads the demo dataset. Controlled by SEED_DEMO=true; a
// non-empty users table means the database is live and seeding is skipped.
func RunAllSeeds(db *gorm.DB) {
	var count int64
	if err := db.Table("users").Count(&count).Error; err != nil {
		log.Printf("[ERROR] seed pre-check failed: %v", err)
		return
	}
	if count > 0 {
		log.Println("⚠️ Users table not empty, skipping demo seeds")
		return
	}

	if err := SeedDemoData(db); err != nil {
		log.Printf("[ERROR] demo seeding failed: %v", err)
		return
	}
	log.Println("✅ Demo data seeded")
}
