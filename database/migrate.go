// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"apexfit/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.Athlete{},
		&models.Domain{},
		&models.Equipment{},
		&models.Gym{},
		&models.GymMember{},
		&models.Division{},
		&models.Challenge{},
		&models.ChallengeDomain{},
		&models.Grade{},
		&models.ActivityConstraints{},
		&models.Submission{},
		&models.AthleteDomainXP{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes beyond what the model tags declare
func createIndexes() {
	db := GetDB()
	log.Println("Creating indexes...")

	// Catalog ordering and search
	db.Exec("CREATE INDEX IF NOT EXISTS idx_challenges_name ON challenges(name ASC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_challenges_active_gym ON challenges(is_active, gym_id)")

	// Eligibility lookups
	db.Exec("CREATE INDEX IF NOT EXISTS idx_gym_members_athlete_active ON gym_members(athlete_id, is_active)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_divisions_sort ON divisions(sort_order ASC)")

	// Grading lookups
	db.Exec("CREATE INDEX IF NOT EXISTS idx_grades_challenge_division ON grades(challenge_id, division_id)")

	// Completed-partition probe
	db.Exec("CREATE INDEX IF NOT EXISTS idx_submissions_athlete_status ON submissions(athlete_id, status)")

	// Leaderboards
	db.Exec("CREATE INDEX IF NOT EXISTS idx_athletes_total_xp ON athletes(total_xp DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_athlete_domain_xp_domain ON athlete_domain_xp(domain_id, xp DESC)")

	log.Println("✅ Indexes created successfully")
}
