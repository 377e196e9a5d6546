// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"github.com/reedse/ringette-leagues2/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Association{},
		&models.League{},
		&models.Season{},
		&models.Team{},
		&models.Player{},
		&models.RosterEntry{},
		&models.Game{},
		&models.PlayerGameStat{},
		&models.PenaltyCode{},
		&models.GamePenalty{},
		&models.Clip{},
		&models.ClipShare{},
		&models.Subscription{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	log.Println("✅ Migrations completed")

	createIndexes()
	SeedRoles(db)
	SeedPenaltyCodes(db)

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes GORM tags do not cover
func createIndexes() {
	db := GetDB()
	log.Println("Creating indexes...")

	// Game lookups by either side of the matchup
	db.Exec("CREATE INDEX IF NOT EXISTS idx_games_home_team ON games(home_team_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_games_away_team ON games(away_team_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_games_datetime ON games(game_date_time)")

	// Roster lookups from both directions
	db.Exec("CREATE INDEX IF NOT EXISTS idx_roster_entries_team_season ON roster_entries(team_id, season_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_roster_entries_player ON roster_entries(player_id)")

	// Clip feeds
	db.Exec("CREATE INDEX IF NOT EXISTS idx_clips_coach ON clips(coach_user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_clips_game ON clips(game_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_clip_player_player ON clip_player(player_id)")

	// Entitlement checks
	db.Exec("CREATE INDEX IF NOT EXISTS idx_subscriptions_user_status ON subscriptions(user_id, status)")

	log.Println("✅ Indexes created successfully")
}
