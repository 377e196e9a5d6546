// services/service_test.go - Shared test fixtures
package services

import (
	"testing"
	"time"

	"github.com/reedse/ringette-leagues2/database"
	"github.com/reedse/ringette-leagues2/models"
	"github.com/reedse/ringette-leagues2/notifications"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("getting sql.DB: %v", err)
	}
	// A single connection keeps the in-memory database alive for the
	// whole test.
	sqlDB.SetMaxOpenConns(1)

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
		t.Fatalf("migrating test database: %v", err)
	}
	database.SeedRoles(db)
	database.SeedPenaltyCodes(db)
	return db
}

func makeUser(t *testing.T, db *gorm.DB, name, email, roleName string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, Password: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("creating user %s: %v", email, err)
	}
	var role models.Role
	if err := db.Where("name = ?", roleName).First(&role).Error; err != nil {
		t.Fatalf("loading role %s: %v", roleName, err)
	}
	if err := db.Model(user).Association("Roles").Append(&role); err != nil {
		t.Fatalf("attaching role: %v", err)
	}
	user.Roles = []models.Role{role}
	return user
}

func makeCoach(t *testing.T, db *gorm.DB, email string, teamID uint) *models.User {
	t.Helper()
	coach := makeUser(t, db, "Coach "+email, email, models.RoleCoach)
	if err := db.Model(coach).Update("managed_team_id", teamID).Error; err != nil {
		t.Fatalf("assigning coach team: %v", err)
	}
	coach.ManagedTeamID = &teamID
	return coach
}

// structure holds the minimal league hierarchy most tests need.
type structure struct {
	Assoc  models.Association
	League models.League
	Season models.Season
	Team   models.Team
	Rival  models.Team
}

func makeStructure(t *testing.T, db *gorm.DB) structure {
	t.Helper()
	s := structure{}
	s.Assoc = models.Association{Name: "Eastern Ringette Association"}
	if err := db.Create(&s.Assoc).Error; err != nil {
		t.Fatalf("creating association: %v", err)
	}
	s.League = models.League{Name: "U16 AA", AssociationID: s.Assoc.ID}
	if err := db.Create(&s.League).Error; err != nil {
		t.Fatalf("creating league: %v", err)
	}
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)
	s.Season = models.Season{Name: "2025-2026", LeagueID: s.League.ID, StartDate: &start, EndDate: &end}
	if err := db.Create(&s.Season).Error; err != nil {
		t.Fatalf("creating season: %v", err)
	}
	s.Team = models.Team{
		Name:          "Thunder",
		AssociationID: s.Assoc.ID,
		LeagueID:      s.League.ID,
		SeasonID:      s.Season.ID,
	}
	if err := db.Create(&s.Team).Error; err != nil {
		t.Fatalf("creating team: %v", err)
	}
	s.Rival = models.Team{
		Name:          "Ice Hawks",
		AssociationID: s.Assoc.ID,
		LeagueID:      s.League.ID,
		SeasonID:      s.Season.ID,
	}
	if err := db.Create(&s.Rival).Error; err != nil {
		t.Fatalf("creating rival team: %v", err)
	}
	return s
}

func makeRosteredPlayer(t *testing.T, db *gorm.DB, s structure, first, jersey string, userID *uint) *models.Player {
	t.Helper()
	player := &models.Player{
		UserID:       userID,
		FirstName:    first,
		LastName:     "Tester",
		JerseyNumber: jersey,
	}
	if err := db.Create(player).Error; err != nil {
		t.Fatalf("creating player: %v", err)
	}
	entry := &models.RosterEntry{PlayerID: player.ID, TeamID: s.Team.ID, SeasonID: s.Season.ID}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("rostering player: %v", err)
	}
	return player
}

func makeGame(t *testing.T, db *gorm.DB, s structure, videoURL string) *models.Game {
	t.Helper()
	game := &models.Game{
		SeasonID:     s.Season.ID,
		LeagueID:     s.League.ID,
		HomeTeamID:   s.Team.ID,
		AwayTeamID:   s.Rival.ID,
		GameDateTime: time.Date(2026, 1, 10, 19, 0, 0, 0, time.UTC),
		Status:       models.GameStatusCompleted,
		VideoURL:     videoURL,
	}
	if err := db.Create(game).Error; err != nil {
		t.Fatalf("creating game: %v", err)
	}
	return game
}

func activateClips(t *testing.T, db *gorm.DB, userID uint) {
	t.Helper()
	sub := &models.Subscription{
		UserID: userID,
		Type:   models.FeatureClips,
		Status: models.SubscriptionStatusActive,
	}
	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("creating subscription: %v", err)
	}
}

// alwaysEntitled short-circuits subscription checks in tests that are
// not about entitlements.
type alwaysEntitled struct{}

func (alwaysEntitled) IsEntitled(uint, string) bool { return true }

// recordingNotifier captures clip-shared events so tests can assert on
// who would have been notified.
type recordingNotifier struct {
	events []notifications.ClipSharedEvent
}

func (n *recordingNotifier) ClipShared(event notifications.ClipSharedEvent) {
	n.events = append(n.events, event)
}

func (n *recordingNotifier) recipients() []uint {
	ids := make([]uint, len(n.events))
	for i, e := range n.events {
		ids[i] = e.RecipientID
	}
	return ids
}
