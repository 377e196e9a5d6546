// handlers/roster_test.go
package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/reedse/ringette-leagues2/database"
	"github.com/reedse/ringette-leagues2/models"
	"github.com/reedse/ringette-leagues2/notifications"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newRosterApp wires the handler graph over an in-memory database and
// returns an app whose requests run as the given admin user.
func newRosterApp(t *testing.T) *fiber.App {
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
		t.Fatal(err)
	}
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
		t.Fatalf("migrating: %v", err)
	}
	database.SeedRoles(db)

	admin := models.User{Name: "Ada Admin", Email: "ada@example.com", Password: "x"}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatal(err)
	}
	var role models.Role
	if err := db.Where("name = ?", models.RoleLeagueAdmin).First(&role).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Model(&admin).Association("Roles").Append(&role); err != nil {
		t.Fatal(err)
	}

	hub := notifications.NewHub()
	t.Cleanup(hub.Stop)
	InitHandlers(db, hub)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userId", admin.ID)
		return c.Next()
	})
	app.Get("/api/teams/:teamId/roster", GetRoster)
	return app
}

func TestGetRosterUnknownTeamIsPlainNotFound(t *testing.T) {
	app := newRosterApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/teams/42/roster", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 404 {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if success, ok := body["success"].(bool); !ok || success {
		t.Errorf("success = %v, want false", body["success"])
	}
	if _, ok := body["roster"]; ok {
		t.Error("not-found response carries a roster payload")
	}
}
