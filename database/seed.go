// database/seed.go - Reference data the app cannot run without
package database

import (
	"log"

	"github.com/reedse/ringette-leagues2/models"

	"gorm.io/gorm"
)

// SeedRoles makes sure the three role rows exist. Registration and the
// permission checks look roles up by name.
func SeedRoles(db *gorm.DB) {
	for _, name := range []string{models.RoleLeagueAdmin, models.RoleCoach, models.RolePlayer} {
		var role models.Role
		err := db.Where("name = ?", name).First(&role).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&models.Role{Name: name}).Error; err != nil {
				log.Printf("Failed to seed role %s: %v", name, err)
			}
		}
	}
}

// SeedPenaltyCodes loads the rulebook infractions used on penalty
// sheets. Existing codes are left alone so league-specific edits
// survive restarts.
func SeedPenaltyCodes(db *gorm.DB) {
	codes := []models.PenaltyCode{
		{Code: "TRIP", Name: "Tripping", DefaultMinutes: 2},
		{Code: "HOOK", Name: "Hooking", DefaultMinutes: 2},
		{Code: "SLASH", Name: "Slashing", DefaultMinutes: 2},
		{Code: "HOLD", Name: "Holding", DefaultMinutes: 2},
		{Code: "INT", Name: "Interference", DefaultMinutes: 2},
		{Code: "BODY", Name: "Body Contact", DefaultMinutes: 2},
		{Code: "CROSS", Name: "Cross Checking", DefaultMinutes: 2},
		{Code: "DELAY", Name: "Delay of Game", DefaultMinutes: 2},
		{Code: "ROUGH", Name: "Roughing", DefaultMinutes: 4},
		{Code: "MISC", Name: "Misconduct", DefaultMinutes: 10},
	}
	for _, code := range codes {
		var existing models.PenaltyCode
		err := db.Where("code = ?", code.Code).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&code).Error; err != nil {
				log.Printf("Failed to seed penalty code %s: %v", code.Code, err)
			}
		}
	}
}
