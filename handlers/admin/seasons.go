// handlers/admin/seasons.go
package admin

import (
	"github.com/reedse/ringette-leagues2/services"

	"github.com/gofiber/fiber/v2"
)

// GetSeasons lists all seasons, newest first.
// GET /api/admin/seasons
func GetSeasons(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	seasons, err := leagueService.Seasons(user)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"seasons": seasons,
	})
}

// CreateSeason adds a season.
// POST /api/admin/seasons
func CreateSeason(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req services.SeasonInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	season, err := leagueService.CreateSeason(user, req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"season":  season,
	})
}

// UpdateSeason changes a season's name or dates.
// PUT /api/admin/seasons/:id
func UpdateSeason(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req services.SeasonInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	season, err := leagueService.UpdateSeason(user, id, req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"season":  season,
	})
}

// DeleteSeason removes a season no team or roster references.
// DELETE /api/admin/seasons/:id
func DeleteSeason(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := leagueService.DeleteSeason(user, id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Season deleted",
	})
}
