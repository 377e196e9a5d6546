// handlers/admin/leagues.go
package admin

import (
	"github.com/reedse/ringette-leagues2/services"

	"github.com/gofiber/fiber/v2"
)

// GetLeagues lists all leagues with their associations.
// GET /api/admin/leagues
func GetLeagues(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	leagues, err := leagueService.Leagues(user)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"leagues": leagues,
	})
}

// CreateLeague adds a league under an association.
// POST /api/admin/leagues
func CreateLeague(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req services.LeagueInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	league, err := leagueService.CreateLeague(user, req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"league":  league,
	})
}

// UpdateLeague changes a league's name or association.
// PUT /api/admin/leagues/:id
func UpdateLeague(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req services.LeagueInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	league, err := leagueService.UpdateLeague(user, id, req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"league":  league,
	})
}

// DeleteLeague removes a league with no teams.
// DELETE /api/admin/leagues/:id
func DeleteLeague(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := leagueService.DeleteLeague(user, id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "League deleted",
	})
}
