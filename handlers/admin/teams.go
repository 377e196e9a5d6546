// handlers/admin/teams.go
package admin

import (
	"github.com/reedse/ringette-leagues2/services"

	"github.com/gofiber/fiber/v2"
)

// GetTeams lists all teams with league context.
// GET /api/admin/teams
func GetTeams(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	teams, err := leagueService.Teams(user)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"teams":   teams,
	})
}

// CreateTeam adds a team to a league and season.
// POST /api/admin/teams
func CreateTeam(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req services.TeamInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	team, err := leagueService.CreateTeam(user, req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"team":    team,
	})
}

// UpdateTeam changes a team's name or placement.
// PUT /api/admin/teams/:id
func UpdateTeam(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req services.TeamInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	team, err := leagueService.UpdateTeam(user, id, req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"team":    team,
	})
}

// DeleteTeam removes a team with no roster entries or games.
// DELETE /api/admin/teams/:id
func DeleteTeam(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := leagueService.DeleteTeam(user, id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Team deleted",
	})
}

// AssignCoach points a coach at a team, or clears the assignment when
// team_id is 0.
// PUT /api/admin/coaches/:userId/team
func AssignCoach(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	coachID, err := parseID(c, "userId")
	if err != nil {
		return err
	}

	var req struct {
		TeamID uint `json:"team_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if err := leagueService.AssignCoach(user, coachID, req.TeamID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Coach assignment updated",
	})
}
