// handlers/player.go - Player self-service surfaces
package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// GetMySchedule lists the caller's games split into upcoming and past.
// GET /api/me/schedule
func GetMySchedule(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	sched, err := playerService.Schedule(user)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"schedule": sched,
	})
}

// GetMyTeams lists the teams the caller is rostered on.
// GET /api/me/teams
func GetMyTeams(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	teams, err := playerService.Teams(user)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"teams":   teams,
	})
}

// GetMyStats returns the caller's raw stat lines.
// GET /api/me/stats
func GetMyStats(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	stats, err := playerService.AllStats(user)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"stats":   stats,
	})
}

// GetMySeasonStats sums the caller's numbers for one season.
// GET /api/me/stats/season/:seasonId
func GetMySeasonStats(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	seasonID, err := parseID(c, "seasonId")
	if err != nil {
		return err
	}

	summary, err := playerService.SeasonStats(user, seasonID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"summary": summary,
	})
}

// GetTeammates lists a team's roster from the player side.
// GET /api/me/teams/:teamId/roster?season_id=N
func GetTeammates(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	teamID, err := parseID(c, "teamId")
	if err != nil {
		return err
	}
	seasonID, err := resolveSeasonID(c, teamID)
	if err != nil {
		return serviceError(c, err)
	}

	entries, err := playerService.Teammates(user, teamID, seasonID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"roster":  entries,
	})
}

// GetDashboard returns the role-specific landing payload.
// GET /api/dashboard
func GetDashboard(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	payload, err := dashboardService.Dashboard(user)
	if err != nil {
		return serviceError(c, err)
	}
	payload["success"] = true
	return c.JSON(payload)
}
