// handlers/games.go - Game scheduling, stats, and penalties
package handlers

import (
	"github.com/reedse/ringette-leagues2/services"

	"github.com/gofiber/fiber/v2"
)

// CreateGame schedules a game for a team.
// POST /api/teams/:teamId/games
func CreateGame(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	teamID, err := parseID(c, "teamId")
	if err != nil {
		return err
	}

	var req services.GameInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	game, err := gameService.CreateGame(user, teamID, req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"game":    game,
	})
}

// GetGame returns one game with stat lines and penalties.
// GET /api/games/:id
func GetGame(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	gameID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	game, err := gameService.Game(user, gameID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"game":    game,
	})
}

// GetTeamGames lists a team's schedule.
// GET /api/teams/:teamId/games
func GetTeamGames(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	teamID, err := parseID(c, "teamId")
	if err != nil {
		return err
	}

	games, err := gameService.GamesForTeam(user, teamID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"games":   games,
	})
}

// UpdateGame changes schedule details, status, or scores.
// PUT /api/games/:id
func UpdateGame(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	gameID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req services.GameUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	game, err := gameService.UpdateGame(user, gameID, req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"game":    game,
	})
}

// DeleteGame removes a game and its sheets.
// DELETE /api/games/:id
func DeleteGame(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	gameID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := gameService.DeleteGame(user, gameID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Game deleted",
	})
}

// SaveGameStats upserts the per-player stat sheet.
// PUT /api/games/:id/stats
func SaveGameStats(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	gameID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Lines []services.StatLineInput `json:"lines"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if err := gameService.SaveStats(user, gameID, req.Lines); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Stats saved",
	})
}

// SaveGamePenalties replaces the penalty sheet.
// PUT /api/games/:id/penalties
func SaveGamePenalties(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	gameID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Penalties []services.PenaltyInput `json:"penalties"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if err := gameService.SavePenalties(user, gameID, req.Penalties); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Penalties saved",
	})
}

// GetPenaltyCodes lists rulebook codes for penalty entry.
// GET /api/penalty-codes
func GetPenaltyCodes(c *fiber.Ctx) error {
	codes, err := gameService.PenaltyCodes()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"codes":   codes,
	})
}
