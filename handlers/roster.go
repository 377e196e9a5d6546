// handlers/roster.go - Coach roster management
package handlers

import (
	"strconv"
	"strings"

	"github.com/reedse/ringette-leagues2/services"

	"github.com/gofiber/fiber/v2"
)

// GetRoster lists the roster for a team and season.
// GET /api/teams/:teamId/roster?season_id=N
func GetRoster(c *fiber.Ctx) error {
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

	entries, err := rosterService.Roster(user, teamID, seasonID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"season_id": seasonID,
		"roster":    entries,
	})
}

// AddPlayerToRoster rosters an existing player.
// POST /api/teams/:teamId/roster
func AddPlayerToRoster(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	teamID, err := parseID(c, "teamId")
	if err != nil {
		return err
	}

	var req struct {
		PlayerID uint `json:"player_id"`
		SeasonID uint `json:"season_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}
	seasonID := req.SeasonID
	if seasonID == 0 {
		if seasonID, err = resolveSeasonID(c, teamID); err != nil {
			return serviceError(c, err)
		}
	}

	if err := rosterService.AddPlayer(user, teamID, seasonID, req.PlayerID); err != nil {
		return serviceError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Player added to roster",
	})
}

// RemovePlayerFromRoster drops a player for a season.
// DELETE /api/teams/:teamId/roster/:playerId?season_id=N
func RemovePlayerFromRoster(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	teamID, err := parseID(c, "teamId")
	if err != nil {
		return err
	}
	playerID, err := parseID(c, "playerId")
	if err != nil {
		return err
	}
	seasonID, err := resolveSeasonID(c, teamID)
	if err != nil {
		return serviceError(c, err)
	}

	if err := rosterService.RemovePlayer(user, teamID, seasonID, playerID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Player removed from roster",
	})
}

// CreateRosterPlayer creates an unlinked player and rosters them.
// POST /api/teams/:teamId/roster/players
func CreateRosterPlayer(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	teamID, err := parseID(c, "teamId")
	if err != nil {
		return err
	}

	var req struct {
		services.PlayerInput
		SeasonID uint `json:"season_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}
	seasonID := req.SeasonID
	if seasonID == 0 {
		if seasonID, err = resolveSeasonID(c, teamID); err != nil {
			return serviceError(c, err)
		}
	}

	player, err := rosterService.CreatePlayer(user, teamID, seasonID, req.PlayerInput)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"player":  player,
	})
}

// SearchPlayers finds players for the roster builder.
// GET /api/players/search?q=...&exclude=1,2,3
func SearchPlayers(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	query := c.Query("q", "")
	var exclude []uint
	if raw := c.Query("exclude", ""); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if id, convErr := strconv.ParseUint(strings.TrimSpace(part), 10, 32); convErr == nil {
				exclude = append(exclude, uint(id))
			}
		}
	}

	players, err := rosterService.SearchPlayers(user, query, exclude, c.QueryInt("limit", 10))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"players": players,
	})
}

// resolveSeasonID reads season_id from the query, defaulting to the
// team's current season. Failures come back as service errors for the
// caller to map; writing the response here would let the handler keep
// going with a zero season.
func resolveSeasonID(c *fiber.Ctx, teamID uint) (uint, error) {
	if seasonID := c.QueryInt("season_id", 0); seasonID > 0 {
		return uint(seasonID), nil
	}
	return rosterService.CurrentSeasonID(teamID)
}
