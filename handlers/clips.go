// handlers/clips.go - Coach clip sharing
package handlers

import (
	"errors"

	"github.com/reedse/ringette-leagues2/services"

	"github.com/gofiber/fiber/v2"
)

// CreateClip creates a clip and shares it with players. Some shares can
// fail while others land; the response reports both sides.
// POST /api/clips
func CreateClip(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req services.ClipInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	clip, partial, err := clipService.CreateClip(user, req)
	if err != nil {
		if errors.Is(err, services.ErrAllSharesFailed) {
			return c.Status(422).JSON(fiber.Map{
				"success": false,
				"error":   "Clip could not be shared with any player",
				"details": err.Error(),
			})
		}
		return serviceError(c, err)
	}

	resp := fiber.Map{
		"success": true,
		"clip":    clip,
	}
	if partial != nil {
		resp["share_failures"] = partial.Items
	}
	return c.Status(201).JSON(resp)
}

// UpdateClip rewrites a clip's details and its share list.
// PUT /api/clips/:id
func UpdateClip(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	clipID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req services.ClipInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	clip, partial, err := clipService.UpdateClip(user, clipID, req)
	if err != nil {
		if errors.Is(err, services.ErrAllSharesFailed) {
			// The clip kept its new details; only the share list is empty.
			return c.Status(422).JSON(fiber.Map{
				"success": false,
				"error":   "Updated clip could not be shared with any player",
				"clip":    clip,
				"details": err.Error(),
			})
		}
		return serviceError(c, err)
	}

	resp := fiber.Map{
		"success": true,
		"clip":    clip,
	}
	if partial != nil {
		resp["share_failures"] = partial.Items
	}
	return c.JSON(resp)
}

// DeleteClip removes a clip and its shares.
// DELETE /api/clips/:id
func DeleteClip(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	clipID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := clipService.DeleteClip(user, clipID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Clip deleted",
	})
}

// GetClip returns one clip for anyone allowed to see it.
// GET /api/clips/:id
func GetClip(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	clipID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	clip, err := clipService.GetClip(user, clipID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"clip":    clip,
	})
}

// ListClips returns the clip feed for the caller's role.
// GET /api/clips
func ListClips(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	clips, err := clipService.ListClips(user)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"clips":   clips,
		"total":   len(clips),
	})
}

// GetClipShares lists who a clip was shared with.
// GET /api/clips/:id/shares
func GetClipShares(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	clipID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	shares, err := clipService.SharesForClip(user, clipID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"shares":  shares,
	})
}
