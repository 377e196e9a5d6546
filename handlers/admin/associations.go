// handlers/admin/associations.go
package admin

import (
	"github.com/gofiber/fiber/v2"
)

// GetAssociations lists all associations.
// GET /api/admin/associations
func GetAssociations(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	assocs, err := leagueService.Associations(user)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"associations": assocs,
	})
}

// CreateAssociation adds an association.
// POST /api/admin/associations
func CreateAssociation(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	assoc, err := leagueService.CreateAssociation(user, req.Name)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"success":     true,
		"association": assoc,
	})
}

// UpdateAssociation renames an association.
// PUT /api/admin/associations/:id
func UpdateAssociation(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	assoc, err := leagueService.UpdateAssociation(user, id, req.Name)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"association": assoc,
	})
}

// DeleteAssociation removes an association with no leagues.
// DELETE /api/admin/associations/:id
func DeleteAssociation(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := leagueService.DeleteAssociation(user, id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Association deleted",
	})
}
