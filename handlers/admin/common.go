// handlers/admin/common.go - League administration wiring
package admin

import (
	"errors"

	"github.com/reedse/ringette-leagues2/middleware"
	"github.com/reedse/ringette-leagues2/models"
	"github.com/reedse/ringette-leagues2/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	authzService  *services.AuthzService
	leagueService *services.LeagueService
)

// Init builds the services the admin handlers share.
func Init(db *gorm.DB) {
	if db == nil {
		panic("Database not initialized before admin.Init")
	}
	authzService = services.NewAuthzService(db, services.NewSubscriptionEntitlements(db))
	leagueService = services.NewLeagueService(db, authzService)
}

func currentUser(c *fiber.Ctx) (*models.User, error) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return nil, err
	}
	user, err := authzService.Subject(userID)
	if err != nil {
		return nil, fiber.NewError(401, "User not found")
	}
	return user, nil
}

func serviceError(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return c.Status(422).JSON(fiber.Map{
			"success": false,
			"error":   "Validation failed",
			"fields":  verr.Fields,
		})
	}
	switch {
	case errors.Is(err, services.ErrForbidden):
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"error":   "Access denied",
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"error":   "Not found",
		})
	case errors.Is(err, services.ErrConflict):
		return c.Status(409).JSON(fiber.Map{
			"success": false,
			"error":   "Cannot complete: dependent records exist or the name is taken",
		})
	default:
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Internal server error",
		})
	}
}

func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(400, "Invalid "+name)
	}
	return uint(id), nil
}
