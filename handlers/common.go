// handlers/common.go - Handler wiring and shared helpers
package handlers

import (
	"errors"

	"github.com/reedse/ringette-leagues2/middleware"
	"github.com/reedse/ringette-leagues2/models"
	"github.com/reedse/ringette-leagues2/notifications"
	"github.com/reedse/ringette-leagues2/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	authzService     *services.AuthzService
	accountService   *services.AccountService
	rosterService    *services.RosterService
	gameService      *services.GameService
	clipService      *services.ClipService
	playerService    *services.PlayerService
	dashboardService *services.DashboardService
	notificationHub  *notifications.Hub
)

// InitHandlers builds the service graph the handler functions share.
func InitHandlers(db *gorm.DB, hub *notifications.Hub) {
	if db == nil {
		panic("Database not initialized before InitHandlers")
	}
	notificationHub = hub
	entitlements := services.NewSubscriptionEntitlements(db)
	authzService = services.NewAuthzService(db, entitlements)
	rosterService = services.NewRosterService(db, authzService)
	accountService = services.NewAccountService(db, rosterService)
	gameService = services.NewGameService(db, authzService)
	clipStore := services.NewClipStore(db)
	clipService = services.NewClipService(db, clipStore, authzService, hub)
	playerService = services.NewPlayerService(db, authzService)
	dashboardService = services.NewDashboardService(db, clipStore)
}

// currentUser loads the authenticated user with roles and player
// profile attached.
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

// serviceError maps service-layer failures onto HTTP responses.
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
			"error":   "Conflict with existing data",
		})
	case errors.Is(err, services.ErrSchemaMismatch):
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
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
