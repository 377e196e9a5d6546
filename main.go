package main

import (
	"log"
	"os"
	"time"

	"github.com/reedse/ringette-leagues2/database"
	"github.com/reedse/ringette-leagues2/handlers"
	"github.com/reedse/ringette-leagues2/handlers/admin"
	"github.com/reedse/ringette-leagues2/middleware"
	"github.com/reedse/ringette-leagues2/models"
	"github.com/reedse/ringette-leagues2/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	validateEnvironment()

	// Initialize database
	database.InitDB()
	defer database.CloseDB()

	// Notification hub for clip-shared pushes
	hub := notifications.NewHub()
	defer hub.Stop()

	// Wire handler packages
	handlers.InitHandlers(database.GetDB(), hub)
	admin.Init(database.GetDB())

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// API Routes
	api := app.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/register", handlers.Register)
	authGroup.Post("/login", handlers.Login)
	authGroup.Get("/me", middleware.AuthMiddleware, handlers.Me)

	// Dashboard
	api.Get("/dashboard", middleware.AuthMiddleware, handlers.GetDashboard)

	// Reference data
	api.Get("/penalty-codes", middleware.AuthMiddleware, handlers.GetPenaltyCodes)

	// Team routes (roster + schedule, coach or admin)
	teamGroup := api.Group("/teams")
	teamGroup.Use(middleware.AuthMiddleware)
	teamGroup.Get("/:teamId/roster", handlers.GetRoster)
	teamGroup.Post("/:teamId/roster", handlers.AddPlayerToRoster)
	teamGroup.Post("/:teamId/roster/players", handlers.CreateRosterPlayer)
	teamGroup.Delete("/:teamId/roster/:playerId", handlers.RemovePlayerFromRoster)
	teamGroup.Get("/:teamId/games", handlers.GetTeamGames)
	teamGroup.Post("/:teamId/games", handlers.CreateGame)

	// Player search for roster building
	api.Get("/players/search", middleware.AuthMiddleware,
		middleware.RequireRole(models.RoleLeagueAdmin, models.RoleCoach),
		handlers.SearchPlayers)

	// Game routes
	gameGroup := api.Group("/games")
	gameGroup.Use(middleware.AuthMiddleware)
	gameGroup.Get("/:id", handlers.GetGame)
	gameGroup.Put("/:id", handlers.UpdateGame)
	gameGroup.Delete("/:id", handlers.DeleteGame)
	gameGroup.Put("/:id/stats", handlers.SaveGameStats)
	gameGroup.Put("/:id/penalties", handlers.SaveGamePenalties)

	// Clip routes
	clipGroup := api.Group("/clips")
	clipGroup.Use(middleware.AuthMiddleware)
	clipGroup.Get("/", handlers.ListClips)
	clipGroup.Post("/", handlers.CreateClip)
	clipGroup.Get("/:id", handlers.GetClip)
	clipGroup.Put("/:id", handlers.UpdateClip)
	clipGroup.Delete("/:id", handlers.DeleteClip)
	clipGroup.Get("/:id/shares", handlers.GetClipShares)

	// Player self-service routes
	meGroup := api.Group("/me")
	meGroup.Use(middleware.AuthMiddleware)
	meGroup.Get("/schedule", handlers.GetMySchedule)
	meGroup.Get("/teams", handlers.GetMyTeams)
	meGroup.Get("/teams/:teamId/roster", handlers.GetTeammates)
	meGroup.Get("/stats", handlers.GetMyStats)
	meGroup.Get("/stats/season/:seasonId", handlers.GetMySeasonStats)

	// Admin routes
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthMiddleware)
	adminGroup.Use(middleware.RequireRole(models.RoleLeagueAdmin))
	adminGroup.Get("/associations", admin.GetAssociations)
	adminGroup.Post("/associations", admin.CreateAssociation)
	adminGroup.Put("/associations/:id", admin.UpdateAssociation)
	adminGroup.Delete("/associations/:id", admin.DeleteAssociation)
	adminGroup.Get("/leagues", admin.GetLeagues)
	adminGroup.Post("/leagues", admin.CreateLeague)
	adminGroup.Put("/leagues/:id", admin.UpdateLeague)
	adminGroup.Delete("/leagues/:id", admin.DeleteLeague)
	adminGroup.Get("/seasons", admin.GetSeasons)
	adminGroup.Post("/seasons", admin.CreateSeason)
	adminGroup.Put("/seasons/:id", admin.UpdateSeason)
	adminGroup.Delete("/seasons/:id", admin.DeleteSeason)
	adminGroup.Get("/teams", admin.GetTeams)
	adminGroup.Post("/teams", admin.CreateTeam)
	adminGroup.Put("/teams/:id", admin.UpdateTeam)
	adminGroup.Delete("/teams/:id", admin.DeleteTeam)
	adminGroup.Put("/coaches/:userId/team", admin.AssignCoach)

	// Notification stream
	app.Use("/ws", handlers.WebSocketUpgrade)
	app.Get("/ws/notifications", middleware.WebSocketAuthMiddleware, handlers.NotificationSocket())

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 HTTP server starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("🔐 JWT Secret configured: %v", os.Getenv("JWT_SECRET") != "")
	log.Printf("🌐 Notifications available at ws://localhost:%s/ws/notifications", port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
