package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/scriptgo/backend/internal/config"
	"github.com/scriptgo/backend/internal/handlers"
	"github.com/scriptgo/backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	scriptHandler *handlers.ScriptHandler,
	generateHandler *handlers.GenerateHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/password-reset", authHandler.RequestPasswordReset)
	auth.Post("/exchange", authHandler.ExchangeCode)

	// Protected auth routes
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Put("/auth/password", middleware.JWTProtected(cfg), authHandler.UpdatePassword)

	// Profile
	api.Get("/profile", middleware.JWTProtected(cfg), profileHandler.Get)
	api.Post("/profile/sync", middleware.JWTProtected(cfg), profileHandler.Sync)

	// Scripts CRUD + bundle operations (JWT required)
	scripts := api.Group("/scripts", middleware.JWTProtected(cfg))
	scripts.Post("/", scriptHandler.Create)
	scripts.Get("/", scriptHandler.List)
	scripts.Post("/bundle", scriptHandler.SaveBundle)
	scripts.Get("/:id", scriptHandler.Get)
	scripts.Put("/:id", scriptHandler.Update)
	scripts.Delete("/:id", scriptHandler.Delete)
	scripts.Post("/:id/star", scriptHandler.ToggleStar)
	scripts.Post("/:id/complete", scriptHandler.MarkDayComplete)
	scripts.Post("/:id/undo", scriptHandler.UndoDayComplete)
	scripts.Get("/:id/calendar", scriptHandler.Calendar)

	// Generation (JWT required)
	generate := api.Group("/generate", middleware.JWTProtected(cfg))
	generate.Post("/script", generateHandler.GenerateScript)
	generate.Post("/calendar", generateHandler.GenerateCalendar)
}
