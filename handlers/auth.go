// handlers/auth.go
package handlers

import (
	"time"

	"jobtorget-backend/middleware"
	"jobtorget-backend/models"
	"jobtorget-backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func SetupAuthRoutes(app *fiber.App, authService *services.AuthService, secret []byte) {
	// Brute-force protection on the credential endpoints only
	loginLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, slow down"})
		},
	})

	app.Post("/auth/register", loginLimiter, authService.Register)
	app.Post("/auth/login", loginLimiter, authService.Login)
	app.Post("/auth/logout", authService.Logout)

	// 🔐 Coach only: activates pending accounts
	secured := app.Group("/auth", middleware.Authenticate(secret))
	secured.Post("/approve/:id", middleware.RequireRole(models.RoleCoach), authService.Approve)
}
