package authRoutes

import (
	controllers "lms/controllers/auth"
	"lms/middleware"
	validators "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up signup/login/profile routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", validators.Signup(), controllers.Signup)
	authGroup.Post("/login", validators.Login(), controllers.Login)
	authGroup.Get("/profile", middleware.JWTMiddleware, controllers.GetProfile)
}
