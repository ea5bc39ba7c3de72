package paymentRoutes

import (
	controllers "lms/controllers/payment"
	"lms/middleware"
	validators "lms/validators/payment"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes sets up payment confirmation and history routes
func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payment", middleware.JWTMiddleware)

	paymentGroup.Post("/confirm", validators.ConfirmPayment(), controllers.ConfirmPayment)
	paymentGroup.Get("/history", validators.PaymentHistory(), controllers.GetPaymentHistory)
}
