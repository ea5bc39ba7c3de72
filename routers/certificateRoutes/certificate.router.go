package certificateRoutes

import (
	controllers "lms/controllers/certificate"
	"lms/middleware"
	validators "lms/validators/certificate"

	"github.com/gofiber/fiber/v2"
)

// SetupCertificateRoutes sets up certificate issuance and lookup routes.
// Verification is public; everything else requires authentication.
func SetupCertificateRoutes(app *fiber.App) {
	certGroup := app.Group("/certificate")

	certGroup.Get("/verify/:code", controllers.VerifyCertificate)

	certGroup.Post("/issue", middleware.JWTMiddleware, validators.IssueCertificate(), controllers.IssueCertificate)
	certGroup.Get("/list", middleware.JWTMiddleware, controllers.GetUserCertificates)
	certGroup.Get("/:certificateId", middleware.JWTMiddleware, controllers.ViewCertificate)
	certGroup.Get("/:certificateId/download", middleware.JWTMiddleware, controllers.DownloadCertificate)
}
