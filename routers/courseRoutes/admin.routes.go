package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up course authoring routes (ADMIN role only)
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))

	adminGroup.Post("/in-person", validators.CreateInPerson(), controllers.CreateInPersonCourse)
	adminGroup.Post("/online", validators.CreateOnline(), controllers.CreateOnlineCourse)
	adminGroup.Post("/self-paced", validators.CreateSelfPaced(), controllers.CreateSelfPacedCourse)
	adminGroup.Post("/session", validators.AddSession(), controllers.AddCourseSession)
	adminGroup.Put("/:type/:id/publish", validators.CourseDetail(), controllers.PublishCourse)
}
