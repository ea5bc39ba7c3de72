package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up catalog browsing and progress-tracking routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalog listings (published active courses)
	courseGroup.Get("/in-person/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetInPersonCourses)
	courseGroup.Get("/online/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetOnlineCourses)
	courseGroup.Get("/self-paced/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetSelfPacedCourses)

	// Course details incl. sessions or videos
	courseGroup.Get("/:type/:id", middleware.JWTMiddleware, validators.CourseDetail(), controllers.GetCourseDetails)

	// Progress tracking
	courseGroup.Post("/video/complete", middleware.JWTMiddleware, validators.VideoProgress(), controllers.MarkVideoComplete)
	courseGroup.Post("/exam/submit", middleware.JWTMiddleware, validators.ExamSubmit(), controllers.SubmitVideoExam)
	courseGroup.Post("/attendance", middleware.JWTMiddleware, validators.Attendance(), controllers.MarkSessionAttendance)
	courseGroup.Post("/assessment", middleware.JWTMiddleware, validators.Assessment(), controllers.SubmitAssessment)

	// User enrollments
	app.Get("/user/enrollments", middleware.JWTMiddleware, controllers.GetMyEnrollments)
}
