package courseValidator

import (
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// VideoProgress validates marking a self-paced video complete
func VideoProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID uint `json:"courseId"`
			VideoID  uint `json:"videoId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["courseId"] = "Course ID is required!"
		}
		if reqData.VideoID == 0 {
			errors["videoId"] = "Video ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedVideoProgress", reqData)
		return c.Next()
	}
}

// ExamSubmit validates a video exam submission
func ExamSubmit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID uint    `json:"courseId"`
			VideoID  uint    `json:"videoId"`
			Score    float64 `json:"score"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["courseId"] = "Course ID is required!"
		}
		if reqData.VideoID == 0 {
			errors["videoId"] = "Video ID is required!"
		}
		if reqData.Score < 0 || reqData.Score > 100 {
			errors["score"] = "Score must be between 0 and 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedExamSubmit", reqData)
		return c.Next()
	}
}

// Attendance validates a session attendance record
func Attendance() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID   uint   `json:"courseId"`
			CourseType string `json:"courseType"`
			SessionID  uint   `json:"sessionId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["courseId"] = "Course ID is required!"
		}
		if reqData.SessionID == 0 {
			errors["sessionId"] = "Session ID is required!"
		}
		if reqData.CourseType != courseModels.TypeInPerson && reqData.CourseType != courseModels.TypeOnlineLive {
			errors["courseType"] = "Attendance applies to IN_PERSON or ONLINE_LIVE courses!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAttendance", reqData)
		return c.Next()
	}
}

// Assessment validates an assessment score submission
func Assessment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID   uint    `json:"courseId"`
			CourseType string  `json:"courseType"`
			Score      float64 `json:"score"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["courseId"] = "Course ID is required!"
		}
		if reqData.CourseType != courseModels.TypeInPerson && reqData.CourseType != courseModels.TypeOnlineLive {
			errors["courseType"] = "Assessments apply to IN_PERSON or ONLINE_LIVE courses!"
		}
		if reqData.Score < 0 || reqData.Score > 100 {
			errors["score"] = "Score must be between 0 and 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssessment", reqData)
		return c.Next()
	}
}
