package courseValidator

import (
	"lms/middleware"
	courseModels "lms/models/course"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// courseTypeFromPath maps the URL segment onto the catalog discriminator
func courseTypeFromPath(segment string) (string, bool) {
	switch segment {
	case "in-person":
		return courseModels.TypeInPerson, true
	case "online":
		return courseModels.TypeOnlineLive, true
	case "self-paced":
		return courseModels.TypeSelfPaced, true
	}
	return "", false
}

// CourseList validates pagination/search query parameters
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page   *int    `json:"page"`
			Limit  *int    `json:"limit"`
			Search *string `json:"search"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page == nil || *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit == nil || *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseList", reqData)
		return c.Next()
	}
}

// CourseDetail validates the :type/:id path parameters
func CourseDetail() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseType, ok := courseTypeFromPath(c.Params("type"))
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course type!", nil)
		}

		courseIDStr := strings.TrimSpace(c.Params("id"))
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseType", courseType)
		c.Locals("courseID", courseID)
		return c.Next()
	}
}
