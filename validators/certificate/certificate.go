package certificateValidator

import (
	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// IssueCertificate validates the certificate issue request body
func IssueCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID   uint   `json:"courseId" validate:"required,gt=0"`
			CourseType string `json:"courseType" validate:"required,oneof=IN_PERSON ONLINE_LIVE SELF_PACED"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "CourseID":
					errors["courseId"] = "Course ID is required!"
				case "CourseType":
					errors["courseType"] = "Course type must be IN_PERSON, ONLINE_LIVE or SELF_PACED!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedIssueCertificate", reqData)
		return c.Next()
	}
}
