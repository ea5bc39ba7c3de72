package cartValidator

import (
	"lms/middleware"
	courseModels "lms/models/course"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func validateCourseRef(c *fiber.Ctx, localsKey string) error {
	reqData := new(struct {
		CourseID   uint   `json:"courseId"`
		CourseType string `json:"courseType"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	errors := make(map[string]string)

	if reqData.CourseID == 0 {
		errors["courseId"] = "Course ID is required!"
	}
	if !courseModels.IsValidType(reqData.CourseType) {
		errors["courseType"] = "Course type must be IN_PERSON, ONLINE_LIVE or SELF_PACED!"
	}

	if len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	c.Locals(localsKey, reqData)
	return c.Next()
}

// CartAdd validates adding a course to the cart
func CartAdd() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return validateCourseRef(c, "validatedCartAdd")
	}
}

// WishlistAdd validates adding a course to the wishlist
func WishlistAdd() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return validateCourseRef(c, "validatedWishlistAdd")
	}
}

// EnrollmentParam validates the enrollment id path parameter
func EnrollmentParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		enrollmentIDStr := strings.TrimSpace(c.Params("id"))
		if enrollmentIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Enrollment ID is required!", nil)
		}

		enrollmentID, err := strconv.Atoi(enrollmentIDStr)
		if err != nil || enrollmentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Enrollment ID!", nil)
		}

		c.Locals("enrollmentID", enrollmentID)
		return c.Next()
	}
}

// Checkout validates the checkout request
func Checkout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Gateway        string `json:"gateway"`
			GatewayOrderID string `json:"gatewayOrderId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		// Default gateway when the client does not name one
		if reqData.Gateway == "" {
			reqData.Gateway = "STRIPE"
		}

		c.Locals("validatedCheckout", reqData)
		return c.Next()
	}
}
