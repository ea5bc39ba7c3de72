package paymentValidator

import (
	"lms/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ConfirmPayment validates a payment confirmation callback
func ConfirmPayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Reference        string `json:"reference"`
			GatewayPaymentID string `json:"gatewayPaymentId"`
			PaymentStatus    string `json:"paymentStatus"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Reference) == "" {
			errors["reference"] = "Transaction reference is required!"
		}
		if strings.TrimSpace(reqData.GatewayPaymentID) == "" {
			errors["gatewayPaymentId"] = "Gateway payment ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedConfirmPayment", reqData)
		return c.Next()
	}
}

// PaymentHistory validates pagination query parameters
func PaymentHistory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
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

		c.Locals("validatedPaymentHistory", reqData)
		return c.Next()
	}
}
