package paymentController

import (
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/utils"
)

// ConfirmPayment marks a pending checkout transaction completed and flips the
// paid enrollment to REGISTERED. When a gateway verification endpoint is
// configured the reported payment is checked against it first.
func ConfirmPayment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedConfirmPayment").(*struct {
		Reference        string `json:"reference"`
		GatewayPaymentID string `json:"gatewayPaymentId"`
		PaymentStatus    string `json:"paymentStatus"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Duplicate gateway payment id means the confirmation was already handled
	var duplicate models.PaymentTransaction
	if err := db.Where("gateway_payment_id = ? AND status = ? AND is_deleted = ?",
		reqData.GatewayPaymentID, models.TransactionStatusCompleted, false).First(&duplicate).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Transaction already processed!", nil)
	}

	var transaction models.PaymentTransaction
	if err := db.Where("reference = ? AND user_id = ? AND is_deleted = ?",
		reqData.Reference, userID, false).First(&transaction).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Transaction not found!", nil)
	}

	if transaction.Status == models.TransactionStatusCompleted {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Transaction already processed!", nil)
	}

	// External gateway verification, skipped when no gateway is configured
	if config.AppConfig.GatewayApiURL != "" {
		verified, err := utils.VerifyGatewayPayment(reqData.GatewayPaymentID, transaction.Amount)
		if err != nil {
			log.Printf("Error verifying payment with gateway: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Payment verification failed!", nil)
		}
		if !verified {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment could not be verified!", nil)
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		transaction.Status = models.TransactionStatusCompleted
		transaction.GatewayPaymentID = reqData.GatewayPaymentID
		transaction.TransactionDate = time.Now()
		if err := tx.Save(&transaction).Error; err != nil {
			return err
		}

		return tx.Model(&courseModels.Enrollment{}).
			Where("id = ? AND status = ? AND is_deleted = ?", transaction.EnrollmentID, courseModels.StatusPaid, false).
			Update("status", courseModels.StatusRegistered).Error
	})
	if err != nil {
		log.Printf("Error confirming payment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to confirm payment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment confirmed!", transaction)
}

// GetPaymentHistory returns the user's payment transactions with pagination
func GetPaymentHistory(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedPaymentHistory").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.PaymentTransaction{}).
		Where("user_id = ? AND is_deleted = ?", userID, false)

	var total int64
	db.Count(&total)

	var transactions []models.PaymentTransaction
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&transactions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch transactions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transactions fetched successfully!", fiber.Map{
		"transactions": transactions,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
