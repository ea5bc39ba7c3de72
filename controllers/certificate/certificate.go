package certificateController

import (
	"lms/certification"
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

// IssueCertificate evaluates eligibility and issues a certificate for the
// requested course. Re-issuing is idempotent: the existing certificate is
// returned with a 200 instead of an error.
func IssueCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedIssueCertificate").(*struct {
		CourseID   uint   `json:"courseId" validate:"required,gt=0"`
		CourseType string `json:"courseType" validate:"required,oneof=IN_PERSON ONLINE_LIVE SELF_PACED"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Cancelled rows stay behind after cart pruning; a repurchase creates a
	// fresh enrollment alongside them, so they must not shadow it here.
	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND course_type = ? AND status != ? AND is_deleted = ?",
		userID, reqData.CourseID, reqData.CourseType, courseModels.StatusCancelled, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not enrolled in this course!", nil)
	}

	switch enrollment.Status {
	case courseModels.StatusWishlist, courseModels.StatusCart:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course has not been purchased!", nil)
	}

	// Idempotent path: re-requesting an issued certificate is not an error
	var existing courseModels.Certificate
	if err := db.Where("user_id = ? AND course_id = ? AND course_type = ? AND is_deleted = ?",
		userID, reqData.CourseID, reqData.CourseType, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate already issued!", existing)
	}

	evaluator, info, err := certification.ForEnrollment(db, &enrollment)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		log.Printf("Error building eligibility evaluator: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	result := evaluator.Evaluate(&enrollment, time.Now())
	if !result.Eligible {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Not eligible for a certificate!", fiber.Map{
			"eligible": false,
			"reasons":  result.Reasons,
		})
	}

	issuer := certification.Issuer{
		DB:      db,
		Secret:  config.AppConfig.CertificateSecret,
		BaseURL: config.AppConfig.BaseURL,
	}

	cert, created, err := issuer.Issue(&user, &enrollment, info, time.Now())
	if err != nil {
		log.Printf("Error issuing certificate: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	if created {
		go func(email, name, courseTitle, certID string) {
			if err := utils.SendCertificateEmail(email, name, courseTitle, certID); err != nil {
				log.Printf("Error sending certificate email: %v", err)
			}
		}(user.Email, user.Name, info.Title, cert.CertificateID)

		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate issued successfully!", cert)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate already issued!", cert)
}

// GetUserCertificates gets all certificates for the current user
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("issue_date desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates":       certificates,
		"total_certificates": user.TotalCertificates,
		"achievement_level":  user.AchievementLevel,
		"specializations":    user.Specializations,
	})
}

// ViewCertificate returns one certificate by its public identifier and
// increments the view counter
func ViewCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certificateID := c.Params("certificateId")

	var cert courseModels.Certificate
	if err := database.Database.Db.Where("certificate_id = ? AND user_id = ? AND is_deleted = ?",
		certificateID, userID, false).First(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	if err := database.Database.Db.Model(&cert).UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		log.Printf("Error updating view count: %v", err)
	}
	cert.ViewCount++

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate fetched successfully!", cert)
}

// DownloadCertificate returns the certificate payload and increments the
// download counter
func DownloadCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certificateID := c.Params("certificateId")

	var cert courseModels.Certificate
	if err := database.Database.Db.Where("certificate_id = ? AND user_id = ? AND is_deleted = ?",
		certificateID, userID, false).First(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	if err := database.Database.Db.Model(&cert).UpdateColumn("download_count", gorm.Expr("download_count + 1")).Error; err != nil {
		log.Printf("Error updating download count: %v", err)
	}
	cert.DownloadCount++

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate download ready!", cert)
}

// VerifyCertificate is the public, unauthenticated verification endpoint.
// Verification codes carry a unique index, so this is a single lookup.
func VerifyCertificate(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Verification code is required!", nil)
	}

	var cert courseModels.Certificate
	if err := database.Database.Db.Where("verification_code = ? AND is_deleted = ?", code, false).
		First(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	valid := certification.VerifySignature(config.AppConfig.CertificateSecret, &cert)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate verified!", fiber.Map{
		"valid":           valid,
		"certificate_id":  cert.CertificateID,
		"recipient_name":  cert.RecipientName,
		"course_title":    cert.CourseTitle,
		"course_type":     cert.CourseType,
		"completion_date": cert.CompletionDate,
		"issue_date":      cert.IssueDate,
		"grade":           cert.Grade,
	})
}
