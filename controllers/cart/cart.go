package cartController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lms/utils"
)

// courseSummary is the catalog info joined onto cart/wishlist rows
type courseSummary struct {
	Title              string
	Instructor         string
	Price              float64
	Currency           string
	LinkedOnlineCourse *uint
}

// resolveCourse loads the catalog record for an enrollment's course type.
// Only published ACTIVE courses resolve.
func resolveCourse(db *gorm.DB, courseID uint, courseType string) (*courseSummary, error) {
	switch courseType {
	case courseModels.TypeInPerson:
		var c courseModels.InPersonCourse
		if err := db.Where("id = ? AND is_deleted = ? AND status = ?", courseID, false, courseModels.CourseStatusActive).First(&c).Error; err != nil {
			return nil, err
		}
		return &courseSummary{Title: c.Title, Instructor: c.Instructor, Price: c.Price, Currency: c.Currency, LinkedOnlineCourse: c.LinkedOnlineCourseID}, nil
	case courseModels.TypeOnlineLive:
		var c courseModels.OnlineCourse
		if err := db.Where("id = ? AND is_deleted = ? AND status = ?", courseID, false, courseModels.CourseStatusActive).First(&c).Error; err != nil {
			return nil, err
		}
		return &courseSummary{Title: c.Title, Instructor: c.Instructor, Price: c.Price, Currency: c.Currency}, nil
	case courseModels.TypeSelfPaced:
		var c courseModels.SelfPacedCourse
		if err := db.Where("id = ? AND is_deleted = ? AND status = ?", courseID, false, courseModels.CourseStatusActive).First(&c).Error; err != nil {
			return nil, err
		}
		return &courseSummary{Title: c.Title, Instructor: c.Instructor, Price: c.Price, Currency: c.Currency}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// isActiveStatus reports whether an enrollment still occupies its
// (user, course, type) slot
func isActiveStatus(status string) bool {
	return status != courseModels.StatusCancelled
}

// AddToCart puts a course into the user's cart. In-person courses that
// declare a linked online course get a free companion enrollment created in
// the same transaction.
func AddToCart(c *fiber.Ctx) error {
	return addEnrollment(c, "validatedCartAdd", courseModels.StatusCart)
}

// AddToWishlist puts a course onto the user's wishlist
func AddToWishlist(c *fiber.Ctx) error {
	return addEnrollment(c, "validatedWishlistAdd", courseModels.StatusWishlist)
}

func addEnrollment(c *fiber.Ctx, localsKey, targetStatus string) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals(localsKey).(*struct {
		CourseID   uint   `json:"courseId"`
		CourseType string `json:"courseType"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	summary, err := resolveCourse(db, reqData.CourseID, reqData.CourseType)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not active!", nil)
	}

	// Check for an existing enrollment occupying the slot
	var existing courseModels.Enrollment
	err = db.Where("user_id = ? AND course_id = ? AND course_type = ? AND is_deleted = ?",
		userID, reqData.CourseID, reqData.CourseType, false).First(&existing).Error
	if err == nil && isActiveStatus(existing.Status) {
		if existing.Status == courseModels.StatusWishlist && targetStatus == courseModels.StatusCart {
			return moveEnrollmentToCart(c, db, userID, &existing, summary)
		}
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course already in your list!", existing)
	}

	enrollment := courseModels.Enrollment{
		UserID:        userID,
		CourseID:      reqData.CourseID,
		CourseType:    reqData.CourseType,
		Status:        targetStatus,
		OriginalPrice: summary.Price,
		Currency:      summary.Currency,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}
		if targetStatus == courseModels.StatusCart {
			return ensureLinkedCompanion(tx, userID, summary)
		}
		return nil
	})
	if err != nil {
		log.Printf("Error adding enrollment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course added successfully!", enrollment)
}

// ensureLinkedCompanion creates the free companion online enrollment for an
// in-person course, or leaves an existing active one untouched
func ensureLinkedCompanion(tx *gorm.DB, userID uint, summary *courseSummary) error {
	if summary.LinkedOnlineCourse == nil {
		return nil
	}

	var companion courseModels.Enrollment
	err := tx.Where("user_id = ? AND course_id = ? AND course_type = ? AND is_deleted = ?",
		userID, *summary.LinkedOnlineCourse, courseModels.TypeOnlineLive, false).First(&companion).Error
	if err == nil && isActiveStatus(companion.Status) {
		return nil
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}

	companion = courseModels.Enrollment{
		UserID:             userID,
		CourseID:           *summary.LinkedOnlineCourse,
		CourseType:         courseModels.TypeOnlineLive,
		Status:             courseModels.StatusCart,
		PaidAmount:         0,
		OriginalPrice:      0,
		IsLinkedCourse:     true,
		IsLinkedCourseFree: true,
	}
	return tx.Create(&companion).Error
}

// MoveToCart promotes a wishlist entry into the cart
func MoveToCart(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)
	db := database.Database.Db

	var enrollment courseModels.Enrollment
	if err := db.Where("id = ? AND user_id = ? AND status = ? AND is_deleted = ?",
		enrollmentID, userID, courseModels.StatusWishlist, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Wishlist entry not found!", nil)
	}

	summary, err := resolveCourse(db, enrollment.CourseID, enrollment.CourseType)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not active!", nil)
	}

	return moveEnrollmentToCart(c, db, userID, &enrollment, summary)
}

func moveEnrollmentToCart(c *fiber.Ctx, db *gorm.DB, userID uint, enrollment *courseModels.Enrollment, summary *courseSummary) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		enrollment.Status = courseModels.StatusCart
		enrollment.OriginalPrice = summary.Price
		enrollment.Currency = summary.Currency
		if err := tx.Save(enrollment).Error; err != nil {
			return err
		}
		return ensureLinkedCompanion(tx, userID, summary)
	})
	if err != nil {
		log.Printf("Error moving enrollment to cart: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to move course to cart!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course moved to cart!", enrollment)
}

// RemoveFromCart removes a cart entry. Removing an in-person course also
// removes its free linked companion; removing the companion directly is
// rejected so the pair never drifts apart.
func RemoveFromCart(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)
	db := database.Database.Db

	var enrollment courseModels.Enrollment
	if err := db.Where("id = ? AND user_id = ? AND status = ? AND is_deleted = ?",
		enrollmentID, userID, courseModels.StatusCart, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Cart entry not found!", nil)
	}

	if enrollment.IsLinkedCourseFree {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
			"This course was added with an in-person course. Remove the in-person course instead!", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&enrollment).Update("is_deleted", true).Error; err != nil {
			return err
		}

		// Cascade-remove the free companion bundled with this course
		if enrollment.CourseType == courseModels.TypeInPerson {
			var course courseModels.InPersonCourse
			if err := tx.Where("id = ?", enrollment.CourseID).First(&course).Error; err != nil {
				return err
			}
			if course.LinkedOnlineCourseID != nil {
				if err := tx.Model(&courseModels.Enrollment{}).
					Where("user_id = ? AND course_id = ? AND course_type = ? AND status = ? AND is_linked_course_free = ? AND is_deleted = ?",
						userID, *course.LinkedOnlineCourseID, courseModels.TypeOnlineLive,
						courseModels.StatusCart, true, false).
					Update("is_deleted", true).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error removing cart entry: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove course from cart!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course removed from cart!", nil)
}

// RemoveFromWishlist removes a wishlist entry
func RemoveFromWishlist(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)

	result := database.Database.Db.Model(&courseModels.Enrollment{}).
		Where("id = ? AND user_id = ? AND status = ? AND is_deleted = ?",
			enrollmentID, userID, courseModels.StatusWishlist, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove course from wishlist!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Wishlist entry not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course removed from wishlist!", nil)
}

// GetCart lists the user's cart with course info joined
func GetCart(c *fiber.Ctx) error {
	return listEnrollmentsByStatus(c, courseModels.StatusCart, "Cart fetched successfully!")
}

// GetWishlist lists the user's wishlist with course info joined
func GetWishlist(c *fiber.Ctx) error {
	return listEnrollmentsByStatus(c, courseModels.StatusWishlist, "Wishlist fetched successfully!")
}

func listEnrollmentsByStatus(c *fiber.Ctx, status, message string) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var enrollments []courseModels.Enrollment
	if err := db.Where("user_id = ? AND status = ? AND is_deleted = ?", userID, status, false).
		Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrollmentWithCourse struct {
		courseModels.Enrollment
		CourseTitle      string  `json:"course_title"`
		CourseInstructor string  `json:"course_instructor"`
		CoursePrice      float64 `json:"course_price"`
	}

	result := make([]EnrollmentWithCourse, 0, len(enrollments))
	var total float64
	for _, e := range enrollments {
		row := EnrollmentWithCourse{Enrollment: e}
		if summary, err := resolveCourse(db, e.CourseID, e.CourseType); err == nil {
			row.CourseTitle = summary.Title
			row.CourseInstructor = summary.Instructor
			row.CoursePrice = summary.Price
		}
		if !e.IsLinkedCourseFree {
			total += e.OriginalPrice
		}
		result = append(result, row)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"items": result,
		"total": total,
	})
}

// Checkout settles the cart inside a single database transaction: every
// entry gets a payment transaction record, gateway-confirmed entries move to
// PAID, while free linked companions (priced at zero) and self-paced courses
// are registered immediately.
func Checkout(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedCheckout").(*struct {
		Gateway        string `json:"gateway"`
		GatewayOrderID string `json:"gatewayOrderId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var cartItems []courseModels.Enrollment
	if err := db.Where("user_id = ? AND status = ? AND is_deleted = ?",
		userID, courseModels.StatusCart, false).Find(&cartItems).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch cart!", nil)
	}
	if len(cartItems) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cart is empty!", nil)
	}

	now := time.Now()
	var transactions []models.PaymentTransaction
	var total float64

	err := db.Transaction(func(tx *gorm.DB) error {
		for i := range cartItems {
			item := &cartItems[i]

			amount := item.OriginalPrice
			if item.IsLinkedCourseFree {
				amount = 0
			}

			item.Status = courseModels.StatusPaid
			// Nothing to collect for free companions, and self-paced access
			// starts right away, so both skip the gateway confirmation step.
			if amount == 0 || item.CourseType == courseModels.TypeSelfPaced {
				item.Status = courseModels.StatusRegistered
			}
			item.PaidAmount = amount
			item.RegistrationDate = &now
			if err := tx.Save(item).Error; err != nil {
				return err
			}

			status := models.TransactionStatusPending
			if amount == 0 {
				// Nothing to collect for free companions
				status = models.TransactionStatusCompleted
			}

			txRecord := models.PaymentTransaction{
				UserID:          userID,
				EnrollmentID:    item.ID,
				CourseID:        item.CourseID,
				CourseType:      item.CourseType,
				Reference:       uuid.NewString(),
				Gateway:         reqData.Gateway,
				GatewayOrderID:  reqData.GatewayOrderID,
				Amount:          amount,
				Currency:        item.Currency,
				Status:          status,
				Description:     "Course checkout",
				TransactionDate: now,
			}
			if err := tx.Create(&txRecord).Error; err != nil {
				return err
			}

			transactions = append(transactions, txRecord)
			total += amount
		}
		return nil
	})
	if err != nil {
		log.Printf("Error during checkout: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Checkout failed!", nil)
	}

	go func(email, name string, count int) {
		if err := utils.SendCheckoutEmail(email, name, count, total); err != nil {
			log.Printf("Error sending checkout email: %v", err)
		}
	}(user.Email, user.Name, len(cartItems))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout successful!", fiber.Map{
		"transactions": transactions,
		"total":        total,
		"currency":     cartItems[0].Currency,
	})
}
