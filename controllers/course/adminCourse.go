package courseController

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateInPersonCourse creates a draft in-person course. A linked online
// course id, when given, must name an existing online course.
func CreateInPersonCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreateInPerson").(*struct {
		Title                string     `json:"title"`
		Description          string     `json:"description"`
		Instructor           string     `json:"instructor"`
		Venue                string     `json:"venue"`
		City                 string     `json:"city"`
		Price                float64    `json:"price"`
		Currency             string     `json:"currency"`
		Duration             int64      `json:"duration"`
		StartDate            time.Time  `json:"startDate"`
		EndDate              *time.Time `json:"endDate"`
		AssessmentRequired   bool       `json:"assessmentRequired"`
		PassingScore         *float64   `json:"passingScore"`
		LinkedOnlineCourseID *uint      `json:"linkedOnlineCourseId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if reqData.LinkedOnlineCourseID != nil {
		var linked courseModels.OnlineCourse
		if err := db.Where("id = ? AND is_deleted = ?", *reqData.LinkedOnlineCourseID, false).First(&linked).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Linked online course not found!", nil)
		}
	}

	course := courseModels.InPersonCourse{
		Title:                reqData.Title,
		Description:          reqData.Description,
		Instructor:           reqData.Instructor,
		Venue:                reqData.Venue,
		City:                 reqData.City,
		Price:                reqData.Price,
		Currency:             reqData.Currency,
		Duration:             reqData.Duration,
		StartDate:            reqData.StartDate,
		EndDate:              reqData.EndDate,
		AssessmentRequired:   reqData.AssessmentRequired,
		LinkedOnlineCourseID: reqData.LinkedOnlineCourseID,
	}
	if reqData.PassingScore != nil {
		course.PassingScore = *reqData.PassingScore
	}

	if err := db.Create(&course).Error; err != nil {
		log.Printf("Error creating in-person course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// CreateOnlineCourse creates a draft live online course
func CreateOnlineCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreateOnline").(*struct {
		Title              string     `json:"title"`
		Description        string     `json:"description"`
		Instructor         string     `json:"instructor"`
		Platform           string     `json:"platform"`
		MeetingURL         string     `json:"meetingUrl"`
		Price              float64    `json:"price"`
		Currency           string     `json:"currency"`
		Duration           int64      `json:"duration"`
		StartDate          time.Time  `json:"startDate"`
		EndDate            *time.Time `json:"endDate"`
		AssessmentRequired bool       `json:"assessmentRequired"`
		PassingScore       *float64   `json:"passingScore"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.OnlineCourse{
		Title:              reqData.Title,
		Description:        reqData.Description,
		Instructor:         reqData.Instructor,
		Platform:           reqData.Platform,
		MeetingURL:         reqData.MeetingURL,
		Price:              reqData.Price,
		Currency:           reqData.Currency,
		Duration:           reqData.Duration,
		StartDate:          reqData.StartDate,
		EndDate:            reqData.EndDate,
		AssessmentRequired: reqData.AssessmentRequired,
	}
	if reqData.PassingScore != nil {
		course.PassingScore = *reqData.PassingScore
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Error creating online course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// CreateSelfPacedCourse creates a draft self-paced course with its videos
func CreateSelfPacedCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreateSelfPaced").(*struct {
		Title            string  `json:"title"`
		Description      string  `json:"description"`
		Instructor       string  `json:"instructor"`
		Price            float64 `json:"price"`
		Currency         string  `json:"currency"`
		Duration         int64   `json:"duration"`
		RequireAllVideos *bool   `json:"requireAllVideos"`
		Videos           []struct {
			Title           string `json:"title"`
			VideoURL        string `json:"videoUrl"`
			DurationMinutes int    `json:"durationMinutes"`
			HasExam         bool   `json:"hasExam"`
		} `json:"videos"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.SelfPacedCourse{
		Title:            reqData.Title,
		Description:      reqData.Description,
		Instructor:       reqData.Instructor,
		Price:            reqData.Price,
		Currency:         reqData.Currency,
		Duration:         reqData.Duration,
		RequireAllVideos: true,
	}
	if reqData.RequireAllVideos != nil {
		course.RequireAllVideos = *reqData.RequireAllVideos
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&course).Error; err != nil {
			return err
		}
		for i, v := range reqData.Videos {
			video := courseModels.CourseVideo{
				CourseID:        course.ID,
				Title:           v.Title,
				VideoURL:        v.VideoURL,
				DurationMinutes: v.DurationMinutes,
				HasExam:         v.HasExam,
				OrderIndex:      i,
			}
			if err := tx.Create(&video).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error creating self-paced course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AddCourseSession schedules a session on a live or in-person course
func AddCourseSession(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAddSession").(*struct {
		CourseID   uint      `json:"courseId"`
		CourseType string    `json:"courseType"`
		Title      string    `json:"title"`
		StartsAt   time.Time `json:"startsAt"`
		EndsAt     time.Time `json:"endsAt"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	session := courseModels.CourseSession{
		CourseID:   reqData.CourseID,
		CourseType: reqData.CourseType,
		Title:      reqData.Title,
		StartsAt:   reqData.StartsAt,
		EndsAt:     reqData.EndsAt,
	}

	if err := database.Database.Db.Create(&session).Error; err != nil {
		log.Printf("Error adding session: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Session added successfully!", session)
}

// PublishCourse activates and publishes a course of any catalog
func PublishCourse(c *fiber.Ctx) error {
	courseType := c.Locals("courseType").(string)
	courseID := c.Locals("courseID").(int)

	db := database.Database.Db
	updates := map[string]interface{}{
		"is_published": true,
		"status":       courseModels.CourseStatusActive,
	}

	var result *gorm.DB
	switch courseType {
	case courseModels.TypeInPerson:
		result = db.Model(&courseModels.InPersonCourse{}).Where("id = ? AND is_deleted = ?", courseID, false).Updates(updates)
	case courseModels.TypeOnlineLive:
		result = db.Model(&courseModels.OnlineCourse{}).Where("id = ? AND is_deleted = ?", courseID, false).Updates(updates)
	case courseModels.TypeSelfPaced:
		result = db.Model(&courseModels.SelfPacedCourse{}).Where("id = ? AND is_deleted = ?", courseID, false).Updates(updates)
	default:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course type!", nil)
	}

	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", nil)
}
