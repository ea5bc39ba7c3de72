package courseController

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"log"

	"github.com/gofiber/fiber/v2"
)

func loadActiveEnrollment(userID, courseID uint, courseType string) (*courseModels.Enrollment, error) {
	var enrollment courseModels.Enrollment
	err := database.Database.Db.Where(
		"user_id = ? AND course_id = ? AND course_type = ? AND status IN ? AND is_deleted = ?",
		userID, courseID, courseType,
		[]string{courseModels.StatusPaid, courseModels.StatusRegistered, courseModels.StatusCompleted},
		false).First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func appendID(ids []uint, id uint) []uint {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

// MarkVideoComplete records one watched video on a self-paced enrollment.
// Once the whole course is worked through, the enrollment flips to COMPLETED.
func MarkVideoComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedVideoProgress").(*struct {
		CourseID uint `json:"courseId"`
		VideoID  uint `json:"videoId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course courseModels.SelfPacedCourse
	if err := db.Preload("Videos", "is_deleted = false").
		Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var video *courseModels.CourseVideo
	for i := range course.Videos {
		if course.Videos[i].ID == reqData.VideoID {
			video = &course.Videos[i]
			break
		}
	}
	if video == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found in this course!", nil)
	}

	enrollment, err := loadActiveEnrollment(userID, reqData.CourseID, courseModels.TypeSelfPaced)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not enrolled in this course!", nil)
	}

	enrollment.CompletedVideos = courseModels.IDListJSON(appendID(enrollment.CompletedVideoIDs(), reqData.VideoID))
	syncSelfPacedCompletion(&course, enrollment)

	if err := db.Save(enrollment).Error; err != nil {
		log.Printf("Error saving video progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video marked as completed!", enrollment)
}

// SubmitVideoExam records an exam attempt for an exam-bearing video. The
// exam counts as completed when the score meets the course minimum; the best
// score across attempts is kept.
func SubmitVideoExam(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedExamSubmit").(*struct {
		CourseID uint    `json:"courseId"`
		VideoID  uint    `json:"videoId"`
		Score    float64 `json:"score"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course courseModels.SelfPacedCourse
	if err := db.Preload("Videos", "is_deleted = false").
		Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var video *courseModels.CourseVideo
	for i := range course.Videos {
		if course.Videos[i].ID == reqData.VideoID {
			video = &course.Videos[i]
			break
		}
	}
	if video == nil || !video.HasExam {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam not found for this video!", nil)
	}

	enrollment, err := loadActiveEnrollment(userID, reqData.CourseID, courseModels.TypeSelfPaced)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not enrolled in this course!", nil)
	}

	if enrollment.BestScore == nil || reqData.Score > *enrollment.BestScore {
		enrollment.BestScore = &reqData.Score
	}

	passed := reqData.Score >= course.MinimumScore
	if passed {
		enrollment.CompletedExams = courseModels.IDListJSON(appendID(enrollment.CompletedExamIDs(), reqData.VideoID))
	}
	syncSelfPacedCompletion(&course, enrollment)

	if err := db.Save(enrollment).Error; err != nil {
		log.Printf("Error saving exam attempt: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save exam attempt!", nil)
	}

	message := "Exam submitted. Score below the course minimum, try again!"
	if passed {
		message = "Exam completed successfully!"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"passed":     passed,
		"enrollment": enrollment,
	})
}

func syncSelfPacedCompletion(course *courseModels.SelfPacedCourse, enrollment *courseModels.Enrollment) {
	if course.IsCertificateEligible(enrollment) {
		enrollment.ProgressStatus = courseModels.ProgressCompleted
		enrollment.Status = courseModels.StatusCompleted
	}
}

// MarkSessionAttendance records attendance of one session on a live or
// in-person enrollment
func MarkSessionAttendance(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedAttendance").(*struct {
		CourseID   uint   `json:"courseId"`
		CourseType string `json:"courseType"`
		SessionID  uint   `json:"sessionId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var session courseModels.CourseSession
	if err := db.Where("id = ? AND course_id = ? AND course_type = ? AND is_deleted = ?",
		reqData.SessionID, reqData.CourseID, reqData.CourseType, false).First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Session not found!", nil)
	}

	enrollment, err := loadActiveEnrollment(userID, reqData.CourseID, reqData.CourseType)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not enrolled in this course!", nil)
	}

	enrollment.AttendedSessions = courseModels.IDListJSON(appendID(enrollment.AttendedSessionIDs(), reqData.SessionID))

	if err := db.Save(enrollment).Error; err != nil {
		log.Printf("Error saving attendance: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save attendance!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attendance recorded!", enrollment)
}

// SubmitAssessment records an assessment score. Live online courses keep the
// best score across attempts; in-person courses keep the latest proctored
// score.
func SubmitAssessment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedAssessment").(*struct {
		CourseID   uint    `json:"courseId"`
		CourseType string  `json:"courseType"`
		Score      float64 `json:"score"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	enrollment, err := loadActiveEnrollment(userID, reqData.CourseID, reqData.CourseType)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not enrolled in this course!", nil)
	}

	switch reqData.CourseType {
	case courseModels.TypeOnlineLive:
		if enrollment.BestScore == nil || reqData.Score > *enrollment.BestScore {
			enrollment.BestScore = &reqData.Score
		}
	case courseModels.TypeInPerson:
		enrollment.AssessmentScore = &reqData.Score
	}

	if err := database.Database.Db.Save(enrollment).Error; err != nil {
		log.Printf("Error saving assessment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save assessment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessment recorded!", enrollment)
}

// GetMyEnrollments lists all of the user's enrollments with course info
func GetMyEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
		"total":       len(enrollments),
	})
}
