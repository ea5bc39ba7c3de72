package courseController

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetInPersonCourses lists published in-person courses
func GetInPersonCourses(c *fiber.Ctx) error {
	var courses []courseModels.InPersonCourse
	return listCourses(c, &courses, &courseModels.InPersonCourse{})
}

// GetOnlineCourses lists published live online courses
func GetOnlineCourses(c *fiber.Ctx) error {
	var courses []courseModels.OnlineCourse
	return listCourses(c, &courses, &courseModels.OnlineCourse{})
}

// GetSelfPacedCourses lists published self-paced courses
func GetSelfPacedCourses(c *fiber.Ctx) error {
	var courses []courseModels.SelfPacedCourse
	return listCourses(c, &courses, &courseModels.SelfPacedCourse{})
}

func listCourses(c *fiber.Ctx, dest interface{}, model interface{}) error {
	reqData, ok := c.Locals("validatedCourseList").(*struct {
		Page   *int    `json:"page"`
		Limit  *int    `json:"limit"`
		Search *string `json:"search"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	db := database.Database.Db.Model(model).
		Where("is_deleted = ? AND is_published = ? AND status = ?", false, true, courseModels.CourseStatusActive)

	if reqData.Search != nil && *reqData.Search != "" {
		search := "%" + *reqData.Search + "%"
		db = db.Where("title LIKE ? OR description LIKE ?", search, search)
	}

	var total int64
	db.Count(&total)

	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(dest).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": dest,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCourseDetails returns one course with its sessions or videos
func GetCourseDetails(c *fiber.Ctx) error {
	courseType := c.Locals("courseType").(string)
	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	switch courseType {
	case courseModels.TypeInPerson:
		var course courseModels.InPersonCourse
		if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		var sessions []courseModels.CourseSession
		db.Where("course_id = ? AND course_type = ? AND is_deleted = ?", courseID, courseModels.TypeInPerson, false).
			Order("starts_at asc").Find(&sessions)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
			"course":   course,
			"sessions": sessions,
		})

	case courseModels.TypeOnlineLive:
		var course courseModels.OnlineCourse
		if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		var sessions []courseModels.CourseSession
		db.Where("course_id = ? AND course_type = ? AND is_deleted = ?", courseID, courseModels.TypeOnlineLive, false).
			Order("starts_at asc").Find(&sessions)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
			"course":   course,
			"sessions": sessions,
		})

	case courseModels.TypeSelfPaced:
		var course courseModels.SelfPacedCourse
		if err := db.Preload("Videos", "is_deleted = false").
			Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
			"course": course,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course type!", nil)
}
