package main

import (
	"lms/config"
	"lms/database"
	courseModels "lms/models/course"
	"log"
)

// Standalone repair tool for linked-course drift: in-person cart entries
// missing their free companion enrollment, and orphaned free companions
// whose primary entry is gone. Run after incidents or failed deployments.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	// Pass 1: recreate missing companions for in-person cart entries
	var primaries []courseModels.Enrollment
	if err := db.Where("course_type = ? AND status = ? AND is_deleted = false",
		courseModels.TypeInPerson, courseModels.StatusCart).Find(&primaries).Error; err != nil {
		log.Fatalf("Failed to fetch in-person cart entries: %v", err)
	}

	recreated := 0
	for _, primary := range primaries {
		var course courseModels.InPersonCourse
		if err := db.Where("id = ? AND is_deleted = false", primary.CourseID).First(&course).Error; err != nil {
			continue
		}
		if course.LinkedOnlineCourseID == nil {
			continue
		}

		var count int64
		db.Model(&courseModels.Enrollment{}).
			Where("user_id = ? AND course_id = ? AND course_type = ? AND status != ? AND is_deleted = false",
				primary.UserID, *course.LinkedOnlineCourseID, courseModels.TypeOnlineLive, courseModels.StatusCancelled).
			Count(&count)
		if count > 0 {
			continue
		}

		companion := courseModels.Enrollment{
			UserID:             primary.UserID,
			CourseID:           *course.LinkedOnlineCourseID,
			CourseType:         courseModels.TypeOnlineLive,
			Status:             courseModels.StatusCart,
			IsLinkedCourse:     true,
			IsLinkedCourseFree: true,
		}
		if err := db.Create(&companion).Error; err != nil {
			log.Printf("Failed to recreate companion for user %d course %d: %v", primary.UserID, primary.CourseID, err)
			continue
		}
		recreated++
	}

	// Pass 2: remove orphaned free companions still sitting in a cart
	var companions []courseModels.Enrollment
	if err := db.Where("is_linked_course_free = true AND status = ? AND is_deleted = false",
		courseModels.StatusCart).Find(&companions).Error; err != nil {
		log.Fatalf("Failed to fetch companion entries: %v", err)
	}

	removed := 0
	for _, companion := range companions {
		var count int64
		db.Model(&courseModels.Enrollment{}).
			Joins("JOIN in_person_courses ON in_person_courses.id = enrollments.course_id").
			Where("enrollments.user_id = ? AND enrollments.course_type = ? AND enrollments.status = ? AND enrollments.is_deleted = false",
				companion.UserID, courseModels.TypeInPerson, courseModels.StatusCart).
			Where("in_person_courses.linked_online_course_id = ?", companion.CourseID).
			Count(&count)
		if count > 0 {
			continue
		}

		if err := db.Model(&courseModels.Enrollment{}).Where("id = ?", companion.ID).
			Update("is_deleted", true).Error; err != nil {
			log.Printf("Failed to remove orphaned companion %d: %v", companion.ID, err)
			continue
		}
		removed++
	}

	log.Printf("Repair complete: %d companion(s) recreated, %d orphan(s) removed", recreated, removed)
}
