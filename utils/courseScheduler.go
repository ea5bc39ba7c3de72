package utils

import (
	"lms/config"
	"lms/database"
	courseModels "lms/models/course"
	"log"
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[COURSE-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// completeEndedCourses moves attended REGISTERED enrollments of live and
// in-person courses to COMPLETED once the course end date has passed
func completeEndedCourses() {
	db := database.Database.Db
	current := time.Now()

	process := func(courseType string, courseIDs []uint) {
		if len(courseIDs) == 0 {
			return
		}
		var enrollments []courseModels.Enrollment
		if err := db.Where("course_type = ? AND course_id IN ? AND status = ? AND is_deleted = false",
			courseType, courseIDs, courseModels.StatusRegistered).Find(&enrollments).Error; err != nil {
			logScheduler("Error fetching enrollments: " + err.Error())
			return
		}
		for i := range enrollments {
			e := &enrollments[i]
			if len(e.AttendedSessionIDs()) == 0 {
				continue
			}
			e.Status = courseModels.StatusCompleted
			e.ProgressStatus = courseModels.ProgressCompleted
			if err := db.Save(e).Error; err != nil {
				logScheduler("Error completing enrollment: " + err.Error())
			}
		}
	}

	var onlineIDs []uint
	db.Model(&courseModels.OnlineCourse{}).
		Where("is_deleted = false AND ((end_date IS NOT NULL AND end_date < ?) OR (end_date IS NULL AND start_date < ?))", current, current).
		Pluck("id", &onlineIDs)
	process(courseModels.TypeOnlineLive, onlineIDs)

	var inPersonIDs []uint
	db.Model(&courseModels.InPersonCourse{}).
		Where("is_deleted = false AND ((end_date IS NOT NULL AND end_date < ?) OR (end_date IS NULL AND start_date < ?))", current, current).
		Pluck("id", &inPersonIDs)
	process(courseModels.TypeInPerson, inPersonIDs)
}

// pruneStaleCarts cancels cart entries older than the configured expiry
func pruneStaleCarts() {
	db := database.Database.Db

	cutoff := now.BeginningOfDay().AddDate(0, 0, -config.AppConfig.CartExpiryDays)

	result := db.Model(&courseModels.Enrollment{}).
		Where("status = ? AND is_deleted = false AND updated_at < ?", courseModels.StatusCart, cutoff).
		Update("status", courseModels.StatusCancelled)
	if result.Error != nil {
		logScheduler("Error pruning stale carts: " + result.Error.Error())
		return
	}
	if result.RowsAffected > 0 {
		logScheduler("Cancelled stale cart entries")
	}
}

// StartCourseScheduler runs the maintenance jobs on a fixed schedule
func StartCourseScheduler() *cron.Cron {
	c := cron.New()

	// Hourly sweep for ended courses
	c.AddFunc("0 * * * *", completeEndedCourses)

	// Daily cart cleanup
	c.AddFunc("30 2 * * *", pruneStaleCarts)

	c.Start()
	logScheduler("Course scheduler started")
	return c
}
