package course

import (
	"time"

	"gorm.io/gorm"
)

// InPersonCourse represents a classroom course with a venue and schedule
type InPersonCourse struct {
	gorm.Model
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Instructor  string  `json:"instructor"`
	Venue       string  `json:"venue"`
	City        string  `json:"city"`
	Price       float64 `json:"price" gorm:"default:0"`
	Currency    string  `json:"currency" gorm:"default:'USD'"`
	Duration    int64   `json:"duration" gorm:"default:0"` // duration in hours

	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	// Certification rules
	AssessmentRequired bool    `json:"assessment_required" gorm:"default:false"`
	PassingScore       float64 `json:"passing_score" gorm:"default:70"`

	// Companion online course bundled for free on cart add; certificate
	// issuance additionally requires its completion
	LinkedOnlineCourseID *uint `json:"linked_online_course_id" gorm:"index"`

	Status      string `json:"status" gorm:"default:'DRAFT'"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}

// HasEnded reports whether the course schedule is over; courses without an
// end date fall back to the start date
func (c *InPersonCourse) HasEnded(now time.Time) bool {
	if c.EndDate != nil {
		return c.EndDate.Before(now)
	}
	return c.StartDate.Before(now)
}

// LinkedCourseCompleted verifies the required linked online course through
// that course's own capability. Courses without a linkage always pass.
func (c *InPersonCourse) LinkedCourseCompleted(db *gorm.DB, userID uint, now time.Time) (bool, error) {
	if c.LinkedOnlineCourseID == nil {
		return true, nil
	}

	var linked OnlineCourse
	err := db.Where("id = ? AND is_deleted = false", *c.LinkedOnlineCourseID).First(&linked).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}

	return linked.CanIssueCertificate(db, userID, now)
}
