package course

import (
	"time"

	"gorm.io/gorm"
)

// OnlineCourse represents a live online (instructor-led) course
type OnlineCourse struct {
	gorm.Model
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Instructor  string  `json:"instructor"`
	Platform    string  `json:"platform"` // ZOOM, TEAMS, ...
	MeetingURL  string  `json:"meeting_url"`
	Price       float64 `json:"price" gorm:"default:0"`
	Currency    string  `json:"currency" gorm:"default:'USD'"`
	Duration    int64   `json:"duration" gorm:"default:0"` // duration in hours

	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	// Certification rules
	AssessmentRequired bool    `json:"assessment_required" gorm:"default:false"`
	PassingScore       float64 `json:"passing_score" gorm:"default:70"`

	Status      string `json:"status" gorm:"default:'DRAFT'"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}

// CourseSession is one scheduled meeting of a live or in-person course
type CourseSession struct {
	gorm.Model
	CourseID   uint      `json:"course_id" gorm:"index;not null"`
	CourseType string    `json:"course_type" gorm:"index;not null"` // ONLINE_LIVE or IN_PERSON
	Title      string    `json:"title"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	IsDeleted  bool      `gorm:"default:false"`
}

// HasEnded reports whether the course schedule is over; courses without an
// end date fall back to the start date
func (c *OnlineCourse) HasEnded(now time.Time) bool {
	if c.EndDate != nil {
		return c.EndDate.Before(now)
	}
	return c.StartDate.Before(now)
}

// CanIssueCertificate is the capability in-person courses consult before
// honouring a required linked online course. It checks the user's own
// enrollment on this course: schedule over, attendance confirmed, and the
// passing score met when an assessment is required.
func (c *OnlineCourse) CanIssueCertificate(db *gorm.DB, userID uint, now time.Time) (bool, error) {
	var enr Enrollment
	err := db.Where("user_id = ? AND course_id = ? AND course_type = ? AND status != ? AND is_deleted = false",
		userID, c.ID, TypeOnlineLive, StatusCancelled).First(&enr).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}

	if !c.HasEnded(now) {
		return false, nil
	}
	if len(enr.AttendedSessionIDs()) == 0 && enr.ProgressStatus != ProgressCompleted {
		return false, nil
	}
	if c.AssessmentRequired {
		if enr.BestScore == nil || *enr.BestScore < c.PassingScore {
			return false, nil
		}
	}
	return true, nil
}
