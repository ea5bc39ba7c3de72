package course

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Enrollment tracks a user's relationship to one course in one catalog,
// from wishlist through completion
type Enrollment struct {
	gorm.Model
	UserID     uint   `json:"user_id" gorm:"index;not null"`
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	CourseType string `json:"course_type" gorm:"index;not null"` // IN_PERSON, ONLINE_LIVE, SELF_PACED

	Status           string     `json:"status" gorm:"default:'WISHLIST'"`
	RegistrationDate *time.Time `json:"registration_date"`
	PaidAmount       float64    `json:"paid_amount" gorm:"default:0"`
	OriginalPrice    float64    `json:"original_price" gorm:"default:0"`
	Currency         string     `json:"currency" gorm:"default:'USD'"`

	// Companion enrollment bookkeeping (in-person courses bundling a free
	// online course)
	IsLinkedCourse     bool `json:"is_linked_course" gorm:"default:false"`
	IsLinkedCourseFree bool `json:"is_linked_course_free" gorm:"default:false"`

	// Progress: video/exam completion for self-paced, session attendance and
	// assessment scores for live and in-person
	ProgressStatus   string         `json:"progress_status" gorm:"default:'IN_PROGRESS'"`
	CompletedVideos  datatypes.JSON `json:"completed_videos"`
	CompletedExams   datatypes.JSON `json:"completed_exams"`
	AttendedSessions datatypes.JSON `json:"attended_sessions"`
	AssessmentScore  *float64       `json:"assessment_score"`
	BestScore        *float64       `json:"best_score"`

	IsDeleted bool `gorm:"default:false"`
}

// CompletedVideoIDs decodes the completed-videos JSON list
func (e *Enrollment) CompletedVideoIDs() []uint {
	return decodeIDList(e.CompletedVideos)
}

// CompletedExamIDs decodes the completed-exams JSON list
func (e *Enrollment) CompletedExamIDs() []uint {
	return decodeIDList(e.CompletedExams)
}

// AttendedSessionIDs decodes the attended-sessions JSON list
func (e *Enrollment) AttendedSessionIDs() []uint {
	return decodeIDList(e.AttendedSessions)
}

// IDListJSON encodes a list of record ids for the JSON progress columns
func IDListJSON(ids []uint) datatypes.JSON {
	if ids == nil {
		ids = []uint{}
	}
	raw, _ := json.Marshal(ids)
	return datatypes.JSON(raw)
}

func decodeIDList(raw datatypes.JSON) []uint {
	if len(raw) == 0 {
		return nil
	}
	var ids []uint
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil
	}
	return ids
}
