package course

import "gorm.io/gorm"

// SelfPacedCourse represents an on-demand video course
type SelfPacedCourse struct {
	gorm.Model
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Instructor   string  `json:"instructor"`
	Price        float64 `json:"price" gorm:"default:0"`
	Currency     string  `json:"currency" gorm:"default:'USD'"`
	Duration     int64   `json:"duration" gorm:"default:0"` // duration in hours
	Status       string  `json:"status" gorm:"default:'DRAFT'"`
	ThumbnailURL string  `json:"thumbnail_url"`

	// Certification rules
	RequireAllVideos bool    `json:"require_all_videos" gorm:"default:true"`
	MinimumScore     float64 `json:"minimum_score" gorm:"default:0"`

	Videos []CourseVideo `json:"videos" gorm:"foreignKey:CourseID"`

	IsPublished bool `json:"is_published" gorm:"default:false"`
	IsDeleted   bool `gorm:"default:false"`
}

// CourseVideo is one lesson video inside a self-paced course,
// optionally carrying an attached exam
type CourseVideo struct {
	gorm.Model
	CourseID        uint   `json:"course_id" gorm:"index;not null"`
	Title           string `json:"title"`
	VideoURL        string `json:"video_url"`
	DurationMinutes int    `json:"duration_minutes" gorm:"default:0"`
	HasExam         bool   `json:"has_exam" gorm:"default:false"`
	OrderIndex      int    `json:"order_index" gorm:"default:0"`
	IsDeleted       bool   `gorm:"default:false"`
}

// IsCertificateEligible reports whether the enrollment's recorded progress
// covers the whole course: every video watched (when the course requires it)
// and every exam-bearing video's exam completed. Videos must be preloaded.
func (c *SelfPacedCourse) IsCertificateEligible(enr *Enrollment) bool {
	doneVideos := toIDSet(enr.CompletedVideoIDs())
	doneExams := toIDSet(enr.CompletedExamIDs())

	for _, v := range c.Videos {
		if v.IsDeleted {
			continue
		}
		if c.RequireAllVideos && !doneVideos[v.ID] {
			return false
		}
		if v.HasExam && !doneExams[v.ID] {
			return false
		}
	}
	return true
}

func toIDSet(ids []uint) map[uint]bool {
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
