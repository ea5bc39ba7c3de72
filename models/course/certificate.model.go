package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate represents an issued course-completion certificate.
// CertificateID and VerificationCode carry unique indexes so duplicates are
// rejected by the database, and public verification is a single indexed lookup.
type Certificate struct {
	gorm.Model
	UserID     uint   `json:"user_id" gorm:"index;not null"`
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	CourseType string `json:"course_type" gorm:"not null"`

	CertificateID  string `json:"certificate_id" gorm:"uniqueIndex;not null"`
	RecipientName  string `json:"recipient_name"`
	RecipientEmail string `json:"recipient_email"`
	CourseTitle    string `json:"course_title"`
	Instructor     string `json:"instructor"`

	CompletionDate time.Time `json:"completion_date"`
	IssueDate      time.Time `json:"issue_date"`

	// Achievement snapshot at issue time
	AttendancePercent float64  `json:"attendance_percent"`
	FinalScore        *float64 `json:"final_score"`
	TotalHours        int64    `json:"total_hours"`
	Grade             string   `json:"grade"`

	VerificationCode string `json:"verification_code" gorm:"uniqueIndex;not null"`
	DigitalSignature string `json:"digital_signature"`
	ShareURL         string `json:"share_url"`

	DownloadCount int  `json:"download_count" gorm:"default:0"`
	ViewCount     int  `json:"view_count" gorm:"default:0"`
	IsDeleted     bool `gorm:"default:false"`
}
