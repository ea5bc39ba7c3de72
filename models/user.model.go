package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage    string `gorm:"default:''"`
	Name            string `gorm:"default:''"`
	Email           string `gorm:"unique;not null"`
	Mobile          string `gorm:"default:''"`
	Role            string `gorm:"default:'USER'"` // USER, ADMIN
	Password        string `gorm:"not null"`
	IsEmailVerified bool   `gorm:"default:false"`

	// Achievement summary, refreshed on every certificate issue
	TotalCertificates int            `json:"total_certificates" gorm:"default:0"`
	AchievementLevel  string         `json:"achievement_level" gorm:"default:'Beginner'"`
	Specializations   datatypes.JSON `json:"specializations"`

	LastLogin           time.Time `gorm:"default:NULL"`
	FailedLoginAttempts int       `gorm:"default:0"`
	LastFailedLogin     *time.Time
	IsBlocked           bool       `gorm:"default:false"`
	BlockedUntil        *time.Time `json:"blocked_until"`
	IsDeleted           bool       `gorm:"default:false"`
}
