package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TransactionStatusPending   = "PENDING"
	TransactionStatusCompleted = "COMPLETED"
	TransactionStatusFailed    = "FAILED"
)

// PaymentTransaction records one checkout line item against an enrollment
type PaymentTransaction struct {
	gorm.Model
	UserID       uint   `json:"user_id" gorm:"index;not null"`
	EnrollmentID uint   `json:"enrollment_id" gorm:"index;not null"`
	CourseID     uint   `json:"course_id" gorm:"index;not null"`
	CourseType   string `json:"course_type"`

	Reference        string  `json:"reference" gorm:"uniqueIndex"` // internal reference (uuid)
	Gateway          string  `json:"gateway"`
	GatewayOrderID   string  `json:"gateway_order_id"`
	GatewayPaymentID string  `json:"gateway_payment_id" gorm:"index"`
	Amount           float64 `json:"amount" gorm:"not null"`
	Currency         string  `json:"currency" gorm:"default:'USD'"`
	Status           string  `json:"status" gorm:"default:'PENDING'"` // PENDING, COMPLETED, FAILED
	Description      string  `json:"description"`

	TransactionDate time.Time `json:"transaction_date"`
	IsDeleted       bool      `gorm:"default:false"`
}
