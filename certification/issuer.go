package certification

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"lms/models"
	courseModels "lms/models/course"
	"math/rand"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const base36Chars = "0123456789abcdefghijklmnopqrstuvwxyz"

// Issuer persists certificates for confirmed-eligible enrollments.
// Issue is idempotent per (user, course, courseType).
type Issuer struct {
	DB      *gorm.DB
	Secret  string // HMAC key for digital signatures
	BaseURL string // public base URL for share/verification links
}

// Issue returns the certificate for the enrollment, creating it when none
// exists yet. The second return value is false when an existing certificate
// was returned instead of a new one being created.
func (i *Issuer) Issue(user *models.User, enr *courseModels.Enrollment, info CourseInfo, now time.Time) (*courseModels.Certificate, bool, error) {
	var cert courseModels.Certificate
	created := false

	err := i.DB.Transaction(func(tx *gorm.DB) error {
		// Idempotent path: hand back the existing certificate untouched
		err := tx.Where("user_id = ? AND course_id = ? AND course_type = ? AND is_deleted = false",
			user.ID, enr.CourseID, enr.CourseType).First(&cert).Error
		if err == nil {
			return nil
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		code, err := i.uniqueVerificationCode(tx)
		if err != nil {
			return err
		}

		finalScore := snapshotScore(enr)
		completionDate := now

		cert = courseModels.Certificate{
			UserID:            user.ID,
			CourseID:          enr.CourseID,
			CourseType:        enr.CourseType,
			CertificateID:     newCertificateID(now),
			RecipientName:     user.Name,
			RecipientEmail:    user.Email,
			CourseTitle:       info.Title,
			Instructor:        info.Instructor,
			CompletionDate:    completionDate,
			IssueDate:         now,
			AttendancePercent: attendancePercent(enr, info),
			FinalScore:        finalScore,
			TotalHours:        info.TotalHours,
			Grade:             LetterGrade(finalScore),
			VerificationCode:  code,
			DigitalSignature:  Sign(i.Secret, user.Name, info.Title, completionDate, code),
			ShareURL:          i.BaseURL + "/certificate/verify/" + code,
		}

		if err := tx.Create(&cert).Error; err != nil {
			return err
		}
		created = true

		return refreshAchievementSummary(tx, user)
	})
	if err != nil {
		return nil, false, err
	}

	return &cert, created, nil
}

// Sign computes the certificate's digital signature: an HMAC-SHA256 over the
// canonical recipient|courseTitle|completionDate|verificationCode subset.
func Sign(secret, recipientName, courseTitle string, completionDate time.Time, verificationCode string) string {
	canonical := strings.Join([]string{
		recipientName,
		courseTitle,
		completionDate.UTC().Format("2006-01-02"),
		verificationCode,
	}, "|")

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(canonical))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature recomputes the signature and compares in constant time
func VerifySignature(secret string, cert *courseModels.Certificate) bool {
	expected := Sign(secret, cert.RecipientName, cert.CourseTitle, cert.CompletionDate, cert.VerificationCode)
	return hmac.Equal([]byte(expected), []byte(cert.DigitalSignature))
}

// newCertificateID builds an upper-cased timestamp + random suffix identifier
func newCertificateID(now time.Time) string {
	return strings.ToUpper(fmt.Sprintf("CERT-%s-%s", now.UTC().Format("20060102150405"), randomBase36(6)))
}

// uniqueVerificationCode generates a random base-36 code, retrying against
// the unique index a few times before giving up
func (i *Issuer) uniqueVerificationCode(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code := randomBase36(12)
		var count int64
		if err := tx.Model(&courseModels.Certificate{}).
			Where("verification_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique verification code")
}

func randomBase36(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = base36Chars[rand.Intn(len(base36Chars))]
	}
	return string(b)
}

func snapshotScore(enr *courseModels.Enrollment) *float64 {
	switch enr.CourseType {
	case courseModels.TypeInPerson:
		return enr.AssessmentScore
	default:
		return enr.BestScore
	}
}

func attendancePercent(enr *courseModels.Enrollment, info CourseInfo) float64 {
	if enr.CourseType == courseModels.TypeSelfPaced {
		return 100
	}
	if info.TotalSessions == 0 {
		if enr.ProgressStatus == courseModels.ProgressCompleted || len(enr.AttendedSessionIDs()) > 0 {
			return 100
		}
		return 0
	}
	pct := float64(len(enr.AttendedSessionIDs())) / float64(info.TotalSessions) * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}

// refreshAchievementSummary recomputes the user's certificate counters,
// specialization list, and tier from the certificates table
func refreshAchievementSummary(tx *gorm.DB, user *models.User) error {
	var certs []courseModels.Certificate
	if err := tx.Where("user_id = ? AND is_deleted = false", user.ID).
		Order("issue_date asc").Find(&certs).Error; err != nil {
		return err
	}

	seen := make(map[string]bool)
	var specializations []string
	for _, c := range certs {
		if c.CourseTitle == "" || seen[c.CourseTitle] {
			continue
		}
		seen[c.CourseTitle] = true
		specializations = append(specializations, c.CourseTitle)
	}

	raw, err := json.Marshal(specializations)
	if err != nil {
		return err
	}

	user.TotalCertificates = len(certs)
	user.AchievementLevel = AchievementLevel(len(certs))
	user.Specializations = datatypes.JSON(raw)

	return tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"total_certificates": user.TotalCertificates,
		"achievement_level":  user.AchievementLevel,
		"specializations":    user.Specializations,
	}).Error
}
