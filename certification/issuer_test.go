package certification

import (
	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedOnlineEnrollment(t *testing.T, db *gorm.DB) (*models.User, *courseModels.Enrollment) {
	t.Helper()

	user := &models.User{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "hashed",
	}
	require.NoError(t, db.Create(user).Error)

	ended := time.Now().Add(-96 * time.Hour)
	course := &courseModels.OnlineCourse{
		Title:       "Industrial Safety Fundamentals",
		Instructor:  "R. Marsh",
		Duration:    16,
		StartDate:   ended.Add(-24 * time.Hour),
		EndDate:     &ended,
		Status:      courseModels.CourseStatusActive,
		IsPublished: true,
	}
	require.NoError(t, db.Create(course).Error)

	enr := &courseModels.Enrollment{
		UserID:           user.ID,
		CourseID:         course.ID,
		CourseType:       courseModels.TypeOnlineLive,
		Status:           courseModels.StatusRegistered,
		AttendedSessions: courseModels.IDListJSON([]uint{1}),
		BestScore:        floatPtr(88),
	}
	require.NoError(t, db.Create(enr).Error)

	return user, enr
}

func TestIssuerIdempotent(t *testing.T) {
	db := database.ConnectTestDb(t)
	user, enr := seedOnlineEnrollment(t, db)

	issuer := &Issuer{DB: db, Secret: "test-secret", BaseURL: "http://localhost:5000"}

	ev, info, err := ForEnrollment(db, enr)
	require.NoError(t, err)
	require.True(t, ev.Evaluate(enr, time.Now()).Eligible)

	first, created, err := issuer.Issue(user, enr, info, time.Now())
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, first.CertificateID)
	assert.NotEmpty(t, first.VerificationCode)
	assert.Equal(t, "B+", first.Grade)
	assert.Equal(t, "Industrial Safety Fundamentals", first.CourseTitle)
	assert.True(t, VerifySignature("test-secret", first))
	assert.Contains(t, first.ShareURL, first.VerificationCode)

	// A second issue hands back the same certificate without writing a new row
	second, created, err := issuer.Issue(user, enr, info, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.CertificateID, second.CertificateID)
	assert.Equal(t, first.VerificationCode, second.VerificationCode)

	var total int64
	db.Model(&courseModels.Certificate{}).Where("user_id = ?", user.ID).Count(&total)
	assert.Equal(t, int64(1), total)
}

func TestIssuerRefreshesAchievementSummary(t *testing.T) {
	db := database.ConnectTestDb(t)
	user, enr := seedOnlineEnrollment(t, db)

	issuer := &Issuer{DB: db, Secret: "test-secret", BaseURL: "http://localhost:5000"}

	_, _, err := ForEnrollment(db, enr)
	require.NoError(t, err)

	// Two more self-paced courses so the user crosses the Intermediate line
	for _, title := range []string{"Blueprint Reading", "Forklift Operation"} {
		course := &courseModels.SelfPacedCourse{Title: title, Status: courseModels.CourseStatusActive, IsPublished: true}
		require.NoError(t, db.Create(course).Error)

		extra := &courseModels.Enrollment{
			UserID:     user.ID,
			CourseID:   course.ID,
			CourseType: courseModels.TypeSelfPaced,
			Status:     courseModels.StatusCompleted,
		}
		require.NoError(t, db.Create(extra).Error)

		_, _, err := issuer.Issue(user, extra, CourseInfo{Title: title}, time.Now())
		require.NoError(t, err)
	}

	_, _, err = issuer.Issue(user, enr, CourseInfo{Title: "Industrial Safety Fundamentals", TotalSessions: 1}, time.Now())
	require.NoError(t, err)

	var refreshed models.User
	require.NoError(t, db.First(&refreshed, user.ID).Error)
	assert.Equal(t, 3, refreshed.TotalCertificates)
	assert.Equal(t, "Intermediate", refreshed.AchievementLevel)
	assert.Contains(t, string(refreshed.Specializations), "Blueprint Reading")
	assert.Contains(t, string(refreshed.Specializations), "Forklift Operation")
}

func TestVerificationCodesAreUniquePerIssue(t *testing.T) {
	db := database.ConnectTestDb(t)
	user, enr := seedOnlineEnrollment(t, db)

	other := &models.User{Name: "Sam Lee", Email: "sam@example.com", Password: "hashed"}
	require.NoError(t, db.Create(other).Error)
	otherEnr := &courseModels.Enrollment{
		UserID:     other.ID,
		CourseID:   enr.CourseID,
		CourseType: courseModels.TypeOnlineLive,
		Status:     courseModels.StatusRegistered,
	}
	require.NoError(t, db.Create(otherEnr).Error)

	issuer := &Issuer{DB: db, Secret: "test-secret", BaseURL: "http://localhost:5000"}

	a, _, err := issuer.Issue(user, enr, CourseInfo{Title: "Industrial Safety Fundamentals"}, time.Now())
	require.NoError(t, err)
	b, _, err := issuer.Issue(other, otherEnr, CourseInfo{Title: "Industrial Safety Fundamentals"}, time.Now())
	require.NoError(t, err)

	assert.NotEqual(t, a.VerificationCode, b.VerificationCode)
	assert.NotEqual(t, a.CertificateID, b.CertificateID)
}
