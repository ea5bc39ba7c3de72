package certificateController_test

import (
	"bytes"
	"encoding/json"
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	certificateRoutes "lms/routers/certificateRoutes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB, *models.User, string) {
	t.Helper()
	config.LoadConfig()

	db := database.ConnectTestDb(t)

	app := fiber.New()
	certificateRoutes.SetupCertificateRoutes(app)

	user := &models.User{Name: "Jane Doe", Email: "jane@example.com", Password: "hashed"}
	require.NoError(t, db.Create(user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	return app, db, user, token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

// seedCompletedOnlineCourse builds an ended online course plus a registered
// enrollment with confirmed attendance, eligible for a certificate.
func seedCompletedOnlineCourse(t *testing.T, db *gorm.DB, userID uint) *courseModels.OnlineCourse {
	t.Helper()

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
		UserID:           userID,
		CourseID:         course.ID,
		CourseType:       courseModels.TypeOnlineLive,
		Status:           courseModels.StatusRegistered,
		AttendedSessions: courseModels.IDListJSON([]uint{1}),
		BestScore:        floatPtr(91),
	}
	require.NoError(t, db.Create(enr).Error)

	return course
}

func floatPtr(v float64) *float64 { return &v }

func TestIssueCertificateFlow(t *testing.T) {
	app, db, user, token := setupApp(t)
	course := seedCompletedOnlineCourse(t, db, user.ID)

	body := fiber.Map{"courseId": course.ID, "courseType": courseModels.TypeOnlineLive}

	resp := doRequest(t, app, "POST", "/certificate/issue", token, body)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	envelope := decodeBody(t, resp)
	data := envelope["data"].(map[string]interface{})
	certificateID := data["certificate_id"].(string)
	verificationCode := data["verification_code"].(string)
	assert.NotEmpty(t, certificateID)
	assert.NotEmpty(t, verificationCode)
	assert.Equal(t, "A-", data["grade"])

	// Re-issuing is idempotent: 200 with the same certificate
	resp = doRequest(t, app, "POST", "/certificate/issue", token, body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	envelope = decodeBody(t, resp)
	again := envelope["data"].(map[string]interface{})
	assert.Equal(t, certificateID, again["certificate_id"])

	var total int64
	db.Model(&courseModels.Certificate{}).Where("user_id = ?", user.ID).Count(&total)
	assert.Equal(t, int64(1), total)
}

func TestIssueCertificateAfterCancelledRepurchase(t *testing.T) {
	app, db, user, token := setupApp(t)

	ended := time.Now().Add(-96 * time.Hour)
	course := &courseModels.OnlineCourse{
		Title:       "Industrial Safety Fundamentals",
		Instructor:  "R. Marsh",
		StartDate:   ended.Add(-24 * time.Hour),
		EndDate:     &ended,
		Status:      courseModels.CourseStatusActive,
		IsPublished: true,
	}
	require.NoError(t, db.Create(course).Error)

	// A stale cart entry the scheduler cancelled, created before the
	// repurchase so it holds the lower primary key
	cancelled := &courseModels.Enrollment{
		UserID:     user.ID,
		CourseID:   course.ID,
		CourseType: courseModels.TypeOnlineLive,
		Status:     courseModels.StatusCancelled,
	}
	require.NoError(t, db.Create(cancelled).Error)

	repurchased := &courseModels.Enrollment{
		UserID:           user.ID,
		CourseID:         course.ID,
		CourseType:       courseModels.TypeOnlineLive,
		Status:           courseModels.StatusRegistered,
		AttendedSessions: courseModels.IDListJSON([]uint{1}),
		BestScore:        floatPtr(91),
	}
	require.NoError(t, db.Create(repurchased).Error)

	resp := doRequest(t, app, "POST", "/certificate/issue", token, fiber.Map{
		"courseId":   course.ID,
		"courseType": courseModels.TypeOnlineLive,
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestIssueCertificateIneligibleListsReasons(t *testing.T) {
	app, db, user, token := setupApp(t)

	// Course still running, nothing attended
	course := &courseModels.OnlineCourse{
		Title:       "Advanced Welding",
		StartDate:   time.Now().Add(24 * time.Hour),
		Status:      courseModels.CourseStatusActive,
		IsPublished: true,
	}
	require.NoError(t, db.Create(course).Error)

	enr := &courseModels.Enrollment{
		UserID:     user.ID,
		CourseID:   course.ID,
		CourseType: courseModels.TypeOnlineLive,
		Status:     courseModels.StatusRegistered,
	}
	require.NoError(t, db.Create(enr).Error)

	resp := doRequest(t, app, "POST", "/certificate/issue", token, fiber.Map{
		"courseId":   course.ID,
		"courseType": courseModels.TypeOnlineLive,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	envelope := decodeBody(t, resp)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, false, data["eligible"])
	assert.NotEmpty(t, data["reasons"])
}

func TestIssueCertificateRequiresPurchase(t *testing.T) {
	app, db, user, token := setupApp(t)
	course := seedCompletedOnlineCourse(t, db, user.ID)

	require.NoError(t, db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).
		Update("status", courseModels.StatusCart).Error)

	resp := doRequest(t, app, "POST", "/certificate/issue", token, fiber.Map{
		"courseId":   course.ID,
		"courseType": courseModels.TypeOnlineLive,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestIssueCertificateWithoutEnrollment(t *testing.T) {
	app, _, _, token := setupApp(t)

	resp := doRequest(t, app, "POST", "/certificate/issue", token, fiber.Map{
		"courseId":   12345,
		"courseType": courseModels.TypeSelfPaced,
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestVerifyCertificatePublicEndpoint(t *testing.T) {
	app, db, user, token := setupApp(t)
	course := seedCompletedOnlineCourse(t, db, user.ID)

	resp := doRequest(t, app, "POST", "/certificate/issue", token, fiber.Map{
		"courseId":   course.ID,
		"courseType": courseModels.TypeOnlineLive,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := decodeBody(t, resp)["data"].(map[string]interface{})
	code := data["verification_code"].(string)

	// No Authorization header: verification is public
	resp = doRequest(t, app, "GET", "/certificate/verify/"+code, "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	verified := decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, true, verified["valid"])
	assert.Equal(t, "Jane Doe", verified["recipient_name"])
	assert.Equal(t, "Industrial Safety Fundamentals", verified["course_title"])

	// Tampering with the stored recipient invalidates the signature
	require.NoError(t, db.Model(&courseModels.Certificate{}).
		Where("verification_code = ?", code).
		Update("recipient_name", "Someone Else").Error)

	resp = doRequest(t, app, "GET", "/certificate/verify/"+code, "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	tampered := decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, false, tampered["valid"])

	resp = doRequest(t, app, "GET", "/certificate/verify/nosuchcode", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestViewAndDownloadCounters(t *testing.T) {
	app, db, user, token := setupApp(t)
	course := seedCompletedOnlineCourse(t, db, user.ID)

	resp := doRequest(t, app, "POST", "/certificate/issue", token, fiber.Map{
		"courseId":   course.ID,
		"courseType": courseModels.TypeOnlineLive,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := decodeBody(t, resp)["data"].(map[string]interface{})
	certificateID := data["certificate_id"].(string)

	resp = doRequest(t, app, "GET", "/certificate/"+certificateID, token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = doRequest(t, app, "GET", "/certificate/"+certificateID+"/download", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var cert courseModels.Certificate
	require.NoError(t, db.Where("certificate_id = ?", certificateID).First(&cert).Error)
	assert.Equal(t, 1, cert.ViewCount)
	assert.Equal(t, 1, cert.DownloadCount)
}
