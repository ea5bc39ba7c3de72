package cartController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	cartRoutes "lms/routers/cartRoutes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	app   *fiber.App
	db    *gorm.DB
	user  *models.User
	token string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	config.LoadConfig()

	db := database.ConnectTestDb(t)

	app := fiber.New()
	cartRoutes.SetupCartRoutes(app)

	user := &models.User{Name: "Pat Rivera", Email: "pat@example.com", Password: "hashed"}
	require.NoError(t, db.Create(user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	return &testEnv{app: app, db: db, user: user, token: token}
}

func (e *testEnv) request(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.token)

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

// seedLinkedPair creates an active online course and an in-person course
// bundling it for free.
func seedLinkedPair(t *testing.T, db *gorm.DB) (*courseModels.InPersonCourse, *courseModels.OnlineCourse) {
	t.Helper()

	online := &courseModels.OnlineCourse{
		Title:       "Safety Theory Online",
		Instructor:  "R. Marsh",
		Price:       199,
		StartDate:   time.Now().Add(24 * time.Hour),
		Status:      courseModels.CourseStatusActive,
		IsPublished: true,
	}
	require.NoError(t, db.Create(online).Error)

	inPerson := &courseModels.InPersonCourse{
		Title:                "Safety Practical Workshop",
		Instructor:           "R. Marsh",
		Price:                499,
		StartDate:            time.Now().Add(48 * time.Hour),
		Status:               courseModels.CourseStatusActive,
		IsPublished:          true,
		LinkedOnlineCourseID: &online.ID,
	}
	require.NoError(t, db.Create(inPerson).Error)

	return inPerson, online
}

func TestAddInPersonCourseCreatesFreeCompanion(t *testing.T) {
	env := newTestEnv(t)
	inPerson, online := seedLinkedPair(t, env.db)

	resp := env.request(t, "POST", "/cart/add", fiber.Map{
		"courseId":   inPerson.ID,
		"courseType": courseModels.TypeInPerson,
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var companion courseModels.Enrollment
	err := env.db.Where("user_id = ? AND course_id = ? AND course_type = ? AND is_deleted = ?",
		env.user.ID, online.ID, courseModels.TypeOnlineLive, false).First(&companion).Error
	require.NoError(t, err)
	assert.Equal(t, courseModels.StatusCart, companion.Status)
	assert.True(t, companion.IsLinkedCourse)
	assert.True(t, companion.IsLinkedCourseFree)
	assert.Equal(t, float64(0), companion.OriginalPrice)

	// Cart total only counts the paid course
	resp = env.request(t, "GET", "/cart/", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	envelope := decodeEnvelope(t, resp)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, float64(499), data["total"])
	assert.Len(t, data["items"], 2)
}

func TestAddCourseTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	inPerson, _ := seedLinkedPair(t, env.db)

	body := fiber.Map{"courseId": inPerson.ID, "courseType": courseModels.TypeInPerson}

	resp := env.request(t, "POST", "/cart/add", body)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = env.request(t, "POST", "/cart/add", body)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAddUnknownCourseNotFound(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "POST", "/cart/add", fiber.Map{
		"courseId":   9999,
		"courseType": courseModels.TypeSelfPaced,
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRemoveInPersonCascadesToCompanion(t *testing.T) {
	env := newTestEnv(t)
	inPerson, online := seedLinkedPair(t, env.db)

	resp := env.request(t, "POST", "/cart/add", fiber.Map{
		"courseId":   inPerson.ID,
		"courseType": courseModels.TypeInPerson,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var entry courseModels.Enrollment
	require.NoError(t, env.db.Where("user_id = ? AND course_id = ? AND course_type = ?",
		env.user.ID, inPerson.ID, courseModels.TypeInPerson).First(&entry).Error)

	resp = env.request(t, "DELETE", fmt.Sprintf("/cart/%d", entry.ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Both the in-person entry and its free companion are gone
	var remaining int64
	env.db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND is_deleted = ?", env.user.ID, false).Count(&remaining)
	assert.Equal(t, int64(0), remaining)

	var companion courseModels.Enrollment
	err := env.db.Where("user_id = ? AND course_id = ? AND course_type = ? AND is_deleted = ?",
		env.user.ID, online.ID, courseModels.TypeOnlineLive, true).First(&companion).Error
	assert.NoError(t, err)
}

func TestRemoveCompanionDirectlyIsRejected(t *testing.T) {
	env := newTestEnv(t)
	inPerson, online := seedLinkedPair(t, env.db)

	resp := env.request(t, "POST", "/cart/add", fiber.Map{
		"courseId":   inPerson.ID,
		"courseType": courseModels.TypeInPerson,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var companion courseModels.Enrollment
	require.NoError(t, env.db.Where("user_id = ? AND course_id = ? AND course_type = ?",
		env.user.ID, online.ID, courseModels.TypeOnlineLive).First(&companion).Error)

	resp = env.request(t, "DELETE", fmt.Sprintf("/cart/%d", companion.ID), nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// The companion survives the rejected removal
	var still courseModels.Enrollment
	err := env.db.Where("id = ? AND is_deleted = ?", companion.ID, false).First(&still).Error
	assert.NoError(t, err)
}

func TestWishlistMoveToCartCreatesCompanion(t *testing.T) {
	env := newTestEnv(t)
	inPerson, online := seedLinkedPair(t, env.db)

	resp := env.request(t, "POST", "/wishlist/add", fiber.Map{
		"courseId":   inPerson.ID,
		"courseType": courseModels.TypeInPerson,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Wishlist entries do not pull in the companion yet
	var count int64
	env.db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND is_deleted = ?", env.user.ID, false).Count(&count)
	assert.Equal(t, int64(1), count)

	var entry courseModels.Enrollment
	require.NoError(t, env.db.Where("user_id = ? AND course_id = ? AND course_type = ?",
		env.user.ID, inPerson.ID, courseModels.TypeInPerson).First(&entry).Error)

	resp = env.request(t, "POST", fmt.Sprintf("/wishlist/%d/move-to-cart", entry.ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var companion courseModels.Enrollment
	err := env.db.Where("user_id = ? AND course_id = ? AND course_type = ? AND is_deleted = ?",
		env.user.ID, online.ID, courseModels.TypeOnlineLive, false).First(&companion).Error
	require.NoError(t, err)
	assert.True(t, companion.IsLinkedCourseFree)
}

func TestCheckoutSettlesCart(t *testing.T) {
	env := newTestEnv(t)
	inPerson, online := seedLinkedPair(t, env.db)

	selfPaced := &courseModels.SelfPacedCourse{
		Title:       "Blueprint Reading",
		Price:       99,
		Status:      courseModels.CourseStatusActive,
		IsPublished: true,
	}
	require.NoError(t, env.db.Create(selfPaced).Error)

	resp := env.request(t, "POST", "/cart/add", fiber.Map{
		"courseId":   inPerson.ID,
		"courseType": courseModels.TypeInPerson,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp = env.request(t, "POST", "/cart/add", fiber.Map{
		"courseId":   selfPaced.ID,
		"courseType": courseModels.TypeSelfPaced,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = env.request(t, "POST", "/cart/checkout", fiber.Map{
		"gateway":        "STRIPE",
		"gatewayOrderId": "order_123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, float64(598), data["total"])

	// The in-person entry waits for gateway confirmation; the free companion
	// and the self-paced course are registered right away
	statusOf := func(courseID uint, courseType string) string {
		var enr courseModels.Enrollment
		require.NoError(t, env.db.Where("user_id = ? AND course_id = ? AND course_type = ? AND is_deleted = ?",
			env.user.ID, courseID, courseType, false).First(&enr).Error)
		return enr.Status
	}
	assert.Equal(t, courseModels.StatusPaid, statusOf(inPerson.ID, courseModels.TypeInPerson))
	assert.Equal(t, courseModels.StatusRegistered, statusOf(online.ID, courseModels.TypeOnlineLive))
	assert.Equal(t, courseModels.StatusRegistered, statusOf(selfPaced.ID, courseModels.TypeSelfPaced))

	// One transaction per cart entry; the free companion's is completed at zero
	var txs []models.PaymentTransaction
	require.NoError(t, env.db.Where("user_id = ?", env.user.ID).Order("amount desc").Find(&txs).Error)
	require.Len(t, txs, 3)
	assert.Equal(t, float64(499), txs[0].Amount)
	assert.Equal(t, models.TransactionStatusPending, txs[0].Status)
	assert.Equal(t, float64(99), txs[1].Amount)
	assert.Equal(t, models.TransactionStatusPending, txs[1].Status)
	assert.Equal(t, float64(0), txs[2].Amount)
	assert.Equal(t, models.TransactionStatusCompleted, txs[2].Status)

	// Checkout on an emptied cart is rejected
	resp = env.request(t, "POST", "/cart/checkout", fiber.Map{"gateway": "STRIPE"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
