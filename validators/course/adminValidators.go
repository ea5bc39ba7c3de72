package courseValidator

import (
	"lms/middleware"
	courseModels "lms/models/course"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CreateInPerson validates the in-person course creation body
func CreateInPerson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title                string     `json:"title"`
			Description          string     `json:"description"`
			Instructor           string     `json:"instructor"`
			Venue                string     `json:"venue"`
			City                 string     `json:"city"`
			Price                float64    `json:"price"`
			Currency             string     `json:"currency"`
			Duration             int64      `json:"duration"`
			StartDate            time.Time  `json:"startDate"`
			EndDate              *time.Time `json:"endDate"`
			AssessmentRequired   bool       `json:"assessmentRequired"`
			PassingScore         *float64   `json:"passingScore"`
			LinkedOnlineCourseID *uint      `json:"linkedOnlineCourseId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.StartDate.IsZero() {
			errors["startDate"] = "Start date is required!"
		}
		if reqData.EndDate != nil && reqData.EndDate.Before(reqData.StartDate) {
			errors["endDate"] = "End date must be after the start date!"
		}
		if reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}
		if reqData.PassingScore != nil && (*reqData.PassingScore < 0 || *reqData.PassingScore > 100) {
			errors["passingScore"] = "Passing score must be between 0 and 100!"
		}
		if reqData.Currency == "" {
			reqData.Currency = "USD"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateInPerson", reqData)
		return c.Next()
	}
}

// CreateOnline validates the live online course creation body
func CreateOnline() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title              string     `json:"title"`
			Description        string     `json:"description"`
			Instructor         string     `json:"instructor"`
			Platform           string     `json:"platform"`
			MeetingURL         string     `json:"meetingUrl"`
			Price              float64    `json:"price"`
			Currency           string     `json:"currency"`
			Duration           int64      `json:"duration"`
			StartDate          time.Time  `json:"startDate"`
			EndDate            *time.Time `json:"endDate"`
			AssessmentRequired bool       `json:"assessmentRequired"`
			PassingScore       *float64   `json:"passingScore"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.StartDate.IsZero() {
			errors["startDate"] = "Start date is required!"
		}
		if reqData.EndDate != nil && reqData.EndDate.Before(reqData.StartDate) {
			errors["endDate"] = "End date must be after the start date!"
		}
		if reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}
		if reqData.PassingScore != nil && (*reqData.PassingScore < 0 || *reqData.PassingScore > 100) {
			errors["passingScore"] = "Passing score must be between 0 and 100!"
		}
		if reqData.Currency == "" {
			reqData.Currency = "USD"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateOnline", reqData)
		return c.Next()
	}
}

// CreateSelfPaced validates the self-paced course creation body
func CreateSelfPaced() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title            string  `json:"title"`
			Description      string  `json:"description"`
			Instructor       string  `json:"instructor"`
			Price            float64 `json:"price"`
			Currency         string  `json:"currency"`
			Duration         int64   `json:"duration"`
			RequireAllVideos *bool   `json:"requireAllVideos"`
			Videos           []struct {
				Title           string `json:"title"`
				VideoURL        string `json:"videoUrl"`
				DurationMinutes int    `json:"durationMinutes"`
				HasExam         bool   `json:"hasExam"`
			} `json:"videos"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}
		for _, v := range reqData.Videos {
			if strings.TrimSpace(v.Title) == "" {
				errors["videos"] = "Every video needs a title!"
				break
			}
		}
		if reqData.Currency == "" {
			reqData.Currency = "USD"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateSelfPaced", reqData)
		return c.Next()
	}
}

// AddSession validates scheduling a session on a live or in-person course
func AddSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID   uint      `json:"courseId"`
			CourseType string    `json:"courseType"`
			Title      string    `json:"title"`
			StartsAt   time.Time `json:"startsAt"`
			EndsAt     time.Time `json:"endsAt"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["courseId"] = "Course ID is required!"
		}
		if reqData.CourseType != courseModels.TypeInPerson && reqData.CourseType != courseModels.TypeOnlineLive {
			errors["courseType"] = "Sessions belong to IN_PERSON or ONLINE_LIVE courses!"
		}
		if reqData.StartsAt.IsZero() || reqData.EndsAt.IsZero() || !reqData.EndsAt.After(reqData.StartsAt) {
			errors["startsAt"] = "A valid session time range is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAddSession", reqData)
		return c.Next()
	}
}
