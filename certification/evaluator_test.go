package certification

import (
	courseModels "lms/models/course"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func video(id uint, hasExam bool) courseModels.CourseVideo {
	return courseModels.CourseVideo{Model: gorm.Model{ID: id}, HasExam: hasExam}
}

func selfPacedCourse() *courseModels.SelfPacedCourse {
	return &courseModels.SelfPacedCourse{
		RequireAllVideos: true,
		Videos:           []courseModels.CourseVideo{video(1, false), video(2, true), video(3, true)},
	}
}

func TestSelfPacedEvaluator(t *testing.T) {
	clock := time.Now()

	tests := []struct {
		name     string
		videos   []uint
		exams    []uint
		eligible bool
	}{
		{"everything completed", []uint{1, 2, 3}, []uint{2, 3}, true},
		{"missing one video", []uint{1, 2}, []uint{2, 3}, false},
		{"missing one exam", []uint{1, 2, 3}, []uint{2}, false},
		{"nothing completed", nil, nil, false},
		{"exams without videos", []uint{}, []uint{2, 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enr := &courseModels.Enrollment{
				CompletedVideos: courseModels.IDListJSON(tt.videos),
				CompletedExams:  courseModels.IDListJSON(tt.exams),
			}
			ev := &SelfPacedEvaluator{Course: selfPacedCourse()}
			result := ev.Evaluate(enr, clock)
			assert.Equal(t, tt.eligible, result.Eligible)
			if !tt.eligible {
				assert.NotEmpty(t, result.Reasons)
			}
		})
	}
}

func TestSelfPacedEvaluatorVideosOptional(t *testing.T) {
	course := selfPacedCourse()
	course.RequireAllVideos = false

	enr := &courseModels.Enrollment{
		CompletedVideos: courseModels.IDListJSON(nil),
		CompletedExams:  courseModels.IDListJSON([]uint{2, 3}),
	}
	result := (&SelfPacedEvaluator{Course: course}).Evaluate(enr, time.Now())
	assert.True(t, result.Eligible)
}

func TestOnlineLiveEvaluator(t *testing.T) {
	clock := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	past := clock.Add(-48 * time.Hour)
	future := clock.Add(48 * time.Hour)

	attended := courseModels.IDListJSON([]uint{10})
	empty := courseModels.IDListJSON(nil)

	tests := []struct {
		name     string
		course   courseModels.OnlineCourse
		enr      courseModels.Enrollment
		eligible bool
	}{
		{
			"course still running",
			courseModels.OnlineCourse{StartDate: past, EndDate: &future},
			courseModels.Enrollment{AttendedSessions: attended},
			false,
		},
		{
			"no end date, future start",
			courseModels.OnlineCourse{StartDate: future},
			courseModels.Enrollment{AttendedSessions: attended},
			false,
		},
		{
			"no end date, past start",
			courseModels.OnlineCourse{StartDate: past},
			courseModels.Enrollment{AttendedSessions: attended},
			true,
		},
		{
			"ended but no attendance",
			courseModels.OnlineCourse{StartDate: past.Add(-time.Hour), EndDate: &past},
			courseModels.Enrollment{AttendedSessions: empty},
			false,
		},
		{
			"ended, progress completed counts as attendance",
			courseModels.OnlineCourse{StartDate: past.Add(-time.Hour), EndDate: &past},
			courseModels.Enrollment{AttendedSessions: empty, ProgressStatus: courseModels.ProgressCompleted},
			true,
		},
		{
			"assessment score below passing",
			courseModels.OnlineCourse{StartDate: past, AssessmentRequired: true, PassingScore: 70},
			courseModels.Enrollment{AttendedSessions: attended, BestScore: floatPtr(69)},
			false,
		},
		{
			"assessment score at passing boundary",
			courseModels.OnlineCourse{StartDate: past, AssessmentRequired: true, PassingScore: 70},
			courseModels.Enrollment{AttendedSessions: attended, BestScore: floatPtr(70)},
			true,
		},
		{
			"assessment required but never taken",
			courseModels.OnlineCourse{StartDate: past, AssessmentRequired: true, PassingScore: 70},
			courseModels.Enrollment{AttendedSessions: attended},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := (&OnlineLiveEvaluator{Course: &tt.course}).Evaluate(&tt.enr, clock)
			assert.Equal(t, tt.eligible, result.Eligible, "reasons: %v", result.Reasons)
		})
	}
}

func TestInPersonEvaluatorLinkedCourseGate(t *testing.T) {
	clock := time.Now()
	past := clock.Add(-72 * time.Hour)
	linkedID := uint(42)

	course := &courseModels.InPersonCourse{
		StartDate:            past,
		LinkedOnlineCourseID: &linkedID,
	}
	enr := &courseModels.Enrollment{
		UserID:           7,
		AttendedSessions: courseModels.IDListJSON([]uint{1}),
	}

	t.Run("linked course incomplete blocks evaluation", func(t *testing.T) {
		ev := &InPersonEvaluator{
			Course:      course,
			LinkedCheck: func(userID uint, now time.Time) (bool, error) { return false, nil },
		}
		result := ev.Evaluate(enr, clock)
		assert.False(t, result.Eligible)
		assert.Equal(t, []string{"Required linked online course is not completed"}, result.Reasons)
	})

	t.Run("linked course complete lets evaluation pass", func(t *testing.T) {
		called := false
		ev := &InPersonEvaluator{
			Course: course,
			LinkedCheck: func(userID uint, now time.Time) (bool, error) {
				called = true
				assert.Equal(t, uint(7), userID)
				return true, nil
			},
		}
		result := ev.Evaluate(enr, clock)
		assert.True(t, called)
		assert.True(t, result.Eligible, "reasons: %v", result.Reasons)
	})
}

func TestInPersonEvaluatorUsesAssessmentScore(t *testing.T) {
	clock := time.Now()
	course := &courseModels.InPersonCourse{
		StartDate:          clock.Add(-72 * time.Hour),
		AssessmentRequired: true,
		PassingScore:       70,
	}

	enr := &courseModels.Enrollment{
		AttendedSessions: courseModels.IDListJSON([]uint{1}),
		BestScore:        floatPtr(95), // ignored for in-person
		AssessmentScore:  floatPtr(69),
	}
	result := (&InPersonEvaluator{Course: course}).Evaluate(enr, clock)
	assert.False(t, result.Eligible)

	enr.AssessmentScore = floatPtr(70)
	result = (&InPersonEvaluator{Course: course}).Evaluate(enr, clock)
	assert.True(t, result.Eligible)
}

func TestSignature(t *testing.T) {
	date := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)

	sig1 := Sign("secret", "Jane Doe", "Welding Basics", date, "abc123def456")
	sig2 := Sign("secret", "Jane Doe", "Welding Basics", date, "abc123def456")
	assert.Equal(t, sig1, sig2)
	assert.Len(t, sig1, 64) // hex-encoded SHA-256

	// Signature binds every canonical field
	assert.NotEqual(t, sig1, Sign("other", "Jane Doe", "Welding Basics", date, "abc123def456"))
	assert.NotEqual(t, sig1, Sign("secret", "John Doe", "Welding Basics", date, "abc123def456"))
	assert.NotEqual(t, sig1, Sign("secret", "Jane Doe", "Welding Basics", date, "zzz"))

	cert := &courseModels.Certificate{
		RecipientName:    "Jane Doe",
		CourseTitle:      "Welding Basics",
		CompletionDate:   date,
		VerificationCode: "abc123def456",
		DigitalSignature: sig1,
	}
	assert.True(t, VerifySignature("secret", cert))
	assert.False(t, VerifySignature("wrong", cert))
}
