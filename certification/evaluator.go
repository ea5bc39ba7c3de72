package certification

import (
	"fmt"
	courseModels "lms/models/course"
	"time"

	"gorm.io/gorm"
)

// Result is the outcome of an eligibility evaluation. Reasons are
// human-readable and only populated when Eligible is false.
type Result struct {
	Eligible bool     `json:"eligible"`
	Reasons  []string `json:"reasons"`
}

// Evaluator decides whether a certificate may be issued for an enrollment.
// One variant exists per course catalog. Evaluation is read-only.
type Evaluator interface {
	Evaluate(enr *courseModels.Enrollment, now time.Time) Result
}

// CourseInfo is the course snapshot the issuer stamps onto a certificate
type CourseInfo struct {
	Title         string
	Instructor    string
	TotalHours    int64
	TotalSessions int
}

// SelfPacedEvaluator requires the whole course to be worked through:
// every video watched and every exam-bearing video's exam completed.
type SelfPacedEvaluator struct {
	Course *courseModels.SelfPacedCourse
}

func (e *SelfPacedEvaluator) Evaluate(enr *courseModels.Enrollment, now time.Time) Result {
	if e.Course.IsCertificateEligible(enr) {
		return Result{Eligible: true}
	}

	var reasons []string
	doneVideos := make(map[uint]bool)
	for _, id := range enr.CompletedVideoIDs() {
		doneVideos[id] = true
	}
	doneExams := make(map[uint]bool)
	for _, id := range enr.CompletedExamIDs() {
		doneExams[id] = true
	}

	missingVideos, missingExams := 0, 0
	for _, v := range e.Course.Videos {
		if v.IsDeleted {
			continue
		}
		if e.Course.RequireAllVideos && !doneVideos[v.ID] {
			missingVideos++
		}
		if v.HasExam && !doneExams[v.ID] {
			missingExams++
		}
	}
	if missingVideos > 0 {
		reasons = append(reasons, fmt.Sprintf("%d course video(s) not completed", missingVideos))
	}
	if missingExams > 0 {
		reasons = append(reasons, fmt.Sprintf("%d video exam(s) not completed", missingExams))
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "Course progress is not complete")
	}
	return Result{Eligible: false, Reasons: reasons}
}

// OnlineLiveEvaluator requires the schedule to be over, attendance to be
// confirmed, and the best assessment score to meet the passing threshold
// when the course requires an assessment.
type OnlineLiveEvaluator struct {
	Course *courseModels.OnlineCourse
}

func (e *OnlineLiveEvaluator) Evaluate(enr *courseModels.Enrollment, now time.Time) Result {
	var reasons []string

	if !e.Course.HasEnded(now) {
		reasons = append(reasons, "Course has not ended yet")
	}
	if len(enr.AttendedSessionIDs()) == 0 && enr.ProgressStatus != courseModels.ProgressCompleted {
		reasons = append(reasons, "Attendance is not confirmed")
	}
	if e.Course.AssessmentRequired {
		if enr.BestScore == nil {
			reasons = append(reasons, "Assessment has not been taken")
		} else if *enr.BestScore < e.Course.PassingScore {
			reasons = append(reasons, fmt.Sprintf("Best score %.0f is below the passing score %.0f", *enr.BestScore, e.Course.PassingScore))
		}
	}

	return Result{Eligible: len(reasons) == 0, Reasons: reasons}
}

// InPersonEvaluator applies the same three-part rule as live courses but
// reads attendance from the attendance records and the score from the
// assessment score field. When the course declares a required linked online
// course, that linkage's completion is verified first through the course
// model's capability; evaluation does not proceed past a failed linkage.
type InPersonEvaluator struct {
	Course      *courseModels.InPersonCourse
	LinkedCheck func(userID uint, now time.Time) (bool, error)
}

func (e *InPersonEvaluator) Evaluate(enr *courseModels.Enrollment, now time.Time) Result {
	if e.Course.LinkedOnlineCourseID != nil && e.LinkedCheck != nil {
		ok, err := e.LinkedCheck(enr.UserID, now)
		if err != nil {
			return Result{Eligible: false, Reasons: []string{"Linked course verification failed"}}
		}
		if !ok {
			return Result{Eligible: false, Reasons: []string{"Required linked online course is not completed"}}
		}
	}

	var reasons []string

	if !e.Course.HasEnded(now) {
		reasons = append(reasons, "Course has not ended yet")
	}
	if len(enr.AttendedSessionIDs()) == 0 && enr.ProgressStatus != courseModels.ProgressCompleted {
		reasons = append(reasons, "Attendance is not confirmed")
	}
	if e.Course.AssessmentRequired {
		if enr.AssessmentScore == nil {
			reasons = append(reasons, "Assessment has not been taken")
		} else if *enr.AssessmentScore < e.Course.PassingScore {
			reasons = append(reasons, fmt.Sprintf("Assessment score %.0f is below the passing score %.0f", *enr.AssessmentScore, e.Course.PassingScore))
		}
	}

	return Result{Eligible: len(reasons) == 0, Reasons: reasons}
}

// ForEnrollment loads the enrollment's course and builds the matching
// evaluator variant plus the course snapshot the issuer needs.
// gorm.ErrRecordNotFound is returned when the course no longer exists.
func ForEnrollment(db *gorm.DB, enr *courseModels.Enrollment) (Evaluator, CourseInfo, error) {
	switch enr.CourseType {
	case courseModels.TypeSelfPaced:
		var c courseModels.SelfPacedCourse
		if err := db.Preload("Videos", "is_deleted = false").
			Where("id = ? AND is_deleted = false", enr.CourseID).First(&c).Error; err != nil {
			return nil, CourseInfo{}, err
		}
		return &SelfPacedEvaluator{Course: &c}, CourseInfo{
			Title:      c.Title,
			Instructor: c.Instructor,
			TotalHours: c.Duration,
		}, nil

	case courseModels.TypeOnlineLive:
		var c courseModels.OnlineCourse
		if err := db.Where("id = ? AND is_deleted = false", enr.CourseID).First(&c).Error; err != nil {
			return nil, CourseInfo{}, err
		}
		return &OnlineLiveEvaluator{Course: &c}, CourseInfo{
			Title:         c.Title,
			Instructor:    c.Instructor,
			TotalHours:    c.Duration,
			TotalSessions: countSessions(db, c.ID, courseModels.TypeOnlineLive),
		}, nil

	case courseModels.TypeInPerson:
		var c courseModels.InPersonCourse
		if err := db.Where("id = ? AND is_deleted = false", enr.CourseID).First(&c).Error; err != nil {
			return nil, CourseInfo{}, err
		}
		ev := &InPersonEvaluator{
			Course: &c,
			LinkedCheck: func(userID uint, now time.Time) (bool, error) {
				return c.LinkedCourseCompleted(db, userID, now)
			},
		}
		return ev, CourseInfo{
			Title:         c.Title,
			Instructor:    c.Instructor,
			TotalHours:    c.Duration,
			TotalSessions: countSessions(db, c.ID, courseModels.TypeInPerson),
		}, nil

	default:
		return nil, CourseInfo{}, fmt.Errorf("unknown course type: %s", enr.CourseType)
	}
}

func countSessions(db *gorm.DB, courseID uint, courseType string) int {
	var total int64
	db.Model(&courseModels.CourseSession{}).
		Where("course_id = ? AND course_type = ? AND is_deleted = false", courseID, courseType).
		Count(&total)
	return int(total)
}
