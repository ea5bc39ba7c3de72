package certification

// LetterGrade maps a final score to the grade printed on the certificate.
// Courses have no failing concept, so anything below C- (or no recorded
// score at all) becomes "Pass".
func LetterGrade(score *float64) string {
	if score == nil {
		return "Pass"
	}
	s := *score
	switch {
	case s >= 97:
		return "A+"
	case s >= 93:
		return "A"
	case s >= 90:
		return "A-"
	case s >= 87:
		return "B+"
	case s >= 83:
		return "B"
	case s >= 80:
		return "B-"
	case s >= 77:
		return "C+"
	case s >= 73:
		return "C"
	case s >= 70:
		return "C-"
	default:
		return "Pass"
	}
}

// AchievementLevel tiers a user by how many certificates they hold
func AchievementLevel(certificateCount int) string {
	switch {
	case certificateCount >= 15:
		return "Master"
	case certificateCount >= 10:
		return "Expert"
	case certificateCount >= 7:
		return "Advanced"
	case certificateCount >= 3:
		return "Intermediate"
	default:
		return "Beginner"
	}
}
