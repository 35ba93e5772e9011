package grading

// ExamGrade maps a percentage of correct answers to a 1-6 grade, lower
// being better, mirroring the German school grading scale.
func ExamGrade(correct, total int) int {
	if total <= 0 {
		return 6
	}
	percent := float64(correct) / float64(total) * 100
	switch {
	case percent >= 92:
		return 1
	case percent >= 81:
		return 2
	case percent >= 67:
		return 3
	case percent >= 50:
		return 4
	case percent >= 30:
		return 5
	default:
		return 6
	}
}
