package placement

import "github.com/sahana/lingo/internal/api"

// Score counts correct answers and converts the count to a percentage
// grade. Answers beyond the question count are ignored; missing answers
// simply score nothing.
func Score(questions []api.Question, answers []string) (numCorrect int, grade float64) {
	if len(questions) == 0 {
		return 0, 0
	}
	for i := range questions {
		if i >= len(answers) {
			break
		}
		if answers[i] == questions[i].CorrectChoice {
			numCorrect++
		}
	}
	grade = float64(numCorrect) / float64(len(questions)) * 100
	return numCorrect, grade
}

// CompetencyFor maps a percentage grade onto a competency level. Boundaries
// are inclusive on the lower bucket: 70% is still Beginner, 90% is still
// Intermediate.
func CompetencyFor(grade float64) Competency {
	switch {
	case grade <= 70:
		return CompetencyBeginner
	case grade <= 90:
		return CompetencyIntermediate
	default:
		return CompetencyAdvanced
	}
}
