// Package placement implements the placement-test state machine: language
// selection, question delivery, answer collection, scoring and result
// persistence. It is pure state and arithmetic; networking and rendering
// live with the caller.
package placement

import (
	"time"

	"github.com/google/uuid"

	"github.com/sahana/lingo/internal/api"
)

// Stage is the current stage of a placement-test attempt.
type Stage int

const (
	StageSelection Stage = iota // Picking a target language
	StageLoading                // Fetching questions
	StageTesting                // Answering questions
	StageError                  // Recoverable failure, retry returns to selection
	StageFinished               // Graded, result persistence in flight
)

func (s Stage) String() string {
	switch s {
	case StageSelection:
		return "selection"
	case StageLoading:
		return "loading"
	case StageTesting:
		return "testing"
	case StageError:
		return "error"
	case StageFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Competency is the graded proficiency level.
type Competency string

const (
	CompetencyNone         Competency = ""
	CompetencyBeginner     Competency = "Beginner"
	CompetencyIntermediate Competency = "Intermediate"
	CompetencyAdvanced     Competency = "Advanced"
)

// DontKnowChoice is the opt-out answer offered on every question. It is
// scored like any other choice: correct only if it happens to equal the
// question's correct choice, which well-formed data never produces.
const DontKnowChoice = "I don't know"

// Languages is the fixed list of languages a test can be taken in.
var Languages = []string{"Spanish", "French", "Japanese"}

// Attempt is one placement-test run. Owned by a single controller, never
// shared; a new attempt replaces it wholesale on retry.
type Attempt struct {
	// ID identifies this attempt in the local history store.
	ID string

	// Stage is the current state-machine stage.
	Stage Stage

	// Language is the selected target language.
	Language string

	// Questions is the ordered question set, immutable once fetched.
	Questions []api.Question

	// Answers grows by exactly one entry per answered question.
	// len(Answers) == Index while testing.
	Answers []string

	// Index is the current question position, 0 <= Index <= len(Questions).
	Index int

	// Competency is set exactly once, on the transition into StageFinished.
	Competency Competency

	// NumCorrect and Grade are fixed alongside Competency.
	NumCorrect int
	Grade      float64

	// ErrMsg is present only in StageError.
	ErrMsg string

	// StartedAt is when the questions arrived and testing began.
	StartedAt time.Time
}

// NewAttempt creates an attempt at the selection stage.
func NewAttempt() *Attempt {
	return &Attempt{
		ID:    uuid.New().String(),
		Stage: StageSelection,
	}
}
