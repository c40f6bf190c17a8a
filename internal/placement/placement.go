package placement

import (
	"errors"
	"time"

	"github.com/sahana/lingo/internal/api"
)

// ErrNoQuestionData is reported when the attempt's index points past the end
// of its question set, e.g. after resuming stale state. Non-fatal; the only
// exit is Retry.
var ErrNoQuestionData = errors.New("no question data; restart required")

// defaultLoadErrMsg is shown when the backend gives no better detail.
const defaultLoadErrMsg = "No questions found for selected language"

// Begin moves the attempt from selection into loading for the given
// language. Returns false (and changes nothing) from any other stage, so an
// overlapping begin while already loading cannot start a second fetch.
func (a *Attempt) Begin(language string) bool {
	if a.Stage != StageSelection {
		return false
	}
	a.Language = language
	a.Stage = StageLoading
	return true
}

// QuestionsLoaded delivers the outcome of the fetch started by Begin.
// A non-empty set starts testing; an empty set or an error routes to the
// error stage with the server detail or the default message.
func (a *Attempt) QuestionsLoaded(questions []api.Question, err error) {
	if a.Stage != StageLoading {
		return
	}

	if err != nil {
		a.Stage = StageError
		a.ErrMsg = loadErrMsg(err)
		return
	}
	if len(questions) == 0 {
		a.Stage = StageError
		a.ErrMsg = defaultLoadErrMsg
		return
	}

	a.Questions = questions
	a.Answers = a.Answers[:0]
	a.Index = 0
	a.Stage = StageTesting
	a.StartedAt = time.Now()
}

// Current returns the question at the current index, or ErrNoQuestionData
// when the index is out of range.
func (a *Attempt) Current() (*api.Question, error) {
	if a.Stage != StageTesting {
		return nil, ErrNoQuestionData
	}
	if a.Index < 0 || a.Index >= len(a.Questions) {
		return nil, ErrNoQuestionData
	}
	return &a.Questions[a.Index], nil
}

// SubmitChoice records the choice for the current question and advances.
// On the last question the attempt transitions to finished and the grade is
// computed, exactly once. Ignored outside of testing or with a stale index.
func (a *Attempt) SubmitChoice(choice string) {
	if a.Stage != StageTesting {
		return
	}
	if a.Index >= len(a.Questions) {
		return
	}

	a.Answers = append(a.Answers, choice)

	if a.Index+1 < len(a.Questions) {
		a.Index++
		return
	}
	a.Index++
	a.finish()
}

// Retry discards all attempt state and returns to selection. The only exit
// from the error stage, and the recovery path for a stale index.
func (a *Attempt) Retry() {
	fresh := NewAttempt()
	*a = *fresh
}

// finish grades the attempt. Competency is derived deterministically from
// the recorded answers; no further input can change it.
func (a *Attempt) finish() {
	a.NumCorrect, a.Grade = Score(a.Questions, a.Answers)
	a.Competency = CompetencyFor(a.Grade)
	a.Stage = StageFinished
}

// Result returns the persistence payload for a finished attempt.
func (a *Attempt) Result() api.PlacementResult {
	return api.PlacementResult{
		Language: a.Language,
		Level:    string(a.Competency),
	}
}

func loadErrMsg(err error) string {
	var notFound *api.NotFoundError
	if errors.As(err, &notFound) {
		return defaultLoadErrMsg
	}
	var validation *api.ValidationError
	if errors.As(err, &validation) && validation.Detail != "" {
		return validation.Detail
	}
	var status *api.StatusError
	if errors.As(err, &status) && status.Detail != "" {
		return status.Detail
	}
	return defaultLoadErrMsg
}
