package placement

import (
	"errors"
	"testing"

	"github.com/sahana/lingo/internal/api"
)

func TestBeginOnlyFromSelection(t *testing.T) {
	a := NewAttempt()

	if !a.Begin("Spanish") {
		t.Fatal("Begin() = false from selection, want true")
	}
	if a.Stage != StageLoading {
		t.Fatalf("Stage = %v, want loading", a.Stage)
	}
	if a.Language != "Spanish" {
		t.Errorf("Language = %q, want %q", a.Language, "Spanish")
	}

	// A second begin while loading must not restart the fetch.
	if a.Begin("French") {
		t.Error("Begin() = true while loading, want false")
	}
	if a.Language != "Spanish" {
		t.Errorf("Language = %q after rejected begin, want %q", a.Language, "Spanish")
	}
}

func TestQuestionsLoadedStartsTesting(t *testing.T) {
	a := NewAttempt()
	a.Begin("Spanish")

	a.QuestionsLoaded(tenQuestions(), nil)

	if a.Stage != StageTesting {
		t.Fatalf("Stage = %v, want testing", a.Stage)
	}
	if a.Index != 0 {
		t.Errorf("Index = %d, want 0", a.Index)
	}
	if len(a.Answers) != 0 {
		t.Errorf("len(Answers) = %d, want 0", len(a.Answers))
	}

	q, err := a.Current()
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if q.Prompt != "question 1" {
		t.Errorf("Prompt = %q, want %q", q.Prompt, "question 1")
	}
}

func TestQuestionsLoadedEmptySetIsError(t *testing.T) {
	a := NewAttempt()
	a.Begin("Spanish")

	a.QuestionsLoaded(nil, nil)

	if a.Stage != StageError {
		t.Fatalf("Stage = %v, want error", a.Stage)
	}
	if a.ErrMsg != "No questions found for selected language" {
		t.Errorf("ErrMsg = %q, want default message", a.ErrMsg)
	}
}

func TestQuestionsLoadedErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "not found uses default message",
			err:  &api.NotFoundError{Language: "Spanish"},
			want: "No questions found for selected language",
		},
		{
			name: "validation detail passes through",
			err:  &api.ValidationError{Detail: "language not supported"},
			want: "language not supported",
		},
		{
			name: "status detail passes through",
			err:  &api.StatusError{StatusCode: 502, Detail: "upstream down"},
			want: "upstream down",
		},
		{
			name: "opaque error uses default message",
			err:  errors.New("dial tcp: connection refused"),
			want: "No questions found for selected language",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAttempt()
			a.Begin("Spanish")
			a.QuestionsLoaded(nil, tt.err)

			if a.Stage != StageError {
				t.Fatalf("Stage = %v, want error", a.Stage)
			}
			if a.ErrMsg != tt.want {
				t.Errorf("ErrMsg = %q, want %q", a.ErrMsg, tt.want)
			}
		})
	}
}

func TestQuestionsLoadedIgnoredOutsideLoading(t *testing.T) {
	a := NewAttempt()
	a.QuestionsLoaded(tenQuestions(), nil)
	if a.Stage != StageSelection {
		t.Errorf("Stage = %v, want selection (delivery outside loading is a no-op)", a.Stage)
	}
}

func TestFullRunGradesOnce(t *testing.T) {
	a := NewAttempt()
	a.Begin("French")
	a.QuestionsLoaded(tenQuestions(), nil)

	answers := answersWithCorrect(10, 8)
	for i, answer := range answers {
		if a.Stage != StageTesting {
			t.Fatalf("Stage = %v before answer %d, want testing", a.Stage, i)
		}
		if len(a.Answers) != a.Index {
			t.Fatalf("len(Answers) = %d at Index %d, want equal", len(a.Answers), a.Index)
		}
		a.SubmitChoice(answer)
	}

	if a.Stage != StageFinished {
		t.Fatalf("Stage = %v after last answer, want finished", a.Stage)
	}
	if a.NumCorrect != 8 {
		t.Errorf("NumCorrect = %d, want 8", a.NumCorrect)
	}
	if a.Grade != 80 {
		t.Errorf("Grade = %v, want 80", a.Grade)
	}
	if a.Competency != CompetencyIntermediate {
		t.Errorf("Competency = %q, want %q", a.Competency, CompetencyIntermediate)
	}

	// Further submissions cannot change the grade.
	a.SubmitChoice("yes")
	if a.NumCorrect != 8 || len(a.Answers) != 10 {
		t.Errorf("finished attempt changed: NumCorrect=%d len(Answers)=%d", a.NumCorrect, len(a.Answers))
	}

	result := a.Result()
	if result.Language != "French" || result.Level != "Intermediate" {
		t.Errorf("Result() = %+v, want French/Intermediate", result)
	}
}

func TestCurrentWithStaleIndex(t *testing.T) {
	a := NewAttempt()
	a.Begin("Spanish")
	a.QuestionsLoaded(tenQuestions(), nil)
	a.Index = 42

	if _, err := a.Current(); !errors.Is(err, ErrNoQuestionData) {
		t.Errorf("Current() error = %v, want ErrNoQuestionData", err)
	}

	// Submitting at a stale index must not grade or panic.
	a.SubmitChoice("yes")
	if a.Stage != StageTesting {
		t.Errorf("Stage = %v after stale submit, want still testing", a.Stage)
	}
}

func TestRetryResetsEverything(t *testing.T) {
	a := NewAttempt()
	oldID := a.ID
	a.Begin("Japanese")
	a.QuestionsLoaded(nil, &api.NotFoundError{Language: "Japanese"})

	a.Retry()

	if a.Stage != StageSelection {
		t.Errorf("Stage = %v, want selection", a.Stage)
	}
	if a.Language != "" || a.ErrMsg != "" || len(a.Questions) != 0 || len(a.Answers) != 0 {
		t.Errorf("attempt not fully reset: %+v", a)
	}
	if a.ID == oldID {
		t.Error("Retry() kept the old attempt ID")
	}
}
