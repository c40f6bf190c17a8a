package placement

import "github.com/sahana/lingo/internal/api"

// questionsMsg delivers the outcome of the question fetch.
type questionsMsg struct {
	Questions []api.Question
	Err       error
}

// resultSavedMsg reports the best-effort result persistence. A failed save
// never changes the attempt outcome; it only marks the local record unsynced.
type resultSavedMsg struct {
	Err error
}
