// Package placement is the placement-test screen. It renders the attempt
// state machine from internal/placement and owns the network commands that
// feed it.
package placement

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/sahana/lingo/internal/api"
	"github.com/sahana/lingo/internal/history"
	ptest "github.com/sahana/lingo/internal/placement"
	"github.com/sahana/lingo/internal/router"
	"github.com/sahana/lingo/internal/screen"
	"github.com/sahana/lingo/internal/ui/components"
	"github.com/sahana/lingo/internal/ui/layout"
)

// PlacementScreen drives one placement-test attempt end to end.
type PlacementScreen struct {
	client  *api.Client
	hist    *history.Store
	attempt *ptest.Attempt

	langMenu components.Menu
	choices  components.ChoiceList
}

var _ screen.Screen = (*PlacementScreen)(nil)
var _ screen.KeyHintProvider = (*PlacementScreen)(nil)

// New creates the placement-test screen.
func New(client *api.Client, hist *history.Store) *PlacementScreen {
	s := &PlacementScreen{
		client:  client,
		hist:    hist,
		attempt: ptest.NewAttempt(),
	}
	s.langMenu = s.newLanguageMenu()
	return s
}

func (s *PlacementScreen) Init() tea.Cmd {
	return nil
}

func (s *PlacementScreen) Title() string {
	return "Placement Test"
}

func (s *PlacementScreen) KeyHints() []layout.KeyHint {
	switch s.attempt.Stage {
	case ptest.StageSelection:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Language"},
			{Key: "Enter", Description: "Begin"},
			{Key: "Esc", Description: "Back"},
		}
	case ptest.StageTesting:
		return []layout.KeyHint{
			{Key: "↑↓/1-9", Description: "Choice"},
			{Key: "Enter", Description: "Answer"},
		}
	case ptest.StageError:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry selection"},
			{Key: "Esc", Description: "Back"},
		}
	case ptest.StageFinished:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
		}
	default:
		return nil
	}
}

func (s *PlacementScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsMsg:
		return s.handleQuestions(msg)

	case resultSavedMsg:
		// A failed save only marks the local record unsynced; the test
		// stays finished either way.
		return s, s.recordHistory(msg.Err == nil)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *PlacementScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.attempt.Stage {
	case ptest.StageSelection:
		var cmd tea.Cmd
		s.langMenu, cmd = s.langMenu.Update(msg)
		return s, cmd

	case ptest.StageLoading:
		// Nothing to do but wait; repeated Enter must not refetch.
		return s, nil

	case ptest.StageTesting:
		if _, err := s.attempt.Current(); err != nil {
			// Stale index: only retry leaves this state.
			if key == "r" || key == "R" || key == "enter" {
				return s, s.retry()
			}
			return s, nil
		}
		var chosen string
		s.choices, chosen = s.choices.Update(msg)
		if chosen != "" {
			return s, s.submitChoice(chosen)
		}
		return s, nil

	case ptest.StageError:
		if key == "r" || key == "R" || key == "enter" {
			return s, s.retry()
		}
		return s, nil

	case ptest.StageFinished:
		if key == "enter" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	return s, nil
}

// newLanguageMenu builds the selection menu over the supported languages.
func (s *PlacementScreen) newLanguageMenu() components.Menu {
	items := make([]components.MenuItem, len(ptest.Languages))
	for i, lang := range ptest.Languages {
		lang := lang
		items[i] = components.MenuItem{
			Label:  lang,
			Action: func() tea.Cmd { return s.begin(lang) },
		}
	}
	return components.NewMenu(items)
}

// begin starts the fetch for the chosen language. A begin while already
// loading is rejected by the attempt and produces no command.
func (s *PlacementScreen) begin(language string) tea.Cmd {
	if !s.attempt.Begin(language) {
		return nil
	}
	client := s.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		questions, err := client.FetchTest(ctx, language)
		return questionsMsg{Questions: questions, Err: err}
	}
}

func (s *PlacementScreen) handleQuestions(msg questionsMsg) (screen.Screen, tea.Cmd) {
	s.attempt.QuestionsLoaded(msg.Questions, msg.Err)
	if s.attempt.Stage == ptest.StageTesting {
		s.setupChoices()
	}
	return s, nil
}

// setupChoices rebuilds the choice component for the current question, with
// the opt-out entry appended after the server's choices.
func (s *PlacementScreen) setupChoices() {
	q, err := s.attempt.Current()
	if err != nil {
		return
	}
	choices := make([]string, 0, len(q.Choices)+1)
	choices = append(choices, q.Choices...)
	choices = append(choices, ptest.DontKnowChoice)
	s.choices = components.NewChoiceList(q.Prompt, choices)
}

// submitChoice records the answer and either advances to the next question
// or finishes the attempt and kicks off the result save.
func (s *PlacementScreen) submitChoice(choice string) tea.Cmd {
	s.attempt.SubmitChoice(choice)

	if s.attempt.Stage == ptest.StageFinished {
		return s.saveResult()
	}
	s.setupChoices()
	return nil
}

// saveResult persists the graded result, best effort.
func (s *PlacementScreen) saveResult() tea.Cmd {
	client := s.client
	result := s.attempt.Result()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return resultSavedMsg{Err: client.SaveResult(ctx, result)}
	}
}

// recordHistory appends the finished attempt to the local log.
func (s *PlacementScreen) recordHistory(saved bool) tea.Cmd {
	if s.hist == nil {
		return nil
	}
	hist := s.hist
	record := history.Record{
		AttemptID:    s.attempt.ID,
		Language:     s.attempt.Language,
		Level:        string(s.attempt.Competency),
		Grade:        s.attempt.Grade,
		NumCorrect:   s.attempt.NumCorrect,
		NumQuestions: len(s.attempt.Questions),
		Saved:        saved,
		TakenAt:      time.Now(),
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = hist.Append(ctx, record)
		return nil
	}
}

// retry resets the attempt back to selection.
func (s *PlacementScreen) retry() tea.Cmd {
	s.attempt.Retry()
	s.langMenu = s.newLanguageMenu()
	return nil
}
