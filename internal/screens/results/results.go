package results

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sahana/lingo/internal/history"
	"github.com/sahana/lingo/internal/screen"
	"github.com/sahana/lingo/internal/ui/theme"
)

// recordsMsg delivers the local attempt log.
type recordsMsg struct {
	Records []history.Record
	Err     error
}

// ResultsScreen lists past placement attempts from the local store.
type ResultsScreen struct {
	hist    *history.Store
	records []history.Record
	errMsg  string
	loaded  bool
}

var _ screen.Screen = (*ResultsScreen)(nil)

// New creates the results screen.
func New(hist *history.Store) *ResultsScreen {
	return &ResultsScreen{hist: hist}
}

func (s *ResultsScreen) Init() tea.Cmd {
	hist := s.hist
	return func() tea.Msg {
		if hist == nil {
			return recordsMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		records, err := hist.List(ctx)
		return recordsMsg{Records: records, Err: err}
	}
}

func (s *ResultsScreen) Title() string {
	return "My Results"
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(recordsMsg); ok {
		s.loaded = true
		if m.Err != nil {
			s.errMsg = m.Err.Error()
		}
		s.records = m.Records
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	var content string

	switch {
	case !s.loaded:
		content = theme.Hint.Render("Loading…")
	case s.errMsg != "":
		content = theme.ErrorText.Render(s.errMsg)
	case len(s.records) == 0:
		content = theme.Subtitle.Render("No placement tests taken yet.")
	default:
		content = s.viewTable()
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *ResultsScreen) viewTable() string {
	header := lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).
		Render(fmt.Sprintf("%-12s %-14s %7s  %-10s %s",
			"Language", "Level", "Score", "Date", ""))

	rows := []string{header}
	for _, r := range s.records {
		synced := ""
		if !r.Saved {
			synced = theme.Hint.Render("(not synced)")
		}
		rows = append(rows, theme.Body.Render(fmt.Sprintf(
			"%-12s %-14s %6.0f%%  %-10s ",
			r.Language, r.Level, r.Grade, r.TakenAt.Local().Format("2006-01-02")))+synced)
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
