package placement

import (
	"fmt"

	"charm.land/lipgloss/v2"

	ptest "github.com/sahana/lingo/internal/placement"
	"github.com/sahana/lingo/internal/ui/theme"
)

func (s *PlacementScreen) View(width, height int) string {
	var content string

	switch s.attempt.Stage {
	case ptest.StageSelection:
		content = s.viewSelection()
	case ptest.StageLoading:
		content = theme.Hint.Render("Loading questions for " + s.attempt.Language + "…")
	case ptest.StageTesting:
		content = s.viewTesting()
	case ptest.StageError:
		content = s.viewError(s.attempt.ErrMsg)
	case ptest.StageFinished:
		content = s.viewFinished()
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *PlacementScreen) viewSelection() string {
	title := theme.Title.Render("Start Your Placement Test")
	subtitle := theme.Subtitle.Render("Please select the language you'd like to learn!")
	return lipgloss.JoinVertical(lipgloss.Center,
		title, "", subtitle, "", s.langMenu.View())
}

func (s *PlacementScreen) viewTesting() string {
	if _, err := s.attempt.Current(); err != nil {
		return s.viewError("No question data found. Please restart the test.")
	}

	progress := theme.Subtitle.Render(fmt.Sprintf(
		"Question %d of %d", s.attempt.Index+1, len(s.attempt.Questions)))

	return lipgloss.JoinVertical(lipgloss.Left,
		progress, "", s.choices.View())
}

func (s *PlacementScreen) viewError(msg string) string {
	title := theme.ErrorText.Render("Error")
	body := theme.Body.Render(msg)
	hint := theme.Hint.Render("press R to return to selection")
	return lipgloss.JoinVertical(lipgloss.Center, title, "", body, "", hint)
}

func (s *PlacementScreen) viewFinished() string {
	title := theme.Title.Render("Test Complete!")
	label := theme.Body.Render("Estimated Competency:")
	level := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(string(s.attempt.Competency))
	score := theme.Subtitle.Render(fmt.Sprintf(
		"%d of %d correct (%.0f%%)",
		s.attempt.NumCorrect, len(s.attempt.Questions), s.attempt.Grade))

	return lipgloss.JoinVertical(lipgloss.Center,
		title, "", label, level, "", score)
}
