package login

import (
	"charm.land/lipgloss/v2"

	"github.com/sahana/lingo/internal/ui/theme"
)

func (s *LoginScreen) View(width, height int) string {
	title := theme.Title.Render("Welcome to Lingo")

	subtitle := "Sign in to continue"
	if s.mode == modeRegister {
		subtitle = "Create a new account"
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		theme.Body.Render("Email"),
		s.email.View(),
		"",
		theme.Body.Render("Password"),
		s.pass.View(),
	)

	sections := []string{
		title,
		"",
		theme.Subtitle.Render(subtitle),
		"",
		theme.Card.Render(form),
	}

	if s.busy {
		sections = append(sections, "", theme.Hint.Render("Working…"))
	}
	if s.notice != "" {
		sections = append(sections, "", lipgloss.NewStyle().
			Foreground(theme.Success).Render(s.notice))
	}
	if s.errMsg != "" {
		sections = append(sections, "", theme.ErrorText.Render(s.errMsg))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
