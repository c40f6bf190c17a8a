package home

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sahana/lingo/internal/api"
	"github.com/sahana/lingo/internal/auth"
	"github.com/sahana/lingo/internal/history"
	"github.com/sahana/lingo/internal/router"
	"github.com/sahana/lingo/internal/screen"
	placementscreen "github.com/sahana/lingo/internal/screens/placement"
	"github.com/sahana/lingo/internal/screens/results"
	"github.com/sahana/lingo/internal/ui/components"
	"github.com/sahana/lingo/internal/ui/theme"
)

// meLoadedMsg delivers the identity check that runs on entry. An auth
// failure here means even a renewed token is unusable, so the session ends.
type meLoadedMsg struct {
	User *api.User
	Err  error
}

// HomeScreen is the authenticated landing screen.
type HomeScreen struct {
	session *auth.Session
	hist    *history.Store

	menu    components.Menu
	profile *api.User
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen.
func New(session *auth.Session, hist *history.Store) *HomeScreen {
	s := &HomeScreen{
		session: session,
		hist:    hist,
	}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Placement Test", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: placementscreen.New(session.Client(), hist),
				}
			}
		}},
		{Label: "My Results", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: results.New(hist)}
			}
		}},
		{Label: "Log Out", Action: func() tea.Cmd {
			return func() tea.Msg {
				session.Logout()
				return nil
			}
		}},
	})
	return s
}

func (s *HomeScreen) Init() tea.Cmd {
	// Verify the stored credentials actually work before offering anything.
	session := s.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		user, err := session.Client().Me(ctx)
		return meLoadedMsg{User: user, Err: err}
	}
}

func (s *HomeScreen) Title() string {
	return "Home"
}

func (s *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case meLoadedMsg:
		if msg.Err != nil {
			// A credential rejection here means even a renewed token is
			// unusable; end the session and let the app root swap in the
			// login screen. Transient failures keep the screen usable.
			var authErr *api.AuthError
			if errors.As(msg.Err, &authErr) {
				s.session.End()
			}
			return s, nil
		}
		s.profile = msg.User
		return s, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *HomeScreen) View(width, height int) string {
	title := theme.Title.Render("Lingo")
	subtitle := theme.Subtitle.Render("Find your level. Start learning.")

	greeting := ""
	if s.profile != nil {
		greeting = theme.Body.Render("Signed in as " + s.profile.Email)
	} else if id := s.session.Current(); id != nil && id.Email != "" {
		greeting = theme.Body.Render("Signed in as " + id.Email)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title, subtitle, "", greeting, "", s.menu.View())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
