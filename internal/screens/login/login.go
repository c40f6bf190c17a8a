// Package login is the sign-in / registration screen. It only invokes
// session operations; navigation after a successful login is handled by the
// app root reacting to the session's identity change.
package login

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/sahana/lingo/internal/auth"
	"github.com/sahana/lingo/internal/screen"
	"github.com/sahana/lingo/internal/ui/components"
	"github.com/sahana/lingo/internal/ui/layout"
)

// mode selects between the two forms.
type mode int

const (
	modeLogin mode = iota
	modeRegister
)

// field is the focused input.
type field int

const (
	fieldEmail field = iota
	fieldPassword
)

// loginDoneMsg reports the outcome of a login call.
type loginDoneMsg struct{ Err error }

// registerDoneMsg reports the outcome of a registration call.
type registerDoneMsg struct{ Err error }

// LoginScreen collects credentials and drives register/login.
type LoginScreen struct {
	session *auth.Session

	mode    mode
	focused field
	email   components.TextInput
	pass    components.TextInput

	busy   bool
	errMsg string
	notice string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates the login screen.
func New(session *auth.Session) *LoginScreen {
	s := &LoginScreen{
		session: session,
		email:   components.NewTextInput("email", false, 80),
		pass:    components.NewTextInput("password", true, 80),
	}
	s.pass.Blur()
	return s
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.email.Init()
}

func (s *LoginScreen) Title() string {
	if s.mode == modeRegister {
		return "Create Account"
	}
	return "Sign In"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+R", Description: "Toggle register"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		// On success the session publishes the identity and the app root
		// swaps this screen out; nothing to do here.
		return s, nil

	case registerDoneMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		// Registration has no session side effect; the user logs in next.
		s.mode = modeLogin
		s.notice = "Account created. Please sign in."
		s.pass = components.NewTextInput("password", true, 80)
		s.pass.Blur()
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s.forwardToFocused(msg)
}

func (s *LoginScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.busy {
		return s, nil
	}

	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		s.toggleFocus()
		return s, nil

	case "ctrl+r":
		if s.mode == modeLogin {
			s.mode = modeRegister
		} else {
			s.mode = modeLogin
		}
		s.errMsg = ""
		s.notice = ""
		return s, nil

	case "enter":
		if s.focused == fieldEmail {
			s.toggleFocus()
			return s, nil
		}
		return s.submit()
	}

	return s.forwardToFocused(msg)
}

func (s *LoginScreen) forwardToFocused(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	if s.focused == fieldEmail {
		s.email, cmd = s.email.Update(msg)
	} else {
		s.pass, cmd = s.pass.Update(msg)
	}
	return s, cmd
}

func (s *LoginScreen) toggleFocus() {
	if s.focused == fieldEmail {
		s.focused = fieldPassword
		s.email.Blur()
		s.pass.Focus()
	} else {
		s.focused = fieldEmail
		s.pass.Blur()
		s.email.Focus()
	}
}

func (s *LoginScreen) submit() (screen.Screen, tea.Cmd) {
	email := s.email.Value()
	password := s.pass.Value()
	if email == "" || password == "" {
		s.errMsg = "Email and password are required."
		return s, nil
	}

	s.busy = true
	s.errMsg = ""
	s.notice = ""
	session := s.session

	if s.mode == modeRegister {
		return s, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return registerDoneMsg{Err: session.Register(ctx, email, password)}
		}
	}
	return s, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return loginDoneMsg{Err: session.Login(ctx, email, password)}
	}
}
