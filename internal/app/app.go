package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sahana/lingo/internal/auth"
	"github.com/sahana/lingo/internal/history"
	"github.com/sahana/lingo/internal/router"
	"github.com/sahana/lingo/internal/screen"
	"github.com/sahana/lingo/internal/screens/home"
	"github.com/sahana/lingo/internal/screens/login"
	"github.com/sahana/lingo/internal/ui/layout"
)

// Options carries the app's injected dependencies.
type Options struct {
	Session *auth.Session
	History *history.Store
}

// sessionChangedMsg is injected whenever the session controller publishes a
// new identity. A nil identity means the session ended, whether by logout
// or by an unrecoverable token renewal failure.
type sessionChangedMsg struct {
	Identity *auth.Identity
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int
}

// newAppModel creates the root model, starting at home when a previous
// session can be resumed and at login otherwise.
func newAppModel(opts Options) AppModel {
	opts.Session.Resume()

	var initial screen.Screen
	if opts.Session.Current() != nil {
		initial = home.New(opts.Session, opts.History)
	} else {
		initial = login.New(opts.Session)
	}

	return AppModel{
		opts:   opts,
		router: router.New(initial),
	}
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sessionChangedMsg:
		// The navigation layer reacts to session state; screens never
		// redirect themselves.
		if msg.Identity == nil {
			return m, m.router.Replace(login.New(m.opts.Session))
		}
		return m, m.router.Replace(home.New(m.opts.Session, m.opts.History))

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	account := ""
	if id := m.opts.Session.Current(); id != nil {
		account = id.Email
		if account == "" {
			account = id.ID
		}
	}

	header := layout.RenderHeader(title, account, m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	if m.router.Depth() > 1 {
		footerHints = append(footerHints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))

	// Identity changes arrive from command goroutines (and from the auth
	// transport's renewal failures); inject them as messages.
	opts.Session.Subscribe(func(id *auth.Identity) {
		p.Send(sessionChangedMsg{Identity: id})
	})

	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
