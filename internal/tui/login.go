package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/campuskit/campusctl/internal/errors"
)

// loginScreen collects credentials and drives the sign-in operation
type loginScreen struct {
	deps    deps
	form    *huh.Form
	email   string
	pass    string
	waiting bool
	errText string
}

func newLoginScreen(d deps) *loginScreen {
	s := &loginScreen{deps: d}
	s.form = s.newForm()
	return s
}

func (s *loginScreen) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("Email").
				Value(&s.email).
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return fmt.Errorf("email is required")
					}
					return nil
				}),
			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&s.pass).
				Validate(func(v string) error {
					if v == "" {
						return fmt.Errorf("password is required")
					}
					return nil
				}),
		).Title("Sign in").Description("Enter to submit • Ctrl+R to register • Ctrl+C to quit"),
	)
}

func (s *loginScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *loginScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+r" && !s.waiting {
			return s, switchTo(screenRegister)
		}

	case authDoneMsg:
		s.waiting = false
		if msg.err != nil {
			s.errText = describeError(msg.err)
			s.pass = ""
			s.form = s.newForm()
			return s, s.form.Init()
		}
		// Success navigates via the session subscription.
		return s, nil
	}

	if s.waiting {
		return s, nil
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
		if s.form.State == huh.StateCompleted {
			s.waiting = true
			s.errText = ""
			return s, signInCmd(s.deps.mgr, strings.TrimSpace(s.email), s.pass)
		}
	}
	return s, cmd
}

func (s *loginScreen) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.deps.styles.Title.Render("Campus"))
	b.WriteString("\n\n")

	if s.errText != "" {
		b.WriteString(s.deps.styles.Error.Render(s.errText))
		b.WriteString("\n\n")
	}

	if s.waiting {
		b.WriteString("Signing in...\n")
		return b.String()
	}

	b.WriteString(s.form.View())
	return b.String()
}

// describeError turns a client error into a single line for a form screen
func describeError(err error) string {
	var cerr *errors.ClientError
	if errors.AsClientError(err, &cerr) {
		msg := cerr.Message
		for _, sug := range cerr.Suggestions {
			msg += "\n  " + sug
		}
		return msg
	}
	return err.Error()
}
