package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/campuskit/campusctl/internal/user"
)

// registerScreen collects the registration fields over two form groups and
// drives account creation. New accounts are always students.
type registerScreen struct {
	deps    deps
	form    *huh.Form
	in      user.RegisterInput
	confirm string
	waiting bool
	errText string
}

func newRegisterScreen(d deps) *registerScreen {
	s := &registerScreen{deps: d}
	s.in.Gender = "male"
	s.form = s.newForm()
	return s
}

func (s *registerScreen) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Full name").
				Value(&s.in.Name).
				Validate(requireField("name")),
			huh.NewInput().
				Key("email").
				Title("Email").
				Value(&s.in.Email).
				Validate(requireField("email")),
			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&s.in.Password).
				Validate(func(v string) error {
					if len(v) < 6 {
						return fmt.Errorf("password must be at least 6 characters")
					}
					return nil
				}),
			huh.NewInput().
				Key("confirm").
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&s.confirm),
		).Title("Create account (1/2)"),
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("gender").
				Title("Gender").
				Options(
					huh.NewOption("Male", "male"),
					huh.NewOption("Female", "female"),
					huh.NewOption("Other", "other"),
				).
				Value(&s.in.Gender),
			huh.NewInput().
				Key("mobile").
				Title("Mobile number").
				Value(&s.in.MobileNumber).
				Validate(func(v string) error {
					if len(strings.TrimSpace(v)) != 10 {
						return fmt.Errorf("mobile number must be 10 digits")
					}
					return nil
				}),
			huh.NewInput().
				Key("dob").
				Title("Date of birth").
				Placeholder("YYYY-MM-DD").
				Value(&s.in.DateOfBirth).
				Validate(requireField("date of birth")),
			huh.NewInput().
				Key("department").
				Title("Department").
				Value(&s.in.Department).
				Validate(requireField("department")),
		).Title("Create account (2/2)").Description("Enter to submit • Esc to go back"),
	)
}

func requireField(name string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func (s *registerScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *registerScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" && !s.waiting {
			return s, switchTo(screenLogin)
		}

	case authDoneMsg:
		s.waiting = false
		if msg.err != nil {
			s.errText = describeError(msg.err)
			s.in.Password = ""
			s.confirm = ""
			s.form = s.newForm()
			return s, s.form.Init()
		}
		return s, nil
	}

	if s.waiting {
		return s, nil
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
		if s.form.State == huh.StateCompleted {
			if s.confirm != s.in.Password {
				s.errText = "Passwords do not match"
				s.in.Password = ""
				s.confirm = ""
				s.form = s.newForm()
				return s, s.form.Init()
			}
			s.waiting = true
			s.errText = ""
			in := s.in
			in.Email = strings.TrimSpace(in.Email)
			in.Name = strings.TrimSpace(in.Name)
			in.MobileNumber = strings.TrimSpace(in.MobileNumber)
			return s, registerCmd(s.deps.mgr, in)
		}
	}
	return s, cmd
}

func (s *registerScreen) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.deps.styles.Title.Render("Campus"))
	b.WriteString("\n\n")

	if s.errText != "" {
		b.WriteString(s.deps.styles.Error.Render(s.errText))
		b.WriteString("\n\n")
	}

	if s.waiting {
		b.WriteString("Creating account...\n")
		return b.String()
	}

	b.WriteString(s.form.View())
	return b.String()
}
