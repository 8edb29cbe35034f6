package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/campuskit/campusctl/internal/session"
	"github.com/campuskit/campusctl/internal/user"
)

// profileScreen edits the mutable profile attributes. Fields start at the
// current values; only changed ones are sent.
type profileScreen struct {
	deps    deps
	state   session.State
	form    *huh.Form
	name    string
	email   string
	mobile  string
	dept    string
	waiting bool
	errText string
	status  string
}

func newProfileScreen(d deps, state session.State) *profileScreen {
	s := &profileScreen{deps: d, state: state}
	if u := state.User; u != nil {
		s.name = u.Name
		s.email = u.Email
		s.mobile = u.MobileNumber
		s.dept = u.Department
	}
	s.form = s.newForm()
	return s
}

func (s *profileScreen) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("name").Title("Full name").Value(&s.name),
			huh.NewInput().Key("email").Title("Email").Value(&s.email),
			huh.NewInput().Key("mobile").Title("Mobile number").Value(&s.mobile),
			huh.NewInput().Key("department").Title("Department").Value(&s.dept),
		).Title("Edit profile").Description("Enter to save • Esc to go back"),
	)
}

// changes computes the update payload against the session record
func (s *profileScreen) changes() user.ProfileUpdate {
	var upd user.ProfileUpdate
	u := s.state.User
	if u == nil {
		return upd
	}
	if v := strings.TrimSpace(s.name); v != u.Name {
		upd.Name = v
	}
	if v := strings.TrimSpace(s.email); v != u.Email {
		upd.Email = v
	}
	if v := strings.TrimSpace(s.mobile); v != u.MobileNumber {
		upd.MobileNumber = v
	}
	if v := strings.TrimSpace(s.dept); v != u.Department {
		upd.Department = v
	}
	return upd
}

func (s *profileScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *profileScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionMsg:
		s.state = msg.state

	case tea.KeyMsg:
		if msg.String() == "esc" && !s.waiting {
			return s, switchTo(screenBack)
		}

	case authDoneMsg:
		s.waiting = false
		if msg.err != nil {
			s.errText = describeError(msg.err)
		} else {
			s.status = "Profile saved"
		}
		s.form = s.newForm()
		return s, s.form.Init()
	}

	if s.waiting {
		return s, nil
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
		if s.form.State == huh.StateCompleted {
			upd := s.changes()
			if upd.Empty() {
				s.status = "Nothing to save"
				s.form = s.newForm()
				return s, s.form.Init()
			}
			s.waiting = true
			s.errText = ""
			s.status = ""
			return s, updateProfileCmd(s.deps.mgr, upd)
		}
	}
	return s, cmd
}

func (s *profileScreen) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.deps.styles.Title.Render("Profile"))
	b.WriteString("\n\n")

	if s.errText != "" {
		b.WriteString(s.deps.styles.Error.Render(s.errText))
		b.WriteString("\n\n")
	}
	if s.status != "" {
		b.WriteString(s.deps.styles.Success.Render(s.status))
		b.WriteString("\n\n")
	}

	if s.waiting {
		b.WriteString("Saving...\n")
		return b.String()
	}

	b.WriteString(s.form.View())
	return b.String()
}
