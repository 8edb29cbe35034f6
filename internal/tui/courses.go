package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/campuskit/campusctl/internal/api"
	"github.com/campuskit/campusctl/internal/session"
	"github.com/campuskit/campusctl/internal/user"
)

// coursesScreen lists the catalog. Students can enroll in courses they are
// not yet in; other roles get a read-only view.
type coursesScreen struct {
	deps     deps
	state    session.State
	courses  []api.Course
	enrolled map[string]bool
	cursor   int
	loading  bool
	errText  string
	status   string
}

func newCoursesScreen(d deps, state session.State) *coursesScreen {
	return &coursesScreen{deps: d, state: state, loading: true}
}

func (s *coursesScreen) studentID() string {
	if s.state.User != nil && s.state.User.Role == user.RoleStudent {
		return s.state.User.ID
	}
	return ""
}

func (s *coursesScreen) Init() tea.Cmd {
	return loadCoursesCmd(s.deps.client, s.studentID())
}

func (s *coursesScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionMsg:
		s.state = msg.state

	case coursesMsg:
		s.loading = false
		if msg.err != nil {
			s.errText = describeError(msg.err)
			return s, nil
		}
		s.courses = msg.courses
		s.enrolled = msg.enrolled
		if s.cursor >= len(s.courses) {
			s.cursor = 0
		}

	case enrollDoneMsg:
		s.loading = false
		if msg.err != nil {
			s.errText = describeError(msg.err)
			return s, nil
		}
		if s.enrolled == nil {
			s.enrolled = make(map[string]bool)
		}
		s.enrolled[msg.courseID] = true
		s.status = "Enrolled"

	case tea.KeyMsg:
		if s.loading {
			return s, nil
		}
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.courses)-1 {
				s.cursor++
			}
		case "enter":
			if id := s.studentID(); id != "" && s.cursor < len(s.courses) {
				c := s.courses[s.cursor]
				if !s.enrolled[c.ID] {
					s.loading = true
					s.errText = ""
					s.status = ""
					return s, enrollCmd(s.deps.client, c.ID, id)
				}
			}
		case "r":
			s.loading = true
			s.errText = ""
			s.status = ""
			return s, loadCoursesCmd(s.deps.client, s.studentID())
		case "esc":
			return s, switchTo(screenBack)
		}
	}
	return s, nil
}

func (s *coursesScreen) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.deps.styles.Title.Render("Courses"))
	b.WriteString("\n\n")

	if s.errText != "" {
		b.WriteString(s.deps.styles.Error.Render(s.errText))
		b.WriteString("\n\n")
	}
	if s.status != "" {
		b.WriteString(s.deps.styles.Success.Render(s.status))
		b.WriteString("\n\n")
	}

	if s.loading {
		b.WriteString("Loading...\n")
		return b.String()
	}

	if len(s.courses) == 0 {
		b.WriteString(s.deps.styles.Muted.Render("No courses yet."))
		b.WriteString("\n")
	}

	for i, c := range s.courses {
		mark := " "
		if s.enrolled[c.ID] {
			mark = s.deps.styles.Success.Render("✓")
		}
		line := fmt.Sprintf("%s %s", mark, c.Title)
		if c.Description != "" {
			line += s.deps.styles.Muted.Render(" - " + c.Description)
		}
		if i == s.cursor {
			line = s.deps.styles.Selected.Render(">") + line
		} else {
			line = " " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "↑/↓ move • r refresh • esc back"
	if s.studentID() != "" {
		help = "↑/↓ move • enter enroll • r refresh • esc back"
	}
	b.WriteString(s.deps.styles.Help.Render(help))
	b.WriteString("\n")
	return b.String()
}
