package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/campuskit/campusctl/internal/user"
)

// teacherHome shows the student roster by rank and lets the teacher assign
// points to the selected student.
type teacherHome struct {
	deps     deps
	students []user.Record
	cursor   int
	loading  bool
	errText  string
	status   string

	// Set while the points form is open for students[cursor]
	form      *huh.Form
	pointsRaw string
}

func newTeacherHome(d deps) *teacherHome {
	return &teacherHome{deps: d, loading: true}
}

func (s *teacherHome) Init() tea.Cmd {
	return loadStudentsCmd(s.deps.client)
}

func (s *teacherHome) newPointsForm(target user.Record) *huh.Form {
	s.pointsRaw = ""
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("points").
				Title(fmt.Sprintf("Points for %s", target.Name)).
				Description(fmt.Sprintf("Current: %d", target.PointsValue())).
				Value(&s.pointsRaw).
				Validate(func(v string) error {
					n, err := strconv.Atoi(strings.TrimSpace(v))
					if err != nil {
						return fmt.Errorf("enter a whole number")
					}
					if n < 0 {
						return fmt.Errorf("points cannot be negative")
					}
					return nil
				}),
		),
	)
}

func (s *teacherHome) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case studentsMsg:
		s.loading = false
		if msg.err != nil {
			s.errText = describeError(msg.err)
			return s, nil
		}
		s.students = msg.students
		if s.cursor >= len(s.students) {
			s.cursor = 0
		}
		return s, nil

	case pointsDoneMsg:
		s.loading = false
		if msg.err != nil {
			s.errText = describeError(msg.err)
			return s, nil
		}
		s.status = "Points updated"
		s.loading = true
		return s, loadStudentsCmd(s.deps.client)

	case tea.KeyMsg:
		if s.form != nil {
			if msg.String() == "esc" {
				s.form = nil
				return s, nil
			}
			break
		}
		if s.loading {
			return s, nil
		}
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.students)-1 {
				s.cursor++
			}
		case "enter":
			if s.cursor < len(s.students) {
				s.form = s.newPointsForm(s.students[s.cursor])
				return s, s.form.Init()
			}
		case "c":
			return s, switchTo(screenCourses)
		case "p":
			return s, switchTo(screenProfile)
		case "r":
			s.loading = true
			s.errText = ""
			s.status = ""
			return s, loadStudentsCmd(s.deps.client)
		case "q":
			return s, logoutCmd(s.deps.mgr)
		}
		return s, nil
	}

	if s.form != nil {
		form, cmd := s.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			s.form = f
			if s.form.State == huh.StateCompleted {
				points, _ := strconv.Atoi(strings.TrimSpace(s.pointsRaw))
				target := s.students[s.cursor]
				s.form = nil
				s.loading = true
				s.errText = ""
				s.status = ""
				return s, addPointsCmd(s.deps.client, target.ID, points)
			}
		}
		return s, cmd
	}
	return s, nil
}

func (s *teacherHome) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.deps.styles.Title.Render("Students"))
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

	if s.form != nil {
		b.WriteString(s.form.View())
		return b.String()
	}

	if len(s.students) == 0 {
		b.WriteString(s.deps.styles.Muted.Render("No students yet."))
		b.WriteString("\n")
	}

	for i, st := range s.students {
		line := fmt.Sprintf("%-24s %-28s %4d", st.Name, st.Email, st.PointsValue())
		if i == s.cursor {
			line = s.deps.styles.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.deps.styles.Help.Render("↑/↓ move • enter assign points • c courses • p profile • r refresh • q sign out"))
	b.WriteString("\n")
	return b.String()
}
