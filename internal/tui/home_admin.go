package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/campuskit/campusctl/internal/api"
	"github.com/campuskit/campusctl/internal/session"
)

// adminHome manages the course catalog: list courses, inspect enrollments,
// and create new courses.
type adminHome struct {
	deps    deps
	state   session.State
	courses []api.Course
	rolls   map[string]int
	cursor  int
	loading bool
	errText string
	status  string

	form  *huh.Form
	title string
	desc  string
	dept  string
	cap   string
}

func newAdminHome(d deps) *adminHome {
	return &adminHome{deps: d, loading: true}
}

func (s *adminHome) Init() tea.Cmd {
	return loadCoursesCmd(s.deps.client, "")
}

func (s *adminHome) newCourseForm() *huh.Form {
	s.title, s.desc, s.dept, s.cap = "", "", "", ""
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("title").Title("Course title").Value(&s.title).
				Validate(requireField("title")),
			huh.NewInput().Key("description").Title("Description").Value(&s.desc),
			huh.NewInput().Key("department").Title("Department").Value(&s.dept).
				Validate(requireField("department")),
			huh.NewInput().Key("capacity").Title("Capacity").Value(&s.cap).
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return nil
					}
					n, err := strconv.Atoi(strings.TrimSpace(v))
					if err != nil || n <= 0 {
						return fmt.Errorf("capacity must be a positive number")
					}
					return nil
				}),
		).Title("New course").Description("Enter to create • Esc to cancel"),
	)
}

func (s *adminHome) Update(msg tea.Msg) (screen, tea.Cmd) {
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
		if s.cursor >= len(s.courses) {
			s.cursor = 0
		}
		return s, nil

	case enrollmentCountMsg:
		if msg.err == nil {
			if s.rolls == nil {
				s.rolls = make(map[string]int)
			}
			s.rolls[msg.courseID] = msg.count
		}
		return s, nil

	case courseCreatedMsg:
		s.loading = false
		if msg.err != nil {
			s.errText = describeError(msg.err)
			return s, nil
		}
		s.status = "Course created"
		s.loading = true
		return s, loadCoursesCmd(s.deps.client, "")

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
			if s.cursor < len(s.courses)-1 {
				s.cursor++
			}
		case "enter":
			if s.cursor < len(s.courses) {
				return s, countEnrollmentsCmd(s.deps.client, s.courses[s.cursor].ID)
			}
		case "n":
			s.form = s.newCourseForm()
			return s, s.form.Init()
		case "l":
			return s, switchTo(screenRank)
		case "r":
			s.loading = true
			s.errText = ""
			s.status = ""
			return s, loadCoursesCmd(s.deps.client, "")
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
				in := api.CourseInput{
					Title:       strings.TrimSpace(s.title),
					Description: strings.TrimSpace(s.desc),
					Department:  strings.TrimSpace(s.dept),
				}
				if v := strings.TrimSpace(s.cap); v != "" {
					n, _ := strconv.Atoi(v)
					in.Capacity = &n
				}
				if s.state.User != nil {
					in.CreatedBy = s.state.User.ID
				}
				s.form = nil
				s.loading = true
				s.errText = ""
				s.status = ""
				return s, createCourseCmd(s.deps.client, in)
			}
		}
		return s, cmd
	}
	return s, nil
}

func (s *adminHome) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.deps.styles.Title.Render("Course administration"))
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

	if len(s.courses) == 0 {
		b.WriteString(s.deps.styles.Muted.Render("No courses yet. Press n to create one."))
		b.WriteString("\n")
	}

	for i, c := range s.courses {
		line := fmt.Sprintf("%-28s %-16s", c.Title, c.Department)
		if n, ok := s.rolls[c.ID]; ok {
			line += fmt.Sprintf(" %3d enrolled", n)
		}
		if i == s.cursor {
			line = s.deps.styles.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.deps.styles.Help.Render("↑/↓ move • enter enrollments • n new course • l leaderboard • r refresh • q sign out"))
	b.WriteString("\n")
	return b.String()
}
