package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/campuskit/campusctl/internal/session"
)

// studentHome is the student landing screen: a small menu over the
// student-facing features.
type studentHome struct {
	deps   deps
	state  session.State
	cursor int
}

var studentMenu = []struct {
	label string
	id    screenID
}{
	{"Browse courses", screenCourses},
	{"Leaderboard", screenRank},
	{"My profile", screenProfile},
}

func newStudentHome(d deps, state session.State) *studentHome {
	return &studentHome{deps: d, state: state}
}

func (s *studentHome) Init() tea.Cmd { return nil }

func (s *studentHome) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionMsg:
		s.state = msg.state

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(studentMenu)-1 {
				s.cursor++
			}
		case "enter":
			return s, switchTo(studentMenu[s.cursor].id)
		case "q":
			return s, logoutCmd(s.deps.mgr)
		}
	}
	return s, nil
}

func (s *studentHome) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.deps.styles.Title.Render("Campus"))
	b.WriteString("\n")

	name := ""
	points := 0
	if s.state.User != nil {
		name = s.state.User.Name
		points = s.state.User.PointsValue()
	}
	b.WriteString(s.deps.styles.Subtitle.Render(fmt.Sprintf("Welcome, %s", name)))
	b.WriteString("\n")
	b.WriteString(s.deps.styles.Status.Render(fmt.Sprintf("Points: %d", points)))
	b.WriteString("\n\n")

	for i, item := range studentMenu {
		line := "  " + item.label
		if i == s.cursor {
			line = s.deps.styles.Selected.Render("> " + item.label)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.deps.styles.Help.Render("↑/↓ move • enter select • q sign out • ctrl+c quit"))
	b.WriteString("\n")
	return b.String()
}
