package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/campuskit/campusctl/internal/user"
)

// rankScreen shows the student leaderboard ordered by points
type rankScreen struct {
	deps     deps
	students []user.Record
	loading  bool
	errText  string
}

func newRankScreen(d deps) *rankScreen {
	return &rankScreen{deps: d, loading: true}
}

func (s *rankScreen) Init() tea.Cmd {
	return loadStudentsCmd(s.deps.client)
}

func (s *rankScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case studentsMsg:
		s.loading = false
		if msg.err != nil {
			s.errText = describeError(msg.err)
			return s, nil
		}
		s.students = msg.students

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			s.loading = true
			s.errText = ""
			return s, loadStudentsCmd(s.deps.client)
		case "esc":
			return s, switchTo(screenBack)
		}
	}
	return s, nil
}

func (s *rankScreen) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.deps.styles.Title.Render("Leaderboard"))
	b.WriteString("\n\n")

	if s.errText != "" {
		b.WriteString(s.deps.styles.Error.Render(s.errText))
		b.WriteString("\n\n")
	}

	if s.loading {
		b.WriteString("Loading...\n")
		return b.String()
	}

	if len(s.students) == 0 {
		b.WriteString(s.deps.styles.Muted.Render("No students yet."))
		b.WriteString("\n")
	}

	for i, st := range s.students {
		b.WriteString(fmt.Sprintf("  %2d. %-24s %4d\n", i+1, st.Name, st.PointsValue()))
	}

	b.WriteString("\n")
	b.WriteString(s.deps.styles.Help.Render("r refresh • esc back"))
	b.WriteString("\n")
	return b.String()
}
