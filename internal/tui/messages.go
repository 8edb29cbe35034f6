package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/campuskit/campusctl/internal/api"
	"github.com/campuskit/campusctl/internal/session"
	"github.com/campuskit/campusctl/internal/user"
)

// sessionMsg carries a fresh session state snapshot into the program
type sessionMsg struct {
	state session.State
}

// authDoneMsg reports the outcome of a sign-in, registration, or profile
// update. Navigation happens through the session subscription, not here;
// this only carries the error for the active form.
type authDoneMsg struct {
	err error
}

// logoutDoneMsg reports that logout finished (it cannot fail)
type logoutDoneMsg struct{}

// coursesMsg carries the course catalog plus the current user's enrollments
type coursesMsg struct {
	courses  []api.Course
	enrolled map[string]bool
	err      error
}

// enrollDoneMsg reports the outcome of an enrollment
type enrollDoneMsg struct {
	courseID string
	err      error
}

// enrollmentCountMsg carries the roll size for one course
type enrollmentCountMsg struct {
	courseID string
	count    int
	err      error
}

// studentsMsg carries the student roster
type studentsMsg struct {
	students []user.Record
	err      error
}

// pointsDoneMsg reports the outcome of a points assignment
type pointsDoneMsg struct {
	err error
}

// courseCreatedMsg reports the outcome of a course creation
type courseCreatedMsg struct {
	err error
}

// screenID names an inner screen reachable from a landing screen
type screenID int

const (
	screenCourses screenID = iota
	screenRank
	screenProfile
	screenRegister
	screenLogin
	screenBack
)

// switchMsg asks the app to show an inner screen
type switchMsg struct {
	id screenID
}

func switchTo(id screenID) tea.Cmd {
	return func() tea.Msg { return switchMsg{id: id} }
}

// listenForSession waits for the next session snapshot
func listenForSession(states <-chan session.State) tea.Cmd {
	return func() tea.Msg {
		return sessionMsg{state: <-states}
	}
}

// checkSessionCmd runs the startup hydration
func checkSessionCmd(mgr *session.Manager) tea.Cmd {
	return func() tea.Msg {
		mgr.CheckSession()
		return nil
	}
}

func signInCmd(mgr *session.Manager, email, password string) tea.Cmd {
	return func() tea.Msg {
		_, err := mgr.SignIn(context.Background(), email, password)
		return authDoneMsg{err: err}
	}
}

func registerCmd(mgr *session.Manager, in user.RegisterInput) tea.Cmd {
	return func() tea.Msg {
		_, err := mgr.Register(context.Background(), in)
		return authDoneMsg{err: err}
	}
}

func updateProfileCmd(mgr *session.Manager, upd user.ProfileUpdate) tea.Cmd {
	return func() tea.Msg {
		_, err := mgr.UpdateProfile(context.Background(), upd)
		return authDoneMsg{err: err}
	}
}

func logoutCmd(mgr *session.Manager) tea.Cmd {
	return func() tea.Msg {
		mgr.Logout()
		return logoutDoneMsg{}
	}
}

// loadCoursesCmd fetches the catalog and, for students, their enrollments
func loadCoursesCmd(client *api.Client, studentID string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		courses, err := client.ListCourses(ctx)
		if err != nil {
			return coursesMsg{err: err}
		}

		enrolled := make(map[string]bool)
		if studentID != "" {
			mine, err := client.StudentCourses(ctx, studentID)
			if err == nil {
				for _, c := range mine {
					enrolled[c.ID] = true
				}
			}
			// Enrollment lookup failures degrade to an unmarked catalog.
		}

		return coursesMsg{courses: courses, enrolled: enrolled}
	}
}

func enrollCmd(client *api.Client, courseID, studentID string) tea.Cmd {
	return func() tea.Msg {
		err := client.Enroll(context.Background(), courseID, studentID)
		return enrollDoneMsg{courseID: courseID, err: err}
	}
}

func countEnrollmentsCmd(client *api.Client, courseID string) tea.Cmd {
	return func() tea.Msg {
		rolls, err := client.CourseEnrollments(context.Background(), courseID)
		return enrollmentCountMsg{courseID: courseID, count: len(rolls), err: err}
	}
}

// loadStudentsCmd fetches the roster ordered by rank
func loadStudentsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		students, err := client.Ranking(context.Background())
		return studentsMsg{students: students, err: err}
	}
}

func addPointsCmd(client *api.Client, studentID string, points int) tea.Cmd {
	return func() tea.Msg {
		return pointsDoneMsg{err: client.AddPoints(context.Background(), studentID, points)}
	}
}

func createCourseCmd(client *api.Client, in api.CourseInput) tea.Cmd {
	return func() tea.Msg {
		_, err := client.CreateCourse(context.Background(), in)
		return courseCreatedMsg{err: err}
	}
}
