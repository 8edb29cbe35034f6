package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/campuskit/campusctl/internal/api"
	"github.com/campuskit/campusctl/internal/guard"
	"github.com/campuskit/campusctl/internal/route"
	"github.com/campuskit/campusctl/internal/session"
)

// deps bundles everything a screen needs to do its work
type deps struct {
	mgr    *session.Manager
	client *api.Client
	styles Styles
}

// screen is a focused view within the app. It mirrors tea.Model but
// returns its own type so the app can keep it without re-asserting.
type screen interface {
	Init() tea.Cmd
	Update(tea.Msg) (screen, tea.Cmd)
	View() string
}

// navSlot receives route changes from the redirector. The app holds it
// by pointer so value copies made by bubbletea all see the same slot.
type navSlot struct {
	name route.Name
	set  bool
}

// App is the root model. It subscribes to the session store, feeds every
// snapshot through the redirector, and swaps screens to match the route.
type App struct {
	deps    deps
	store   *session.Store
	states  chan session.State
	nav     *navSlot
	router  *route.Redirector
	state   session.State
	current screen
	require map[route.Name]guard.Requirement
	notice  string
	spin    spinner.Model
	width   int
	height  int
	quit    bool
}

// NewApp wires the interactive client around an existing session manager.
func NewApp(mgr *session.Manager, client *api.Client) *App {
	slot := &navSlot{}
	nav := route.NavigatorFunc(func(name route.Name) {
		slot.name = name
		slot.set = true
	})

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	app := &App{
		deps:   deps{mgr: mgr, client: client, styles: DefaultStyles()},
		store:  mgr.State(),
		states: make(chan session.State, 8),
		nav:    slot,
		router: route.NewRedirector(nav),
		spin:   sp,
		require: map[route.Name]guard.Requirement{
			route.Home:        guard.StudentOnly,
			route.TeacherHome: guard.TeacherOnly,
			route.AdminHome:   guard.AdminOnly,
		},
	}
	return app
}

// Run starts the interactive client and blocks until it exits
func Run(mgr *session.Manager, client *api.Client) error {
	p := tea.NewProgram(NewApp(mgr, client), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

func (a *App) Init() tea.Cmd {
	// Snapshots are buffered so the store never blocks on a slow UI. When
	// the buffer is full a stale snapshot is dropped in favor of the fresh
	// one, so the newest state always gets through.
	a.store.Subscribe(func(s session.State) {
		for {
			select {
			case a.states <- s:
				return
			default:
				select {
				case <-a.states:
				default:
				}
			}
		}
	})
	return tea.Batch(
		a.spin.Tick,
		checkSessionCmd(a.deps.mgr),
		listenForSession(a.states),
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.quit = true
			return a, tea.Quit
		}

	case sessionMsg:
		a.state = msg.state
		cmds := []tea.Cmd{listenForSession(a.states)}
		a.router.Observe(msg.state)
		if a.nav.set {
			a.nav.set = false
			if cmd := a.show(a.nav.name); cmd != nil {
				cmds = append(cmds, cmd)
			}
		} else if cmd := a.enforce(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if a.current != nil {
			var cmd tea.Cmd
			a.current, cmd = a.current.Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case switchMsg:
		return a, a.switchScreen(msg.id)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		if !a.state.AuthChecked {
			return a, cmd
		}
		return a, nil
	}

	if a.current != nil {
		var cmd tea.Cmd
		a.current, cmd = a.current.Update(msg)
		return a, cmd
	}
	return a, nil
}

// show mounts the screen for a resolved route
func (a *App) show(name route.Name) tea.Cmd {
	a.notice = ""
	switch name {
	case route.Login:
		a.current = newLoginScreen(a.deps)
	case route.Home:
		a.current = newStudentHome(a.deps, a.state)
	case route.TeacherHome:
		a.current = newTeacherHome(a.deps)
	case route.AdminHome:
		a.current = newAdminHome(a.deps)
	default:
		a.current = newLoginScreen(a.deps)
	}
	return a.current.Init()
}

// enforce re-checks the active route's role requirement against the
// current session, redirecting when it no longer holds.
func (a *App) enforce() tea.Cmd {
	req, ok := a.require[a.router.Last()]
	if !ok {
		return nil
	}
	d := guard.Guard{Require: req}.Evaluate(a.state)
	switch d.Verdict {
	case guard.RedirectLogin:
		return a.show(route.Login)
	case guard.Deny:
		cmd := a.show(d.Redirect)
		a.notice = d.Notice
		return cmd
	}
	return nil
}

// switchScreen handles in-app navigation requested by a screen
func (a *App) switchScreen(id screenID) tea.Cmd {
	switch id {
	case screenCourses:
		a.current = newCoursesScreen(a.deps, a.state)
	case screenRank:
		a.current = newRankScreen(a.deps)
	case screenProfile:
		a.current = newProfileScreen(a.deps, a.state)
	case screenRegister:
		a.current = newRegisterScreen(a.deps)
	case screenLogin:
		a.current = newLoginScreen(a.deps)
	case screenBack:
		return a.show(a.router.Last())
	}
	return a.current.Init()
}

func (a *App) View() string {
	if a.quit {
		return ""
	}
	if !a.state.AuthChecked {
		return fmt.Sprintf("\n  %s Checking session...\n", a.spin.View())
	}
	if a.current == nil {
		return ""
	}
	view := a.current.View()
	if a.notice != "" {
		view = a.deps.styles.Warning.Render(a.notice) + "\n\n" + view
	}
	return view
}
