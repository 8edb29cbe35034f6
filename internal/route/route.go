// Package route decides where the client should be, given the session
// state. The redirector is a three-phase machine: checking the stored
// session, unauthenticated, or authenticated with a role-specific landing.
package route

import (
	"github.com/campuskit/campusctl/internal/session"
	"github.com/campuskit/campusctl/internal/user"
)

// Name identifies a screen
type Name string

// The screens the redirector can land on
const (
	// Login is the unauthenticated entry screen
	Login Name = "login"
	// Home is the student landing screen
	Home Name = "home"
	// TeacherHome is the teacher landing screen
	TeacherHome Name = "teacher_home"
	// AdminHome is the admin landing screen
	AdminHome Name = "admin_home"
)

// Landing returns the landing route for a role
func Landing(role user.Role) Name {
	switch role {
	case user.RoleTeacher:
		return TeacherHome
	case user.RoleAdmin:
		return AdminHome
	default:
		return Home
	}
}

// Phase is the redirector's view of the session
type Phase int

const (
	// Checking means session hydration has not finished; no navigation yet
	Checking Phase = iota
	// Unauthenticated means hydration finished with no user
	Unauthenticated
	// Authenticated means a user is present
	Authenticated
)

// PhaseOf derives the phase from session state
func PhaseOf(state session.State) Phase {
	switch {
	case !state.AuthChecked:
		return Checking
	case state.User == nil:
		return Unauthenticated
	default:
		return Authenticated
	}
}

// Resolve returns the route for a session state and whether navigation
// should happen at all (never during Checking)
func Resolve(state session.State) (Name, bool) {
	switch PhaseOf(state) {
	case Checking:
		return "", false
	case Unauthenticated:
		return Login, true
	default:
		return Landing(state.User.Role), true
	}
}

// Navigator performs the navigation side effect
type Navigator interface {
	// Replace swaps the current screen for the named one
	Replace(name Name)
}

// NavigatorFunc adapts a function to the Navigator interface
type NavigatorFunc func(Name)

// Replace calls the function
func (f NavigatorFunc) Replace(name Name) { f(name) }

// Redirector reacts to session state changes by navigating to the right
// screen. Navigation is idempotent: resolving the same route twice in a row
// produces no second side effect.
type Redirector struct {
	nav  Navigator
	last Name
}

// NewRedirector creates a redirector over the given navigator
func NewRedirector(nav Navigator) *Redirector {
	return &Redirector{nav: nav}
}

// Observe is the subscription callback; wire it to the session store
func (r *Redirector) Observe(state session.State) {
	name, ok := Resolve(state)
	if !ok {
		return
	}
	if name == r.last {
		return
	}
	r.last = name
	r.nav.Replace(name)
}

// Last returns the most recently navigated route, or "" before any
// navigation has happened
func (r *Redirector) Last() Name {
	return r.last
}

// Attach subscribes the redirector to the store and returns the
// unsubscribe function
func (r *Redirector) Attach(store *session.Store) func() {
	return store.Subscribe(r.Observe)
}
