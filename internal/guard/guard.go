// Package guard gates role-scoped screens on the current session state.
// There is one parameterized guard; the required role is configuration, so
// the redirect rules live in exactly one place.
package guard

import (
	"fmt"

	"github.com/campuskit/campusctl/internal/route"
	"github.com/campuskit/campusctl/internal/session"
	"github.com/campuskit/campusctl/internal/user"
)

// Requirement names what a guard demands of the session
type Requirement int

const (
	// AnyAuthenticated admits every signed-in user regardless of role
	AnyAuthenticated Requirement = iota
	// StudentOnly admits students
	StudentOnly
	// TeacherOnly admits teachers
	TeacherOnly
	// AdminOnly admits admins
	AdminOnly
)

// String returns a readable name for the requirement
func (r Requirement) String() string {
	switch r {
	case StudentOnly:
		return "students only"
	case TeacherOnly:
		return "teachers only"
	case AdminOnly:
		return "admins only"
	default:
		return "any signed-in user"
	}
}

// RequireRole maps a role onto the requirement admitting exactly that role
func RequireRole(role user.Role) Requirement {
	switch role {
	case user.RoleTeacher:
		return TeacherOnly
	case user.RoleAdmin:
		return AdminOnly
	default:
		return StudentOnly
	}
}

// Verdict says what to do with the protected subtree
type Verdict int

const (
	// Wait renders a waiting indicator; session hydration is still running
	Wait Verdict = iota
	// RedirectLogin sends the user to the sign-in screen
	RedirectLogin
	// Deny surfaces a denial notice and redirects to the role's landing
	Deny
	// Allow renders the protected subtree
	Allow
)

// Decision is the guard's answer for one session state
type Decision struct {
	Verdict Verdict
	// Notice is the denial message shown on Deny
	Notice string
	// Redirect is the route to navigate to on RedirectLogin or Deny
	Redirect route.Name
}

// Guard protects one subtree; evaluate it against every state change
type Guard struct {
	Require Requirement
}

// Evaluate decides for the given session state. It is a pure function:
// callers re-run it whenever the state changes.
func (g Guard) Evaluate(state session.State) Decision {
	if !state.AuthChecked {
		return Decision{Verdict: Wait}
	}

	if state.User == nil {
		return Decision{Verdict: RedirectLogin, Redirect: route.Login}
	}

	if !g.admits(state.User.Role) {
		return Decision{
			Verdict:  Deny,
			Notice:   fmt.Sprintf("Access denied: %s", g.Require),
			Redirect: route.Landing(state.User.Role),
		}
	}

	return Decision{Verdict: Allow}
}

func (g Guard) admits(role user.Role) bool {
	switch g.Require {
	case StudentOnly:
		return role == user.RoleStudent
	case TeacherOnly:
		return role == user.RoleTeacher
	case AdminOnly:
		return role == user.RoleAdmin
	default:
		return true
	}
}
