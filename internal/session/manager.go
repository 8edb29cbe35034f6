package session

import (
	"context"
	"sync"

	"github.com/campuskit/campusctl/internal/api"
	"github.com/campuskit/campusctl/internal/errors"
	"github.com/campuskit/campusctl/internal/log"
	"github.com/campuskit/campusctl/internal/user"
)

// Manager performs the authentication operations against the campus API and
// reconciles the results into the state container and the persisted store.
// It is the only writer of either.
type Manager struct {
	client    *api.Client
	state     *Store
	persisted PersistedStore
	log       *log.Logger

	// One sign-in/registration/profile-update at a time. The Loading flag
	// is advisory for screens; this is the enforced guard.
	mu   sync.Mutex
	busy bool
}

// NewManager creates a manager over the given client, state store, and
// persisted store
func NewManager(client *api.Client, state *Store, persisted PersistedStore, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Manager{
		client:    client,
		state:     state,
		persisted: persisted,
		log:       logger,
	}
}

// State returns the state container for subscribers
func (m *Manager) State() *Store {
	return m.state
}

// begin claims the single-flight slot and flips Loading on
func (m *Manager) begin(op string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.busy {
		return errors.NewBusyError(op)
	}
	m.busy = true
	m.state.SetLoading(true)
	return nil
}

// end releases the slot and always resets Loading
func (m *Manager) end() {
	m.mu.Lock()
	m.busy = false
	m.mu.Unlock()
	m.state.SetLoading(false)
}

// SignIn authenticates with the campus API. On success the canonical record
// from the response is written to the state container and then the persisted
// store before SignIn returns. On failure session state is untouched apart
// from Loading resetting to false.
func (m *Manager) SignIn(ctx context.Context, email, password string) (user.Record, error) {
	if err := m.begin("sign-in"); err != nil {
		return user.Record{}, err
	}
	defer m.end()

	rec, err := m.client.SignIn(ctx, email, password)
	if err != nil {
		m.log.WithError(err).Warn("sign in failed", "email", email)
		return user.Record{}, err
	}

	m.commit(rec)
	m.log.Info("signed in", "user_id", rec.ID, "role", rec.Role.String())
	return rec, nil
}

// Register creates a new account, defaulting the account type to student,
// and on success behaves like SignIn
func (m *Manager) Register(ctx context.Context, in user.RegisterInput) (user.Record, error) {
	if err := in.Validate(); err != nil {
		return user.Record{}, err
	}
	if in.Type == "" {
		in.Type = user.DefaultRole
	}

	if err := m.begin("registration"); err != nil {
		return user.Record{}, err
	}
	defer m.end()

	rec, err := m.client.CreateUser(ctx, in)
	if err != nil {
		m.log.WithError(err).Warn("registration failed", "email", in.Email)
		return user.Record{}, err
	}

	m.commit(rec)
	m.log.Info("registered", "user_id", rec.ID, "role", rec.Role.String())
	return rec, nil
}

// UpdateProfile sends the changed profile attributes and replaces the
// session with the server's authoritative record. It requires an existing
// authenticated user; on failure the prior session state stays intact.
func (m *Manager) UpdateProfile(ctx context.Context, upd user.ProfileUpdate) (user.Record, error) {
	current := m.state.Current()
	if !current.Authenticated() {
		return user.Record{}, errors.NewNotAuthenticatedError()
	}

	if err := upd.Validate(); err != nil {
		return user.Record{}, err
	}

	if err := m.begin("profile update"); err != nil {
		return user.Record{}, err
	}
	defer m.end()

	rec, err := m.client.UpdateUser(ctx, current.User.ID, upd)
	if err != nil {
		m.log.WithError(err).Warn("profile update failed", "user_id", current.User.ID)
		return user.Record{}, err
	}

	m.commit(rec)
	m.log.Info("profile updated", "user_id", rec.ID)
	return rec, nil
}

// Logout clears the persisted record best-effort and unconditionally resets
// the state container. It never fails from the caller's perspective; the
// redirector observes the reset and navigates to the login screen.
func (m *Manager) Logout() {
	if err := m.persisted.Clear(); err != nil {
		m.log.WithError(err).Warn("could not delete stored session; local state cleared anyway")
	}
	m.state.Reset()
	m.log.Info("signed out")
}

// CheckSession hydrates the state container from the persisted store at
// startup. A stored record is trusted as the local session without a server
// round-trip. Whatever happens, AuthChecked ends up true exactly once and no
// error escapes.
func (m *Manager) CheckSession() {
	defer m.state.SetAuthChecked(true)

	rec, err := m.persisted.Load()
	if err != nil {
		if err != ErrNoSession {
			m.log.WithError(err).Warn("could not read stored session; starting unauthenticated")
		}
		m.state.SetUser(nil)
		return
	}

	if err := rec.Validate(); err != nil {
		m.log.WithError(err).Warn("stored session is unusable; starting unauthenticated")
		m.state.SetUser(nil)
		return
	}

	m.state.SetUser(&rec)
	m.log.Debug("session hydrated", "user_id", rec.ID, "role", rec.Role.String())
}

// commit writes a fresh record into the state container first and the
// persisted store second. Persistence failure is logged and swallowed; the
// in-memory session is already live.
func (m *Manager) commit(rec user.Record) {
	m.state.SetUser(&rec)
	if err := m.persisted.Save(rec); err != nil {
		m.log.WithError(err).Warn("session not persisted; it will not survive a restart")
	}
}
