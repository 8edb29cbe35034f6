package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/campusctl/internal/api"
	"github.com/campuskit/campusctl/internal/errors"
	"github.com/campuskit/campusctl/internal/log"
	"github.com/campuskit/campusctl/internal/user"
)

// failingStore simulates unavailable secure storage
type failingStore struct {
	saved *user.Record
}

func (f *failingStore) Save(rec user.Record) error {
	return errors.NewStorageError("write", assertErr)
}

func (f *failingStore) Load() (user.Record, error) {
	if f.saved == nil {
		return user.Record{}, ErrNoSession
	}
	return *f.saved, nil
}

func (f *failingStore) Clear() error {
	return errors.NewStorageError("delete", assertErr)
}

var assertErr = errors.New(errors.ErrCodeStorage, "storage unavailable")

func newManager(t *testing.T, handler http.Handler) (*Manager, *Store, *KeyringStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	state := NewStore()
	persisted := NewKeyringStore(keyring.NewArrayKeyring(nil))
	mgr := NewManager(api.NewClient(srv.URL), state, persisted, log.Discard())
	return mgr, state, persisted
}

func TestSignInCommitsStateThenStore(t *testing.T) {
	want := user.Record{ID: "1", Email: "a@b.com", Role: user.RoleTeacher, Name: "Prof"}

	mgr, state, persisted := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(want)
	}))

	rec, err := mgr.SignIn(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, want, rec)

	// State container holds the canonical record.
	current := state.Current()
	require.NotNil(t, current.User)
	assert.Equal(t, want, *current.User)
	assert.False(t, current.Loading)

	// Persisted store round-trips exactly the committed record.
	stored, err := persisted.Load()
	require.NoError(t, err)
	assert.Equal(t, want, stored)
}

func TestSignInFailureLeavesStateUntouched(t *testing.T) {
	mgr, state, persisted := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
	}))

	_, err := mgr.SignIn(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidCredentials(err))

	current := state.Current()
	assert.Nil(t, current.User)
	assert.False(t, current.Loading, "loading always resets on completion")

	_, err = persisted.Load()
	assert.Equal(t, ErrNoSession, err)
}

func TestSignInSurvivesStorageFailure(t *testing.T) {
	want := user.Record{ID: "1", Email: "a@b.com", Role: user.RoleStudent}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	state := NewStore()
	mgr := NewManager(api.NewClient(srv.URL), state, &failingStore{}, log.Discard())

	rec, err := mgr.SignIn(context.Background(), "a@b.com", "secret")
	require.NoError(t, err, "persistence failure must not fail the sign-in")
	assert.Equal(t, want, rec)
	assert.NotNil(t, state.Current().User)
}

func TestRegisterDefaultsRoleToStudent(t *testing.T) {
	var received user.RegisterInput

	mgr, _, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(user.Record{ID: "9", Email: received.Email, Role: received.Type})
	}))

	in := user.RegisterInput{
		Email:        "new@campus.edu",
		Password:     "secret1",
		Name:         "New Student",
		DateOfBirth:  "2004-09-01",
		Gender:       "male",
		MobileNumber: "9876543210",
		Department:   "CSE",
	}

	_, err := mgr.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, user.RoleStudent, received.Type)
}

func TestRegisterConflictMutatesNothing(t *testing.T) {
	mgr, state, persisted := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Email already exists", http.StatusConflict)
	}))

	in := user.RegisterInput{
		Email:        "dup@x.com",
		Password:     "secret1",
		Name:         "Dup",
		DateOfBirth:  "2000-01-01",
		Gender:       "other",
		MobileNumber: "1234567890",
		Department:   "CSE",
	}

	_, err := mgr.Register(context.Background(), in)
	require.Error(t, err)
	require.True(t, errors.IsConflict(err))
	assert.Contains(t, err.Error(), "Email already exists")

	current := state.Current()
	assert.Nil(t, current.User)
	assert.False(t, current.Loading)

	_, err = persisted.Load()
	assert.Equal(t, ErrNoSession, err)
}

func TestRegisterRejectsInvalidInputLocally(t *testing.T) {
	requests := 0
	mgr, _, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	_, err := mgr.Register(context.Background(), user.RegisterInput{Email: "bad"})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Zero(t, requests, "invalid input never reaches the server")
}

func TestUpdateProfileRequiresSession(t *testing.T) {
	mgr, _, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	_, err := mgr.UpdateProfile(context.Background(), user.ProfileUpdate{Name: "X"})
	require.Error(t, err)
	assert.True(t, errors.IsNotAuthenticated(err))
}

func TestUpdateProfileReplacesWithServerRecord(t *testing.T) {
	mgr, state, persisted := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/42", r.URL.Path)
		json.NewEncoder(w).Encode(user.Record{ID: "42", Email: "updated@x.com", Role: user.RoleStudent, Name: "Server Truth"})
	}))

	state.SetUser(&user.Record{ID: "42", Email: "old@x.com", Role: user.RoleStudent, Name: "Local"})

	rec, err := mgr.UpdateProfile(context.Background(), user.ProfileUpdate{Email: "updated@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "Server Truth", rec.Name)
	assert.Equal(t, "Server Truth", state.Current().User.Name)

	stored, err := persisted.Load()
	require.NoError(t, err)
	assert.Equal(t, "updated@x.com", stored.Email)
}

func TestUpdateProfileFailureKeepsPriorState(t *testing.T) {
	mgr, state, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Mobile number already exists", http.StatusConflict)
	}))

	prior := user.Record{ID: "42", Email: "keep@x.com", Role: user.RoleStudent, Name: "Keep Me"}
	state.SetUser(&prior)

	_, err := mgr.UpdateProfile(context.Background(), user.ProfileUpdate{MobileNumber: "1112223334"})
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))
	assert.Equal(t, prior, *state.Current().User)
}

func TestLogoutAlwaysClearsState(t *testing.T) {
	state := NewStore()
	state.SetAuthChecked(true)
	state.SetUser(&user.Record{ID: "1", Email: "a@b.com", Role: user.RoleStudent})

	// Even with storage refusing the delete, logout clears local state.
	mgr := NewManager(api.NewClient("http://127.0.0.1:0"), state, &failingStore{}, log.Discard())
	mgr.Logout()

	current := state.Current()
	assert.Nil(t, current.User)
	assert.True(t, current.AuthChecked)
}

func TestLogoutClearsPersistedRecord(t *testing.T) {
	mgr, state, persisted := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	require.NoError(t, persisted.Save(user.Record{ID: "1", Email: "a@b.com", Role: user.RoleStudent}))
	state.SetUser(&user.Record{ID: "1", Email: "a@b.com", Role: user.RoleStudent})

	mgr.Logout()

	_, err := persisted.Load()
	assert.Equal(t, ErrNoSession, err)
	assert.Nil(t, state.Current().User)
}

func TestLogoutWithFailedDeleteDoesNotResurrect(t *testing.T) {
	persisted := NewKeyringStore(stuckRing{keyring.NewArrayKeyring(nil)})
	require.NoError(t, persisted.Save(user.Record{ID: "1", Email: "a@b.com", Role: user.RoleStudent}))

	state := NewStore()
	state.SetAuthChecked(true)
	state.SetUser(&user.Record{ID: "1", Email: "a@b.com", Role: user.RoleStudent})

	mgr := NewManager(api.NewClient("http://127.0.0.1:0"), state, persisted, log.Discard())
	mgr.Logout()

	assert.Nil(t, state.Current().User)

	// The delete failed, yet the store reports no session.
	_, err := persisted.Load()
	assert.Equal(t, ErrNoSession, err)

	// A later startup check must not sign the user back in.
	mgr.CheckSession()
	current := state.Current()
	assert.Nil(t, current.User)
	assert.True(t, current.AuthChecked)
}

func TestCheckSessionHydratesStoredRecord(t *testing.T) {
	mgr, state, persisted := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("startup check must not hit the server")
	}))

	stored := user.Record{ID: "5", Email: "s@campus.edu", Role: user.RoleAdmin}
	require.NoError(t, persisted.Save(stored))

	mgr.CheckSession()

	current := state.Current()
	require.NotNil(t, current.User)
	assert.Equal(t, stored, *current.User)
	assert.True(t, current.AuthChecked)
}

func TestCheckSessionWithoutStoredRecord(t *testing.T) {
	mgr, state, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	mgr.CheckSession()

	current := state.Current()
	assert.Nil(t, current.User)
	assert.True(t, current.AuthChecked)
}

func TestCheckSessionWithCorruptRecord(t *testing.T) {
	ring := keyring.NewArrayKeyring(nil)
	require.NoError(t, ring.Set(keyring.Item{Key: "user", Data: []byte("{corrupt")}))

	state := NewStore()
	mgr := NewManager(api.NewClient("http://127.0.0.1:0"), state, NewKeyringStore(ring), log.Discard())

	mgr.CheckSession() // must not panic or propagate

	current := state.Current()
	assert.Nil(t, current.User)
	assert.True(t, current.AuthChecked)
}

func TestCheckSessionRejectsUnknownRole(t *testing.T) {
	mgr, state, persisted := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	// A record that decodes but fails boundary validation is not trusted.
	require.NoError(t, persisted.Save(user.Record{ID: "5", Email: "s@x.com", Role: "warden"}))

	mgr.CheckSession()

	current := state.Current()
	assert.Nil(t, current.User)
	assert.True(t, current.AuthChecked)
}

func TestSingleFlightRejectsConcurrentSignIn(t *testing.T) {
	release := make(chan struct{})

	mgr, _, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		json.NewEncoder(w).Encode(user.Record{ID: "1", Email: "a@b.com", Role: user.RoleStudent})
	}))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := mgr.SignIn(context.Background(), "a@b.com", "secret")
		assert.NoError(t, err)
	}()

	// Wait until the first call is holding the slot.
	require.Eventually(t, func() bool {
		return mgr.State().Current().Loading
	}, time.Second, 5*time.Millisecond)

	_, err := mgr.SignIn(context.Background(), "a@b.com", "secret")
	require.Error(t, err)
	assert.True(t, errors.IsBusy(err))

	close(release)
	wg.Wait()
}
