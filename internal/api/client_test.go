package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/campusctl/internal/errors"
	"github.com/campuskit/campusctl/internal/user"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL), srv
}

func TestSignInSuccess(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/users/sign-in", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var req signInRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a@b.com", req.Email)
		assert.Equal(t, "secret", req.Password)

		json.NewEncoder(w).Encode(user.Record{ID: "1", Email: "a@b.com", Role: user.RoleTeacher})
	}))
	defer srv.Close()

	rec, err := client.SignIn(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "1", rec.ID)
	assert.Equal(t, user.RoleTeacher, rec.Role)
}

func TestSignInInvalidCredentials(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := client.SignIn(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidCredentials(err))
}

func TestSignInUnknownUser(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "User not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := client.SignIn(context.Background(), "ghost@b.com", "secret")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestSignInMalformedRecord(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Missing id and an unknown account type must not enter session state.
		w.Write([]byte(`{"email":"a@b.com","type":"warden"}`))
	}))
	defer srv.Close()

	_, err := client.SignIn(context.Background(), "a@b.com", "secret")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeMalformedResponse, errors.CodeOf(err))
}

func TestSignInUndecodableBody(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	_, err := client.SignIn(context.Background(), "a@b.com", "secret")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeMalformedResponse, errors.CodeOf(err))
}

func TestNetworkErrorClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(srv.URL)
	srv.Close() // nothing is listening anymore

	_, err := client.SignIn(context.Background(), "a@b.com", "secret")
	require.Error(t, err)
	assert.True(t, errors.IsNetwork(err))
}

func TestRegisterConflictDuplicateEmail(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users", r.URL.Path)
		http.Error(w, "Email already exists", http.StatusConflict)
	}))
	defer srv.Close()

	_, err := client.CreateUser(context.Background(), user.RegisterInput{Email: "dup@x.com"})
	require.Error(t, err)
	require.True(t, errors.IsConflict(err))

	var cerr *errors.ClientError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Message, "Email already exists")
}

func TestRegisterValidationRejected(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "dateOfBirth is required", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := client.CreateUser(context.Background(), user.RegisterInput{Email: "a@b.com"})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestUpdateUserServerAuthoritative(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/users/42", r.URL.Path)

		var upd user.ProfileUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&upd))
		assert.Equal(t, "New Name", upd.Name)

		// Server normalizes the name; client must take this version.
		json.NewEncoder(w).Encode(user.Record{ID: "42", Email: "a@b.com", Role: user.RoleStudent, Name: "New Name (verified)"})
	}))
	defer srv.Close()

	rec, err := client.UpdateUser(context.Background(), "42", user.ProfileUpdate{Name: "New Name"})
	require.NoError(t, err)
	assert.Equal(t, "New Name (verified)", rec.Name)
}

func TestServerErrorClassification(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := client.ListCourses(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsServer(err))
}

func TestErrorDetailFormats(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"plain text", "Email already exists", "Email already exists"},
		{"json error field", `{"error":"Mobile number already exists"}`, "Mobile number already exists"},
		{"json message field", `{"message":"duplicate"}`, "duplicate"},
		{"bare json string", `"Course not found"`, "Course not found"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorDetail([]byte(tt.body)))
		})
	}
}
