package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeConflict, "email already exists")

	if err.Code != ErrCodeConflict {
		t.Errorf("expected code %s, got %s", ErrCodeConflict, err.Code)
	}

	if err.Message != "email already exists" {
		t.Errorf("expected message 'email already exists', got '%s'", err.Message)
	}

	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(ErrCodeNetwork, "could not reach the campus server", cause)

	if err.Code != ErrCodeNetwork {
		t.Errorf("expected code %s, got %s", ErrCodeNetwork, err.Code)
	}

	if err.Cause != cause {
		t.Errorf("expected cause to be set")
	}

	// Test unwrapping
	if !errors.Is(err, cause) {
		t.Errorf("Wrap should support errors.Is")
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name     string
		err      *ClientError
		wantCode string
		wantMsg  string
	}{
		{
			name:     "simple error",
			err:      New(ErrCodeNotFound, "user not found"),
			wantCode: "API-006",
			wantMsg:  "user not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeStorage, "secure storage read failed", fmt.Errorf("keyring locked")),
			wantCode: "SESSION-001",
			wantMsg:  "keyring locked",
		},
		{
			name:     "error with suggestions",
			err:      New(ErrCodeNotAuthenticated, "you are not signed in").WithSuggestion("Run 'campusctl auth login' first"),
			wantCode: "SESSION-002",
			wantMsg:  "auth login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errStr := tt.err.Error()

			if !strings.Contains(errStr, tt.wantCode) {
				t.Errorf("error string should contain code %s, got: %s", tt.wantCode, errStr)
			}

			if !strings.Contains(errStr, tt.wantMsg) {
				t.Errorf("error string should contain %q, got: %s", tt.wantMsg, errStr)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(NewInvalidCredentialsError()); got != ErrCodeInvalidCredentials {
		t.Errorf("expected %s, got %s", ErrCodeInvalidCredentials, got)
	}

	if got := CodeOf(fmt.Errorf("plain error")); got != "" {
		t.Errorf("expected empty code for plain error, got %s", got)
	}

	// Wrapped classification survives further fmt wrapping.
	wrapped := fmt.Errorf("sign in: %w", NewConflictError("Email already exists"))
	if !IsConflict(wrapped) {
		t.Errorf("IsConflict should see through fmt.Errorf wrapping")
	}
}

func TestClassificationHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"network", NewNetworkError(fmt.Errorf("dial tcp: timeout")), IsNetwork},
		{"server", NewServerError(502, "bad gateway"), IsServer},
		{"validation", NewValidationError("mobile number must be 10 digits"), IsValidation},
		{"conflict", NewConflictError(""), IsConflict},
		{"invalid credentials", NewInvalidCredentialsError(), IsInvalidCredentials},
		{"not found", NewNotFoundError("course"), IsNotFound},
		{"storage", NewStorageError("write", fmt.Errorf("denied")), IsStorage},
		{"not authenticated", NewNotAuthenticatedError(), IsNotAuthenticated},
		{"busy", NewBusyError("sign-in"), IsBusy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(tt.err) {
				t.Errorf("classification check failed for %v", tt.err)
			}
		})
	}
}

func TestWithField(t *testing.T) {
	err := NewValidationError("the submitted fields were rejected").
		WithField("email", "invalid format").
		WithField("mobileNumber", "must be 10 digits")

	if len(err.Fields) != 2 {
		t.Fatalf("expected 2 field details, got %d", len(err.Fields))
	}

	if err.Fields["email"] != "invalid format" {
		t.Errorf("unexpected email detail: %s", err.Fields["email"])
	}
}
