package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// API errors (API-001 to API-099)
	ErrCodeNetwork            ErrorCode = "API-001"
	ErrCodeServer             ErrorCode = "API-002"
	ErrCodeValidation         ErrorCode = "API-003"
	ErrCodeConflict           ErrorCode = "API-004"
	ErrCodeInvalidCredentials ErrorCode = "API-005"
	ErrCodeNotFound           ErrorCode = "API-006"
	ErrCodeMalformedResponse  ErrorCode = "API-007"

	// Session errors (SESSION-001 to SESSION-099)
	ErrCodeStorage          ErrorCode = "SESSION-001"
	ErrCodeNotAuthenticated ErrorCode = "SESSION-002"
	ErrCodeOperationBusy    ErrorCode = "SESSION-003"

	// Config errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigLoad    ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid ErrorCode = "CONFIG-002"
)

// ClientError represents an enhanced error with code, suggestions, and field details
type ClientError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Fields      map[string]string
	Cause       error
}

// Error implements the error interface
func (e *ClientError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *ClientError) Unwrap() error {
	return e.Cause
}

// New creates a new ClientError
func New(code ErrorCode, message string) *ClientError {
	return &ClientError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new ClientError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *ClientError {
	return &ClientError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *ClientError) WithSuggestion(suggestion string) *ClientError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *ClientError) WithSuggestions(suggestions ...string) *ClientError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithField records a field-level validation detail on the error
func (e *ClientError) WithField(field, problem string) *ClientError {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = problem
	return e
}

// CodeOf returns the error code of err, or an empty code for plain errors
func CodeOf(err error) ErrorCode {
	var cerr *ClientError
	if errors.As(err, &cerr) {
		return cerr.Code
	}
	return ""
}

// AsClientError extracts a ClientError from err's chain
func AsClientError(err error, target **ClientError) bool {
	return errors.As(err, target)
}

// HasCode reports whether err carries the given code
func HasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// IsNetwork reports whether err is a transport-level failure (no response)
func IsNetwork(err error) bool { return HasCode(err, ErrCodeNetwork) }

// IsServer reports whether err is a 5xx or otherwise unexpected server failure
func IsServer(err error) bool { return HasCode(err, ErrCodeServer) }

// IsValidation reports whether err is a field-level validation failure
func IsValidation(err error) bool { return HasCode(err, ErrCodeValidation) }

// IsConflict reports whether err is a duplicate email/mobile conflict
func IsConflict(err error) bool { return HasCode(err, ErrCodeConflict) }

// IsInvalidCredentials reports whether err is a rejected sign-in
func IsInvalidCredentials(err error) bool { return HasCode(err, ErrCodeInvalidCredentials) }

// IsNotFound reports whether err is a missing-resource failure
func IsNotFound(err error) bool { return HasCode(err, ErrCodeNotFound) }

// IsStorage reports whether err is a secure-store read/write/delete failure
func IsStorage(err error) bool { return HasCode(err, ErrCodeStorage) }

// IsNotAuthenticated reports whether err is a profile operation without a session
func IsNotAuthenticated(err error) bool { return HasCode(err, ErrCodeNotAuthenticated) }

// IsBusy reports whether err is a rejected concurrent auth submission
func IsBusy(err error) bool { return HasCode(err, ErrCodeOperationBusy) }

// Common error constructors for frequently used errors

// NewNetworkError creates a transport failure error
func NewNetworkError(cause error) *ClientError {
	return Wrap(ErrCodeNetwork, "could not reach the campus server", cause).
		WithSuggestion("Check your network connection").
		WithSuggestion("Verify the API base URL with 'campusctl config view'")
}

// NewServerError creates an unexpected server response error
func NewServerError(status int, body string) *ClientError {
	msg := fmt.Sprintf("the campus server returned an unexpected response (status %d)", status)
	e := New(ErrCodeServer, msg).
		WithSuggestion("Try again in a moment").
		WithSuggestion("Contact your administrator if the problem persists")
	if body != "" {
		e.Cause = fmt.Errorf("%s", body)
	}
	return e
}

// NewInvalidCredentialsError creates a rejected sign-in error
func NewInvalidCredentialsError() *ClientError {
	return New(ErrCodeInvalidCredentials, "email or password is incorrect").
		WithSuggestion("Check your email and password").
		WithSuggestion("Use 'campusctl auth register' if you do not have an account")
}

// NewNotFoundError creates a missing-resource error
func NewNotFoundError(what string) *ClientError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", what)).
		WithSuggestion("Refresh and try again; the record may have been removed")
}

// NewConflictError creates a duplicate email/mobile conflict error
func NewConflictError(detail string) *ClientError {
	if detail == "" {
		detail = "a record with these details already exists"
	}
	return New(ErrCodeConflict, detail).
		WithSuggestion("Use a different email address or mobile number")
}

// NewValidationError creates a field-level validation error
func NewValidationError(detail string) *ClientError {
	if detail == "" {
		detail = "the submitted fields were rejected"
	}
	return New(ErrCodeValidation, detail)
}

// NewMalformedResponseError creates an undecodable-response error
func NewMalformedResponseError(cause error) *ClientError {
	return Wrap(ErrCodeMalformedResponse, "the campus server returned a response that could not be read", cause).
		WithSuggestion("Make sure the client and server versions are compatible")
}

// NewStorageError creates a secure-store failure error
func NewStorageError(op string, cause error) *ClientError {
	return Wrap(ErrCodeStorage, fmt.Sprintf("secure storage %s failed", op), cause).
		WithSuggestion("Your session could not be persisted; you may need to sign in again next time")
}

// NewNotAuthenticatedError creates a no-session error
func NewNotAuthenticatedError() *ClientError {
	return New(ErrCodeNotAuthenticated, "you are not signed in").
		WithSuggestion("Run 'campusctl auth login' first")
}

// NewBusyError creates a rejected concurrent submission error
func NewBusyError(op string) *ClientError {
	return New(ErrCodeOperationBusy, fmt.Sprintf("another %s is already in progress", op)).
		WithSuggestion("Wait for the current operation to finish")
}
