package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/campuskit/campusctl/internal/errors"
)

// classifyTransportError maps a failure with no HTTP response
func classifyTransportError(err error) error {
	return errors.NewNetworkError(err)
}

// malformedResponse maps a 2xx body that could not be decoded
func malformedResponse(err error) error {
	return errors.NewMalformedResponseError(err)
}

// classifyStatus maps a non-2xx response into the client error taxonomy.
// The server answers errors with a plain-text or JSON message body; the text
// is kept because it distinguishes duplicate-email from duplicate-mobile.
func classifyStatus(status int, body []byte) error {
	detail := errorDetail(body)

	switch status {
	case http.StatusUnauthorized:
		return errors.NewInvalidCredentialsError()
	case http.StatusNotFound:
		what := "resource"
		switch {
		case strings.Contains(detail, "Student"):
			what = "student"
		case strings.Contains(detail, "Course"):
			what = "course"
		case strings.Contains(strings.ToLower(detail), "user"):
			what = "user"
		}
		return errors.NewNotFoundError(what)
	case http.StatusConflict:
		return errors.NewConflictError(detail)
	case http.StatusBadRequest:
		return errors.NewValidationError(detail)
	default:
		return errors.NewServerError(status, detail)
	}
}

// errorDetail extracts a human-readable message from an error body. The
// campus API answers either a bare string or {"error":...}/{"message":...}.
func errorDetail(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return ""
	}

	var structured struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &structured); err == nil {
		if structured.Error != "" {
			return structured.Error
		}
		if structured.Message != "" {
			return structured.Message
		}
	}

	// A bare JSON string decodes to its contents.
	var plain string
	if err := json.Unmarshal(body, &plain); err == nil {
		return plain
	}

	return text
}
