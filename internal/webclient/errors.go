package webclient

import (
	"errors"
	"fmt"
)

// ErrNetwork wraps transport, status and decode failures.
var ErrNetwork = errors.New("network error")

// ErrNameRequired is returned by actions that need a display name.
var ErrNameRequired = errors.New("name is required")

// APIError is a response that carried an "error" field.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

// AlertError is a failure the user has to acknowledge before continuing.
type AlertError struct {
	Message string
	Err     error
}

func (e *AlertError) Error() string { return e.Message }

func (e *AlertError) Unwrap() error { return e.Err }

const (
	msgNameFirst    = "Please enter your name in the main form first."
	msgNameForVote  = "Please enter your name in the main form to vote."
	msgGenericAlert = "Something went wrong. Please try again."
)

// alert turns a backend failure into an AlertError, keeping the server's
// message when there is one.
func alert(err error) *AlertError {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return &AlertError{Message: apiErr.Message, Err: err}
	}
	return &AlertError{Message: msgGenericAlert, Err: err}
}

// userMessage is the text shown inline for a failed request.
func userMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
