package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnavailable indicates the backend could not be reached.
type ErrUnavailable struct {
	Endpoint string
	Err      error
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s: backend unavailable: %v", e.Endpoint, e.Err)
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }

// ErrStatus indicates the backend answered without status "success".
type ErrStatus struct {
	Endpoint   string
	HTTPStatus int
	Status     string
	Message    string
}

func (e *ErrStatus) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "no message"
	}
	return fmt.Sprintf("%s: status %q (HTTP %d): %s", e.Endpoint, e.Status, e.HTTPStatus, msg)
}

// ErrInvalidResponse indicates a payload that does not match the
// endpoint's contract.
type ErrInvalidResponse struct {
	Endpoint string
	Content  json.RawMessage
	Err      error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("%s: invalid response: %v", e.Endpoint, e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// IsRemoteFailure reports whether err is one of the backend failure kinds.
// Callers fall back to local content for all of them alike.
func IsRemoteFailure(err error) bool {
	var u *ErrUnavailable
	var s *ErrStatus
	var i *ErrInvalidResponse
	return errors.As(err, &u) || errors.As(err, &s) || errors.As(err, &i)
}
