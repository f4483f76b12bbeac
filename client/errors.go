package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrSessionExpired is returned without touching the network when the
	// stored admin token is past its expiry.
	ErrSessionExpired = errors.New("admin session expired")
	// ErrNoSession is returned without touching the network when no admin
	// token is stored.
	ErrNoSession = errors.New("no admin session")
	// ErrUnauthorized matches any failure the backend attributed to a bad
	// or expired admin token.
	ErrUnauthorized = errors.New("admin token rejected")
	// ErrSessionStore wraps failures of the local session store. The backend
	// was not involved.
	ErrSessionStore = errors.New("admin session store")
)

// tokenRejected matches the messages the backend uses when it refuses
// X-Admin-Token.
func tokenRejected(msg string) bool {
	switch msg {
	case "Token无效", "Token无效或已过期":
		return true
	}

	return false
}

// APIError is an application-level failure: the HTTP exchange succeeded but
// the envelope code was not 200.
type APIError struct {
	Code int
	Msg  string
}

func (e *APIError) Error() string {
	return e.Msg
}

// HTTPError is a non-2xx response. Msg carries the envelope msg when the
// body had one.
type HTTPError struct {
	StatusCode int
	Msg        string
}

func (e *HTTPError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}

	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

// IsAuthFailure reports whether err means the backend refused the admin
// token.
func IsAuthFailure(err error) bool {
	if errors.Is(err, ErrUnauthorized) {
		return true
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusUnauthorized || tokenRejected(apiErr.Msg)
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusUnauthorized || tokenRejected(httpErr.Msg)
	}

	return false
}

// IsLocalAbort reports whether the request was stopped before dispatch
// because the session was missing or expired.
func IsLocalAbort(err error) bool {
	return errors.Is(err, ErrSessionExpired) || errors.Is(err, ErrNoSession)
}

type authError struct {
	err error
}

func (e *authError) Error() string {
	return e.err.Error()
}

func (e *authError) Unwrap() error {
	return e.err
}

func (e *authError) Is(target error) bool {
	return target == ErrUnauthorized
}
