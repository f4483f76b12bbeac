package loginpayload

import (
	"errors"
	"net/http"
	"strings"
)

//--
// Request and Response payloads for the console login page.
//--

// LoginRequest carries the admin secret key.
type LoginRequest struct {
	SecretKey string `json:"secret_key"`
}

// Bind on LoginRequest runs after the unmarshalling is complete.
func (l *LoginRequest) Bind(r *http.Request) error {
	l.SecretKey = strings.TrimSpace(l.SecretKey)
	if l.SecretKey == "" {
		return errors.New("missing secret_key.")
	}

	return nil
}

// LoginResponse describes the login page: whether a session is active and
// where the visitor goes once it is.
type LoginResponse struct {
	State     string `json:"state"`
	ExpiresAt string `json:"expires_at,omitempty"`
	Redirect  string `json:"redirect"`
}

func (l *LoginResponse) Render(w http.ResponseWriter, r *http.Request) error {
	l.Redirect = SafeRedirect(l.Redirect)

	return nil
}

// DefaultRedirect is where a fresh login lands without a redirect query.
const DefaultRedirect = "/admin/dashboard"

// SafeRedirect keeps post-login redirects on this console: anything that is
// not a local absolute path becomes DefaultRedirect.
func SafeRedirect(to string) string {
	if !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") || strings.HasPrefix(to, "/\\") {
		return DefaultRedirect
	}

	return to
}
