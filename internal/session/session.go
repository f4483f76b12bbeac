// Package session keeps the admin token between requests and decides
// whether it still grants access to the admin console.
package session

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrCorrupt is returned by a Store whose persisted session cannot be decoded.
var ErrCorrupt = errors.New("corrupt session")

// Storage keys, kept identical to what the backend's web console persists.
const (
	KeyToken     = "admin_token"
	KeyExpiresAt = "token_expires_at"
)

// Session is the persisted admin credential. ExpiresAt holds epoch seconds
// encoded as a string and may be empty when the backend gave no expiry.
type Session struct {
	Token     string `json:"admin_token,omitempty"`
	ExpiresAt string `json:"token_expires_at,omitempty"`
}

// New builds a session from a token and its expiry.
func New(token string, expiresAt int64) Session {
	s := Session{Token: token}
	if expiresAt > 0 {
		s.ExpiresAt = strconv.FormatInt(expiresAt, 10)
	}

	return s
}

// Expired reports whether the session carries an expiry that lies before now.
// Like the web console, only the leading integer of ExpiresAt counts
// ("1700000000.0" is 1700000000); an expiry with no leading digits is ignored.
func (s Session) Expired(now time.Time) bool {
	sec, ok := leadingInt(s.ExpiresAt)
	if !ok {
		return false
	}

	return time.Unix(sec, 0).Before(now)
}

// leadingInt parses the optionally signed decimal prefix of s, after
// leading whitespace.
func leadingInt(s string) (int64, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}

	return n, true
}

// Store persists a single session.
type Store interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
}

type State int8

const (
	Unauthorized State = iota
	Authorized
)

func (s State) String() string {
	if s == Authorized {
		return "authorized"
	}

	return "unauthorized"
}

// Evaluate loads the stored session and classifies it. An expired or
// corrupt session is removed from the store before Unauthorized is returned.
// Only failures to reach the store itself are reported as errors.
func Evaluate(store Store, now time.Time) (State, Session, error) {
	s, err := store.Load()
	if errors.Is(err, ErrCorrupt) {
		if err := store.Clear(); err != nil {
			return Unauthorized, Session{}, err
		}

		return Unauthorized, Session{}, nil
	}
	if err != nil {
		return Unauthorized, Session{}, err
	}
	if s.Token == "" {
		return Unauthorized, s, nil
	}
	if s.Expired(now) {
		if err := store.Clear(); err != nil {
			return Unauthorized, s, err
		}

		return Unauthorized, s, nil
	}

	return Authorized, s, nil
}
