package client

import (
	"fmt"
	"net/http"

	"github.com/SergeyParamoshkin/blogconsole/internal/session"
)

// NewAdmin returns a client for /api/admin. The stored token is attached to
// every request; a missing or expired token stops the request before it is
// sent, and a rejected token is cleared from the store.
func NewAdmin(addr string, store session.Store, opts ...Option) *Client {
	c := newClient(addr, opts)
	c.hooks = append(c.hooks, c.sessionTeardown(store))
	c.build(c.sessionMiddleware(store))

	return c
}

func (c *Client) sessionMiddleware(store session.Store) Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			state, s, err := session.Evaluate(store, c.now())
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrSessionStore, err)
			}

			if state == session.Unauthorized {
				abort := ErrNoSession
				if s.Token != "" {
					abort = ErrSessionExpired
					c.notifier.Warn("session expired, please verify again")
				} else {
					c.notifier.Warn("admin login required")
				}
				c.redirect(LoginPath)

				return nil, abort
			}

			req.Header.Set(TokenHeader, s.Token)

			return next.Do(req)
		})
	}
}

func (c *Client) sessionTeardown(store session.Store) ErrorHook {
	return func(req *http.Request, err error) error {
		if !IsAuthFailure(err) {
			return err
		}

		if cerr := store.Clear(); cerr != nil {
			c.logger.Errorw("clear admin session", "error", cerr)
		}
		c.logger.Infow("admin token rejected", "method", req.Method, "path", req.URL.Path)
		c.redirect(LoginPath)

		return &authError{err: err}
	}
}
