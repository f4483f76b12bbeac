package client

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

type Option func(*Client)

func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

func WithNotifier(n Notifier) Option {
	return func(c *Client) {
		c.notifier = n
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.Timeout = d
	}
}

func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.Transport = rt
	}
}

func WithMeter(m metric.Meter) Option {
	return func(c *Client) {
		c.meter = m
	}
}

// WithClock replaces time.Now for session expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// WithRedirect sets the action taken when the admin session ends. It is
// called with the login path.
func WithRedirect(fn func(path string)) Option {
	return func(c *Client) {
		c.redirect = fn
	}
}

// WithMiddleware appends to the request chain. Added middleware runs inside
// the session check of admin clients.
func WithMiddleware(mw ...Middleware) Option {
	return func(c *Client) {
		c.middleware = append(c.middleware, mw...)
	}
}
