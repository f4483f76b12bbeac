// Package client talks to the blog backend REST API. Every response is a
// {code, msg, data} envelope; calls resolve to data on code 200 and fail
// with the backend message otherwise.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/global"
	"go.uber.org/zap"
)

const (
	DefaultTimeout = 10 * time.Second
	TokenHeader    = "X-Admin-Token"
	LoginPath      = "/admin/login"

	instrumentationName = "github.com/SergeyParamoshkin/blogconsole/client"
)

// Doer sends a prepared request. *http.Client is the innermost Doer of
// every chain.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

type DoerFunc func(*http.Request) (*http.Response, error)

func (f DoerFunc) Do(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Middleware decorates a Doer. Chains run in the order they are given.
type Middleware func(Doer) Doer

// ErrorHook sees every failed call before it is reported and may replace
// the error.
type ErrorHook func(req *http.Request, err error) error

type Client struct {
	http.Client
	Addr string

	logger     *zap.SugaredLogger
	notifier   Notifier
	meter      metric.Meter
	now        func() time.Time
	redirect   func(path string)
	middleware []Middleware
	hooks      []ErrorHook
	doer       Doer
}

// NewPublic returns a client for the anonymous part of the API.
func NewPublic(addr string, opts ...Option) *Client {
	c := newClient(addr, opts)
	c.build()

	return c
}

// NewAuth returns the client used for secret key verification. It shares
// the envelope handling of the public client and never sends a token.
func NewAuth(addr string, opts ...Option) *Client {
	return NewPublic(addr, opts...)
}

func newClient(addr string, opts []Option) *Client {
	c := &Client{
		Client:   http.Client{Timeout: DefaultTimeout},
		Addr:     strings.TrimRight(addr, "/"),
		logger:   zap.NewNop().Sugar(),
		meter:    global.Meter(instrumentationName),
		now:      time.Now,
		redirect: func(string) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.notifier == nil {
		c.notifier = LogNotifier{Logger: c.logger}
	}

	return c
}

func (c *Client) build(outer ...Middleware) {
	mws := make([]Middleware, 0, len(outer)+len(c.middleware)+1)
	mws = append(mws, outer...)
	mws = append(mws, c.middleware...)
	mws = append(mws, metricsMiddleware(c.meter))

	var d Doer = &c.Client
	for i := len(mws) - 1; i >= 0; i-- {
		d = mws[i](d)
	}
	c.doer = d
}

// Call sends one request and decodes the envelope data into out.
func (c *Client) Call(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	resp, err := c.doer.Do(req)
	if err == nil {
		err = func() error {
			defer resp.Body.Close()

			return unwrap(resp, out)
		}()
		if err == nil {
			return nil
		}
	} else if !IsLocalAbort(err) {
		c.logger.Errorw("request error", "method", method, "path", path, "error", err)
	}

	for _, hook := range c.hooks {
		err = hook(req, err)
	}

	if !IsLocalAbort(err) && !errors.Is(err, context.Canceled) {
		c.notifier.Error(err.Error())
	}

	return err
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.Call(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Call(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.Call(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.Call(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.Call(ctx, http.MethodDelete, path, nil, nil, out)
}

// bodyEncoder lets a body pick its own wire format instead of JSON.
type bodyEncoder interface {
	encode() (io.Reader, string, error)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Request, error) {
	u := c.Addr + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var (
		r           io.Reader
		contentType string
	)
	switch b := body.(type) {
	case nil:
	case bodyEncoder:
		var err error
		if r, contentType, err = b.encode(); err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
	default:
		buf, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		r, contentType = bytes.NewReader(buf), "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, u, r)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	return req, nil
}
