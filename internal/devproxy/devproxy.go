// Package devproxy forwards the backend's API and upload paths during
// development, so the console and the blog API share one origin.
package devproxy

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"go.uber.org/zap"
)

// Prefixes are the paths handed to the backend.
var Prefixes = []string{"/api", "/uploads"}

// New returns a reverse proxy to origin that rewrites the Host header to the
// origin's host.
func New(origin string, logger *zap.SugaredLogger) (*httputil.ReverseProxy, error) {
	target, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("parse proxy origin: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("proxy origin %q: scheme and host required", origin)
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	p := httputil.NewSingleHostReverseProxy(target)
	direct := p.Director
	p.Director = func(r *http.Request) {
		direct(r)
		r.Host = target.Host
	}
	p.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Errorw("proxy request failed", "path", r.URL.Path, "origin", origin, "err", err)
		w.WriteHeader(http.StatusBadGateway)
	}

	return p, nil
}
