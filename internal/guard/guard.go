// Package guard keeps unauthenticated visitors out of the admin console.
// It only spares the backend doomed requests; the backend still checks
// X-Admin-Token on every admin call.
package guard

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blogconsole/internal/errresponse"
	"github.com/SergeyParamoshkin/blogconsole/internal/logctx"
	"github.com/SergeyParamoshkin/blogconsole/internal/session"
)

const DefaultLoginPath = "/admin/login"

type Guard struct {
	Store     session.Store
	LoginPath string
	Now       func() time.Time
}

func New(store session.Store) *Guard {
	return &Guard{Store: store, LoginPath: DefaultLoginPath, Now: time.Now}
}

// Check evaluates the stored session for a navigation to fullPath. When the
// session is missing or expired it returns the login location carrying
// fullPath as the redirect query parameter.
func (g *Guard) Check(fullPath string) (string, bool, error) {
	state, _, err := session.Evaluate(g.Store, g.Now())
	if err != nil {
		return "", false, err
	}
	if state == session.Authorized {
		return "", true, nil
	}

	return g.LoginURL(fullPath), false, nil
}

// LoginURL is the login path with fullPath queued for after login.
func (g *Guard) LoginURL(fullPath string) string {
	if fullPath == "" {
		return g.LoginPath
	}

	return g.LoginPath + "?" + url.Values{"redirect": {fullPath}}.Encode()
}

// RequireAuth is the middleware form of Check.
func (g *Guard) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		to, ok, err := g.Check(r.URL.RequestURI())
		if err != nil {
			logctx.From(r.Context()).Errorw("load admin session", "err", err)
			if err := render.Render(w, r, errresponse.ErrInternal(err)); err != nil {
				logctx.From(r.Context()).Errorw(err.Error())
			}

			return
		}
		if !ok {
			http.Redirect(w, r, to, http.StatusFound)

			return
		}
		next.ServeHTTP(w, r)
	})
}
