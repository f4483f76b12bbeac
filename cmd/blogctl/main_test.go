package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/SergeyParamoshkin/blogconsole/client"
	"github.com/SergeyParamoshkin/blogconsole/internal/model"
)

func ok(data interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"code": 200, "msg": "success", "data": data})
	}
}

type harness struct {
	server  string
	session string
	token   *atomic.String
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	token := atomic.NewString("")
	r := chi.NewRouter()
	r.Post("/api/admin/auth/verify", ok(model.Token{Token: "t1", ExpiresAt: time.Now().Add(time.Hour).Unix()}))
	r.Get("/api/articles", ok(model.ArticlePage{List: []model.Article{{ID: 1, Title: "Hi"}}, Total: 1, Page: 1, PageSize: 10}))
	r.Post("/api/comments", func(w http.ResponseWriter, r *http.Request) {
		var in model.CommentInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		ok(model.Comment{ID: 5, ArticleID: in.ArticleID, Nickname: in.Nickname, Content: in.Content})(w, r)
	})
	r.Patch("/api/admin/comments/{id}/approve", func(w http.ResponseWriter, r *http.Request) {
		token.Store(r.Header.Get(client.TokenHeader))
		ok(nil)(w, r)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	dir, err := ioutil.TempDir("", "blogctl")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	return &harness{server: srv.URL, session: filepath.Join(dir, "session.json"), token: token}
}

func (h *harness) run(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), append([]string{"-server", h.server, "-session", h.session}, args...), &stdout, &stderr)

	return stdout.String(), stderr.String(), err
}

func TestLoginThenAdminCommand(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run("status")
	require.NoError(t, err)
	assert.Equal(t, "unauthorized\n", out)

	_, _, err = h.run("login", "s3cret")
	require.NoError(t, err)

	out, _, err = h.run("status")
	require.NoError(t, err)
	assert.Contains(t, out, "authorized (expires ")

	_, _, err = h.run("comments", "approve", "4")
	require.NoError(t, err)
	assert.Equal(t, "t1", h.token.Load())

	_, _, err = h.run("logout")
	require.NoError(t, err)
	out, _, err = h.run("status")
	require.NoError(t, err)
	assert.Equal(t, "unauthorized\n", out)
}

func TestAdminCommandWithoutSession(t *testing.T) {
	h := newHarness(t)

	_, stderr, err := h.run("comments", "approve", "4")

	assert.True(t, errors.Is(err, client.ErrNoSession))
	assert.Contains(t, stderr, "blogctl login")
	assert.Empty(t, h.token.Load())
}

func TestArticlesList(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run("articles", "list", "-size", "10")
	require.NoError(t, err)

	var page model.ArticlePage
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.Len(t, page.List, 1)
	assert.Equal(t, "Hi", page.List[0].Title)
}

func TestUsageErrors(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run()
	assert.True(t, errors.Is(err, errUsage))

	_, _, err = h.run("frobnicate")
	assert.Error(t, err)

	_, _, err = h.run("articles", "get", "abc")
	assert.Error(t, err)
}

func TestSubmitCommentWithoutSession(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run("comments", "submit", "-article", "3", "-nickname", "ann", "great", "read")
	require.NoError(t, err)

	var cm model.Comment
	require.NoError(t, json.Unmarshal([]byte(out), &cm))
	assert.Equal(t, uint(3), cm.ArticleID)
	assert.Equal(t, "great read", cm.Content)
	assert.Empty(t, h.token.Load())

	_, _, err = h.run("comments", "submit", "-nickname", "ann", "hi")
	assert.Error(t, err)
}
