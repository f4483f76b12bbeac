package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/blogconsole/internal/model"
	"github.com/SergeyParamoshkin/blogconsole/internal/session"
)

func TestGetArticleDetail(t *testing.T) {
	var gotPath string
	b := newBackend(t, func(r chi.Router) {
		r.Get("/api/articles/{id}", func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_, _ = w.Write([]byte(`{"code":200,"msg":"ok","data":{"id":42,"title":"T"}}`))
		})
	})

	blog := NewBlog(b.URL, session.NewMemoryStore(session.Session{}))

	a, err := blog.GetArticle(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "/api/articles/42", gotPath)
	if diff := cmp.Diff(model.Article{ID: 42, Title: "T"}, a); diff != "" {
		t.Errorf("article mismatch (-want +got):\n%s", diff)
	}
}

func TestCallReturnsDataVerbatim(t *testing.T) {
	b := newBackend(t, func(r chi.Router) {
		r.Get("/api/articles/42", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"code":200,"msg":"ok","data":{"id":42,"title":"T","extra":[1,2]}}`))
		})
	})

	var raw json.RawMessage
	err := NewPublic(b.URL).Get(context.Background(), "/api/articles/42", nil, &raw)
	require.NoError(t, err)
	assert.Equal(t, `{"id":42,"title":"T","extra":[1,2]}`, string(raw))
}

func TestCallApplicationError(t *testing.T) {
	tests := []struct {
		name    string
		msg     string
		wantMsg string
	}{
		{name: "backend message", msg: "文章不存在", wantMsg: "文章不存在"},
		{name: "default message", msg: "", wantMsg: "Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBackend(t, func(r chi.Router) {
				r.Get("/api/tags", func(w http.ResponseWriter, r *http.Request) {
					writeEnvelope(w, http.StatusOK, http.StatusNotFound, tt.msg, nil)
				})
			})
			n := &recordingNotifier{}

			_, err := NewBlog(b.URL, session.NewMemoryStore(session.Session{}), WithNotifier(n)).ListTags(context.Background())

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusNotFound, apiErr.Code)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Equal(t, []string{tt.wantMsg}, n.errors)
		})
	}
}

func TestCallHTTPError(t *testing.T) {
	b := newBackend(t, func(r chi.Router) {
		r.Get("/api/categories", func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusInternalServerError, http.StatusInternalServerError, "查询失败", nil)
		})
		r.Get("/api/tags", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad gateway", http.StatusBadGateway)
		})
	})
	n := &recordingNotifier{}
	blog := NewBlog(b.URL, session.NewMemoryStore(session.Session{}), WithNotifier(n))

	_, err := blog.ListCategories(context.Background())
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, "查询失败", err.Error())

	_, err = blog.ListTags(context.Background())
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "request failed with status code 502", err.Error())

	assert.Equal(t, []string{"查询失败", "request failed with status code 502"}, n.errors)
}

func TestCallTransportError(t *testing.T) {
	b := newBackend(t, func(r chi.Router) {})
	addr := b.URL
	b.Close()

	n := &recordingNotifier{}
	_, err := NewBlog(addr, session.NewMemoryStore(session.Session{}), WithNotifier(n)).ListTags(context.Background())
	require.Error(t, err)
	require.Len(t, n.errors, 1)
	assert.Equal(t, err.Error(), n.errors[0])
}

func TestCallCanceledIsNotNotified(t *testing.T) {
	b := newBackend(t, func(r chi.Router) {
		r.Get("/api/tags", ok(nil))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n := &recordingNotifier{}
	_, err := NewBlog(b.URL, session.NewMemoryStore(session.Session{}), WithNotifier(n)).ListTags(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, n.errors)
}

func TestListArticlesQuery(t *testing.T) {
	var gotQuery string
	b := newBackend(t, func(r chi.Router) {
		r.Get("/api/articles", func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			ok(model.ArticlePage{List: []model.Article{{ID: 1}}, Total: 1, Page: 2, PageSize: 5})(w, r)
		})
	})

	page, err := NewBlog(b.URL, session.NewMemoryStore(session.Session{})).Search(context.Background(), "chi", 2, 5)
	require.NoError(t, err)
	assert.Equal(t, "keyword=chi&page=2&page_size=5", gotQuery)
	assert.Equal(t, int64(1), page.Total)
	assert.Len(t, page.List, 1)
}

func TestSubmitComment(t *testing.T) {
	var got model.CommentInput
	b := newBackend(t, func(r chi.Router) {
		r.Post("/api/comments", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Empty(t, r.Header.Get(TokenHeader))
			_ = json.NewDecoder(r.Body).Decode(&got)
			ok(model.Comment{ID: 7, ArticleID: got.ArticleID})(w, r)
		})
	})

	in := model.CommentInput{ArticleID: 3, Nickname: "ann", Email: "a@b.c", Content: "hi"}
	c, err := NewBlog(b.URL, session.NewMemoryStore(validSession())).SubmitComment(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, in, got)
	assert.Equal(t, uint(7), c.ID)
}

func TestLoginStoresSession(t *testing.T) {
	b := newBackend(t, func(r chi.Router) {
		r.Post("/api/admin/auth/verify", func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["secret_key"] != "s3cret" {
				writeEnvelope(w, http.StatusBadRequest, http.StatusBadRequest, "密钥错误", nil)

				return
			}
			ok(model.Token{Token: "fresh", ExpiresAt: 1700007200})(w, r)
		})
	})
	store := session.NewMemoryStore(session.Session{})
	blog := NewBlog(b.URL, store, WithNotifier(NopNotifier{}))

	_, err := blog.Login(context.Background(), "wrong")
	require.Error(t, err)
	s, _ := store.Load()
	assert.Equal(t, session.Session{}, s)

	tok, err := blog.Login(context.Background(), "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok.Token)
	s, _ = store.Load()
	assert.Equal(t, session.Session{Token: "fresh", ExpiresAt: "1700007200"}, s)

	require.NoError(t, blog.Logout())
	s, _ = store.Load()
	assert.Equal(t, session.Session{}, s)
}
