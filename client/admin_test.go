package client

import (
	"bytes"
	"context"
	"errors"
	"io/ioutil"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/blogconsole/internal/model"
	"github.com/SergeyParamoshkin/blogconsole/internal/session"
)

func newAdminBlog(addr string, store session.Store, n Notifier, rd *redirects) *Blog {
	return NewBlog(addr, store,
		WithNotifier(n),
		WithRedirect(rd.record),
		WithClock(func() time.Time { return testNow }),
	)
}

func TestAdminAttachesToken(t *testing.T) {
	var got string
	b := newBackend(t, func(r chi.Router) {
		r.Delete("/api/admin/articles/{id}", func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get(TokenHeader)
			ok(nil)(w, r)
		})
	})
	rd := &redirects{}

	err := newAdminBlog(b.URL, session.NewMemoryStore(validSession()), &recordingNotifier{}, rd).
		DeleteArticle(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got)
	assert.Empty(t, rd.paths)
}

func TestAdminExpiredSessionAbortsLocally(t *testing.T) {
	b := newBackend(t, func(r chi.Router) {
		r.Post("/api/admin/tags", ok(model.Tag{ID: 1}))
	})
	store := newCountingStore(session.New("old", testNow.Add(-time.Minute).Unix()))
	n := &recordingNotifier{}
	rd := &redirects{}

	_, err := newAdminBlog(b.URL, store, n, rd).CreateTag(context.Background(), model.Tag{Name: "go"})

	assert.True(t, errors.Is(err, ErrSessionExpired))
	assert.Equal(t, int32(0), b.hits.Load())
	assert.Equal(t, int32(1), store.clears.Load())
	s, _ := store.Load()
	assert.Equal(t, session.Session{}, s)
	assert.Equal(t, []string{LoginPath}, rd.paths)
	assert.Empty(t, n.errors)
	assert.Len(t, n.warnings, 1)
}

func TestAdminWithoutSessionAbortsLocally(t *testing.T) {
	b := newBackend(t, func(r chi.Router) {
		r.Get("/api/admin/comments", ok(model.CommentPage{}))
	})
	rd := &redirects{}

	_, err := newAdminBlog(b.URL, session.NewMemoryStore(session.Session{}), &recordingNotifier{}, rd).
		ListAdminComments(context.Background(), model.CommentQuery{})

	assert.True(t, errors.Is(err, ErrNoSession))
	assert.True(t, IsLocalAbort(err))
	assert.Equal(t, int32(0), b.hits.Load())
	assert.Equal(t, []string{LoginPath}, rd.paths)
}

func TestAdminAuthFailureTearsDownSession(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "http 401",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
		},
		{
			name: "envelope code 401",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, http.StatusOK, http.StatusUnauthorized, "unauthorized", nil)
			},
		},
		{
			name: "invalid token message",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, http.StatusBadRequest, http.StatusBadRequest, "Token无效", nil)
			},
		},
		{
			name: "expired token message",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, http.StatusOK, http.StatusBadRequest, "Token无效或已过期", nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBackend(t, func(r chi.Router) {
				r.Patch("/api/admin/comments/{id}/approve", tt.handler)
				r.Delete("/api/admin/categories/{id}", tt.handler)
			})
			store := newCountingStore(validSession())
			rd := &redirects{}
			blog := newAdminBlog(b.URL, store, &recordingNotifier{}, rd)

			err := blog.ApproveComment(context.Background(), 5)

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnauthorized))
			assert.True(t, IsAuthFailure(err))
			assert.Equal(t, int32(1), store.clears.Load())
			assert.Equal(t, []string{LoginPath}, rd.paths)

			// A second wrapper finds no session and never reaches the backend.
			err = blog.DeleteCategory(context.Background(), 2)
			assert.True(t, errors.Is(err, ErrNoSession))
			assert.Equal(t, int32(1), b.hits.Load())
			assert.Equal(t, int32(1), store.clears.Load())
		})
	}
}

func TestAdminOtherFailureKeepsSession(t *testing.T) {
	b := newBackend(t, func(r chi.Router) {
		r.Put("/api/admin/articles/{id}", func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusOK, http.StatusBadRequest, "标题不能为空", nil)
		})
	})
	store := newCountingStore(validSession())
	n := &recordingNotifier{}
	rd := &redirects{}

	_, err := newAdminBlog(b.URL, store, n, rd).UpdateArticle(context.Background(), 1, model.ArticleInput{})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, int32(0), store.clears.Load())
	assert.Empty(t, rd.paths)
	assert.Equal(t, []string{"标题不能为空"}, n.errors)
}

func TestUploadImage(t *testing.T) {
	b := newBackend(t, func(r chi.Router) {
		r.Post("/api/admin/upload/image", func(w http.ResponseWriter, r *http.Request) {
			f, hdr, err := r.FormFile("file")
			if err != nil {
				writeEnvelope(w, http.StatusBadRequest, http.StatusBadRequest, "请选择要上传的文件", nil)

				return
			}
			defer f.Close()
			body, _ := ioutil.ReadAll(f)
			assert.Equal(t, "cover.png", hdr.Filename)
			assert.Equal(t, []byte("png-bytes"), body)
			assert.Equal(t, "tok-1", r.Header.Get(TokenHeader))
			ok(model.Upload{URL: "/uploads/2024/cover.png"})(w, r)
		})
	})

	up, err := newAdminBlog(b.URL, session.NewMemoryStore(validSession()), &recordingNotifier{}, &redirects{}).
		UploadImage(context.Background(), "cover.png", bytes.NewReader([]byte("png-bytes")))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/2024/cover.png", up.URL)
}

func TestDashboard(t *testing.T) {
	b := newBackend(t, func(r chi.Router) {
		r.Get("/api/admin/stats", ok(model.Dashboard{ArticleCount: 3, PendingCommentCount: 1}))
	})

	d, err := newAdminBlog(b.URL, session.NewMemoryStore(validSession()), &recordingNotifier{}, &redirects{}).
		Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Dashboard{ArticleCount: 3, PendingCommentCount: 1}, d)
}

// failingStore cannot be read.
type failingStore struct {
	*session.MemoryStore
}

func (*failingStore) Load() (session.Session, error) {
	return session.Session{}, errors.New("permission denied")
}

func TestAdminStoreFailureIsLocal(t *testing.T) {
	b := newBackend(t, func(r chi.Router) {
		r.Get("/api/admin/stats", ok(model.Dashboard{}))
	})
	rd := &redirects{}

	_, err := newAdminBlog(b.URL, &failingStore{MemoryStore: session.NewMemoryStore(session.Session{})}, &recordingNotifier{}, rd).Dashboard(context.Background())

	assert.True(t, errors.Is(err, ErrSessionStore))
	assert.False(t, IsAuthFailure(err))
	assert.Equal(t, int32(0), b.hits.Load())
	assert.Empty(t, rd.paths)
}
