// client_integration_test.go
// +build integration

package client

import (
	"context"
	"os"
	"testing"

	"github.com/SergeyParamoshkin/blogconsole/internal/model"
	"github.com/SergeyParamoshkin/blogconsole/internal/session"
)

func backendAddr() string {
	if addr := os.Getenv("BLOGCONSOLE_BACKEND"); addr != "" {
		return addr
	}

	return "http://127.0.0.1:8080"
}

func TestListArticlesLive(t *testing.T) {
	blog := NewBlog(backendAddr(), session.NewMemoryStore(session.Session{}))

	if _, err := blog.ListArticles(context.Background(), model.ArticleQuery{Page: 1, PageSize: 5}); err != nil {
		t.Fatal(err)
	}
}

func TestAdminRejectsBogusTokenLive(t *testing.T) {
	store := session.NewMemoryStore(session.Session{Token: "bogus"})
	blog := NewBlog(backendAddr(), store)

	if _, err := blog.ListAdminComments(context.Background(), model.CommentQuery{}); !IsAuthFailure(err) {
		t.Fatalf("want auth failure, got %v", err)
	}
	if s, _ := store.Load(); s.Token != "" {
		t.Fail()
	}
}
