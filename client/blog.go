package client

import (
	"context"
	"fmt"

	"github.com/SergeyParamoshkin/blogconsole/internal/model"
	"github.com/SergeyParamoshkin/blogconsole/internal/session"
)

// Blog groups the three clients behind the resource calls.
type Blog struct {
	Public  *Client
	Admin   *Client
	Auth    *Client
	Session session.Store
}

// NewBlog wires public, admin and auth clients against one backend origin.
func NewBlog(addr string, store session.Store, opts ...Option) *Blog {
	return &Blog{
		Public:  NewPublic(addr, opts...),
		Admin:   NewAdmin(addr, store, opts...),
		Auth:    NewAuth(addr, opts...),
		Session: store,
	}
}

// Login exchanges the admin secret key for a token and stores it.
func (b *Blog) Login(ctx context.Context, secretKey string) (model.Token, error) {
	var tok model.Token
	err := b.Auth.Post(ctx, "/api/admin/auth/verify", map[string]string{"secret_key": secretKey}, &tok)
	if err != nil {
		return tok, err
	}
	if err := b.Session.Save(session.New(tok.Token, tok.ExpiresAt)); err != nil {
		return tok, fmt.Errorf("%w: save: %v", ErrSessionStore, err)
	}

	return tok, nil
}

func (b *Blog) Logout() error {
	return b.Session.Clear()
}

func (b *Blog) Dashboard(ctx context.Context) (model.Dashboard, error) {
	var d model.Dashboard
	err := b.Admin.Get(ctx, "/api/admin/stats", nil, &d)

	return d, err
}
