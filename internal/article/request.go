package article

import (
	"errors"
	"net/http"
	"strings"

	"github.com/SergeyParamoshkin/blogconsole/internal/model"
)

// ArticleRequest is the request payload for article create and update.
type ArticleRequest struct {
	*model.ArticleInput
}

func (a *ArticleRequest) Bind(r *http.Request) error {
	// a.ArticleInput is nil if no article fields are sent in the request.
	if a.ArticleInput == nil {
		return errors.New("missing required article fields.")
	}

	a.Title = strings.TrimSpace(a.Title)

	return nil
}

// CommentRequest is a reader's comment posted under an article.
type CommentRequest struct {
	*model.CommentInput
}

func (c *CommentRequest) Bind(r *http.Request) error {
	if c.CommentInput == nil {
		return errors.New("missing required comment fields.")
	}

	c.Nickname = strings.TrimSpace(c.Nickname)
	c.Email = strings.TrimSpace(c.Email)
	c.Content = strings.TrimSpace(c.Content)
	if c.Content == "" {
		return errors.New("missing content.")
	}

	return nil
}
