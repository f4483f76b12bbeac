package article

import (
	"context"

	"github.com/SergeyParamoshkin/blogconsole/internal/model"
)

// Source is the part of the blog API the article views use.
// *client.Blog satisfies it.
type Source interface {
	ListArticles(ctx context.Context, q model.ArticleQuery) (model.ArticlePage, error)
	GetArticle(ctx context.Context, id uint) (model.Article, error)
	ListComments(ctx context.Context, articleID uint) ([]model.Comment, error)
	SubmitComment(ctx context.Context, in model.CommentInput) (model.Comment, error)
	CreateArticle(ctx context.Context, in model.ArticleInput) (model.Article, error)
	UpdateArticle(ctx context.Context, id uint, in model.ArticleInput) (model.Article, error)
	DeleteArticle(ctx context.Context, id uint) error
}

// Handler serves article pages and article actions of the console.
type Handler struct {
	src Source
}

func NewHandler(src Source) *Handler {
	return &Handler{src: src}
}
