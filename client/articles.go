package client

import (
	"context"
	"fmt"

	"github.com/SergeyParamoshkin/blogconsole/internal/model"
)

func (b *Blog) ListArticles(ctx context.Context, q model.ArticleQuery) (model.ArticlePage, error) {
	var page model.ArticlePage
	err := b.Public.Get(ctx, "/api/articles", q.Values(), &page)

	return page, err
}

// Search lists articles matching keyword.
func (b *Blog) Search(ctx context.Context, keyword string, page, pageSize int) (model.ArticlePage, error) {
	return b.ListArticles(ctx, model.ArticleQuery{Keyword: keyword, Page: page, PageSize: pageSize})
}

func (b *Blog) GetArticle(ctx context.Context, id uint) (model.Article, error) {
	var a model.Article
	err := b.Public.Get(ctx, fmt.Sprintf("/api/articles/%d", id), nil, &a)

	return a, err
}

func (b *Blog) CreateArticle(ctx context.Context, in model.ArticleInput) (model.Article, error) {
	var a model.Article
	err := b.Admin.Post(ctx, "/api/admin/articles", in, &a)

	return a, err
}

func (b *Blog) UpdateArticle(ctx context.Context, id uint, in model.ArticleInput) (model.Article, error) {
	var a model.Article
	err := b.Admin.Put(ctx, fmt.Sprintf("/api/admin/articles/%d", id), in, &a)

	return a, err
}

func (b *Blog) DeleteArticle(ctx context.Context, id uint) error {
	return b.Admin.Delete(ctx, fmt.Sprintf("/api/admin/articles/%d", id), nil)
}
