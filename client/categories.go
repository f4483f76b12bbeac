package client

import (
	"context"
	"fmt"

	"github.com/SergeyParamoshkin/blogconsole/internal/model"
)

func (b *Blog) ListCategories(ctx context.Context) ([]model.Category, error) {
	var list []model.Category
	err := b.Public.Get(ctx, "/api/categories", nil, &list)

	return list, err
}

func (b *Blog) CategoryStats(ctx context.Context) ([]model.CategoryStat, error) {
	var list []model.CategoryStat
	err := b.Public.Get(ctx, "/api/categories/stats", nil, &list)

	return list, err
}

func (b *Blog) GetCategory(ctx context.Context, id uint) (model.Category, error) {
	var c model.Category
	err := b.Public.Get(ctx, fmt.Sprintf("/api/categories/%d", id), nil, &c)

	return c, err
}

func (b *Blog) CreateCategory(ctx context.Context, in model.Category) (model.Category, error) {
	var c model.Category
	err := b.Admin.Post(ctx, "/api/admin/categories", in, &c)

	return c, err
}

func (b *Blog) UpdateCategory(ctx context.Context, id uint, in model.Category) (model.Category, error) {
	var c model.Category
	err := b.Admin.Put(ctx, fmt.Sprintf("/api/admin/categories/%d", id), in, &c)

	return c, err
}

func (b *Blog) DeleteCategory(ctx context.Context, id uint) error {
	return b.Admin.Delete(ctx, fmt.Sprintf("/api/admin/categories/%d", id), nil)
}
