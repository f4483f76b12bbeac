package client

import (
	"context"
	"fmt"

	"github.com/SergeyParamoshkin/blogconsole/internal/model"
)

func (b *Blog) ListTags(ctx context.Context) ([]model.Tag, error) {
	var list []model.Tag
	err := b.Public.Get(ctx, "/api/tags", nil, &list)

	return list, err
}

func (b *Blog) TagStats(ctx context.Context) ([]model.TagStat, error) {
	var list []model.TagStat
	err := b.Public.Get(ctx, "/api/tags/stats", nil, &list)

	return list, err
}

func (b *Blog) GetTag(ctx context.Context, id uint) (model.Tag, error) {
	var t model.Tag
	err := b.Public.Get(ctx, fmt.Sprintf("/api/tags/%d", id), nil, &t)

	return t, err
}

func (b *Blog) CreateTag(ctx context.Context, in model.Tag) (model.Tag, error) {
	var t model.Tag
	err := b.Admin.Post(ctx, "/api/admin/tags", in, &t)

	return t, err
}

func (b *Blog) UpdateTag(ctx context.Context, id uint, in model.Tag) (model.Tag, error) {
	var t model.Tag
	err := b.Admin.Put(ctx, fmt.Sprintf("/api/admin/tags/%d", id), in, &t)

	return t, err
}

func (b *Blog) DeleteTag(ctx context.Context, id uint) error {
	return b.Admin.Delete(ctx, fmt.Sprintf("/api/admin/tags/%d", id), nil)
}
